package controllers

import (
	"net/http"
	"strconv"

	"hotel-booking-api/models"
	"hotel-booking-api/services"
	"hotel-booking-api/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) *RoomController {
	return &RoomController{Rooms: rooms}
}

func (ctl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctl.Rooms.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctl *RoomController) GetRoomByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}

	room, err := ctl.Rooms.GetByID(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctl *RoomController) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if room.RoomNumber == "" {
		utils.JSONError(c, http.StatusBadRequest, "roomNumber is required")
		return
	}

	if err := ctl.Rooms.Create(&room); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (ctl *RoomController) UpdateRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}

	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	room.ID = uint(id)

	if err := ctl.Rooms.Update(&room); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctl *RoomController) DeleteRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}

	if err := ctl.Rooms.Delete(uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "room deleted"})
}
