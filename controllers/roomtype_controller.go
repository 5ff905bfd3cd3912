package controllers

import (
	"net/http"
	"strconv"

	"hotel-booking-api/models"
	"hotel-booking-api/services"
	"hotel-booking-api/utils"

	"github.com/gin-gonic/gin"
)

type RoomTypeController struct {
	RoomTypes *services.RoomTypeService
}

func NewRoomTypeController(roomTypes *services.RoomTypeService) *RoomTypeController {
	return &RoomTypeController{RoomTypes: roomTypes}
}

func (ctl *RoomTypeController) GetRoomTypes(c *gin.Context) {
	types, err := ctl.RoomTypes.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, types)
}

func (ctl *RoomTypeController) CreateRoomType(c *gin.Context) {
	var rt models.RoomType
	if err := c.ShouldBindJSON(&rt); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if rt.TypeName == "" {
		utils.JSONError(c, http.StatusBadRequest, "typeName is required")
		return
	}

	if err := ctl.RoomTypes.Create(&rt); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rt)
}

func (ctl *RoomTypeController) DeleteRoomType(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room type id")
		return
	}

	if err := ctl.RoomTypes.Delete(uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "room type deleted"})
}
