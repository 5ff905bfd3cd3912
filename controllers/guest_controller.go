package controllers

import (
	"net/http"
	"strconv"

	"hotel-booking-api/services"
	"hotel-booking-api/utils"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	Guests *services.GuestService
}

func NewGuestController(guests *services.GuestService) *GuestController {
	return &GuestController{Guests: guests}
}

type createGuestPayload struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// CreateGuest handles POST /api/guests. Lookup-or-create by email, so
// replaying the request is harmless.
func (ctl *GuestController) CreateGuest(c *gin.Context) {
	var payload createGuestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "name and email are required")
		return
	}

	guest, err := ctl.Guests.FindOrCreate(payload.Name, payload.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"userId": guest.ID, "guest": guest})
}

// GetGuests handles GET /api/guests.
func (ctl *GuestController) GetGuests(c *gin.Context) {
	guests, err := ctl.Guests.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

// GetGuestByID handles GET /api/guests/:id.
func (ctl *GuestController) GetGuestByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid guest id")
		return
	}

	guest, err := ctl.Guests.GetByID(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}
