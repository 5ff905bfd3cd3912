package controllers

import (
	"net/http"
	"strconv"

	"hotel-booking-api/models"
	"hotel-booking-api/services"
	"hotel-booking-api/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Bookings     *services.BookingService
	Availability *services.AvailabilityService
}

func NewBookingController(bookings *services.BookingService, availability *services.AvailabilityService) *BookingController {
	return &BookingController{Bookings: bookings, Availability: availability}
}

type freeRoomsPayload struct {
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
}

type createBookingPayload struct {
	GuestID  uint   `json:"guest_id" binding:"required"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
	RoomID   *uint  `json:"room_id"`
	Notes    string `json:"notes"`
}

type confirmBookingPayload struct {
	Name        string   `json:"name" binding:"required"`
	Email       string   `json:"email" binding:"required"`
	CheckIn     string   `json:"check_in" binding:"required"`
	CheckOut    string   `json:"check_out" binding:"required"`
	RoomNumbers []string `json:"room_numbers" binding:"required"`
	Notes       string   `json:"notes"`
}

// bookingResponse carries dates in their canonical YYYY-MM-DD form.
type bookingResponse struct {
	ID          uint   `json:"id"`
	GuestID     uint   `json:"guestId"`
	GuestName   string `json:"guestName,omitempty"`
	RoomID      *uint  `json:"roomId,omitempty"`
	RoomNumber  string `json:"roomNumber,omitempty"`
	BookingCode string `json:"bookingCode"`
	Status      string `json:"status"`
	CheckIn     string `json:"checkIn"`
	CheckOut    string `json:"checkOut"`
	Nights      int    `json:"nights"`
	Notes       string `json:"notes,omitempty"`
}

func toBookingResponse(b models.Booking) bookingResponse {
	resp := bookingResponse{
		ID:          b.ID,
		GuestID:     b.GuestID,
		GuestName:   b.Guest.FullName,
		RoomID:      b.RoomID,
		BookingCode: b.BookingCode,
		Status:      b.Status,
		CheckIn:     utils.FormatDate(b.CheckIn),
		CheckOut:    utils.FormatDate(b.CheckOut),
		Nights:      b.Nights(),
		Notes:       b.Notes,
	}
	if b.Room != nil {
		resp.RoomNumber = b.Room.RoomNumber
	}
	return resp
}

// GetFreeRooms handles POST /api/rooms/free.
func (ctl *BookingController) GetFreeRooms(c *gin.Context) {
	var payload freeRoomsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "check_in and check_out are required")
		return
	}

	rooms, err := ctl.Availability.FindFreeRooms(payload.CheckIn, payload.CheckOut)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// CreateBooking handles POST /api/bookings (legacy single-room path).
func (ctl *BookingController) CreateBooking(c *gin.Context) {
	var payload createBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "guest_id, check_in and check_out are required")
		return
	}

	booking, err := ctl.Bookings.CreateBooking(payload.GuestID, payload.CheckIn, payload.CheckOut, payload.RoomID, payload.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{
		"message":     "Booking successful",
		"booking_id":  booking.ID,
		"bookingCode": booking.BookingCode,
	})
}

// ConfirmBooking handles POST /api/bookings/confirm (multi-room, emails the guest).
func (ctl *BookingController) ConfirmBooking(c *gin.Context) {
	var payload confirmBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "name, email, check_in, check_out and room_numbers are required")
		return
	}

	result, err := ctl.Bookings.ConfirmBooking(
		payload.Name, payload.Email,
		payload.CheckIn, payload.CheckOut,
		payload.RoomNumbers, payload.Notes,
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, result)
}

// GetBookings handles GET /api/bookings?status=.
func (ctl *BookingController) GetBookings(c *gin.Context) {
	bookings, err := ctl.Bookings.ListBookings(c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	utils.JSONSuccess(c, http.StatusOK, out)
}

// GetBookingDetails handles GET /api/bookings/:id.
func (ctl *BookingController) GetBookingDetails(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := ctl.Bookings.GetBookingDetails(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, toBookingResponse(*booking))
}

// CancelBooking handles DELETE /api/bookings/:id.
func (ctl *BookingController) CancelBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	result, err := ctl.Bookings.CancelBookingByID(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

// CancelBookingByCode handles DELETE /api/bookings/code/:code.
func (ctl *BookingController) CancelBookingByCode(c *gin.Context) {
	result, err := ctl.Bookings.CancelBookingByCode(c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}
