package services

import (
	"fmt"

	"hotel-booking-api/models"
	"hotel-booking-api/utils"

	"gorm.io/gorm"
)

type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// FindFreeRooms returns every room without a confirmed booking whose
// half-open interval [check_in, check_out) overlaps the requested range.
// Two intervals overlap iff NOT (b.check_out <= checkIn OR b.check_in >= checkOut),
// so a checkout day doubles as the next guest's check-in day.
//
// The result is advisory: ConfirmBooking re-runs the overlap check inside
// its own transaction with the room row locked.
func (s *AvailabilityService) FindFreeRooms(checkIn, checkOut string) ([]models.Room, error) {
	ci, co, err := utils.ParseDateRange(checkIn, checkOut)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	booked := s.DB.Model(&models.Booking{}).
		Select("room_id").
		Where("room_id IS NOT NULL").
		Where("status = ?", models.BookingStatusConfirmed).
		Where("NOT (check_out <= ? OR check_in >= ?)", ci, co)

	var rooms []models.Room
	if err := s.DB.
		Where("id NOT IN (?)", booked).
		Order("room_number ASC").
		Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to query free rooms: %w", err)
	}

	// "Checked, none free" is a distinct condition, not an empty success.
	if len(rooms) == 0 {
		return nil, models.ErrNoRoomsAvailable
	}
	return rooms, nil
}
