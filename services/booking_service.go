package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hotel-booking-api/models"
	"hotel-booking-api/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const codeRetryBudget = 5

type BookingService struct {
	DB       *gorm.DB
	Notifier BookingNotifier
}

func NewBookingService(db *gorm.DB, notifier BookingNotifier) *BookingService {
	return &BookingService{DB: db, Notifier: notifier}
}

// RoomConfirmation is the per-room outcome of a multi-room reservation.
type RoomConfirmation struct {
	BookingID   uint   `json:"bookingId"`
	RoomNumber  string `json:"roomNumber"`
	RoomType    string `json:"roomType,omitempty"`
	BookingCode string `json:"bookingCode"`
}

// ConfirmResult is what the confirm endpoint returns to the caller.
type ConfirmResult struct {
	GuestID       uint               `json:"guestId"`
	GuestName     string             `json:"guestName"`
	CheckIn       string             `json:"checkIn"`
	CheckOut      string             `json:"checkOut"`
	Confirmations []RoomConfirmation `json:"confirmations"`
	Summary       string             `json:"summary"`
}

// CancelResult describes the freed reservation.
type CancelResult struct {
	BookingID  uint   `json:"bookingId"`
	RoomNumber string `json:"roomNumber,omitempty"`
	CheckIn    string `json:"checkIn"`
	CheckOut   string `json:"checkOut"`
	Summary    string `json:"summary"`
}

// ConfirmBooking books every requested room for the guest in a single
// transaction: the whole list is all-or-nothing, and each room row is
// locked before the overlap re-check so concurrent overlapping requests
// serialize at the store. The confirmation email goes out only after the
// transaction commits and never rolls it back.
func (s *BookingService) ConfirmBooking(name, email, checkIn, checkOut string, roomNumbers []string, notes string) (*ConfirmResult, error) {
	ci, co, err := utils.ParseDateRange(checkIn, checkOut)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	if len(roomNumbers) == 0 {
		return nil, fmt.Errorf("%w: room list is empty", models.ErrValidation)
	}
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if !emailRe.MatchString(email) {
		return nil, fmt.Errorf("%w: malformed email %q", models.ErrValidation, email)
	}

	var guest models.Guest
	confirmations := make([]RoomConfirmation, 0, len(roomNumbers))

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		g, err := findOrCreateGuest(tx, name, email)
		if err != nil {
			return err
		}
		guest = *g

		for _, raw := range roomNumbers {
			number := strings.TrimSpace(raw)
			if number == "" {
				return fmt.Errorf("%w: empty room number", models.ErrValidation)
			}

			var room models.Room
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("room_number = ?", number).
				First(&room).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w %s", models.ErrRoomNotFound, number)
				}
				return fmt.Errorf("failed to load room %s: %w", number, err)
			}

			if err := ensureRoomFree(tx, room.ID, ci, co, 0); err != nil {
				return err
			}

			code, err := uniqueBookingCode(tx)
			if err != nil {
				return err
			}

			roomID := room.ID
			booking := models.Booking{
				GuestID:     guest.ID,
				RoomID:      &roomID,
				BookingCode: code,
				Status:      models.BookingStatusConfirmed,
				CheckIn:     ci,
				CheckOut:    co,
				Notes:       notes,
			}
			if err := tx.Create(&booking).Error; err != nil {
				if isDuplicateKeyErr(err) {
					return models.ErrCodeExhausted
				}
				return fmt.Errorf("failed to create booking for room %s: %w", number, err)
			}

			if err := tx.Model(&models.Room{}).
				Where("id = ?", room.ID).
				Update("status", models.RoomStatusBooked).Error; err != nil {
				return fmt.Errorf("failed to update room %s status: %w", number, err)
			}

			confirmations = append(confirmations, RoomConfirmation{
				BookingID:   booking.ID,
				RoomNumber:  room.RoomNumber,
				RoomType:    room.Type,
				BookingCode: code,
			})
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	result := &ConfirmResult{
		GuestID:       guest.ID,
		GuestName:     guest.FullName,
		CheckIn:       utils.FormatDate(ci),
		CheckOut:      utils.FormatDate(co),
		Confirmations: confirmations,
	}
	result.Summary = confirmSummary(guest.FullName, result)

	s.notifyConfirmation(guest, result)
	return result, nil
}

// CreateBooking is the legacy single-room path: the guest already exists
// and the room is optional.
func (s *BookingService) CreateBooking(guestID uint, checkIn, checkOut string, roomID *uint, notes string) (*models.Booking, error) {
	ci, co, err := utils.ParseDateRange(checkIn, checkOut)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	var booking models.Booking
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var guest models.Guest
		if err := tx.First(&guest, guestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrGuestNotFound
			}
			return fmt.Errorf("failed to load guest: %w", err)
		}

		if roomID != nil {
			var room models.Room
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&room, *roomID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w id=%d", models.ErrRoomNotFound, *roomID)
				}
				return fmt.Errorf("failed to load room %d: %w", *roomID, err)
			}
			if err := ensureRoomFree(tx, room.ID, ci, co, 0); err != nil {
				return err
			}
		}

		code, err := uniqueBookingCode(tx)
		if err != nil {
			return err
		}

		booking = models.Booking{
			GuestID:     guestID,
			RoomID:      roomID,
			BookingCode: code,
			Status:      models.BookingStatusConfirmed,
			CheckIn:     ci,
			CheckOut:    co,
			Notes:       notes,
		}
		if err := tx.Create(&booking).Error; err != nil {
			if isDuplicateKeyErr(err) {
				return models.ErrCodeExhausted
			}
			return fmt.Errorf("failed to create booking: %w", err)
		}

		if roomID != nil {
			if err := tx.Model(&models.Room{}).
				Where("id = ?", *roomID).
				Update("status", models.RoomStatusBooked).Error; err != nil {
				return fmt.Errorf("failed to update room status: %w", err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &booking, nil
}

// CancelBookingByCode cancels via the guest-facing booking code. The
// status flip and the room release happen in one transaction so a crash
// can't leave the room stuck on Booked.
func (s *BookingService) CancelBookingByCode(code string) (*CancelResult, error) {
	norm := utils.NormalizeBookingCode(code)
	if !utils.IsValidBookingCodeFormat(norm) {
		return nil, fmt.Errorf("%w: booking code must be 5 characters A-Z 0-9", models.ErrValidation)
	}
	return s.cancel(func(tx *gorm.DB) *gorm.DB {
		return tx.Where("booking_code = ?", norm)
	})
}

// CancelBookingByID cancels via the internal booking identifier.
func (s *BookingService) CancelBookingByID(id uint) (*CancelResult, error) {
	return s.cancel(func(tx *gorm.DB) *gorm.DB {
		return tx.Where("id = ?", id)
	})
}

func (s *BookingService) cancel(scope func(tx *gorm.DB) *gorm.DB) (*CancelResult, error) {
	var result CancelResult

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := scope(tx.Clauses(clause.Locking{Strength: "UPDATE"})).
			Where("status = ?", models.BookingStatusConfirmed).
			First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrBookingNotFound
			}
			return fmt.Errorf("failed to load booking: %w", err)
		}

		if err := tx.Model(&booking).
			Update("status", models.BookingStatusCancelled).Error; err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}

		roomNumber := ""
		if booking.RoomID != nil {
			var room models.Room
			if err := tx.First(&room, *booking.RoomID).Error; err != nil {
				return fmt.Errorf("failed to load room: %w", err)
			}
			roomNumber = room.RoomNumber

			// Release the status flag only when no other confirmed
			// booking still references the room.
			var remaining int64
			if err := tx.Model(&models.Booking{}).
				Where("room_id = ? AND status = ? AND id <> ?", room.ID, models.BookingStatusConfirmed, booking.ID).
				Count(&remaining).Error; err != nil {
				return fmt.Errorf("failed to count remaining bookings: %w", err)
			}
			if remaining == 0 {
				if err := tx.Model(&models.Room{}).
					Where("id = ?", room.ID).
					Update("status", models.RoomStatusAvailable).Error; err != nil {
					return fmt.Errorf("failed to release room: %w", err)
				}
			}
		}

		result = CancelResult{
			BookingID:  booking.ID,
			RoomNumber: roomNumber,
			CheckIn:    utils.FormatDate(booking.CheckIn),
			CheckOut:   utils.FormatDate(booking.CheckOut),
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if result.RoomNumber != "" {
		result.Summary = fmt.Sprintf("Booking %d cancelled; room %s is free again for %s to %s",
			result.BookingID, result.RoomNumber, result.CheckIn, result.CheckOut)
	} else {
		result.Summary = fmt.Sprintf("Booking %d cancelled (%s to %s)",
			result.BookingID, result.CheckIn, result.CheckOut)
	}
	return &result, nil
}

// ListBookings returns all bookings, optionally filtered by status.
func (s *BookingService) ListBookings(statusFilter string) ([]models.Booking, error) {
	q := s.DB.
		Preload("Guest").
		Preload("Room").
		Order("created_at DESC")

	if f := strings.TrimSpace(statusFilter); f != "" {
		q = q.Where("status = ?", f)
	}

	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	if len(bookings) == 0 {
		return nil, models.ErrNoBookings
	}
	return bookings, nil
}

// GetBookingDetails loads one booking with its relations.
func (s *BookingService) GetBookingDetails(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Guest").Preload("Room").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to retrieve booking: %w", err)
	}
	return &booking, nil
}

// ensureRoomFree re-runs the overlap predicate inside the caller's
// transaction. excludeID skips one booking (unused on create, handy when
// amending).
func ensureRoomFree(tx *gorm.DB, roomID uint, ci, co time.Time, excludeID uint) error {
	q := tx.Model(&models.Booking{}).
		Where("room_id = ? AND status = ?", roomID, models.BookingStatusConfirmed).
		Where("NOT (check_out <= ? OR check_in >= ?)", ci, co)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var overlapping int64
	if err := q.Count(&overlapping).Error; err != nil {
		return fmt.Errorf("failed to check room availability: %w", err)
	}
	if overlapping > 0 {
		return models.ErrRoomUnavailable
	}
	return nil
}

// uniqueBookingCode draws codes until one is unused, bounded by the retry
// budget. The unique index on booking_code stays the real guarantee; a
// collision slipping past this check surfaces as a duplicate-key error on
// insert. Cancelled bookings keep their code, so codes are never reissued.
func uniqueBookingCode(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < codeRetryBudget; attempt++ {
		code, err := utils.GenerateBookingCode(utils.BookingCodeLength)
		if err != nil {
			return "", fmt.Errorf("failed to generate booking code: %w", err)
		}

		var taken int64
		if err := tx.Model(&models.Booking{}).Unscoped().
			Where("booking_code = ?", code).
			Count(&taken).Error; err != nil {
			return "", fmt.Errorf("failed to check booking code: %w", err)
		}
		if taken == 0 {
			return code, nil
		}
		log.Printf("booking code collision (attempt %d) - retrying", attempt+1)
	}
	return "", models.ErrCodeExhausted
}

func confirmSummary(guestName string, r *ConfirmResult) string {
	numbers := make([]string, 0, len(r.Confirmations))
	for _, c := range r.Confirmations {
		numbers = append(numbers, c.RoomNumber)
	}
	return fmt.Sprintf("Booked %d room(s) [%s] for %s from %s to %s",
		len(r.Confirmations), strings.Join(numbers, ", "), guestName, r.CheckIn, r.CheckOut)
}

// notifyConfirmation sends the single post-commit email and records the
// outcome. Failures are logged and persisted, never returned.
func (s *BookingService) notifyConfirmation(guest models.Guest, r *ConfirmResult) {
	if s.Notifier == nil {
		return
	}

	rooms := make([]utils.BookedRoom, 0, len(r.Confirmations))
	for _, c := range r.Confirmations {
		rooms = append(rooms, utils.BookedRoom{Number: c.RoomNumber, Type: c.RoomType, Code: c.BookingCode})
	}

	payload, _ := json.Marshal(rooms)
	entry := models.NotificationLog{
		GuestID:     guest.ID,
		Recipient:   guest.Email,
		Subject:     "Booking Confirmation",
		Payload:     datatypes.JSON(payload),
		EmailStatus: models.EmailStatusSent,
	}

	if err := s.Notifier.SendBookingConfirmation(guest.Email, guest.FullName, r.CheckIn, r.CheckOut, rooms); err != nil {
		log.Printf("warning: confirmation email to %s failed: %v", utils.MaskEmail(guest.Email), err)
		entry.EmailStatus = models.EmailStatusFailed
		entry.EmailError = err.Error()
	}

	if err := s.DB.Create(&entry).Error; err != nil {
		log.Printf("warning: failed to record notification log: %v", err)
	}
}
