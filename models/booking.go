package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingStatusConfirmed = "Confirmed"
	BookingStatusCancelled = "Cancelled"
)

// Booking occupies one room for the half-open interval [CheckIn, CheckOut).
// Cancellation is a status transition, not a delete, so codes and history
// stay queryable. BookingCode is the guest-facing credential; the unique
// index is the real uniqueness guarantee, the random draw only the first line.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	GuestID uint  `gorm:"index;column:guest_id" json:"guestId"`
	RoomID  *uint `gorm:"index;column:room_id" json:"roomId,omitempty"`

	BookingCode string    `gorm:"column:booking_code;uniqueIndex;type:varchar(5)" json:"bookingCode"`
	Status      string    `gorm:"size:32" json:"status"`
	CheckIn     time.Time `gorm:"column:check_in;type:date" json:"-"`
	CheckOut    time.Time `gorm:"column:check_out;type:date" json:"-"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`

	Guest Guest `gorm:"foreignKey:GuestID;references:ID" json:"guest,omitempty"`
	Room  *Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}

func (b *Booking) Nights() int {
	n := int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}
