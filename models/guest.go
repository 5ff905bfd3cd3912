package models

import (
	"gorm.io/gorm"
)

// Guest is the booking owner. Created lazily on first booking
// (lookup-or-create by email), so email carries the unique index.
type Guest struct {
	gorm.Model

	FullName string `json:"fullName"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(190)"`

	Bookings []Booking `gorm:"foreignKey:GuestID" json:"bookings,omitempty"`
}
