package models

import (
	"gorm.io/gorm"
)

const (
	RoomStatusAvailable = "Available"
	RoomStatusBooked    = "Booked"
)

type Room struct {
	gorm.Model

	// Nullable so a room can exist before its type is assigned.
	RoomTypeID *uint  `json:"roomTypeId,omitempty" gorm:"column:room_type_id"`
	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`

	Type          string  `json:"type"`
	Status        string  `json:"status" gorm:"size:32;default:Available"`
	Floor         string  `json:"floor" gorm:"type:varchar(10)"`
	PricePerNight float64 `json:"pricePerNight" gorm:"column:price_per_night"`
	MaxOccupancy  int     `json:"maxOccupancy" gorm:"column:max_occupancy"`
	Description   string  `json:"description" gorm:"type:text"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`
}
