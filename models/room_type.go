package models

import "gorm.io/gorm"

type RoomType struct {
	gorm.Model

	TypeName    string `json:"typeName" gorm:"column:type_name;uniqueIndex;type:varchar(100)"`
	Description string `json:"description" gorm:"type:text"`
	MaxGuests   int    `json:"maxGuests" gorm:"column:max_guests"`
}
