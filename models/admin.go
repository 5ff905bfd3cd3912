package models

import "gorm.io/gorm"

type Admin struct {
	gorm.Model

	FullName string `json:"full_name"`
	Username string `gorm:"uniqueIndex;type:varchar(190)" json:"username"`
	Password string `json:"-"`
}
