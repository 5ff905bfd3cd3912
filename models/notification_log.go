package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EmailStatusSent   = "SENT"
	EmailStatusFailed = "FAILED"
)

// NotificationLog records every outbound booking-confirmation email,
// including the rooms/codes payload that was sent. Email dispatch is
// best-effort after the booking transaction commits, so this row is the
// only place a failed send is visible.
type NotificationLog struct {
	gorm.Model

	GuestID     uint           `gorm:"index;column:guest_id" json:"guestId"`
	Recipient   string         `gorm:"size:190" json:"recipient"`
	Subject     string         `gorm:"size:255" json:"subject"`
	Payload     datatypes.JSON `gorm:"column:payload" json:"payload,omitempty"`
	EmailStatus string         `gorm:"column:email_status;size:32" json:"emailStatus"`
	EmailError  string         `gorm:"column:email_error;type:text" json:"emailError,omitempty"`
}
