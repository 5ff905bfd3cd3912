package services

import "hotel-booking-api/utils"

// BookingNotifier is the outbound guest-notification port. The SMTP
// implementation lives in utils; tests plug in a fake.
type BookingNotifier interface {
	SendBookingConfirmation(toEmail, guestName, checkIn, checkOut string, rooms []utils.BookedRoom) error
}
