package services

import (
	"errors"
	"testing"
	"time"

	"hotel-booking-api/models"
	"hotel-booking-api/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNotifier records what would have been emailed.
type fakeNotifier struct {
	calls []fakeNotification
	err   error
}

type fakeNotification struct {
	to       string
	guest    string
	checkIn  string
	checkOut string
	rooms    []utils.BookedRoom
}

func (f *fakeNotifier) SendBookingConfirmation(toEmail, guestName, checkIn, checkOut string, rooms []utils.BookedRoom) error {
	f.calls = append(f.calls, fakeNotification{toEmail, guestName, checkIn, checkOut, rooms})
	return f.err
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestConfirmBooking_ValidationFailures(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &fakeNotifier{}
	svc := NewBookingService(db, notifier)

	cases := []struct {
		name        string
		guestName   string
		email       string
		checkIn     string
		checkOut    string
		roomNumbers []string
	}{
		{"reversed dates", "A", "a@x.com", "2025-06-03", "2025-06-01", []string{"101"}},
		{"equal dates", "A", "a@x.com", "2025-06-01", "2025-06-01", []string{"101"}},
		{"bad date format", "A", "a@x.com", "01-06-2025", "2025-06-03", []string{"101"}},
		{"empty room list", "A", "a@x.com", "2025-06-01", "2025-06-03", nil},
		{"malformed email", "A", "not-an-email", "2025-06-01", "2025-06-03", []string{"101"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ConfirmBooking(tc.guestName, tc.email, tc.checkIn, tc.checkOut, tc.roomNumbers, "")
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}

	assert.Empty(t, notifier.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmBooking_UnknownRoomAbortsWholeRequest(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &fakeNotifier{}
	svc := NewBookingService(db, notifier)

	mock.ExpectBegin()
	// guest exists
	mock.ExpectQuery("SELECT .* FROM `guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email"}).
			AddRow(1, "A", "a@x.com"))
	// room lookup comes back empty
	mock.ExpectQuery("SELECT .* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number"}))
	mock.ExpectRollback()

	_, err := svc.ConfirmBooking("A", "a@x.com", "2025-06-01", "2025-06-03", []string{"999"}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Contains(t, err.Error(), "999")

	// rollback means no booking, no email
	assert.Empty(t, notifier.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmBooking_OverlappingBookingConflicts(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &fakeNotifier{}
	svc := NewBookingService(db, notifier)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email"}).
			AddRow(1, "A", "a@x.com"))
	mock.ExpectQuery("SELECT .* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "type", "status"}).
			AddRow(7, "101", "Standard", models.RoomStatusBooked))
	// one confirmed booking already overlaps the requested range
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	mock.ExpectRollback()

	_, err := svc.ConfirmBooking("A", "a@x.com", "2025-06-01", "2025-06-03", []string{"101"}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrConflict)

	assert.Empty(t, notifier.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmBooking_SingleRoomHappyPath(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &fakeNotifier{}
	svc := NewBookingService(db, notifier)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email"}).
			AddRow(1, "A", "a@x.com"))
	mock.ExpectQuery("SELECT .* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "type", "status"}).
			AddRow(7, "101", "Standard", models.RoomStatusAvailable))
	// no overlapping booking
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	// generated code is unused
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectExec("INSERT INTO `bookings`").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("UPDATE `rooms`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// post-commit notification log
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `notification_logs`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result, err := svc.ConfirmBooking("A", "a@x.com", "2025-06-01", "2025-06-03", []string{"101"}, "sea view please")
	require.NoError(t, err)
	require.Len(t, result.Confirmations, 1)

	conf := result.Confirmations[0]
	assert.Equal(t, uint(42), conf.BookingID)
	assert.Equal(t, "101", conf.RoomNumber)
	assert.True(t, utils.IsValidBookingCodeFormat(conf.BookingCode), "code %q", conf.BookingCode)
	assert.Equal(t, "2025-06-01", result.CheckIn)
	assert.Equal(t, "2025-06-03", result.CheckOut)
	assert.Contains(t, result.Summary, "101")

	// exactly one email, covering the booked room and its code
	require.Len(t, notifier.calls, 1)
	call := notifier.calls[0]
	assert.Equal(t, "a@x.com", call.to)
	assert.Equal(t, "A", call.guest)
	require.Len(t, call.rooms, 1)
	assert.Equal(t, conf.BookingCode, call.rooms[0].Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmBooking_EmailFailureDoesNotFailBooking(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &fakeNotifier{err: errors.New("smtp down")}
	svc := NewBookingService(db, notifier)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email"}).
			AddRow(1, "A", "a@x.com"))
	mock.ExpectQuery("SELECT .* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "type", "status"}).
			AddRow(7, "101", "Standard", models.RoomStatusAvailable))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectExec("INSERT INTO `bookings`").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("UPDATE `rooms`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `notification_logs`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result, err := svc.ConfirmBooking("A", "a@x.com", "2025-06-01", "2025-06-03", []string{"101"}, "")
	require.NoError(t, err, "a committed booking survives a failed email")
	assert.Len(t, result.Confirmations, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingByCode_RejectsBadFormat(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewBookingService(db, &fakeNotifier{})

	for _, code := range []string{"", "AB", "TOOLONG", "AB 1C"} {
		_, err := svc.CancelBookingByCode(code)
		assert.ErrorIs(t, err, models.ErrValidation, "code=%q", code)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingByCode_UnknownCode(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewBookingService(db, &fakeNotifier{})

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.CancelBookingByCode("ZZZZZ")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingByCode_ReleasesRoom(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewBookingService(db, &fakeNotifier{})

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "guest_id", "room_id", "booking_code", "status", "check_in", "check_out"}).
			AddRow(42, 1, 7, "K7Q2F", models.BookingStatusConfirmed, date("2025-06-01"), date("2025-06-03")))
	mock.ExpectExec("UPDATE `bookings`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "status"}).
			AddRow(7, "101", models.RoomStatusBooked))
	// no other confirmed booking holds the room
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectExec("UPDATE `rooms`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := svc.CancelBookingByCode("k7q2f")
	require.NoError(t, err)
	assert.Equal(t, uint(42), result.BookingID)
	assert.Equal(t, "101", result.RoomNumber)
	assert.Equal(t, "2025-06-01", result.CheckIn)
	assert.Equal(t, "2025-06-03", result.CheckOut)
	assert.Contains(t, result.Summary, "101")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingByCode_KeepsRoomWhenOtherBookingRemains(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewBookingService(db, &fakeNotifier{})

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "guest_id", "room_id", "booking_code", "status", "check_in", "check_out"}).
			AddRow(42, 1, 7, "K7Q2F", models.BookingStatusConfirmed, date("2025-06-01"), date("2025-06-03")))
	mock.ExpectExec("UPDATE `bookings`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "status"}).
			AddRow(7, "101", models.RoomStatusBooked))
	// another confirmed booking still references the room: leave it Booked
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	mock.ExpectCommit()

	result, err := svc.CancelBookingByCode("K7Q2F")
	require.NoError(t, err)
	assert.Equal(t, "101", result.RoomNumber)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBookings_DistinctEmptyCondition(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewBookingService(db, &fakeNotifier{})

	mock.ExpectQuery("SELECT .* FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.ListBookings("")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNoBookings)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBooking_UnknownGuest(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewBookingService(db, &fakeNotifier{})

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.CreateBooking(99, "2025-06-01", "2025-06-03", nil, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrGuestNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBooking_RoomlessLegacyPath(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewBookingService(db, &fakeNotifier{})

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email"}).
			AddRow(1, "A", "a@x.com"))
	// code uniqueness check
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectExec("INSERT INTO `bookings`").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectCommit()

	booking, err := svc.CreateBooking(1, "2025-06-01", "2025-06-03", nil, "")
	require.NoError(t, err)
	assert.Equal(t, uint(42), booking.ID)
	assert.Nil(t, booking.RoomID)
	assert.True(t, utils.IsValidBookingCodeFormat(booking.BookingCode))
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}
