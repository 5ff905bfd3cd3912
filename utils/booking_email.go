package utils

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/wneessen/go-mail"
)

// BookedRoom is one confirmed room in the guest email: number, type and
// the booking code used for self-service cancellation.
type BookedRoom struct {
	Number string `json:"roomNumber"`
	Type   string `json:"type,omitempty"`
	Code   string `json:"bookingCode"`
}

// SMTPConfig is resolved once at startup and injected (see config.Load).
// When Host or Username is empty the notifier mock-sends to the log, which
// keeps local development working without a mail server.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
}

type SMTPNotifier struct {
	cfg SMTPConfig
}

func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg}
}

// SendBookingConfirmation delivers one email covering every room in the
// reservation. Callers treat failure as best-effort: log it, record it,
// never roll back the committed booking.
func (n *SMTPNotifier) SendBookingConfirmation(toEmail, guestName, checkIn, checkOut string, rooms []BookedRoom) error {
	subject := "Booking Confirmation — " + n.fromName()

	if n.cfg.Host == "" || n.cfg.Username == "" {
		log.Printf("[MOCK EMAIL] to:%s checkin:%s checkout:%s rooms:%s",
			toEmail, checkIn, checkOut, bookedRoomsText(rooms))
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(n.fromName(), n.cfg.Username); err != nil {
		return fmt.Errorf("invalid sender: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, confirmationPlainBody(guestName, checkIn, checkOut, rooms, n.fromName()))
	msg.AddAlternativeString(mail.TypeTextHTML, confirmationHTMLBody(guestName, checkIn, checkOut, rooms, n.fromName()))

	client, err := mail.NewClient(n.cfg.Host,
		mail.WithPort(n.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.cfg.Username),
		mail.WithPassword(n.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("send to %s: %w", toEmail, err)
	}

	log.Printf("confirmation email sent to %s (%d rooms)", MaskEmail(toEmail), len(rooms))
	return nil
}

func (n *SMTPNotifier) fromName() string {
	if strings.TrimSpace(n.cfg.FromName) == "" {
		return "Hotel Reservations"
	}
	return n.cfg.FromName
}

func bookedRoomsText(rooms []BookedRoom) string {
	if len(rooms) == 0 {
		return "N/A"
	}
	var b strings.Builder
	for _, r := range rooms {
		if r.Type != "" {
			fmt.Fprintf(&b, " - Room %s (%s): code %s\n", r.Number, r.Type, r.Code)
		} else {
			fmt.Fprintf(&b, " - Room %s: code %s\n", r.Number, r.Code)
		}
	}
	return b.String()
}

func confirmationPlainBody(guestName, checkIn, checkOut string, rooms []BookedRoom, fromName string) string {
	return fmt.Sprintf(
		"Dear %s,\n\n"+
			"Thank you for booking with us! Here are your booking details:\n\n"+
			"Check-In: %s\n"+
			"Check-Out: %s\n"+
			"Rooms and booking codes:\n%s\n"+
			"Keep your booking codes safe — you will need them to cancel.\n\n"+
			"Best regards,\n%s",
		guestName, checkIn, checkOut, bookedRoomsText(rooms), fromName,
	)
}

func confirmationHTMLBody(guestName, checkIn, checkOut string, rooms []BookedRoom, fromName string) string {
	var items strings.Builder
	for _, r := range rooms {
		label := "Room " + r.Number
		if r.Type != "" {
			label += " (" + r.Type + ")"
		}
		fmt.Fprintf(&items, `<li class="room-item">%s — code <strong>%s</strong></li>`, label, r.Code)
	}

	return fmt.Sprintf(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Booking Confirmation</title>
<style>
body { background:#f5f7fb; font-family:Arial, Helvetica, sans-serif; color:#222; }
.container { max-width:700px; margin:20px auto; }
.card { background:#fff; border:1px solid #e6eef6; padding:24px; border-radius:8px; }
.label { font-weight:700; width:160px; display:inline-block; vertical-align:top; }
.room-list { margin:12px 0 18px 0; padding-left:18px; }
.room-item { margin:6px 0; }
</style>
</head>
<body>
<div class="container">
  <div class="card">
    <h2>Booking Confirmation</h2>
    <p>Dear %s,</p>
    <p>Thank you for choosing our hotel. Below are your booking details:</p>

    <p><span class="label">Check-In:</span> %s</p>
    <p><span class="label">Check-Out:</span> %s</p>
    <p><span class="label">Rooms:</span></p>
    <ul class="room-list">%s</ul>

    <p>Keep your booking codes safe — you will need them to cancel.</p>
    <p>Best regards,<br>%s</p>
  </div>
</div>
</body>
</html>`,
		guestName, checkIn, checkOut, items.String(), fromName,
	)
}

// MaskEmail returns a masked email for safe logging.
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}
	local := parts[0]
	if len(local) > 2 {
		local = local[:1] + strings.Repeat("*", len(local)-2) + local[len(local)-1:]
	} else if len(local) == 2 {
		local = local[:1] + "*"
	}
	return local + "@" + parts[1]
}

// ParseSMTPPort falls back to 587 on a missing or unparsable SMTP_PORT.
func ParseSMTPPort(raw string) int {
	p, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || p <= 0 {
		return 587
	}
	return p
}
