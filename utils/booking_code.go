package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"regexp"
	"strings"
)

const bookingCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// BookingCodeLength is the guest-facing code size, e.g. "K7Q2F".
const BookingCodeLength = 5

var bookingCodeRe = regexp.MustCompile(`^[A-Z0-9]{5}$`)

// GenerateBookingCode draws n characters from A-Z0-9 with crypto/rand.
// rand.Int over the charset length avoids modulo bias. Uniqueness is the
// caller's problem: collide-check against the store and retry.
func GenerateBookingCode(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(bookingCodeCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(bookingCodeCharset[num.Int64()])
	}
	return sb.String(), nil
}

// NormalizeBookingCode uppercases and strips surrounding noise so guest
// input like " k7q2f " still resolves.
func NormalizeBookingCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func IsValidBookingCodeFormat(code string) bool {
	return bookingCodeRe.MatchString(NormalizeBookingCode(code))
}
