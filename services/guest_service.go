package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"hotel-booking-api/models"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

// FindOrCreate is the idempotent lookup-or-insert by email. The second
// call with the same email returns the existing guest unchanged.
func (s *GuestService) FindOrCreate(name, email string) (*models.Guest, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if !emailRe.MatchString(email) {
		return nil, fmt.Errorf("%w: malformed email %q", models.ErrValidation, email)
	}
	return findOrCreateGuest(s.DB, name, email)
}

func (s *GuestService) GetByID(id uint) (*models.Guest, error) {
	var guest models.Guest
	if err := s.DB.First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrGuestNotFound
		}
		return nil, fmt.Errorf("failed to load guest: %w", err)
	}
	return &guest, nil
}

func (s *GuestService) GetAll() ([]models.Guest, error) {
	var guests []models.Guest
	if err := s.DB.Order("created_at DESC").Find(&guests).Error; err != nil {
		return nil, fmt.Errorf("failed to load guests: %w", err)
	}
	return guests, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// findOrCreateGuest runs against whatever handle the caller holds, so the
// booking transaction can reuse it with its own tx.
func findOrCreateGuest(tx *gorm.DB, name, email string) (*models.Guest, error) {
	var guest models.Guest
	err := tx.Where("email = ?", email).First(&guest).Error
	if err == nil {
		return &guest, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up guest: %w", err)
	}

	guest = models.Guest{FullName: name, Email: email}
	if err := tx.Create(&guest).Error; err != nil {
		if isDuplicateKeyErr(err) {
			// Lost a create race; the row exists now.
			var existing models.Guest
			if err2 := tx.Where("email = ?", email).First(&existing).Error; err2 == nil {
				return &existing, nil
			}
			return nil, fmt.Errorf("%w: duplicate guest email %s", models.ErrConflict, email)
		}
		return nil, fmt.Errorf("failed to create guest: %w", err)
	}
	return &guest, nil
}

// isDuplicateKeyErr detects a MySQL 1062 unique-key violation.
func isDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}
