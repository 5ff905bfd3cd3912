package config

import (
	"log"
	"os"
	"time"

	"hotel-booking-api/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// ConnectDatabase opens the MySQL connection, runs migrations and seeds
// baseline data. Sets the package-level DB used by the function-style
// controllers; service structs get the handle injected instead.
func ConnectDatabase(cfg *Config) error {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order.
	if err := DB.AutoMigrate(
		&models.Admin{},
		&models.HotelSetting{},
		&models.RoomType{},
		&models.Room{},
		&models.Guest{},
		&models.Booking{},
		&models.NotificationLog{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

// SeedDatabase provisions the default admin, room types and a starter set
// of rooms when the tables are empty. Room provisioning is otherwise out
// of band; bookings never create rooms.
func SeedDatabase() {
	var adminCount int64
	DB.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Admin User",
				Username: "admin@hotel.local",
				Password: string(hash),
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	var rtCount int64
	DB.Model(&models.RoomType{}).Count(&rtCount)
	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{TypeName: "Standard", Description: "Standard Room", MaxGuests: 2},
			{TypeName: "Superior", Description: "Superior Room", MaxGuests: 3},
			{TypeName: "Deluxe", Description: "Deluxe Room", MaxGuests: 4},
		}
		if err := DB.Create(&roomTypes).Error; err != nil {
			log.Printf("warning: failed to seed room types: %v", err)
		} else {
			log.Println("RoomTypes seeded")
		}
	}

	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		var standard models.RoomType
		var typeID *uint
		if err := DB.Where("type_name = ?", "Standard").First(&standard).Error; err == nil {
			typeID = &standard.ID
		}
		rooms := []models.Room{
			{RoomNumber: "101", Type: "Standard", Floor: "1", PricePerNight: 80, MaxOccupancy: 2, Status: models.RoomStatusAvailable, RoomTypeID: typeID},
			{RoomNumber: "102", Type: "Standard", Floor: "1", PricePerNight: 80, MaxOccupancy: 2, Status: models.RoomStatusAvailable, RoomTypeID: typeID},
			{RoomNumber: "201", Type: "Superior", Floor: "2", PricePerNight: 120, MaxOccupancy: 3, Status: models.RoomStatusAvailable},
			{RoomNumber: "202", Type: "Deluxe", Floor: "2", PricePerNight: 180, MaxOccupancy: 4, Status: models.RoomStatusAvailable},
		}
		if err := DB.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
		} else {
			log.Println("Rooms seeded")
		}
	}
}
