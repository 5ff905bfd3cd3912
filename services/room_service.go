package services

import (
	"errors"
	"fmt"

	"hotel-booking-api/models"

	"gorm.io/gorm"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func (s *RoomService) Create(room *models.Room) error {
	if room.Status == "" {
		room.Status = models.RoomStatusAvailable
	}
	if err := s.DB.Create(room).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return fmt.Errorf("%w: room number %s already exists", models.ErrConflict, room.RoomNumber)
		}
		return err
	}
	return nil
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Preload("RoomType").Order("room_number ASC").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.Preload("RoomType").First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (s *RoomService) Update(room *models.Room) error {
	res := s.DB.Model(&models.Room{}).Where("id = ?", room.ID).Updates(room)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrRoomNotFound
	}
	return nil
}

func (s *RoomService) Delete(id uint) error {
	res := s.DB.Delete(&models.Room{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrRoomNotFound
	}
	return nil
}
