package services

import (
	"fmt"

	"hotel-booking-api/models"

	"gorm.io/gorm"
)

type RoomTypeService struct {
	DB *gorm.DB
}

func NewRoomTypeService(db *gorm.DB) *RoomTypeService {
	return &RoomTypeService{DB: db}
}

func (s *RoomTypeService) Create(rt *models.RoomType) error {
	if err := s.DB.Create(rt).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return fmt.Errorf("%w: room type %s already exists", models.ErrConflict, rt.TypeName)
		}
		return err
	}
	return nil
}

func (s *RoomTypeService) GetAll() ([]models.RoomType, error) {
	var types []models.RoomType
	err := s.DB.Order("type_name ASC").Find(&types).Error
	return types, err
}

func (s *RoomTypeService) Delete(id uint) error {
	res := s.DB.Delete(&models.RoomType{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: room type", models.ErrNotFound)
	}
	return nil
}
