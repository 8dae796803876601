package stores

import (
	"context"

	"gorm.io/gorm"

	"hotel-rooms/models"
)

type GormRoomTypeStore struct {
	DB *gorm.DB
}

func NewGormRoomTypeStore(db *gorm.DB) *GormRoomTypeStore {
	return &GormRoomTypeStore{DB: db}
}

func (s *GormRoomTypeStore) List(ctx context.Context) ([]models.RoomType, error) {
	var types []models.RoomType
	err := s.DB.WithContext(ctx).Order("id").Find(&types).Error
	return types, err
}

func (s *GormRoomTypeStore) FindByID(ctx context.Context, id uint) (*models.RoomType, error) {
	var rt models.RoomType
	if err := s.DB.WithContext(ctx).First(&rt, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &rt, nil
}

func (s *GormRoomTypeStore) Create(ctx context.Context, rt *models.RoomType) error {
	return translateError(s.DB.WithContext(ctx).Create(rt).Error)
}

func (s *GormRoomTypeStore) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.RoomType{}, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type GormHotelStore struct {
	DB *gorm.DB
}

func NewGormHotelStore(db *gorm.DB) *GormHotelStore {
	return &GormHotelStore{DB: db}
}

func (s *GormHotelStore) List(ctx context.Context) ([]models.Hotel, error) {
	var hotels []models.Hotel
	err := s.DB.WithContext(ctx).Order("id").Find(&hotels).Error
	return hotels, err
}

func (s *GormHotelStore) FindByID(ctx context.Context, id uint) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := s.DB.WithContext(ctx).First(&hotel, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &hotel, nil
}

func (s *GormHotelStore) Create(ctx context.Context, h *models.Hotel) error {
	return translateError(s.DB.WithContext(ctx).Create(h).Error)
}

func (s *GormHotelStore) Save(ctx context.Context, h *models.Hotel) error {
	return translateError(s.DB.WithContext(ctx).Save(h).Error)
}

type GormAdminStore struct {
	DB *gorm.DB
}

func NewGormAdminStore(db *gorm.DB) *GormAdminStore {
	return &GormAdminStore{DB: db}
}

func (s *GormAdminStore) FindByID(ctx context.Context, id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.WithContext(ctx).First(&admin, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &admin, nil
}

func (s *GormAdminStore) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, translateError(err)
	}
	return &admin, nil
}
