package config

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hotel-rooms/models"
	"hotel-rooms/stores"
)

var defaultRoomTypes = []models.RoomType{
	{TypeName: "Standard", Description: "Standard Room", MaxGuests: 2},
	{TypeName: "Superior", Description: "Superior Room", MaxGuests: 3},
	{TypeName: "Deluxe", Description: "Deluxe Room", MaxGuests: 4},
	{TypeName: "Connecting", Description: "Connecting Room", MaxGuests: 5},
}

var defaultHotel = models.Hotel{Name: "Main Hotel", Address: "-", Email: "frontdesk@hotel.local"}

// SeedDatabase inserts the default admin, hotel and room types into empty tables.
func SeedDatabase(db *gorm.DB, cfg Config, log *zap.Logger) error {
	var adminCount int64
	if err := db.Model(&models.Admin{}).Count(&adminCount).Error; err != nil {
		return err
	}
	if adminCount == 0 {
		admin, err := defaultAdmin(cfg)
		if err != nil {
			return err
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		log.Info("default admin seeded", zap.String("username", admin.Username))
	}

	var hotelCount int64
	if err := db.Model(&models.Hotel{}).Count(&hotelCount).Error; err != nil {
		return err
	}
	if hotelCount == 0 {
		hotel := defaultHotel
		if err := db.Create(&hotel).Error; err != nil {
			return err
		}
		log.Info("default hotel seeded", zap.Uint("hotel_id", hotel.ID))
	}

	var rtCount int64
	if err := db.Model(&models.RoomType{}).Count(&rtCount).Error; err != nil {
		return err
	}
	if rtCount == 0 {
		roomTypes := append([]models.RoomType(nil), defaultRoomTypes...)
		if err := db.Create(&roomTypes).Error; err != nil {
			return err
		}
		log.Info("room types seeded", zap.Int("count", len(roomTypes)))
	}
	return nil
}

// SeedMemory does what SeedDatabase does for the in-memory store.
func SeedMemory(ctx context.Context, mem *stores.MemoryDB, cfg Config, log *zap.Logger) error {
	admin, err := defaultAdmin(cfg)
	if err != nil {
		return err
	}
	mem.PutAdmin(admin)

	hotel := defaultHotel
	if err := mem.Hotels().Create(ctx, &hotel); err != nil {
		return err
	}
	for _, rt := range defaultRoomTypes {
		rt := rt
		if err := mem.RoomTypes().Create(ctx, &rt); err != nil {
			return err
		}
	}
	log.Info("in-memory store seeded", zap.String("admin", admin.Username))
	return nil
}

func defaultAdmin(cfg Config) (models.Admin, error) {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return models.Admin{}, errors.New("seed admin credentials are empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.Admin{}, err
	}
	return models.Admin{
		FullName: "Admin User",
		Username: cfg.AdminUsername,
		Password: string(hash),
		Role:     models.RoleAdmin,
	}, nil
}
