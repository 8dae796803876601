package stores

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"hotel-rooms/models"
)

// GormBookingStore reads the bookings table.
type GormBookingStore struct {
	DB *gorm.DB
}

func NewGormBookingStore(db *gorm.DB) *GormBookingStore {
	return &GormBookingStore{DB: db}
}

func (s *GormBookingStore) FindOne(ctx context.Context, f BookingFilter) (*models.Booking, error) {
	var booking models.Booking
	if err := applyBookingFilter(s.DB.WithContext(ctx).Model(&models.Booking{}), f).Take(&booking).Error; err != nil {
		return nil, translateError(err)
	}
	return &booking, nil
}

func (s *GormBookingStore) DistinctRoomIDs(ctx context.Context, f BookingFilter) ([]uint, error) {
	var ids []uint
	err := applyBookingFilter(s.DB.WithContext(ctx).Model(&models.Booking{}), f).
		Where("room_id IS NOT NULL").
		Distinct().
		Pluck("room_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("distinct booked rooms: %w", err)
	}
	return ids, nil
}

func applyBookingFilter(tx *gorm.DB, f BookingFilter) *gorm.DB {
	if f.RoomID != nil {
		tx = tx.Where("room_id = ?", *f.RoomID)
	}
	if len(f.Statuses) > 0 {
		tx = tx.Where("status IN ?", f.Statuses)
	}
	// Closed interval: a stay ending on the requested start day still overlaps.
	if f.OverlapStart != nil && f.OverlapEnd != nil {
		tx = tx.Where("check_in <= ? AND check_out >= ?", *f.OverlapEnd, *f.OverlapStart)
	}
	return tx
}
