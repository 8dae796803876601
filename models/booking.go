package models

import (
	"time"
)

// Booking statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// ActiveBookingStatuses are the statuses that hold a room: they block deletion and
// maintenance and make the room unavailable for overlapping dates.
var ActiveBookingStatuses = []string{BookingStatusPending, BookingStatusConfirmed}

// Booking is owned by the booking service; rooms only read it.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CheckIn  time.Time `gorm:"column:check_in;index:idx_bookings_stay,priority:1" json:"checkIn"`
	CheckOut time.Time `gorm:"column:check_out;index:idx_bookings_stay,priority:2" json:"checkOut"`

	UserID     uint  `gorm:"column:user_id;index" json:"userId"`
	HotelID    uint  `gorm:"column:hotel_id;index" json:"hotelId"`
	RoomTypeID uint  `gorm:"column:room_type_id" json:"roomTypeId"`
	RoomID     *uint `gorm:"column:room_id;index" json:"roomId,omitempty"`

	Status    string    `gorm:"column:status;size:20;default:pending" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsActive reports whether the booking still holds its room.
func (b Booking) IsActive() bool {
	for _, st := range ActiveBookingStatuses {
		if b.Status == st {
			return true
		}
	}
	return false
}
