package models

import (
	"time"

	"gorm.io/datatypes"
)

// Room statuses.
const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
	RoomStatusReserved    = "reserved"
)

// RoomStatuses lists every value accepted for Room.Status.
var RoomStatuses = []string{RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance, RoomStatusReserved}

// Room fields left out by a projection are zero and drop out of the JSON.
type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// (hotel_id, room_number) is unique: room numbers repeat across hotels, not within one.
	RoomNumber string `json:"roomNumber,omitempty" gorm:"column:room_number;type:varchar(50);not null;uniqueIndex:idx_rooms_hotel_room,priority:2" binding:"required"`
	RoomTypeID uint   `json:"roomTypeId,omitempty" gorm:"column:room_type_id;not null;index" binding:"required"`
	HotelID    uint   `json:"hotelId,omitempty" gorm:"column:hotel_id;not null;index;uniqueIndex:idx_rooms_hotel_room,priority:1" binding:"required"`

	Status          string     `json:"status,omitempty" gorm:"column:status;type:varchar(20);default:available" binding:"omitempty,oneof=available occupied maintenance reserved"`
	Floor           *int       `json:"floor,omitempty" gorm:"column:floor;not null" binding:"required"`
	SpecialNotes    string     `json:"specialNotes,omitempty" gorm:"column:special_notes;type:varchar(500)" binding:"max=500"`
	LastMaintenance *time.Time `json:"lastMaintenance,omitempty" gorm:"column:last_maintenance"`

	CurrentBookingID *uint                       `json:"currentBooking,omitempty" gorm:"column:current_booking_id"`
	Features         datatypes.JSONSlice[string] `json:"features,omitempty" gorm:"column:features"`

	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`

	RoomType       *RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty" binding:"-"`
	Hotel          *Hotel    `gorm:"foreignKey:HotelID" json:"hotel,omitempty" binding:"-"`
	BookingDetails *Booking  `gorm:"foreignKey:RoomID" json:"bookingDetails,omitempty" binding:"-"`
}

// IsValidRoomStatus reports whether s is one of RoomStatuses.
func IsValidRoomStatus(s string) bool {
	for _, st := range RoomStatuses {
		if st == s {
			return true
		}
	}
	return false
}
