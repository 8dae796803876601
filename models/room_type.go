package models

import (
	"time"
)

// RoomType is referenced by rooms and bookings; rooms cannot be created against a missing type.
type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TypeName    string `json:"typeName" gorm:"size:100" binding:"required"`
	Description string `json:"description" gorm:"type:text"`
	MaxGuests   uint   `json:"maxGuests"`

	CreatedAt time.Time `json:"createdAt"`
}
