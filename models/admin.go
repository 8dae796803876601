package models

import (
	"time"
)

// Admin roles.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type Admin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"size:255" json:"fullName"`
	Username  string    `gorm:"uniqueIndex;size:150" json:"username"`
	Password  string    `gorm:"size:255" json:"-"` // bcrypt hash
	Role      string    `gorm:"size:20;default:staff" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
