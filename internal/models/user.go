package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username     string  `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string  `gorm:"size:100;not null" json:"email"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	Role         string  `gorm:"size:20;not null;default:'patient';check:chk_users_role,role IN ('patient','admin')" json:"role"`
	FullName     string  `gorm:"size:100;not null" json:"full_name"`
	Phone        *string `gorm:"size:20" json:"phone,omitempty"`
	IsActive     bool    `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
