package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:150;index" json:"email"`
	Username     string    `gorm:"size:150;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	Role         string    `gorm:"size:64;default:guest" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Bookings     []Booking `gorm:"foreignKey:UserID" json:"-"`
}
