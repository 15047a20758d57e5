package models

import "time"

type Hotel struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;uniqueIndex" json:"name"`
	City         string    `gorm:"size:120;index" json:"city"`
	Address      string    `gorm:"type:text" json:"address"`
	Phone        string    `gorm:"size:50" json:"phone"`
	Email        string    `gorm:"size:150" json:"email"`
	OpeningHours string    `gorm:"size:120" json:"opening_hours"`
	Rooms        []Room    `gorm:"foreignKey:HotelID" json:"rooms,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
