package models

import "time"

// Room is the unit of reservation.
type Room struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	RoomNumber int  `gorm:"column:room_number;uniqueIndex:idx_hotel_room_number" json:"room_number"`
	HotelID    uint `gorm:"column:hotel_id;not null;uniqueIndex:idx_hotel_room_number" json:"hotel_id"`
	RoomTypeID uint `gorm:"column:room_type_id;not null;index" json:"room_type_id"`

	IsAvailable       bool       `gorm:"column:is_available" json:"is_available"`
	BreakfastIncluded bool       `gorm:"column:breakfast_included" json:"breakfast_included"`
	AvailableFrom     *time.Time `gorm:"column:available_from;type:date" json:"available_from,omitempty"`
	LastCleaned       *time.Time `gorm:"column:last_cleaned" json:"last_cleaned,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Hotel    Hotel    `gorm:"foreignKey:HotelID;references:ID;constraint:OnDelete:RESTRICT" json:"hotel,omitempty"`
	RoomType RoomType `gorm:"foreignKey:RoomTypeID;references:ID" json:"room_type,omitempty"`
}
