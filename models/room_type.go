package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Room type categories offered by the hotels.
const (
	CategoryStandard  = "Standard"
	CategoryFamily    = "Family"
	CategorySingle    = "Single"
	CategoryRoyal     = "Royal"
	CategoryPenthouse = "Penthouse"
)

// Amenities is stored as a JSON column on room_types.
type Amenities struct {
	Balcony     bool `json:"balcony"`
	SeaView     bool `json:"sea_view"`
	Minibar     bool `json:"minibar"`
	Jacuzzi     bool `json:"jacuzzi"`
	PetFriendly bool `json:"pet_friendly"`
}

// RoomType is shared by many physical rooms.
type RoomType struct {
	ID          uint                          `gorm:"primaryKey" json:"id"`
	Category    string                        `gorm:"size:64;index" json:"category"`
	MaxCapacity int                           `gorm:"column:max_capacity" json:"max_capacity"`
	BasePrice   decimal.Decimal               `gorm:"column:base_price;type:decimal(10,2)" json:"base_price"`
	Amenities   datatypes.JSONType[Amenities] `gorm:"column:amenities" json:"amenities"`
	Description string                        `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
