package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	BookingStatusConfirmed = "Confirmed"
	BookingStatusCancelled = "Cancelled"
)

// Booking holds one room for the half-open stay [CheckIn, CheckOut).
type Booking struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`

	RoomID uint `gorm:"column:room_id;not null;index:idx_booking_room_dates" json:"room_id"`
	UserID uint `gorm:"column:user_id;not null;index" json:"user_id"`

	CheckIn     time.Time       `gorm:"column:check_in;type:date;index:idx_booking_room_dates" json:"check_in"`
	CheckOut    time.Time       `gorm:"column:check_out;type:date;index:idx_booking_room_dates" json:"check_out"`
	Nights      int             `gorm:"column:nights" json:"nights"`
	GuestsCount int             `gorm:"column:guests_count" json:"guests_count"`
	TotalPrice  decimal.Decimal `gorm:"column:total_price;type:decimal(10,2)" json:"total_price"`
	Breakfast   bool            `gorm:"column:breakfast;default:false" json:"breakfast"`
	Paid        bool            `gorm:"column:paid;default:false" json:"paid"`

	Status       string     `gorm:"column:status;size:32;index" json:"status"`
	CancelledAt  *time.Time `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`
	CancelReason string     `gorm:"column:cancel_reason;size:255" json:"cancel_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	User User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

func (b Booking) IsActive() bool {
	return b.Status != BookingStatusCancelled
}
