package services

import (
	"time"

	"hotel-booking/models"

	"github.com/shopspring/decimal"
)

// BookingConfirmation is returned by CreateBooking and handed to notifiers.
type BookingConfirmation struct {
	BookingID     uint            `json:"booking_id"`
	ReferenceCode string          `json:"reference_code"`
	HotelName     string          `json:"hotel_name"`
	RoomType      string          `json:"room_type"`
	RoomNumber    int             `json:"room_number"`
	CheckIn       string          `json:"check_in"`
	CheckOut      string          `json:"check_out"`
	GuestsCount   int             `json:"guests_count"`
	Nights        int             `json:"nights"`
	Season        Season          `json:"season"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Breakfast     bool            `json:"breakfast"`
	UserName      string          `json:"user_name"`
	UserEmail     string          `json:"user_email,omitempty"`
}

// BookingSummary is the read-side projection of a booking.
type BookingSummary struct {
	ID            uint            `json:"id"`
	ReferenceCode string          `json:"reference_code"`
	HotelName     string          `json:"hotel_name"`
	RoomNumber    int             `json:"room_number"`
	RoomType      string          `json:"room_type"`
	UserName      string          `json:"user_name"`
	CheckIn       string          `json:"check_in"`
	CheckOut      string          `json:"check_out"`
	Nights        int             `json:"nights"`
	GuestsCount   int             `json:"guests_count"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Breakfast     bool            `json:"breakfast"`
	Paid          bool            `json:"paid"`
	Status        string          `json:"status"`
	CancelledAt   *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func newConfirmation(b models.Booking, room models.Room, user models.User, quote PriceQuote) BookingConfirmation {
	return BookingConfirmation{
		BookingID:     b.ID,
		ReferenceCode: b.ReferenceCode,
		HotelName:     room.Hotel.Name,
		RoomType:      room.RoomType.Category,
		RoomNumber:    room.RoomNumber,
		CheckIn:       b.CheckIn.Format(DateLayout),
		CheckOut:      b.CheckOut.Format(DateLayout),
		GuestsCount:   b.GuestsCount,
		Nights:        b.Nights,
		Season:        quote.Season,
		TotalPrice:    b.TotalPrice,
		Breakfast:     b.Breakfast,
		UserName:      user.Username,
		UserEmail:     user.Email,
	}
}

func summarize(b models.Booking) BookingSummary {
	return BookingSummary{
		ID:            b.ID,
		ReferenceCode: b.ReferenceCode,
		HotelName:     b.Room.Hotel.Name,
		RoomNumber:    b.Room.RoomNumber,
		RoomType:      b.Room.RoomType.Category,
		UserName:      b.User.Username,
		CheckIn:       DateOnly(b.CheckIn).Format(DateLayout),
		CheckOut:      DateOnly(b.CheckOut).Format(DateLayout),
		Nights:        b.Nights,
		GuestsCount:   b.GuestsCount,
		TotalPrice:    b.TotalPrice,
		Breakfast:     b.Breakfast,
		Paid:          b.Paid,
		Status:        b.Status,
		CancelledAt:   b.CancelledAt,
		CreatedAt:     b.CreatedAt,
	}
}

func summarizeAll(bookings []models.Booking) []BookingSummary {
	out := make([]BookingSummary, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, summarize(b))
	}
	return out
}
