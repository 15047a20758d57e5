// Package repository holds the storage collaborators of the booking engine.
package repository

import (
	"context"
	"errors"
	"time"

	"hotel-booking/models"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record_not_found")

type BookingFilter struct {
	UserID     uint
	HotelID    uint
	ActiveOnly bool
}

type HotelDirectory interface {
	GetHotelByName(ctx context.Context, name string) (*models.Hotel, error)
	ListHotels(ctx context.Context) ([]models.Hotel, error)
	CreateHotel(ctx context.Context, hotel *models.Hotel) error
}

// RoomCatalog lists rooms with their RoomType loaded, ordered by room number.
type RoomCatalog interface {
	GetRoomsByHotelAndType(ctx context.Context, hotelID uint, typeLabel string) ([]models.Room, error)
	ListRooms(ctx context.Context, hotelID uint) ([]models.Room, error)
	GetRoom(ctx context.Context, id uint) (*models.Room, error)
	// LockRoom holds the room's booking calendar until the surrounding
	// transaction ends. Outside a transaction it only checks existence.
	LockRoom(ctx context.Context, roomID uint) error
	MarkRoomCleaned(ctx context.Context, roomID uint, at time.Time) error
	CreateRoom(ctx context.Context, room *models.Room) error
	ListRoomTypes(ctx context.Context) ([]models.RoomType, error)
	CreateRoomType(ctx context.Context, roomType *models.RoomType) error
}

type BookingStore interface {
	// GetBookingsForRoom returns the room's non-cancelled bookings by check-in.
	GetBookingsForRoom(ctx context.Context, roomID uint) ([]models.Booking, error)
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	GetBookingByReference(ctx context.Context, code string) (*models.Booking, error)
	InsertBooking(ctx context.Context, booking *models.Booking) error
	UpdateBookingDates(ctx context.Context, id uint, checkIn, checkOut time.Time, nights int, total decimal.Decimal) error
	CancelBooking(ctx context.Context, id uint, at time.Time, reason string) error
	DeleteBooking(ctx context.Context, id uint) error
	// ListBookings returns bookings with room, hotel, room type and user
	// loaded, ordered by check-in then id.
	ListBookings(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
}

type UserDirectory interface {
	GetUserByName(ctx context.Context, name string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}

type Store interface {
	HotelDirectory
	RoomCatalog
	BookingStore
	UserDirectory

	// Transaction runs fn against a transactional view of the store. The
	// transaction is rolled back when fn fails or ctx ends before commit.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
