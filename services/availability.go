package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-booking/apperror"
	"hotel-booking/models"
	"hotel-booking/repository"
)

// AvailabilityResolver picks a concrete room for a hotel, room type and stay.
type AvailabilityResolver struct {
	store repository.Store
}

func NewAvailabilityResolver(store repository.Store) *AvailabilityResolver {
	return &AvailabilityResolver{store: store}
}

// WithStore returns a resolver reading through store, typically an open
// transaction.
func (r *AvailabilityResolver) WithStore(store repository.Store) *AvailabilityResolver {
	return &AvailabilityResolver{store: store}
}

// FindAvailableRoom returns the lowest-numbered room of the requested type
// with no booking overlapping [checkIn, checkOut). Every candidate is locked
// before its calendar is read, so inside a transaction the answer stays
// valid until commit.
func (r *AvailabilityResolver) FindAvailableRoom(ctx context.Context, hotelName, roomTypeLabel string, checkIn, checkOut time.Time) (*models.Room, error) {
	hotel, err := r.store.GetHotelByName(ctx, hotelName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", apperror.ErrHotelNotFound, hotelName)
		}
		return nil, err
	}

	rooms, err := r.store.GetRoomsByHotelAndType(ctx, hotel.ID, roomTypeLabel)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, fmt.Errorf("%w: %q at %q", apperror.ErrRoomTypeNotFound, roomTypeLabel, hotel.Name)
	}

	ci, co := DateOnly(checkIn), DateOnly(checkOut)
	for i := range rooms {
		room := rooms[i]
		if !roomOpenFor(room, ci) {
			continue
		}
		if err := r.store.LockRoom(ctx, room.ID); err != nil {
			return nil, err
		}
		bookings, err := r.store.GetBookingsForRoom(ctx, room.ID)
		if err != nil {
			return nil, err
		}
		if conflict := findConflict(bookings, ci, co, 0); conflict == nil {
			room.Hotel = *hotel
			return &room, nil
		}
	}

	return nil, fmt.Errorf("%w: %q at %q for %s -> %s", apperror.ErrNoRoomsAvailable,
		roomTypeLabel, hotel.Name, ci.Format(DateLayout), co.Format(DateLayout))
}

// roomOpenFor reports whether the room accepts guests arriving on checkIn.
func roomOpenFor(room models.Room, checkIn time.Time) bool {
	if !room.IsAvailable {
		return false
	}
	if room.AvailableFrom != nil && DateOnly(*room.AvailableFrom).After(checkIn) {
		return false
	}
	return true
}

// findConflict returns the first active booking overlapping [checkIn, checkOut),
// ignoring the booking with id excludeID.
func findConflict(bookings []models.Booking, checkIn, checkOut time.Time, excludeID uint) *models.Booking {
	for i := range bookings {
		b := bookings[i]
		if b.ID == excludeID || !b.IsActive() {
			continue
		}
		if Overlaps(b.CheckIn, b.CheckOut, checkIn, checkOut) {
			return &b
		}
	}
	return nil
}

func containsBooking(bookings []models.Booking, id uint) bool {
	for _, b := range bookings {
		if b.ID == id && b.IsActive() {
			return true
		}
	}
	return false
}
