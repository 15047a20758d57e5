package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-booking/apperror"
	"hotel-booking/models"
	"hotel-booking/repository"

	"github.com/sirupsen/logrus"
)

const DefaultCleaningInterval = 3 * 24 * time.Hour

const (
	CleaningReasonNeverCleaned = "never_cleaned"
	CleaningReasonOverdue      = "interval_elapsed"
	CleaningReasonCheckout     = "guest_checked_out"
)

// CleaningDueRoom is a room housekeeping should visit.
type CleaningDueRoom struct {
	RoomID      uint       `json:"room_id"`
	RoomNumber  int        `json:"room_number"`
	HotelName   string     `json:"hotel_name"`
	RoomType    string     `json:"room_type"`
	LastCleaned *time.Time `json:"last_cleaned,omitempty"`
	Reason      string     `json:"reason"`
}

// QueryService serves the read side. Nothing here changes a booking.
type QueryService struct {
	store            repository.Store
	pricing          *PricingCalculator
	logger           *logrus.Logger
	cleaningInterval time.Duration
}

func NewQueryService(store repository.Store, pricing *PricingCalculator, logger *logrus.Logger, cleaningInterval time.Duration) *QueryService {
	if cleaningInterval <= 0 {
		cleaningInterval = DefaultCleaningInterval
	}
	return &QueryService{
		store:            store,
		pricing:          pricing,
		logger:           logger,
		cleaningInterval: cleaningInterval,
	}
}

func (s *QueryService) GetBookingsByUser(ctx context.Context, userName string) ([]BookingSummary, error) {
	user, err := s.store.GetUserByName(ctx, userName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", apperror.ErrUserNotFound, userName)
		}
		return nil, err
	}
	bookings, err := s.store.ListBookings(ctx, repository.BookingFilter{UserID: user.ID})
	if err != nil {
		return nil, err
	}
	return summarizeAll(bookings), nil
}

func (s *QueryService) GetBookingsByHotel(ctx context.Context, hotelName string) ([]BookingSummary, error) {
	hotel, err := s.store.GetHotelByName(ctx, hotelName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", apperror.ErrHotelNotFound, hotelName)
		}
		return nil, err
	}
	bookings, err := s.store.ListBookings(ctx, repository.BookingFilter{HotelID: hotel.ID})
	if err != nil {
		return nil, err
	}
	return summarizeAll(bookings), nil
}

func (s *QueryService) GetAllBookings(ctx context.Context) ([]BookingSummary, error) {
	bookings, err := s.store.ListBookings(ctx, repository.BookingFilter{})
	if err != nil {
		return nil, err
	}
	return summarizeAll(bookings), nil
}

// GetRoomsDueForCleaning lists rooms that were never cleaned, were last
// cleaned longer than the cleaning interval ago, or had a guest check out
// since the last cleaning.
func (s *QueryService) GetRoomsDueForCleaning(ctx context.Context, now time.Time) ([]CleaningDueRoom, error) {
	rooms, err := s.store.ListRooms(ctx, 0)
	if err != nil {
		return nil, err
	}
	bookings, err := s.store.ListBookings(ctx, repository.BookingFilter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	byRoom := make(map[uint][]models.Booking)
	for _, b := range bookings {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}

	due := make([]CleaningDueRoom, 0)
	for _, room := range rooms {
		reason := s.cleaningReason(room, byRoom[room.ID], now)
		if reason == "" {
			continue
		}
		due = append(due, CleaningDueRoom{
			RoomID:      room.ID,
			RoomNumber:  room.RoomNumber,
			HotelName:   room.Hotel.Name,
			RoomType:    room.RoomType.Category,
			LastCleaned: room.LastCleaned,
			Reason:      reason,
		})
	}
	return due, nil
}

func (s *QueryService) cleaningReason(room models.Room, bookings []models.Booking, now time.Time) string {
	if room.LastCleaned == nil {
		return CleaningReasonNeverCleaned
	}
	last := *room.LastCleaned
	if now.Sub(last) > s.cleaningInterval {
		return CleaningReasonOverdue
	}
	today := DateOnly(now)
	for _, b := range bookings {
		checkOut := DateOnly(b.CheckOut)
		// A checkout on the day of the last cleaning counts as cleaned after it.
		if !checkOut.After(today) && checkOut.After(DateOnly(last)) {
			return CleaningReasonCheckout
		}
	}
	return ""
}

// MarkRoomCleaned stamps the room's last-cleaned time.
func (s *QueryService) MarkRoomCleaned(ctx context.Context, roomID uint, at time.Time) (*models.Room, error) {
	if err := s.store.MarkRoomCleaned(ctx, roomID, at.UTC()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", apperror.ErrRoomNotFound, roomID)
		}
		return nil, err
	}
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"room_id":     room.ID,
		"room_number": room.RoomNumber,
	}).Info("room marked cleaned")
	return room, nil
}

// QuoteStay prices a stay for a room type without reserving anything.
func (s *QueryService) QuoteStay(ctx context.Context, hotelName, roomTypeLabel string, checkIn, checkOut time.Time) (*PriceQuote, error) {
	ci, co, err := ValidateStay(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	hotel, err := s.store.GetHotelByName(ctx, hotelName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", apperror.ErrHotelNotFound, hotelName)
		}
		return nil, err
	}
	rooms, err := s.store.GetRoomsByHotelAndType(ctx, hotel.ID, roomTypeLabel)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, fmt.Errorf("%w: %q at %q", apperror.ErrRoomTypeNotFound, roomTypeLabel, hotel.Name)
	}

	quote, err := s.pricing.Quote(rooms[0].RoomType.BasePrice, ci, co)
	if err != nil {
		return nil, err
	}
	return &quote, nil
}
