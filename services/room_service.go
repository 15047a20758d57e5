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

type RoomInput struct {
	RoomNumber        int        `json:"room_number"`
	HotelName         string     `json:"hotel_name"`
	RoomTypeID        uint       `json:"room_type_id"`
	IsAvailable       *bool      `json:"is_available"`
	BreakfastIncluded bool       `json:"breakfast_included"`
	AvailableFrom     *time.Time `json:"available_from"`
}

func (s *CatalogService) CreateRoom(ctx context.Context, in RoomInput) (*models.Room, error) {
	if in.RoomNumber < 1 {
		return nil, fmt.Errorf("%w: room number must be positive", apperror.ErrInvalidInput)
	}
	if in.RoomTypeID == 0 {
		return nil, fmt.Errorf("%w: room_type_id is required", apperror.ErrInvalidInput)
	}

	hotel, err := s.store.GetHotelByName(ctx, in.HotelName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", apperror.ErrHotelNotFound, in.HotelName)
		}
		return nil, err
	}

	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}
	room := models.Room{
		RoomNumber:        in.RoomNumber,
		HotelID:           hotel.ID,
		RoomTypeID:        in.RoomTypeID,
		IsAvailable:       available,
		BreakfastIncluded: in.BreakfastIncluded,
	}
	if in.AvailableFrom != nil {
		from := DateOnly(*in.AvailableFrom)
		room.AvailableFrom = &from
	}

	if err := s.store.CreateRoom(ctx, &room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	created, err := s.store.GetRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"room_id":     created.ID,
		"room_number": created.RoomNumber,
		"hotel":       hotel.Name,
	}).Info("room created")
	return created, nil
}

// ListRooms lists the rooms of one hotel, or of every hotel when hotelName
// is empty.
func (s *CatalogService) ListRooms(ctx context.Context, hotelName string) ([]models.Room, error) {
	var hotelID uint
	if hotelName != "" {
		hotel, err := s.store.GetHotelByName(ctx, hotelName)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: %q", apperror.ErrHotelNotFound, hotelName)
			}
			return nil, err
		}
		hotelID = hotel.ID
	}
	return s.store.ListRooms(ctx, hotelID)
}
