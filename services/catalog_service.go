package services

import (
	"context"
	"fmt"
	"strings"

	"hotel-booking/apperror"
	"hotel-booking/models"
	"hotel-booking/repository"

	"github.com/sirupsen/logrus"
)

// CatalogService manages hotels, room types and rooms. Its room and room
// type operations live in room_service.go and room_type_service.go.
type CatalogService struct {
	store  repository.Store
	logger *logrus.Logger
}

func NewCatalogService(store repository.Store, logger *logrus.Logger) *CatalogService {
	return &CatalogService{store: store, logger: logger}
}

type HotelInput struct {
	Name         string `json:"name"`
	City         string `json:"city"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	OpeningHours string `json:"opening_hours"`
}

func (s *CatalogService) CreateHotel(ctx context.Context, in HotelInput) (*models.Hotel, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: hotel name is required", apperror.ErrInvalidInput)
	}

	hotel := models.Hotel{
		Name:         name,
		City:         strings.TrimSpace(in.City),
		Address:      strings.TrimSpace(in.Address),
		Phone:        strings.TrimSpace(in.Phone),
		Email:        strings.TrimSpace(in.Email),
		OpeningHours: strings.TrimSpace(in.OpeningHours),
	}
	if err := s.store.CreateHotel(ctx, &hotel); err != nil {
		return nil, fmt.Errorf("failed to create hotel: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"hotel_id": hotel.ID, "name": hotel.Name}).Info("hotel created")
	return &hotel, nil
}

func (s *CatalogService) ListHotels(ctx context.Context) ([]models.Hotel, error) {
	return s.store.ListHotels(ctx)
}
