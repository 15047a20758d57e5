package services

import (
	"context"
	"fmt"
	"strings"

	"hotel-booking/apperror"
	"hotel-booking/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

var roomCategories = []string{
	models.CategoryStandard,
	models.CategoryFamily,
	models.CategorySingle,
	models.CategoryRoyal,
	models.CategoryPenthouse,
}

type RoomTypeInput struct {
	Category    string           `json:"category"`
	MaxCapacity int              `json:"max_capacity"`
	BasePrice   decimal.Decimal  `json:"base_price"`
	Amenities   models.Amenities `json:"amenities"`
	Description string           `json:"description"`
}

// normalizeCategory maps a label onto one of the known categories,
// ignoring case.
func normalizeCategory(label string) (string, bool) {
	label = strings.TrimSpace(label)
	for _, c := range roomCategories {
		if strings.EqualFold(c, label) {
			return c, true
		}
	}
	return "", false
}

func (s *CatalogService) CreateRoomType(ctx context.Context, in RoomTypeInput) (*models.RoomType, error) {
	category, ok := normalizeCategory(in.Category)
	if !ok {
		return nil, fmt.Errorf("%w: unknown room category %q", apperror.ErrInvalidInput, in.Category)
	}
	if in.MaxCapacity < 1 {
		return nil, fmt.Errorf("%w: max capacity must be at least 1", apperror.ErrInvalidInput)
	}
	if !in.BasePrice.IsPositive() {
		return nil, fmt.Errorf("%w: base price %s", apperror.ErrInvalidPrice, in.BasePrice.String())
	}

	rt := models.RoomType{
		Category:    category,
		MaxCapacity: in.MaxCapacity,
		BasePrice:   in.BasePrice.Round(2),
		Amenities:   datatypes.NewJSONType(in.Amenities),
		Description: strings.TrimSpace(in.Description),
	}
	if err := s.store.CreateRoomType(ctx, &rt); err != nil {
		return nil, fmt.Errorf("failed to create room type: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"room_type_id": rt.ID,
		"category":     rt.Category,
		"base_price":   rt.BasePrice.StringFixed(2),
	}).Info("room type created")
	return &rt, nil
}

func (s *CatalogService) ListRoomTypes(ctx context.Context) ([]models.RoomType, error) {
	return s.store.ListRoomTypes(ctx)
}
