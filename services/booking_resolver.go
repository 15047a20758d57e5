package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel-booking/apperror"
	"hotel-booking/repository"
)

// GetBookingByReference resolves the reference code printed on a
// confirmation back to its booking.
func (s *QueryService) GetBookingByReference(ctx context.Context, code string) (*BookingSummary, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: empty reference code", apperror.ErrInvalidInput)
	}

	booking, err := s.store.GetBookingByReference(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: reference %q", apperror.ErrBookingNotFound, code)
		}
		return nil, err
	}
	summary := summarize(*booking)
	return &summary, nil
}
