// services/booking_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"hotel-booking/apperror"
	"hotel-booking/models"
	"hotel-booking/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const notifyTimeout = 30 * time.Second

type CreateBookingRequest struct {
	UserName    string
	HotelName   string
	RoomType    string
	CheckIn     time.Time
	CheckOut    time.Time
	GuestsCount int
	Breakfast   bool
}

// BookingService owns every mutation of the rooms' booking calendars.
type BookingService struct {
	store    repository.Store
	resolver *AvailabilityResolver
	pricing  *PricingCalculator
	notifier Notifier
	metrics  *Metrics
	logger   *logrus.Logger
	retry    RetryPolicy
	now      func() time.Time

	pending sync.WaitGroup
}

type BookingOption func(*BookingService)

func WithRetryPolicy(p RetryPolicy) BookingOption {
	return func(s *BookingService) { s.retry = p }
}

func WithMetrics(m *Metrics) BookingOption {
	return func(s *BookingService) { s.metrics = m }
}

func WithClock(now func() time.Time) BookingOption {
	return func(s *BookingService) { s.now = now }
}

func NewBookingService(store repository.Store, pricing *PricingCalculator, notifier Notifier, logger *logrus.Logger, opts ...BookingOption) *BookingService {
	s := &BookingService{
		store:    store,
		resolver: NewAvailabilityResolver(store),
		pricing:  pricing,
		notifier: notifier,
		logger:   logger,
		retry:    DefaultRetryPolicy(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBooking validates the request, reserves the lowest-numbered free
// room of the requested type and prices the stay, all in one transaction.
// The confirmation is dispatched after commit.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingConfirmation, error) {
	start := time.Now()
	conf, err := s.createBooking(ctx, req)
	s.metrics.observe("create_booking", start, err)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"hotel":     req.HotelName,
			"room_type": req.RoomType,
			"user":      req.UserName,
		}).WithError(err).Info("booking rejected")
		return nil, err
	}

	s.metrics.bookingCreated()
	s.logger.WithFields(logrus.Fields{
		"booking_id":     conf.BookingID,
		"reference_code": conf.ReferenceCode,
		"room_number":    conf.RoomNumber,
		"total_price":    conf.TotalPrice.StringFixed(2),
	}).Info("booking confirmed")

	s.dispatchConfirmation(*conf)
	return conf, nil
}

func (s *BookingService) createBooking(ctx context.Context, req CreateBookingRequest) (*BookingConfirmation, error) {
	checkIn, checkOut, err := ValidateStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	if req.GuestsCount < 1 {
		return nil, fmt.Errorf("%w: %d guests", apperror.ErrInvalidGuestCount, req.GuestsCount)
	}

	var conf BookingConfirmation
	err = withStorageRetry(ctx, s.retry, s.logger, "create_booking", func() error {
		return s.store.Transaction(ctx, func(tx repository.Store) error {
			user, err := tx.GetUserByName(ctx, req.UserName)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("%w: %q", apperror.ErrUserNotFound, req.UserName)
				}
				return err
			}

			room, err := s.resolver.WithStore(tx).FindAvailableRoom(ctx, req.HotelName, req.RoomType, checkIn, checkOut)
			if err != nil {
				return err
			}
			if capacity := room.RoomType.MaxCapacity; req.GuestsCount > capacity {
				return fmt.Errorf("%w: %d guests exceed capacity %d of %s", apperror.ErrInvalidGuestCount,
					req.GuestsCount, capacity, room.RoomType.Category)
			}

			quote, err := s.pricing.Quote(room.RoomType.BasePrice, checkIn, checkOut)
			if err != nil {
				return err
			}

			booking := models.Booking{
				ReferenceCode: newReferenceCode(),
				RoomID:        room.ID,
				UserID:        user.ID,
				CheckIn:       checkIn,
				CheckOut:      checkOut,
				Nights:        quote.Nights,
				GuestsCount:   req.GuestsCount,
				TotalPrice:    quote.Total,
				Breakfast:     req.Breakfast || room.BreakfastIncluded,
				Status:        models.BookingStatusConfirmed,
			}
			if err := tx.InsertBooking(ctx, &booking); err != nil {
				return fmt.Errorf("failed to create booking: %w", err)
			}

			conf = newConfirmation(booking, *room, *user, quote)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &conf, nil
}

// UpdateBookingDates moves a booking to new dates on the same room. The
// stored booking is left untouched when another booking holds any of the
// new nights.
func (s *BookingService) UpdateBookingDates(ctx context.Context, bookingID uint, newCheckIn, newCheckOut time.Time) (*BookingSummary, error) {
	start := time.Now()
	summary, err := s.updateBookingDates(ctx, bookingID, newCheckIn, newCheckOut)
	s.metrics.observe("update_booking_dates", start, err)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"booking_id": bookingID,
		"check_in":   summary.CheckIn,
		"check_out":  summary.CheckOut,
	}).Info("booking dates updated")
	return summary, nil
}

func (s *BookingService) updateBookingDates(ctx context.Context, bookingID uint, newCheckIn, newCheckOut time.Time) (*BookingSummary, error) {
	checkIn, checkOut, err := ValidateStay(newCheckIn, newCheckOut)
	if err != nil {
		return nil, err
	}

	var updated models.Booking
	err = withStorageRetry(ctx, s.retry, s.logger, "update_booking_dates", func() error {
		return s.store.Transaction(ctx, func(tx repository.Store) error {
			booking, err := s.loadActiveBooking(ctx, tx, bookingID)
			if err != nil {
				return err
			}
			if err := tx.LockRoom(ctx, booking.RoomID); err != nil {
				return err
			}

			bookings, err := tx.GetBookingsForRoom(ctx, booking.RoomID)
			if err != nil {
				return err
			}
			// cancelled or deleted while we waited for the room lock
			if !containsBooking(bookings, booking.ID) {
				return fmt.Errorf("%w: %d", apperror.ErrBookingCancelled, bookingID)
			}
			if conflict := findConflict(bookings, checkIn, checkOut, booking.ID); conflict != nil {
				return fmt.Errorf("%w: booking %d holds room %d for %s -> %s", apperror.ErrDateConflict,
					conflict.ID, booking.Room.RoomNumber,
					DateOnly(conflict.CheckIn).Format(DateLayout), DateOnly(conflict.CheckOut).Format(DateLayout))
			}

			quote, err := s.pricing.Quote(booking.Room.RoomType.BasePrice, checkIn, checkOut)
			if err != nil {
				return err
			}
			if err := tx.UpdateBookingDates(ctx, booking.ID, checkIn, checkOut, quote.Nights, quote.Total); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("%w: %d", apperror.ErrBookingNotFound, bookingID)
				}
				return err
			}

			booking.CheckIn = checkIn
			booking.CheckOut = checkOut
			booking.Nights = quote.Nights
			booking.TotalPrice = quote.Total
			updated = *booking
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	summary := summarize(updated)
	return &summary, nil
}

// CancelBooking marks a booking cancelled, keeping the row for reporting.
// Its nights become bookable again.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID uint, reason string) (*BookingSummary, error) {
	start := time.Now()
	var cancelled models.Booking
	err := withStorageRetry(ctx, s.retry, s.logger, "cancel_booking", func() error {
		return s.store.Transaction(ctx, func(tx repository.Store) error {
			booking, err := s.loadActiveBooking(ctx, tx, bookingID)
			if err != nil {
				return err
			}
			at := s.now().UTC()
			reason = strings.TrimSpace(reason)
			if err := tx.CancelBooking(ctx, booking.ID, at, reason); err != nil {
				return err
			}
			booking.Status = models.BookingStatusCancelled
			booking.CancelledAt = &at
			booking.CancelReason = reason
			cancelled = *booking
			return nil
		})
	})
	s.metrics.observe("cancel_booking", start, err)
	if err != nil {
		return nil, err
	}

	s.logger.WithField("booking_id", bookingID).Info("booking cancelled")
	summary := summarize(cancelled)
	return &summary, nil
}

// DeleteBooking removes the booking row permanently.
func (s *BookingService) DeleteBooking(ctx context.Context, bookingID uint) error {
	start := time.Now()
	err := withStorageRetry(ctx, s.retry, s.logger, "delete_booking", func() error {
		return s.store.Transaction(ctx, func(tx repository.Store) error {
			return tx.DeleteBooking(ctx, bookingID)
		})
	})
	if errors.Is(err, repository.ErrNotFound) {
		err = fmt.Errorf("%w: %d", apperror.ErrBookingNotFound, bookingID)
	}
	s.metrics.observe("delete_booking", start, err)
	if err != nil {
		return err
	}

	s.logger.WithField("booking_id", bookingID).Info("booking deleted")
	return nil
}

// Wait blocks until in-flight confirmation dispatches finish.
func (s *BookingService) Wait() {
	s.pending.Wait()
}

func (s *BookingService) loadActiveBooking(ctx context.Context, tx repository.Store, bookingID uint) (*models.Booking, error) {
	booking, err := tx.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", apperror.ErrBookingNotFound, bookingID)
		}
		return nil, err
	}
	if !booking.IsActive() {
		return nil, fmt.Errorf("%w: %d", apperror.ErrBookingCancelled, bookingID)
	}
	return booking, nil
}

func (s *BookingService) dispatchConfirmation(conf BookingConfirmation) {
	if s.notifier == nil {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifier.NotifyBookingConfirmed(ctx, conf); err != nil {
			s.metrics.notificationFailed()
			s.logger.WithFields(logrus.Fields{
				"booking_id":     conf.BookingID,
				"reference_code": conf.ReferenceCode,
			}).WithError(err).Warn("booking confirmation dispatch failed")
		}
	}()
}

func newReferenceCode() string {
	return "BK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}
