package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"hotel-booking/utils"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Notifier delivers booking confirmations. Delivery is best-effort: a
// failing notifier never undoes a booking.
type Notifier interface {
	NotifyBookingConfirmed(ctx context.Context, confirmation BookingConfirmation) error
}

// LogNotifier only records the confirmation in the log.
type LogNotifier struct {
	Logger *logrus.Logger
}

func (n LogNotifier) NotifyBookingConfirmed(ctx context.Context, c BookingConfirmation) error {
	n.Logger.WithFields(logrus.Fields{
		"booking_id":     c.BookingID,
		"reference_code": c.ReferenceCode,
		"hotel":          c.HotelName,
		"room_number":    c.RoomNumber,
		"user":           c.UserName,
	}).Info("new booking confirmed")
	return nil
}

// RedisNotifier queues confirmations as JSON on a Redis list for the
// notification workers.
type RedisNotifier struct {
	Client redis.Cmdable
	Key    string
}

const DefaultConfirmationQueue = "hotel:bookings:confirmed"

func NewRedisNotifier(client redis.Cmdable, key string) *RedisNotifier {
	if key == "" {
		key = DefaultConfirmationQueue
	}
	return &RedisNotifier{Client: client, Key: key}
}

func (n *RedisNotifier) NotifyBookingConfirmed(ctx context.Context, c BookingConfirmation) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode confirmation: %w", err)
	}
	if err := n.Client.RPush(ctx, n.Key, payload).Err(); err != nil {
		return fmt.Errorf("failed to queue confirmation %s: %w", c.ReferenceCode, err)
	}
	return nil
}

// EmailNotifier sends the guest a confirmation email.
type EmailNotifier struct {
	Send func(msg utils.ConfirmationEmail) error
}

func NewEmailNotifier() *EmailNotifier {
	return &EmailNotifier{Send: utils.SendBookingConfirmationEmail}
}

func (n *EmailNotifier) NotifyBookingConfirmed(ctx context.Context, c BookingConfirmation) error {
	if c.UserEmail == "" {
		return errors.New("customer_email_missing")
	}
	return n.Send(utils.ConfirmationEmail{
		Recipient:     c.UserEmail,
		GuestName:     c.UserName,
		ReferenceCode: c.ReferenceCode,
		HotelName:     c.HotelName,
		Room:          utils.RoomInfo{Number: fmt.Sprintf("%d", c.RoomNumber), Type: c.RoomType},
		CheckIn:       c.CheckIn,
		CheckOut:      c.CheckOut,
		Nights:        c.Nights,
		GuestsCount:   c.GuestsCount,
		TotalPrice:    c.TotalPrice.StringFixed(2),
	})
}

// MultiNotifier fans a confirmation out to every notifier and joins their errors.
type MultiNotifier []Notifier

func (m MultiNotifier) NotifyBookingConfirmed(ctx context.Context, c BookingConfirmation) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyBookingConfirmed(ctx, c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
