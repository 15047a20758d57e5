// Package apperror holds the error taxonomy shared by the storage, engine and
// transport layers. Each error carries a stable machine-readable code and a
// human-readable message that is safe to show to callers.
package apperror

import (
	"errors"
	"net/http"
)

type Error struct {
	Status    int
	Code      string
	Message   string
	Retryable bool
}

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func (e *Error) Error() string {
	return e.Code
}

// AsRetryable returns e marked as safe to retry.
func (e *Error) AsRetryable() *Error {
	e.Retryable = true
	return e
}

// From finds the taxonomy error wrapped inside err.
func From(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsRetryable reports whether err may succeed when the operation is repeated.
func IsRetryable(err error) bool {
	appErr, ok := From(err)
	return ok && appErr.Retryable
}

var (
	ErrInvalidDateRange   = New(http.StatusBadRequest, "invalid_date_range", "check-out date must be after check-in date")
	ErrInvalidGuestCount  = New(http.StatusBadRequest, "invalid_guest_count", "guest count must be at least 1 and within the room capacity")
	ErrInvalidInput       = New(http.StatusBadRequest, "invalid_input", "request is missing required fields or has malformed values")
	ErrHotelNotFound      = New(http.StatusNotFound, "hotel_not_found", "hotel not found")
	ErrRoomTypeNotFound   = New(http.StatusNotFound, "room_type_not_found", "the hotel has no rooms of the requested type")
	ErrRoomNotFound       = New(http.StatusNotFound, "room_not_found", "room not found")
	ErrUserNotFound       = New(http.StatusNotFound, "user_not_found", "user not found")
	ErrBookingNotFound    = New(http.StatusNotFound, "booking_not_found", "booking not found")
	ErrNoRoomsAvailable   = New(http.StatusConflict, "no_rooms_available", "no room of the requested type is free for these dates")
	ErrDateConflict       = New(http.StatusConflict, "date_conflict", "the requested dates overlap another booking for this room").AsRetryable()
	ErrBookingCancelled   = New(http.StatusConflict, "booking_cancelled", "booking has been cancelled")
	ErrInvalidPrice       = New(http.StatusUnprocessableEntity, "invalid_price", "price could not be computed for this stay")
	ErrStorageUnavailable = New(http.StatusServiceUnavailable, "storage_unavailable", "booking storage is temporarily unavailable, please retry").AsRetryable()
)
