package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel-booking/apperror"
	"hotel-booking/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type seeded struct {
	hotel models.Hotel
	rt    models.RoomType
	room  models.Room
	user  models.User
}

func seed(t *testing.T, store Store) seeded {
	t.Helper()
	ctx := context.Background()
	var s seeded
	s.hotel = models.Hotel{Name: "Grand Plaza"}
	require.NoError(t, store.CreateHotel(ctx, &s.hotel))
	s.rt = models.RoomType{Category: models.CategoryStandard, MaxCapacity: 2, BasePrice: decimal.NewFromInt(100)}
	require.NoError(t, store.CreateRoomType(ctx, &s.rt))
	s.room = models.Room{RoomNumber: 101, HotelID: s.hotel.ID, RoomTypeID: s.rt.ID, IsAvailable: true}
	require.NoError(t, store.CreateRoom(ctx, &s.room))
	s.user = models.User{Username: "alice", Email: "alice@example.com"}
	require.NoError(t, store.CreateUser(ctx, &s.user))
	return s
}

func newBooking(s seeded, ref, checkIn, checkOut string) *models.Booking {
	return &models.Booking{
		ReferenceCode: ref,
		RoomID:        s.room.ID,
		UserID:        s.user.ID,
		CheckIn:       date(checkIn),
		CheckOut:      date(checkOut),
		Nights:        1,
		GuestsCount:   1,
		TotalPrice:    decimal.NewFromInt(100),
		Status:        models.BookingStatusConfirmed,
	}
}

func TestMemoryTransactionRollsBackOnError(t *testing.T) {
	store := NewMemoryStore()
	s := seed(t, store)
	ctx := context.Background()

	boom := errors.New("boom")
	err := store.Transaction(ctx, func(tx Store) error {
		require.NoError(t, tx.InsertBooking(ctx, newBooking(s, "A", "2025-07-01", "2025-07-02")))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	bookings, err := store.ListBookings(ctx, BookingFilter{})
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestMemoryTransactionRollsBackWhenContextEnds(t *testing.T) {
	store := NewMemoryStore()
	s := seed(t, store)
	ctx, cancel := context.WithCancel(context.Background())

	err := store.Transaction(ctx, func(tx Store) error {
		require.NoError(t, tx.InsertBooking(context.Background(), newBooking(s, "A", "2025-07-01", "2025-07-02")))
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)

	bookings, err := store.ListBookings(context.Background(), BookingFilter{})
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestMemoryRollbackKeepsWritesMadeOutsideTheTransaction(t *testing.T) {
	store := NewMemoryStore()
	s := seed(t, store)
	ctx := context.Background()

	inTx := make(chan struct{})
	release := make(chan struct{})
	txDone := make(chan error, 1)
	go func() {
		txDone <- store.Transaction(ctx, func(tx Store) error {
			if err := tx.InsertBooking(ctx, newBooking(s, "A", "2025-07-01", "2025-07-02")); err != nil {
				return err
			}
			close(inTx)
			<-release
			return errors.New("no room")
		})
	}()
	<-inTx

	userDone := make(chan error, 1)
	go func() {
		userDone <- store.CreateUser(ctx, &models.User{Username: "carol", Email: "carol@example.com"})
	}()
	cleanedDone := make(chan error, 1)
	go func() {
		cleanedDone <- store.MarkRoomCleaned(ctx, s.room.ID, date("2025-07-01"))
	}()

	select {
	case <-userDone:
		t.Fatal("write outside the transaction did not wait for it")
	case <-time.After(20 * time.Millisecond):
	}
	close(release)

	assert.Error(t, <-txDone)
	require.NoError(t, <-userDone)
	require.NoError(t, <-cleanedDone)

	carol, err := store.GetUserByName(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", carol.Email)

	room, err := store.GetRoom(ctx, s.room.ID)
	require.NoError(t, err)
	require.NotNil(t, room.LastCleaned)

	bookings, err := store.ListBookings(ctx, BookingFilter{})
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestMemoryNestedTransactionJoinsOuter(t *testing.T) {
	store := NewMemoryStore()
	s := seed(t, store)
	ctx := context.Background()

	err := store.Transaction(ctx, func(tx Store) error {
		return tx.Transaction(ctx, func(inner Store) error {
			return inner.InsertBooking(ctx, newBooking(s, "A", "2025-07-01", "2025-07-02"))
		})
	})
	require.NoError(t, err)

	bookings, err := store.GetBookingsForRoom(ctx, s.room.ID)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestMemoryBookingLifecycle(t *testing.T) {
	store := NewMemoryStore()
	s := seed(t, store)
	ctx := context.Background()

	b := newBooking(s, "A", "2025-07-05", "2025-07-07")
	require.NoError(t, store.InsertBooking(ctx, b))
	early := newBooking(s, "B", "2025-07-01", "2025-07-02")
	require.NoError(t, store.InsertBooking(ctx, early))

	got, err := store.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grand Plaza", got.Room.Hotel.Name)
	assert.Equal(t, models.CategoryStandard, got.Room.RoomType.Category)
	assert.Equal(t, "alice", got.User.Username)

	byRef, err := store.GetBookingByReference(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, b.ID, byRef.ID)

	forRoom, err := store.GetBookingsForRoom(ctx, s.room.ID)
	require.NoError(t, err)
	require.Len(t, forRoom, 2)
	assert.Equal(t, early.ID, forRoom[0].ID)

	require.NoError(t, store.UpdateBookingDates(ctx, b.ID, date("2025-07-06"), date("2025-07-09"), 3, decimal.NewFromInt(300)))
	got, err = store.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, date("2025-07-09"), got.CheckOut)
	assert.Equal(t, 3, got.Nights)

	require.NoError(t, store.CancelBooking(ctx, b.ID, time.Now(), "ill"))
	forRoom, err = store.GetBookingsForRoom(ctx, s.room.ID)
	require.NoError(t, err)
	assert.Len(t, forRoom, 1, "cancelled bookings are not returned")

	active, err := store.ListBookings(ctx, BookingFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, active, 1)

	require.NoError(t, store.DeleteBooking(ctx, early.ID))
	assert.ErrorIs(t, store.DeleteBooking(ctx, early.ID), ErrNotFound)
	assert.ErrorIs(t, store.UpdateBookingDates(ctx, early.ID, date("2025-07-01"), date("2025-07-02"), 1, decimal.Zero), ErrNotFound)
	assert.ErrorIs(t, store.CancelBooking(ctx, early.ID, time.Now(), ""), ErrNotFound)
}

func TestMemoryCatalogConstraints(t *testing.T) {
	store := NewMemoryStore()
	s := seed(t, store)
	ctx := context.Background()

	dup := models.Room{RoomNumber: 101, HotelID: s.hotel.ID, RoomTypeID: s.rt.ID}
	assert.ErrorIs(t, store.CreateRoom(ctx, &dup), apperror.ErrInvalidInput)

	orphan := models.Room{RoomNumber: 102, HotelID: 999, RoomTypeID: s.rt.ID}
	assert.ErrorIs(t, store.CreateRoom(ctx, &orphan), apperror.ErrInvalidInput)

	sameName := models.Hotel{Name: "grand plaza"}
	assert.ErrorIs(t, store.CreateHotel(ctx, &sameName), apperror.ErrInvalidInput)

	sameUser := models.User{Username: "ALICE"}
	assert.ErrorIs(t, store.CreateUser(ctx, &sameUser), apperror.ErrInvalidInput)

	_, err := store.GetHotelByName(ctx, "nowhere")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.GetUserByName(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.LockRoom(ctx, 999), ErrNotFound)
	assert.ErrorIs(t, store.MarkRoomCleaned(ctx, 999, time.Now()), ErrNotFound)

	rooms, err := store.GetRoomsByHotelAndType(ctx, s.hotel.ID, " standard ")
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "Grand Plaza", rooms[0].Hotel.Name)
}
