package services

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"hotel-booking/models"
	"hotel-booking/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const testHotel = "Grand Plaza"

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

type fixture struct {
	store *repository.MemoryStore
	hotel models.Hotel
	types map[string]models.RoomType
	rooms map[int]models.Room
	users map[string]models.User
}

// newFixture seeds one hotel with Standard rooms 101 and 102, Family room
// 201, Single room 301 and the users alice and bob. Penthouse exists as a
// room type without rooms.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{
		store: repository.NewMemoryStore(),
		types: map[string]models.RoomType{},
		rooms: map[int]models.Room{},
		users: map[string]models.User{},
	}

	f.hotel = models.Hotel{Name: testHotel, City: "Lisbon"}
	require.NoError(t, f.store.CreateHotel(ctx, &f.hotel))

	for _, rt := range []models.RoomType{
		{Category: models.CategoryStandard, MaxCapacity: 2, BasePrice: decimal.NewFromInt(100)},
		{Category: models.CategoryFamily, MaxCapacity: 4, BasePrice: decimal.NewFromInt(150)},
		{Category: models.CategorySingle, MaxCapacity: 1, BasePrice: decimal.NewFromInt(80)},
		{Category: models.CategoryPenthouse, MaxCapacity: 6, BasePrice: decimal.NewFromInt(500)},
	} {
		rt := rt
		require.NoError(t, f.store.CreateRoomType(ctx, &rt))
		f.types[rt.Category] = rt
	}

	for number, category := range map[int]string{
		101: models.CategoryStandard,
		102: models.CategoryStandard,
		201: models.CategoryFamily,
		301: models.CategorySingle,
	} {
		room := models.Room{
			RoomNumber:  number,
			HotelID:     f.hotel.ID,
			RoomTypeID:  f.types[category].ID,
			IsAvailable: true,
		}
		require.NoError(t, f.store.CreateRoom(ctx, &room))
		f.rooms[number] = room
	}

	for _, name := range []string{"alice", "bob"} {
		u := models.User{Username: name, Email: name + "@example.com"}
		require.NoError(t, f.store.CreateUser(ctx, &u))
		f.users[name] = u
	}
	return f
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []BookingConfirmation
	err   error
}

func (n *recordingNotifier) NotifyBookingConfirmed(ctx context.Context, c BookingConfirmation) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, c)
	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

func (f *fixture) bookingService(notifier Notifier, opts ...BookingOption) *BookingService {
	opts = append([]BookingOption{WithRetryPolicy(RetryPolicy{Attempts: 3, Backoff: time.Millisecond})}, opts...)
	return NewBookingService(f.store, NewPricingCalculator(nil), notifier, quietLogger(), opts...)
}

func request(user, roomType, checkIn, checkOut string, guests int) CreateBookingRequest {
	return CreateBookingRequest{
		UserName:    user,
		HotelName:   testHotel,
		RoomType:    roomType,
		CheckIn:     day(checkIn),
		CheckOut:    day(checkOut),
		GuestsCount: guests,
	}
}
