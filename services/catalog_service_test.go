package services

import (
	"context"
	"testing"

	"hotel-booking/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCatalogCreatesRoomTypesAndRooms(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	catalog := NewCatalogService(f.store, quietLogger())

	rt, err := catalog.CreateRoomType(ctx, RoomTypeInput{Category: " royal ", MaxCapacity: 3, BasePrice: decimal.NewFromInt(300)})
	require.NoError(t, err)
	assert.Equal(t, "Royal", rt.Category)

	_, err = catalog.CreateRoomType(ctx, RoomTypeInput{Category: "Castle", MaxCapacity: 3, BasePrice: decimal.NewFromInt(300)})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	_, err = catalog.CreateRoomType(ctx, RoomTypeInput{Category: "Royal", MaxCapacity: 0, BasePrice: decimal.NewFromInt(300)})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	_, err = catalog.CreateRoomType(ctx, RoomTypeInput{Category: "Royal", MaxCapacity: 3, BasePrice: decimal.Zero})
	assert.ErrorIs(t, err, apperror.ErrInvalidPrice)

	closed := false
	room, err := catalog.CreateRoom(ctx, RoomInput{RoomNumber: 401, HotelName: testHotel, RoomTypeID: rt.ID, IsAvailable: &closed})
	require.NoError(t, err)
	assert.False(t, room.IsAvailable)
	assert.Equal(t, "Royal", room.RoomType.Category)

	_, err = catalog.CreateRoom(ctx, RoomInput{RoomNumber: 402, HotelName: "Nowhere", RoomTypeID: rt.ID})
	assert.ErrorIs(t, err, apperror.ErrHotelNotFound)

	rooms, err := catalog.ListRooms(ctx, testHotel)
	require.NoError(t, err)
	assert.Len(t, rooms, 5)

	_, err = catalog.CreateHotel(ctx, HotelInput{Name: "  "})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	_, err = catalog.CreateHotel(ctx, HotelInput{Name: testHotel})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput, "hotel names are unique")
}

func TestRegisterUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	users := NewUserService(f.store, quietLogger())

	user, err := users.RegisterUser(ctx, RegisterUserInput{Username: " carol ", Email: "carol@example.com", Password: "longenough"})
	require.NoError(t, err)
	assert.Equal(t, "carol", user.Username)
	assert.Equal(t, "guest", user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("longenough")))

	for name, in := range map[string]RegisterUserInput{
		"bad email":      {Username: "dave", Email: "dave", Password: "longenough"},
		"short password": {Username: "dave", Email: "dave@example.com", Password: "short"},
		"duplicate":      {Username: "alice", Email: "alice2@example.com", Password: "longenough"},
	} {
		_, err := users.RegisterUser(ctx, in)
		assert.ErrorIs(t, err, apperror.ErrInvalidInput, name)
	}

	_, err = users.GetUser(ctx, "nobody")
	assert.ErrorIs(t, err, apperror.ErrUserNotFound)
}
