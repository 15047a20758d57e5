package config

import (
	"context"
	"io"
	"testing"

	"hotel-booking/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedDatabaseIsIdempotent(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	store := repository.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, SeedDatabase(ctx, store, log))
	require.NoError(t, SeedDatabase(ctx, store, log))

	hotels, err := store.ListHotels(ctx)
	require.NoError(t, err)
	assert.Len(t, hotels, 2)

	rooms, err := store.ListRooms(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, rooms, 20)

	standard, err := store.GetRoomsByHotelAndType(ctx, hotels[0].ID, "Standard")
	require.NoError(t, err)
	require.Len(t, standard, 2)
	assert.Equal(t, 101, standard[0].RoomNumber)
	assert.True(t, standard[0].IsAvailable)

	alice, err := store.GetUserByName(ctx, "alice")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(alice.PasswordHash), []byte("guest123")))
}
