package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"hotel-booking/apperror"
	"hotel-booking/models"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteStore(t *testing.T) *GormStore {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Hotel{}, &models.RoomType{}, &models.User{}, &models.Room{}, &models.Booking{}))
	return NewGormStore(db)
}

func TestGormStoreBookingLifecycle(t *testing.T) {
	store := newSQLiteStore(t)
	s := seed(t, store)
	ctx := context.Background()

	b := newBooking(s, "BK-A", "2025-07-05", "2025-07-07")
	require.NoError(t, store.InsertBooking(ctx, b))
	require.NotZero(t, b.ID)
	early := newBooking(s, "BK-B", "2025-07-01", "2025-07-02")
	require.NoError(t, store.InsertBooking(ctx, early))

	got, err := store.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grand Plaza", got.Room.Hotel.Name)
	assert.Equal(t, models.CategoryStandard, got.Room.RoomType.Category)
	assert.Equal(t, "alice", got.User.Username)
	assert.True(t, got.TotalPrice.Equal(decimal.NewFromInt(100)))

	byRef, err := store.GetBookingByReference(ctx, "bk-a")
	require.NoError(t, err)
	assert.Equal(t, b.ID, byRef.ID)

	forRoom, err := store.GetBookingsForRoom(ctx, s.room.ID)
	require.NoError(t, err)
	require.Len(t, forRoom, 2)
	assert.Equal(t, early.ID, forRoom[0].ID)

	require.NoError(t, store.UpdateBookingDates(ctx, b.ID, date("2025-07-06"), date("2025-07-09"), 3, decimal.NewFromInt(300)))
	require.NoError(t, store.CancelBooking(ctx, early.ID, time.Now().UTC(), "ill"))

	forRoom, err = store.GetBookingsForRoom(ctx, s.room.ID)
	require.NoError(t, err)
	require.Len(t, forRoom, 1)
	assert.Equal(t, 3, forRoom[0].Nights)

	byHotel, err := store.ListBookings(ctx, BookingFilter{HotelID: s.hotel.ID})
	require.NoError(t, err)
	assert.Len(t, byHotel, 2)
	byUser, err := store.ListBookings(ctx, BookingFilter{UserID: s.user.ID, ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	require.NoError(t, store.DeleteBooking(ctx, b.ID))
	assert.ErrorIs(t, store.DeleteBooking(ctx, b.ID), ErrNotFound)
	_, err = store.GetBooking(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStoreTransactionRollback(t *testing.T) {
	store := newSQLiteStore(t)
	s := seed(t, store)
	ctx := context.Background()

	boom := errors.New("boom")
	err := store.Transaction(ctx, func(tx Store) error {
		if err := tx.LockRoom(ctx, s.room.ID); err != nil {
			return err
		}
		if err := tx.InsertBooking(ctx, newBooking(s, "BK-A", "2025-07-01", "2025-07-02")); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	all, err := store.ListBookings(ctx, BookingFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

// newDryRunMySQL renders MySQL statements without a server.
func newDryRunMySQL(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		DSN:                       "hotel:hotel@tcp(127.0.0.1:3306)/hotel?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestGormStoreBookingsReadInsideTransactionLocksRows(t *testing.T) {
	db := newDryRunMySQL(t)
	ctx := context.Background()

	render := func(inTx bool) string {
		return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			store := &GormStore{DB: tx, inTx: inTx}
			return store.bookingsForRoom(ctx, 7).Find(&[]models.Booking{})
		})
	}

	locked := render(true)
	assert.Contains(t, locked, "room_id = 7")
	assert.True(t, strings.HasSuffix(locked, "FOR UPDATE"), locked)

	assert.NotContains(t, render(false), "FOR UPDATE")
}

func TestGormStoreTransactionHandsOutLockingStore(t *testing.T) {
	store := newSQLiteStore(t)
	s := seed(t, store)
	ctx := context.Background()
	require.NoError(t, store.InsertBooking(ctx, newBooking(s, "BK-A", "2025-07-01", "2025-07-03")))

	assert.False(t, store.inTx)
	err := store.Transaction(ctx, func(tx Store) error {
		gs, ok := tx.(*GormStore)
		require.True(t, ok)
		assert.True(t, gs.inTx)

		bookings, err := tx.GetBookingsForRoom(ctx, s.room.ID)
		if err != nil {
			return err
		}
		assert.Len(t, bookings, 1)
		return nil
	})
	require.NoError(t, err)
}

func TestGormStoreCatalog(t *testing.T) {
	store := newSQLiteStore(t)
	s := seed(t, store)
	ctx := context.Background()

	second := models.Room{RoomNumber: 9, HotelID: s.hotel.ID, RoomTypeID: s.rt.ID, IsAvailable: false}
	require.NoError(t, store.CreateRoom(ctx, &second))

	rooms, err := store.GetRoomsByHotelAndType(ctx, s.hotel.ID, "STANDARD")
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, 9, rooms[0].RoomNumber, "numeric order")
	assert.False(t, rooms[0].IsAvailable)
	assert.Equal(t, models.CategoryStandard, rooms[0].RoomType.Category)

	hotel, err := store.GetHotelByName(ctx, "grand plaza")
	require.NoError(t, err)
	assert.Equal(t, s.hotel.ID, hotel.ID)
	_, err = store.GetHotelByName(ctx, "nowhere")
	assert.ErrorIs(t, err, ErrNotFound)

	at := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, store.MarkRoomCleaned(ctx, s.room.ID, at))
	room, err := store.GetRoom(ctx, s.room.ID)
	require.NoError(t, err)
	require.NotNil(t, room.LastCleaned)
	assert.True(t, room.LastCleaned.Equal(at))
	assert.ErrorIs(t, store.MarkRoomCleaned(ctx, 999, at), ErrNotFound)
	assert.ErrorIs(t, store.LockRoom(ctx, 999), ErrNotFound)

	dup := models.Room{RoomNumber: 101, HotelID: s.hotel.ID, RoomTypeID: s.rt.ID}
	assert.ErrorIs(t, store.CreateRoom(ctx, &dup), apperror.ErrInvalidInput)

	types, err := store.ListRoomTypes(ctx)
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.True(t, types[0].BasePrice.Equal(decimal.NewFromInt(100)))
}

func TestClassify(t *testing.T) {
	assert.Nil(t, classify(nil))
	assert.ErrorIs(t, classify(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, classify(&mysql.MySQLError{Number: 1213, Message: "Deadlock found"}), apperror.ErrStorageUnavailable)
	assert.ErrorIs(t, classify(&mysql.MySQLError{Number: 1205, Message: "Lock wait timeout"}), apperror.ErrStorageUnavailable)
	assert.ErrorIs(t, classify(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}), apperror.ErrInvalidInput)
	assert.ErrorIs(t, classify(mysql.ErrInvalidConn), apperror.ErrStorageUnavailable)
	assert.ErrorIs(t, classify(context.DeadlineExceeded), context.DeadlineExceeded)

	other := errors.New("syntax error")
	assert.Equal(t, other, classify(other))
	assert.ErrorIs(t, classify(fmt.Errorf("wrap: %w", apperror.ErrDateConflict)), apperror.ErrDateConflict)
}
