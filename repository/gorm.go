package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"hotel-booking/apperror"
	"hotel-booking/models"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is the MySQL-backed Store.
type GormStore struct {
	DB *gorm.DB

	// set on the store handed to a Transaction callback
	inTx bool
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{DB: tx, inTx: true})
	})
	return classify(err)
}

// ---------------------------
// Hotels
// ---------------------------

func (s *GormStore) GetHotelByName(ctx context.Context, name string) (*models.Hotel, error) {
	var hotel models.Hotel
	err := s.DB.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&hotel).Error
	if err != nil {
		return nil, classify(err)
	}
	return &hotel, nil
}

func (s *GormStore) ListHotels(ctx context.Context) ([]models.Hotel, error) {
	var hotels []models.Hotel
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&hotels).Error; err != nil {
		return nil, classify(err)
	}
	return hotels, nil
}

func (s *GormStore) CreateHotel(ctx context.Context, hotel *models.Hotel) error {
	return classify(s.DB.WithContext(ctx).Omit(clause.Associations).Create(hotel).Error)
}

// ---------------------------
// Rooms & room types
// ---------------------------

func (s *GormStore) GetRoomsByHotelAndType(ctx context.Context, hotelID uint, typeLabel string) ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.WithContext(ctx).
		Joins("JOIN room_types ON room_types.id = rooms.room_type_id").
		Where("rooms.hotel_id = ? AND LOWER(room_types.category) = ?", hotelID, strings.ToLower(strings.TrimSpace(typeLabel))).
		Preload("RoomType").
		Order("rooms.room_number ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, classify(err)
	}
	return rooms, nil
}

func (s *GormStore) ListRooms(ctx context.Context, hotelID uint) ([]models.Room, error) {
	var rooms []models.Room
	q := s.DB.WithContext(ctx).Preload("RoomType").Preload("Hotel")
	if hotelID != 0 {
		q = q.Where("hotel_id = ?", hotelID)
	}
	if err := q.Order("hotel_id ASC, room_number ASC").Find(&rooms).Error; err != nil {
		return nil, classify(err)
	}
	return rooms, nil
}

func (s *GormStore) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).Preload("RoomType").Preload("Hotel").First(&room, id).Error; err != nil {
		return nil, classify(err)
	}
	return &room, nil
}

// LockRoom takes a row lock (SELECT ... FOR UPDATE) on the room.
func (s *GormStore) LockRoom(ctx context.Context, roomID uint) error {
	var room models.Room
	err := s.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&room, roomID).Error
	return classify(err)
}

func (s *GormStore) MarkRoomCleaned(ctx context.Context, roomID uint, at time.Time) error {
	res := s.DB.WithContext(ctx).Model(&models.Room{}).
		Where("id = ?", roomID).
		Update("last_cleaned", at)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) CreateRoom(ctx context.Context, room *models.Room) error {
	return classify(s.DB.WithContext(ctx).Omit(clause.Associations).Create(room).Error)
}

func (s *GormStore) ListRoomTypes(ctx context.Context) ([]models.RoomType, error) {
	var types []models.RoomType
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&types).Error; err != nil {
		return nil, classify(err)
	}
	return types, nil
}

func (s *GormStore) CreateRoomType(ctx context.Context, roomType *models.RoomType) error {
	return classify(s.DB.WithContext(ctx).Create(roomType).Error)
}

// ---------------------------
// Bookings
// ---------------------------

// GetBookingsForRoom returns the room's active bookings. Inside a
// transaction the rows are read with FOR UPDATE: a plain SELECT under
// REPEATABLE READ would answer from the snapshot taken by the first read of
// the transaction and miss bookings committed while we waited on LockRoom.
func (s *GormStore) GetBookingsForRoom(ctx context.Context, roomID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.bookingsForRoom(ctx, roomID).Find(&bookings).Error; err != nil {
		return nil, classify(err)
	}
	return bookings, nil
}

func (s *GormStore) bookingsForRoom(ctx context.Context, roomID uint) *gorm.DB {
	q := s.DB.WithContext(ctx).
		Where("room_id = ? AND status <> ?", roomID, models.BookingStatusCancelled).
		Order("check_in ASC, id ASC")
	if s.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

func (s *GormStore) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.WithContext(ctx).
		Preload("Room.RoomType").
		Preload("Room.Hotel").
		Preload("User").
		First(&booking, id).Error
	if err != nil {
		return nil, classify(err)
	}
	return &booking, nil
}

func (s *GormStore) GetBookingByReference(ctx context.Context, code string) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.WithContext(ctx).
		Preload("Room.RoomType").
		Preload("Room.Hotel").
		Preload("User").
		Where("reference_code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&booking).Error
	if err != nil {
		return nil, classify(err)
	}
	return &booking, nil
}

func (s *GormStore) InsertBooking(ctx context.Context, booking *models.Booking) error {
	return classify(s.DB.WithContext(ctx).Omit(clause.Associations).Create(booking).Error)
}

func (s *GormStore) UpdateBookingDates(ctx context.Context, id uint, checkIn, checkOut time.Time, nights int, total decimal.Decimal) error {
	res := s.DB.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"check_in":    checkIn,
			"check_out":   checkOut,
			"nights":      nights,
			"total_price": total,
		})
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) CancelBooking(ctx context.Context, id uint, at time.Time, reason string) error {
	res := s.DB.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.BookingStatusCancelled,
			"cancelled_at":  at,
			"cancel_reason": reason,
		})
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteBooking(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Booking{}, id)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListBookings(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	q := s.DB.WithContext(ctx).Model(&models.Booking{}).
		Preload("Room.Hotel").
		Preload("Room.RoomType").
		Preload("User")
	if filter.UserID != 0 {
		q = q.Where("bookings.user_id = ?", filter.UserID)
	}
	if filter.HotelID != 0 {
		q = q.Joins("JOIN rooms ON rooms.id = bookings.room_id").
			Where("rooms.hotel_id = ?", filter.HotelID)
	}
	if filter.ActiveOnly {
		q = q.Where("bookings.status <> ?", models.BookingStatusCancelled)
	}

	var bookings []models.Booking
	if err := q.Order("bookings.check_in ASC, bookings.id ASC").Find(&bookings).Error; err != nil {
		return nil, classify(err)
	}
	return bookings, nil
}

// ---------------------------
// Users
// ---------------------------

func (s *GormStore) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).
		Where("LOWER(username) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&user).Error
	if err != nil {
		return nil, classify(err)
	}
	return &user, nil
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	return classify(s.DB.WithContext(ctx).Omit(clause.Associations).Create(user).Error)
}

// ---------------------------
// Error classification
// ---------------------------

// classify maps driver errors onto ErrNotFound and the retryable
// ErrStorageUnavailable; everything else passes through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperror.From(err); ok {
		return err
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if isDuplicateKeyError(err) {
		return fmt.Errorf("%w: duplicate entry", apperror.ErrInvalidInput)
	}
	if isTransientError(err) {
		return fmt.Errorf("%w: %v", apperror.ErrStorageUnavailable, err)
	}
	return err
}

func isTransientError(err error) bool {
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		switch merr.Number {
		case 1040, 1205, 1213: // too many connections, lock wait timeout, deadlock
			return true
		}
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func isDuplicateKeyError(err error) bool {
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1062
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
