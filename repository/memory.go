package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"hotel-booking/apperror"
	"hotel-booking/models"

	"github.com/shopspring/decimal"
)

// MemoryStore keeps everything in process memory. Transactions are
// serialized, which gives the same check-then-insert guarantee the MySQL
// store gets from row locks.
type MemoryStore struct {
	txMu sync.Mutex

	mu    sync.RWMutex
	state memoryState
	now   func() time.Time
}

type memoryState struct {
	hotels    map[uint]models.Hotel
	roomTypes map[uint]models.RoomType
	rooms     map[uint]models.Room
	users     map[uint]models.User
	bookings  map[uint]models.Booking
	lastID    uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state: memoryState{
			hotels:    map[uint]models.Hotel{},
			roomTypes: map[uint]models.RoomType{},
			rooms:     map[uint]models.Room{},
			users:     map[uint]models.User{},
			bookings:  map[uint]models.Booking{},
		},
		now: time.Now,
	}
}

// memoryTx is the Store handed to a Transaction callback. Its writes skip
// txMu, which the enclosing Transaction already holds.
type memoryTx struct {
	*MemoryStore
}

// Transaction on an open transaction joins it.
func (t memoryTx) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return fn(t)
}

// Transaction runs fn under txMu. Every write outside a transaction takes
// txMu as well, so restoring the snapshot on failure can only undo fn's own
// writes.
func (s *MemoryStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := s.snapshot()
	if err := fn(memoryTx{s}); err != nil {
		s.restore(snapshot)
		return err
	}
	if err := ctx.Err(); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

func (s *MemoryStore) snapshot() memoryState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return memoryState{
		hotels:    copyMap(s.state.hotels),
		roomTypes: copyMap(s.state.roomTypes),
		rooms:     copyMap(s.state.rooms),
		users:     copyMap(s.state.users),
		bookings:  copyMap(s.state.bookings),
		lastID:    s.state.lastID,
	}
}

func (s *MemoryStore) restore(state memoryState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func copyMap[V any](in map[uint]V) map[uint]V {
	out := make(map[uint]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (s *MemoryStore) nextID() uint {
	s.state.lastID++
	return s.state.lastID
}

func (s *MemoryStore) stamp(created, updated *time.Time) {
	now := s.now().UTC()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

// ---------------------------
// Hotels
// ---------------------------

func (s *MemoryStore) GetHotelByName(ctx context.Context, name string) (*models.Hotel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.state.hotels {
		if strings.EqualFold(h.Name, strings.TrimSpace(name)) {
			hotel := h
			return &hotel, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListHotels(ctx context.Context) ([]models.Hotel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hotels := make([]models.Hotel, 0, len(s.state.hotels))
	for _, h := range s.state.hotels {
		hotels = append(hotels, h)
	}
	sort.Slice(hotels, func(i, j int) bool { return hotels[i].Name < hotels[j].Name })
	return hotels, nil
}

func (s *MemoryStore) createHotel(ctx context.Context, hotel *models.Hotel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.state.hotels {
		if strings.EqualFold(h.Name, hotel.Name) {
			return fmt.Errorf("%w: duplicate entry", apperror.ErrInvalidInput)
		}
	}
	hotel.ID = s.nextID()
	s.stamp(&hotel.CreatedAt, &hotel.UpdatedAt)
	stored := *hotel
	stored.Rooms = nil
	s.state.hotels[hotel.ID] = stored
	return nil
}

// ---------------------------
// Rooms & room types
// ---------------------------

func (s *MemoryStore) hydrateRoom(r models.Room) models.Room {
	r.RoomType = s.state.roomTypes[r.RoomTypeID]
	r.Hotel = s.state.hotels[r.HotelID]
	return r
}

func sortRooms(rooms []models.Room) {
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].HotelID != rooms[j].HotelID {
			return rooms[i].HotelID < rooms[j].HotelID
		}
		return rooms[i].RoomNumber < rooms[j].RoomNumber
	})
}

func (s *MemoryStore) GetRoomsByHotelAndType(ctx context.Context, hotelID uint, typeLabel string) ([]models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var rooms []models.Room
	for _, r := range s.state.rooms {
		if r.HotelID != hotelID {
			continue
		}
		if !strings.EqualFold(s.state.roomTypes[r.RoomTypeID].Category, strings.TrimSpace(typeLabel)) {
			continue
		}
		rooms = append(rooms, s.hydrateRoom(r))
	}
	sortRooms(rooms)
	return rooms, nil
}

func (s *MemoryStore) ListRooms(ctx context.Context, hotelID uint) ([]models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rooms := make([]models.Room, 0, len(s.state.rooms))
	for _, r := range s.state.rooms {
		if hotelID != 0 && r.HotelID != hotelID {
			continue
		}
		rooms = append(rooms, s.hydrateRoom(r))
	}
	sortRooms(rooms)
	return rooms, nil
}

func (s *MemoryStore) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.state.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	room := s.hydrateRoom(r)
	return &room, nil
}

func (s *MemoryStore) LockRoom(ctx context.Context, roomID uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.state.rooms[roomID]; !ok {
		return ErrNotFound
	}
	return nil
}

func (s *MemoryStore) markRoomCleaned(ctx context.Context, roomID uint, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.state.rooms[roomID]
	if !ok {
		return ErrNotFound
	}
	r.LastCleaned = &at
	r.UpdatedAt = s.now().UTC()
	s.state.rooms[roomID] = r
	return nil
}

func (s *MemoryStore) createRoom(ctx context.Context, room *models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.hotels[room.HotelID]; !ok {
		return fmt.Errorf("%w: unknown hotel %d", apperror.ErrInvalidInput, room.HotelID)
	}
	if _, ok := s.state.roomTypes[room.RoomTypeID]; !ok {
		return fmt.Errorf("%w: unknown room type %d", apperror.ErrInvalidInput, room.RoomTypeID)
	}
	for _, r := range s.state.rooms {
		if r.HotelID == room.HotelID && r.RoomNumber == room.RoomNumber {
			return fmt.Errorf("%w: duplicate entry", apperror.ErrInvalidInput)
		}
	}
	room.ID = s.nextID()
	s.stamp(&room.CreatedAt, &room.UpdatedAt)
	stored := *room
	stored.Hotel = models.Hotel{}
	stored.RoomType = models.RoomType{}
	s.state.rooms[room.ID] = stored
	return nil
}

func (s *MemoryStore) ListRoomTypes(ctx context.Context) ([]models.RoomType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	types := make([]models.RoomType, 0, len(s.state.roomTypes))
	for _, rt := range s.state.roomTypes {
		types = append(types, rt)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].ID < types[j].ID })
	return types, nil
}

func (s *MemoryStore) createRoomType(ctx context.Context, roomType *models.RoomType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	roomType.ID = s.nextID()
	s.stamp(&roomType.CreatedAt, &roomType.UpdatedAt)
	s.state.roomTypes[roomType.ID] = *roomType
	return nil
}

// ---------------------------
// Bookings
// ---------------------------

func (s *MemoryStore) hydrateBooking(b models.Booking) models.Booking {
	if r, ok := s.state.rooms[b.RoomID]; ok {
		b.Room = s.hydrateRoom(r)
	}
	b.User = s.state.users[b.UserID]
	return b
}

func sortBookings(bookings []models.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].CheckIn.Equal(bookings[j].CheckIn) {
			return bookings[i].CheckIn.Before(bookings[j].CheckIn)
		}
		return bookings[i].ID < bookings[j].ID
	})
}

func (s *MemoryStore) GetBookingsForRoom(ctx context.Context, roomID uint) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var bookings []models.Booking
	for _, b := range s.state.bookings {
		if b.RoomID == roomID && b.IsActive() {
			bookings = append(bookings, b)
		}
	}
	sortBookings(bookings)
	return bookings, nil
}

func (s *MemoryStore) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.state.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	booking := s.hydrateBooking(b)
	return &booking, nil
}

func (s *MemoryStore) GetBookingByReference(ctx context.Context, code string) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.state.bookings {
		if strings.EqualFold(b.ReferenceCode, strings.TrimSpace(code)) {
			booking := s.hydrateBooking(b)
			return &booking, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) insertBooking(ctx context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.rooms[booking.RoomID]; !ok {
		return fmt.Errorf("%w: unknown room %d", apperror.ErrInvalidInput, booking.RoomID)
	}
	if _, ok := s.state.users[booking.UserID]; !ok {
		return fmt.Errorf("%w: unknown user %d", apperror.ErrInvalidInput, booking.UserID)
	}
	booking.ID = s.nextID()
	s.stamp(&booking.CreatedAt, &booking.UpdatedAt)
	stored := *booking
	stored.Room = models.Room{}
	stored.User = models.User{}
	s.state.bookings[booking.ID] = stored
	return nil
}

func (s *MemoryStore) updateBookingDates(ctx context.Context, id uint, checkIn, checkOut time.Time, nights int, total decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.state.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	b.Nights = nights
	b.TotalPrice = total
	b.UpdatedAt = s.now().UTC()
	s.state.bookings[id] = b
	return nil
}

func (s *MemoryStore) cancelBooking(ctx context.Context, id uint, at time.Time, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.state.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = models.BookingStatusCancelled
	b.CancelledAt = &at
	b.CancelReason = reason
	b.UpdatedAt = s.now().UTC()
	s.state.bookings[id] = b
	return nil
}

func (s *MemoryStore) deleteBooking(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(s.state.bookings, id)
	return nil
}

func (s *MemoryStore) ListBookings(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bookings := make([]models.Booking, 0, len(s.state.bookings))
	for _, b := range s.state.bookings {
		if filter.UserID != 0 && b.UserID != filter.UserID {
			continue
		}
		if filter.HotelID != 0 && s.state.rooms[b.RoomID].HotelID != filter.HotelID {
			continue
		}
		if filter.ActiveOnly && !b.IsActive() {
			continue
		}
		bookings = append(bookings, s.hydrateBooking(b))
	}
	sortBookings(bookings)
	return bookings, nil
}

// ---------------------------
// Users
// ---------------------------

func (s *MemoryStore) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.state.users {
		if strings.EqualFold(u.Username, strings.TrimSpace(name)) {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) createUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.state.users {
		if strings.EqualFold(u.Username, user.Username) {
			return fmt.Errorf("%w: duplicate entry", apperror.ErrInvalidInput)
		}
	}
	user.ID = s.nextID()
	s.stamp(&user.CreatedAt, &user.UpdatedAt)
	stored := *user
	stored.Bookings = nil
	s.state.users[user.ID] = stored
	return nil
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = memoryTx{}
	_ Store = (*GormStore)(nil)
)

// ---------------------------
// Write entry points
// ---------------------------

func (s *MemoryStore) CreateHotel(ctx context.Context, hotel *models.Hotel) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return s.createHotel(ctx, hotel)
}

func (t memoryTx) CreateHotel(ctx context.Context, hotel *models.Hotel) error {
	return t.createHotel(ctx, hotel)
}

func (s *MemoryStore) MarkRoomCleaned(ctx context.Context, roomID uint, at time.Time) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return s.markRoomCleaned(ctx, roomID, at)
}

func (t memoryTx) MarkRoomCleaned(ctx context.Context, roomID uint, at time.Time) error {
	return t.markRoomCleaned(ctx, roomID, at)
}

func (s *MemoryStore) CreateRoom(ctx context.Context, room *models.Room) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return s.createRoom(ctx, room)
}

func (t memoryTx) CreateRoom(ctx context.Context, room *models.Room) error {
	return t.createRoom(ctx, room)
}

func (s *MemoryStore) CreateRoomType(ctx context.Context, roomType *models.RoomType) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return s.createRoomType(ctx, roomType)
}

func (t memoryTx) CreateRoomType(ctx context.Context, roomType *models.RoomType) error {
	return t.createRoomType(ctx, roomType)
}

func (s *MemoryStore) InsertBooking(ctx context.Context, booking *models.Booking) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return s.insertBooking(ctx, booking)
}

func (t memoryTx) InsertBooking(ctx context.Context, booking *models.Booking) error {
	return t.insertBooking(ctx, booking)
}

func (s *MemoryStore) UpdateBookingDates(ctx context.Context, id uint, checkIn, checkOut time.Time, nights int, total decimal.Decimal) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return s.updateBookingDates(ctx, id, checkIn, checkOut, nights, total)
}

func (t memoryTx) UpdateBookingDates(ctx context.Context, id uint, checkIn, checkOut time.Time, nights int, total decimal.Decimal) error {
	return t.updateBookingDates(ctx, id, checkIn, checkOut, nights, total)
}

func (s *MemoryStore) CancelBooking(ctx context.Context, id uint, at time.Time, reason string) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return s.cancelBooking(ctx, id, at, reason)
}

func (t memoryTx) CancelBooking(ctx context.Context, id uint, at time.Time, reason string) error {
	return t.cancelBooking(ctx, id, at, reason)
}

func (s *MemoryStore) DeleteBooking(ctx context.Context, id uint) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return s.deleteBooking(ctx, id)
}

func (t memoryTx) DeleteBooking(ctx context.Context, id uint) error {
	return t.deleteBooking(ctx, id)
}

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return s.createUser(ctx, user)
}

func (t memoryTx) CreateUser(ctx context.Context, user *models.User) error {
	return t.createUser(ctx, user)
}
