package booking

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/repository"
)

// memStore is an in-memory repository.Store. Transactions are serialized and
// rolled back on error.
type memStore struct {
	txMu sync.Mutex

	mu       sync.Mutex
	hotels   map[int64]domain.Hotel
	rooms    map[int64]domain.Room
	bookings map[int64]domain.Booking
	flights  map[int64]domain.FlightBooking
	nextID   int64

	// replay runs every transaction body twice, discarding the first run,
	// the way a serialization retry would.
	replay bool
}

func newMemStore() *memStore {
	return &memStore{
		hotels:   make(map[int64]domain.Hotel),
		rooms:    make(map[int64]domain.Room),
		bookings: make(map[int64]domain.Booking),
		flights:  make(map[int64]domain.FlightBooking),
		nextID:   1000,
	}
}

type snapshot struct {
	rooms    map[int64]domain.Room
	bookings map[int64]domain.Booking
	flights  map[int64]domain.FlightBooking
	nextID   int64
}

func (s *memStore) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		rooms:    make(map[int64]domain.Room, len(s.rooms)),
		bookings: make(map[int64]domain.Booking, len(s.bookings)),
		flights:  make(map[int64]domain.FlightBooking, len(s.flights)),
		nextID:   s.nextID,
	}
	for k, v := range s.rooms {
		snap.rooms[k] = v
	}
	for k, v := range s.bookings {
		snap.bookings[k] = v
	}
	for k, v := range s.flights {
		snap.flights[k] = v
	}
	return snap
}

func (s *memStore) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms, s.bookings, s.flights, s.nextID = snap.rooms, snap.bookings, snap.flights, snap.nextID
}

func (s *memStore) Repos() repository.Repositories {
	return repository.Repositories{
		Hotels:         memHotels{s},
		Rooms:          memRooms{s},
		Bookings:       memBookings{s},
		FlightBookings: memFlights{s},
	}
}

func (s *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if s.replay {
		_ = fn(ctx, s.Repos())
		s.restore(snap)
		snap = s.snapshot()
	}
	if err := fn(ctx, s.Repos()); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) addHotel(h domain.Hotel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hotels[h.ID] = h
}

func (s *memStore) addRoom(r domain.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[r.ID] = r
}

func (s *memStore) addBooking(b domain.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID] = b
}

func (s *memStore) addFlight(fb domain.FlightBooking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flights[fb.ID] = fb
}

func (s *memStore) booking(id int64) domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookings[id]
}

func (s *memStore) flight(id int64) domain.FlightBooking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flights[id]
}

func (s *memStore) room(id int64) domain.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms[id]
}

func (s *memStore) countBookings(roomID int64, status domain.BookingStatus) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.bookings {
		if b.RoomID == roomID && b.Status == status {
			n++
		}
	}
	return n
}

type memHotels struct{ s *memStore }

func (r memHotels) GetByID(_ context.Context, id int64) (*domain.Hotel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h, ok := r.s.hotels[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &h, nil
}

type memRooms struct{ s *memStore }

func (r memRooms) GetByID(_ context.Context, id int64) (*domain.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	room, ok := r.s.rooms[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &room, nil
}

func (r memRooms) GetForUpdate(ctx context.Context, id int64) (*domain.Room, error) {
	return r.GetByID(ctx, id)
}

func (r memRooms) ListByHotel(_ context.Context, hotelID int64) ([]domain.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rooms := make([]domain.Room, 0)
	for _, room := range r.s.rooms {
		if room.HotelID == hotelID {
			rooms = append(rooms, room)
		}
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

func (r memRooms) UpdateCapacity(_ context.Context, id int64, capacity int) (*domain.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	room, ok := r.s.rooms[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	room.AvailableRooms = capacity
	r.s.rooms[id] = room
	return &room, nil
}

type memBookings struct{ s *memStore }

func (r memBookings) filter(keep func(domain.Booking) bool) []domain.Booking {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Booking, 0)
	for _, b := range r.s.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r memBookings) Create(_ context.Context, b *domain.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b.ID = r.s.id()
	r.s.bookings[b.ID] = *b
	return nil
}

func (r memBookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r memBookings) GetForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.GetByID(ctx, id)
}

func (r memBookings) ListActiveByRoom(_ context.Context, roomID int64) ([]domain.Booking, error) {
	return r.filter(func(b domain.Booking) bool {
		return b.RoomID == roomID && b.Status != domain.BookingStatusCanceled
	}), nil
}

func (r memBookings) ListActiveByHotel(_ context.Context, hotelID int64) ([]domain.Booking, error) {
	return r.filter(func(b domain.Booking) bool {
		return b.HotelID == hotelID && b.Status != domain.BookingStatusCanceled
	}), nil
}

func (r memBookings) ListByRoomAndStatus(_ context.Context, roomID int64, status domain.BookingStatus) ([]domain.Booking, error) {
	return r.filter(func(b domain.Booking) bool {
		return b.RoomID == roomID && b.Status == status
	}), nil
}

func (r memBookings) ListByUser(_ context.Context, userID int64) ([]domain.Booking, error) {
	out := r.filter(func(b domain.Booking) bool { return b.UserID == userID })
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memBookings) ListForUpdate(_ context.Context, ids []int64) ([]domain.Booking, error) {
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return r.filter(func(b domain.Booking) bool { return want[b.ID] }), nil
}

func (r memBookings) ListActiveByUserForUpdate(_ context.Context, userID int64) ([]domain.Booking, error) {
	return r.filter(func(b domain.Booking) bool {
		return b.UserID == userID && b.Status != domain.BookingStatusCanceled
	}), nil
}

func (r memBookings) ListByOwner(_ context.Context, ownerID int64, f repository.OwnerBookingFilter) ([]domain.BookingDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.BookingDetail, 0)
	for _, b := range r.s.bookings {
		hotel := r.s.hotels[b.HotelID]
		room := r.s.rooms[b.RoomID]
		if hotel.OwnerID != ownerID {
			continue
		}
		if f.From != nil && (b.CheckOut == nil || !b.CheckOut.After(*f.From)) {
			continue
		}
		if f.To != nil && (b.CheckIn == nil || !b.CheckIn.Before(*f.To)) {
			continue
		}
		if f.RoomName != "" && !strings.Contains(strings.ToLower(room.Name), strings.ToLower(f.RoomName)) {
			continue
		}
		out = append(out, domain.BookingDetail{Booking: b, RoomName: room.Name, HotelName: hotel.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memBookings) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	b.Status = status
	r.s.bookings[id] = b
	return &b, nil
}

type memFlights struct{ s *memStore }

func (r memFlights) filter(keep func(domain.FlightBooking) bool) []domain.FlightBooking {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.FlightBooking, 0)
	for _, fb := range r.s.flights {
		if keep(fb) {
			out = append(out, fb)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r memFlights) Create(_ context.Context, fb *domain.FlightBooking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	fb.ID = r.s.id()
	r.s.flights[fb.ID] = *fb
	return nil
}

func (r memFlights) GetForUpdate(_ context.Context, id int64) (*domain.FlightBooking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	fb, ok := r.s.flights[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &fb, nil
}

func (r memFlights) ListByUser(_ context.Context, userID int64) ([]domain.FlightBooking, error) {
	out := r.filter(func(fb domain.FlightBooking) bool { return fb.UserID == userID })
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memFlights) ListForUpdate(_ context.Context, ids []int64) ([]domain.FlightBooking, error) {
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return r.filter(func(fb domain.FlightBooking) bool { return want[fb.ID] }), nil
}

func (r memFlights) ListActiveByUserForUpdate(_ context.Context, userID int64) ([]domain.FlightBooking, error) {
	return r.filter(func(fb domain.FlightBooking) bool {
		return fb.UserID == userID && fb.Status != domain.BookingStatusCanceled
	}), nil
}

func (r memFlights) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) (*domain.FlightBooking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	fb, ok := r.s.flights[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	fb.Status = status
	r.s.flights[id] = fb
	return &fb, nil
}

var (
	_ repository.Store                   = (*memStore)(nil)
	_ repository.HotelRepository         = memHotels{}
	_ repository.RoomRepository          = memRooms{}
	_ repository.BookingRepository       = memBookings{}
	_ repository.FlightBookingRepository = memFlights{}
)
