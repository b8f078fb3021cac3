package booking

import (
	"context"
	"strings"

	"github.com/Domenick1991/travelbooking/internal/availability"
	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/repository"
)

type RoomAvailability struct {
	RoomID        int64   `json:"roomId"`
	Name          string  `json:"name"`
	PricePerNight float64 `json:"pricePerNight"`
	TotalRooms    int     `json:"totalRooms"`
	Booked        int     `json:"booked"`
	Remaining     int     `json:"remaining"`
}

type UserBookings struct {
	Hotels  []domain.Booking       `json:"hotelBookings"`
	Flights []domain.FlightBooking `json:"flightBookings"`
}

type OwnerBookingsFilter struct {
	StartDate string
	EndDate   string
	RoomName  string
}

// HotelAvailability lists every room of the hotel with the units left for [checkIn, checkOut).
func (s *BookingService) HotelAvailability(ctx context.Context, hotelID int64, checkIn, checkOut string) ([]RoomAvailability, error) {
	if hotelID <= 0 {
		return nil, domain.NewError(domain.KindInvalidRequest, "hotel id must be a positive id")
	}
	if strings.TrimSpace(checkIn) == "" || strings.TrimSpace(checkOut) == "" {
		return nil, domain.NewError(domain.KindInvalidRequest, "checkIn and checkOut are required")
	}
	window, err := availability.ParseRange(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	repos := s.store.Repos()
	if _, err := repos.Hotels.GetByID(ctx, hotelID); err != nil {
		return nil, lookupErr(err, "hotel not found")
	}
	rooms, err := repos.Rooms.ListByHotel(ctx, hotelID)
	if err != nil {
		return nil, internalErr(err, "failed to load rooms")
	}
	active, err := repos.Bookings.ListActiveByHotel(ctx, hotelID)
	if err != nil {
		return nil, internalErr(err, "failed to load bookings")
	}

	byRoom := make(map[int64][]domain.Booking, len(rooms))
	for _, b := range active {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}

	out := make([]RoomAvailability, 0, len(rooms))
	for _, room := range rooms {
		bookings := byRoom[room.ID]
		out = append(out, RoomAvailability{
			RoomID:        room.ID,
			Name:          room.Name,
			PricePerNight: room.PricePerNight,
			TotalRooms:    room.AvailableRooms,
			Booked:        availability.Occupied(bookings, window),
			Remaining:     availability.RemainingForDisplay(room.AvailableRooms, bookings, window),
		})
	}
	return out, nil
}

func (s *BookingService) ListUserBookings(ctx context.Context, userID int64) (*UserBookings, error) {
	repos := s.store.Repos()
	hotels, err := repos.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, internalErr(err, "failed to load bookings")
	}
	flights, err := repos.FlightBookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, internalErr(err, "failed to load flight bookings")
	}
	return &UserBookings{Hotels: hotels, Flights: flights}, nil
}

// ListOwnerBookings returns bookings on the owner's hotels. StartDate keeps
// stays ending after it, EndDate keeps stays starting before it.
func (s *BookingService) ListOwnerBookings(ctx context.Context, ownerID int64, filter OwnerBookingsFilter) ([]domain.BookingDetail, error) {
	var f repository.OwnerBookingFilter
	if v := strings.TrimSpace(filter.StartDate); v != "" {
		t, err := availability.ParseDate(v)
		if err != nil {
			return nil, err
		}
		f.From = &t
	}
	if v := strings.TrimSpace(filter.EndDate); v != "" {
		t, err := availability.ParseDate(v)
		if err != nil {
			return nil, err
		}
		f.To = &t
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return nil, domain.NewError(domain.KindInvalidRequest, "endDate must be after startDate")
	}
	f.RoomName = strings.TrimSpace(filter.RoomName)

	details, err := s.store.Repos().Bookings.ListByOwner(ctx, ownerID, f)
	if err != nil {
		return nil, internalErr(err, "failed to load owner bookings")
	}
	return details, nil
}
