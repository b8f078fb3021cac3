package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/travelbooking/internal/availability"
	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/provider"
	"github.com/Domenick1991/travelbooking/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, userID int64, input CreateBookingInput) (*CreateBookingResult, error)
	ReduceCapacity(ctx context.Context, ownerID, roomID int64, capacity int) (*ReduceCapacityResult, error)
	Cancel(ctx context.Context, userID int64, req CancelRequest) (*CancelResult, error)
	CancelAsOwner(ctx context.Context, ownerID, bookingID int64) (*CancelItem, error)
	Checkout(ctx context.Context, userID int64, input CheckoutInput) (*CheckoutResult, error)
	HotelAvailability(ctx context.Context, hotelID int64, checkIn, checkOut string) ([]RoomAvailability, error)
	ListUserBookings(ctx context.Context, userID int64) (*UserBookings, error)
	ListOwnerBookings(ctx context.Context, ownerID int64, filter OwnerBookingsFilter) ([]domain.BookingDetail, error)
}

// Notifier delivers a message to a user's inbox.
type Notifier interface {
	Notify(ctx context.Context, userID int64, message string) error
}

// FlightBooker reserves seats with the flight provider.
type FlightBooker interface {
	BookFlights(ctx context.Context, req provider.BookFlightsRequest) (*provider.BookFlightsResponse, error)
}

type BookingService struct {
	store              repository.Store
	notifier           Notifier
	flights            FlightBooker
	log                *logrus.Logger
	validate           *validator.Validate
	now                func() time.Time
	allowDirectConfirm bool
}

type BookingServiceOption func(*BookingService)

// WithDirectConfirm lets callers create hotel bookings already CONFIRMED.
func WithDirectConfirm(allow bool) BookingServiceOption {
	return func(s *BookingService) {
		s.allowDirectConfirm = allow
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	store repository.Store,
	notifier Notifier,
	flights FlightBooker,
	log *logrus.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		store:    store,
		notifier: notifier,
		flights:  flights,
		log:      log,
		validate: newValidator(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

type CreateBookingInput struct {
	Hotel  *HotelLegInput
	Flight *FlightLegInput
}

type HotelLegInput struct {
	HotelID  int64                `json:"hotelId" validate:"gt=0"`
	RoomID   int64                `json:"roomId" validate:"gt=0"`
	CheckIn  string               `json:"checkIn"`
	CheckOut string               `json:"checkOut"`
	Status   domain.BookingStatus `json:"status"`
}

type FlightLegInput struct {
	FlightIDs      []string `json:"flightIds" validate:"required,min=1,dive,required"`
	FirstName      string   `json:"firstName" validate:"required"`
	LastName       string   `json:"lastName" validate:"required"`
	Email          string   `json:"email" validate:"required"`
	PassportNumber string   `json:"passportNumber" validate:"required,len=9"`
}

// CreateBookingResult reports each requested leg on its own. Exactly one of
// Booking and Err is set for a leg that was requested.
type CreateBookingResult struct {
	Hotel  *HotelLegResult
	Flight *FlightLegResult
}

type HotelLegResult struct {
	Booking *domain.Booking
	Err     error
}

type FlightLegResult struct {
	Booking *domain.FlightBooking
	Err     error
}

// Err returns the failure of a single-leg request, or nil when at least one leg succeeded.
func (r *CreateBookingResult) Err() error {
	var errs []error
	ok := false
	if r.Hotel != nil {
		if r.Hotel.Err != nil {
			errs = append(errs, r.Hotel.Err)
		} else {
			ok = true
		}
	}
	if r.Flight != nil {
		if r.Flight.Err != nil {
			errs = append(errs, r.Flight.Err)
		} else {
			ok = true
		}
	}
	if ok || len(errs) == 0 {
		return nil
	}
	return errs[0]
}

// CreateBooking runs the hotel and flight legs independently. A failed leg
// never undoes the other one.
func (s *BookingService) CreateBooking(ctx context.Context, userID int64, input CreateBookingInput) (*CreateBookingResult, error) {
	if input.Hotel == nil && input.Flight == nil {
		return nil, domain.NewError(domain.KindInvalidRequest, "a hotel or flight booking is required")
	}

	result := &CreateBookingResult{}
	var g errgroup.Group
	if input.Hotel != nil {
		result.Hotel = &HotelLegResult{}
		g.Go(func() error {
			result.Hotel.Booking, result.Hotel.Err = s.createHotelBooking(ctx, userID, *input.Hotel)
			return nil
		})
	}
	if input.Flight != nil {
		result.Flight = &FlightLegResult{}
		g.Go(func() error {
			result.Flight.Booking, result.Flight.Err = s.createFlightBooking(ctx, userID, *input.Flight)
			return nil
		})
	}
	_ = g.Wait()

	return result, nil
}

func (s *BookingService) createHotelBooking(ctx context.Context, userID int64, in HotelLegInput) (*domain.Booking, error) {
	if err := s.validateStruct(in); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = domain.BookingStatusPending
	}
	if err := domain.CheckInitial(status); err != nil {
		return nil, err
	}
	if status == domain.BookingStatusConfirmed && !s.allowDirectConfirm {
		return nil, domain.NewError(domain.KindInvalidRequest, "bookings must be confirmed through checkout")
	}

	var (
		booking *domain.Booking
		notes   outbox
	)
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		notes.reset()

		hotel, err := repos.Hotels.GetByID(ctx, in.HotelID)
		if err != nil {
			return lookupErr(err, "hotel not found")
		}
		// The row lock serializes concurrent reservations of the same room.
		room, err := repos.Rooms.GetForUpdate(ctx, in.RoomID)
		if err != nil {
			return lookupErr(err, "room not found")
		}
		if room.HotelID != hotel.ID {
			return domain.NewError(domain.KindNotFound, "room not found in this hotel")
		}

		window, err := availability.ParseRange(in.CheckIn, in.CheckOut)
		if err != nil {
			return err
		}

		active, err := repos.Bookings.ListActiveByRoom(ctx, room.ID)
		if err != nil {
			return internalErr(err, "failed to load room bookings")
		}
		if availability.Remaining(room.AvailableRooms, active, window) <= 0 {
			return domain.NewError(domain.KindRoomUnavailable, "no rooms available for the selected dates")
		}

		b := &domain.Booking{UserID: userID, HotelID: hotel.ID, RoomID: room.ID, Status: status}
		if window != nil {
			b.CheckIn, b.CheckOut = &window.Start, &window.End
		}
		if err := repos.Bookings.Create(ctx, b); err != nil {
			return internalErr(err, "failed to create booking")
		}
		booking = b

		notes.add(userID, fmt.Sprintf("Your reservation #%d for %s at %s was created with status %s.", b.ID, room.Name, hotel.Name, b.Status))
		notes.add(hotel.OwnerID, fmt.Sprintf("New booking #%d received for %s at %s.", b.ID, room.Name, hotel.Name))
		return nil
	})
	if err != nil {
		return nil, internalErr(err, "failed to create booking")
	}

	s.flush(ctx, notes)
	s.log.WithFields(logrus.Fields{"booking_id": booking.ID, "room_id": booking.RoomID, "user_id": userID}).Info("hotel booking created")
	return booking, nil
}

func (s *BookingService) createFlightBooking(ctx context.Context, userID int64, in FlightLegInput) (*domain.FlightBooking, error) {
	in = trimFlightLeg(in)
	if err := s.validateStruct(in); err != nil {
		return nil, err
	}

	resp, err := s.flights.BookFlights(ctx, provider.BookFlightsRequest{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		PassportNumber: in.PassportNumber,
		FlightIDs:      in.FlightIDs,
	})
	if err != nil {
		return nil, providerErr(err)
	}

	fb := &domain.FlightBooking{
		UserID:            userID,
		ProviderReference: resp.BookingReference,
		FlightIDs:         in.FlightIDs,
		FirstName:         in.FirstName,
		LastName:          in.LastName,
		Email:             in.Email,
		PassportNumber:    in.PassportNumber,
		Status:            domain.BookingStatusPending,
	}
	if err := s.store.Repos().FlightBookings.Create(ctx, fb); err != nil {
		s.log.WithError(err).WithField("provider_reference", resp.BookingReference).Error("flight booked with provider but not stored")
		return nil, internalErr(err, "failed to store flight booking")
	}

	s.notify(ctx, userID, fmt.Sprintf("Your flight booking #%d (reference %s) was created.", fb.ID, fb.ProviderReference))
	s.log.WithFields(logrus.Fields{"flight_booking_id": fb.ID, "user_id": userID}).Info("flight booking created")
	return fb, nil
}

func trimFlightLeg(in FlightLegInput) FlightLegInput {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.PassportNumber = strings.TrimSpace(in.PassportNumber)
	ids := make([]string, 0, len(in.FlightIDs))
	for _, id := range in.FlightIDs {
		ids = append(ids, strings.TrimSpace(id))
	}
	in.FlightIDs = ids
	return in
}

func providerErr(err error) error {
	switch {
	case errors.Is(err, provider.ErrNoSeats):
		return domain.Wrap(domain.KindFlightUnavailable, "no seats available on the selected flights", err)
	case errors.Is(err, provider.ErrInvalidInput), errors.Is(err, provider.ErrNotFound):
		return domain.Wrap(domain.KindInvalidRequest, "the flight provider rejected the booking details", err)
	default:
		return domain.Wrap(domain.KindUpstream, "flight provider is unavailable", err)
	}
}

// lookupErr maps a missing row to NotFound and anything else to Internal.
func lookupErr(err error, notFound string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewError(domain.KindNotFound, notFound)
	}
	return internalErr(err, "failed to load "+strings.TrimSuffix(notFound, " not found"))
}

// internalErr passes domain errors through and wraps everything else as Internal.
func internalErr(err error, message string) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.Wrap(domain.KindInternal, message, err)
}

var _ BookingUseCase = (*BookingService)(nil)
