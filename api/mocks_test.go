package api

import (
	"context"

	"github.com/Domenick1991/travelbooking/internal/auth"
	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/service/booking"
	"github.com/Domenick1991/travelbooking/internal/service/flights"
	"github.com/stretchr/testify/mock"
)

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, userID int64, input booking.CreateBookingInput) (*booking.CreateBookingResult, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.CreateBookingResult), args.Error(1)
}

func (m *MockBookingUseCase) ReduceCapacity(ctx context.Context, ownerID, roomID int64, capacity int) (*booking.ReduceCapacityResult, error) {
	args := m.Called(ctx, ownerID, roomID, capacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.ReduceCapacityResult), args.Error(1)
}

func (m *MockBookingUseCase) Cancel(ctx context.Context, userID int64, req booking.CancelRequest) (*booking.CancelResult, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.CancelResult), args.Error(1)
}

func (m *MockBookingUseCase) CancelAsOwner(ctx context.Context, ownerID, bookingID int64) (*booking.CancelItem, error) {
	args := m.Called(ctx, ownerID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.CancelItem), args.Error(1)
}

func (m *MockBookingUseCase) Checkout(ctx context.Context, userID int64, input booking.CheckoutInput) (*booking.CheckoutResult, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.CheckoutResult), args.Error(1)
}

func (m *MockBookingUseCase) HotelAvailability(ctx context.Context, hotelID int64, checkIn, checkOut string) ([]booking.RoomAvailability, error) {
	args := m.Called(ctx, hotelID, checkIn, checkOut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]booking.RoomAvailability), args.Error(1)
}

func (m *MockBookingUseCase) ListUserBookings(ctx context.Context, userID int64) (*booking.UserBookings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.UserBookings), args.Error(1)
}

func (m *MockBookingUseCase) ListOwnerBookings(ctx context.Context, ownerID int64, filter booking.OwnerBookingsFilter) ([]domain.BookingDetail, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingDetail), args.Error(1)
}

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) Search(ctx context.Context, input flights.SearchInput) ([]domain.FlightGroup, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FlightGroup), args.Error(1)
}

func (m *MockFlightUseCase) GetFlight(ctx context.Context, id string, input flights.SearchInput) (*domain.Flight, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) VerifyBooking(ctx context.Context, lastName, reference string) (*domain.ProviderBooking, error) {
	args := m.Called(ctx, lastName, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProviderBooking), args.Error(1)
}

type MockNotificationUseCase struct {
	mock.Mock
}

func (m *MockNotificationUseCase) Notify(ctx context.Context, userID int64, message string) error {
	return m.Called(ctx, userID, message).Error(0)
}

func (m *MockNotificationUseCase) List(ctx context.Context, userID int64) ([]domain.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationUseCase) MarkRead(ctx context.Context, userID, id int64) (*domain.Notification, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(header string) (auth.Identity, error) {
	args := m.Called(header)
	return args.Get(0).(auth.Identity), args.Error(1)
}
