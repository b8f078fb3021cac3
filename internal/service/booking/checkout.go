package booking

import (
	"context"
	"fmt"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/payment"
	"github.com/Domenick1991/travelbooking/internal/repository"
	"github.com/sirupsen/logrus"
)

type CheckoutInput struct {
	BookingID int64
	Type      domain.BookingType
	Payment   payment.Proxy
}

// CheckoutResult holds the confirmed booking of the requested type.
type CheckoutResult struct {
	Type   domain.BookingType
	Hotel  *domain.Booking
	Flight *domain.FlightBooking
}

func (r *CheckoutResult) Status() domain.BookingStatus {
	if r.Hotel != nil {
		return r.Hotel.Status
	}
	if r.Flight != nil {
		return r.Flight.Status
	}
	return ""
}

// Checkout validates the payment card and moves a PENDING booking to CONFIRMED.
func (s *BookingService) Checkout(ctx context.Context, userID int64, input CheckoutInput) (*CheckoutResult, error) {
	if input.BookingID <= 0 {
		return nil, domain.NewError(domain.KindInvalidRequest, "booking id must be a positive id")
	}
	if !input.Type.Valid() {
		return nil, domain.NewError(domain.KindInvalidRequest, "booking type must be hotel or flight")
	}
	if err := input.Payment.Validate(s.now()); err != nil {
		return nil, err
	}

	result := &CheckoutResult{Type: input.Type}
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		switch input.Type {
		case domain.BookingTypeHotel:
			b, err := repos.Bookings.GetForUpdate(ctx, input.BookingID)
			if err != nil {
				return lookupErr(err, "booking not found")
			}
			if b.UserID != userID {
				return domain.NewError(domain.KindForbidden, "booking belongs to another user")
			}
			if err := domain.CheckConfirm(b.Status); err != nil {
				return err
			}
			updated, err := repos.Bookings.UpdateStatus(ctx, b.ID, domain.BookingStatusConfirmed)
			if err != nil {
				return internalErr(err, "failed to confirm booking")
			}
			result.Hotel = updated
		case domain.BookingTypeFlight:
			fb, err := repos.FlightBookings.GetForUpdate(ctx, input.BookingID)
			if err != nil {
				return lookupErr(err, "flight booking not found")
			}
			if fb.UserID != userID {
				return domain.NewError(domain.KindForbidden, "flight booking belongs to another user")
			}
			if err := domain.CheckConfirm(fb.Status); err != nil {
				return err
			}
			updated, err := repos.FlightBookings.UpdateStatus(ctx, fb.ID, domain.BookingStatusConfirmed)
			if err != nil {
				return internalErr(err, "failed to confirm flight booking")
			}
			result.Flight = updated
		}
		return nil
	})
	if err != nil {
		return nil, internalErr(err, "failed to confirm booking")
	}

	s.notify(ctx, userID, fmt.Sprintf("Your %s booking #%d is confirmed.", input.Type, input.BookingID))
	s.log.WithFields(logrus.Fields{"booking_id": input.BookingID, "type": input.Type, "user_id": userID}).Info("booking confirmed")
	return result, nil
}
