package booking

import (
	"context"
	"fmt"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/repository"
	"github.com/sirupsen/logrus"
)

type CancelMode string

const (
	CancelModeSingle CancelMode = "single"
	CancelModeBulk   CancelMode = "bulk"
	CancelModeAll    CancelMode = "all"
)

// CancelRequest is one of CancelOne, CancelMany or CancelAllActive.
type CancelRequest interface {
	Mode() CancelMode
	isCancelRequest()
}

// CancelOne targets a single booking. A missing id is NotFound.
type CancelOne struct {
	ID   int64
	Type domain.BookingType
}

// CancelMany targets several bookings. Missing or foreign ids are skipped.
type CancelMany struct {
	HotelIDs  []int64
	FlightIDs []int64
}

// CancelAllActive targets every non-canceled booking of the caller.
type CancelAllActive struct{}

func (CancelOne) Mode() CancelMode       { return CancelModeSingle }
func (CancelMany) Mode() CancelMode      { return CancelModeBulk }
func (CancelAllActive) Mode() CancelMode { return CancelModeAll }

func (CancelOne) isCancelRequest()       {}
func (CancelMany) isCancelRequest()      {}
func (CancelAllActive) isCancelRequest() {}

type CancelItem struct {
	ID      int64                `json:"id"`
	Type    domain.BookingType   `json:"type"`
	Status  domain.BookingStatus `json:"status"`
	Changed bool                 `json:"changed"`
	Message string               `json:"message"`
}

type CancelResult struct {
	CanceledCount int          `json:"canceledCount"`
	Results       []CancelItem `json:"results"`
}

const (
	msgCanceled        = "booking canceled"
	msgAlreadyCanceled = "booking was already canceled"
	msgCanceledByOwner = "booking canceled by hotel owner"
)

func (s *BookingService) Cancel(ctx context.Context, userID int64, req CancelRequest) (*CancelResult, error) {
	if err := validateCancel(req); err != nil {
		return nil, err
	}

	var result *CancelResult
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		switch r := req.(type) {
		case CancelOne:
			result, err = cancelOne(ctx, repos, userID, r)
		case CancelMany:
			result, err = cancelMany(ctx, repos, userID, r)
		case CancelAllActive:
			result, err = cancelAll(ctx, repos, userID)
		}
		return err
	})
	if err != nil {
		return nil, internalErr(err, "failed to cancel bookings")
	}

	if result.CanceledCount > 0 {
		s.notify(ctx, userID, fmt.Sprintf("%d booking(s) canceled.", result.CanceledCount))
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "mode": req.Mode(), "canceled": result.CanceledCount}).Info("cancellation processed")
	return result, nil
}

func validateCancel(req CancelRequest) error {
	switch r := req.(type) {
	case CancelOne:
		if r.ID <= 0 {
			return domain.NewError(domain.KindInvalidRequest, "booking id must be a positive id")
		}
		if !r.Type.Valid() {
			return domain.NewError(domain.KindInvalidRequest, "booking type must be hotel or flight")
		}
	case CancelMany:
		if len(r.HotelIDs) == 0 && len(r.FlightIDs) == 0 {
			return domain.NewError(domain.KindInvalidRequest, "no booking ids given")
		}
	case CancelAllActive:
	default:
		return domain.NewError(domain.KindInvalidRequest, "unknown cancellation mode")
	}
	return nil
}

func cancelOne(ctx context.Context, repos repository.Repositories, userID int64, r CancelOne) (*CancelResult, error) {
	var item CancelItem
	switch r.Type {
	case domain.BookingTypeHotel:
		b, err := repos.Bookings.GetForUpdate(ctx, r.ID)
		if err != nil {
			return nil, lookupErr(err, "booking not found")
		}
		if b.UserID != userID {
			return nil, domain.NewError(domain.KindForbidden, "booking belongs to another user")
		}
		if item, err = cancelHotel(ctx, repos, *b, msgCanceled); err != nil {
			return nil, err
		}
	case domain.BookingTypeFlight:
		fb, err := repos.FlightBookings.GetForUpdate(ctx, r.ID)
		if err != nil {
			return nil, lookupErr(err, "flight booking not found")
		}
		if fb.UserID != userID {
			return nil, domain.NewError(domain.KindForbidden, "flight booking belongs to another user")
		}
		if item, err = cancelFlight(ctx, repos, *fb); err != nil {
			return nil, err
		}
	}
	return summarize([]CancelItem{item}), nil
}

func cancelMany(ctx context.Context, repos repository.Repositories, userID int64, r CancelMany) (*CancelResult, error) {
	var hotels []domain.Booking
	if len(r.HotelIDs) > 0 {
		list, err := repos.Bookings.ListForUpdate(ctx, r.HotelIDs)
		if err != nil {
			return nil, internalErr(err, "failed to load bookings")
		}
		hotels = ownedBookings(list, userID)
	}

	var flights []domain.FlightBooking
	if len(r.FlightIDs) > 0 {
		list, err := repos.FlightBookings.ListForUpdate(ctx, r.FlightIDs)
		if err != nil {
			return nil, internalErr(err, "failed to load flight bookings")
		}
		flights = ownedFlightBookings(list, userID)
	}
	return cancelSet(ctx, repos, hotels, flights)
}

func cancelAll(ctx context.Context, repos repository.Repositories, userID int64) (*CancelResult, error) {
	hotels, err := repos.Bookings.ListActiveByUserForUpdate(ctx, userID)
	if err != nil {
		return nil, internalErr(err, "failed to load bookings")
	}
	flights, err := repos.FlightBookings.ListActiveByUserForUpdate(ctx, userID)
	if err != nil {
		return nil, internalErr(err, "failed to load flight bookings")
	}
	return cancelSet(ctx, repos, hotels, flights)
}

func cancelSet(ctx context.Context, repos repository.Repositories, hotels []domain.Booking, flights []domain.FlightBooking) (*CancelResult, error) {
	items := make([]CancelItem, 0, len(hotels)+len(flights))
	for _, b := range hotels {
		item, err := cancelHotel(ctx, repos, b, msgCanceled)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	for _, fb := range flights {
		item, err := cancelFlight(ctx, repos, fb)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return summarize(items), nil
}

func cancelHotel(ctx context.Context, repos repository.Repositories, b domain.Booking, message string) (CancelItem, error) {
	item := CancelItem{ID: b.ID, Type: domain.BookingTypeHotel, Status: b.Status, Message: msgAlreadyCanceled}
	need, err := domain.CheckCancel(b.Status)
	if err != nil || !need {
		return item, err
	}
	updated, err := repos.Bookings.UpdateStatus(ctx, b.ID, domain.BookingStatusCanceled)
	if err != nil {
		return item, internalErr(err, "failed to cancel booking")
	}
	item.Status, item.Changed, item.Message = updated.Status, true, message
	return item, nil
}

// cancelFlight updates the local record only; the provider has no cancel call.
func cancelFlight(ctx context.Context, repos repository.Repositories, fb domain.FlightBooking) (CancelItem, error) {
	item := CancelItem{ID: fb.ID, Type: domain.BookingTypeFlight, Status: fb.Status, Message: msgAlreadyCanceled}
	need, err := domain.CheckCancel(fb.Status)
	if err != nil || !need {
		return item, err
	}
	updated, err := repos.FlightBookings.UpdateStatus(ctx, fb.ID, domain.BookingStatusCanceled)
	if err != nil {
		return item, internalErr(err, "failed to cancel flight booking")
	}
	item.Status, item.Changed, item.Message = updated.Status, true, msgCanceled
	return item, nil
}

func summarize(items []CancelItem) *CancelResult {
	result := &CancelResult{Results: items}
	for _, it := range items {
		if it.Changed {
			result.CanceledCount++
		}
	}
	return result
}

func ownedBookings(list []domain.Booking, userID int64) []domain.Booking {
	owned := make([]domain.Booking, 0, len(list))
	for _, b := range list {
		if b.UserID == userID {
			owned = append(owned, b)
		}
	}
	return owned
}

func ownedFlightBookings(list []domain.FlightBooking, userID int64) []domain.FlightBooking {
	owned := make([]domain.FlightBooking, 0, len(list))
	for _, fb := range list {
		if fb.UserID == userID {
			owned = append(owned, fb)
		}
	}
	return owned
}

// CancelAsOwner cancels a guest's booking on behalf of the hotel owner and
// notifies the guest.
func (s *BookingService) CancelAsOwner(ctx context.Context, ownerID, bookingID int64) (*CancelItem, error) {
	if bookingID <= 0 {
		return nil, domain.NewError(domain.KindInvalidRequest, "booking id must be a positive id")
	}

	var (
		item  CancelItem
		notes outbox
	)
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		notes.reset()

		b, err := repos.Bookings.GetForUpdate(ctx, bookingID)
		if err != nil {
			return lookupErr(err, "booking not found")
		}
		hotel, err := repos.Hotels.GetByID(ctx, b.HotelID)
		if err != nil {
			return lookupErr(err, "hotel not found")
		}
		if hotel.OwnerID != ownerID {
			return domain.NewError(domain.KindForbidden, "booking is not on one of your hotels")
		}

		if item, err = cancelHotel(ctx, repos, *b, msgCanceledByOwner); err != nil {
			return err
		}
		if item.Changed {
			notes.add(b.UserID, fmt.Sprintf("Your booking #%d at %s was canceled by the hotel.", b.ID, hotel.Name))
		}
		return nil
	})
	if err != nil {
		return nil, internalErr(err, "failed to cancel booking")
	}

	s.flush(ctx, notes)
	return &item, nil
}
