package booking

import (
	"context"
	"fmt"
	"sort"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/repository"
	"github.com/sirupsen/logrus"
)

type ReduceCapacityResult struct {
	Room     *domain.Room
	Canceled []domain.Booking
}

// ReduceCapacity sets the room's capacity. When it shrinks below the number
// of CONFIRMED bookings, the excess is canceled starting with the latest
// check-in. PENDING bookings are left alone, and the new capacity is stored
// even if that leaves it below the PENDING count.
func (s *BookingService) ReduceCapacity(ctx context.Context, ownerID, roomID int64, capacity int) (*ReduceCapacityResult, error) {
	if roomID <= 0 {
		return nil, domain.NewError(domain.KindInvalidRequest, "roomId must be a positive id")
	}
	if capacity < 0 {
		return nil, domain.NewError(domain.KindInvalidRequest, "capacity must not be negative")
	}

	var (
		result *ReduceCapacityResult
		notes  outbox
	)
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		notes.reset()

		room, err := repos.Rooms.GetForUpdate(ctx, roomID)
		if err != nil {
			return lookupErr(err, "room not found")
		}
		hotel, err := repos.Hotels.GetByID(ctx, room.HotelID)
		if err != nil {
			return lookupErr(err, "hotel not found")
		}
		if hotel.OwnerID != ownerID {
			return domain.NewError(domain.KindForbidden, "only the hotel owner can change room capacity")
		}

		canceled := make([]domain.Booking, 0)
		if capacity < room.AvailableRooms {
			confirmed, err := repos.Bookings.ListByRoomAndStatus(ctx, room.ID, domain.BookingStatusConfirmed)
			if err != nil {
				return internalErr(err, "failed to load confirmed bookings")
			}
			for _, b := range reductionVictims(confirmed, capacity) {
				updated, err := repos.Bookings.UpdateStatus(ctx, b.ID, domain.BookingStatusCanceled)
				if err != nil {
					return internalErr(err, "failed to cancel booking")
				}
				canceled = append(canceled, *updated)
				notes.add(updated.UserID, fmt.Sprintf("Your booking #%d for %s at %s was canceled because the hotel reduced room availability.", updated.ID, room.Name, hotel.Name))
			}
		}

		updatedRoom, err := repos.Rooms.UpdateCapacity(ctx, room.ID, capacity)
		if err != nil {
			return internalErr(err, "failed to update room capacity")
		}
		result = &ReduceCapacityResult{Room: updatedRoom, Canceled: canceled}
		return nil
	})
	if err != nil {
		return nil, internalErr(err, "failed to update room capacity")
	}

	s.flush(ctx, notes)
	s.log.WithFields(logrus.Fields{"room_id": roomID, "capacity": capacity, "canceled": len(result.Canceled)}).Info("room capacity updated")
	return result, nil
}

// reductionVictims picks the CONFIRMED bookings to cancel so that at most
// capacity remain. Latest check-in goes first, ties by higher id, undated last.
func reductionVictims(confirmed []domain.Booking, capacity int) []domain.Booking {
	excess := len(confirmed) - capacity
	if excess <= 0 {
		return nil
	}

	sorted := make([]domain.Booking, len(confirmed))
	copy(sorted, confirmed)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch {
		case a.CheckIn == nil && b.CheckIn == nil:
			return a.ID > b.ID
		case a.CheckIn == nil:
			return false
		case b.CheckIn == nil:
			return true
		case !a.CheckIn.Equal(*b.CheckIn):
			return a.CheckIn.After(*b.CheckIn)
		default:
			return a.ID > b.ID
		}
	})
	return sorted[:excess]
}
