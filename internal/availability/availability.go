// Package availability computes how many units of a room type are free.
// Date ranges are half-open: [checkIn, checkOut).
package availability

import (
	"strings"
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
)

type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) Valid() bool {
	return r.Start.Before(r.End)
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share an instant.
// Back-to-back ranges (aEnd == bStart) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

func (r DateRange) Overlaps(o DateRange) bool {
	return Overlaps(r.Start, r.End, o.Start, o.End)
}

// Occupies reports whether b holds a unit of its room during window.
// A nil window means "at any time"; undated bookings only count then.
func Occupies(b domain.Booking, window *DateRange) bool {
	if b.Status == domain.BookingStatusCanceled {
		return false
	}
	if window == nil {
		return true
	}
	if !b.HasDates() {
		return false
	}
	return Overlaps(*b.CheckIn, *b.CheckOut, window.Start, window.End)
}

// Occupied counts the bookings that hold a unit during window.
func Occupied(bookings []domain.Booking, window *DateRange) int {
	n := 0
	for _, b := range bookings {
		if Occupies(b, window) {
			n++
		}
	}
	return n
}

// Remaining is capacity minus occupied units. It may be negative when the room
// is oversold, which callers use to detect the condition.
func Remaining(capacity int, bookings []domain.Booking, window *DateRange) int {
	return capacity - Occupied(bookings, window)
}

// RemainingForDisplay clamps Remaining at zero.
func RemainingForDisplay(capacity int, bookings []domain.Booking, window *DateRange) int {
	if n := Remaining(capacity, bookings, window); n > 0 {
		return n
	}
	return 0
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
// The result is always midnight UTC of the calendar day, matching DATE columns.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, domain.Errorf(domain.KindInvalidRequest, "invalid date %q", s)
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// ParseRange parses an optional stay. Both ends empty yields nil; one end alone,
// an unparsable date or checkOut <= checkIn is an InvalidRequest.
func ParseRange(checkIn, checkOut string) (*DateRange, error) {
	checkIn, checkOut = strings.TrimSpace(checkIn), strings.TrimSpace(checkOut)
	if checkIn == "" && checkOut == "" {
		return nil, nil
	}
	if checkIn == "" || checkOut == "" {
		return nil, domain.NewError(domain.KindInvalidRequest, "checkIn and checkOut must be given together")
	}

	start, err := ParseDate(checkIn)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(checkOut)
	if err != nil {
		return nil, err
	}

	r := DateRange{Start: start, End: end}
	if !r.Valid() {
		return nil, domain.NewError(domain.KindInvalidRequest, "checkOut must be after checkIn")
	}
	return &r, nil
}
