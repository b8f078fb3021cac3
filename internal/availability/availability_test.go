package availability

import (
	"testing"
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func stay(id int64, status domain.BookingStatus, from, to string) domain.Booking {
	in, out := day(from), day(to)
	return domain.Booking{ID: id, RoomID: 1, Status: status, CheckIn: &in, CheckOut: &out}
}

func TestOverlaps(t *testing.T) {
	testCases := []struct {
		name         string
		aStart, aEnd string
		bStart, bEnd string
		want         bool
	}{
		{name: "identical", aStart: "2024-12-01", aEnd: "2024-12-05", bStart: "2024-12-01", bEnd: "2024-12-05", want: true},
		{name: "contained", aStart: "2024-12-01", aEnd: "2024-12-05", bStart: "2024-12-03", bEnd: "2024-12-04", want: true},
		{name: "partial", aStart: "2024-12-01", aEnd: "2024-12-05", bStart: "2024-12-04", bEnd: "2024-12-08", want: true},
		{name: "back to back", aStart: "2024-12-01", aEnd: "2024-12-05", bStart: "2024-12-05", bEnd: "2024-12-08", want: false},
		{name: "disjoint", aStart: "2024-12-01", aEnd: "2024-12-05", bStart: "2024-12-06", bEnd: "2024-12-08", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a1, a2, b1, b2 := day(tc.aStart), day(tc.aEnd), day(tc.bStart), day(tc.bEnd)
			assert.Equal(t, tc.want, Overlaps(a1, a2, b1, b2))
			assert.Equal(t, Overlaps(a1, a2, b1, b2), Overlaps(b1, b2, a1, a2), "overlap must be symmetric")
		})
	}
}

func TestOverlapsSymmetryGrid(t *testing.T) {
	base := day("2024-01-01")
	for a := 0; a < 6; a++ {
		for alen := 1; alen < 4; alen++ {
			for b := 0; b < 6; b++ {
				for blen := 1; blen < 4; blen++ {
					a1 := base.AddDate(0, 0, a)
					a2 := a1.AddDate(0, 0, alen)
					b1 := base.AddDate(0, 0, b)
					b2 := b1.AddDate(0, 0, blen)
					assert.Equal(t, Overlaps(a1, a2, b1, b2), Overlaps(b1, b2, a1, a2))
				}
			}
		}
	}
}

func TestRemaining(t *testing.T) {
	bookings := []domain.Booking{
		stay(1, domain.BookingStatusConfirmed, "2024-12-01", "2024-12-05"),
		stay(2, domain.BookingStatusPending, "2024-12-01", "2024-12-05"),
		stay(3, domain.BookingStatusCanceled, "2024-12-01", "2024-12-05"),
		{ID: 4, RoomID: 1, Status: domain.BookingStatusConfirmed},
	}

	overlapping := &DateRange{Start: day("2024-12-03"), End: day("2024-12-04")}
	free := &DateRange{Start: day("2024-12-06"), End: day("2024-12-08")}

	assert.Equal(t, 0, Remaining(2, bookings, overlapping))
	assert.Equal(t, 2, Remaining(2, bookings, free))
	assert.Equal(t, -1, Remaining(2, bookings, nil), "undated and dated non-canceled bookings all count without a window")
	assert.Equal(t, 0, RemainingForDisplay(2, bookings, nil))
}

func TestDateRangeValid(t *testing.T) {
	assert.True(t, DateRange{Start: day("2024-12-01"), End: day("2024-12-02")}.Valid())
	assert.False(t, DateRange{Start: day("2024-12-02"), End: day("2024-12-02")}.Valid())
	assert.False(t, DateRange{Start: day("2024-12-03"), End: day("2024-12-02")}.Valid())
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("2024-12-01", "2024-12-05")
	assert.NoError(t, err)
	assert.Equal(t, day("2024-12-01"), r.Start)
	assert.Equal(t, day("2024-12-05"), r.End)

	r, err = ParseRange("", "")
	assert.NoError(t, err)
	assert.Nil(t, r)

	r, err = ParseRange("2024-12-01T00:00:00Z", "2024-12-02T00:00:00+00:00")
	assert.NoError(t, err)
	assert.True(t, r.Valid())

	r, err = ParseRange("2024-12-01T15:30:00Z", "2024-12-04T09:00:00+02:00")
	assert.NoError(t, err)
	assert.Equal(t, day("2024-12-01"), r.Start)
	assert.Equal(t, day("2024-12-04"), r.End)

	for _, tc := range [][2]string{
		{"2024-12-06T10:00:00Z", "2024-12-06T12:00:00Z"},
		{"2024-12-01", ""},
		{"", "2024-12-05"},
		{"2024-12-05", "2024-12-05"},
		{"2024-12-05", "2024-12-01"},
		{"2024-02-30", "2024-03-02"},
		{"tomorrow", "2024-12-05"},
	} {
		_, err := ParseRange(tc[0], tc[1])
		assert.ErrorIs(t, err, domain.ErrInvalidRequest, "%v", tc)
	}
}
