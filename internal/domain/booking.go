package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCanceled  BookingStatus = "CANCELED"
)

type BookingType string

const (
	BookingTypeHotel  BookingType = "hotel"
	BookingTypeFlight BookingType = "flight"
)

func (t BookingType) Valid() bool {
	return t == BookingTypeHotel || t == BookingTypeFlight
}

// Booking reserves one unit of a room type for an optional date range.
type Booking struct {
	ID        int64
	UserID    int64
	HotelID   int64
	RoomID    int64
	CheckIn   *time.Time
	CheckOut  *time.Time
	Status    BookingStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasDates reports whether both ends of the stay are known.
func (b Booking) HasDates() bool {
	return b.CheckIn != nil && b.CheckOut != nil
}

type FlightBooking struct {
	ID                int64
	UserID            int64
	ProviderReference string
	FlightIDs         []string
	FirstName         string
	LastName          string
	Email             string
	PassportNumber    string
	Status            BookingStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// BookingDetail is a booking joined with the names shown to hotel owners.
type BookingDetail struct {
	Booking
	RoomName  string
	HotelName string
}
