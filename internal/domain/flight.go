package domain

import "time"

// Flight is one segment as returned by the flight provider.
type Flight struct {
	ID             string    `json:"id"`
	FlightNumber   string    `json:"flightNumber"`
	Airline        Airline   `json:"airline"`
	Origin         Airport   `json:"origin"`
	Destination    Airport   `json:"destination"`
	DepartureTime  time.Time `json:"departureTime"`
	ArrivalTime    time.Time `json:"arrivalTime"`
	Duration       int       `json:"duration"`
	Price          float64   `json:"price"`
	Currency       string    `json:"currency"`
	AvailableSeats int       `json:"availableSeats"`
	Status         string    `json:"status"`
}

type Airline struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type Airport struct {
	Code string `json:"code"`
	Name string `json:"name"`
	City string `json:"city"`
}

// FlightGroup is an itinerary of one or more connecting segments.
// Layover is set in minutes for two-leg groups only.
type FlightGroup struct {
	Legs    int      `json:"legs"`
	Flights []Flight `json:"flights"`
	Layover *float64 `json:"layover,omitempty"`
}

// WithLayover fills Layover from the gap between the two legs.
func (g FlightGroup) WithLayover() FlightGroup {
	if g.Legs != 2 || len(g.Flights) != 2 {
		return g
	}
	minutes := g.Flights[1].DepartureTime.Sub(g.Flights[0].ArrivalTime).Minutes()
	g.Layover = &minutes
	return g
}

// ProviderBooking is the provider's view of a flight reservation.
type ProviderBooking struct {
	BookingReference string   `json:"bookingReference"`
	FirstName        string   `json:"firstName"`
	LastName         string   `json:"lastName"`
	Email            string   `json:"email"`
	PassportNumber   string   `json:"passportNumber"`
	Status           string   `json:"status"`
	Flights          []Flight `json:"flights"`
}
