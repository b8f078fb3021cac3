package flights

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/provider"
	"github.com/sirupsen/logrus"
)

type FlightUseCase interface {
	Search(ctx context.Context, input SearchInput) ([]domain.FlightGroup, error)
	GetFlight(ctx context.Context, id string, input SearchInput) (*domain.Flight, error)
	VerifyBooking(ctx context.Context, lastName, reference string) (*domain.ProviderBooking, error)
}

// Provider is the flight provider surface used for search and lookup.
type Provider interface {
	SearchFlights(ctx context.Context, req provider.SearchRequest) ([]domain.FlightGroup, error)
	RetrieveBooking(ctx context.Context, lastName, reference string) (*domain.ProviderBooking, error)
}

type SearchCache interface {
	GetSearch(ctx context.Context, origin, destination, date string) ([]domain.FlightGroup, error)
	SetSearch(ctx context.Context, origin, destination, date string, groups []domain.FlightGroup) error
}

type SearchInput struct {
	Origin      string
	Destination string
	Date        string
}

type FlightService struct {
	provider Provider
	cache    SearchCache
	log      *logrus.Logger
}

func NewFlightService(p Provider, cache SearchCache, log *logrus.Logger) *FlightService {
	return &FlightService{provider: p, cache: cache, log: log}
}

// Search returns itineraries for the route and day, serving repeats from the cache.
func (s *FlightService) Search(ctx context.Context, input SearchInput) ([]domain.FlightGroup, error) {
	input, err := normalize(input)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.GetSearch(ctx, input.Origin, input.Destination, input.Date)
		if err != nil {
			s.log.WithError(err).Warn("flight search cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	groups, err := s.provider.SearchFlights(ctx, provider.SearchRequest{Origin: input.Origin, Destination: input.Destination, Date: input.Date})
	if err != nil {
		return nil, searchErr(err)
	}
	for i := range groups {
		groups[i] = groups[i].WithLayover()
	}

	if s.cache != nil {
		if err := s.cache.SetSearch(ctx, input.Origin, input.Destination, input.Date, groups); err != nil {
			s.log.WithError(err).Warn("flight search cache write failed")
		}
	}
	return groups, nil
}

// GetFlight finds one segment among the search results for the route and day.
func (s *FlightService) GetFlight(ctx context.Context, id string, input SearchInput) (*domain.Flight, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewError(domain.KindInvalidRequest, "valid flight id required")
	}

	groups, err := s.Search(ctx, input)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		for _, f := range g.Flights {
			if f.ID == id {
				flight := f
				return &flight, nil
			}
		}
	}
	return nil, domain.NewError(domain.KindNotFound, "flight not found")
}

func (s *FlightService) VerifyBooking(ctx context.Context, lastName, reference string) (*domain.ProviderBooking, error) {
	lastName, reference = strings.TrimSpace(lastName), strings.TrimSpace(reference)
	if lastName == "" || reference == "" {
		return nil, domain.NewError(domain.KindInvalidRequest, "lastName and bookingReference are required")
	}

	booking, err := s.provider.RetrieveBooking(ctx, lastName, reference)
	if err != nil {
		switch {
		case errors.Is(err, provider.ErrNotFound):
			return nil, domain.NewError(domain.KindNotFound, "booking not found")
		case errors.Is(err, provider.ErrInvalidInput), errors.Is(err, provider.ErrNoSeats):
			return nil, domain.Wrap(domain.KindInvalidRequest, "the flight provider rejected the lookup", err)
		default:
			return nil, domain.Wrap(domain.KindUpstream, "flight provider is unavailable", err)
		}
	}
	return booking, nil
}

func normalize(in SearchInput) (SearchInput, error) {
	in.Origin = strings.TrimSpace(in.Origin)
	in.Destination = strings.TrimSpace(in.Destination)
	in.Date = strings.TrimSpace(in.Date)

	if in.Origin == "" || in.Destination == "" || in.Date == "" {
		return in, domain.NewError(domain.KindInvalidRequest, "origin, destination, and date are required")
	}
	if isNumeric(in.Origin) {
		return in, domain.NewError(domain.KindInvalidRequest, "invalid origin: must be a valid city or airport name")
	}
	if isNumeric(in.Destination) {
		return in, domain.NewError(domain.KindInvalidRequest, "invalid destination: must be a valid city or airport name")
	}
	if _, err := time.Parse(time.DateOnly, in.Date); err != nil {
		return in, domain.NewError(domain.KindInvalidRequest, "invalid date format, expected YYYY-MM-DD")
	}
	return in, nil
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func searchErr(err error) error {
	if errors.Is(err, provider.ErrInvalidInput) || errors.Is(err, provider.ErrNotFound) || errors.Is(err, provider.ErrNoSeats) {
		return domain.Wrap(domain.KindInvalidRequest, "unable to retrieve flight data, origin and destination must be valid city names or airport codes", err)
	}
	return domain.Wrap(domain.KindUpstream, "error retrieving flights", err)
}

var _ FlightUseCase = (*FlightService)(nil)
