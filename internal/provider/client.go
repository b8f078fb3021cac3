package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Domenick1991/travelbooking/config"
	"github.com/Domenick1991/travelbooking/internal/domain"
)

var (
	ErrNoSeats      = errors.New("provider: no seats available")
	ErrInvalidInput = errors.New("provider: invalid input")
	ErrNotFound     = errors.New("provider: not found")
	ErrUpstream     = errors.New("provider: upstream failure")
)

const apiKeyHeader = "x-api-key"

type BookFlightsRequest struct {
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email"`
	PassportNumber string   `json:"passportNumber"`
	FlightIDs      []string `json:"flightIds"`
}

type BookFlightsResponse struct {
	BookingReference string `json:"bookingReference"`
}

type SearchRequest struct {
	Origin      string
	Destination string
	Date        string
}

type searchResponse struct {
	Results []domain.FlightGroup `json:"results"`
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(cfg config.ProviderConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout()},
	}
}

func (c *Client) BookFlights(ctx context.Context, req BookFlightsRequest) (*BookFlightsResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal booking request: %w", err)
	}

	var resp BookFlightsResponse
	if err := c.do(ctx, http.MethodPost, "/api/bookings", nil, body, &resp); err != nil {
		return nil, fmt.Errorf("book flights: %w", err)
	}
	if resp.BookingReference == "" {
		return nil, fmt.Errorf("book flights: empty booking reference: %w", ErrUpstream)
	}
	return &resp, nil
}

func (c *Client) RetrieveBooking(ctx context.Context, lastName, reference string) (*domain.ProviderBooking, error) {
	query := url.Values{"lastName": {lastName}, "bookingReference": {reference}}

	var resp domain.ProviderBooking
	if err := c.do(ctx, http.MethodGet, "/api/bookings/retrieve", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("retrieve booking: %w", err)
	}
	return &resp, nil
}

func (c *Client) SearchFlights(ctx context.Context, req SearchRequest) ([]domain.FlightGroup, error) {
	query := url.Values{"origin": {req.Origin}, "destination": {req.Destination}, "date": {req.Date}}

	var resp searchResponse
	if err := c.do(ctx, http.MethodGet, "/api/flights", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("search flights: %w", err)
	}
	return resp.Results, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return classify(res.StatusCode, payload)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	return nil
}

func classify(status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		// Our credentials were rejected, not the caller's input.
		return fmt.Errorf("%w: status %d: %s", ErrUpstream, status, msg)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case status == http.StatusConflict || (status < http.StatusInternalServerError && mentionsSeats(msg)):
		return fmt.Errorf("%w: %s", ErrNoSeats, msg)
	case status < http.StatusInternalServerError:
		return fmt.Errorf("%w: status %d: %s", ErrInvalidInput, status, msg)
	default:
		return fmt.Errorf("%w: status %d: %s", ErrUpstream, status, msg)
	}
}

func mentionsSeats(msg string) bool {
	lower := strings.ToLower(msg)
	for _, hint := range []string{"seat", "unavailable", "sold out"} {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}
