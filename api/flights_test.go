package api

import (
	"net/http"
	"testing"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFlightHandler_search(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, nil)
	c, w := newTestContext(http.MethodGet, "/api/flights?origin=JFK&destination=LAX&date=2024-12-01", nil)

	input := flights.SearchInput{Origin: "JFK", Destination: "LAX", Date: "2024-12-01"}
	mockService.On("Search", c.Request.Context(), input).Return([]domain.FlightGroup{
		{Legs: 1, Flights: []domain.Flight{{ID: "F1", FlightNumber: "AA100"}}},
	}, nil)

	handler.search(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Results []domain.FlightGroup `json:"results"`
	}
	decodeBody(t, w, &resp)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "AA100", resp.Results[0].Flights[0].FlightNumber)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_searchUpstreamError(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, nil)
	c, w := newTestContext(http.MethodGet, "/api/flights?origin=JFK&destination=LAX&date=2024-12-01", nil)

	mockService.On("Search", mock.Anything, mock.Anything).Return(nil, domain.NewError(domain.KindUpstream, "flight provider is unavailable"))

	handler.search(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestFlightHandler_get(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, nil)
	c, w := newTestContext(http.MethodGet, "/api/flights/F1?origin=JFK&destination=LAX&date=2024-12-01", nil)
	c.Params = gin.Params{{Key: "id", Value: "F1"}}

	mockService.On("GetFlight", mock.Anything, "F1", flights.SearchInput{Origin: "JFK", Destination: "LAX", Date: "2024-12-01"}).
		Return(&domain.Flight{ID: "F1"}, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_getNotFound(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, nil)
	c, w := newTestContext(http.MethodGet, "/api/flights/F9", nil)
	c.Params = gin.Params{{Key: "id", Value: "F9"}}

	mockService.On("GetFlight", mock.Anything, "F9", mock.Anything).Return(nil, domain.NewError(domain.KindNotFound, "flight not found"))

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFlightHandler_verify(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, nil)
	c, w := newTestContext(http.MethodGet, "/api/bookings/verify-flight?lastName=Doe&bookingReference=ABC123", nil)

	mockService.On("VerifyBooking", mock.Anything, "Doe", "ABC123").Return(&domain.ProviderBooking{BookingReference: "ABC123", LastName: "Doe"}, nil)

	handler.verify(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp domain.ProviderBooking
	decodeBody(t, w, &resp)
	assert.Equal(t, "ABC123", resp.BookingReference)
}

func TestFlightHandler_verifyMissingParams(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, nil)
	c, w := newTestContext(http.MethodGet, "/api/bookings/verify-flight?lastName=Doe", nil)

	handler.verify(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "VerifyBooking", mock.Anything, mock.Anything, mock.Anything)
}
