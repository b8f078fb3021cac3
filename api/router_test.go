package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/travelbooking/config"
	"github.com/Domenick1991/travelbooking/internal/auth"
	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type routerFixture struct {
	router   *gin.Engine
	bookings *MockBookingUseCase
	auth     *MockAuthenticator
}

func newRouterFixture() routerFixture {
	gin.SetMode(gin.TestMode)
	log, _ := test.NewNullLogger()

	f := routerFixture{bookings: &MockBookingUseCase{}, auth: &MockAuthenticator{}}
	f.router = NewRouter(config.HTTPConfig{AllowedOrigins: []string{"http://localhost:3000"}}, Services{
		Bookings:      f.bookings,
		Flights:       &MockFlightUseCase{},
		Notifications: &MockNotificationUseCase{},
		Auth:          f.auth,
	}, log)
	return f
}

func TestRouter_healthz(t *testing.T) {
	f := newRouterFixture()
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestRouter_keepsRequestID(t *testing.T) {
	f := newRouterFixture()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "req-1")

	f.router.ServeHTTP(w, req)

	assert.Equal(t, "req-1", w.Header().Get(requestIDHeader))
}

func TestRouter_requiresIdentity(t *testing.T) {
	f := newRouterFixture()
	f.auth.On("Authenticate", "").Return(auth.Identity{}, errors.New("missing token"))
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	f.bookings.AssertNotCalled(t, "ListUserBookings", mock.Anything, mock.Anything)
}

func TestRouter_passesIdentity(t *testing.T) {
	f := newRouterFixture()
	f.auth.On("Authenticate", "Bearer good").Return(auth.Identity{UserID: 42}, nil)
	f.bookings.On("ListUserBookings", mock.Anything, int64(42)).Return(&booking.UserBookings{}, nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer good")

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	f.bookings.AssertExpectations(t)
}

func TestRouter_availabilityIsPublic(t *testing.T) {
	f := newRouterFixture()
	f.bookings.On("HotelAvailability", mock.Anything, int64(1), "2024-12-01", "2024-12-05").Return([]booking.RoomAvailability{}, nil)
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/hotels/1/availability?checkIn=2024-12-01&checkOut=2024-12-05", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	f.auth.AssertNotCalled(t, "Authenticate", mock.Anything)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		kind domain.ErrorKind
		want int
	}{
		{domain.KindUnauthorized, http.StatusUnauthorized},
		{domain.KindForbidden, http.StatusForbidden},
		{domain.KindNotFound, http.StatusNotFound},
		{domain.KindInvalidRequest, http.StatusBadRequest},
		{domain.KindRoomUnavailable, http.StatusConflict},
		{domain.KindFlightUnavailable, http.StatusConflict},
		{domain.KindAlreadyConfirmed, http.StatusConflict},
		{domain.KindInvalidState, http.StatusConflict},
		{domain.KindUpstream, http.StatusBadGateway},
		{domain.KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, statusOf(tt.kind))
		})
	}
}

func TestWriteError_hidesCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, hook := test.NewNullLogger()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	writeError(c, log, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
	if assert.NotNil(t, hook.LastEntry()) {
		assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	}
}
