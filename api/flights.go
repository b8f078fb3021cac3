package api

import (
	"net/http"

	"github.com/Domenick1991/travelbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type FlightHandler struct {
	service flights.FlightUseCase
	log     *logrus.Logger
}

func NewFlightHandler(service flights.FlightUseCase, log *logrus.Logger) *FlightHandler {
	return &FlightHandler{service: service, log: log}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/flights", h.search)
	router.GET("/flights/:id", h.get)
}

// RegisterPrivate mounts the routes that need an identity.
func (h *FlightHandler) RegisterPrivate(router *gin.RouterGroup) {
	router.GET("/bookings/verify-flight", h.verify)
}

func searchInput(c *gin.Context) flights.SearchInput {
	return flights.SearchInput{
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
		Date:        c.Query("date"),
	}
}

func (h *FlightHandler) search(c *gin.Context) {
	groups, err := h.service.Search(c.Request.Context(), searchInput(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": groups})
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetFlight(c.Request.Context(), c.Param("id"), searchInput(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) verify(c *gin.Context) {
	lastName, reference := c.Query("lastName"), c.Query("bookingReference")
	if lastName == "" || reference == "" {
		badRequest(c, "lastName and bookingReference are required")
		return
	}

	booking, err := h.service.VerifyBooking(c.Request.Context(), lastName, reference)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
