package api

import (
	"net/http"

	"github.com/Domenick1991/travelbooking/config"
	"github.com/Domenick1991/travelbooking/internal/notification"
	"github.com/Domenick1991/travelbooking/internal/service/booking"
	"github.com/Domenick1991/travelbooking/internal/service/flights"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Services struct {
	Bookings      booking.BookingUseCase
	Flights       flights.FlightUseCase
	Notifications notification.NotificationUseCase
	Auth          Authenticator
}

// NewRouter builds the /api tree. Flight search and hotel availability are public.
func NewRouter(cfg config.HTTPConfig, svc Services, log *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), AccessLog(log))

	corsCfg := cors.DefaultConfig()
	corsCfg.AddAllowHeaders("Authorization", requestIDHeader)
	corsCfg.AddExposeHeaders(requestIDHeader)
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	bookingHandler := NewBookingHandler(svc.Bookings, log)
	flightHandler := NewFlightHandler(svc.Flights, log)

	public := router.Group("/api")
	flightHandler.Register(public)
	bookingHandler.RegisterPublic(public)

	private := router.Group("/api", RequireIdentity(svc.Auth))
	bookingHandler.Register(private)
	flightHandler.RegisterPrivate(private)
	NewNotificationHandler(svc.Notifications, log).Register(private)

	return router
}
