package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/payment"
	"github.com/Domenick1991/travelbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type BookingHandler struct {
	service booking.BookingUseCase
	log     *logrus.Logger
}

func NewBookingHandler(service booking.BookingUseCase, log *logrus.Logger) *BookingHandler {
	return &BookingHandler{service: service, log: log}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/bookings", h.create)
	router.GET("/bookings", h.listMine)
	router.PATCH("/bookings/cancel", h.cancel)
	router.POST("/bookings/:id/owner-cancel", h.ownerCancel)
	router.GET("/bookings/owner", h.listOwner)
	router.POST("/checkout", h.checkout)
	router.PUT("/rooms/:id/capacity", h.reduceCapacity)
}

// RegisterPublic mounts the routes that need no identity.
func (h *BookingHandler) RegisterPublic(router *gin.RouterGroup) {
	router.GET("/hotels/:id/availability", h.availability)
}

type createBookingRequest struct {
	Hotel  *booking.HotelLegInput  `json:"hotel"`
	Flight *booking.FlightLegInput `json:"flight"`
}

type bookingResponse struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"userId"`
	HotelID   int64   `json:"hotelId"`
	RoomID    int64   `json:"roomId"`
	CheckIn   *string `json:"checkIn"`
	CheckOut  *string `json:"checkOut"`
	Status    string  `json:"status"`
	RoomName  string  `json:"roomName,omitempty"`
	HotelName string  `json:"hotelName,omitempty"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

type flightBookingResponse struct {
	ID               int64    `json:"id"`
	UserID           int64    `json:"userId"`
	BookingReference string   `json:"bookingReference"`
	FlightIDs        []string `json:"flightIds"`
	FirstName        string   `json:"firstName"`
	LastName         string   `json:"lastName"`
	Email            string   `json:"email"`
	Status           string   `json:"status"`
	CreatedAt        string   `json:"createdAt,omitempty"`
}

type legResponse[T any] struct {
	Booking *T             `json:"booking,omitempty"`
	Error   *errorResponse `json:"error,omitempty"`
}

type createBookingResponse struct {
	Hotel  *legResponse[bookingResponse]       `json:"hotel,omitempty"`
	Flight *legResponse[flightBookingResponse] `json:"flight,omitempty"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		HotelID:   b.HotelID,
		RoomID:    b.RoomID,
		CheckIn:   formatDate(b.CheckIn),
		CheckOut:  formatDate(b.CheckOut),
		Status:    string(b.Status),
		CreatedAt: formatTime(b.CreatedAt),
	}
}

func toFlightBookingResponse(fb domain.FlightBooking) flightBookingResponse {
	return flightBookingResponse{
		ID:               fb.ID,
		UserID:           fb.UserID,
		BookingReference: fb.ProviderReference,
		FlightIDs:        fb.FlightIDs,
		FirstName:        fb.FirstName,
		LastName:         fb.LastName,
		Email:            fb.Email,
		Status:           string(fb.Status),
		CreatedAt:        formatTime(fb.CreatedAt),
	}
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), identity(c).UserID, booking.CreateBookingInput{Hotel: req.Hotel, Flight: req.Flight})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if err := result.Err(); err != nil {
		writeError(c, h.log, err)
		return
	}

	var resp createBookingResponse
	if result.Hotel != nil {
		leg := &legResponse[bookingResponse]{}
		if result.Hotel.Err != nil {
			_, body := problem(result.Hotel.Err)
			leg.Error = &body
		} else {
			b := toBookingResponse(*result.Hotel.Booking)
			leg.Booking = &b
		}
		resp.Hotel = leg
	}
	if result.Flight != nil {
		leg := &legResponse[flightBookingResponse]{}
		if result.Flight.Err != nil {
			_, body := problem(result.Flight.Err)
			leg.Error = &body
		} else {
			fb := toFlightBookingResponse(*result.Flight.Booking)
			leg.Booking = &fb
		}
		resp.Flight = leg
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BookingHandler) listMine(c *gin.Context) {
	list, err := h.service.ListUserBookings(c.Request.Context(), identity(c).UserID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	hotels := make([]bookingResponse, 0, len(list.Hotels))
	for _, b := range list.Hotels {
		hotels = append(hotels, toBookingResponse(b))
	}
	flights := make([]flightBookingResponse, 0, len(list.Flights))
	for _, fb := range list.Flights {
		flights = append(flights, toFlightBookingResponse(fb))
	}
	c.JSON(http.StatusOK, gin.H{"hotelBookings": hotels, "flightBookings": flights})
}

type cancelRequest struct {
	Mode             booking.CancelMode `json:"mode"`
	ID               int64              `json:"id"`
	Type             domain.BookingType `json:"type"`
	HotelBookingIDs  []int64            `json:"hotelBookingIds"`
	FlightBookingIDs []int64            `json:"flightBookingIds"`
}

func (r cancelRequest) toDomain() (booking.CancelRequest, bool) {
	switch r.Mode {
	case booking.CancelModeSingle:
		return booking.CancelOne{ID: r.ID, Type: r.Type}, true
	case booking.CancelModeBulk:
		return booking.CancelMany{HotelIDs: r.HotelBookingIDs, FlightIDs: r.FlightBookingIDs}, true
	case booking.CancelModeAll:
		return booking.CancelAllActive{}, true
	default:
		return nil, false
	}
}

func (h *BookingHandler) cancel(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	cancelReq, ok := req.toDomain()
	if !ok {
		badRequest(c, "mode must be single, bulk or all")
		return
	}

	result, err := h.service.Cancel(c.Request.Context(), identity(c).UserID, cancelReq)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) ownerCancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.service.CancelAsOwner(c.Request.Context(), identity(c).UserID, id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *BookingHandler) listOwner(c *gin.Context) {
	details, err := h.service.ListOwnerBookings(c.Request.Context(), identity(c).UserID, booking.OwnerBookingsFilter{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		RoomName:  c.Query("roomName"),
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	out := make([]bookingResponse, 0, len(details))
	for _, d := range details {
		r := toBookingResponse(d.Booking)
		r.RoomName, r.HotelName = d.RoomName, d.HotelName
		out = append(out, r)
	}
	c.JSON(http.StatusOK, out)
}

type checkoutRequest struct {
	BookingID   int64              `json:"bookingId"`
	BookingType domain.BookingType `json:"bookingType"`
	payment.Proxy
}

func (h *BookingHandler) checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	result, err := h.service.Checkout(c.Request.Context(), identity(c).UserID, booking.CheckoutInput{
		BookingID: req.BookingID,
		Type:      req.BookingType,
		Payment:   req.Proxy,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	if result.Flight != nil {
		c.JSON(http.StatusOK, gin.H{"type": result.Type, "booking": toFlightBookingResponse(*result.Flight)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"type": result.Type, "booking": toBookingResponse(*result.Hotel)})
}

type capacityRequest struct {
	Capacity *int `json:"availableRooms"`
}

func (h *BookingHandler) reduceCapacity(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req capacityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Capacity == nil {
		badRequest(c, "availableRooms is required")
		return
	}

	result, err := h.service.ReduceCapacity(c.Request.Context(), identity(c).UserID, id, *req.Capacity)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	canceled := make([]bookingResponse, 0, len(result.Canceled))
	for _, b := range result.Canceled {
		canceled = append(canceled, toBookingResponse(b))
	}
	c.JSON(http.StatusOK, gin.H{
		"room": gin.H{
			"id":             result.Room.ID,
			"hotelId":        result.Room.HotelID,
			"name":           result.Room.Name,
			"availableRooms": result.Room.AvailableRooms,
		},
		"canceledBookings": canceled,
	})
}

func (h *BookingHandler) availability(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rooms, err := h.service.HotelAvailability(c.Request.Context(), id, c.Query("checkIn"), c.Query("checkOut"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}
