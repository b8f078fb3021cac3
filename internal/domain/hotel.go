package domain

import "time"

type Hotel struct {
	ID        int64
	OwnerID   int64
	Name      string
	Address   string
	Location  string
	CreatedAt time.Time
}

// Room is a room type; AvailableRooms is the number of physical units, not a live counter.
type Room struct {
	ID             int64
	HotelID        int64
	Name           string
	PricePerNight  float64
	Amenities      []string
	AvailableRooms int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Notification struct {
	ID        int64
	UserID    int64
	Message   string
	Read      bool
	CreatedAt time.Time
}

// NotificationEvent is the broker payload for a persisted notification.
type NotificationEvent struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
