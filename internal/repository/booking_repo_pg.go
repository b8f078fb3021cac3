package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/jackc/pgx/v5"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	// GetForUpdate locks the booking row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	// ListActiveByRoom returns the room's bookings that are not CANCELED.
	ListActiveByRoom(ctx context.Context, roomID int64) ([]domain.Booking, error)
	// ListActiveByHotel returns the non-CANCELED bookings of every room of the hotel.
	ListActiveByHotel(ctx context.Context, hotelID int64) ([]domain.Booking, error)
	ListByRoomAndStatus(ctx context.Context, roomID int64, status domain.BookingStatus) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListForUpdate(ctx context.Context, ids []int64) ([]domain.Booking, error)
	ListActiveByUserForUpdate(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, filter OwnerBookingFilter) ([]domain.BookingDetail, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
}

// OwnerBookingFilter narrows an owner's booking list. Zero values disable a condition.
type OwnerBookingFilter struct {
	From     *time.Time
	To       *time.Time
	RoomName string
}

type PGBookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `b.id, b.user_id, b.hotel_id, b.room_id, b.check_in, b.check_out, b.status, b.created_at, b.updated_at`

func scanBooking(row interface{ Scan(dest ...any) error }) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.UserID, &b.HotelID, &b.RoomID, &b.CheckIn, &b.CheckOut, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, mapNoRows(err)
	}
	return &b, nil
}

func collectBookings(rows pgx.Rows, err error) ([]domain.Booking, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return r.db.QueryRow(ctx, `INSERT INTO bookings (user_id, hotel_id, room_id, check_in, check_out, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`, booking.UserID, booking.HotelID, booking.RoomID, booking.CheckIn, booking.CheckOut, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.id=$1`, id))
}

func (r *PGBookingRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.id=$1 FOR UPDATE`, id))
}

func (r *PGBookingRepository) ListActiveByRoom(ctx context.Context, roomID int64) ([]domain.Booking, error) {
	return collectBookings(r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.room_id=$1 AND b.status <> $2 ORDER BY b.id`, roomID, domain.BookingStatusCanceled))
}

func (r *PGBookingRepository) ListActiveByHotel(ctx context.Context, hotelID int64) ([]domain.Booking, error) {
	return collectBookings(r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.hotel_id=$1 AND b.status <> $2 ORDER BY b.id`, hotelID, domain.BookingStatusCanceled))
}

func (r *PGBookingRepository) ListByRoomAndStatus(ctx context.Context, roomID int64, status domain.BookingStatus) ([]domain.Booking, error) {
	return collectBookings(r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.room_id=$1 AND b.status=$2
		ORDER BY b.check_in DESC NULLS LAST, b.id DESC FOR UPDATE`, roomID, status))
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return collectBookings(r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.user_id=$1 ORDER BY b.created_at DESC, b.id DESC`, userID))
}

func (r *PGBookingRepository) ListForUpdate(ctx context.Context, ids []int64) ([]domain.Booking, error) {
	return collectBookings(r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.id = ANY($1) ORDER BY b.id FOR UPDATE`, ids))
}

func (r *PGBookingRepository) ListActiveByUserForUpdate(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return collectBookings(r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.user_id=$1 AND b.status <> $2 ORDER BY b.id FOR UPDATE`, userID, domain.BookingStatusCanceled))
}

func (r *PGBookingRepository) ListByOwner(ctx context.Context, ownerID int64, filter OwnerBookingFilter) ([]domain.BookingDetail, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+`, r.name, h.name
		FROM bookings b
		JOIN hotels h ON h.id = b.hotel_id
		JOIN rooms r ON r.id = b.room_id
		WHERE h.owner_id = $1
		  AND ($2::timestamptz IS NULL OR b.check_out > $2)
		  AND ($3::timestamptz IS NULL OR b.check_in < $3)
		  AND ($4 = '' OR r.name ILIKE '%' || $4 || '%')
		ORDER BY b.check_in NULLS LAST, b.id`, ownerID, filter.From, filter.To, filter.RoomName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]domain.BookingDetail, 0)
	for rows.Next() {
		var d domain.BookingDetail
		b := &d.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.HotelID, &b.RoomID, &b.CheckIn, &b.CheckOut, &b.Status, &b.CreatedAt, &b.UpdatedAt, &d.RoomName, &d.HotelName); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	return scanBooking(r.db.QueryRow(ctx, `UPDATE bookings b SET status=$1, updated_at=now() WHERE b.id=$2 RETURNING `+bookingColumns, status, id))
}

var _ BookingRepository = (*PGBookingRepository)(nil)
