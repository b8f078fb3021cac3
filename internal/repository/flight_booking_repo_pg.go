package repository

import (
	"context"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/jackc/pgx/v5"
)

type FlightBookingRepository interface {
	Create(ctx context.Context, booking *domain.FlightBooking) error
	GetForUpdate(ctx context.Context, id int64) (*domain.FlightBooking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.FlightBooking, error)
	ListForUpdate(ctx context.Context, ids []int64) ([]domain.FlightBooking, error)
	ListActiveByUserForUpdate(ctx context.Context, userID int64) ([]domain.FlightBooking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.FlightBooking, error)
}

type PGFlightBookingRepository struct {
	db DBTX
}

func NewFlightBookingRepository(db DBTX) FlightBookingRepository {
	return &PGFlightBookingRepository{db: db}
}

const flightBookingColumns = `id, user_id, provider_reference, flight_ids, first_name, last_name, email, passport_number, status, created_at, updated_at`

func scanFlightBooking(row interface{ Scan(dest ...any) error }) (*domain.FlightBooking, error) {
	var fb domain.FlightBooking
	if err := row.Scan(&fb.ID, &fb.UserID, &fb.ProviderReference, &fb.FlightIDs, &fb.FirstName, &fb.LastName, &fb.Email, &fb.PassportNumber, &fb.Status, &fb.CreatedAt, &fb.UpdatedAt); err != nil {
		return nil, mapNoRows(err)
	}
	return &fb, nil
}

func collectFlightBookings(rows pgx.Rows, err error) ([]domain.FlightBooking, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.FlightBooking, 0)
	for rows.Next() {
		fb, err := scanFlightBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *fb)
	}
	return bookings, rows.Err()
}

func (r *PGFlightBookingRepository) Create(ctx context.Context, booking *domain.FlightBooking) error {
	return r.db.QueryRow(ctx, `INSERT INTO flight_bookings (user_id, provider_reference, flight_ids, first_name, last_name, email, passport_number, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		booking.UserID, booking.ProviderReference, booking.FlightIDs, booking.FirstName, booking.LastName, booking.Email, booking.PassportNumber, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *PGFlightBookingRepository) GetForUpdate(ctx context.Context, id int64) (*domain.FlightBooking, error) {
	return scanFlightBooking(r.db.QueryRow(ctx, `SELECT `+flightBookingColumns+` FROM flight_bookings WHERE id=$1 FOR UPDATE`, id))
}

func (r *PGFlightBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.FlightBooking, error) {
	return collectFlightBookings(r.db.Query(ctx, `SELECT `+flightBookingColumns+` FROM flight_bookings WHERE user_id=$1 ORDER BY created_at DESC, id DESC`, userID))
}

func (r *PGFlightBookingRepository) ListForUpdate(ctx context.Context, ids []int64) ([]domain.FlightBooking, error) {
	return collectFlightBookings(r.db.Query(ctx, `SELECT `+flightBookingColumns+` FROM flight_bookings WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids))
}

func (r *PGFlightBookingRepository) ListActiveByUserForUpdate(ctx context.Context, userID int64) ([]domain.FlightBooking, error) {
	return collectFlightBookings(r.db.Query(ctx, `SELECT `+flightBookingColumns+` FROM flight_bookings WHERE user_id=$1 AND status <> $2 ORDER BY id FOR UPDATE`, userID, domain.BookingStatusCanceled))
}

func (r *PGFlightBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.FlightBooking, error) {
	return scanFlightBooking(r.db.QueryRow(ctx, `UPDATE flight_bookings SET status=$1, updated_at=now() WHERE id=$2 RETURNING `+flightBookingColumns, status, id))
}

var _ FlightBookingRepository = (*PGFlightBookingRepository)(nil)
