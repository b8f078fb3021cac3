package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the query surface shared by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories groups the table gateways bound to one connection or transaction.
type Repositories struct {
	Hotels         HotelRepository
	Rooms          RoomRepository
	Bookings       BookingRepository
	FlightBookings FlightBookingRepository
}

func NewRepositories(db DBTX) Repositories {
	return Repositories{
		Hotels:         NewHotelRepository(db),
		Rooms:          NewRoomRepository(db),
		Bookings:       NewBookingRepository(db),
		FlightBookings: NewFlightBookingRepository(db),
	}
}

// Store hands out repositories and runs units of work.
//
// WithinTx may call fn more than once when the database reports a
// serialization conflict, so fn must not have effects outside the transaction.
type Store interface {
	Repos() Repositories
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

type PGStore struct {
	db          *pgxpool.Pool
	maxAttempts int
}

func NewStore(db *pgxpool.Pool, maxAttempts int) *PGStore {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &PGStore{db: db, maxAttempts: maxAttempts}
}

func (s *PGStore) Repos() Repositories {
	return NewRepositories(s.db)
}

func (s *PGStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	var err error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		err = s.runTx(ctx, fn)
		if err == nil || !isRetryable(err) {
			return err
		}
	}
	return fmt.Errorf("transaction failed after %d attempts: %w", s.maxAttempts, err)
}

func (s *PGStore) runTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, NewRepositories(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

var _ Store = (*PGStore)(nil)
