package repository

import (
	"context"

	"github.com/Domenick1991/travelbooking/internal/domain"
)

type HotelRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	// GetForUpdate locks the room row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*domain.Room, error)
	ListByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error)
	UpdateCapacity(ctx context.Context, id int64, capacity int) (*domain.Room, error)
}

type PGHotelRepository struct {
	db DBTX
}

func NewHotelRepository(db DBTX) HotelRepository {
	return &PGHotelRepository{db: db}
}

func (r *PGHotelRepository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	row := r.db.QueryRow(ctx, `SELECT id, owner_id, name, address, location, created_at FROM hotels WHERE id=$1`, id)
	var h domain.Hotel
	if err := row.Scan(&h.ID, &h.OwnerID, &h.Name, &h.Address, &h.Location, &h.CreatedAt); err != nil {
		return nil, mapNoRows(err)
	}
	return &h, nil
}

type PGRoomRepository struct {
	db DBTX
}

func NewRoomRepository(db DBTX) RoomRepository {
	return &PGRoomRepository{db: db}
}

const roomColumns = `id, hotel_id, name, price_per_night, amenities, available_rooms, created_at, updated_at`

func scanRoom(row interface{ Scan(dest ...any) error }) (*domain.Room, error) {
	var room domain.Room
	if err := row.Scan(&room.ID, &room.HotelID, &room.Name, &room.PricePerNight, &room.Amenities, &room.AvailableRooms, &room.CreatedAt, &room.UpdatedAt); err != nil {
		return nil, mapNoRows(err)
	}
	return &room, nil
}

func (r *PGRoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	return scanRoom(r.db.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id=$1`, id))
}

func (r *PGRoomRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Room, error) {
	return scanRoom(r.db.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id=$1 FOR UPDATE`, id))
}

func (r *PGRoomRepository) ListByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	rows, err := r.db.Query(ctx, `SELECT `+roomColumns+` FROM rooms WHERE hotel_id=$1 ORDER BY id`, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := make([]domain.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *room)
	}
	return rooms, rows.Err()
}

func (r *PGRoomRepository) UpdateCapacity(ctx context.Context, id int64, capacity int) (*domain.Room, error) {
	return scanRoom(r.db.QueryRow(ctx, `UPDATE rooms SET available_rooms=$1, updated_at=now() WHERE id=$2 RETURNING `+roomColumns, capacity, id))
}

var (
	_ HotelRepository = (*PGHotelRepository)(nil)
	_ RoomRepository  = (*PGRoomRepository)(nil)
)
