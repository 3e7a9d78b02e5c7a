package repository // repository holds data access logic for domain entities

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"       // errors allows sentinel comparisons
)

// Room represents a bookable salon.  Rooms are reference data: the
// application only ever reads them, so the struct carries just the
// identity and the display name.
type Room struct {
	ID   uint64 // ID is the primary key of the room
	Name string // Name is the label shown in the room list
}

// RoomRepo provides read access to rooms.  It embeds a database handle to
// perform queries.
type RoomRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// GetByID retrieves a room by its ID.  It returns ErrRoomNotFound when no
// row is found; any other error is a storage failure.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*Room, error) {
	const q = `SELECT id, name FROM rooms WHERE id = ?`
	var room Room
	err := r.db.QueryRowContext(ctx, q, id).Scan(&room.ID, &room.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// ListAll returns every room in storage order.  An empty table yields an
// empty slice, not an error; the caller decides whether "no rooms" is fatal.
func (r *RoomRepo) ListAll(ctx context.Context) ([]*Room, error) {
	const q = `SELECT id, name FROM rooms ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*Room, 0)
	for rows.Next() {
		room := new(Room)
		if err := rows.Scan(&room.ID, &room.Name); err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
