package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ConferenceTypeName is the reservation type whose bookings carry the extra
// day-count and room-count fields.  The form layer keys its field
// visibility off this name.
const ConferenceTypeName = "Congreso"

// ReservationType represents the category of an event (wedding, conference,
// ...).  Read-only reference data.
type ReservationType struct {
	ID   uint64 // ID is the primary key of the reservation type
	Name string // Name is the label shown in the form combo box
}

// IsConference reports whether bookings of this type carry the
// conference-only fields.
func (t *ReservationType) IsConference() bool {
	return t.Name == ConferenceTypeName
}

// ReservationTypeRepo provides read access to reservation types.
type ReservationTypeRepo struct {
	db *sql.DB
}

// NewReservationTypeRepo constructs a ReservationTypeRepo with the given DB handle.
func NewReservationTypeRepo(db *sql.DB) *ReservationTypeRepo {
	return &ReservationTypeRepo{db: db}
}

// GetByID retrieves a reservation type by its ID, returning
// ErrReservationTypeNotFound when no row matches.
func (r *ReservationTypeRepo) GetByID(ctx context.Context, id uint64) (*ReservationType, error) {
	const q = `SELECT id, name FROM reservation_types WHERE id = ?`
	var rt ReservationType
	err := r.db.QueryRowContext(ctx, q, id).Scan(&rt.ID, &rt.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationTypeNotFound
		}
		return nil, err
	}
	return &rt, nil
}

// ListAll returns every reservation type in storage order; empty slice when none.
func (r *ReservationTypeRepo) ListAll(ctx context.Context) ([]*ReservationType, error) {
	const q = `SELECT id, name FROM reservation_types ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*ReservationType, 0)
	for rows.Next() {
		rt := new(ReservationType)
		if err := rows.Scan(&rt.ID, &rt.Name); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
