package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Reservation mirrors the schema of the reservations table.  One row books
// one room for one calendar date.  DayCount and RoomCount only mean
// something for conference bookings; the table has no conditional schema,
// so for every other type they are stored as 0.
type Reservation struct {
	ID                uint64    // ID is the primary key, assigned by storage on insert
	ReservationTypeID uint64    // ReservationTypeID references reservation_types.id
	RoomID            uint64    // RoomID references rooms.id
	KitchenTypeID     uint64    // KitchenTypeID references kitchen_types.id
	Person            string    // Person is the name of whoever booked
	Phone             string    // Phone is the contact number
	ReservedOn        time.Time // ReservedOn is the booked calendar date (no time component)
	Headcount         uint32    // Headcount is the number of attendees
	DayCount          uint32    // DayCount is the number of sessions (conference only)
	RoomCount         uint32    // RoomCount is the guest-room count (conference only)
}

// DateOnly truncates a timestamp to its calendar date in UTC.  All
// availability checks compare whole days, so every date that reaches the
// database goes through this first.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// execQuerier is the subset of *sql.DB and *sql.Tx the reservation queries
// need.  It lets the same statement run standalone or inside the booking
// transaction.
type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ReservationRepo provides CRUD operations for reservations.  Reservations
// are never deleted; rows are only inserted and updated in place.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so the booking service can open the
// transaction that wraps the availability check and the write.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = `id, reservation_type_id, room_id, kitchen_type_id,
       person, phone, reserved_on, headcount, day_count, room_count`

// scanReservation reads one row into a Reservation in column order.
func scanReservation(row *sql.Row, res *Reservation) error {
	return row.Scan(
		&res.ID, &res.ReservationTypeID, &res.RoomID, &res.KitchenTypeID,
		&res.Person, &res.Phone, &res.ReservedOn,
		&res.Headcount, &res.DayCount, &res.RoomCount,
	)
}

// GetByID retrieves a reservation by its ID.  It returns
// ErrReservationNotFound when no row matches.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	var res Reservation
	if err := scanReservation(r.db.QueryRowContext(ctx, q, id), &res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

// ListByRoom returns all reservations for a room ordered by date ascending,
// which is the order the main-view table displays them in.  A room with no
// reservations yields an empty slice.
func (r *ReservationRepo) ListByRoom(ctx context.Context, roomID uint64) ([]*Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations
               WHERE room_id = ?
               ORDER BY reserved_on`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*Reservation, 0)
	for rows.Next() {
		res := new(Reservation)
		if err := rows.Scan(
			&res.ID, &res.ReservationTypeID, &res.RoomID, &res.KitchenTypeID,
			&res.Person, &res.Phone, &res.ReservedOn,
			&res.Headcount, &res.DayCount, &res.RoomCount,
		); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// IsDateTaken reports whether a reservation other than excludeID already
// books the room on the given date.  excludeID is the reservation being
// edited so an unchanged date does not conflict with itself; pass 0 for new
// reservations, which matches no real identifier.
func (r *ReservationRepo) IsDateTaken(ctx context.Context, date time.Time, roomID, excludeID uint64) (bool, error) {
	return isDateTaken(ctx, r.db, date, roomID, excludeID)
}

// IsDateTakenTx is IsDateTaken inside an existing transaction.
func (r *ReservationRepo) IsDateTakenTx(ctx context.Context, tx *sql.Tx, date time.Time, roomID, excludeID uint64) (bool, error) {
	return isDateTaken(ctx, tx, date, roomID, excludeID)
}

func isDateTaken(ctx context.Context, eq execQuerier, date time.Time, roomID, excludeID uint64) (bool, error) {
	const q = `SELECT EXISTS(
                   SELECT 1 FROM reservations
                   WHERE reserved_on = ? AND room_id = ? AND id != ?
               )`
	var taken bool
	if err := eq.QueryRowContext(ctx, q, DateOnly(date), roomID, excludeID).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

// Create inserts a new reservation, sets the assigned ID on the record and
// reads the stored row back so the caller sees exactly what was persisted.
func (r *ReservationRepo) Create(ctx context.Context, res *Reservation) error {
	return createReservation(ctx, r.db, res)
}

// CreateTx is Create inside an existing transaction.  The caller must
// commit or roll back.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *Reservation) error {
	return createReservation(ctx, tx, res)
}

func createReservation(ctx context.Context, eq execQuerier, res *Reservation) error {
	const q = `INSERT INTO reservations
               (reservation_type_id, room_id, kitchen_type_id, person, phone, reserved_on, headcount, day_count, room_count)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := eq.ExecContext(ctx, q,
		res.ReservationTypeID, res.RoomID, res.KitchenTypeID,
		res.Person, res.Phone, DateOnly(res.ReservedOn),
		res.Headcount, res.DayCount, res.RoomCount,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)

	// Read the row back so defaults applied by the database end up on the record.
	const sel = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	return scanReservation(eq.QueryRowContext(ctx, sel, res.ID), res)
}

// Update persists every mutable field of the reservation keyed by its ID
// and reads the stored row back.  When the identifier does not exist the
// statement touches zero rows and ErrReservationNotFound is returned.
func (r *ReservationRepo) Update(ctx context.Context, res *Reservation) error {
	return updateReservation(ctx, r.db, res)
}

// UpdateTx is Update inside an existing transaction.
func (r *ReservationRepo) UpdateTx(ctx context.Context, tx *sql.Tx, res *Reservation) error {
	return updateReservation(ctx, tx, res)
}

func updateReservation(ctx context.Context, eq execQuerier, res *Reservation) error {
	const q = `UPDATE reservations
               SET reservation_type_id = ?, room_id = ?, kitchen_type_id = ?,
                   person = ?, phone = ?, reserved_on = ?,
                   headcount = ?, day_count = ?, room_count = ?
               WHERE id = ?`
	result, err := eq.ExecContext(ctx, q,
		res.ReservationTypeID, res.RoomID, res.KitchenTypeID,
		res.Person, res.Phone, DateOnly(res.ReservedOn),
		res.Headcount, res.DayCount, res.RoomCount,
		res.ID,
	)
	if err != nil {
		return err
	}
	// RowsAffected is 0 both for a missing row and for an update that changed
	// nothing, so check existence instead of the count alone.
	if n, _ := result.RowsAffected(); n == 0 {
		const check = `SELECT EXISTS(SELECT 1 FROM reservations WHERE id = ?)`
		var exists bool
		if err := eq.QueryRowContext(ctx, check, res.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrReservationNotFound
		}
	}

	const sel = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	return scanReservation(eq.QueryRowContext(ctx, sel, res.ID), res)
}
