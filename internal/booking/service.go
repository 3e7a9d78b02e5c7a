// Package booking implements the reservation submission core: required-field
// validation, the date-availability pre-check and the create-or-update write.
// It is the only code that combines a read and a write, so it owns the
// transaction around them.
package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/valencalicchia/DI05-GestorHotelesV2/internal/repository"
)

// ErrMissingFields is returned when the person name or phone is empty after
// trimming.  No storage access happens in that case.
var ErrMissingFields = errors.New("missing required fields")

// ErrDateUnavailable is returned when the requested room already has a
// reservation on the requested date.  No write happens in that case.
var ErrDateUnavailable = errors.New("date unavailable")

// Mode selects whether Submit inserts a new reservation or updates an
// existing one.
type Mode int

const (
	ModeCreate Mode = iota // insert a new reservation
	ModeEdit               // update the reservation named by Input.ID
)

// Input carries the raw form values for one submission.  Past dates are
// accepted here: the minimum-date rule belongs to the form layer, and the
// core treats a past date as merely a date.
type Input struct {
	ID                uint64    // reservation being edited; ignored for ModeCreate
	RoomID            uint64    // selected room
	ReservationTypeID uint64    // selected reservation type
	KitchenTypeID     uint64    // selected kitchen type
	Person            string    // who is booking
	Phone             string    // contact number
	Date              time.Time // requested calendar date
	Headcount         uint32    // number of attendees
	DayCount          uint32    // conference only; stored as given, 0 otherwise
	RoomCount         uint32    // conference only; stored as given, 0 otherwise
}

// Service turns form input into a persisted reservation or a rejection.
type Service struct {
	reservations *repository.ReservationRepo
}

// NewService constructs the booking service over the reservation repository.
func NewService(reservations *repository.ReservationRepo) *Service {
	if reservations == nil {
		panic("nil repository passed to NewService")
	}
	return &Service{reservations: reservations}
}

// Submit validates the input and persists the reservation.
//
// Validation order matters: the required-field check runs before any storage
// access, and the availability check runs before the write.  The check and
// the write share one transaction, with the unique (room_id, reserved_on)
// key as backstop, so two submissions racing for the same date cannot both
// land.  Exactly one availability read and at most one write per call; no
// retries.
func (s *Service) Submit(ctx context.Context, in Input, mode Mode) (*repository.Reservation, error) {
	if strings.TrimSpace(in.Person) == "" || strings.TrimSpace(in.Phone) == "" {
		return nil, ErrMissingFields
	}

	// 0 matches no real identifier, so a create conflicts with every
	// existing reservation for the slot while an edit skips its own row.
	excludeID := uint64(0)
	if mode == ModeEdit {
		excludeID = in.ID
	}

	tx, err := s.reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	taken, err := s.reservations.IsDateTakenTx(ctx, tx, in.Date, in.RoomID, excludeID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDateUnavailable
	}

	res := &repository.Reservation{
		ID:                excludeID,
		ReservationTypeID: in.ReservationTypeID,
		RoomID:            in.RoomID,
		KitchenTypeID:     in.KitchenTypeID,
		Person:            strings.TrimSpace(in.Person),
		Phone:             strings.TrimSpace(in.Phone),
		ReservedOn:        repository.DateOnly(in.Date),
		Headcount:         in.Headcount,
		DayCount:          in.DayCount,
		RoomCount:         in.RoomCount,
	}

	switch mode {
	case ModeEdit:
		err = s.reservations.UpdateTx(ctx, tx, res)
	default:
		err = s.reservations.CreateTx(ctx, tx, res)
	}
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDateUnavailable
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return res, nil
}

// isDuplicateKey reports whether err is the MySQL duplicate-entry error
// raised by the unique (room_id, reserved_on) key.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
