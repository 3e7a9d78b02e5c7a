package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var reservationCols = []string{
	"id", "reservation_type_id", "room_id", "kitchen_type_id",
	"person", "phone", "reserved_on", "headcount", "day_count", "room_count",
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newReservationMock(t *testing.T) (*ReservationRepo, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	return NewReservationRepo(db), mock, func() { db.Close() }
}

func TestReservationRepoGetByID(t *testing.T) {
	repo, mock, close := newReservationMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM reservations WHERE id = ?`)).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(reservationCols).
			AddRow(7, 2, 1, 3, "Ana", "555-1111", date(2025, 6, 1), 50, 0, 0))

	res, err := repo.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if res.ID != 7 || res.Person != "Ana" || !res.ReservedOn.Equal(date(2025, 6, 1)) {
		t.Fatalf("unexpected reservation: %+v", res)
	}
}

func TestReservationRepoGetByIDNotFound(t *testing.T) {
	repo, mock, close := newReservationMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM reservations WHERE id = ?`)).
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows(reservationCols))

	_, err := repo.GetByID(context.Background(), 404)
	if !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("want ErrReservationNotFound, got %v", err)
	}
}

func TestReservationRepoListByRoomOrderedByDate(t *testing.T) {
	repo, mock, close := newReservationMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY reserved_on`)).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows(reservationCols).
			AddRow(3, 1, 1, 2, "Ana", "555-1111", date(2025, 5, 10), 20, 0, 0).
			AddRow(9, 2, 1, 2, "Luis", "555-2222", date(2025, 6, 1), 80, 3, 4))

	out, err := repo.ListByRoom(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByRoom: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("want 2 reservations, got %d", len(out))
	}
	if !out[0].ReservedOn.Before(out[1].ReservedOn) {
		t.Fatalf("reservations not ordered by date: %v, %v", out[0].ReservedOn, out[1].ReservedOn)
	}
	if out[1].DayCount != 3 || out[1].RoomCount != 4 {
		t.Fatalf("conference fields lost: %+v", out[1])
	}
}

func TestReservationRepoListByRoomEmpty(t *testing.T) {
	repo, mock, close := newReservationMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY reserved_on`)).
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows(reservationCols))

	out, err := repo.ListByRoom(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListByRoom: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", out)
	}
}

const dateTakenPattern = `reserved_on = \? AND room_id = \? AND id != \?`

func TestReservationRepoIsDateTaken(t *testing.T) {
	repo, mock, close := newReservationMock(t)
	defer close()

	day := date(2025, 6, 1)

	// A create (exclude 0) sees the slot as taken.
	mock.ExpectQuery(dateTakenPattern).
		WithArgs(day, uint64(1), uint64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"taken"}).AddRow(1))

	taken, err := repo.IsDateTaken(context.Background(), day, 1, 0)
	if err != nil {
		t.Fatalf("IsDateTaken: %v", err)
	}
	if !taken {
		t.Fatal("want taken = true for exclude 0")
	}

	// Excluding the booking's own id frees the slot for its edit.
	mock.ExpectQuery(dateTakenPattern).
		WithArgs(day, uint64(1), uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"taken"}).AddRow(0))

	taken, err = repo.IsDateTaken(context.Background(), day, 1, 7)
	if err != nil {
		t.Fatalf("IsDateTaken: %v", err)
	}
	if taken {
		t.Fatal("want taken = false when excluding own id")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

// IsDateTaken must compare whole days: a timestamp with a time component
// must hit the database truncated.
func TestReservationRepoIsDateTakenTruncates(t *testing.T) {
	repo, mock, close := newReservationMock(t)
	defer close()

	stamp := time.Date(2025, 6, 1, 17, 45, 3, 0, time.UTC)
	mock.ExpectQuery(dateTakenPattern).
		WithArgs(date(2025, 6, 1), uint64(1), uint64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"taken"}).AddRow(0))

	if _, err := repo.IsDateTaken(context.Background(), stamp, 1, 0); err != nil {
		t.Fatalf("IsDateTaken: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestReservationRepoCreateAssignsIDAndReadsBack(t *testing.T) {
	repo, mock, close := newReservationMock(t)
	defer close()

	res := &Reservation{
		ReservationTypeID: 2, RoomID: 1, KitchenTypeID: 3,
		Person: "Ana", Phone: "555-1111",
		ReservedOn: date(2025, 6, 1), Headcount: 50,
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO reservations`)).
		WithArgs(uint64(2), uint64(1), uint64(3), "Ana", "555-1111", date(2025, 6, 1), uint32(50), uint32(0), uint32(0)).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM reservations WHERE id = ?`)).
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows(reservationCols).
			AddRow(11, 2, 1, 3, "Ana", "555-1111", date(2025, 6, 1), 50, 0, 0))

	if err := repo.Create(context.Background(), res); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.ID != 11 {
		t.Fatalf("want assigned id 11, got %d", res.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestReservationRepoUpdate(t *testing.T) {
	repo, mock, close := newReservationMock(t)
	defer close()

	res := &Reservation{
		ID: 11, ReservationTypeID: 2, RoomID: 1, KitchenTypeID: 3,
		Person: "Ana María", Phone: "555-9999",
		ReservedOn: date(2025, 6, 2), Headcount: 60,
	}

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE reservations`)).
		WithArgs(uint64(2), uint64(1), uint64(3), "Ana María", "555-9999", date(2025, 6, 2), uint32(60), uint32(0), uint32(0), uint64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM reservations WHERE id = ?`)).
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows(reservationCols).
			AddRow(11, 2, 1, 3, "Ana María", "555-9999", date(2025, 6, 2), 60, 0, 0))

	if err := repo.Update(context.Background(), res); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if res.Person != "Ana María" || res.Headcount != 60 {
		t.Fatalf("updated fields not reflected: %+v", res)
	}
}

// Updating an identifier that does not exist touches zero rows; the repo
// distinguishes that from a no-change update and surfaces not-found.
func TestReservationRepoUpdateMissingID(t *testing.T) {
	repo, mock, close := newReservationMock(t)
	defer close()

	res := &Reservation{ID: 404, ReservationTypeID: 2, RoomID: 1, KitchenTypeID: 3,
		Person: "Ana", Phone: "555-1111", ReservedOn: date(2025, 6, 1)}

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE reservations`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM reservations WHERE id = ?)`)).
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"e"}).AddRow(0))

	err := repo.Update(context.Background(), res)
	if !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("want ErrReservationNotFound, got %v", err)
	}
}

// A full-field update that changes nothing also reports zero affected rows
// in MySQL; it must still succeed because the row exists.
func TestReservationRepoUpdateNoChange(t *testing.T) {
	repo, mock, close := newReservationMock(t)
	defer close()

	res := &Reservation{ID: 11, ReservationTypeID: 2, RoomID: 1, KitchenTypeID: 3,
		Person: "Ana", Phone: "555-1111", ReservedOn: date(2025, 6, 1), Headcount: 50}

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE reservations`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM reservations WHERE id = ?)`)).
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"e"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM reservations WHERE id = ?`)).
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows(reservationCols).
			AddRow(11, 2, 1, 3, "Ana", "555-1111", date(2025, 6, 1), 50, 0, 0))

	if err := repo.Update(context.Background(), res); err != nil {
		t.Fatalf("Update: %v", err)
	}
}
