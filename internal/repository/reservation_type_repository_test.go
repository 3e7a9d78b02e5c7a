package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestReservationTypeIsConference(t *testing.T) {
	if !(&ReservationType{Name: "Congreso"}).IsConference() {
		t.Fatal("Congreso must be the conference type")
	}
	if (&ReservationType{Name: "Boda"}).IsConference() {
		t.Fatal("Boda is not a conference type")
	}
}

func TestReservationTypeRepoListAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name FROM reservation_types ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "Boda").
			AddRow(2, "Congreso"))

	types, err := NewReservationTypeRepo(db).ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(types) != 2 || types[1].Name != "Congreso" {
		t.Fatalf("unexpected types: %+v", types)
	}
}
