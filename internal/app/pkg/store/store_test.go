package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	mssql "github.com/denisenkom/go-mssqldb"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/grid"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/status"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/tracker"
	errs "github.com/flitlabs/dispatch_tracker/internal/pkg/errors"
)

var reservationHeader = []string{
	"BookingId", "BookRefNo", "BookStatus", "BookOrigin", "BookPickUpDate", "BookPickUpTime",
	"DriverId", "DriverName", "VehicleId", "VehicleRegNo", "BookPassengerNm", "BookPickUpAddr",
	"BookDropAddr", "AffiliateCompany", "BookPassengerCount", "BookLuggageCount",
}

func TestSQLReservationsRange(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM\\s+Tbl_BookingDetails bookings\\s+WHERE").
		WillReturnRows(sqlmock.NewRows(reservationHeader).
			AddRow(int64(1), "C-100", "Farm-Out Assigned", "farm out", "2024-06-01", "9:30 AM",
				"D-1", "Sam", "V-1", "ABC-123", "Jo", "JFK", "Midtown", "Acme", int64(2), int64(3)).
			AddRow(int64(2), nil, nil, nil, nil, nil,
				nil, nil, nil, nil, nil, nil, nil, nil, nil, nil))

	s := &SQLReservations{DB: db}
	records, err := s.Reservations(context.Background(), grid.Query{
		From: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("failed to load the reservations: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	row := grid.FromRecord(records[0])
	if row.Confirmation != "C-100" || row.Status != status.FarmOutAssigned || row.Origin != status.OriginFarmOut {
		t.Errorf("unexpected row %+v", row)
	}
	if row.Passengers != 2 || row.Luggage != 3 || row.ID != "1" {
		t.Errorf("unexpected counts %+v", row)
	}

	if records[1].Confirmation != nil || records[1].Passengers != nil {
		t.Errorf("expected missing columns to stay nil, got %+v", records[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLReservationsRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT TOP \\(@Limit\\)").
		WillReturnRows(sqlmock.NewRows(reservationHeader))

	s := &SQLReservations{DB: db}
	records, err := s.Reservations(context.Background(), grid.Query{Recent: 10})
	if err != nil {
		t.Fatalf("failed to load the reservations: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("expected an empty non nil result, got %+v", records)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLReservationsFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnError(fmt.Errorf("connection reset"))

	s := &SQLReservations{DB: db}
	_, err = s.Reservations(context.Background(), grid.Query{})
	if !errors.Is(err, errs.ErrReservationStore) {
		t.Fatalf("expected a reservation store error, got %v", err)
	}
}

var telemetryHeader = []string{"DriverId", "Latitude", "Longitude", "Heading", "Speed", "JobStatus", "RecordedAt"}

func TestSQLTelemetryLatest(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	recorded := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	mock.ExpectQuery("INFORMATION_SCHEMA\\.TABLES").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("ROW_NUMBER\\(\\) OVER").
		WillReturnRows(sqlmock.NewRows(telemetryHeader).
			AddRow("D-1", 40.75, -73.98, 90.0, 32.5, int64(status.OnBoard), recorded).
			AddRow("D-2", 40.71, -73.99, nil, nil, nil, nil))
	mock.ExpectQuery("ROW_NUMBER\\(\\) OVER").
		WillReturnRows(sqlmock.NewRows(telemetryHeader))

	s := &SQLTelemetry{DB: db}
	positions, err := s.Latest(context.Background())
	if err != nil {
		t.Fatalf("failed to poll: %v", err)
	}
	if len(positions) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(positions))
	}
	if p := positions[0]; p.ID != "D-1" || p.Status != tracker.Occupied || p.Heading != 90 || !p.RecordedAt.Equal(recorded) {
		t.Errorf("unexpected position %+v", p)
	}
	if p := positions[1]; p.Status != tracker.Available || p.Speed != 0 || p.Source != tracker.Live {
		t.Errorf("unexpected position %+v", p)
	}

	positions, err = s.Latest(context.Background())
	if err != nil || len(positions) != 0 {
		t.Fatalf("expected zero rows without an error, got %v %v", positions, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLTelemetrySkipsIncompleteRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("INFORMATION_SCHEMA\\.TABLES").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("ROW_NUMBER\\(\\) OVER").
		WillReturnRows(sqlmock.NewRows(telemetryHeader).
			AddRow("D-1", 40.75, -73.98, nil, nil, nil, nil).
			AddRow("D-2", nil, nil, nil, nil, nil, nil).
			AddRow(nil, 40.71, -73.99, nil, nil, nil, nil).
			AddRow("D-4", 140.0, -73.99, nil, nil, nil, nil).
			AddRow("D-5", 0.0, 0.0, nil, nil, nil, nil))

	s := &SQLTelemetry{DB: db}
	positions, err := s.Latest(context.Background())
	if err != nil {
		t.Fatalf("expected incomplete rows to be skipped, got %v", err)
	}
	if len(positions) != 2 || positions[0].ID != "D-1" || positions[1].ID != "D-5" {
		t.Fatalf("expected D-1 and D-5, got %+v", positions)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLTelemetryNotProvisioned(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("INFORMATION_SCHEMA\\.TABLES").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	s := &SQLTelemetry{DB: db}
	_, err = s.Latest(context.Background())
	if !errors.Is(err, errs.ErrTelemetryNotProvisioned) {
		t.Fatalf("expected the not provisioned error, got %v", err)
	}

	mock.ExpectQuery("INFORMATION_SCHEMA\\.TABLES").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("ROW_NUMBER\\(\\) OVER").
		WillReturnError(mssql.Error{Number: 208, Message: "Invalid object name 'Tbl_DriverLocations'."})

	_, err = s.Latest(context.Background())
	if !errors.Is(err, errs.ErrTelemetryNotProvisioned) {
		t.Fatalf("expected a dropped table to be reported as not provisioned, got %v", err)
	}

	mock.ExpectQuery("INFORMATION_SCHEMA\\.TABLES").
		WillReturnError(fmt.Errorf("login failed"))

	_, err = s.Latest(context.Background())
	if !errors.Is(err, errs.ErrTelemetryStore) || errors.Is(err, errs.ErrTelemetryNotProvisioned) {
		t.Fatalf("expected a generic telemetry error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRedisTelemetryDecode(t *testing.T) {
	s := NewRedisTelemetry(nil, "drivers")

	tests := []struct {
		name string
		raw  string
		ok   bool
		want tracker.Occupancy
	}{
		{name: "on the way", raw: `{"lat":40.75,"lon":-73.98,"heading":45,"status":2}`, ok: true, want: tracker.Occupied},
		{name: "cleared", raw: `{"lat":40.75,"lon":-73.98,"status":5}`, ok: true, want: tracker.Available},
		{name: "no status", raw: `{"lat":40.75,"lon":-73.98}`, ok: true, want: tracker.Available},
		{name: "bad latitude", raw: `{"lat":140.75,"lon":-73.98}`},
		{name: "bad status", raw: `{"lat":40.75,"lon":-73.98,"status":9}`},
		{name: "missing lon", raw: `{"lat":40.75}`},
		{name: "equator and meridian", raw: `{"lat":0,"lon":0}`, ok: true, want: tracker.Available},
		{name: "not json", raw: `l40.75`},
	}

	for _, tt := range tests {
		p, err := s.decode("D-9", tt.raw)
		if tt.ok != (err == nil) {
			t.Errorf("%s: expected ok=%v, got %v", tt.name, tt.ok, err)
			continue
		}
		if !tt.ok {
			continue
		}
		if p.ID != "D-9" || p.Status != tt.want || p.Source != tracker.Live {
			t.Errorf("%s: unexpected position %+v", tt.name, p)
		}
	}
}

func TestParseSettings(t *testing.T) {
	settings := ParseSettings(map[string]string{})
	if settings != DefaultSettings() {
		t.Errorf("expected the defaults for an empty hash, got %+v", settings)
	}

	settings = ParseSettings(map[string]string{
		FieldTrackerMode:   "live",
		FieldFilterSettled: "false",
		FieldFilterFarmIn:  "0",
		FieldFilterQuote:   "maybe",
	})
	if settings.Mode != tracker.Live {
		t.Errorf("expected live, got %q", settings.Mode)
	}
	want := grid.AllFilters()
	want.Settled = false
	want.FarmIn = false
	if settings.Filters != want {
		t.Errorf("expected %+v, got %+v", want, settings.Filters)
	}

	settings = ParseSettings(map[string]string{FieldTrackerMode: "satellite"})
	if settings.Mode != tracker.Simulated {
		t.Errorf("expected an invalid mode to fall back to simulated, got %q", settings.Mode)
	}
}
