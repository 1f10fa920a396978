// Package store contains the remote stores the dispatch engine reads from
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/grid"
	errs "github.com/flitlabs/dispatch_tracker/internal/pkg/errors"
)

// DefaultRecent is the number of reservations loaded when the query has neither a range nor a limit
const DefaultRecent = 200

const reservationColumns = `
	bookings.BookingId,
	bookings.BookRefNo,
	bookings.BookStatus,
	bookings.BookOrigin,
	CONVERT(varchar(10), bookings.BookPickUpDate, 23),
	bookings.BookPickUpTime,
	bookings.DriverId,
	bookings.DriverName,
	bookings.VehicleId,
	bookings.VehicleRegNo,
	bookings.BookPassengerNm,
	bookings.BookPickUpAddr,
	bookings.BookDropAddr,
	bookings.AffiliateCompany,
	bookings.BookPassengerCount,
	bookings.BookLuggageCount`

// SQLReservations reads the reservations from the booking table
type SQLReservations struct {
	DB *sql.DB
}

// Reservations returns the reservations with a pickup date inside the range of the query, or
// the most recent ones when the query has no range
func (s *SQLReservations) Reservations(ctx context.Context, q grid.Query) ([]grid.Record, error) {
	var (
		rows *sql.Rows
		err  error
	)

	if !q.From.IsZero() && !q.To.IsZero() {
		query := `SELECT` + reservationColumns + `
FROM
	Tbl_BookingDetails bookings
WHERE
	bookings.BookPickUpDate >= @From AND bookings.BookPickUpDate < @To
ORDER BY
	bookings.BookPickUpDate DESC`

		rows, err = s.DB.QueryContext(ctx, query,
			sql.Named("From", q.From.Format("2006-01-02")),
			sql.Named("To", q.To.AddDate(0, 0, 1).Format("2006-01-02")),
		)
	} else {
		limit := q.Recent
		if limit <= 0 {
			limit = DefaultRecent
		}

		query := `SELECT TOP (@Limit)` + reservationColumns + `
FROM
	Tbl_BookingDetails bookings
ORDER BY
	bookings.BookingId DESC`

		rows, err = s.DB.QueryContext(ctx, query, sql.Named("Limit", limit))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrReservationStore, err)
	}
	defer rows.Close()

	records := []grid.Record{}
	for rows.Next() {
		var record grid.Record
		err := rows.Scan(
			&record.ID,
			&record.Confirmation,
			&record.Status,
			&record.Origin,
			&record.PickupDate,
			&record.PickupTime,
			&record.DriverID,
			&record.DriverName,
			&record.VehicleID,
			&record.VehiclePlate,
			&record.PassengerName,
			&record.PickupAddr,
			&record.DropoffAddr,
			&record.OriginCompany,
			&record.Passengers,
			&record.Luggage,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrReservationStore, err)
		}

		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrReservationStore, err)
	}

	return records, nil
}
