package grid

import (
	"cmp"
	"slices"
	"strings"

	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/status"
)

// Compare orders rows by status rank, then by pickup date and time (rows without a parsable
// pickup go last), then by their identity and finally by record id. Distinct rows never compare equal
func Compare(a, b ReservationRow) int {
	if c := cmp.Compare(status.RankOf(a.Status), status.RankOf(b.Status)); c != 0 {
		return c
	}

	at, aok := a.PickupAt()
	bt, bok := b.PickupAt()
	switch {
	case aok && !bok:
		return -1
	case !aok && bok:
		return 1
	case aok && bok:
		if c := at.Compare(bt); c != 0 {
			return c
		}
	}

	if c := strings.Compare(a.Key(), b.Key()); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// Column is a sortable column of the dispatch grid
type Column string

const (
	ColumnConfirmation Column = "confirmation"
	ColumnStatus       Column = "status"
	ColumnOrigin       Column = "origin"
	ColumnPickupDate   Column = "pickup_date"
	ColumnPickupTime   Column = "pickup_time"
	ColumnPassenger    Column = "passenger"
	ColumnDriver       Column = "driver"
	ColumnVehicle      Column = "vehicle"
	ColumnPickup       Column = "pickup"
	ColumnDropoff      Column = "dropoff"
	ColumnCompany      Column = "company"
	ColumnPassengers   Column = "passengers"
	ColumnLuggage      Column = "luggage"
)

type comparator func(a, b ReservationRow) int

func byText(field func(ReservationRow) string) comparator {
	return func(a, b ReservationRow) int {
		return strings.Compare(strings.ToLower(field(a)), strings.ToLower(field(b)))
	}
}

func byNumber(field func(ReservationRow) int) comparator {
	return func(a, b ReservationRow) int {
		return cmp.Compare(field(a), field(b))
	}
}

var comparators = map[Column]comparator{
	ColumnConfirmation: byText(func(r ReservationRow) string { return r.Key() }),
	ColumnStatus:       byNumber(func(r ReservationRow) int { return status.RankOf(r.Status) }),
	ColumnOrigin:       byText(func(r ReservationRow) string { return string(r.OriginBucket()) }),
	ColumnPickupDate: func(a, b ReservationRow) int {
		ad, aok := parseDate(a.PickupDate)
		bd, bok := parseDate(b.PickupDate)
		switch {
		case aok && bok:
			return ad.Compare(bd)
		case aok:
			return -1
		case bok:
			return 1
		}
		return strings.Compare(a.PickupDate, b.PickupDate)
	},
	ColumnPickupTime: byNumber(func(r ReservationRow) int { return ParseTimeOfDay(r.PickupTime) }),
	ColumnPassenger:  byText(func(r ReservationRow) string { return r.PassengerName }),
	ColumnDriver:     byText(func(r ReservationRow) string { return r.DriverName }),
	ColumnVehicle:    byText(func(r ReservationRow) string { return r.VehiclePlate }),
	ColumnPickup:     byText(func(r ReservationRow) string { return r.PickupAddr }),
	ColumnDropoff:    byText(func(r ReservationRow) string { return r.DropoffAddr }),
	ColumnCompany:    byText(func(r ReservationRow) string { return r.OriginCompany }),
	ColumnPassengers: byNumber(func(r ReservationRow) int { return r.Passengers }),
	ColumnLuggage:    byNumber(func(r ReservationRow) int { return r.Luggage }),
}

// Sortable reports whether the column can be selected
func Sortable(column Column) bool {
	_, ok := comparators[column]
	return ok
}

// ColumnSort is the user selected column sort, the zero value sorts with Compare
type ColumnSort struct {
	Column     Column `json:"column"`
	Descending bool   `json:"descending"`
}

// Select returns the sort after the column header was clicked, clicking the selected column
// flips the direction while a new column starts out ascending
func (s ColumnSort) Select(column Column) ColumnSort {
	if s.Column == column {
		return ColumnSort{Column: column, Descending: !s.Descending}
	}
	return ColumnSort{Column: column}
}

// SortRows returns a sorted copy of the rows, ties on the selected column fall back to Compare
func SortRows(rows []ReservationRow, sort ColumnSort) []ReservationRow {
	sorted := slices.Clone(rows)

	by, ok := comparators[sort.Column]
	if !ok {
		slices.SortFunc(sorted, Compare)
		return sorted
	}

	slices.SortFunc(sorted, func(a, b ReservationRow) int {
		c := by(a, b)
		if sort.Descending {
			c = -c
		}
		if c != 0 {
			return c
		}
		return Compare(a, b)
	})
	return sorted
}
