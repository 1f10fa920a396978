// Package grid filters and orders the reservations shown in the dispatch table
package grid

import (
	"strings"
	"time"

	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/status"
)

// Record is a reservation as returned by the reservation store, every field can be missing
type Record struct {
	ID            *string
	Confirmation  *string
	Status        *string
	Origin        *string
	PickupDate    *string
	PickupTime    *string
	DriverID      *string
	DriverName    *string
	VehicleID     *string
	VehiclePlate  *string
	PassengerName *string
	PickupAddr    *string
	DropoffAddr   *string
	OriginCompany *string
	Passengers    *int
	Luggage       *int
}

// ReservationRow is one trip in the dispatch grid
type ReservationRow struct {
	ID            string        `json:"id"`
	Confirmation  string        `json:"confirmation"`
	Status        status.Key    `json:"status"`
	RawStatus     string        `json:"raw_status"`
	Origin        status.Origin `json:"origin"`
	PickupDate    string        `json:"pickup_date"`
	PickupTime    string        `json:"pickup_time"`
	DriverID      string        `json:"driver_id"`
	DriverName    string        `json:"driver_name"`
	VehicleID     string        `json:"vehicle_id"`
	VehiclePlate  string        `json:"vehicle_plate"`
	PassengerName string        `json:"passenger_name"`
	PickupAddr    string        `json:"pickup"`
	DropoffAddr   string        `json:"dropoff"`
	OriginCompany string        `json:"origin_company"`
	Passengers    int           `json:"passengers"`
	Luggage       int           `json:"luggage"`
}

// FromRecord maps a store record to a grid row
func FromRecord(r Record) ReservationRow {
	raw := str(r.Status)
	origin, _ := status.CanonicalOrigin(str(r.Origin))

	return ReservationRow{
		ID:            str(r.ID),
		Confirmation:  str(r.Confirmation),
		Status:        status.Canonicalize(raw),
		RawStatus:     raw,
		Origin:        origin,
		PickupDate:    str(r.PickupDate),
		PickupTime:    str(r.PickupTime),
		DriverID:      str(r.DriverID),
		DriverName:    str(r.DriverName),
		VehicleID:     str(r.VehicleID),
		VehiclePlate:  str(r.VehiclePlate),
		PassengerName: str(r.PassengerName),
		PickupAddr:    str(r.PickupAddr),
		DropoffAddr:   str(r.DropoffAddr),
		OriginCompany: str(r.OriginCompany),
		Passengers:    num(r.Passengers),
		Luggage:       num(r.Luggage),
	}
}

// FromRecords maps every record, records without an identity are skipped
func FromRecords(records []Record) []ReservationRow {
	rows := make([]ReservationRow, 0, len(records))
	for _, r := range records {
		row := FromRecord(r)
		if row.Key() == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// Key is the identity of the row, the confirmation number or the record id if there is none
func (r ReservationRow) Key() string {
	if r.Confirmation != "" {
		return r.Confirmation
	}
	return r.ID
}

// StatusBucket classifies the row on the status axis
func (r ReservationRow) StatusBucket() status.Bucket {
	return status.BucketOf(r.Status)
}

// OriginBucket classifies the row on the origin axis
func (r ReservationRow) OriginBucket() status.Origin {
	switch r.Origin {
	case status.OriginFarmIn, status.OriginFarmOut:
		return r.Origin
	default:
		return status.OriginInHouse
	}
}

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// PickupAt parses the pickup date and time, ok is false if either one cannot be parsed
func (r ReservationRow) PickupAt() (t time.Time, ok bool) {
	date, ok := parseDate(r.PickupDate)
	if !ok {
		return time.Time{}, false
	}
	minutes, ok := parseClock(r.PickupTime)
	if !ok {
		return time.Time{}, false
	}

	return date.Add(time.Duration(minutes) * time.Minute), true
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func num(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
