package grid

import (
	"strings"

	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/status"
)

// FilterState contains the toggles of the dispatch grid. A row is visible when at least one
// toggle on the status axis and one toggle on the origin axis allow it
type FilterState struct {
	Active  bool `json:"active"`
	Settled bool `json:"settled"`
	Quote   bool `json:"quote"`

	InHouse bool `json:"in_house"`
	FarmIn  bool `json:"farm_in"`
	FarmOut bool `json:"farm_out"`
}

// AllFilters returns a filter state with every toggle checked
func AllFilters() FilterState {
	return FilterState{
		Active:  true,
		Settled: true,
		Quote:   true,
		InHouse: true,
		FarmIn:  true,
		FarmOut: true,
	}
}

// AllowsStatus reports whether the status bucket is checked
func (f FilterState) AllowsStatus(bucket status.Bucket) bool {
	switch bucket {
	case status.Settled:
		return f.Settled
	case status.QuoteBucket:
		return f.Quote
	default:
		return f.Active
	}
}

// AllowsOrigin reports whether the origin bucket is checked
func (f FilterState) AllowsOrigin(origin status.Origin) bool {
	switch origin {
	case status.OriginFarmIn:
		return f.FarmIn
	case status.OriginFarmOut:
		return f.FarmOut
	default:
		return f.InHouse
	}
}

// Allows reports whether the row passes both axes
func (f FilterState) Allows(row ReservationRow) bool {
	return f.AllowsStatus(row.StatusBucket()) && f.AllowsOrigin(row.OriginBucket())
}

// ApplyFilters returns the rows that pass the filters in their original order, the input
// slice is never modified
func ApplyFilters(rows []ReservationRow, filters FilterState) []ReservationRow {
	visible := make([]ReservationRow, 0, len(rows))
	for _, row := range rows {
		if filters.Allows(row) {
			visible = append(visible, row)
		}
	}
	return visible
}

// Search narrows the rows to the ones that contain the term in any of the searchable fields,
// ignoring case. An empty term returns the rows as is
func Search(rows []ReservationRow, term string) []ReservationRow {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return rows
	}

	matched := make([]ReservationRow, 0, len(rows))
	for _, row := range rows {
		for _, field := range searchable(row) {
			if strings.Contains(strings.ToLower(field), term) {
				matched = append(matched, row)
				break
			}
		}
	}
	return matched
}

func searchable(row ReservationRow) []string {
	return []string{
		row.Confirmation,
		row.PassengerName,
		row.DriverName,
		row.PickupAddr,
		row.DropoffAddr,
		row.OriginCompany,
		status.MetadataFor(row.Status).Label,
	}
}
