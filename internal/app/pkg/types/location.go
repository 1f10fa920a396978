// Package types contains the wire types shared with the driver app
package types

import (
	"time"

	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/status"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/tracker"
)

// LocationUpdate is the last location of a driver as cached by the driver app.
// The Lat and Lon fields must be present and are validated as latitude and longitude respectively.
// Status, if provided, must be one of the job status codes 0 to 5
type LocationUpdate struct {
	Accuracy   *float64 `json:"accuracy"`
	Status     *int64   `json:"status" validate:"omitempty,oneof=0 1 2 3 4 5"`
	Heading    *float64 `json:"heading"`
	Speed      *float64 `json:"speed"`
	RecordedAt *int64   `json:"recorded_at"`
	Lat        *float64 `json:"lat" validate:"required,latitude"`
	Lon        *float64 `json:"lon" validate:"required,longitude"`
}

// ToPosition converts the update of the given driver into a live vehicle position
func (location *LocationUpdate) ToPosition(driverID string) tracker.VehiclePosition {
	p := tracker.VehiclePosition{
		ID:     driverID,
		Status: tracker.Available,
		Source: tracker.Live,
	}

	if location.Lat != nil {
		p.Lat = *location.Lat
	}
	if location.Lon != nil {
		p.Lon = *location.Lon
	}
	if location.Heading != nil {
		p.Heading = *location.Heading
	}
	if location.Speed != nil {
		p.Speed = *location.Speed
	}
	if location.Status != nil && status.JobStatus(*location.Status).Busy() {
		p.Status = tracker.Occupied
	}
	if location.RecordedAt != nil {
		p.RecordedAt = time.UnixMilli(*location.RecordedAt)
	}

	return p
}
