// Package tracker maintains the vehicle positions shown on the map surfaces, either from a
// local motion simulator or from polling live telemetry
package tracker

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Mode is the source of the vehicle positions
type Mode string

const (
	// Simulated moves a fixed fleet with the local simulator
	Simulated Mode = "simulated"
	// Live polls the telemetry store
	Live Mode = "live"
)

// ParseMode parses the persisted mode preference, anything unknown is simulated
func ParseMode(value string) (Mode, bool) {
	switch Mode(value) {
	case Simulated, Live:
		return Mode(value), true
	default:
		return Simulated, false
	}
}

// Occupancy is the availability of a vehicle
type Occupancy string

const (
	Available Occupancy = "available"
	Occupied  Occupancy = "occupied"
	Offline   Occupancy = "offline"
)

// VehiclePosition is the last known position of a driver or vehicle
type VehiclePosition struct {
	ID         string    `json:"id"`
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	Heading    float64   `json:"heading"`
	Speed      float64   `json:"speed"`
	Status     Occupancy `json:"status"`
	Source     Mode      `json:"source"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Valid reports whether the position can be rendered
func (p VehiclePosition) Valid() bool {
	if p.ID == "" {
		return false
	}
	for _, v := range []float64{p.Lat, p.Lon, p.Heading, p.Speed} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// TelemetrySource returns the most recent position of every vehicle that reports one, an
// empty result is a normal outcome
type TelemetrySource interface {
	Latest(ctx context.Context) ([]VehiclePosition, error)
}

// Op is a marker command operation
type Op string

const (
	// Upsert creates the marker or updates it in place
	Upsert Op = "upsert"
	// Remove deletes a single marker
	Remove Op = "remove"
	// Clear deletes every marker of the surface
	Clear Op = "clear"
	// Notice shows a placeholder popup, an empty message dismisses it
	Notice Op = "notice"
)

// Marker is the render ready representation of a vehicle
type Marker struct {
	ID          string    `json:"id"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	Heading     float64   `json:"heading"`
	Status      Occupancy `json:"status"`
	Source      Mode      `json:"source"`
	Icon        string    `json:"icon"`
	Popup       string    `json:"popup"`
	Highlighted bool      `json:"highlighted"`
}

// MarkerCommand is sent to every sink
type MarkerCommand struct {
	Op      Op      `json:"op"`
	Marker  *Marker `json:"marker,omitempty"`
	ID      string  `json:"id,omitempty"`
	Message string  `json:"message,omitempty"`
}

// Sink is a map surface that renders markers
type Sink interface {
	Surface() string
	Apply(cmd MarkerCommand)
}

func markerFor(p VehiclePosition, highlighted bool) Marker {
	icon := "car-" + string(p.Status)
	if p.Status == "" {
		icon = "car"
	}
	if highlighted {
		icon = "car-highlighted"
	}

	return Marker{
		ID:          p.ID,
		Lat:         p.Lat,
		Lon:         p.Lon,
		Heading:     p.Heading,
		Status:      p.Status,
		Source:      p.Source,
		Icon:        icon,
		Popup:       popup(p),
		Highlighted: highlighted,
	}
}

func popup(p VehiclePosition) string {
	text := fmt.Sprintf("%s · %s · %.0f km/h", p.ID, p.Status, p.Speed)
	if p.Source == Live && !p.RecordedAt.IsZero() {
		text += " · " + p.RecordedAt.UTC().Format("15:04:05")
	}
	return text
}
