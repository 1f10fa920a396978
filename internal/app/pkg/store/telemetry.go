package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	mssql "github.com/denisenkom/go-mssqldb"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/status"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/tracker"
	errs "github.com/flitlabs/dispatch_tracker/internal/pkg/errors"
	"github.com/rs/zerolog/log"
)

// TelemetryTable is the table the driver app writes its locations to
const TelemetryTable = "Tbl_DriverLocations"

// sql server error number for an invalid object name
const invalidObject = 208

// SQLTelemetry reads the latest location of every driver from the telemetry table
type SQLTelemetry struct {
	DB *sql.DB

	provisioned atomic.Bool
}

// Latest returns the most recent location reported by each driver
func (s *SQLTelemetry) Latest(ctx context.Context) ([]tracker.VehiclePosition, error) {
	if !s.provisioned.Load() {
		ok, err := s.hasTable(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrTelemetryStore, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", errs.ErrTelemetryNotProvisioned, TelemetryTable)
		}
		s.provisioned.Store(true)
	}

	query := `WITH latest AS (
	SELECT
		locations.DriverId,
		locations.Latitude,
		locations.Longitude,
		locations.Heading,
		locations.Speed,
		locations.JobStatus,
		locations.RecordedAt,
		ROW_NUMBER() OVER (PARTITION BY locations.DriverId ORDER BY locations.RecordedAt DESC) AS n
	FROM
		Tbl_DriverLocations locations
)
SELECT DriverId, Latitude, Longitude, Heading, Speed, JobStatus, RecordedAt
FROM latest
WHERE n = 1`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		var merr mssql.Error
		if errors.As(err, &merr) && merr.Number == invalidObject {
			s.provisioned.Store(false)
			return nil, fmt.Errorf("%w: %w", errs.ErrTelemetryNotProvisioned, err)
		}
		return nil, fmt.Errorf("%w: %w", errs.ErrTelemetryStore, err)
	}
	defer rows.Close()

	positions := []tracker.VehiclePosition{}
	for rows.Next() {
		var (
			id         sql.NullString
			lat, lon   *float64
			heading    *float64
			speed      *float64
			job        *int64
			recordedAt *time.Time
		)
		if err := rows.Scan(&id, &lat, &lon, &heading, &speed, &job, &recordedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrTelemetryStore, err)
		}
		if !id.Valid || lat == nil || lon == nil {
			log.Warn().
				Str("driver", id.String).
				Msg("skipping a location without a driver or coordinates")
			continue
		}

		p := tracker.VehiclePosition{
			ID:      id.String,
			Lat:     *lat,
			Lon:     *lon,
			Heading: value(heading),
			Speed:   value(speed),
			Status:  occupancy(job),
			Source:  tracker.Live,
		}
		if recordedAt != nil {
			p.RecordedAt = *recordedAt
		}
		if !p.Valid() {
			log.Warn().
				Str("driver", p.ID).
				Float64("lat", p.Lat).
				Float64("lon", p.Lon).
				Msg("skipping an invalid location")
			continue
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrTelemetryStore, err)
	}

	return positions, nil
}

func (s *SQLTelemetry) hasTable(ctx context.Context) (bool, error) {
	query := `SELECT COUNT(1) FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_NAME = @Table`

	var count int
	err := s.DB.QueryRowContext(ctx, query, sql.Named("Table", TelemetryTable)).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func value(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// occupancy maps the job status reported by the driver app, drivers without one are available
func occupancy(job *int64) tracker.Occupancy {
	if job == nil {
		return tracker.Available
	}
	if status.JobStatus(*job).Busy() {
		return tracker.Occupied
	}
	return tracker.Available
}
