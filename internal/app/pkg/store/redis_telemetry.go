package store

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	_lib "github.com/flitlabs/dispatch_tracker/internal/app/pkg/lib"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/tracker"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/types"
	errs "github.com/flitlabs/dispatch_tracker/internal/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisTelemetry reads the last locations cached by the driver app, the drivers that are
// currently reporting are kept in a set
type RedisTelemetry struct {
	Client *redis.Client
	// ActiveDrivers is the key of the set of reporting drivers
	ActiveDrivers string

	v *validator.Validate
}

// NewRedisTelemetry creates a telemetry source over the given redis client
func NewRedisTelemetry(client *redis.Client, activeDrivers string) *RedisTelemetry {
	return &RedisTelemetry{
		Client:        client,
		ActiveDrivers: activeDrivers,
		v:             validator.New(),
	}
}

// Latest returns the last location of every active driver, drivers whose cached location is
// missing or malformed are skipped
func (s *RedisTelemetry) Latest(ctx context.Context) ([]tracker.VehiclePosition, error) {
	drivers, err := s.Client.SMembers(ctx, s.ActiveDrivers).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrTelemetryStore, err)
	}
	if len(drivers) == 0 {
		return []tracker.VehiclePosition{}, nil
	}

	keys := make([]string, 0, len(drivers))
	for _, driver := range drivers {
		keys = append(keys, _lib.L(driver))
	}

	values, err := s.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrTelemetryStore, err)
	}

	positions := make([]tracker.VehiclePosition, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}

		p, err := s.decode(drivers[i], raw)
		if err != nil {
			log.Warn().
				Err(err).
				Str("driver", drivers[i]).
				Msg("skipping a malformed cached location")
			continue
		}
		positions = append(positions, p)
	}

	return positions, nil
}

func (s *RedisTelemetry) decode(driverID, raw string) (tracker.VehiclePosition, error) {
	var location types.LocationUpdate
	if err := sonic.UnmarshalString(raw, &location); err != nil {
		return tracker.VehiclePosition{}, err
	}

	v := s.v
	if v == nil {
		v = validator.New()
	}
	if err := v.Struct(&location); err != nil {
		return tracker.VehiclePosition{}, err
	}

	return location.ToPosition(driverID), nil
}
