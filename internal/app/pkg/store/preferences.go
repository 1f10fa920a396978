package store

import (
	"context"
	"strconv"

	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/grid"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/tracker"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Fields of the preference hash
const (
	FieldTrackerMode   = "tracker_mode"
	FieldFilterActive  = "filter_active"
	FieldFilterSettled = "filter_settled"
	FieldFilterQuote   = "filter_quote"
	FieldFilterInHouse = "filter_in_house"
	FieldFilterFarmIn  = "filter_farm_in"
	FieldFilterFarmOut = "filter_farm_out"
)

// Settings are the operator preferences the engine starts with
type Settings struct {
	Mode    tracker.Mode
	Filters grid.FilterState
}

// DefaultSettings is used for every preference that is missing or invalid
func DefaultSettings() Settings {
	return Settings{
		Mode:    tracker.Simulated,
		Filters: grid.AllFilters(),
	}
}

// ParseSettings reads the settings from the fields of the preference hash
func ParseSettings(fields map[string]string) Settings {
	settings := DefaultSettings()

	if value, ok := fields[FieldTrackerMode]; ok {
		mode, valid := tracker.ParseMode(value)
		if !valid {
			log.Warn().Str("value", value).Msg("invalid tracker mode preference, using simulated")
		}
		settings.Mode = mode
	}

	toggles := map[string]*bool{
		FieldFilterActive:  &settings.Filters.Active,
		FieldFilterSettled: &settings.Filters.Settled,
		FieldFilterQuote:   &settings.Filters.Quote,
		FieldFilterInHouse: &settings.Filters.InHouse,
		FieldFilterFarmIn:  &settings.Filters.FarmIn,
		FieldFilterFarmOut: &settings.Filters.FarmOut,
	}
	for field, toggle := range toggles {
		value, ok := fields[field]
		if !ok {
			continue
		}

		enabled, err := strconv.ParseBool(value)
		if err != nil {
			log.Warn().Str("field", field).Str("value", value).Msg("invalid filter preference, using the default")
			continue
		}
		*toggle = enabled
	}

	return settings
}

// Preferences is the redis hash that holds the operator preferences
type Preferences struct {
	Client *redis.Client
	Key    string
}

// Load reads the preferences, the defaults are returned along with the error when redis
// cannot be reached
func (p *Preferences) Load(ctx context.Context) (Settings, error) {
	fields, err := p.Client.HGetAll(ctx, p.Key).Result()
	if err != nil {
		return DefaultSettings(), err
	}

	return ParseSettings(fields), nil
}

// SaveMode persists the tracker mode for the next start
func (p *Preferences) SaveMode(ctx context.Context, mode tracker.Mode) error {
	return p.Client.HSet(ctx, p.Key, FieldTrackerMode, string(mode)).Err()
}

// SaveFilters persists the filter toggles for the next start
func (p *Preferences) SaveFilters(ctx context.Context, filters grid.FilterState) error {
	return p.Client.HSet(ctx, p.Key,
		FieldFilterActive, strconv.FormatBool(filters.Active),
		FieldFilterSettled, strconv.FormatBool(filters.Settled),
		FieldFilterQuote, strconv.FormatBool(filters.Quote),
		FieldFilterInHouse, strconv.FormatBool(filters.InHouse),
		FieldFilterFarmIn, strconv.FormatBool(filters.FarmIn),
		FieldFilterFarmOut, strconv.FormatBool(filters.FarmOut),
	).Err()
}
