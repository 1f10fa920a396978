// Seed the live telemetry cache with simulated drivers for testing the live tracker
package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	_lib "github.com/flitlabs/dispatch_tracker/internal/app/pkg/lib"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/status"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/tracker"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/types"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/connections"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/env"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	e         env.Env
	connector connections.C
)

func init() {
	e.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr,
	})

	connector.InitRedis(&e)
}

func main() {
	fleet := 5
	if len(os.Args) == 2 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n <= 0 {
			log.Debug().Msg("please provide a valid fleet size")
			return
		}
		fleet = n
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := tracker.DefaultSimulatorConfig()
	cfg.Fleet = fleet
	cfg.Tick = e.PollInterval
	sim := tracker.NewSimulator(cfg)

	client := connector.R.DB
	defer client.Close()

	ticker := time.NewTicker(e.PollInterval)
	defer ticker.Stop()

	for {
		for _, p := range sim.Positions() {
			job := int64(status.NotAccepted)
			if p.Status == tracker.Occupied {
				job = int64(status.OnTheWay)
			}
			lat, lon := p.Lat, p.Lon
			heading, speed, at := p.Heading, p.Speed, time.Now().UnixMilli()

			payload, err := sonic.MarshalString(types.LocationUpdate{
				Lat:        &lat,
				Lon:        &lon,
				Heading:    &heading,
				Speed:      &speed,
				Status:     &job,
				RecordedAt: &at,
			})
			if err != nil {
				log.Error().Err(err).Msg("failed to marshal the location")
				return
			}

			if err := client.Set(ctx, _lib.L(p.ID), payload, time.Minute).Err(); err != nil {
				log.Error().Err(err).Str("driver", p.ID).Msg("failed to cache the location")
				return
			}
			if err := client.SAdd(ctx, e.ActiveDriversKey, p.ID).Err(); err != nil {
				log.Error().Err(err).Str("driver", p.ID).Msg("failed to mark the driver as active")
				return
			}
		}
		log.Info().Int("fleet", fleet).Msg("cached the simulated locations")

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sim.Step()
		}
	}
}
