// Dispatch status and tracking engine
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/grid"
	_lib "github.com/flitlabs/dispatch_tracker/internal/app/pkg/lib"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/routes"
	_services "github.com/flitlabs/dispatch_tracker/internal/app/pkg/services"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/sinks"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/store"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/tokens"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/tracker"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/connections"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/enums"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/env"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/lib"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/schedule"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	e         env.Env
	connector connections.C
)

func init() {
	e.Load()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if enums.Env(e.Env) == enums.Dev {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out: os.Stderr,
		})
	}

	connector.InitRedis(&e)
	connector.InitDB(&e)
	connector.InitKafkaWriters(&e)
}

func telemetry() tracker.TelemetrySource {
	if e.TelemetrySource == "redis" {
		return store.NewRedisTelemetry(connector.R.DB, e.ActiveDriversKey)
	}
	return &store.SQLTelemetry{DB: connector.DB}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer connector.Close()

	preferences := &store.Preferences{
		Client: connector.R.DB,
		Key:    e.PreferencesKey,
	}
	settings, err := preferences.Load(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read the preferences, using the defaults")
	}

	simulator := tracker.DefaultSimulatorConfig()
	simulator.Tick = e.SimTick

	tr := tracker.New(tracker.Config{
		Mode:         settings.Mode,
		SimTick:      e.SimTick,
		PollInterval: e.PollInterval,
	}, schedule.NewTicker(), tracker.NewSimulator(simulator), telemetry())

	hubs := map[enums.Surface]*sinks.Hub{}
	for _, surface := range enums.Surfaces {
		hubs[surface] = sinks.NewHub(string(surface))
		tr.Register(hubs[surface])
	}

	markerLog := sinks.NewKafka(connector.K.Markers, 1024)
	go markerLog.Run(ctx)
	tr.Register(markerLog)

	tr.Start(ctx)
	defer tr.Stop()

	engine := &_lib.Engine{
		Grid:        grid.New(settings.Filters),
		Store:       &store.SQLReservations{DB: connector.DB},
		Tracker:     tr,
		Hubs:        hubs,
		Preferences: preferences,
		Admin:       &tokens.AdminToken{E: &e},
		Export: func(ctx context.Context, view grid.View) (string, error) {
			return _services.ExportGrid(ctx, &e, &connector, view)
		},
		Log: func(data interface{}) {
			services.Log(&connector, data)
		},
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-CSRF-Token"},
	}))
	router.Use(httprate.LimitByIP(300, time.Minute))

	router.Mount("/", routes.Router(&e, &connector, engine))

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", e.Port),
		Handler: router,
	}

	go func() {
		<-ctx.Done()

		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdown); err != nil {
			log.Error().Err(err).Msg("failed to shutdown the server gracefully")
		}
	}()

	logger.Log(fmt.Sprintf("Listening and running on port -> %d", e.Port))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lib.LogFatal(err)
	}
}
