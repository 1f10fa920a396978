package tracker

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	errs "github.com/flitlabs/dispatch_tracker/internal/pkg/errors"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/schedule"
	"github.com/rs/zerolog/log"
)

const (
	// NoLiveData is shown when the telemetry store has no positions
	NoLiveData = "No live data: no drivers are currently reporting a position"
	// LiveUnavailable is shown when the telemetry store cannot be queried
	LiveUnavailable = "No live data: live telemetry is unavailable, retrying"
	// LiveNotProvisioned is shown when the telemetry table does not exist yet
	LiveNotProvisioned = "Live tracking is not set up yet: the driver location table has not been provisioned. Create it or switch the tracker to simulated mode"
)

// Config configures the tracker
type Config struct {
	Mode         Mode
	SimTick      time.Duration
	PollInterval time.Duration
	PollTimeout  time.Duration
}

// Tracker holds the vehicle positions of the active mode and publishes marker commands to the
// registered sinks. Exactly one mode is active at a time, switching modes stops the timer of
// the previous mode and clears every marker it drew
type Tracker struct {
	mu sync.Mutex

	cfg       Config
	sched     schedule.Scheduler
	sim       *Simulator
	telemetry TelemetrySource
	sinks     []Sink

	ctx     context.Context
	running bool
	mode    Mode
	// epoch changes on every mode switch and on Stop, polls started in an older epoch are discarded
	epoch     uint64
	pollSeq   uint64
	committed uint64
	task      schedule.Task

	positions map[string]VehiclePosition
	drawn     map[string]Marker
	// drawnMode is the mode the current markers belong to
	drawnMode   Mode
	highlighted string
	notice      string
}

// New creates a tracker, it does nothing until Start is called
func New(cfg Config, sched schedule.Scheduler, sim *Simulator, telemetry TelemetrySource) *Tracker {
	if cfg.Mode == "" {
		cfg.Mode = Simulated
	}
	if cfg.SimTick <= 0 {
		cfg.SimTick = 3 * time.Second
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.PollTimeout <= 0 || cfg.PollTimeout > cfg.PollInterval {
		cfg.PollTimeout = cfg.PollInterval
	}

	return &Tracker{
		cfg:       cfg,
		sched:     sched,
		sim:       sim,
		telemetry: telemetry,
		mode:      cfg.Mode,
		positions: map[string]VehiclePosition{},
		drawn:     map[string]Marker{},
	}
}

// Register adds a sink, a sink registered while the tracker is running receives the current
// markers right away
func (t *Tracker) Register(sink Sink) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sinks = append(t.sinks, sink)
	if !t.running {
		return
	}

	sink.Apply(MarkerCommand{Op: Clear})
	for _, m := range t.markersLocked() {
		m := m
		sink.Apply(MarkerCommand{Op: Upsert, Marker: &m, ID: m.ID})
	}
	if t.notice != "" {
		sink.Apply(MarkerCommand{Op: Notice, Message: t.notice})
	}
}

// Start activates the configured mode, in live mode the first poll happens before Start returns
func (t *Tracker) Start(ctx context.Context) {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return
	}
	t.running = true
	t.ctx = ctx
	t.epoch++
	if t.drawnMode != "" && t.drawnMode != t.mode {
		t.clearLocked()
	}
	t.activateLocked()
	mode := t.mode
	t.mu.Unlock()

	log.Info().Str("mode", string(mode)).Msg("tracker started")
	if mode == Live {
		t.Poll()
	}
}

// Stop cancels the timer of the active mode, polls that are in flight are discarded
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return
	}
	t.running = false
	t.epoch++
	if t.task != nil {
		t.task.Stop()
		t.task = nil
	}
	log.Info().Msg("tracker stopped")
}

// SetMode switches the source of the positions. Markers of the previous mode are cleared
// before the markers of the new mode are drawn
func (t *Tracker) SetMode(mode Mode) {
	t.mu.Lock()
	if mode == t.mode {
		t.mu.Unlock()
		return
	}

	previous := t.mode
	t.mode = mode
	if !t.running {
		t.mu.Unlock()
		return
	}

	t.epoch++
	if t.task != nil {
		t.task.Stop()
		t.task = nil
	}

	t.clearLocked()
	t.activateLocked()
	t.mu.Unlock()

	log.Info().Str("from", string(previous)).Str("to", string(mode)).Msg("tracker mode switched")
	if mode == Live {
		t.Poll()
	}
}

// clearLocked removes every marker of the previous mode and dismisses its notice
func (t *Tracker) clearLocked() {
	t.positions = map[string]VehiclePosition{}
	t.drawn = map[string]Marker{}
	t.emitLocked(MarkerCommand{Op: Clear})
	t.noticeLocked("")
}

func (t *Tracker) activateLocked() {
	t.drawnMode = t.mode
	switch t.mode {
	case Live:
		t.task = t.sched.Every(t.cfg.PollInterval, t.Poll)
	default:
		t.replaceLocked(t.sim.Positions())
		t.task = t.sched.Every(t.cfg.SimTick, t.tick)
	}
}

func (t *Tracker) tick() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running || t.mode != Simulated {
		return
	}
	t.sim.Step()
	t.replaceLocked(t.sim.Positions())
}

// Poll queries the telemetry source once and replaces the live positions. The result is only
// applied if the tracker is still in the live mode it was in when the poll started
func (t *Tracker) Poll() {
	t.mu.Lock()
	if !t.running || t.mode != Live {
		t.mu.Unlock()
		return
	}
	epoch := t.epoch
	t.pollSeq++
	seq := t.pollSeq
	ctx, cancel := context.WithTimeout(t.ctx, t.cfg.PollTimeout)
	t.mu.Unlock()
	defer cancel()

	positions, err := t.telemetry.Latest(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running || t.mode != Live || epoch != t.epoch || seq < t.committed {
		log.Debug().Uint64("poll", seq).Msg("discarding a stale telemetry poll")
		return
	}
	t.committed = seq

	if err != nil {
		if errors.Is(err, errs.ErrTelemetryNotProvisioned) {
			log.Warn().Err(err).Msg("live telemetry has not been provisioned")
			t.noticeLocked(LiveNotProvisioned)
			return
		}
		log.Error().Err(err).Msg("failed to poll the live telemetry")
		t.noticeLocked(LiveUnavailable)
		return
	}

	valid := make([]VehiclePosition, 0, len(positions))
	for _, p := range positions {
		if !p.Valid() {
			log.Debug().Str("id", p.ID).Float64("lat", p.Lat).Float64("lon", p.Lon).Msg("skipping an invalid live position")
			continue
		}
		p.Source = Live
		valid = append(valid, p)
	}

	t.replaceLocked(valid)
	if len(valid) == 0 {
		t.noticeLocked(NoLiveData)
		return
	}
	t.noticeLocked("")
}

// Highlight elevates the marker of the vehicle after resetting every other highlighted marker,
// an empty id resets all of them. It reports whether the vehicle currently has a marker
func (t *Tracker) Highlight(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.highlighted = id
	for _, m := range t.markersLocked() {
		if m.Highlighted && m.ID != id {
			t.drawLocked(markerFor(t.positions[m.ID], false))
		}
	}

	p, ok := t.positions[id]
	if !ok {
		return false
	}
	t.drawLocked(markerFor(p, true))
	return true
}

// replaceLocked makes the given positions the complete set of markers
func (t *Tracker) replaceLocked(positions []VehiclePosition) {
	next := make(map[string]VehiclePosition, len(positions))
	for _, p := range positions {
		next[p.ID] = p
	}

	for _, m := range t.markersLocked() {
		if _, ok := next[m.ID]; !ok {
			delete(t.drawn, m.ID)
			t.emitLocked(MarkerCommand{Op: Remove, ID: m.ID})
		}
	}

	t.positions = next
	ids := make([]string, 0, len(next))
	for id := range next {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		t.drawLocked(markerFor(next[id], id == t.highlighted))
	}
}

// drawLocked upserts the marker unless the surfaces already show it
func (t *Tracker) drawLocked(m Marker) {
	if current, ok := t.drawn[m.ID]; ok && current == m {
		return
	}
	t.drawn[m.ID] = m
	t.emitLocked(MarkerCommand{Op: Upsert, Marker: &m, ID: m.ID})
}

func (t *Tracker) noticeLocked(message string) {
	if message == t.notice {
		return
	}
	t.notice = message
	t.emitLocked(MarkerCommand{Op: Notice, Message: message})
}

func (t *Tracker) emitLocked(cmd MarkerCommand) {
	for _, sink := range t.sinks {
		sink.Apply(cmd)
	}
}

func (t *Tracker) markersLocked() []Marker {
	markers := make([]Marker, 0, len(t.drawn))
	for _, m := range t.drawn {
		markers = append(markers, m)
	}
	slices.SortFunc(markers, func(a, b Marker) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return markers
}

// Mode returns the active mode
func (t *Tracker) Mode() Mode {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.mode
}

// Markers returns the markers that are currently drawn
func (t *Tracker) Markers() []Marker {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.markersLocked()
}

// Positions returns the positions of the active mode
func (t *Tracker) Positions() []VehiclePosition {
	t.mu.Lock()
	defer t.mu.Unlock()

	positions := make([]VehiclePosition, 0, len(t.positions))
	for _, p := range t.positions {
		positions = append(positions, p)
	}
	slices.SortFunc(positions, func(a, b VehiclePosition) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return positions
}

// Notice returns the placeholder message that is currently shown
func (t *Tracker) Notice() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.notice
}
