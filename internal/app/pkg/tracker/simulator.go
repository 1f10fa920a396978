package tracker

import (
	"fmt"
	"math"
	"time"

	"github.com/MichaelTJones/pcg"
)

const kmPerDegree = 111.32

// Bounds is the rectangle the simulated fleet is kept in
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains reports whether the coordinate is inside the rectangle
func (b Bounds) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// SimulatorConfig configures the simulated fleet
type SimulatorConfig struct {
	Bounds Bounds
	// Fleet is the number of simulated vehicles
	Fleet int
	// TurnProbability is the chance per tick that a vehicle changes its heading
	TurnProbability float64
	// MaxTurn is the largest heading change in degrees
	MaxTurn float64
	// MinStep and MaxStep bound the distance in degrees a vehicle moves per tick
	MinStep float64
	MaxStep float64
	// Tick is the wall clock duration of one step, used to report speeds
	Tick time.Duration
	Seed int64
}

// DefaultSimulatorConfig returns the simulator configuration used by the service
func DefaultSimulatorConfig() SimulatorConfig {
	return SimulatorConfig{
		Bounds: Bounds{
			MinLat: 40.700,
			MaxLat: 40.800,
			MinLon: -74.020,
			MaxLon: -73.930,
		},
		Fleet:           5,
		TurnProbability: 0.2,
		MaxTurn:         30,
		MinStep:         0.0002,
		MaxStep:         0.0006,
		Tick:            3 * time.Second,
		Seed:            time.Now().UnixNano(),
	}
}

type vehicle struct {
	id      string
	lat     float64
	lon     float64
	heading float64
	step    float64
	status  Occupancy
}

// Simulator moves a fixed fleet inside a rectangle. It does no I/O and never fails
type Simulator struct {
	cfg      SimulatorConfig
	r        *pcg.PCG32
	vehicles []*vehicle
}

// NewSimulator creates the fleet at random positions inside the bounds
func NewSimulator(cfg SimulatorConfig) *Simulator {
	if cfg.Tick <= 0 {
		cfg.Tick = 3 * time.Second
	}
	if cfg.MaxStep < cfg.MinStep {
		cfg.MaxStep = cfg.MinStep
	}

	s := &Simulator{
		cfg: cfg,
		r:   pcg.NewPCG32(),
	}
	s.r.Seed(uint64(cfg.Seed), 0xda3e39cb94b95bdb)

	b := cfg.Bounds
	statuses := []Occupancy{Available, Occupied}
	for i := 0; i < cfg.Fleet; i++ {
		s.vehicles = append(s.vehicles, &vehicle{
			id:      fmt.Sprintf("D-%d", i+1),
			lat:     b.MinLat + s.float()*(b.MaxLat-b.MinLat),
			lon:     b.MinLon + s.float()*(b.MaxLon-b.MinLon),
			heading: s.float() * 360,
			step:    cfg.MinStep + s.float()*(cfg.MaxStep-cfg.MinStep),
			status:  statuses[i%len(statuses)],
		})
	}

	return s
}

// float returns a random number in [0, 1)
func (s *Simulator) float() float64 {
	return float64(s.r.Random()) / (1 << 32)
}

// Step advances every vehicle by one tick. The heading is a compass bearing, so a vehicle
// moves by (cos h, sin h) * step on (lat, lon). A vehicle that leaves the bounds has its
// heading reflected off the violated edge and is clamped back inside
func (s *Simulator) Step() {
	b := s.cfg.Bounds

	for _, v := range s.vehicles {
		rad := v.heading * math.Pi / 180
		v.lat += math.Cos(rad) * v.step
		v.lon += math.Sin(rad) * v.step

		if s.float() < s.cfg.TurnProbability {
			v.heading += (s.float()*2 - 1) * s.cfg.MaxTurn
		}

		if v.lat < b.MinLat || v.lat > b.MaxLat {
			v.heading = 180 - v.heading
			v.lat = math.Min(math.Max(v.lat, b.MinLat), b.MaxLat)
		}
		if v.lon < b.MinLon || v.lon > b.MaxLon {
			v.heading = -v.heading
			v.lon = math.Min(math.Max(v.lon, b.MinLon), b.MaxLon)
		}

		v.heading = normalizeHeading(v.heading)
	}
}

// Positions returns the current position of every simulated vehicle
func (s *Simulator) Positions() []VehiclePosition {
	kmh := 3600 / s.cfg.Tick.Seconds() * kmPerDegree

	positions := make([]VehiclePosition, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		positions = append(positions, VehiclePosition{
			ID:      v.id,
			Lat:     v.lat,
			Lon:     v.lon,
			Heading: v.heading,
			Speed:   v.step * kmh,
			Status:  v.status,
			Source:  Simulated,
		})
	}
	return positions
}

func normalizeHeading(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
