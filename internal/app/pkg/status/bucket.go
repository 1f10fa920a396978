package status

import "github.com/rs/zerolog/log"

// Bucket is the status axis of the grid filters
type Bucket string

const (
	// Active is every trip that is still in play
	Active Bucket = "active"
	// Settled is every trip in a terminal state
	Settled Bucket = "settled"
	// QuoteBucket is the price quotes
	QuoteBucket Bucket = "quote"
)

var settled = map[Key]struct{}{
	Completed:        {},
	FarmOutCompleted: {},
	Cancelled:        {},
	NoShow:           {},
}

// BucketOf classifies the key on the status axis, blank and unknown keys are active
func BucketOf(key Key) Bucket {
	if key == Quote {
		return QuoteBucket
	}
	if _, ok := settled[key]; ok {
		return Settled
	}
	return Active
}

// Origin is where the driver assignment of a reservation originates
type Origin string

const (
	// OriginInHouse is dispatched to the in-house fleet
	OriginInHouse Origin = "in_house"
	// OriginFarmIn is received from an affiliate
	OriginFarmIn Origin = "farm_in"
	// OriginFarmOut is handed to an affiliate
	OriginFarmOut Origin = "farm_out"
)

var origins = map[string]Origin{
	"in_house":      OriginInHouse,
	"inhouse":       OriginInHouse,
	"house":         OriginInHouse,
	"internal":      OriginInHouse,
	"own":           OriginInHouse,
	"own_fleet":     OriginInHouse,
	"direct":        OriginInHouse,
	"farm_in":       OriginFarmIn,
	"farmin":        OriginFarmIn,
	"farmed_in":     OriginFarmIn,
	"affiliate_in":  OriginFarmIn,
	"received":      OriginFarmIn,
	"incoming":      OriginFarmIn,
	"farm_out":      OriginFarmOut,
	"farmout":       OriginFarmOut,
	"farmed_out":    OriginFarmOut,
	"affiliate":     OriginFarmOut,
	"affiliate_out": OriginFarmOut,
	"outsourced":    OriginFarmOut,
	"outgoing":      OriginFarmOut,
}

// CanonicalOrigin maps a raw origin to its canonical value. Blank and unrecognized origins
// fall back to in house, ok is false for unrecognized non blank origins
func CanonicalOrigin(raw string) (origin Origin, ok bool) {
	normalized := Normalize(raw)
	if normalized == "" {
		return OriginInHouse, true
	}

	origin, ok = origins[normalized]
	if !ok {
		log.Debug().
			Str("raw", raw).
			Str("normalized", normalized).
			Msg("unrecognized origin, falling back to in house")
		return OriginInHouse, false
	}
	return origin, true
}
