// Package status reconciles upstream trip/driver status strings into one canonical vocabulary
package status

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// Key is a canonical status key
type Key string

const (
	// Unassigned is a trip that has no driver yet
	Unassigned Key = "unassigned"
	// Offered is a trip that was offered to a driver who has not accepted it yet
	Offered Key = "offered"
	// Assigned is a trip that was accepted by an in-house driver
	Assigned Key = "assigned"
	// InHouse is a trip that was dispatched to the in-house fleet
	InHouse Key = "in_house"
	// EnRoute is when the driver is on the way to the pickup point
	EnRoute Key = "enroute"
	// Arrived is when the driver is in the pickup point
	Arrived Key = "arrived"
	// PassengerOnboard is when the passenger is onboard
	PassengerOnboard Key = "passenger_onboard"
	// Completed is when the trip is cleared by the driver
	Completed Key = "completed"
	// Declined is a trip that the offered driver turned down
	Declined Key = "declined"
	// Cancelled is a trip that was cancelled by the customer or the dispatcher
	Cancelled Key = "cancelled"
	// NoShow is a trip where the passenger never turned up
	NoShow Key = "no_show"
	// Quote is a price quote that has not been booked yet
	Quote Key = "quote"

	// FarmOutOffered is a trip offered to an affiliate
	FarmOutOffered Key = "farmout_offered"
	// FarmOutAssigned is a trip accepted by an affiliate
	FarmOutAssigned Key = "farmout_assigned"
	// FarmOutDeclined is a trip the affiliate turned down
	FarmOutDeclined Key = "farmout_declined"
	// FarmOutCompleted is a trip the affiliate reported as done
	FarmOutCompleted Key = "farmout_completed"
	// FarmInAssigned is a trip received from an affiliate and assigned to an in-house driver
	FarmInAssigned Key = "farmin_assigned"
)

// Normalize lower-cases the raw string, replaces every run of characters outside [a-z0-9]
// with a single underscore and trims underscores from both ends
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	pending := false
	for _, r := range strings.ToLower(raw) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}

	return b.String()
}

// Canonicalize maps a raw upstream status to its canonical key. Strings that are not in the
// alias table keep their normalized form, an empty input results in an empty key
func Canonicalize(raw string) Key {
	if raw == "" {
		return ""
	}

	normalized := Normalize(raw)
	if normalized == "" {
		return Unassigned
	}

	if key, ok := aliases[normalized]; ok {
		return key
	}

	log.Debug().
		Str("raw", raw).
		Str("normalized", normalized).
		Msg("unrecognized status, using the normalized key")
	return Key(normalized)
}

// Known reports whether the key is a member of the canonical set
func Known(key Key) bool {
	_, ok := ranks[key]
	return ok
}
