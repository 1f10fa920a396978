package status

// UnknownRank is the rank of every key outside the canonical set, it is larger than any
// real rank so unrecognized statuses sort last
const UnknownRank = 1 << 16

// order is the presentation order of the dispatch grid, trips that need a dispatcher come first
var order = []Key{
	Unassigned,
	Declined,
	FarmOutDeclined,
	Offered,
	FarmOutOffered,
	Assigned,
	InHouse,
	FarmInAssigned,
	FarmOutAssigned,
	EnRoute,
	Arrived,
	PassengerOnboard,
	NoShow,
	Completed,
	FarmOutCompleted,
	Cancelled,
	Quote,
}

var ranks = func() map[Key]int {
	ranks := make(map[Key]int, len(order))
	for i, key := range order {
		ranks[key] = i
	}
	return ranks
}()

// RankOf returns the presentation rank of the key, lower sorts first
func RankOf(key Key) int {
	if key == "" {
		return ranks[Unassigned]
	}

	rank, ok := ranks[key]
	if !ok {
		return UnknownRank
	}
	return rank
}

// Keys returns the canonical keys in presentation order
func Keys() []Key {
	keys := make([]Key, len(order))
	copy(keys, order)
	return keys
}
