package grid

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/status"
	"github.com/rs/zerolog/log"
)

// Query selects the reservations to load, either a pickup date range or the most recent ones
type Query struct {
	From   time.Time
	To     time.Time
	Recent int
}

// Equal reports whether both queries select the same reservations
func (q Query) Equal(other Query) bool {
	return q.From.Equal(other.From) && q.To.Equal(other.To) && q.Recent == other.Recent
}

// ReservationStore is the remote store that holds the reservations
type ReservationStore interface {
	Reservations(ctx context.Context, q Query) ([]Record, error)
}

// ViewRow is a render ready row of the dispatch grid
type ViewRow struct {
	ReservationRow
	Label        string        `json:"label"`
	Icon         string        `json:"icon"`
	Rank         int           `json:"rank"`
	Bucket       status.Bucket `json:"bucket"`
	PickupMinute int           `json:"pickup_minute"`
}

// View is the visible state of the dispatch grid
type View struct {
	Rows     []ViewRow   `json:"rows"`
	Total    int         `json:"total"`
	Filters  FilterState `json:"filters"`
	Search   string      `json:"search"`
	Sort     ColumnSort  `json:"sort"`
	Degraded bool        `json:"degraded"`
	Reason   string      `json:"reason,omitempty"`
}

// Grid holds the reservations of the current query and the operator's view settings.
// Filtering, searching and sorting never modify the loaded rows
type Grid struct {
	mu sync.Mutex

	rows     []ReservationRow
	query    Query
	loaded   bool
	real     bool
	degraded bool
	reason   string

	filters FilterState
	search  string
	sort    ColumnSort
}

// New creates a grid with the given filter toggles
func New(filters FilterState) *Grid {
	return &Grid{
		filters: filters,
	}
}

// Load replaces the rows with the reservations of the query. Until the first successful load
// a failing or empty store results in the sample dataset so the grid always renders, after
// that a failing store keeps the previous rows and the error is returned
func (g *Grid) Load(ctx context.Context, store ReservationStore, q Query) error {
	records, err := store.Reservations(ctx, q)

	g.mu.Lock()
	defer g.mu.Unlock()

	switch {
	case err != nil && g.real:
		log.Error().Err(err).Msg("failed to reload the reservations, keeping the previous rows")
		return err
	case err != nil:
		log.Error().Err(err).Msg("reservation store is unavailable, falling back to the sample dataset")
		g.fallback(q, "reservation store is unavailable, showing sample reservations")
		return nil
	case len(records) == 0 && !g.real:
		log.Warn().Msg("reservation store returned no rows, falling back to the sample dataset")
		g.fallback(q, "no reservations were found, showing sample reservations")
		return nil
	}

	g.rows = FromRecords(records)
	g.query = q
	g.loaded = true
	g.real = true
	g.degraded = false
	g.reason = ""
	return nil
}

func (g *Grid) fallback(q Query, reason string) {
	g.rows = Sample()
	g.query = q
	g.loaded = true
	g.degraded = true
	g.reason = reason
}

// Loaded reports whether the grid holds rows for the query
func (g *Grid) Loaded(q Query) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.loaded && g.query.Equal(q)
}

// SetFilters replaces the filter toggles
func (g *Grid) SetFilters(filters FilterState) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.filters = filters
}

// SetSearch replaces the search term, an empty term clears the search
func (g *Grid) SetSearch(term string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.search = term
}

// SelectColumn applies a column header click and returns the resulting sort
func (g *Grid) SelectColumn(column Column) (ColumnSort, error) {
	if !Sortable(column) {
		return ColumnSort{}, ErrUnknownColumn
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.sort = g.sort.Select(column)
	return g.sort, nil
}

// ErrUnknownColumn is returned when a column that cannot be sorted is selected
var ErrUnknownColumn = errors.New("the column cannot be sorted")

// View returns the visible rows in presentation order
func (g *Grid) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()

	visible := SortRows(Search(ApplyFilters(g.rows, g.filters), g.search), g.sort)

	rows := make([]ViewRow, 0, len(visible))
	for _, row := range visible {
		meta := status.MetadataFor(row.Status)
		rows = append(rows, ViewRow{
			ReservationRow: row,
			Label:          meta.Label,
			Icon:           meta.Icon,
			Rank:           status.RankOf(row.Status),
			Bucket:         row.StatusBucket(),
			PickupMinute:   ParseTimeOfDay(row.PickupTime),
		})
	}

	return View{
		Rows:     rows,
		Total:    len(g.rows),
		Filters:  g.filters,
		Search:   g.search,
		Sort:     g.sort,
		Degraded: g.degraded,
		Reason:   g.reason,
	}
}

// Find returns the loaded row with the confirmation number or record id
func (g *Grid) Find(key string) (ReservationRow, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, row := range g.rows {
		if row.Key() == key || (row.ID != "" && row.ID == key) {
			return row, true
		}
	}
	return ReservationRow{}, false
}
