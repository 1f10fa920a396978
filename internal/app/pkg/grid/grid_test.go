package grid

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/status"
	"github.com/jaswdr/faker/v2"
)

func ptr[T any](v T) *T {
	return &v
}

func row(confirmation, rawStatus, rawOrigin, date, clock string) ReservationRow {
	return FromRecord(Record{
		Confirmation: ptr(confirmation),
		Status:       ptr(rawStatus),
		Origin:       ptr(rawOrigin),
		PickupDate:   ptr(date),
		PickupTime:   ptr(clock),
	})
}

func fakeRows(fake faker.Faker, n int) []ReservationRow {
	statuses := []string{"unassigned", "En Route", "completed", "quote", "cancelled", "FARM_OUT_ASSIGNED", "weirdnewstatus", "", "4"}
	origins := []string{"", "in house", "farm-in", "Farm Out", "mystery"}
	dates := []string{"2026-10-16", "2026-10-17", "10/18/2026", "not a date", ""}
	clocks := []string{"7:05 AM", "12:00 PM", "19:45", "noon", ""}

	rows := make([]ReservationRow, 0, n)
	for i := 0; i < n; i++ {
		// every confirmation number is shared by two records
		r := row(
			fmt.Sprintf("C%05d", i/2),
			fake.RandomStringElement(statuses),
			fake.RandomStringElement(origins),
			fake.RandomStringElement(dates),
			fake.RandomStringElement(clocks),
		)
		r.ID = fmt.Sprintf("%d", i+1)
		rows = append(rows, r)
	}
	return rows
}

func TestFromRecordToleratesMissingFields(t *testing.T) {
	r := FromRecord(Record{})

	if r.Status != "" {
		t.Errorf("expected an empty status, got %q", r.Status)
	}
	if r.Origin != status.OriginInHouse {
		t.Errorf("expected in house origin, got %q", r.Origin)
	}
	if r.StatusBucket() != status.Active {
		t.Errorf("expected the active bucket, got %q", r.StatusBucket())
	}
	if _, ok := r.PickupAt(); ok {
		t.Errorf("expected an unparsable pickup")
	}
}

func TestFromRecordsSkipsRowsWithoutIdentity(t *testing.T) {
	rows := FromRecords([]Record{
		{Status: ptr("assigned")},
		{ID: ptr("42"), Status: ptr("assigned")},
	})
	if len(rows) != 1 || rows[0].Key() != "42" {
		t.Fatalf("expected only the row with an id, got %+v", rows)
	}
}

func TestUnclassifiableRowDefaultsToInHouseActive(t *testing.T) {
	r := row("C1", "weirdnewstatus", "", "2026-10-16", "7:00 AM")

	if r.OriginBucket() != status.OriginInHouse {
		t.Errorf("expected in house, got %q", r.OriginBucket())
	}
	if r.StatusBucket() != status.Active {
		t.Errorf("expected active, got %q", r.StatusBucket())
	}

	visible := ApplyFilters([]ReservationRow{r}, FilterState{Active: true, InHouse: true})
	if len(visible) != 1 {
		t.Errorf("expected the row to be visible with active and in house checked")
	}

	hidden := ApplyFilters([]ReservationRow{r}, FilterState{Active: true, FarmOut: true})
	if len(hidden) != 0 {
		t.Errorf("expected the row to be hidden without in house")
	}
}

func TestApplyFiltersKeepsOnlyMatchingRows(t *testing.T) {
	rows := fakeRows(faker.New(), 150)

	for mask := 0; mask < 64; mask++ {
		f := FilterState{
			Active:  mask&1 != 0,
			Settled: mask&2 != 0,
			Quote:   mask&4 != 0,
			InHouse: mask&8 != 0,
			FarmIn:  mask&16 != 0,
			FarmOut: mask&32 != 0,
		}

		visible := ApplyFilters(rows, f)
		seen := make(map[string]bool, len(visible))
		for _, r := range visible {
			seen[r.ID] = true
		}

		for _, r := range rows {
			want := f.AllowsStatus(r.StatusBucket()) && f.AllowsOrigin(r.OriginBucket())
			if seen[r.ID] != want {
				t.Fatalf("mask %06b: row %s (%s/%s) visible=%v, want %v", mask, r.ID, r.StatusBucket(), r.OriginBucket(), seen[r.ID], want)
			}
		}
	}

	if got := ApplyFilters(rows, AllFilters()); len(got) != len(rows) {
		t.Errorf("expected every row with all toggles on, got %d of %d", len(got), len(rows))
	}
	if got := ApplyFilters(rows, FilterState{}); len(got) != 0 {
		t.Errorf("expected no rows with all toggles off, got %d", len(got))
	}
}

func TestApplyFiltersDoesNotModifyInput(t *testing.T) {
	rows := []ReservationRow{
		row("A", "completed", "", "", ""),
		row("B", "assigned", "", "", ""),
	}
	ApplyFilters(rows, FilterState{Active: true, InHouse: true})

	if rows[0].Key() != "A" || rows[1].Key() != "B" || len(rows) != 2 {
		t.Errorf("input rows were modified: %+v", rows)
	}
}

func TestSearch(t *testing.T) {
	a := row("ABC-1", "En Route", "", "", "")
	a.PassengerName = "Ada Lovelace"
	b := row("XYZ-2", "completed", "farm out", "", "")
	b.OriginCompany = "Partner Limo Co"
	rows := []ReservationRow{a, b}

	tests := []struct {
		term string
		want int
	}{
		{term: "", want: 2},
		{term: "  ", want: 2},
		{term: "lovelace", want: 1},
		{term: "abc", want: 1},
		{term: "LIMO", want: 1},
		{term: "en route", want: 1},
		{term: "nothing", want: 0},
	}
	for _, tt := range tests {
		if got := Search(rows, tt.term); len(got) != tt.want {
			t.Errorf("Search(%q) returned %d rows, want %d", tt.term, len(got), tt.want)
		}
	}
}

func TestCompareIsStrictTotalOrder(t *testing.T) {
	rows := fakeRows(faker.New(), 80)

	for i, a := range rows {
		for j, b := range rows {
			ab, ba := Compare(a, b), Compare(b, a)
			if i == j {
				if ab != 0 {
					t.Fatalf("a row must compare equal to itself")
				}
				continue
			}
			if ab == 0 {
				t.Fatalf("distinct rows %s/%s and %s/%s compare equal", a.Key(), a.ID, b.Key(), b.ID)
			}
			if (ab < 0) == (ba < 0) {
				t.Fatalf("Compare is not antisymmetric for %s and %s", a.Key(), b.Key())
			}
		}
	}
}

func TestCompareTieBreaks(t *testing.T) {
	unknown := row("A", "weirdnewstatus", "", "2026-10-16", "6:00 AM")
	unassigned := row("Z", "unassigned", "", "2026-10-16", "11:00 PM")
	if Compare(unassigned, unknown) >= 0 {
		t.Errorf("unknown statuses must sort after known ones")
	}

	early := row("B", "assigned", "", "2026-10-16", "6:00 AM")
	late := row("A", "assigned", "", "2026-10-16", "9:00 PM")
	noTime := row("0", "assigned", "", "2026-10-16", "whenever")
	if Compare(early, late) >= 0 {
		t.Errorf("earlier pickups must sort first")
	}
	if Compare(late, noTime) >= 0 {
		t.Errorf("rows without a parsable pickup must sort last")
	}

	x := row("A-1", "assigned", "", "2026-10-16", "6:00 AM")
	y := row("A-2", "assigned", "", "2026-10-16", "6:00 AM")
	if Compare(x, y) >= 0 {
		t.Errorf("ties must be broken by the confirmation number")
	}
}

func TestCompareDuplicateConfirmation(t *testing.T) {
	x := row("C-9", "assigned", "", "", "")
	x.ID = "1"
	y := row("C-9", "assigned", "", "", "")
	y.ID = "2"

	if Compare(x, y) >= 0 || Compare(y, x) <= 0 {
		t.Errorf("rows sharing a confirmation number must be ordered by record id")
	}
}

func TestSortRowsByPickupDateIsIndependentOfInputOrder(t *testing.T) {
	a := row("A", "assigned", "", "2024-01-05", "")
	b := row("B", "assigned", "", "1", "")
	c := row("C", "assigned", "", "01/02/2025", "")
	d := row("D", "assigned", "", "", "")

	want := []string{"A", "C", "D", "B"}
	inputs := [][]ReservationRow{
		{a, b, c, d},
		{d, c, b, a},
		{b, d, a, c},
		{c, a, d, b},
	}
	for _, in := range inputs {
		got := SortRows(in, ColumnSort{Column: ColumnPickupDate})
		for i, key := range want {
			if got[i].Key() != key {
				t.Fatalf("got %s at %d, want %s", got[i].Key(), i, key)
			}
		}
	}

	desc := SortRows([]ReservationRow{b, a, d, c}, ColumnSort{Column: ColumnPickupDate, Descending: true})
	if desc[0].Key() != "B" || desc[3].Key() != "A" {
		t.Errorf("descending order reverses the column order, got %s first and %s last", desc[0].Key(), desc[3].Key())
	}
}

func TestColumnSortSelect(t *testing.T) {
	var s ColumnSort

	s = s.Select(ColumnPassenger)
	if s.Column != ColumnPassenger || s.Descending {
		t.Fatalf("a new column must start ascending, got %+v", s)
	}
	s = s.Select(ColumnPassenger)
	if !s.Descending {
		t.Fatalf("selecting the same column must toggle, got %+v", s)
	}
	s = s.Select(ColumnPassenger)
	if s.Descending {
		t.Fatalf("selecting the same column again must toggle back, got %+v", s)
	}
	s = s.Select(ColumnPassenger).Select(ColumnPickupTime)
	if s.Column != ColumnPickupTime || s.Descending {
		t.Fatalf("a new column must reset to ascending, got %+v", s)
	}
}

func TestSortRowsByTimeOfDay(t *testing.T) {
	rows := []ReservationRow{
		row("A", "assigned", "", "", "1:00 PM"),
		row("B", "assigned", "", "", "garbage"),
		row("C", "assigned", "", "", "9:30 AM"),
		row("D", "assigned", "", "", "12:15 AM"),
	}

	asc := SortRows(rows, ColumnSort{Column: ColumnPickupTime})
	want := []string{"B", "D", "C", "A"}
	for i, key := range want {
		if asc[i].Key() != key {
			t.Fatalf("ascending order: got %s at %d, want %s", asc[i].Key(), i, key)
		}
	}

	desc := SortRows(rows, ColumnSort{Column: ColumnPickupTime, Descending: true})
	want = []string{"A", "C", "D", "B"}
	for i, key := range want {
		if desc[i].Key() != key {
			t.Fatalf("descending order: got %s at %d, want %s", desc[i].Key(), i, key)
		}
	}

	if rows[0].Key() != "A" {
		t.Errorf("SortRows must not modify its input")
	}
}

func TestSortRowsNumericAndText(t *testing.T) {
	a := row("A", "assigned", "", "", "")
	a.Passengers, a.PassengerName = 10, "bob"
	b := row("B", "assigned", "", "", "")
	b.Passengers, b.PassengerName = 9, "Alice"

	if got := SortRows([]ReservationRow{a, b}, ColumnSort{Column: ColumnPassengers}); got[0].Key() != "B" {
		t.Errorf("expected numeric ordering, got %s first", got[0].Key())
	}
	if got := SortRows([]ReservationRow{a, b}, ColumnSort{Column: ColumnPassenger}); got[0].Key() != "B" {
		t.Errorf("expected case insensitive ordering, got %s first", got[0].Key())
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := map[string]int{
		"12:00 AM": 0,
		"12:30 AM": 30,
		"7:05 AM":  425,
		"7:05am":   425,
		"12:00 PM": 720,
		"1:15 PM":  795,
		"11:59 pm": 1439,
		"7 PM":     1140,
		"19:45":    1185,
		"07:45:30": 465,
		"":         0,
		"noon":     0,
		"13:00 PM": 0,
		"25:00":    0,
		"7:5 AM":   0,
	}
	for value, want := range tests {
		if got := ParseTimeOfDay(value); got != want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", value, got, want)
		}
	}
}

type store struct {
	records []Record
	err     error
	calls   int
}

func (s *store) Reservations(_ context.Context, _ Query) ([]Record, error) {
	s.calls++
	return s.records, s.err
}

func TestLoadFallsBackToSample(t *testing.T) {
	g := New(AllFilters())

	if err := g.Load(context.Background(), &store{err: errors.New("connection refused")}, Query{Recent: 10}); err != nil {
		t.Fatalf("expected the fallback to swallow the error, got %v", err)
	}
	v := g.View()
	if !v.Degraded || v.Reason == "" {
		t.Errorf("expected a degraded view with a reason, got %+v", v)
	}
	if len(v.Rows) != len(Sample()) {
		t.Errorf("expected the sample rows, got %d", len(v.Rows))
	}

	g = New(AllFilters())
	if err := g.Load(context.Background(), &store{}, Query{Recent: 10}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !g.View().Degraded {
		t.Errorf("expected an empty store to fall back to the sample")
	}
}

func TestLoadNeverFallsBackAfterRealLoad(t *testing.T) {
	g := New(AllFilters())
	ctx := context.Background()

	real := &store{records: []Record{{Confirmation: ptr("R-1"), Status: ptr("assigned")}}}
	if err := g.Load(ctx, real, Query{Recent: 1}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	failing := &store{err: errors.New("timeout")}
	if err := g.Load(ctx, failing, Query{Recent: 2}); err == nil {
		t.Fatalf("expected the error to be returned after a real load")
	}
	v := g.View()
	if v.Degraded || len(v.Rows) != 1 || v.Rows[0].Key() != "R-1" {
		t.Fatalf("expected the previous rows to be kept, got %+v", v)
	}

	if err := g.Load(ctx, &store{}, Query{Recent: 3}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if v := g.View(); v.Degraded || len(v.Rows) != 0 {
		t.Fatalf("expected an empty grid after a legitimate empty load, got %+v", v)
	}
}

func TestViewPipeline(t *testing.T) {
	g := New(FilterState{Active: true, InHouse: true, FarmOut: true})
	records := []Record{
		{Confirmation: ptr("A"), Status: ptr("completed"), PassengerName: ptr("Ada")},
		{Confirmation: ptr("B"), Status: ptr("en route"), PassengerName: ptr("Bob"), PickupDate: ptr("2026-10-16"), PickupTime: ptr("9:00 AM")},
		{Confirmation: ptr("C"), Status: ptr("unassigned"), PassengerName: ptr("Bobby"), Origin: ptr("farm out")},
		{Confirmation: ptr("D"), Status: ptr("assigned"), PassengerName: ptr("Dan"), Origin: ptr("farm in")},
	}
	if err := g.Load(context.Background(), &store{records: records}, Query{Recent: 10}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	v := g.View()
	if len(v.Rows) != 2 || v.Rows[0].Key() != "C" || v.Rows[1].Key() != "B" {
		t.Fatalf("unexpected rows %+v", v.Rows)
	}
	if v.Rows[1].Label != "En Route" || v.Rows[1].PickupMinute != 540 {
		t.Errorf("unexpected render fields %+v", v.Rows[1])
	}

	g.SetSearch("bobby")
	if v := g.View(); len(v.Rows) != 1 || v.Rows[0].Key() != "C" {
		t.Fatalf("expected the search to narrow the filtered rows, got %+v", v.Rows)
	}
	g.SetSearch("dan")
	if v := g.View(); len(v.Rows) != 0 {
		t.Fatalf("search must not bring back filtered rows, got %+v", v.Rows)
	}
	g.SetSearch("")
	if v := g.View(); len(v.Rows) != 2 {
		t.Fatalf("clearing the search must restore the filtered rows, got %+v", v.Rows)
	}

	if _, err := g.SelectColumn("nope"); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("expected ErrUnknownColumn, got %v", err)
	}
	if s, _ := g.SelectColumn(ColumnPassenger); s.Descending {
		t.Errorf("expected ascending")
	}
	if v := g.View(); v.Rows[0].Key() != "B" {
		t.Errorf("expected Bob before Bobby, got %s", v.Rows[0].Key())
	}

	if r, ok := g.Find("D"); !ok || r.PassengerName != "Dan" {
		t.Errorf("expected to find filtered out rows too")
	}
}
