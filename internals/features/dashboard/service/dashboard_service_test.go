package service

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"cra_backend/internals/features/appointments/appointments/model"
	helperAuth "cra_backend/internals/helpers/auth"
	"cra_backend/internals/helpers/dbtime"
)

// fakeStore answers from canned per-tier data and records what was asked.
type fakeStore struct {
	status  map[model.Tier][]StatusCount
	keys    map[model.Tier][]KeyCount
	queried []model.Tier
}

func (f *fakeStore) CountByStatus(_ context.Context, t model.Tier, _ helperAuth.Scope, _, _ time.Time) ([]StatusCount, error) {
	f.queried = append(f.queried, t)
	return f.status[t], nil
}

func (f *fakeStore) CountBy(_ context.Context, t model.Tier, _ helperAuth.Scope, _, _ time.Time, _ string) ([]KeyCount, error) {
	f.queried = append(f.queried, t)
	return f.keys[t], nil
}

// 2024-06-15 10:00 in São Paulo
var now = time.Date(2024, 6, 15, 13, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, dbtime.Location())
}

func unitScope() helperAuth.Scope {
	id := uuid.New()
	return helperAuth.Scope{UnitID: &id}
}

func TestTierRouting(t *testing.T) {
	h := []model.Tier{model.TierHistory}
	a := []model.Tier{model.TierActive}
	ha := []model.Tier{model.TierHistory, model.TierActive}

	cases := []struct {
		name   string
		mode   Mode
		target time.Time
		want   []model.Tier
	}{
		{"yesterday", ModeDaily, date(2024, 6, 14), h},
		{"today", ModeDaily, date(2024, 6, 15), a},
		{"tomorrow", ModeDaily, date(2024, 6, 16), a},
		{"last year same day", ModeDaily, date(2023, 6, 15), h},
		{"past month", ModeMonthly, date(2024, 5, 1), h},
		{"current month", ModeMonthly, date(2024, 6, 1), ha},
		{"next month", ModeMonthly, date(2024, 7, 1), ha},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TierRouting(tc.mode, tc.target, now); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTierRoutingDayBoundaryUsesBusinessTimezone(t *testing.T) {
	// 01:30 UTC on the 16th is still the 15th in São Paulo
	late := time.Date(2024, 6, 16, 1, 30, 0, 0, time.UTC)
	if got := TierRouting(ModeDaily, date(2024, 6, 15), late); !reflect.DeepEqual(got, []model.Tier{model.TierActive}) {
		t.Fatalf("got %v", got)
	}
	if got := TierRouting(ModeDaily, date(2024, 6, 14), late); !reflect.DeepEqual(got, []model.Tier{model.TierHistory}) {
		t.Fatalf("got %v", got)
	}
}

func TestSummaryReadsOnlyRoutedTier(t *testing.T) {
	yes, no := true, false
	store := &fakeStore{status: map[model.Tier][]StatusCount{
		model.TierActive: {
			{Status: model.StatusScheduled, Count: 4},
			{Status: model.StatusAttended, Attended: &yes, Count: 3},
		},
		model.TierHistory: {
			{Status: model.StatusAttended, Attended: &yes, Count: 10},
			{Status: model.StatusNoShow, Attended: &no, Count: 2},
		},
	}}
	svc := NewDashboardService(store, func() time.Time { return now })

	got, err := svc.Summary(context.Background(), Query{Mode: ModeDaily, Target: date(2024, 6, 14), Scope: unitScope()})
	if err != nil {
		t.Fatal(err)
	}
	if got.Total != 12 || got.Attended != 10 || got.Absent != 2 || got.Pending != 0 {
		t.Fatalf("yesterday = %+v", got)
	}
	if !reflect.DeepEqual(store.queried, []model.Tier{model.TierHistory}) {
		t.Fatalf("queried %v", store.queried)
	}

	store.queried = nil
	got, err = svc.Summary(context.Background(), Query{Mode: ModeDaily, Target: date(2024, 6, 15), Scope: unitScope()})
	if err != nil {
		t.Fatal(err)
	}
	if got.Total != 7 || got.Attended != 3 || got.Pending != 4 || got.ByStatus["SCHEDULED"] != 4 {
		t.Fatalf("today = %+v", got)
	}
	if !reflect.DeepEqual(store.queried, []model.Tier{model.TierActive}) {
		t.Fatalf("queried %v", store.queried)
	}
}

func TestSummaryMonthlyCurrentMonthMergesTiers(t *testing.T) {
	store := &fakeStore{status: map[model.Tier][]StatusCount{
		model.TierActive:  {{Status: model.StatusScheduled, Count: 4}},
		model.TierHistory: {{Status: model.StatusScheduled, Count: 6}},
	}}
	svc := NewDashboardService(store, func() time.Time { return now })

	got, err := svc.Summary(context.Background(), Query{Mode: ModeMonthly, Target: date(2024, 6, 1), Scope: unitScope()})
	if err != nil {
		t.Fatal(err)
	}
	if got.Total != 10 || got.ByStatus["SCHEDULED"] != 10 {
		t.Fatalf("got %+v", got)
	}
	if got.From != "2024-06-01" || got.To != "2024-06-30" {
		t.Fatalf("period %s..%s", got.From, got.To)
	}
}

func TestSummaryWithoutUnitIsEmpty(t *testing.T) {
	store := &fakeStore{}
	svc := NewDashboardService(store, func() time.Time { return now })

	got, err := svc.Summary(context.Background(), Query{Mode: ModeDaily, Target: date(2024, 6, 15)})
	if err != nil {
		t.Fatal(err)
	}
	if got.Total != 0 || len(store.queried) != 0 {
		t.Fatalf("expected no queries, got %v / %+v", store.queried, got)
	}
}

func TestRankingsTieBreakByName(t *testing.T) {
	store := &fakeStore{keys: map[model.Tier][]KeyCount{
		model.TierHistory: {{"MARIA", 3}, {"CARLOS", 1}, {"ANA", 2}},
		model.TierActive:  {{"CARLOS", 2}, {"ANA", 1}, {"bruno", 3}, {"BRUNO", 3}},
	}}
	svc := NewDashboardService(store, func() time.Time { return now })

	got, err := svc.Rankings(context.Background(),
		Query{Mode: ModeMonthly, Target: date(2024, 6, 1), Scope: helperAuth.Scope{All: true}}, ByStaff, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []KeyCount{{"ANA", 3}, {"BRUNO", 3}, {"CARLOS", 3}, {"MARIA", 3}, {"bruno", 3}}
	if !reflect.DeepEqual(got.Items, want) {
		t.Fatalf("got %v, want %v", got.Items, want)
	}
}

func TestRankingsLimitAndUnknownDimension(t *testing.T) {
	store := &fakeStore{keys: map[model.Tier][]KeyCount{
		model.TierActive: {{"A", 5}, {"B", 4}, {"C", 3}},
	}}
	svc := NewDashboardService(store, func() time.Time { return now })
	q := Query{Mode: ModeDaily, Target: date(2024, 6, 15), Scope: unitScope()}

	got, err := svc.Rankings(context.Background(), q, ByServiceType, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Items) != 2 || got.Items[0].Name != "A" {
		t.Fatalf("got %v", got.Items)
	}
	if _, err := svc.Rankings(context.Background(), q, Dimension("color"), 0); err == nil {
		t.Fatal("expected error for unknown dimension")
	}
}
