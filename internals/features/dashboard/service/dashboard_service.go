// internals/features/dashboard/service/dashboard_service.go
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cra_backend/internals/features/appointments/appointments/model"
	helperAuth "cra_backend/internals/helpers/auth"
)

type Dimension string

const (
	ByServiceType     Dimension = "service_type"
	ByStaff           Dimension = "staff"
	ByRequestCategory Dimension = "request_category"
	ByOrigin          Dimension = "origin"
)

var dimensionColumns = map[Dimension]string{
	ByServiceType:     "appointment_service_type",
	ByStaff:           "appointment_staff_name",
	ByRequestCategory: "appointment_request_category",
	ByOrigin:          "appointment_origin",
}

// Column returns the grouped column, or "" for an unknown dimension.
func (d Dimension) Column() string { return dimensionColumns[d] }

type StatusCount struct {
	Status   model.AppointmentStatus
	Attended *bool
	Count    int64
}

type KeyCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Store runs the aggregate queries on one tier. from/to are inclusive.
type Store interface {
	CountByStatus(ctx context.Context, tier model.Tier, scope helperAuth.Scope, from, to time.Time) ([]StatusCount, error)
	CountBy(ctx context.Context, tier model.Tier, scope helperAuth.Scope, from, to time.Time, column string) ([]KeyCount, error)
}

type Query struct {
	Mode   Mode
	Target time.Time
	Scope  helperAuth.Scope
}

type Summary struct {
	Mode     Mode             `json:"mode"`
	From     string           `json:"from"`
	To       string           `json:"to"`
	Tiers    []model.Tier     `json:"tiers"`
	Total    int64            `json:"total"`
	Attended int64            `json:"attended"`
	Absent   int64            `json:"absent"`
	Pending  int64            `json:"pending"`
	ByStatus map[string]int64 `json:"by_status"`
}

type Ranking struct {
	Mode  Mode         `json:"mode"`
	By    Dimension    `json:"by"`
	Tiers []model.Tier `json:"tiers"`
	Items []KeyCount   `json:"items"`
}

type DashboardService struct {
	store Store
	now   func() time.Time
}

func NewDashboardService(store Store, now func() time.Time) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{store: store, now: now}
}

func emptySummary(q Query, tiers []model.Tier) *Summary {
	from, to := Period(q.Mode, q.Target)
	return &Summary{
		Mode:     q.Mode,
		From:     from.Format("2006-01-02"),
		To:       to.Format("2006-01-02"),
		Tiers:    tiers,
		ByStatus: map[string]int64{},
	}
}

// Summary counts appointments and attendance over the routed tiers. A caller
// without a unit gets zeros, not an error.
func (s *DashboardService) Summary(ctx context.Context, q Query) (*Summary, error) {
	tiers := TierRouting(q.Mode, q.Target, s.now())
	out := emptySummary(q, tiers)
	if q.Scope.None() {
		return out, nil
	}

	from, to := Period(q.Mode, q.Target)
	for _, t := range tiers {
		rows, err := s.store.CountByStatus(ctx, t, q.Scope, from, to)
		if err != nil {
			return nil, fmt.Errorf("summary %s: %w", t, err)
		}
		for _, r := range rows {
			out.Total += r.Count
			out.ByStatus[string(r.Status)] += r.Count
			switch {
			case r.Attended == nil:
				out.Pending += r.Count
			case *r.Attended:
				out.Attended += r.Count
			default:
				out.Absent += r.Count
			}
		}
	}
	return out, nil
}

// Rankings groups by dimension, summing the same key across tiers. Sorted by
// count desc, then name asc (byte order). limit <= 0 keeps everything.
func (s *DashboardService) Rankings(ctx context.Context, q Query, by Dimension, limit int) (*Ranking, error) {
	col := by.Column()
	if col == "" {
		return nil, fmt.Errorf("dimensão inválida: %q", by)
	}
	tiers := TierRouting(q.Mode, q.Target, s.now())
	out := &Ranking{Mode: q.Mode, By: by, Tiers: tiers, Items: []KeyCount{}}
	if q.Scope.None() {
		return out, nil
	}

	from, to := Period(q.Mode, q.Target)
	var parts [][]KeyCount
	for _, t := range tiers {
		rows, err := s.store.CountBy(ctx, t, q.Scope, from, to, col)
		if err != nil {
			return nil, fmt.Errorf("ranking %s: %w", t, err)
		}
		parts = append(parts, rows)
	}
	out.Items = MergeRanking(limit, parts...)
	return out, nil
}

// MergeRanking sums counts per name and orders the result.
func MergeRanking(limit int, parts ...[]KeyCount) []KeyCount {
	sum := map[string]int64{}
	for _, p := range parts {
		for _, kc := range p {
			sum[kc.Name] += kc.Count
		}
	}
	items := make([]KeyCount, 0, len(sum))
	for name, n := range sum {
		items = append(items, KeyCount{Name: name, Count: n})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Name < items[j].Name
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
