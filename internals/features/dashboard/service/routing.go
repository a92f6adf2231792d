package service

import (
	"time"

	"cra_backend/internals/features/appointments/appointments/model"
	"cra_backend/internals/helpers/dbtime"
)

type Mode string

const (
	ModeDaily   Mode = "daily"
	ModeMonthly Mode = "monthly"
)

func (m Mode) Valid() bool { return m == ModeDaily || m == ModeMonthly }

func dayKey(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

func monthKey(t time.Time) int {
	return t.Year()*100 + int(t.Month())
}

// TierRouting decides which tiers answer a dashboard query. Tiers never hold
// the same row, so reading several never double counts.
//
//	daily, before today        → history
//	daily, today or later      → active
//	monthly                    → history, plus active when the month holds today or is ahead
//
// target is a calendar date (its y/m/d are used as given); now is converted to
// the business timezone.
func TierRouting(mode Mode, target, now time.Time) []model.Tier {
	today := dbtime.DateOf(now)
	switch mode {
	case ModeMonthly:
		if monthKey(target) >= monthKey(today) {
			return []model.Tier{model.TierHistory, model.TierActive}
		}
		return []model.Tier{model.TierHistory}
	default:
		if dayKey(target) < dayKey(today) {
			return []model.Tier{model.TierHistory}
		}
		return []model.Tier{model.TierActive}
	}
}

// Period returns the inclusive date range a query covers.
func Period(mode Mode, target time.Time) (time.Time, time.Time) {
	if mode == ModeMonthly {
		start, next := dbtime.MonthRange(target.Year(), target.Month())
		return start, next.AddDate(0, 0, -1)
	}
	d := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, dbtime.Location())
	return d, d
}
