// internals/features/appointments/appointments/repository/tier_repository.go
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"cra_backend/internals/features/appointments/appointments/model"
	helperAuth "cra_backend/internals/helpers/auth"
	"cra_backend/internals/helpers/dbtime"
)

const unitColumn = "appointment_unit_id"

// TierQuery starts a scoped query on one tier, dates in [from, to] inclusive.
// Zero bounds are open.
func TierQuery(ctx context.Context, db *gorm.DB, tier model.Tier, scope helperAuth.Scope, from, to time.Time) *gorm.DB {
	q := scope.Apply(db.WithContext(ctx).Table(tier.Table()), unitColumn)
	if !from.IsZero() {
		q = q.Where("appointment_date >= ?", dbtime.FormatISO(from))
	}
	if !to.IsZero() {
		q = q.Where("appointment_date <= ?", dbtime.FormatISO(to))
	}
	return q
}

// FindRange reads every row of the given tiers in the range.
func FindRange(ctx context.Context, db *gorm.DB, tiers []model.Tier, scope helperAuth.Scope, from, to time.Time) ([]model.AppointmentModel, error) {
	var out []model.AppointmentModel
	for _, t := range tiers {
		var rows []model.AppointmentModel
		if err := TierQuery(ctx, db, t, scope, from, to).Find(&rows).Error; err != nil {
			return nil, err
		}
		out = append(out, rows...)
	}
	return out, nil
}
