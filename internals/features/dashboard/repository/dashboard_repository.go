package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	apptModel "cra_backend/internals/features/appointments/appointments/model"
	apptRepo "cra_backend/internals/features/appointments/appointments/repository"
	"cra_backend/internals/features/dashboard/service"
	helperAuth "cra_backend/internals/helpers/auth"
)

type DashboardRepository struct {
	DB *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{DB: db}
}

func (r *DashboardRepository) CountByStatus(ctx context.Context, tier apptModel.Tier, scope helperAuth.Scope, from, to time.Time) ([]service.StatusCount, error) {
	var rows []struct {
		Status   string
		Attended *bool
		Count    int64
	}
	err := apptRepo.TierQuery(ctx, r.DB, tier, scope, from, to).
		Select("appointment_status AS status, appointment_attended AS attended, COUNT(*) AS count").
		Group("appointment_status, appointment_attended").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]service.StatusCount, 0, len(rows))
	for _, x := range rows {
		out = append(out, service.StatusCount{Status: apptModel.AppointmentStatus(x.Status), Attended: x.Attended, Count: x.Count})
	}
	return out, nil
}

// CountBy skips rows where column is null or blank.
func (r *DashboardRepository) CountBy(ctx context.Context, tier apptModel.Tier, scope helperAuth.Scope, from, to time.Time, column string) ([]service.KeyCount, error) {
	var out []service.KeyCount
	err := apptRepo.TierQuery(ctx, r.DB, tier, scope, from, to).
		Select(column+" AS name, COUNT(*) AS count").
		Where(column + " IS NOT NULL AND " + column + " <> ''").
		Group(column).
		Scan(&out).Error
	return out, err
}
