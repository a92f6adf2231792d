package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cra_backend/internals/features/appointments/appointments/model"
)

const insertBatchSize = 500

// ArchiveRepository is the gorm implementation of service.Store.
type ArchiveRepository struct {
	DB *gorm.DB
}

func NewArchiveRepository(db *gorm.DB) *ArchiveRepository {
	return &ArchiveRepository{DB: db}
}

func uuidArray(ids []uuid.UUID) interface{} {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = id.String()
	}
	return pq.Array(s)
}

func dateArg(t time.Time) string { return t.Format("2006-01-02") }

func (r *ArchiveRepository) active(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Table(model.TableActive)
}

func (r *ArchiveRepository) history(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Table(model.TableHistory)
}

func scopeUnit(q *gorm.DB, unit *uuid.UUID) *gorm.DB {
	if unit != nil {
		return q.Where("appointment_unit_id = ?", *unit)
	}
	return q
}

func (r *ArchiveRepository) FindActiveByDate(ctx context.Context, date time.Time, unit *uuid.UUID) ([]model.AppointmentModel, error) {
	var rows []model.AppointmentModel
	err := scopeUnit(r.active(ctx).Where("appointment_date = ?", dateArg(date)), unit).
		Order("appointment_created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *ArchiveRepository) FindActiveByIDs(ctx context.Context, ids []uuid.UUID, unit *uuid.UUID) ([]model.AppointmentModel, error) {
	var rows []model.AppointmentModel
	err := scopeUnit(r.active(ctx).Where("appointment_id = ANY(?::uuid[])", uuidArray(ids)), unit).
		Find(&rows).Error
	return rows, err
}

func (r *ArchiveRepository) FindActiveDatesBefore(ctx context.Context, day time.Time) ([]time.Time, error) {
	var days []time.Time
	err := r.active(ctx).
		Distinct("appointment_date").
		Where("appointment_date < ?", dateArg(day)).
		Order("appointment_date ASC").
		Pluck("appointment_date", &days).Error
	return days, err
}

// InsertHistory skips ids already present in history.
func (r *ArchiveRepository) InsertHistory(ctx context.Context, rows []model.AppointmentModel) error {
	return r.history(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "appointment_id"}}, DoNothing: true}).
		CreateInBatches(&rows, insertBatchSize).Error
}

func (r *ArchiveRepository) DeleteActive(ctx context.Context, ids []uuid.UUID, date *time.Time) (int64, error) {
	q := r.active(ctx).Where("appointment_id = ANY(?::uuid[])", uuidArray(ids))
	if date != nil {
		q = q.Where("appointment_date = ?", dateArg(*date))
	}
	res := q.Delete(&model.AppointmentModel{})
	return res.RowsAffected, res.Error
}

func (r *ArchiveRepository) FindHistoryIDsBefore(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.history(ctx).
		Where("appointment_created_at < ?", cutoff).
		Pluck("appointment_id", &ids).Error
	return ids, err
}

func (r *ArchiveRepository) MoveHistoryToCold(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var moved int64
	err := r.DB.WithContext(ctx).
		Raw("SELECT archive_history_to_cold(?::uuid[])", uuidArray(ids)).
		Scan(&moved).Error
	return moved, err
}

func (r *ArchiveRepository) FindAllHistory(ctx context.Context) ([]model.AppointmentModel, error) {
	var rows []model.AppointmentModel
	err := r.history(ctx).
		Order("appointment_date ASC").
		Order("appointment_created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *ArchiveRepository) DeleteHistory(ctx context.Context, ids []uuid.UUID) (int64, error) {
	res := r.history(ctx).
		Where("appointment_id = ANY(?::uuid[])", uuidArray(ids)).
		Delete(&model.AppointmentModel{})
	return res.RowsAffected, res.Error
}
