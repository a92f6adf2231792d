package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cra_backend/internals/features/organization/service_types/model"
	helper "cra_backend/internals/helpers"
)

// EnsureNames registers service types that do not exist yet. Names are
// normalized to uppercase; existing ones are left alone.
func EnsureNames(ctx context.Context, db *gorm.DB, names []string) error {
	rows := make([]model.ServiceTypeModel, 0, len(names))
	seen := map[string]bool{}
	for _, n := range names {
		n = helper.NormalizeUpper(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		rows = append(rows, model.ServiceTypeModel{ServiceTypeName: n})
	}
	if len(rows) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "service_type_name"}}, DoNothing: true}).
		Create(&rows).Error
}
