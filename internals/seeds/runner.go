package seeds

import (
	"errors"
	"io/fs"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"cra_backend/internals/helpers/zlog"
	"cra_backend/internals/seeds/units"
	"cra_backend/internals/seeds/users"
)

const (
	UnitsFile = "internals/seeds/units/data_units.json"
	UsersFile = "internals/seeds/users/data_users.json"
)

// RunAllSeeds is idempotent. Missing seed files are skipped.
func RunAllSeeds(db *gorm.DB) {
	//* Units first: users reference them by name
	if err := units.SeedUnitsFromJSON(db, UnitsFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		zlog.Error("❌ units seed failed", zap.Error(err))
	}

	//* Users
	if err := users.SeedUsersFromJSON(db, UsersFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		zlog.Error("❌ users seed failed", zap.Error(err))
	}
	if err := users.SeedSuperAdminFromEnv(db); err != nil {
		zlog.Error("❌ super admin seed failed", zap.Error(err))
	}
}
