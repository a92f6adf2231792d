package users

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cra_backend/internals/constants"
	unitModel "cra_backend/internals/features/organization/units/model"
	authHelper "cra_backend/internals/features/users/auth/helper"
	authService "cra_backend/internals/features/users/auth/service"
	"cra_backend/internals/features/users/user/model"
	helper "cra_backend/internals/helpers"
	"cra_backend/internals/helpers/zlog"
)

type UserSeed struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	UnitName  string `json:"unit_name"`
}

// SeedUsersFromJSON provisions users with their profile. Existing emails are
// skipped, never updated.
func SeedUsersFromJSON(db *gorm.DB, filePath string) error {
	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", filePath, err)
	}
	var inputs []UserSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}
	for _, in := range inputs {
		if err := SeedUser(db, in); err != nil {
			zlog.Error("❌ seed user failed", zap.String("email", in.Email), zap.Error(err))
		}
	}
	return nil
}

// SeedSuperAdminFromEnv creates the first SUPER_ADMIN from
// SEED_SUPER_ADMIN_EMAIL / SEED_SUPER_ADMIN_PASSWORD when both are set.
func SeedSuperAdminFromEnv(db *gorm.DB) error {
	email := strings.TrimSpace(os.Getenv("SEED_SUPER_ADMIN_EMAIL"))
	password := os.Getenv("SEED_SUPER_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}
	return SeedUser(db, UserSeed{
		Email:     email,
		Password:  password,
		FirstName: "Administrador",
		Role:      constants.RoleSuperAdmin,
	})
}

func SeedUser(db *gorm.DB, in UserSeed) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	role := strings.ToUpper(strings.TrimSpace(in.Role))
	if email == "" || in.Password == "" {
		return errors.New("email and password are required")
	}
	if err := authHelper.ValidatePassword(in.Password); err != nil {
		return err
	}
	if !constants.IsValidRole(role) {
		return fmt.Errorf("unknown role %q", in.Role)
	}

	var n int64
	if err := db.Model(&model.UserModel{}).Where("LOWER(email) = ?", email).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		zlog.Info("ℹ️ user already exists, skipped", zap.String("email", email))
		return nil
	}

	var unitID *uuid.UUID
	if name := strings.Join(strings.Fields(in.UnitName), " "); name != "" {
		var u unitModel.UnitModel
		if err := db.Where("LOWER(unit_name) = LOWER(?)", name).First(&u).Error; err != nil {
			return fmt.Errorf("unit %q: %w", name, err)
		}
		unitID = &u.UnitID
	}
	if unitID == nil && role != constants.RoleSuperAdmin {
		return fmt.Errorf("role %s needs unit_name", role)
	}

	hash, err := authService.HashPassword(in.Password)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		user := model.UserModel{Email: email, Password: hash, IsActive: true}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := model.UserProfileModel{
			UserProfileUserID:    user.ID,
			UserProfileFirstName: strings.TrimSpace(in.FirstName),
			UserProfileLastName:  helper.StrPtr(in.LastName),
			UserProfileRole:      role,
			UserProfileUnitID:    unitID,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		zlog.Info("✅ user seeded", zap.String("email", email), zap.String("role", role))
		return nil
	})
}
