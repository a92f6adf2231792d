package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cra_backend/internals/constants"
	profilemodel "cra_backend/internals/features/users/user/model"
	helperAuth "cra_backend/internals/helpers/auth"
)

var (
	ErrGrantSuperAdmin = errors.New("apenas o super administrador pode conceder o perfil SUPER_ADMIN")
	ErrOutsideUnit     = errors.New("usuário fora da sua unidade")
	ErrUnitRequired    = errors.New("informe a unidade do perfil")
	ErrSelfChange      = errors.New("não é possível alterar o próprio perfil ou desativar a própria conta")
)

// AuthorizeGrant checks that actor may give role and unitID to a profile and
// returns the unit to store. ADMIN grants are pinned to their own unit.
func AuthorizeGrant(actor *helperAuth.Session, role string, unitID *uuid.UUID) (*uuid.UUID, error) {
	role = strings.ToUpper(strings.TrimSpace(role))

	if actor.IsSuperAdmin() {
		if role != constants.RoleSuperAdmin && unitID == nil {
			return nil, ErrUnitRequired
		}
		return unitID, nil
	}

	if role == constants.RoleSuperAdmin {
		return nil, ErrGrantSuperAdmin
	}
	if actor == nil || actor.UnitID == nil {
		return nil, ErrOutsideUnit
	}
	if unitID != nil && *unitID != *actor.UnitID {
		return nil, ErrOutsideUnit
	}
	own := *actor.UnitID
	return &own, nil
}

// AuthorizeTarget checks that actor may edit the user owning target. A nil
// target (no profile yet) can only be adopted by SUPER_ADMIN.
func AuthorizeTarget(actor *helperAuth.Session, target *profilemodel.UserProfileModel) error {
	if actor.IsSuperAdmin() {
		return nil
	}
	if target == nil {
		return ErrOutsideUnit
	}
	if strings.EqualFold(target.UserProfileRole, constants.RoleSuperAdmin) {
		return ErrGrantSuperAdmin
	}
	if actor == nil || actor.UnitID == nil || target.UserProfileUnitID == nil ||
		*actor.UnitID != *target.UserProfileUnitID {
		return ErrOutsideUnit
	}
	return nil
}

// UpsertProfile writes the profile row keyed by user id.
func UpsertProfile(ctx context.Context, db *gorm.DB, p *profilemodel.UserProfileModel) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_profile_user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"user_profile_first_name",
				"user_profile_last_name",
				"user_profile_role",
				"user_profile_unit_id",
				"user_profile_updated_at",
			}),
		}).
		Create(p).Error
}

// FindProfile returns nil, nil when the user has no profile row.
func FindProfile(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*profilemodel.UserProfileModel, error) {
	var p profilemodel.UserProfileModel
	err := db.WithContext(ctx).Where("user_profile_user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
