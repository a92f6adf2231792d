// internals/features/users/user/controller/user_profile_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authHelper "cra_backend/internals/features/users/auth/helper"
	authRepo "cra_backend/internals/features/users/auth/repository"
	authService "cra_backend/internals/features/users/auth/service"
	"cra_backend/internals/features/users/user/dto"
	profilemodel "cra_backend/internals/features/users/user/model"
	"cra_backend/internals/features/users/user/service"
	helper "cra_backend/internals/helpers"
	helperAuth "cra_backend/internals/helpers/auth"
	"cra_backend/internals/helpers/zlog"
)

var validate = validator.New()

type UserProfileController struct {
	DB *gorm.DB
}

func NewUserProfileController(db *gorm.DB) *UserProfileController {
	return &UserProfileController{DB: db}
}

func grantError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrUnitRequired):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrGrantSuperAdmin),
		errors.Is(err, service.ErrOutsideUnit),
		errors.Is(err, service.ErrSelfChange):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	status, msg := helper.MapDBError(err, "Usuário não encontrado")
	return helper.JsonError(c, status, msg)
}

type profileRow struct {
	profilemodel.UserModel
	ProfileID *uuid.UUID
	FirstName *string
	LastName  *string
	Role      *string
	UnitID    *uuid.UUID
}

func (r *profileRow) toResponse() dto.UserProfileResponse {
	var p *profilemodel.UserProfileModel
	if r.ProfileID != nil {
		p = &profilemodel.UserProfileModel{
			UserProfileID:       *r.ProfileID,
			UserProfileLastName: r.LastName,
			UserProfileUnitID:   r.UnitID,
		}
		if r.FirstName != nil {
			p.UserProfileFirstName = *r.FirstName
		}
		if r.Role != nil {
			p.UserProfileRole = *r.Role
		}
	}
	return dto.ToUserProfileResponse(&r.UserModel, p)
}

/* =========================================================
   GET /api/a/users
   ?q=  ?role=  ?unit_id= (SUPER_ADMIN)  ?page= ?per_page=
   Users without a profile are visible to SUPER_ADMIN only.
========================================================= */

func (ctl *UserProfileController) List(c *fiber.Ctx) error {
	var unit *uuid.UUID
	if id, err := uuid.Parse(strings.TrimSpace(c.Query("unit_id"))); err == nil {
		unit = &id
	}
	scope := helperAuth.ResolveScope(helperAuth.GetSession(c), unit)
	p := helper.ResolvePaging(c, 50, 200)

	q := ctl.DB.WithContext(c.UserContext()).
		Table("users u").
		Joins("LEFT JOIN user_profiles p ON p.user_profile_user_id = u.id")
	q = scope.Apply(q, "p.user_profile_unit_id")
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + s + "%"
		q = q.Where("(u.email ILIKE ? OR p.user_profile_first_name ILIKE ? OR p.user_profile_last_name ILIKE ?)", like, like, like)
	}
	if r := strings.ToUpper(strings.TrimSpace(c.Query("role"))); r != "" {
		q = q.Where("p.user_profile_role = ?", r)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao contar usuários")
	}

	var rows []profileRow
	if err := q.Select(`u.*,
			p.user_profile_id         AS profile_id,
			p.user_profile_first_name AS first_name,
			p.user_profile_last_name  AS last_name,
			p.user_profile_role       AS role,
			p.user_profile_unit_id    AS unit_id`).
		Order("u.email ASC").
		Limit(p.Limit).Offset(p.Offset).
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar usuários")
	}

	out := make([]dto.UserProfileResponse, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toResponse())
	}
	return helper.JsonList(c, "ok", out, helper.BuildPagination(total, p))
}

/* =========================================================
   POST /api/a/users
   Creates the login and its profile in one transaction.
========================================================= */

func (ctl *UserProfileController) Create(c *fiber.Ctx) error {
	actor, err := helperAuth.RequireSession(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonFromValidator(c, err)
	}
	if err := authHelper.ValidatePassword(req.Password); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"password": {err.Error()}})
	}

	unitID, err := service.AuthorizeGrant(actor, req.Role, req.UnitID)
	if err != nil {
		return grantError(c, err)
	}

	hash, err := authService.HashPassword(req.Password)
	if err != nil {
		zlog.Error("hash password failed", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao criar usuário")
	}

	user := &profilemodel.UserModel{Email: req.Email, Password: hash, IsActive: true}
	var profile *profilemodel.UserProfileModel
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := authRepo.CreateUser(c.UserContext(), tx, user); err != nil {
			return err
		}
		profile = req.ToProfile(user.ID, unitID)
		return tx.Create(profile).Error
	})
	if err != nil {
		status, msg := helper.MapDBError(err, "")
		if status == fiber.StatusConflict {
			msg = "E-mail já cadastrado"
		}
		return helper.JsonError(c, status, msg)
	}

	zlog.Info("user provisioned",
		zap.String("user_id", user.ID.String()),
		zap.String("role", profile.UserProfileRole),
		zap.String("by", actor.UserID.String()),
	)
	return helper.JsonCreated(c, "Usuário criado", dto.ToUserProfileResponse(user, profile))
}

/* =========================================================
   PATCH /api/a/users/:id
   Role, unit, names and is_active. Creates the profile row
   for users that signed in before being provisioned.
========================================================= */

func (ctl *UserProfileController) Update(c *fiber.Ctx) error {
	actor, err := helperAuth.RequireSession(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonFromValidator(c, err)
	}
	if userID == actor.UserID && (req.Role != nil || req.UnitID != nil || req.IsActive != nil) {
		return grantError(c, service.ErrSelfChange)
	}

	ctx := c.UserContext()
	user, err := authRepo.FindUserByID(ctx, ctl.DB, userID)
	if err != nil {
		return grantError(c, err)
	}
	current, err := service.FindProfile(ctx, ctl.DB, userID)
	if err != nil {
		return grantError(c, err)
	}
	if err := service.AuthorizeTarget(actor, current); err != nil {
		return grantError(c, err)
	}

	profile := current
	if req.TouchesProfile() {
		merged := req.Merge(userID, current)
		if merged.UserProfileFirstName == "" || merged.UserProfileRole == "" {
			return helper.JsonValidationError(c, map[string][]string{
				"profile": {"first_name e role são obrigatórios para criar o perfil"},
			})
		}
		unitID, err := service.AuthorizeGrant(actor, merged.UserProfileRole, merged.UserProfileUnitID)
		if err != nil {
			return grantError(c, err)
		}
		merged.UserProfileUnitID = unitID
		merged.UserProfileUpdatedAt = time.Now()
		profile = &merged
	}

	err = ctl.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if profile != current {
			if err := service.UpsertProfile(ctx, tx, profile); err != nil {
				return err
			}
		}
		if req.IsActive != nil && *req.IsActive != user.IsActive {
			if err := tx.Model(user).Update("is_active", *req.IsActive).Error; err != nil {
				return err
			}
			user.IsActive = *req.IsActive
		}
		return nil
	})
	if err != nil {
		return grantError(c, err)
	}

	zlog.Info("user profile updated",
		zap.String("user_id", userID.String()),
		zap.String("by", actor.UserID.String()),
	)
	return helper.JsonUpdated(c, "Usuário atualizado", dto.ToUserProfileResponse(user, profile))
}
