package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	profilemodel "cra_backend/internals/features/users/user/model"
	helper "cra_backend/internals/helpers"
)

/* ===========================
   Requests
   =========================== */

type CreateUserRequest struct {
	Email     string     `json:"email"      validate:"required,email,max=255"`
	Password  string     `json:"password"   validate:"required,min=8,max=72"`
	FirstName string     `json:"first_name" validate:"required,min=2,max=100"`
	LastName  *string    `json:"last_name"  validate:"omitempty,max=100"`
	Role      string     `json:"role"       validate:"required,oneof=ADMIN ATENDENTE TRIAGEM SUPER_ADMIN"`
	UnitID    *uuid.UUID `json:"unit_id"`
}

func (r *CreateUserRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = helper.CleanOptional(r.LastName)
	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
}

func (r *CreateUserRequest) ToProfile(userID uuid.UUID, unitID *uuid.UUID) *profilemodel.UserProfileModel {
	return &profilemodel.UserProfileModel{
		UserProfileUserID:    userID,
		UserProfileFirstName: r.FirstName,
		UserProfileLastName:  r.LastName,
		UserProfileRole:      r.Role,
		UserProfileUnitID:    unitID,
	}
}

// UpdateProfileRequest is a partial update. A user without a profile row
// needs first_name and role to be provisioned.
type UpdateProfileRequest struct {
	FirstName *string    `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName  *string    `json:"last_name"  validate:"omitempty,max=100"`
	Role      *string    `json:"role"       validate:"omitempty,oneof=ADMIN ATENDENTE TRIAGEM SUPER_ADMIN"`
	UnitID    *uuid.UUID `json:"unit_id"`
	IsActive  *bool      `json:"is_active"`
}

func (r *UpdateProfileRequest) Normalize() {
	if r.FirstName != nil {
		v := strings.TrimSpace(*r.FirstName)
		r.FirstName = &v
	}
	if r.Role != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.Role))
		r.Role = &v
	}
}

func (r *UpdateProfileRequest) TouchesProfile() bool {
	return r.FirstName != nil || r.LastName != nil || r.Role != nil || r.UnitID != nil
}

// Merge overlays the request on current (nil = new profile) for userID.
func (r *UpdateProfileRequest) Merge(userID uuid.UUID, current *profilemodel.UserProfileModel) profilemodel.UserProfileModel {
	var out profilemodel.UserProfileModel
	if current != nil {
		out = *current
	}
	out.UserProfileUserID = userID
	if r.FirstName != nil {
		out.UserProfileFirstName = *r.FirstName
	}
	if r.LastName != nil {
		out.UserProfileLastName = helper.CleanOptional(r.LastName)
	}
	if r.Role != nil {
		out.UserProfileRole = *r.Role
	}
	if r.UnitID != nil {
		id := *r.UnitID
		out.UserProfileUnitID = &id
	}
	return out
}

/* ===========================
   Response
   =========================== */

type UserProfileResponse struct {
	UserID         uuid.UUID  `json:"user_id"`
	Email          string     `json:"email"`
	IsActive       bool       `json:"is_active"`
	GoogleLinked   bool       `json:"google_linked"`
	ProfileMissing bool       `json:"profile_missing"`
	FirstName      string     `json:"first_name,omitempty"`
	LastName       *string    `json:"last_name,omitempty"`
	Role           string     `json:"role,omitempty"`
	UnitID         *uuid.UUID `json:"unit_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func ToUserProfileResponse(u *profilemodel.UserModel, p *profilemodel.UserProfileModel) UserProfileResponse {
	out := UserProfileResponse{
		UserID:         u.ID,
		Email:          u.Email,
		IsActive:       u.IsActive,
		GoogleLinked:   u.GoogleID != nil && *u.GoogleID != "",
		ProfileMissing: p == nil,
		CreatedAt:      u.CreatedAt,
	}
	if p != nil {
		out.FirstName = p.UserProfileFirstName
		out.LastName = p.UserProfileLastName
		out.Role = p.UserProfileRole
		out.UnitID = p.UserProfileUnitID
	}
	return out
}
