package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	profilemodel "cra_backend/internals/features/users/user/model"
	helperAuth "cra_backend/internals/helpers/auth"
)

func actor(role string, unit *uuid.UUID) *helperAuth.Session {
	return &helperAuth.Session{UserID: uuid.New(), Role: role, UnitID: unit}
}

func TestAuthorizeGrant(t *testing.T) {
	own := uuid.New()
	other := uuid.New()

	cases := []struct {
		name     string
		actor    *helperAuth.Session
		role     string
		unit     *uuid.UUID
		wantUnit *uuid.UUID
		wantErr  error
	}{
		{"admin defaults to own unit", actor("ADMIN", &own), "ATENDENTE", nil, &own, nil},
		{"admin same unit", actor("ADMIN", &own), "TRIAGEM", &own, &own, nil},
		{"admin other unit", actor("ADMIN", &own), "ATENDENTE", &other, nil, ErrOutsideUnit},
		{"admin grants super admin", actor("ADMIN", &own), "super_admin", nil, nil, ErrGrantSuperAdmin},
		{"admin without unit", actor("ADMIN", nil), "ATENDENTE", nil, nil, ErrOutsideUnit},
		{"super admin any unit", actor("SUPER_ADMIN", nil), "ADMIN", &other, &other, nil},
		{"super admin needs unit", actor("SUPER_ADMIN", nil), "ADMIN", nil, nil, ErrUnitRequired},
		{"super admin grants super admin", actor("SUPER_ADMIN", nil), "SUPER_ADMIN", nil, nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := AuthorizeGrant(tc.actor, tc.role, tc.unit)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			switch {
			case tc.wantUnit == nil && got != nil:
				t.Fatalf("unit = %v, want nil", *got)
			case tc.wantUnit != nil && (got == nil || *got != *tc.wantUnit):
				t.Fatalf("unit = %v, want %v", got, *tc.wantUnit)
			}
		})
	}
}

func TestAuthorizeTarget(t *testing.T) {
	own := uuid.New()
	other := uuid.New()
	profile := func(role string, unit *uuid.UUID) *profilemodel.UserProfileModel {
		return &profilemodel.UserProfileModel{UserProfileRole: role, UserProfileUnitID: unit}
	}

	cases := []struct {
		name    string
		actor   *helperAuth.Session
		target  *profilemodel.UserProfileModel
		wantErr error
	}{
		{"admin edits own unit", actor("ADMIN", &own), profile("ATENDENTE", &own), nil},
		{"admin edits other unit", actor("ADMIN", &own), profile("ATENDENTE", &other), ErrOutsideUnit},
		{"admin edits super admin", actor("ADMIN", &own), profile("SUPER_ADMIN", &own), ErrGrantSuperAdmin},
		{"admin adopts unprovisioned", actor("ADMIN", &own), nil, ErrOutsideUnit},
		{"super admin adopts unprovisioned", actor("SUPER_ADMIN", nil), nil, nil},
		{"super admin edits anyone", actor("SUPER_ADMIN", nil), profile("ADMIN", &other), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := AuthorizeTarget(tc.actor, tc.target); !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
