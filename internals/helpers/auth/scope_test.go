package helper

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestResolveScope(t *testing.T) {
	unit := uuid.New()
	other := uuid.New()

	super := &Session{UserID: uuid.New(), Role: "SUPER_ADMIN"}
	if s := ResolveScope(super, nil); !s.All {
		t.Fatalf("super admin without filter: %+v", s)
	}
	if s := ResolveScope(super, &other); s.All || s.UnitID == nil || *s.UnitID != other {
		t.Fatalf("super admin with filter: %+v", s)
	}

	admin := &Session{UserID: uuid.New(), Role: "ADMIN", UnitID: &unit}
	if s := ResolveScope(admin, &other); s.All || s.UnitID == nil || *s.UnitID != unit {
		t.Fatalf("admin must stay in own unit: %+v", s)
	}

	for name, sess := range map[string]*Session{
		"nil session":     nil,
		"missing profile": {UserID: uuid.New(), ProfileMissing: true},
		"no unit":         {UserID: uuid.New(), Role: "ATENDENTE"},
	} {
		if s := ResolveScope(sess, &other); !s.None() {
			t.Errorf("%s: want empty scope, got %+v", name, s)
		}
	}
}

func TestScopeAllows(t *testing.T) {
	unit := uuid.New()
	other := uuid.New()

	if !(Scope{All: true}).Allows(nil) {
		t.Fatal("all scope must allow unit-less rows")
	}
	s := Scope{UnitID: &unit}
	if !s.Allows(&unit) || s.Allows(&other) || s.Allows(nil) {
		t.Fatal("unit scope mismatch")
	}
	if (Scope{}).Allows(&unit) {
		t.Fatal("empty scope allows nothing")
	}
}

func TestResolveWriteUnit(t *testing.T) {
	own := uuid.New()
	other := uuid.New()

	cases := []struct {
		name    string
		sess    *Session
		req     *uuid.UUID
		want    *uuid.UUID
		wantErr error
	}{
		{"super admin falls back to own unit", &Session{UserID: uuid.New(), Role: "SUPER_ADMIN", UnitID: &own}, nil, &own, nil},
		{"super admin picks a unit", &Session{UserID: uuid.New(), Role: "SUPER_ADMIN", UnitID: &own}, &other, &other, nil},
		{"super admin without unit must name one", &Session{UserID: uuid.New(), Role: "SUPER_ADMIN"}, nil, nil, ErrUnitRequired},
		{"admin pinned to own unit", &Session{UserID: uuid.New(), Role: "ADMIN", UnitID: &own}, &other, &own, nil},
		{"user without unit", &Session{UserID: uuid.New(), Role: "ATENDENTE"}, nil, nil, ErrNoUnit},
		{"missing profile", &Session{UserID: uuid.New(), ProfileMissing: true}, &other, nil, ErrNoUnit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveWriteUnit(tc.sess, tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if tc.want == nil {
				if got != nil {
					t.Fatalf("unit = %v, want nil", *got)
				}
				return
			}
			if got == nil || *got != *tc.want {
				t.Fatalf("unit = %v, want %v", got, *tc.want)
			}
		})
	}
}
