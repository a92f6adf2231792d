package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNoUnit       = fiber.NewError(fiber.StatusForbidden, "Usuário sem unidade vinculada")
	ErrUnitRequired = fiber.NewError(fiber.StatusUnprocessableEntity, "Informe unit_id")
)

// Scope is the set of units a caller may read or write.
//   - All: SUPER_ADMIN without a unit filter.
//   - UnitID: a single unit.
//   - None: caller has no unit; queries must return nothing.
type Scope struct {
	All    bool
	UnitID *uuid.UUID
}

func (s Scope) None() bool { return !s.All && s.UnitID == nil }

// ResolveScope derives the unit scope. A SUPER_ADMIN may narrow to one unit
// with requested; everyone else is pinned to the unit in their profile.
func ResolveScope(s *Session, requested *uuid.UUID) Scope {
	if s.IsSuperAdmin() {
		if requested != nil && *requested != uuid.Nil {
			id := *requested
			return Scope{UnitID: &id}
		}
		return Scope{All: true}
	}
	if s == nil || s.ProfileMissing || s.UnitID == nil {
		return Scope{}
	}
	id := *s.UnitID
	return Scope{UnitID: &id}
}

// ResolveWriteUnit picks the unit a new row belongs to. Unlike ResolveScope it
// never yields "all units": a SUPER_ADMIN without requested falls back to
// their profile unit and must name one when they have none.
func ResolveWriteUnit(s *Session, requested *uuid.UUID) (*uuid.UUID, error) {
	sc := ResolveScope(s, requested)
	switch {
	case sc.UnitID != nil:
		return sc.UnitID, nil
	case sc.All && s.UnitID != nil:
		id := *s.UnitID
		return &id, nil
	case sc.All:
		return nil, ErrUnitRequired
	default:
		return nil, ErrNoUnit
	}
}

// Apply adds the unit predicate on column. For None it adds a false predicate.
func (s Scope) Apply(q *gorm.DB, column string) *gorm.DB {
	switch {
	case s.All:
		return q
	case s.UnitID != nil:
		return q.Where(column+" = ?", *s.UnitID)
	default:
		return q.Where("1 = 0")
	}
}

// Allows reports whether a row of unitID is inside the scope.
func (s Scope) Allows(unitID *uuid.UUID) bool {
	if s.All {
		return true
	}
	if s.UnitID == nil || unitID == nil {
		return false
	}
	return *s.UnitID == *unitID
}
