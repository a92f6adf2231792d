package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"cra_backend/internals/features/organization/units/model"
)

type UnitRequest struct {
	Name string `json:"name" validate:"required,min=2,max=150"`
}

func (r *UnitRequest) Normalize() {
	r.Name = strings.Join(strings.Fields(r.Name), " ")
}

type UnitResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToUnitResponse(m *model.UnitModel) UnitResponse {
	return UnitResponse{ID: m.UnitID, Name: m.UnitName, CreatedAt: m.UnitCreatedAt, UpdatedAt: m.UnitUpdatedAt}
}

func ToUnitResponseList(rows []model.UnitModel) []UnitResponse {
	out := make([]UnitResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToUnitResponse(&rows[i]))
	}
	return out
}
