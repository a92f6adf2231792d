package dto

import (
	"time"

	"github.com/google/uuid"

	"cra_backend/internals/features/organization/staff/model"
	helper "cra_backend/internals/helpers"
)

type CreateStaffRequest struct {
	Name          string     `json:"name" validate:"required,min=3,max=200"`
	ServiceWindow *string    `json:"service_window" validate:"omitempty,max=50"`
	UnitID        *uuid.UUID `json:"unit_id"` // SUPER_ADMIN only
}

func (r *CreateStaffRequest) Normalize() {
	r.Name = helper.NormalizeUpper(r.Name)
	r.ServiceWindow = helper.CleanOptional(r.ServiceWindow)
}

func (r *CreateStaffRequest) ToModel(unitID *uuid.UUID) *model.StaffModel {
	return &model.StaffModel{
		StaffName:          r.Name,
		StaffServiceWindow: r.ServiceWindow,
		StaffUnitID:        unitID,
	}
}

type UpdateStaffRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=3,max=200"`
	ServiceWindow *string `json:"service_window" validate:"omitempty,max=50"`
}

func (r *UpdateStaffRequest) Normalize() {
	if r.Name != nil {
		v := helper.NormalizeUpper(*r.Name)
		r.Name = &v
	}
}

func (r *UpdateStaffRequest) ApplyTo(m *model.StaffModel) map[string]any {
	upd := map[string]any{}
	if r.Name != nil {
		m.StaffName = *r.Name
		upd["staff_name"] = *r.Name
	}
	if r.ServiceWindow != nil {
		m.StaffServiceWindow = helper.CleanOptional(r.ServiceWindow)
		upd["staff_service_window"] = m.StaffServiceWindow
	}
	return upd
}

type StaffResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	ServiceWindow *string    `json:"service_window,omitempty"`
	UnitID        *uuid.UUID `json:"unit_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func ToStaffResponse(m *model.StaffModel) StaffResponse {
	return StaffResponse{
		ID:            m.StaffID,
		Name:          m.StaffName,
		ServiceWindow: m.StaffServiceWindow,
		UnitID:        m.StaffUnitID,
		CreatedAt:     m.StaffCreatedAt,
		UpdatedAt:     m.StaffUpdatedAt,
	}
}

func ToStaffResponseList(rows []model.StaffModel) []StaffResponse {
	out := make([]StaffResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToStaffResponse(&rows[i]))
	}
	return out
}
