package dto

import (
	"time"

	"github.com/google/uuid"

	"cra_backend/internals/features/organization/service_types/model"
)

type CreateServiceTypeRequest struct {
	Name string `json:"name" validate:"required,min=2,max=120"`
}

type ServiceTypeResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func ToServiceTypeResponse(m *model.ServiceTypeModel) ServiceTypeResponse {
	return ServiceTypeResponse{ID: m.ServiceTypeID, Name: m.ServiceTypeName, CreatedAt: m.ServiceTypeCreatedAt}
}

func ToServiceTypeResponseList(rows []model.ServiceTypeModel) []ServiceTypeResponse {
	out := make([]ServiceTypeResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToServiceTypeResponse(&rows[i]))
	}
	return out
}
