package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"cra_backend/internals/features/home/notifications/model"
)

// ================== REQUEST ==================
type NotificationRequest struct {
	Message string     `json:"message" validate:"required,max=2000"`
	UnitID  *uuid.UUID `json:"unit_id"` // nil = every unit (SUPER_ADMIN only)
}

func (r *NotificationRequest) Normalize() {
	r.Message = strings.TrimSpace(r.Message)
}

func (r *NotificationRequest) ToModel(unitID, createdBy *uuid.UUID) *model.NotificationModel {
	return &model.NotificationModel{
		NotificationMessage:   r.Message,
		NotificationUnitID:    unitID,
		NotificationCreatedBy: createdBy,
	}
}

// ================== RESPONSE ==================
type NotificationResponse struct {
	ID             uuid.UUID  `json:"id"`
	Message        string     `json:"message"`
	UnitID         *uuid.UUID `json:"unit_id"`
	CreatedAt      time.Time  `json:"created_at"`
	AcknowledgedAt *time.Time `json:"acknowledged_at"`
}

func ToNotificationResponse(m *model.NotificationModel, ackAt *time.Time) NotificationResponse {
	return NotificationResponse{
		ID:             m.NotificationID,
		Message:        m.NotificationMessage,
		UnitID:         m.NotificationUnitID,
		CreatedAt:      m.NotificationCreatedAt,
		AcknowledgedAt: ackAt,
	}
}
