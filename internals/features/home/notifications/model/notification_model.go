package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationModel is a system-wide message. NotificationUnitID nil means
// every unit.
type NotificationModel struct {
	NotificationID        uuid.UUID  `gorm:"column:notification_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"notification_id"`
	NotificationMessage   string     `gorm:"column:notification_message;type:text;not null" json:"notification_message"`
	NotificationUnitID    *uuid.UUID `gorm:"column:notification_unit_id;type:uuid" json:"notification_unit_id"`
	NotificationCreatedBy *uuid.UUID `gorm:"column:notification_created_by;type:uuid" json:"notification_created_by,omitempty"`
	NotificationCreatedAt time.Time  `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

// NotificationAckModel records one recipient's acknowledgment.
type NotificationAckModel struct {
	NotificationAckNotificationID uuid.UUID `gorm:"column:notification_ack_notification_id;type:uuid;primaryKey" json:"notification_id"`
	NotificationAckUserID         uuid.UUID `gorm:"column:notification_ack_user_id;type:uuid;primaryKey" json:"user_id"`
	NotificationAckAt             time.Time `gorm:"column:notification_ack_at;not null" json:"acknowledged_at"`
}

func (NotificationAckModel) TableName() string {
	return "notification_acks"
}
