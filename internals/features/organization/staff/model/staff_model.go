package model

import (
	"time"

	"github.com/google/uuid"
)

// StaffModel is an "atendente". Appointments copy StaffName at assignment.
type StaffModel struct {
	StaffID            uuid.UUID  `gorm:"column:staff_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"staff_id"`
	StaffName          string     `gorm:"column:staff_name;type:varchar(200);not null" json:"staff_name"`
	StaffServiceWindow *string    `gorm:"column:staff_service_window;type:varchar(50)" json:"staff_service_window,omitempty"`
	StaffUnitID        *uuid.UUID `gorm:"column:staff_unit_id;type:uuid" json:"staff_unit_id,omitempty"`
	StaffCreatedAt     time.Time  `gorm:"column:staff_created_at;not null;autoCreateTime" json:"staff_created_at"`
	StaffUpdatedAt     time.Time  `gorm:"column:staff_updated_at;not null;autoUpdateTime" json:"staff_updated_at"`
}

func (StaffModel) TableName() string { return "staff" }
