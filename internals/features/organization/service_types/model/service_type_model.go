package model

import (
	"time"

	"github.com/google/uuid"
)

type ServiceTypeModel struct {
	ServiceTypeID        uuid.UUID `gorm:"column:service_type_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"service_type_id"`
	ServiceTypeName      string    `gorm:"column:service_type_name;type:varchar(120);not null;uniqueIndex:uq_service_types_name" json:"service_type_name"`
	ServiceTypeCreatedAt time.Time `gorm:"column:service_type_created_at;not null;autoCreateTime" json:"service_type_created_at"`
}

func (ServiceTypeModel) TableName() string { return "service_types" }
