package model

import (
	"time"

	"github.com/google/uuid"
)

type UnitModel struct {
	UnitID        uuid.UUID `gorm:"column:unit_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"unit_id"`
	UnitName      string    `gorm:"column:unit_name;type:varchar(150);not null" json:"unit_name"`
	UnitCreatedAt time.Time `gorm:"column:unit_created_at;not null;autoCreateTime" json:"unit_created_at"`
	UnitUpdatedAt time.Time `gorm:"column:unit_updated_at;not null;autoUpdateTime" json:"unit_updated_at"`
}

func (UnitModel) TableName() string { return "units" }
