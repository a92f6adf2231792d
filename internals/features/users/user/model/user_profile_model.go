package model

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileModel struct {
	UserProfileID        uuid.UUID  `gorm:"column:user_profile_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"user_profile_id"`
	UserProfileUserID    uuid.UUID  `gorm:"column:user_profile_user_id;type:uuid;not null;uniqueIndex:uq_user_profiles_user" json:"user_profile_user_id"`
	UserProfileFirstName string     `gorm:"column:user_profile_first_name;type:varchar(100);not null" json:"user_profile_first_name"`
	UserProfileLastName  *string    `gorm:"column:user_profile_last_name;type:varchar(100)" json:"user_profile_last_name,omitempty"`
	UserProfileRole      string     `gorm:"column:user_profile_role;type:varchar(20);not null" json:"user_profile_role"`
	UserProfileUnitID    *uuid.UUID `gorm:"column:user_profile_unit_id;type:uuid" json:"user_profile_unit_id,omitempty"`
	UserProfileCreatedAt time.Time  `gorm:"column:user_profile_created_at;not null;autoCreateTime" json:"user_profile_created_at"`
	UserProfileUpdatedAt time.Time  `gorm:"column:user_profile_updated_at;not null;autoUpdateTime" json:"user_profile_updated_at"`
}

func (UserProfileModel) TableName() string {
	return "user_profiles"
}
