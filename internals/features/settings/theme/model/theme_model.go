package model

import "time"

const ThemeSingletonID = 1

// ThemeSettingModel is a single row (id = 1).
type ThemeSettingModel struct {
	ThemeSettingID        int       `gorm:"column:theme_setting_id;primaryKey;autoIncrement:false" json:"-"`
	ThemeSettingTheme     string    `gorm:"column:theme_setting_theme;type:varchar(50);not null;default:'light'" json:"theme"`
	ThemeSettingAutomatic bool      `gorm:"column:theme_setting_automatic;not null;default:false" json:"automatic"`
	ThemeSettingUpdatedAt time.Time `gorm:"column:theme_setting_updated_at;not null" json:"updated_at"`
}

func (ThemeSettingModel) TableName() string { return "theme_settings" }
