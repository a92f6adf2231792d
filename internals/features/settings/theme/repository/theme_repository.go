package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cra_backend/internals/features/settings/theme/model"
)

const DefaultTheme = "light"

type ThemeRepository struct {
	DB *gorm.DB
}

func NewThemeRepository(db *gorm.DB) *ThemeRepository {
	return &ThemeRepository{DB: db}
}

// Load returns the singleton row, or the defaults when it was never written.
func (r *ThemeRepository) Load(ctx context.Context) (*model.ThemeSettingModel, error) {
	var m model.ThemeSettingModel
	err := r.DB.WithContext(ctx).Where("theme_setting_id = ?", model.ThemeSingletonID).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.ThemeSettingModel{ThemeSettingID: model.ThemeSingletonID, ThemeSettingTheme: DefaultTheme}, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ThemeRepository) Save(ctx context.Context, m *model.ThemeSettingModel) error {
	m.ThemeSettingID = model.ThemeSingletonID
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "theme_setting_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"theme_setting_theme", "theme_setting_automatic", "theme_setting_updated_at"}),
		}).
		Create(m).Error
}
