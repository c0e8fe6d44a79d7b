package repository

import (
	"go-retail-pos/internal/model"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	First() (*model.Settings, error)
	Create(settings *model.Settings) error
	Update(settings *model.Settings) error
}

type settingsRepo struct {
	db *gorm.DB
}

func NewSettingsRepo(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db}
}

func (r *settingsRepo) First() (*model.Settings, error) {
	var settings model.Settings
	if err := r.db.First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepo) Create(settings *model.Settings) error {
	return r.db.Create(settings).Error
}

func (r *settingsRepo) Update(settings *model.Settings) error {
	return r.db.Save(settings).Error
}
