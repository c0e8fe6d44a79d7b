package service

import (
	"errors"
	"time"

	"go-retail-pos/internal/apperr"
	"go-retail-pos/internal/cache"
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SettingsService interface {
	GetSettings() (*model.Settings, error)
	UpdateSettings(req *UpdateSettingsRequest, actor string) (*model.Settings, error)
}

// UpdateSettingsRequest whitelists the editable fields; nil means unchanged.
type UpdateSettingsRequest struct {
	StoreName         *string          `json:"store_name"`
	Currency          *string          `json:"currency"`
	Timezone          *string          `json:"timezone"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
	VatRate           *decimal.Decimal `json:"vat_rate"`
}

type settingsService struct {
	repo  repository.SettingsRepository
	cache cache.SettingsCache
}

func NewSettingsService(repo repository.SettingsRepository, c cache.SettingsCache) SettingsService {
	return &settingsService{repo: repo, cache: c}
}

// GetSettings returns the singleton settings row, creating it with defaults
// on first read.
func (s *settingsService) GetSettings() (*model.Settings, error) {
	if cached, ok := s.cache.Get(); ok {
		return cached, nil
	}

	settings, err := s.repo.First()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = model.DefaultSettings()
		settings.CreatedBy = "system"
		settings.UpdatedBy = "system"
		if err := s.repo.Create(settings); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	s.cache.Set(settings)
	return settings, nil
}

func (s *settingsService) UpdateSettings(req *UpdateSettingsRequest, actor string) (*model.Settings, error) {
	settings, err := s.GetSettings()
	if err != nil {
		return nil, err
	}

	if req.StoreName != nil {
		if *req.StoreName == "" {
			return nil, apperr.Validation("store name must not be empty")
		}
		settings.StoreName = *req.StoreName
	}
	if req.Currency != nil {
		if *req.Currency == "" {
			return nil, apperr.Validation("currency must not be empty")
		}
		settings.Currency = *req.Currency
	}
	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return nil, apperr.Validation("unknown timezone %q", *req.Timezone)
		}
		settings.Timezone = *req.Timezone
	}
	if req.LowStockThreshold != nil {
		if *req.LowStockThreshold < 0 {
			return nil, apperr.Validation("low stock threshold must not be negative")
		}
		settings.LowStockThreshold = *req.LowStockThreshold
	}
	if req.VatRate != nil {
		if req.VatRate.IsNegative() {
			return nil, apperr.Validation("VAT rate must not be negative")
		}
		settings.VatRate = *req.VatRate
	}

	settings.UpdatedBy = actor
	if err := s.repo.Update(settings); err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	return settings, nil
}
