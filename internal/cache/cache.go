// Package cache holds the settings snapshot cache. Settings are read on
// every sale for VAT and currency, so the hot path avoids a DB round trip.
package cache

import "go-retail-pos/internal/model"

type SettingsCache interface {
	Get() (*model.Settings, bool)
	Set(settings *model.Settings)
	Invalidate()
}

// NoopSettingsCache is used when no redis address is configured and in tests.
type NoopSettingsCache struct{}

func (NoopSettingsCache) Get() (*model.Settings, bool) { return nil, false }
func (NoopSettingsCache) Set(*model.Settings)          {}
func (NoopSettingsCache) Invalidate()                  {}
