package service

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestGetSettingsCreatesDefaults(t *testing.T) {
	env := newTestEnv(t)

	settings, err := env.settings.GetSettings()
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if settings.StoreName != "Default Store" || settings.Currency != "USD" || settings.Timezone != "UTC" {
		t.Fatalf("unexpected defaults: %+v", settings)
	}
	if settings.LowStockThreshold != 10 {
		t.Fatalf("threshold = %d, want 10", settings.LowStockThreshold)
	}
	if !settings.VatRate.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("vat rate = %s, want 20", settings.VatRate)
	}

	// Repeated reads return the same singleton row.
	again, err := env.settings.GetSettings()
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if again.ID != settings.ID {
		t.Fatalf("a second settings row was created")
	}
}

func TestUpdateSettings(t *testing.T) {
	env := newTestEnv(t)

	name := "Corner Shop"
	threshold := 25
	rate := decimal.RequireFromString("7.5")
	updated, err := env.settings.UpdateSettings(&UpdateSettingsRequest{
		StoreName:         &name,
		LowStockThreshold: &threshold,
		VatRate:           &rate,
	}, "admin")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.StoreName != name || updated.LowStockThreshold != threshold {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.Currency != "USD" {
		t.Fatalf("untouched field changed: %q", updated.Currency)
	}

	reloaded, err := env.settings.GetSettings()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.VatRate.Equal(rate) {
		t.Fatalf("vat rate = %s, want %s", reloaded.VatRate, rate)
	}

	badTZ := "Mars/Olympus_Mons"
	if _, err := env.settings.UpdateSettings(&UpdateSettingsRequest{Timezone: &badTZ}, "admin"); err == nil {
		t.Fatalf("unknown timezone accepted")
	}
	negative := -5
	if _, err := env.settings.UpdateSettings(&UpdateSettingsRequest{LowStockThreshold: &negative}, "admin"); err == nil {
		t.Fatalf("negative threshold accepted")
	}
	badRate := decimal.RequireFromString("-1")
	if _, err := env.settings.UpdateSettings(&UpdateSettingsRequest{VatRate: &badRate}, "admin"); err == nil {
		t.Fatalf("negative vat rate accepted")
	}
}
