package services

import (
	"testing"

	"github.com/inventorysoft/backend/internal/models"
)

func TestPreferences_LazyCreateWithDefaults(t *testing.T) {
	svc := NewPreferencesService(newTestDB(t))

	prefs, err := svc.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if prefs.ID != models.PreferencesRowID {
		t.Errorf("ID = %d, expected %d", prefs.ID, models.PreferencesRowID)
	}
	if prefs.BaseCurrency != "USD" {
		t.Errorf("BaseCurrency = %q, expected USD", prefs.BaseCurrency)
	}
	if prefs.HasCustomizedAnalytics {
		t.Error("fresh preferences should not be marked customized")
	}
}

func TestPreferences_SaveUpdatesSingleRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewPreferencesService(db)

	prefs, err := svc.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	prefs.ThemeMode = "Dark"
	prefs.DisplayCurrency = "EUR"
	if err := svc.Save(prefs); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := svc.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if reloaded.ThemeMode != "Dark" || reloaded.DisplayCurrency != "EUR" {
		t.Errorf("reloaded = %+v", reloaded)
	}

	var count int64
	db.Model(&models.UserPreferences{}).Count(&count)
	if count != 1 {
		t.Errorf("preferences must stay a single row, got %d", count)
	}
}

func TestPreferences_SaveNeverClearsCustomizationFlag(t *testing.T) {
	db := newTestDB(t)
	svc := NewPreferencesService(db)

	if err := markAnalyticsCustomized(db); err != nil {
		t.Fatalf("markAnalyticsCustomized: %v", err)
	}

	prefs, err := svc.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	prefs.HasCustomizedAnalytics = false
	if err := svc.Save(prefs); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := svc.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reloaded.HasCustomizedAnalytics {
		t.Error("the customization flag is one-way and must survive a save")
	}
}
