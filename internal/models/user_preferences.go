package models

import "time"

// UserPreferences is the single-row preference record (ID is always 1).
// HasCustomizedAnalytics gates the one-time injection of default charts: it
// flips to true the first time defaults are injected or the user edits the
// chart set, and never flips back.
type UserPreferences struct {
	ID                       uint      `gorm:"primaryKey" json:"id"`
	BaseCurrency             string    `gorm:"size:10;default:USD" json:"base_currency"`
	DisplayCurrency          string    `gorm:"size:10;default:USD" json:"display_currency"`
	DateFormat               string    `gorm:"size:20;default:DD/MM/YYYY" json:"date_format"`
	FirstDayOfWeek           string    `gorm:"size:10;default:Sunday" json:"first_day_of_week"`
	ThemeMode                string    `gorm:"size:10;default:System" json:"theme_mode"`
	CompactMode              bool      `gorm:"default:false" json:"compact_mode"`
	AccentColor              string    `gorm:"size:20;default:Blue" json:"accent_color"`
	AllowDashboardEditing    bool      `gorm:"default:true" json:"allow_dashboard_editing"`
	DefaultAnalyticsRange    string    `gorm:"size:20;default:'Last 30 Days'" json:"default_analytics_range"`
	DefaultAnalyticsInterval string    `gorm:"size:20;default:Daily" json:"default_analytics_interval"`
	HasCustomizedAnalytics   bool      `gorm:"default:false" json:"has_customized_analytics"`
	BackupFrequency          string    `gorm:"size:20;default:Off" json:"backup_frequency"`
	UpdatedAt                time.Time `json:"updated_at"`
}

func (UserPreferences) TableName() string { return "user_preferences" }

// PreferencesRowID is the fixed primary key of the single preference row.
const PreferencesRowID uint = 1

// DefaultPreferences returns the preference row with factory values.
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		ID:                       PreferencesRowID,
		BaseCurrency:             "USD",
		DisplayCurrency:          "USD",
		DateFormat:               "DD/MM/YYYY",
		FirstDayOfWeek:           "Sunday",
		ThemeMode:                "System",
		AccentColor:              "Blue",
		AllowDashboardEditing:    true,
		DefaultAnalyticsRange:    "Last 30 Days",
		DefaultAnalyticsInterval: "Daily",
		BackupFrequency:          "Off",
	}
}
