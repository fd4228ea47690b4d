package services

import (
	"errors"

	"github.com/inventorysoft/backend/internal/models"
	"gorm.io/gorm"
)

// PreferencesService owns the single-row user preference record, including
// the analytics customization flag the chart bootstrap depends on.
type PreferencesService struct {
	db *gorm.DB
}

func NewPreferencesService(db *gorm.DB) *PreferencesService {
	return &PreferencesService{db: db}
}

// Get returns the preference row, creating it with defaults when absent.
func (s *PreferencesService) Get() (*models.UserPreferences, error) {
	prefs, err := getPreferences(s.db)
	if err != nil {
		return nil, wrapPersistence("GetPreferences", err)
	}
	return prefs, nil
}

// Save persists the full preference record. The customization flag is never
// cleared through this path: once true it stays true.
func (s *PreferencesService) Save(prefs *models.UserPreferences) error {
	prefs.ID = models.PreferencesRowID
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := getPreferences(tx)
		if err != nil {
			return err
		}
		if existing.HasCustomizedAnalytics {
			prefs.HasCustomizedAnalytics = true
		}
		return tx.Save(prefs).Error
	})
	return wrapPersistence("SavePreferences", err)
}

// getPreferences loads or lazily creates the preference row inside the given
// handle (plain DB or transaction).
func getPreferences(tx *gorm.DB) (*models.UserPreferences, error) {
	var prefs models.UserPreferences
	err := tx.First(&prefs, "id = ?", models.PreferencesRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prefs = models.DefaultPreferences()
		if err := tx.Create(&prefs).Error; err != nil {
			return nil, err
		}
		return &prefs, nil
	}
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

// markAnalyticsCustomized flips the one-way customization flag inside the
// caller's transaction.
func markAnalyticsCustomized(tx *gorm.DB) error {
	if _, err := getPreferences(tx); err != nil {
		return err
	}
	return tx.Model(&models.UserPreferences{}).
		Where("id = ?", models.PreferencesRowID).
		Update("has_customized_analytics", true).Error
}
