package services

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/inventorysoft/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnalyticsConfigService owns the user-defined chart set and its one-time
// default bootstrap. The central contract: the built-in defaults are injected
// exactly once over the lifetime of the data store, on the first GetCharts
// against an empty set with the customization flag unset, and never again,
// no matter how often the empty-set branch is hit afterwards.
type AnalyticsConfigService struct {
	db *gorm.DB

	// mu serializes the bootstrap window so concurrent first calls cannot
	// race past the empty check before the flag is persisted. The default
	// charts also carry fixed IDs, so even a racing writer collapses on the
	// primary key instead of duplicating rows.
	mu sync.Mutex
}

func NewAnalyticsConfigService(db *gorm.DB) *AnalyticsConfigService {
	return &AnalyticsConfigService{db: db}
}

// GetCharts returns the chart set ordered by sort_order. On a true first run
// (empty set, customization flag false) it injects the built-in defaults,
// flips the flag and returns the defaults, all in one transaction. An empty
// set with the flag already true is an intentional user state and is returned
// as-is.
func (s *AnalyticsConfigService) GetCharts() ([]models.ChartDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var charts []models.ChartDefinition
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("sort_order asc").Find(&charts).Error; err != nil {
			return err
		}
		if len(charts) > 0 {
			return nil
		}

		prefs, err := getPreferences(tx)
		if err != nil {
			return err
		}
		if prefs.HasCustomizedAnalytics {
			// The user emptied the set on purpose. Do not re-inject.
			return nil
		}

		defaults := models.DefaultCharts()
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&defaults).Error; err != nil {
			return err
		}
		if err := markAnalyticsCustomized(tx); err != nil {
			return err
		}
		charts = defaults
		return nil
	})
	if err != nil {
		return nil, wrapPersistence("GetCharts", err)
	}
	if charts == nil {
		charts = []models.ChartDefinition{}
	}
	return charts, nil
}

// GetChart looks up a single chart by ID. Returns nil when no chart exists.
func (s *AnalyticsConfigService) GetChart(id string) (*models.ChartDefinition, error) {
	var chart models.ChartDefinition
	if err := s.db.First(&chart, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapPersistence("GetChart", err)
	}
	return &chart, nil
}

func validateChart(chart *models.ChartDefinition) error {
	if strings.TrimSpace(chart.Title) == "" {
		return newValidationError("title_required", "chart title must not be empty")
	}
	if !models.ValidChartType(chart.ChartType) {
		return newValidationError("unknown_chart_type", "unknown chart type %q", chart.ChartType)
	}
	if !models.ValidDataSource(chart.DataSource) {
		return newValidationError("unknown_data_source", "unknown data source %q", chart.DataSource)
	}
	if !models.ValidAggregation(chart.Aggregation) {
		return newValidationError("unknown_aggregation", "unknown aggregation %q", chart.Aggregation)
	}
	if chart.Formula != nil {
		if !models.ValidFormulaOperation(chart.Formula.Operation) {
			return newValidationError("unknown_formula_operation",
				"unknown formula operation %q", chart.Formula.Operation)
		}
		if chart.Formula.Field1 == "" || chart.Formula.Field2 == "" {
			return newValidationError("formula_fields_required",
				"formula requires both field1 and field2")
		}
	}
	if chart.ColorPalette == "" {
		chart.ColorPalette = "default"
	}
	return nil
}

// SaveChart validates and upserts one chart. Any explicit save counts as
// customization, even one that restores the default shape.
func (s *AnalyticsConfigService) SaveChart(chart *models.ChartDefinition) error {
	if err := validateChart(chart); err != nil {
		return err
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if chart.ID == "" {
			chart.ID = uuid.NewString()
			next, err := nextSortOrder(tx, &models.ChartDefinition{}, "1 = 1")
			if err != nil {
				return err
			}
			chart.SortOrder = next
			if err := tx.Create(chart).Error; err != nil {
				return err
			}
		} else if err := tx.Save(chart).Error; err != nil {
			return err
		}
		return markAnalyticsCustomized(tx)
	})
	return wrapPersistence("SaveChart", err)
}

// DeleteChart removes one chart and marks the set as customized, so an empty
// set resulting from deletion is preserved rather than re-seeded.
func (s *AnalyticsConfigService) DeleteChart(id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ChartDefinition{}, "id = ?", id).Error; err != nil {
			return err
		}
		return markAnalyticsCustomized(tx)
	})
	return wrapPersistence("DeleteChart", err)
}

// DuplicateChart copies an existing chart under a new ID with the copy suffix
// and appends it to the end of the set.
func (s *AnalyticsConfigService) DuplicateChart(id string) (*models.ChartDefinition, error) {
	var dup models.ChartDefinition
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var original models.ChartDefinition
		if err := tx.First(&original, "id = ?", id).Error; err != nil {
			return err
		}
		dup = original
		dup.ID = uuid.NewString()
		dup.Title = original.Title + " (Copy)"
		next, err := nextSortOrder(tx, &models.ChartDefinition{}, "1 = 1")
		if err != nil {
			return err
		}
		dup.SortOrder = next
		if err := tx.Create(&dup).Error; err != nil {
			return err
		}
		return markAnalyticsCustomized(tx)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newValidationError("unknown_chart", "chart %s does not exist", id)
		}
		return nil, wrapPersistence("DuplicateChart", err)
	}
	return &dup, nil
}

// UpdateChartOrder rewrites sort_order for the full set. A pure reorder is
// not a content change, so the customization flag is left untouched.
func (s *AnalyticsConfigService) UpdateChartOrder(charts []models.ChartDefinition) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range charts {
			if charts[i].ID == "" {
				return newValidationError("id_required", "chart at position %d has no id", i)
			}
			if err := tx.Model(&models.ChartDefinition{}).
				Where("id = ?", charts[i].ID).
				Update("sort_order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if IsValidationError(err) {
			return err
		}
		return wrapPersistence("UpdateChartOrder", err)
	}
	return nil
}

// ResetToDefaults replaces the entire chart set with the built-in defaults in
// one transaction. The customization flag is already true by the time a reset
// is reachable, so it is not touched.
func (s *AnalyticsConfigService) ResetToDefaults() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ChartDefinition{}).Error; err != nil {
			return err
		}
		defaults := models.DefaultCharts()
		return tx.Create(&defaults).Error
	})
	return wrapPersistence("ResetToDefaults", err)
}
