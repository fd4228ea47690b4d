package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/inventorysoft/backend/internal/models"
	"gorm.io/gorm"
)

// ColumnConfigService owns the per-table column layout: which columns each
// list view shows, their order, width and visibility. Built-in defaults are
// seeded lazily on first access and restored wholesale by ResetToDefaults.
type ColumnConfigService struct {
	db *gorm.DB
}

func NewColumnConfigService(db *gorm.DB) *ColumnConfigService {
	return &ColumnConfigService{db: db}
}

type defaultColumn struct {
	field   string
	label   string
	width   float64 // 0 means unconstrained
	visible bool
}

// Static default column tables per table type.
var defaultColumns = map[string][]defaultColumn{
	models.TableTypeInventory: {
		{field: "title", label: "Product", visible: true},
		{field: "sku", label: "SKU", width: 100, visible: true},
		{field: "category", label: "Category", width: 100, visible: true},
		{field: "purchasePrice", label: "Price", width: 80, visible: true},
		{field: "quantity", label: "Stock", width: 60, visible: true},
		{field: "status", label: "Status", width: 100, visible: true},
	},
	models.TableTypeSales: {
		{field: "itemTitle", label: "Item", visible: true},
		{field: "platform", label: "Platform", width: 100, visible: true},
		{field: "soldPrice", label: "Price", width: 80, visible: true},
		{field: "fees", label: "Fees", width: 80, visible: true},
		{field: "profit", label: "Profit", width: 80, visible: true},
		{field: "dateSold", label: "Date Sold", width: 100, visible: true},
	},
	models.TableTypePurchases: {
		{field: "batchName", label: "Batch", visible: true},
		{field: "supplier", label: "Supplier", width: 120, visible: true},
		{field: "cost", label: "Cost", width: 80, visible: true},
		{field: "datePurchased", label: "Date", width: 100, visible: true},
	},
}

// DefaultColumns returns the built-in column set for a table type without
// touching persistence. Callers use it as a fallback when column loading
// fails, so the UI always has a usable table.
func (s *ColumnConfigService) DefaultColumns(tableType string) []models.TableColumnConfig {
	templates := defaultColumns[tableType]
	cols := make([]models.TableColumnConfig, 0, len(templates))
	for i, t := range templates {
		col := models.TableColumnConfig{
			ID:        uuid.NewString(),
			TableType: tableType,
			Field:     t.field,
			Label:     t.label,
			SortOrder: i,
			IsVisible: t.visible,
		}
		if t.width > 0 {
			w := t.width
			col.Width = &w
		}
		cols = append(cols, col)
	}
	return cols
}

// GetColumns returns the persisted columns for a table type ordered by
// sort_order, seeding the built-in defaults inside one transaction when none
// exist yet.
func (s *ColumnConfigService) GetColumns(tableType string) ([]models.TableColumnConfig, error) {
	if !models.ValidTableType(tableType) {
		return nil, newValidationError("unknown_table_type", "unknown table type %q", tableType)
	}

	var cols []models.TableColumnConfig
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("table_type = ?", tableType).
			Order("sort_order asc").Find(&cols).Error; err != nil {
			return err
		}
		if len(cols) > 0 {
			return nil
		}
		cols = s.DefaultColumns(tableType)
		return tx.Create(&cols).Error
	})
	if err != nil {
		return nil, wrapPersistence("GetColumns", err)
	}
	return cols, nil
}

// SaveColumn upserts a single column.
func (s *ColumnConfigService) SaveColumn(col *models.TableColumnConfig) error {
	if !models.ValidTableType(col.TableType) {
		return newValidationError("unknown_table_type", "unknown table type %q", col.TableType)
	}
	if col.Field == "" {
		return newValidationError("field_required", "column field must not be empty")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if col.ID == "" {
			col.ID = uuid.NewString()
			next, err := nextSortOrder(tx, &models.TableColumnConfig{}, "table_type = ?", col.TableType)
			if err != nil {
				return wrapPersistence("SaveColumn", err)
			}
			if col.SortOrder == 0 {
				col.SortOrder = next
			}
			return wrapPersistence("SaveColumn", tx.Create(col).Error)
		}
		return wrapPersistence("SaveColumn", tx.Save(col).Error)
	})
}

// SaveColumns atomically replaces the full column set for a table type.
func (s *ColumnConfigService) SaveColumns(tableType string, cols []models.TableColumnConfig) error {
	if !models.ValidTableType(tableType) {
		return newValidationError("unknown_table_type", "unknown table type %q", tableType)
	}
	for i := range cols {
		if cols[i].Field == "" {
			return newValidationError("field_required", "column %d has no field", i)
		}
		cols[i].TableType = tableType
		if cols[i].ID == "" {
			cols[i].ID = uuid.NewString()
		}
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("table_type = ?", tableType).
			Delete(&models.TableColumnConfig{}).Error; err != nil {
			return err
		}
		if len(cols) == 0 {
			return nil
		}
		return tx.Create(&cols).Error
	})
	return wrapPersistence("SaveColumns", err)
}

// ResetToDefaults restores the built-in column set for a table type. Delete
// and re-seed run in one transaction so a reader never observes an empty set
// for a table that previously had columns.
func (s *ColumnConfigService) ResetToDefaults(tableType string) error {
	if !models.ValidTableType(tableType) {
		return newValidationError("unknown_table_type", "unknown table type %q", tableType)
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("table_type = ?", tableType).
			Delete(&models.TableColumnConfig{}).Error; err != nil {
			return err
		}
		defaults := s.DefaultColumns(tableType)
		return tx.Create(&defaults).Error
	})
	return wrapPersistence("ResetToDefaults", err)
}

// AddCustomFieldColumn derives a column from a custom field definition and
// appends it to the table's column set.
func (s *ColumnConfigService) AddCustomFieldColumn(tableType string, def *models.CustomFieldDefinition) (*models.TableColumnConfig, error) {
	if !models.ValidTableType(tableType) {
		return nil, newValidationError("unknown_table_type", "unknown table type %q", tableType)
	}
	if def == nil || def.ID == "" {
		return nil, newValidationError("unknown_field", "custom field definition is required")
	}

	col := models.TableColumnConfig{
		ID:            uuid.NewString(),
		TableType:     tableType,
		Field:         def.ID,
		Label:         def.Name,
		IsVisible:     true,
		IsCustomField: true,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.TableColumnConfig
		err := tx.Where("table_type = ? AND field = ?", tableType, def.ID).First(&existing).Error
		if err == nil {
			return &ConfigurationConflictError{
				Message: "a column for this custom field already exists",
			}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		next, err := nextSortOrder(tx, &models.TableColumnConfig{}, "table_type = ?", tableType)
		if err != nil {
			return err
		}
		col.SortOrder = next
		return tx.Create(&col).Error
	})
	if err != nil {
		var conflict *ConfigurationConflictError
		if errors.As(err, &conflict) {
			return nil, err
		}
		return nil, wrapPersistence("AddCustomFieldColumn", err)
	}
	return &col, nil
}
