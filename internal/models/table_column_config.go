package models

// Table types backing the configurable list views
const (
	TableTypeInventory = "inventory"
	TableTypeSales     = "sales"
	TableTypePurchases = "purchases"
)

func ValidTableType(t string) bool {
	switch t {
	case TableTypeInventory, TableTypeSales, TableTypePurchases:
		return true
	}
	return false
}

// TableTypeForEntity maps an entity kind to the list view that displays it.
func TableTypeForEntity(appliesTo string) (string, bool) {
	switch appliesTo {
	case AppliesToItem:
		return TableTypeInventory, true
	case AppliesToSale:
		return TableTypeSales, true
	case AppliesToPurchase:
		return TableTypePurchases, true
	}
	return "", false
}

// TableColumnConfig is one column of one list view: which field it projects,
// how it is labelled, how wide it is and where it sits. Columns with
// IsCustomField set project a CustomFieldValue; their Field holds the owning
// CustomFieldDefinition ID.
type TableColumnConfig struct {
	ID            string   `gorm:"primaryKey;size:36" json:"id"`
	TableType     string   `gorm:"size:20;index;not null" json:"table_type"`
	Field         string   `gorm:"size:100;not null" json:"field"`
	Label         string   `gorm:"size:200;not null" json:"label"`
	Width         *float64 `json:"width,omitempty"`
	SortOrder     int      `json:"sort_order"`
	IsVisible     bool     `gorm:"default:true" json:"is_visible"`
	IsCustomField bool     `gorm:"default:false" json:"is_custom_field"`
}

func (TableColumnConfig) TableName() string { return "table_column_configs" }
