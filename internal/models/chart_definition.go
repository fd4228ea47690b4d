package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Chart types
const (
	ChartTypeNone  = "none"
	ChartTypeBar   = "bar"
	ChartTypeLine  = "line"
	ChartTypeArea  = "area"
	ChartTypeDonut = "donut"
	ChartTypeTable = "table"
)

// Chart data sources
const (
	DataSourceInventory = "inventory"
	DataSourceSales     = "sales"
	DataSourcePurchases = "purchases"
	DataSourceCombined  = "combined"
)

// Aggregation functions applied per bucket
const (
	AggregationSum     = "sum"
	AggregationAverage = "average"
	AggregationCount   = "count"
	AggregationMin     = "min"
	AggregationMax     = "max"
)

// Formula operations combining two aggregated fields
const (
	FormulaAdd      = "add"
	FormulaSubtract = "subtract"
	FormulaMultiply = "multiply"
	FormulaDivide   = "divide"
)

func ValidChartType(t string) bool {
	switch t {
	case ChartTypeNone, ChartTypeBar, ChartTypeLine, ChartTypeArea, ChartTypeDonut, ChartTypeTable:
		return true
	}
	return false
}

func ValidDataSource(s string) bool {
	switch s {
	case DataSourceInventory, DataSourceSales, DataSourcePurchases, DataSourceCombined:
		return true
	}
	return false
}

func ValidAggregation(a string) bool {
	switch a {
	case AggregationSum, AggregationAverage, AggregationCount, AggregationMin, AggregationMax:
		return true
	}
	return false
}

func ValidFormulaOperation(op string) bool {
	switch op {
	case FormulaAdd, FormulaSubtract, FormulaMultiply, FormulaDivide:
		return true
	}
	return false
}

// FormulaConfig replaces a chart's plotted value with operation(field1, field2),
// each field aggregated per bucket before the operation is applied. Stored as a
// JSON text column on chart_definitions.
type FormulaConfig struct {
	Operation string `json:"operation"`
	Field1    string `json:"field1"`
	Field2    string `json:"field2"`
}

func (f FormulaConfig) Value() (driver.Value, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (f *FormulaConfig) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return json.Unmarshal([]byte(v), f)
	case []byte:
		return json.Unmarshal(v, f)
	default:
		return fmt.Errorf("cannot scan %T into FormulaConfig", value)
	}
}

var _ driver.Valuer = FormulaConfig{}

// ChartDefinition is one user-defined analytics widget.
type ChartDefinition struct {
	ID           string         `gorm:"primaryKey;size:36" json:"id"`
	Title        string         `gorm:"size:200;not null" json:"title"`
	ChartType    string         `gorm:"size:20;not null" json:"chart_type"`
	DataSource   string         `gorm:"size:20;not null" json:"data_source"`
	XField       string         `gorm:"size:100" json:"x_field"`
	YField       string         `gorm:"size:100" json:"y_field"`
	Aggregation  string         `gorm:"size:20;not null" json:"aggregation"`
	GroupBy      *string        `gorm:"size:100" json:"group_by,omitempty"`
	ColorPalette string         `gorm:"size:50;default:default" json:"color_palette"`
	Formula      *FormulaConfig `gorm:"type:text" json:"formula,omitempty"`
	SortOrder    int            `json:"sort_order"`
}

func (ChartDefinition) TableName() string { return "chart_definitions" }

// Well-known IDs for the built-in default charts. Fixed so that concurrent
// first-run bootstrap attempts collapse on the primary key instead of
// inserting duplicates.
const (
	DefaultChartRevenueTrendID    = "5b0f0d3a-9c1e-4f6b-8a47-2d84f1c90a01"
	DefaultChartSalesByCategoryID = "5b0f0d3a-9c1e-4f6b-8a47-2d84f1c90a02"
	DefaultChartTopProductsID     = "5b0f0d3a-9c1e-4f6b-8a47-2d84f1c90a03"
)

// DefaultCharts returns fresh copies of the built-in starter charts.
func DefaultCharts() []ChartDefinition {
	category := "category"
	return []ChartDefinition{
		{
			ID:           DefaultChartRevenueTrendID,
			Title:        "Revenue Trend",
			ChartType:    ChartTypeBar,
			DataSource:   DataSourceSales,
			XField:       "dateSold",
			YField:       "soldPrice",
			Aggregation:  AggregationSum,
			ColorPalette: "default",
			SortOrder:    0,
		},
		{
			ID:           DefaultChartSalesByCategoryID,
			Title:        "Sales by Category",
			ChartType:    ChartTypeDonut,
			DataSource:   DataSourceInventory,
			XField:       "category",
			YField:       "id",
			Aggregation:  AggregationCount,
			GroupBy:      &category,
			ColorPalette: "default",
			SortOrder:    1,
		},
		{
			ID:           DefaultChartTopProductsID,
			Title:        "Top Products",
			ChartType:    ChartTypeBar,
			DataSource:   DataSourceSales,
			XField:       "itemId",
			YField:       "soldPrice",
			Aggregation:  AggregationSum,
			ColorPalette: "default",
			SortOrder:    2,
		},
	}
}

// ChartColorPalettes maps palette keys to hex color cycles.
var ChartColorPalettes = map[string][]string{
	"default": {"#FFFFFF", "#3DDC97", "#F2A93B", "#3498DB", "#E74C3C"},
	"blue":    {"#3498DB", "#5DADE2", "#85C1E9", "#AED6F1", "#D6EAF8"},
	"green":   {"#27AE60", "#52BE80", "#7DCEA0", "#A9DFBF", "#D5F4E6"},
	"purple":  {"#8E44AD", "#A569BD", "#BB8FCE", "#D2B4DE", "#E8DAEF"},
	"orange":  {"#E67E22", "#EB984E", "#F0B27A", "#F5CBA7", "#FAE5D3"},
}

// PaletteColors returns the colors for a named palette, falling back to default.
func PaletteColors(name string) []string {
	if colors, ok := ChartColorPalettes[name]; ok {
		return colors
	}
	return ChartColorPalettes["default"]
}
