package services

import (
	"errors"
	"testing"

	"github.com/inventorysoft/backend/internal/models"
)

func TestGetColumns_SeedsDefaultsOnFirstAccess(t *testing.T) {
	db := newTestDB(t)
	svc := NewColumnConfigService(db)

	cols, err := svc.GetColumns(models.TableTypeInventory)
	if err != nil {
		t.Fatalf("GetColumns: %v", err)
	}
	if len(cols) != 6 {
		t.Fatalf("expected 6 default inventory columns, got %d", len(cols))
	}
	if cols[0].Field != "title" || cols[0].Label != "Product" {
		t.Errorf("first column = %s/%s, expected title/Product", cols[0].Field, cols[0].Label)
	}

	// Second access returns the persisted rows, not a fresh seed
	again, err := svc.GetColumns(models.TableTypeInventory)
	if err != nil {
		t.Fatalf("GetColumns again: %v", err)
	}
	if again[0].ID != cols[0].ID {
		t.Error("second access should return the same persisted rows")
	}

	var count int64
	db.Model(&models.TableColumnConfig{}).Count(&count)
	if count != 6 {
		t.Errorf("expected 6 rows total after two reads, got %d", count)
	}
}

func TestGetColumns_UnknownTableType(t *testing.T) {
	svc := NewColumnConfigService(newTestDB(t))
	if _, err := svc.GetColumns("ledger"); !IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestSaveColumns_ReplacesSet(t *testing.T) {
	db := newTestDB(t)
	svc := NewColumnConfigService(db)

	if _, err := svc.GetColumns(models.TableTypeSales); err != nil {
		t.Fatalf("seed: %v", err)
	}

	replacement := []models.TableColumnConfig{
		{Field: "itemTitle", Label: "Item", SortOrder: 0, IsVisible: true},
		{Field: "profit", Label: "Profit", SortOrder: 1, IsVisible: true},
	}
	if err := svc.SaveColumns(models.TableTypeSales, replacement); err != nil {
		t.Fatalf("SaveColumns: %v", err)
	}

	cols, err := svc.GetColumns(models.TableTypeSales)
	if err != nil {
		t.Fatalf("GetColumns: %v", err)
	}
	if len(cols) != 2 {
		t.Fatalf("expected 2 columns after replace, got %d", len(cols))
	}
	for _, col := range cols {
		if col.TableType != models.TableTypeSales {
			t.Errorf("column %s has table type %q", col.Field, col.TableType)
		}
		if col.ID == "" {
			t.Errorf("column %s was saved without an ID", col.Field)
		}
	}
}

func TestSaveColumn_CreateAppendsUpdateKeepsPosition(t *testing.T) {
	db := newTestDB(t)
	svc := NewColumnConfigService(db)

	if _, err := svc.GetColumns(models.TableTypeInventory); err != nil {
		t.Fatalf("seed: %v", err)
	}

	col := &models.TableColumnConfig{TableType: models.TableTypeInventory, Field: "notes", Label: "Notes", IsVisible: true}
	if err := svc.SaveColumn(col); err != nil {
		t.Fatalf("SaveColumn: %v", err)
	}
	if col.ID == "" {
		t.Error("SaveColumn should assign an ID")
	}
	if col.SortOrder != 6 {
		t.Errorf("new column should append after the 6 defaults, got %d", col.SortOrder)
	}

	col.Label = "Remarks"
	col.IsVisible = false
	if err := svc.SaveColumn(col); err != nil {
		t.Fatalf("SaveColumn update: %v", err)
	}

	cols, err := svc.GetColumns(models.TableTypeInventory)
	if err != nil {
		t.Fatalf("GetColumns: %v", err)
	}
	if len(cols) != 7 {
		t.Fatalf("expected 7 columns, got %d", len(cols))
	}
	last := cols[len(cols)-1]
	if last.Label != "Remarks" || last.IsVisible {
		t.Errorf("updated column = %+v", last)
	}

	if err := svc.SaveColumn(&models.TableColumnConfig{TableType: models.TableTypeInventory}); !IsValidationError(err) {
		t.Error("column without field should fail validation")
	}
}

func TestResetToDefaults_RestoresExactDefaultSet(t *testing.T) {
	svc := NewColumnConfigService(newTestDB(t))

	// Mutate the persisted set first
	if err := svc.SaveColumns(models.TableTypePurchases, []models.TableColumnConfig{
		{Field: "cost", Label: "Spend", SortOrder: 0, IsVisible: false},
	}); err != nil {
		t.Fatalf("SaveColumns: %v", err)
	}

	if err := svc.ResetToDefaults(models.TableTypePurchases); err != nil {
		t.Fatalf("ResetToDefaults: %v", err)
	}

	cols, err := svc.GetColumns(models.TableTypePurchases)
	if err != nil {
		t.Fatalf("GetColumns: %v", err)
	}

	want := []struct {
		field string
		label string
	}{
		{"batchName", "Batch"},
		{"supplier", "Supplier"},
		{"cost", "Cost"},
		{"datePurchased", "Date"},
	}
	if len(cols) != len(want) {
		t.Fatalf("expected %d default purchase columns, got %d", len(want), len(cols))
	}
	for i, w := range want {
		if cols[i].Field != w.field || cols[i].Label != w.label {
			t.Errorf("column %d = %s/%s, expected %s/%s", i, cols[i].Field, cols[i].Label, w.field, w.label)
		}
		if cols[i].SortOrder != i {
			t.Errorf("column %d has sort order %d", i, cols[i].SortOrder)
		}
		if !cols[i].IsVisible {
			t.Errorf("default column %s should be visible", cols[i].Field)
		}
	}
}

func TestAddCustomFieldColumn_AppendsAndConflicts(t *testing.T) {
	db := newTestDB(t)
	colSvc := NewColumnConfigService(db)
	fieldSvc := NewCustomFieldService(db)

	def := &models.CustomFieldDefinition{Name: "Weight", Type: models.FieldTypeNumber, AppliesTo: models.AppliesToItem}
	if err := fieldSvc.CreateDefinition(def); err != nil {
		t.Fatalf("CreateDefinition: %v", err)
	}
	if _, err := colSvc.GetColumns(models.TableTypeInventory); err != nil {
		t.Fatalf("seed: %v", err)
	}

	col, err := colSvc.AddCustomFieldColumn(models.TableTypeInventory, def)
	if err != nil {
		t.Fatalf("AddCustomFieldColumn: %v", err)
	}
	if !col.IsCustomField {
		t.Error("column should be marked as custom field")
	}
	if col.Field != def.ID {
		t.Errorf("column field = %q, expected the definition ID", col.Field)
	}
	if col.SortOrder != 6 {
		t.Errorf("column should append after the 6 defaults, got sort order %d", col.SortOrder)
	}

	// Adding the same field again is a conflict
	_, err = colSvc.AddCustomFieldColumn(models.TableTypeInventory, def)
	var conflict *ConfigurationConflictError
	if !errors.As(err, &conflict) {
		t.Errorf("expected configuration conflict, got %v", err)
	}
}
