package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Custom field types
const (
	FieldTypeText    = "text"
	FieldTypeNumber  = "number"
	FieldTypeDate    = "date"
	FieldTypeBoolean = "boolean"
	FieldTypeSelect  = "select"
)

// Entity kinds a custom field can attach to
const (
	AppliesToItem     = "item"
	AppliesToSale     = "sale"
	AppliesToPurchase = "purchase"
)

func ValidFieldType(t string) bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeDate, FieldTypeBoolean, FieldTypeSelect:
		return true
	}
	return false
}

func ValidAppliesTo(a string) bool {
	switch a {
	case AppliesToItem, AppliesToSale, AppliesToPurchase:
		return true
	}
	return false
}

// CustomFieldDefinition describes a user-defined attribute attached to items,
// sales or purchases. Values are stored separately in CustomFieldValue and
// interpreted according to Type at read time.
type CustomFieldDefinition struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Name          string    `gorm:"size:200;not null" json:"name"`
	Type          string    `gorm:"size:20;not null" json:"type"`
	AppliesTo     string    `gorm:"size:20;index;not null" json:"applies_to"`
	SelectOptions string    `gorm:"size:2000" json:"-"` // comma-joined, only for type=select
	IsRequired    bool      `gorm:"default:false" json:"is_required"`
	SortOrder     int       `json:"sort_order"`
	CreatedAt     time.Time `json:"created_at"`

	// Options mirrors SelectOptions for JSON payloads.
	Options []string `gorm:"-" json:"select_options,omitempty"`
}

func (CustomFieldDefinition) TableName() string { return "custom_field_definitions" }

func (d *CustomFieldDefinition) BeforeSave(tx *gorm.DB) error {
	if len(d.Options) > 0 {
		d.SelectOptions = strings.Join(d.Options, ",")
	}
	return nil
}

func (d *CustomFieldDefinition) AfterFind(tx *gorm.DB) error {
	d.Options = d.OptionList()
	return nil
}

// OptionList returns the select options as a slice, empty for non-select fields.
func (d *CustomFieldDefinition) OptionList() []string {
	if d.SelectOptions == "" {
		return nil
	}
	parts := strings.Split(d.SelectOptions, ",")
	opts := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			opts = append(opts, p)
		}
	}
	return opts
}

// CustomFieldValue is the EAV value row: one string-encoded value per
// (custom field, entity) pair. The composite unique index enforces the pair
// invariant at the storage layer; the service upserts on top of it.
type CustomFieldValue struct {
	ID            string `gorm:"primaryKey;size:36" json:"id"`
	CustomFieldID string `gorm:"size:36;not null;uniqueIndex:idx_field_entity" json:"custom_field_id"`
	EntityID      string `gorm:"size:36;not null;uniqueIndex:idx_field_entity;index" json:"entity_id"`
	Value         string `gorm:"type:text" json:"value"`
}

func (CustomFieldValue) TableName() string { return "custom_field_values" }
