package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inventorysoft/backend/internal/models"
	"gorm.io/gorm"
)

// CustomFieldService owns custom field definitions and their string-encoded
// values. All type safety lives at this boundary: values are validated against
// the owning definition on write and parsed on read; the stored string is
// never trusted as already typed.
type CustomFieldService struct {
	db *gorm.DB
}

func NewCustomFieldService(db *gorm.DB) *CustomFieldService {
	return &CustomFieldService{db: db}
}

// Date layouts accepted for date-typed values.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

func (s *CustomFieldService) validateDefinition(def *models.CustomFieldDefinition) error {
	if strings.TrimSpace(def.Name) == "" {
		return newValidationError("name_required", "field name must not be empty")
	}
	if !models.ValidFieldType(def.Type) {
		return newValidationError("unknown_type", "unknown field type %q", def.Type)
	}
	if !models.ValidAppliesTo(def.AppliesTo) {
		return newValidationError("unknown_applies_to", "unknown entity kind %q", def.AppliesTo)
	}
	if def.Type == models.FieldTypeSelect {
		if len(def.Options) == 0 && def.SelectOptions == "" {
			return newValidationError("select_options_required",
				"select field %q requires at least one option", def.Name)
		}
	} else {
		// Options are meaningful only for select fields.
		def.Options = nil
		def.SelectOptions = ""
	}
	return nil
}

// CreateDefinition validates and persists a new definition. SortOrder is
// appended to the end of the definition's entity kind unless the caller set
// an explicit position.
func (s *CustomFieldService) CreateDefinition(def *models.CustomFieldDefinition) error {
	if err := s.validateDefinition(def); err != nil {
		return err
	}
	if def.ID == "" {
		def.ID = uuid.NewString()
	}
	if def.CreatedAt.IsZero() {
		def.CreatedAt = time.Now()
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if def.SortOrder == 0 {
			next, err := nextSortOrder(tx, &models.CustomFieldDefinition{}, "applies_to = ?", def.AppliesTo)
			if err != nil {
				return wrapPersistence("CreateDefinition", err)
			}
			def.SortOrder = next
		}
		if err := tx.Create(def).Error; err != nil {
			return wrapPersistence("CreateDefinition", err)
		}
		return nil
	})
}

// UpdateDefinition validates and saves changes to an existing definition.
func (s *CustomFieldService) UpdateDefinition(def *models.CustomFieldDefinition) error {
	if def.ID == "" {
		return newValidationError("id_required", "definition id must not be empty")
	}
	if err := s.validateDefinition(def); err != nil {
		return err
	}
	var existing models.CustomFieldDefinition
	if err := s.db.First(&existing, "id = ?", def.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newValidationError("unknown_field", "custom field %s does not exist", def.ID)
		}
		return wrapPersistence("UpdateDefinition", err)
	}
	return wrapPersistence("UpdateDefinition", s.db.Save(def).Error)
}

// ListDefinitions returns all definitions for one entity kind, ordered.
func (s *CustomFieldService) ListDefinitions(appliesTo string) ([]models.CustomFieldDefinition, error) {
	if !models.ValidAppliesTo(appliesTo) {
		return nil, newValidationError("unknown_applies_to", "unknown entity kind %q", appliesTo)
	}
	var defs []models.CustomFieldDefinition
	err := s.db.Where("applies_to = ?", appliesTo).Order("sort_order asc").Find(&defs).Error
	if err != nil {
		return nil, wrapPersistence("ListDefinitions", err)
	}
	return defs, nil
}

func (s *CustomFieldService) GetDefinition(id string) (*models.CustomFieldDefinition, error) {
	var def models.CustomFieldDefinition
	if err := s.db.First(&def, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapPersistence("GetDefinition", err)
	}
	return &def, nil
}

// DeleteDefinition removes a definition. Stored values are intentionally left
// in place: they become unreachable through GetValues and can be removed with
// PurgeOrphanedValues.
func (s *CustomFieldService) DeleteDefinition(id string) error {
	return wrapPersistence("DeleteDefinition",
		s.db.Delete(&models.CustomFieldDefinition{}, "id = ?", id).Error)
}

// SetValue validates raw against the owning definition's type and upserts the
// value keyed by (customFieldID, entityID). The pair never maps to two rows.
func (s *CustomFieldService) SetValue(customFieldID, entityID, raw string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var def models.CustomFieldDefinition
		if err := tx.First(&def, "id = ?", customFieldID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newValidationError("unknown_field", "custom field %s does not exist", customFieldID)
			}
			return wrapPersistence("SetValue", err)
		}

		if err := validateRawValue(&def, raw); err != nil {
			return err
		}

		var existing models.CustomFieldValue
		err := tx.Where("custom_field_id = ? AND entity_id = ?", customFieldID, entityID).
			First(&existing).Error
		switch {
		case err == nil:
			existing.Value = raw
			if err := tx.Save(&existing).Error; err != nil {
				return wrapPersistence("SetValue", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			value := models.CustomFieldValue{
				ID:            uuid.NewString(),
				CustomFieldID: customFieldID,
				EntityID:      entityID,
				Value:         raw,
			}
			if err := tx.Create(&value).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return &ConfigurationConflictError{
						Message: "value for this field and entity already exists",
					}
				}
				return wrapPersistence("SetValue", err)
			}
		default:
			return wrapPersistence("SetValue", err)
		}
		return nil
	})
}

// validateRawValue enforces the definition's type on a string-encoded value.
func validateRawValue(def *models.CustomFieldDefinition, raw string) error {
	if raw == "" {
		if def.IsRequired {
			return newValidationError("value_required", "field %q is required", def.Name)
		}
		return nil
	}
	switch def.Type {
	case models.FieldTypeText:
		return nil
	case models.FieldTypeNumber:
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return newValidationError("invalid_number", "%q is not a valid number for field %q", raw, def.Name)
		}
	case models.FieldTypeDate:
		if _, err := parseDate(raw); err != nil {
			return newValidationError("invalid_date", "%q is not a valid ISO-8601 date for field %q", raw, def.Name)
		}
	case models.FieldTypeBoolean:
		if raw != "true" && raw != "false" {
			return newValidationError("invalid_boolean", `field %q accepts only "true" or "false"`, def.Name)
		}
	case models.FieldTypeSelect:
		for _, opt := range def.OptionList() {
			if raw == opt {
				return nil
			}
		}
		return newValidationError("invalid_option", "%q is not one of the options for field %q", raw, def.Name)
	}
	return nil
}

func parseDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ResolvedFieldValue is a stored value joined with its live definition and
// parsed according to the definition's type. Only the member matching Type is
// meaningful; Raw always carries the stored encoding.
type ResolvedFieldValue struct {
	FieldID string    `json:"field_id"`
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	Raw     string    `json:"raw"`
	Number  float64   `json:"number,omitempty"`
	Bool    bool      `json:"bool,omitempty"`
	Date    time.Time `json:"date,omitempty"`
}

// GetValues resolves the typed values recorded for one entity against all live
// definitions of the entity's kind. Definitions without a value are absent;
// values whose definition was deleted are invisible.
func (s *CustomFieldService) GetValues(entityID, appliesTo string) ([]ResolvedFieldValue, error) {
	defs, err := s.ListDefinitions(appliesTo)
	if err != nil {
		return nil, err
	}

	var values []models.CustomFieldValue
	if err := s.db.Where("entity_id = ?", entityID).Find(&values).Error; err != nil {
		return nil, wrapPersistence("GetValues", err)
	}

	byField := make(map[string]models.CustomFieldValue, len(values))
	for _, v := range values {
		byField[v.CustomFieldID] = v
	}

	resolved := make([]ResolvedFieldValue, 0, len(defs))
	for _, def := range defs {
		v, ok := byField[def.ID]
		if !ok {
			continue
		}
		resolved = append(resolved, resolveValue(&def, v.Value))
	}
	return resolved, nil
}

func resolveValue(def *models.CustomFieldDefinition, raw string) ResolvedFieldValue {
	rv := ResolvedFieldValue{
		FieldID: def.ID,
		Name:    def.Name,
		Type:    def.Type,
		Raw:     raw,
	}
	switch def.Type {
	case models.FieldTypeNumber:
		rv.Number, _ = strconv.ParseFloat(raw, 64)
	case models.FieldTypeBoolean:
		rv.Bool = raw == "true"
	case models.FieldTypeDate:
		rv.Date, _ = parseDate(raw)
	}
	return rv
}

// DeleteValues removes all values recorded for one entity, used when the
// entity itself is deleted.
func (s *CustomFieldService) DeleteValues(entityID string) error {
	return wrapPersistence("DeleteValues",
		s.db.Delete(&models.CustomFieldValue{}, "entity_id = ?", entityID).Error)
}

// PurgeOrphanedValues deletes values whose definition no longer exists.
// Definition deletion never cascades; this is the explicit cleanup path.
func (s *CustomFieldService) PurgeOrphanedValues() (int64, error) {
	res := s.db.Where(
		"custom_field_id NOT IN (?)",
		s.db.Model(&models.CustomFieldDefinition{}).Select("id"),
	).Delete(&models.CustomFieldValue{})
	if res.Error != nil {
		return 0, wrapPersistence("PurgeOrphanedValues", res.Error)
	}
	return res.RowsAffected, nil
}

// nextSortOrder returns max(sort_order)+1 for rows matching the condition.
func nextSortOrder(tx *gorm.DB, model interface{}, query string, args ...interface{}) (int, error) {
	var max *int
	err := tx.Model(model).Where(query, args...).Select("MAX(sort_order)").Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}
