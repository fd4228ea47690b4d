package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/inventorysoft/backend/internal/models"
	"github.com/inventorysoft/backend/internal/services"
	"github.com/inventorysoft/backend/pkg/response"
	"gorm.io/gorm"
)

type CustomFieldHandler struct {
	fieldService  *services.CustomFieldService
	columnService *services.ColumnConfigService
}

func NewCustomFieldHandler(db *gorm.DB) *CustomFieldHandler {
	return &CustomFieldHandler{
		fieldService:  services.NewCustomFieldService(db),
		columnService: services.NewColumnConfigService(db),
	}
}

// List returns the definitions for one entity kind, ordered by sort_order.
// GET /api/custom-fields?applies_to=inventory
func (h *CustomFieldHandler) List(c *gin.Context) {
	appliesTo := c.Query("applies_to")
	defs, err := h.fieldService.ListDefinitions(appliesTo)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, defs)
}

type createCustomFieldRequest struct {
	Name       string   `json:"name" binding:"required"`
	FieldType  string   `json:"fieldType" binding:"required"`
	AppliesTo  string   `json:"appliesTo" binding:"required"`
	IsRequired bool     `json:"isRequired"`
	Options    []string `json:"options"`
	AddColumn  bool     `json:"addColumn"`
}

// Create registers a new definition. When addColumn is set and the field
// applies to a single table, a matching column config entry is appended too.
// POST /api/custom-fields
func (h *CustomFieldHandler) Create(c *gin.Context) {
	var req createCustomFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	def := &models.CustomFieldDefinition{
		Name:       req.Name,
		Type:       req.FieldType,
		AppliesTo:  req.AppliesTo,
		IsRequired: req.IsRequired,
		Options:    req.Options,
	}
	if err := h.fieldService.CreateDefinition(def); err != nil {
		respondServiceError(c, err)
		return
	}

	if req.AddColumn {
		if tableType, ok := models.TableTypeForEntity(def.AppliesTo); ok {
			if _, err := h.columnService.AddCustomFieldColumn(tableType, def); err != nil {
				respondServiceError(c, err)
				return
			}
		}
	}

	response.Created(c, def)
}

// Get returns a single definition.
// GET /api/custom-fields/:id
func (h *CustomFieldHandler) Get(c *gin.Context) {
	def, err := h.fieldService.GetDefinition(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if def == nil {
		response.NotFound(c, "custom field not found")
		return
	}
	response.Success(c, def)
}

type updateCustomFieldRequest struct {
	Name       string   `json:"name" binding:"required"`
	FieldType  string   `json:"fieldType" binding:"required"`
	AppliesTo  string   `json:"appliesTo" binding:"required"`
	IsRequired bool     `json:"isRequired"`
	Options    []string `json:"options"`
	SortOrder  int      `json:"sortOrder"`
}

// Update replaces a definition's attributes.
// PUT /api/custom-fields/:id
func (h *CustomFieldHandler) Update(c *gin.Context) {
	var req updateCustomFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	def := &models.CustomFieldDefinition{
		ID:         c.Param("id"),
		Name:       req.Name,
		Type:       req.FieldType,
		AppliesTo:  req.AppliesTo,
		IsRequired: req.IsRequired,
		Options:    req.Options,
		SortOrder:  req.SortOrder,
	}
	if err := h.fieldService.UpdateDefinition(def); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, def)
}

// Delete removes a definition. Stored values are left behind and can be
// swept with PurgeOrphaned.
// DELETE /api/custom-fields/:id
func (h *CustomFieldHandler) Delete(c *gin.Context) {
	if err := h.fieldService.DeleteDefinition(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.NoContent(c)
}

type setValueRequest struct {
	EntityID string `json:"entityId" binding:"required"`
	Value    string `json:"value"`
}

// SetValue validates and upserts one value for (field, entity).
// POST /api/custom-fields/:id/values
func (h *CustomFieldHandler) SetValue(c *gin.Context) {
	var req setValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.fieldService.SetValue(c.Param("id"), req.EntityID, req.Value); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "value saved"})
}

// GetEntityValues returns the resolved custom-field values of one entity.
// GET /api/entities/:id/values?applies_to=inventory
func (h *CustomFieldHandler) GetEntityValues(c *gin.Context) {
	values, err := h.fieldService.GetValues(c.Param("id"), c.Query("applies_to"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, values)
}

// DeleteEntityValues removes all values stored for one entity.
// DELETE /api/entities/:id/values
func (h *CustomFieldHandler) DeleteEntityValues(c *gin.Context) {
	if err := h.fieldService.DeleteValues(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.NoContent(c)
}

// PurgeOrphaned deletes values whose definition no longer exists.
// POST /api/custom-fields/purge-orphaned
func (h *CustomFieldHandler) PurgeOrphaned(c *gin.Context) {
	removed, err := h.fieldService.PurgeOrphanedValues()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"removed": removed})
}
