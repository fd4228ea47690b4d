package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/inventorysoft/backend/internal/models"
	"github.com/inventorysoft/backend/internal/services"
	"github.com/inventorysoft/backend/pkg/response"
	"gorm.io/gorm"
)

type ColumnConfigHandler struct {
	columnService *services.ColumnConfigService
	fieldService  *services.CustomFieldService
}

func NewColumnConfigHandler(db *gorm.DB) *ColumnConfigHandler {
	return &ColumnConfigHandler{
		columnService: services.NewColumnConfigService(db),
		fieldService:  services.NewCustomFieldService(db),
	}
}

// Get returns the column set for one table, seeding defaults on first access.
// GET /api/columns/:tableType
func (h *ColumnConfigHandler) Get(c *gin.Context) {
	cols, err := h.columnService.GetColumns(c.Param("tableType"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, cols)
}

// Replace atomically swaps the full column set for one table.
// PUT /api/columns/:tableType
func (h *ColumnConfigHandler) Replace(c *gin.Context) {
	var cols []models.TableColumnConfig
	if err := c.ShouldBindJSON(&cols); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tableType := c.Param("tableType")
	if err := h.columnService.SaveColumns(tableType, cols); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, cols)
}

// Reset restores the built-in column set for one table.
// POST /api/columns/:tableType/reset
func (h *ColumnConfigHandler) Reset(c *gin.Context) {
	tableType := c.Param("tableType")
	if err := h.columnService.ResetToDefaults(tableType); err != nil {
		respondServiceError(c, err)
		return
	}

	cols, err := h.columnService.GetColumns(tableType)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, cols)
}

type addCustomFieldColumnRequest struct {
	CustomFieldID string `json:"customFieldId" binding:"required"`
}

// AddCustomField appends a column projecting an existing custom field.
// POST /api/columns/:tableType/custom-field
func (h *ColumnConfigHandler) AddCustomField(c *gin.Context) {
	var req addCustomFieldColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	def, err := h.fieldService.GetDefinition(req.CustomFieldID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if def == nil {
		response.NotFound(c, "custom field not found")
		return
	}

	col, err := h.columnService.AddCustomFieldColumn(c.Param("tableType"), def)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, col)
}
