package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/inventorysoft/backend/internal/services"
	"github.com/inventorysoft/backend/pkg/response"
	"gorm.io/gorm"
)

type PreferencesHandler struct {
	prefsService *services.PreferencesService
}

func NewPreferencesHandler(db *gorm.DB) *PreferencesHandler {
	return &PreferencesHandler{
		prefsService: services.NewPreferencesService(db),
	}
}

// Get returns the preferences row, creating the defaults on first access.
// GET /api/preferences
func (h *PreferencesHandler) Get(c *gin.Context) {
	prefs, err := h.prefsService.Get()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, prefs)
}

// Update saves preference settings. The analytics customization flag is
// managed by the chart endpoints and cannot be cleared here.
// PUT /api/preferences
func (h *PreferencesHandler) Update(c *gin.Context) {
	prefs, err := h.prefsService.Get()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := c.ShouldBindJSON(prefs); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.prefsService.Save(prefs); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, prefs)
}
