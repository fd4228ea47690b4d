package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/inventorysoft/backend/internal/models"
	"github.com/inventorysoft/backend/internal/services"
	"github.com/inventorysoft/backend/pkg/response"
	"gorm.io/gorm"
)

type AnalyticsHandler struct {
	configService *services.AnalyticsConfigService
	dataService   *services.ChartDataService
}

func NewAnalyticsHandler(db *gorm.DB) *AnalyticsHandler {
	return &AnalyticsHandler{
		configService: services.NewAnalyticsConfigService(db),
		dataService:   services.NewChartDataService(db),
	}
}

// ListCharts returns the chart set, bootstrapping the built-in defaults on a
// true first run.
// GET /api/charts
func (h *AnalyticsHandler) ListCharts(c *gin.Context) {
	charts, err := h.configService.GetCharts()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, charts)
}

// CreateChart saves a new chart and marks analytics as customized.
// POST /api/charts
func (h *AnalyticsHandler) CreateChart(c *gin.Context) {
	var chart models.ChartDefinition
	if err := c.ShouldBindJSON(&chart); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.configService.SaveChart(&chart); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, chart)
}

// UpdateChart replaces an existing chart's configuration.
// PUT /api/charts/:id
func (h *AnalyticsHandler) UpdateChart(c *gin.Context) {
	var chart models.ChartDefinition
	if err := c.ShouldBindJSON(&chart); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	chart.ID = c.Param("id")
	if err := h.configService.SaveChart(&chart); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, chart)
}

// DeleteChart removes a chart and marks analytics as customized, so an
// emptied set stays empty.
// DELETE /api/charts/:id
func (h *AnalyticsHandler) DeleteChart(c *gin.Context) {
	if err := h.configService.DeleteChart(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.NoContent(c)
}

// DuplicateChart copies a chart under a fresh ID at the end of the set.
// POST /api/charts/:id/duplicate
func (h *AnalyticsHandler) DuplicateChart(c *gin.Context) {
	dup, err := h.configService.DuplicateChart(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, dup)
}

// UpdateOrder rewrites the display order of the full chart set.
// POST /api/charts/order
func (h *AnalyticsHandler) UpdateOrder(c *gin.Context) {
	var charts []models.ChartDefinition
	if err := c.ShouldBindJSON(&charts); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.configService.UpdateChartOrder(charts); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "order updated"})
}

// ResetCharts restores the built-in chart set.
// POST /api/charts/reset
func (h *AnalyticsHandler) ResetCharts(c *gin.Context) {
	if err := h.configService.ResetToDefaults(); err != nil {
		respondServiceError(c, err)
		return
	}

	charts, err := h.configService.GetCharts()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, charts)
}

// ChartData evaluates a chart against the live entity tables and returns its
// plotted points.
// GET /api/charts/:id/data
func (h *AnalyticsHandler) ChartData(c *gin.Context) {
	chart, err := h.configService.GetChart(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if chart == nil {
		response.NotFound(c, "chart not found")
		return
	}

	points, err := h.dataService.BuildChartData(chart)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"chart":  chart,
		"points": points,
	})
}
