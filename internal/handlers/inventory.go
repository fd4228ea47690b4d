package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/inventorysoft/backend/internal/models"
	"github.com/inventorysoft/backend/internal/services"
	"github.com/inventorysoft/backend/pkg/response"
	"gorm.io/gorm"
)

type InventoryHandler struct {
	inventoryService *services.InventoryService
}

func NewInventoryHandler(db *gorm.DB) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: services.NewInventoryService(db),
	}
}

// --- Items ---

// GET /api/items
func (h *InventoryHandler) ListItems(c *gin.Context) {
	items, err := h.inventoryService.ListItems()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, items)
}

// POST /api/items
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var item models.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.inventoryService.CreateItem(&item); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, item)
}

// GET /api/items/:id
func (h *InventoryHandler) GetItem(c *gin.Context) {
	item, err := h.inventoryService.GetItem(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if item == nil {
		response.NotFound(c, "item not found")
		return
	}
	response.Success(c, item)
}

// PUT /api/items/:id
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	var item models.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item.ID = c.Param("id")
	if err := h.inventoryService.UpdateItem(&item); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, item)
}

// DELETE /api/items/:id
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	if err := h.inventoryService.DeleteItem(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.NoContent(c)
}

// --- Sales ---

// GET /api/sales
func (h *InventoryHandler) ListSales(c *gin.Context) {
	sales, err := h.inventoryService.ListSales()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, sales)
}

// POST /api/sales
func (h *InventoryHandler) CreateSale(c *gin.Context) {
	var sale models.Sale
	if err := c.ShouldBindJSON(&sale); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.inventoryService.CreateSale(&sale); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, sale)
}

// DELETE /api/sales/:id
func (h *InventoryHandler) DeleteSale(c *gin.Context) {
	if err := h.inventoryService.DeleteSale(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.NoContent(c)
}

// --- Purchases ---

// GET /api/purchases
func (h *InventoryHandler) ListPurchases(c *gin.Context) {
	purchases, err := h.inventoryService.ListPurchases()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, purchases)
}

// POST /api/purchases
func (h *InventoryHandler) CreatePurchase(c *gin.Context) {
	var purchase models.Purchase
	if err := c.ShouldBindJSON(&purchase); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.inventoryService.CreatePurchase(&purchase); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, purchase)
}

// DELETE /api/purchases/:id
func (h *InventoryHandler) DeletePurchase(c *gin.Context) {
	if err := h.inventoryService.DeletePurchase(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.NoContent(c)
}
