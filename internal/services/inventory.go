package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inventorysoft/backend/internal/models"
	"gorm.io/gorm"
)

// InventoryService is the plain CRUD layer for the core entities custom
// fields and charts hang off. Deleting an entity also deletes its recorded
// custom field values; definitions are untouched.
type InventoryService struct {
	db *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

// --- Items ---

func (s *InventoryService) CreateItem(item *models.Item) error {
	if strings.TrimSpace(item.Title) == "" {
		return newValidationError("title_required", "item title must not be empty")
	}
	if item.Status == "" {
		item.Status = models.ItemStatusInStock
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.DateAdded.IsZero() {
		item.DateAdded = time.Now()
	}
	return wrapPersistence("CreateItem", s.db.Create(item).Error)
}

func (s *InventoryService) ListItems() ([]models.Item, error) {
	var items []models.Item
	err := s.db.Order("date_added desc").Find(&items).Error
	if err != nil {
		return nil, wrapPersistence("ListItems", err)
	}
	return items, nil
}

func (s *InventoryService) GetItem(id string) (*models.Item, error) {
	var item models.Item
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapPersistence("GetItem", err)
	}
	return &item, nil
}

func (s *InventoryService) UpdateItem(item *models.Item) error {
	if item.ID == "" {
		return newValidationError("id_required", "item id must not be empty")
	}
	return wrapPersistence("UpdateItem", s.db.Save(item).Error)
}

func (s *InventoryService) DeleteItem(id string) error {
	return s.deleteEntity("DeleteItem", &models.Item{}, id)
}

// --- Sales ---

func (s *InventoryService) CreateSale(sale *models.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.NewString()
	}
	if sale.DateSold.IsZero() {
		sale.DateSold = time.Now()
	}
	// Profit is derived unless the caller supplied it.
	if sale.Profit == 0 && sale.ItemID != "" {
		var item models.Item
		if err := s.db.First(&item, "id = ?", sale.ItemID).Error; err == nil {
			sale.Profit = sale.SoldPrice - sale.Fees - item.PurchasePrice
			if sale.ItemTitle == "" {
				sale.ItemTitle = item.Title
			}
		}
	}
	return wrapPersistence("CreateSale", s.db.Create(sale).Error)
}

func (s *InventoryService) ListSales() ([]models.Sale, error) {
	var sales []models.Sale
	err := s.db.Order("date_sold desc").Find(&sales).Error
	if err != nil {
		return nil, wrapPersistence("ListSales", err)
	}
	return sales, nil
}

func (s *InventoryService) DeleteSale(id string) error {
	return s.deleteEntity("DeleteSale", &models.Sale{}, id)
}

// --- Purchases ---

func (s *InventoryService) CreatePurchase(purchase *models.Purchase) error {
	if strings.TrimSpace(purchase.BatchName) == "" {
		return newValidationError("batch_name_required", "purchase batch name must not be empty")
	}
	if purchase.ID == "" {
		purchase.ID = uuid.NewString()
	}
	if purchase.DatePurchased.IsZero() {
		purchase.DatePurchased = time.Now()
	}
	return wrapPersistence("CreatePurchase", s.db.Create(purchase).Error)
}

func (s *InventoryService) ListPurchases() ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := s.db.Order("date_purchased desc").Find(&purchases).Error
	if err != nil {
		return nil, wrapPersistence("ListPurchases", err)
	}
	return purchases, nil
}

func (s *InventoryService) DeletePurchase(id string) error {
	return s.deleteEntity("DeletePurchase", &models.Purchase{}, id)
}

// deleteEntity removes the entity and its custom field values in one
// transaction.
func (s *InventoryService) deleteEntity(op string, model interface{}, id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(model, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.CustomFieldValue{}, "entity_id = ?", id).Error
	})
	return wrapPersistence(op, err)
}
