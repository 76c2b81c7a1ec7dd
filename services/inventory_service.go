package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Eurie-R/IMS-CristinaVilla/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InventoryService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db, Now: time.Now}
}

type CategoryFields struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type ItemFields struct {
	CategoryID       *uint            `json:"category"`
	Name             *string          `json:"name"`
	Description      *string          `json:"description"`
	Quantity         *int             `json:"quantity"`
	Unit             *string          `json:"unit"`
	RestockThreshold *int             `json:"restock_threshold"`
	UnitCost         *decimal.Decimal `json:"unit_cost"`
}

// ----------------------------------------------------
// Categories
// ----------------------------------------------------

func (s *InventoryService) ListCategories(ctx context.Context) ([]models.InventoryCategory, error) {
	list := []models.InventoryCategory{}
	if err := s.DB.WithContext(ctx).Order("name").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve inventory categories: %w", err)
	}
	return list, nil
}

func (s *InventoryService) GetCategory(ctx context.Context, id uint) (*models.InventoryCategory, error) {
	var c models.InventoryCategory
	if err := s.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, wrapFind(err, "inventory category", id)
	}
	return &c, nil
}

func (s *InventoryService) CreateCategory(ctx context.Context, f CategoryFields) (*models.InventoryCategory, error) {
	var c models.InventoryCategory
	if err := applyCategoryFields(&c, f); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, fmt.Errorf("failed to create inventory category: %w", err)
	}
	return &c, nil
}

func (s *InventoryService) UpdateCategory(ctx context.Context, id uint, f CategoryFields) (*models.InventoryCategory, error) {
	c, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyCategoryFields(c, f); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Save(c).Error; err != nil {
		return nil, fmt.Errorf("failed to update inventory category %d: %w", id, err)
	}
	return c, nil
}

// DeleteCategory removes the category and its items.
func (s *InventoryService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.InventoryItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete items of category %d: %w", id, err)
		}
		if err := tx.Delete(&models.InventoryCategory{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete inventory category %d: %w", id, err)
		}
		return nil
	})
}

func applyCategoryFields(c *models.InventoryCategory, f CategoryFields) error {
	if f.Name != nil {
		c.Name = strings.TrimSpace(*f.Name)
	}
	if f.Description != nil {
		c.Description = *f.Description
	}
	if c.Name == "" {
		return invalid("name is required")
	}
	return nil
}

// ----------------------------------------------------
// Items
// ----------------------------------------------------

func (s *InventoryService) ListItems(ctx context.Context, categoryID uint) ([]models.InventoryItem, error) {
	q := s.DB.WithContext(ctx).Preload("Category")
	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	list := []models.InventoryItem{}
	if err := q.Order("name").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve inventory items: %w", err)
	}
	return list, nil
}

// LowStock returns items at or below their restock threshold. limit <= 0
// returns all of them.
func (s *InventoryService) LowStock(ctx context.Context, limit int) ([]models.InventoryItem, error) {
	q := s.DB.WithContext(ctx).Preload("Category").
		Where("quantity <= restock_threshold").
		Order("name")
	if limit > 0 {
		q = q.Limit(limit)
	}
	list := []models.InventoryItem{}
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve low stock items: %w", err)
	}
	return list, nil
}

func (s *InventoryService) GetItem(ctx context.Context, id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := s.DB.WithContext(ctx).Preload("Category").First(&item, id).Error; err != nil {
		return nil, wrapFind(err, "inventory item", id)
	}
	return &item, nil
}

func (s *InventoryService) CreateItem(ctx context.Context, f ItemFields) (*models.InventoryItem, error) {
	item := models.InventoryItem{RestockThreshold: 10}
	if err := s.applyItemFields(ctx, &item, f); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Omit("Category").Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}
	return s.GetItem(ctx, item.ID)
}

func (s *InventoryService) UpdateItem(ctx context.Context, id uint, f ItemFields) (*models.InventoryItem, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyItemFields(ctx, item, f); err != nil {
		return nil, err
	}
	item.Category = nil
	if err := s.DB.WithContext(ctx).Save(item).Error; err != nil {
		return nil, fmt.Errorf("failed to update inventory item %d: %w", id, err)
	}
	return s.GetItem(ctx, id)
}

func (s *InventoryService) DeleteItem(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.InventoryItem{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete inventory item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("inventory item", id)
	}
	return nil
}

func (s *InventoryService) applyItemFields(ctx context.Context, item *models.InventoryItem, f ItemFields) error {
	if f.CategoryID != nil {
		item.CategoryID = *f.CategoryID
	}
	if f.Name != nil {
		item.Name = strings.TrimSpace(*f.Name)
	}
	if f.Description != nil {
		item.Description = *f.Description
	}
	if f.Quantity != nil {
		item.Quantity = *f.Quantity
	}
	if f.Unit != nil {
		item.Unit = strings.TrimSpace(*f.Unit)
	}
	if f.RestockThreshold != nil {
		item.RestockThreshold = *f.RestockThreshold
	}
	if f.UnitCost != nil {
		item.UnitCost = *f.UnitCost
	}

	if item.Name == "" {
		return invalid("name is required")
	}
	if item.Unit == "" {
		return invalid("unit is required")
	}
	if item.Quantity < 0 {
		return invalid("quantity must not be negative")
	}
	if item.RestockThreshold < 0 {
		return invalid("restock_threshold must not be negative")
	}
	if item.UnitCost.IsNegative() {
		return invalid("unit_cost must not be negative")
	}
	if item.CategoryID == 0 {
		return invalid("category is required")
	}
	if f.CategoryID != nil {
		if _, err := s.GetCategory(ctx, item.CategoryID); err != nil {
			return invalid("inventory category %d does not exist", item.CategoryID)
		}
	}
	item.Derive()
	return nil
}

// Restock adds a positive quantity and stamps last_restocked.
func (s *InventoryService) Restock(ctx context.Context, id uint, quantity int) (*models.InventoryItem, error) {
	if quantity <= 0 {
		return nil, invalid("quantity must be greater than 0")
	}
	res := s.DB.WithContext(ctx).Model(&models.InventoryItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":       gorm.Expr("quantity + ?", quantity),
			"last_restocked": s.Now().UTC(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to restock item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, notFound("inventory item", id)
	}
	return s.GetItem(ctx, id)
}

// Adjust applies a page-form stock movement: "add" restocks, "remove"
// consumes without going below zero.
func (s *InventoryService) Adjust(ctx context.Context, id uint, action string, amount int) (*models.InventoryItem, error) {
	switch action {
	case "add":
		return s.Restock(ctx, id, amount)
	case "remove":
		if amount <= 0 {
			return nil, invalid("amount must be greater than 0")
		}
		res := s.DB.WithContext(ctx).Model(&models.InventoryItem{}).
			Where("id = ? AND quantity >= ?", id, amount).
			Update("quantity", gorm.Expr("quantity - ?", amount))
		if res.Error != nil {
			return nil, fmt.Errorf("failed to remove stock from item %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			if _, err := s.GetItem(ctx, id); err != nil {
				return nil, err
			}
			return nil, invalid("insufficient stock")
		}
		return s.GetItem(ctx, id)
	}
	return nil, invalid("action must be add or remove")
}
