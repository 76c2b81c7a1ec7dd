package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InventoryCategory struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (InventoryCategory) TableName() string { return "inventory_categories" }

type InventoryItem struct {
	ID               uint               `gorm:"primaryKey" json:"id"`
	CategoryID       uint               `gorm:"index;not null" json:"category"`
	Category         *InventoryCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
	Name             string             `gorm:"size:200;not null" json:"name"`
	Description      string             `gorm:"type:text" json:"description"`
	Quantity         int                `gorm:"default:0" json:"quantity"`
	Unit             string             `gorm:"size:50" json:"unit"`
	RestockThreshold int                `gorm:"default:10" json:"restock_threshold"`
	UnitCost         decimal.Decimal    `gorm:"type:decimal(12,2);default:0" json:"unit_cost"`
	LastRestocked    *time.Time         `json:"last_restocked"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`

	// derived on read
	CategoryName string `gorm:"-" json:"category_name"`
	NeedsRestock bool   `gorm:"-" json:"needs_restock"`
}

func (InventoryItem) TableName() string { return "inventory_items" }

// NeedsRestocking reports whether quantity has fallen to or below the threshold.
func NeedsRestocking(quantity, threshold int) bool {
	return quantity <= threshold
}

func (i *InventoryItem) AfterFind(tx *gorm.DB) error {
	i.Derive()
	return nil
}

func (i *InventoryItem) Derive() {
	i.NeedsRestock = NeedsRestocking(i.Quantity, i.RestockThreshold)
	if i.Category != nil {
		i.CategoryName = i.Category.Name
	}
}
