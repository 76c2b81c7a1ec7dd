package config

import (
	"context"
	"fmt"
	"log"

	"github.com/Eurie-R/IMS-CristinaVilla/models"
	"github.com/Eurie-R/IMS-CristinaVilla/services"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedDatabase loads the initial categories and rooms and ensures the
// default admin. Running it again changes nothing.
func SeedDatabase(ctx context.Context, db *gorm.DB, cfg *Config) error {
	// ---------------- Inventory categories ----------------
	inventoryCategories := []models.InventoryCategory{
		{Name: "Kitchen", Description: "Kitchen supplies and ingredients"},
		{Name: "Housekeeping", Description: "Cleaning supplies, linens, toiletries"},
		{Name: "Maintenance", Description: "Tools and repair materials"},
		{Name: "Office", Description: "Office supplies"},
	}
	for _, c := range inventoryCategories {
		c := c
		if err := db.WithContext(ctx).Where(models.InventoryCategory{Name: c.Name}).FirstOrCreate(&c).Error; err != nil {
			return fmt.Errorf("seed inventory category %s: %w", c.Name, err)
		}
	}
	log.Println("Inventory categories seeded")

	// ---------------- Financial categories ----------------
	financialCategories := []models.FinancialCategory{
		{Name: "Room Booking", Type: models.Income, Description: "Income from room bookings"},
		{Name: "Services", Type: models.Income, Description: "Additional services income"},
		{Name: "Supplies", Type: models.Expense, Description: "Purchase of supplies"},
		{Name: "Utilities", Type: models.Expense, Description: "Electricity, water, internet"},
		{Name: "Salaries", Type: models.Expense, Description: "Staff salaries"},
	}
	for _, c := range financialCategories {
		c := c
		if err := db.WithContext(ctx).Where(models.FinancialCategory{Name: c.Name, Type: c.Type}).FirstOrCreate(&c).Error; err != nil {
			return fmt.Errorf("seed financial category %s: %w", c.Name, err)
		}
	}
	log.Println("Financial categories seeded")

	// ---------------- Rooms ----------------
	rooms := []models.Room{
		{RoomNumber: "101", RoomType: models.RoomSingle, Capacity: 1, RatePerNight: decimal.NewFromInt(1500), Status: models.RoomAvailable},
		{RoomNumber: "102", RoomType: models.RoomDouble, Capacity: 2, RatePerNight: decimal.NewFromInt(2500), Status: models.RoomAvailable},
		{RoomNumber: "103", RoomType: models.RoomSuite, Capacity: 4, RatePerNight: decimal.NewFromInt(4500), Status: models.RoomAvailable},
	}
	for _, r := range rooms {
		r := r
		if err := db.WithContext(ctx).Where(models.Room{RoomNumber: r.RoomNumber}).FirstOrCreate(&r).Error; err != nil {
			return fmt.Errorf("seed room %s: %w", r.RoomNumber, err)
		}
	}
	log.Println("Rooms seeded")

	// ---------------- Admin ----------------
	if cfg.AdminPassword == "" {
		log.Println("⚠️  ADMIN_PASSWORD not set; skipping default admin")
		return nil
	}
	return services.NewUserService(db).EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
}
