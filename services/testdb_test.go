package services

import (
	"context"
	"testing"

	"github.com/Eurie-R/IMS-CristinaVilla/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB returns a migrated in-memory database. One connection keeps
// the in-memory schema alive for the whole test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

func createRoom(t *testing.T, db *gorm.DB, number string, capacity int, rate int64) *models.Room {
	t.Helper()
	room := &models.Room{
		RoomNumber:   number,
		RoomType:     models.RoomDouble,
		Capacity:     capacity,
		RatePerNight: decimal.NewFromInt(rate),
		Status:       models.RoomAvailable,
	}
	require.NoError(t, db.Create(room).Error)
	return room
}

func date(s string) models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func datePtr(s string) *models.Date {
	d := date(s)
	return &d
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func uintPtr(u uint) *uint { return &u }

func decPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func statusPtr(s models.BookingStatus) *models.BookingStatus { return &s }

func bookingFields(roomID uint, in, out string) BookingFields {
	return BookingFields{
		RoomID:       uintPtr(roomID),
		GuestName:    strPtr("Maria Santos"),
		CheckInDate:  datePtr(in),
		CheckOutDate: datePtr(out),
	}
}

var bg = context.Background()
