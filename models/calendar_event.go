package models

import (
	"time"

	"gorm.io/gorm"
)

type EventType string

const (
	EventBooking     EventType = "booking"
	EventMaintenance EventType = "maintenance"
	EventRestock     EventType = "restock"
	EventPaymentDue  EventType = "payment_due"
	EventOther       EventType = "other"
)

func (t EventType) Valid() bool {
	switch t {
	case EventBooking, EventMaintenance, EventRestock, EventPaymentDue, EventOther:
		return true
	}
	return false
}

type CalendarEvent struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Title            string     `gorm:"size:200;not null" json:"title"`
	Description      string     `gorm:"type:text" json:"description"`
	EventType        EventType  `gorm:"size:20;not null" json:"event_type"`
	StartDatetime    time.Time  `gorm:"index;not null" json:"start_datetime"`
	EndDatetime      *time.Time `json:"end_datetime"`
	AllDay           bool       `gorm:"default:false" json:"all_day"`
	RelatedBookingID *uint      `gorm:"index" json:"related_booking"`
	RelatedBooking   *Booking   `gorm:"foreignKey:RelatedBookingID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedByID      *uint      `gorm:"index" json:"created_by"`
	CreatedBy        *User      `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt        time.Time  `json:"created_at"`

	CreatedByName string `gorm:"-" json:"created_by_name"`
	BookingGuest  string `gorm:"-" json:"booking_guest"`
}

func (CalendarEvent) TableName() string { return "calendar_events" }

func (e *CalendarEvent) AfterFind(tx *gorm.DB) error {
	if e.CreatedBy != nil {
		e.CreatedByName = e.CreatedBy.FullName()
	}
	if e.RelatedBooking != nil {
		e.BookingGuest = e.RelatedBooking.GuestName
	}
	return nil
}

// AllModels lists every table in parent -> child order for AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&RefreshToken{},
		&InventoryCategory{},
		&InventoryItem{},
		&Task{},
		&Room{},
		&Booking{},
		&FinancialCategory{},
		&Transaction{},
		&CalendarEvent{},
	}
}
