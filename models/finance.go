package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

type FinancialCategory struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Type        TransactionType `gorm:"size:20;not null" json:"type"`
	Description string          `gorm:"type:text" json:"description"`
}

func (FinancialCategory) TableName() string { return "financial_categories" }

type Transaction struct {
	ID              uint               `gorm:"primaryKey" json:"id"`
	CategoryID      uint               `gorm:"index;not null" json:"category"`
	Category        *FinancialCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
	BookingID       *uint              `gorm:"index" json:"booking"`
	Booking         *Booking           `gorm:"foreignKey:BookingID;constraint:OnDelete:SET NULL" json:"-"`
	TransactionType TransactionType    `gorm:"size:20;not null;index" json:"transaction_type"`
	Amount          decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"amount"`
	Date            Date               `gorm:"index;not null" json:"date"`
	Description     string             `gorm:"type:text" json:"description"`
	ReferenceNumber string             `gorm:"size:100" json:"reference_number"`
	PaymentMethod   string             `gorm:"size:50" json:"payment_method"`
	RecordedByID    *uint              `gorm:"index" json:"recorded_by"`
	RecordedBy      *User              `gorm:"foreignKey:RecordedByID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`

	CategoryName   string `gorm:"-" json:"category_name"`
	RecordedByName string `gorm:"-" json:"recorded_by_name"`
	BookingGuest   string `gorm:"-" json:"booking_guest"`
}

func (Transaction) TableName() string { return "transactions" }

func (t *Transaction) AfterFind(tx *gorm.DB) error {
	if t.Category != nil {
		t.CategoryName = t.Category.Name
	}
	if t.RecordedBy != nil {
		t.RecordedByName = t.RecordedBy.FullName()
	}
	if t.Booking != nil {
		t.BookingGuest = t.Booking.GuestName
	}
	return nil
}

// MonthSummary is income, expenses and profit for one calendar month.
type MonthSummary struct {
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}
