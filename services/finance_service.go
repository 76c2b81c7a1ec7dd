package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Eurie-R/IMS-CristinaVilla/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FinanceService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewFinanceService(db *gorm.DB) *FinanceService {
	return &FinanceService{DB: db, Now: time.Now}
}

type FinancialCategoryFields struct {
	Name        *string                 `json:"name"`
	Type        *models.TransactionType `json:"type"`
	Description *string                 `json:"description"`
}

type TransactionFields struct {
	CategoryID      *uint                   `json:"category"`
	BookingID       *uint                   `json:"booking"`
	TransactionType *models.TransactionType `json:"transaction_type"`
	Amount          *decimal.Decimal        `json:"amount"`
	Date            *models.Date            `json:"date"`
	Description     *string                 `json:"description"`
	ReferenceNumber *string                 `json:"reference_number"`
	PaymentMethod   *string                 `json:"payment_method"`
}

type TransactionFilter struct {
	Type      models.TransactionType
	BookingID uint
	From, To  *models.Date
}

// Totals is the all-time ledger position.
type Totals struct {
	Income   decimal.Decimal `json:"total_income"`
	Expenses decimal.Decimal `json:"total_expenses"`
	Profit   decimal.Decimal `json:"net_profit"`
}

// ----------------------------------------------------
// Categories
// ----------------------------------------------------

func (s *FinanceService) ListCategories(ctx context.Context) ([]models.FinancialCategory, error) {
	list := []models.FinancialCategory{}
	if err := s.DB.WithContext(ctx).Order("type").Order("name").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve financial categories: %w", err)
	}
	return list, nil
}

func (s *FinanceService) GetCategory(ctx context.Context, id uint) (*models.FinancialCategory, error) {
	var c models.FinancialCategory
	if err := s.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, wrapFind(err, "financial category", id)
	}
	return &c, nil
}

func (s *FinanceService) CreateCategory(ctx context.Context, f FinancialCategoryFields) (*models.FinancialCategory, error) {
	var c models.FinancialCategory
	if err := applyFinancialCategory(&c, f); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, fmt.Errorf("failed to create financial category: %w", err)
	}
	return &c, nil
}

func (s *FinanceService) UpdateCategory(ctx context.Context, id uint, f FinancialCategoryFields) (*models.FinancialCategory, error) {
	c, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyFinancialCategory(c, f); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Save(c).Error; err != nil {
		return nil, fmt.Errorf("failed to update financial category %d: %w", id, err)
	}
	return c, nil
}

// DeleteCategory removes the category together with its transactions.
func (s *FinanceService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
			return fmt.Errorf("failed to delete transactions of category %d: %w", id, err)
		}
		if err := tx.Delete(&models.FinancialCategory{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete financial category %d: %w", id, err)
		}
		return nil
	})
}

func applyFinancialCategory(c *models.FinancialCategory, f FinancialCategoryFields) error {
	if f.Name != nil {
		c.Name = strings.TrimSpace(*f.Name)
	}
	if f.Type != nil {
		c.Type = *f.Type
	}
	if f.Description != nil {
		c.Description = *f.Description
	}
	if c.Name == "" {
		return invalid("name is required")
	}
	if !c.Type.Valid() {
		return invalid("type must be income or expense")
	}
	return nil
}

// ----------------------------------------------------
// Transactions
// ----------------------------------------------------

func (s *FinanceService) preloaded(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).Preload("Category").Preload("RecordedBy").Preload("Booking")
}

func (s *FinanceService) ListTransactions(ctx context.Context, f TransactionFilter) ([]models.Transaction, error) {
	q := s.preloaded(ctx)
	if f.Type != "" {
		q = q.Where("transaction_type = ?", f.Type)
	}
	if f.BookingID != 0 {
		q = q.Where("booking_id = ?", f.BookingID)
	}
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date <= ?", *f.To)
	}
	list := []models.Transaction{}
	if err := q.Order("date DESC").Order("created_at DESC").Order("id DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}
	return list, nil
}

func (s *FinanceService) GetTransaction(ctx context.Context, id uint) (*models.Transaction, error) {
	var t models.Transaction
	if err := s.preloaded(ctx).First(&t, id).Error; err != nil {
		return nil, wrapFind(err, "transaction", id)
	}
	return &t, nil
}

func (s *FinanceService) CreateTransaction(ctx context.Context, f TransactionFields, recordedBy *uint) (*models.Transaction, error) {
	t := models.Transaction{
		Date:         models.DateOf(s.Now()),
		RecordedByID: recordedBy,
	}
	if err := s.applyTransaction(ctx, &t, f); err != nil {
		return nil, err
	}
	if t.ReferenceNumber == "" {
		t.ReferenceNumber = "TXN-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
	}
	if err := s.DB.WithContext(ctx).Omit("Category", "Booking", "RecordedBy").Create(&t).Error; err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return s.GetTransaction(ctx, t.ID)
}

func (s *FinanceService) UpdateTransaction(ctx context.Context, id uint, f TransactionFields) (*models.Transaction, error) {
	t, err := s.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyTransaction(ctx, t, f); err != nil {
		return nil, err
	}
	t.Category, t.Booking, t.RecordedBy = nil, nil, nil
	if err := s.DB.WithContext(ctx).Save(t).Error; err != nil {
		return nil, fmt.Errorf("failed to update transaction %d: %w", id, err)
	}
	return s.GetTransaction(ctx, id)
}

func (s *FinanceService) DeleteTransaction(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Transaction{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("transaction", id)
	}
	return nil
}

func (s *FinanceService) applyTransaction(ctx context.Context, t *models.Transaction, f TransactionFields) error {
	if f.CategoryID != nil {
		t.CategoryID = *f.CategoryID
	}
	if f.TransactionType != nil {
		t.TransactionType = *f.TransactionType
	}
	if f.Amount != nil {
		t.Amount = *f.Amount
	}
	if f.Date != nil && !f.Date.IsZero() {
		t.Date = *f.Date
	}
	if f.Description != nil {
		t.Description = strings.TrimSpace(*f.Description)
	}
	if f.ReferenceNumber != nil {
		t.ReferenceNumber = strings.TrimSpace(*f.ReferenceNumber)
	}
	if f.PaymentMethod != nil {
		t.PaymentMethod = *f.PaymentMethod
	}
	if f.BookingID != nil {
		if *f.BookingID == 0 {
			t.BookingID = nil
		} else {
			var count int64
			if err := s.DB.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", *f.BookingID).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check booking: %w", err)
			}
			if count == 0 {
				return invalid("booking %d does not exist", *f.BookingID)
			}
			id := *f.BookingID
			t.BookingID = &id
		}
	}

	if t.CategoryID == 0 {
		return invalid("category is required")
	}
	category, err := s.GetCategory(ctx, t.CategoryID)
	if err != nil {
		return invalid("financial category %d does not exist", t.CategoryID)
	}
	if t.TransactionType == "" {
		t.TransactionType = category.Type
	}
	if !t.TransactionType.Valid() {
		return invalid("transaction_type must be income or expense")
	}
	if !t.Amount.IsPositive() {
		return invalid("amount must be greater than 0")
	}
	if t.Description == "" {
		return invalid("description is required")
	}
	return nil
}

// ----------------------------------------------------
// Aggregation
// ----------------------------------------------------

// sum totals one transaction type over [from, to). Empty ranges sum to zero.
func (s *FinanceService) sum(ctx context.Context, typ models.TransactionType, from, to *models.Date) (decimal.Decimal, error) {
	q := s.DB.WithContext(ctx).Model(&models.Transaction{}).
		Select("SUM(amount)").
		Where("transaction_type = ?", typ)
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date < ?", *to)
	}

	var total decimal.NullDecimal
	if err := q.Row().Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s: %w", typ, err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// MonthlySummary sums income and expenses for one calendar month.
func (s *FinanceService) MonthlySummary(ctx context.Context, year, month int) (models.MonthSummary, error) {
	if month < 1 || month > 12 {
		return models.MonthSummary{}, invalid("month must be between 1 and 12")
	}
	if year < 1 {
		return models.MonthSummary{}, invalid("year must be positive")
	}
	from := models.NewDate(year, time.Month(month), 1)
	to := models.NewDate(year, time.Month(month)+1, 1)

	income, err := s.sum(ctx, models.Income, &from, &to)
	if err != nil {
		return models.MonthSummary{}, err
	}
	expenses, err := s.sum(ctx, models.Expense, &from, &to)
	if err != nil {
		return models.MonthSummary{}, err
	}
	return models.MonthSummary{
		Year:     year,
		Month:    month,
		Income:   income,
		Expenses: expenses,
		Profit:   income.Sub(expenses),
	}, nil
}

// YearlyBreakdown runs MonthlySummary for January through December.
func (s *FinanceService) YearlyBreakdown(ctx context.Context, year int) ([]models.MonthSummary, error) {
	months := make([]models.MonthSummary, 0, 12)
	for m := 1; m <= 12; m++ {
		summary, err := s.MonthlySummary(ctx, year, m)
		if err != nil {
			return nil, err
		}
		months = append(months, summary)
	}
	return months, nil
}

func (s *FinanceService) Totals(ctx context.Context) (Totals, error) {
	income, err := s.sum(ctx, models.Income, nil, nil)
	if err != nil {
		return Totals{}, err
	}
	expenses, err := s.sum(ctx, models.Expense, nil, nil)
	if err != nil {
		return Totals{}, err
	}
	return Totals{Income: income, Expenses: expenses, Profit: income.Sub(expenses)}, nil
}
