package services

import (
	"strings"
	"testing"
	"time"

	"github.com/Eurie-R/IMS-CristinaVilla/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func financeFixture(t *testing.T) (*FinanceService, *models.FinancialCategory, *models.FinancialCategory) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewFinanceService(db)
	svc.Now = func() time.Time { return time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC) }

	income := models.Income
	expense := models.Expense
	in, err := svc.CreateCategory(bg, FinancialCategoryFields{Name: strPtr("Room Booking"), Type: &income})
	require.NoError(t, err)
	out, err := svc.CreateCategory(bg, FinancialCategoryFields{Name: strPtr("Utilities"), Type: &expense})
	require.NoError(t, err)
	return svc, in, out
}

func record(t *testing.T, svc *FinanceService, cat *models.FinancialCategory, amount, day string) *models.Transaction {
	t.Helper()
	txn, err := svc.CreateTransaction(bg, TransactionFields{
		CategoryID:  &cat.ID,
		Amount:      decPtr(amount),
		Date:        datePtr(day),
		Description: strPtr(cat.Name + " " + day),
	}, nil)
	require.NoError(t, err)
	return txn
}

func TestMonthlySummary_EmptyMonthIsZero(t *testing.T) {
	svc, _, _ := financeFixture(t)

	summary, err := svc.MonthlySummary(bg, 2024, 2)
	require.NoError(t, err)
	assert.True(t, summary.Income.IsZero())
	assert.True(t, summary.Expenses.IsZero())
	assert.True(t, summary.Profit.IsZero())
	assert.Equal(t, 2024, summary.Year)
	assert.Equal(t, 2, summary.Month)
}

func TestMonthlySummary_RespectsMonthBoundaries(t *testing.T) {
	svc, in, out := financeFixture(t)

	record(t, svc, in, "999", "2024-05-31")
	record(t, svc, in, "3000", "2024-06-01")
	record(t, svc, in, "1500.50", "2024-06-30")
	record(t, svc, out, "800.25", "2024-06-10")
	record(t, svc, out, "777", "2024-07-01")

	june, err := svc.MonthlySummary(bg, 2024, 6)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("4500.50").Equal(june.Income), "income %s", june.Income)
	assert.True(t, decimal.RequireFromString("800.25").Equal(june.Expenses), "expenses %s", june.Expenses)
	assert.True(t, decimal.RequireFromString("3700.25").Equal(june.Profit), "profit %s", june.Profit)

	_, err = svc.MonthlySummary(bg, 2024, 13)
	assert.True(t, IsValidation(err))
	_, err = svc.MonthlySummary(bg, 2024, 0)
	assert.True(t, IsValidation(err))
}

func TestYearlyBreakdownAndTotals(t *testing.T) {
	svc, in, out := financeFixture(t)

	record(t, svc, in, "1000", "2024-01-15")
	record(t, svc, out, "400", "2024-12-31")
	record(t, svc, in, "250", "2023-12-31")

	months, err := svc.YearlyBreakdown(bg, 2024)
	require.NoError(t, err)
	require.Len(t, months, 12)
	assert.True(t, decimal.NewFromInt(1000).Equal(months[0].Income))
	assert.True(t, decimal.NewFromInt(-400).Equal(months[11].Profit))
	assert.True(t, months[5].Income.IsZero())

	totals, err := svc.Totals(bg)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1250).Equal(totals.Income))
	assert.True(t, decimal.NewFromInt(400).Equal(totals.Expenses))
	assert.True(t, decimal.NewFromInt(850).Equal(totals.Profit))
}

func TestCreateTransaction_Defaults(t *testing.T) {
	svc, in, out := financeFixture(t)

	txn, err := svc.CreateTransaction(bg, TransactionFields{
		CategoryID:  &in.ID,
		Amount:      decPtr("1200"),
		Description: strPtr("walk-in"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.Income, txn.TransactionType)
	assert.Equal(t, "2024-06-15", txn.Date.String())
	assert.True(t, strings.HasPrefix(txn.ReferenceNumber, "TXN-"))
	assert.Len(t, txn.ReferenceNumber, 14)
	assert.Equal(t, strings.ToUpper(txn.ReferenceNumber), txn.ReferenceNumber)
	assert.Equal(t, "Room Booking", txn.CategoryName)

	explicit, err := svc.CreateTransaction(bg, TransactionFields{
		CategoryID:      &out.ID,
		Amount:          decPtr("50"),
		Description:     strPtr("refund"),
		ReferenceNumber: strPtr("OR-123"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.Expense, explicit.TransactionType)
	assert.Equal(t, "OR-123", explicit.ReferenceNumber)
}

func TestCreateTransaction_Validation(t *testing.T) {
	svc, in, _ := financeFixture(t)

	cases := map[string]TransactionFields{
		"zero amount":     {CategoryID: &in.ID, Amount: decPtr("0"), Description: strPtr("x")},
		"negative amount": {CategoryID: &in.ID, Amount: decPtr("-5"), Description: strPtr("x")},
		"no description":  {CategoryID: &in.ID, Amount: decPtr("5")},
		"no category":     {Amount: decPtr("5"), Description: strPtr("x")},
		"unknown booking": {CategoryID: &in.ID, Amount: decPtr("5"), Description: strPtr("x"), BookingID: uintPtr(77)},
	}
	for name, f := range cases {
		_, err := svc.CreateTransaction(bg, f, nil)
		assert.True(t, IsValidation(err), name)
	}

	list, err := svc.ListTransactions(bg, TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListTransactions_Filters(t *testing.T) {
	svc, in, out := financeFixture(t)

	record(t, svc, in, "100", "2024-06-01")
	record(t, svc, in, "200", "2024-06-20")
	record(t, svc, out, "50", "2024-06-10")

	incomes, err := svc.ListTransactions(bg, TransactionFilter{Type: models.Income})
	require.NoError(t, err)
	require.Len(t, incomes, 2)
	assert.Equal(t, "2024-06-20", incomes[0].Date.String())

	ranged, err := svc.ListTransactions(bg, TransactionFilter{From: datePtr("2024-06-05"), To: datePtr("2024-06-15")})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, models.Expense, ranged[0].TransactionType)
}

func TestDeleteFinancialCategoryRemovesTransactions(t *testing.T) {
	svc, in, out := financeFixture(t)
	record(t, svc, in, "100", "2024-06-01")
	kept := record(t, svc, out, "20", "2024-06-02")

	require.NoError(t, svc.DeleteCategory(bg, in.ID))

	list, err := svc.ListTransactions(bg, TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, kept.ID, list[0].ID)
}
