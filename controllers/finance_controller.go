package controllers

import (
	"net/http"
	"time"

	"github.com/Eurie-R/IMS-CristinaVilla/middleware"
	"github.com/Eurie-R/IMS-CristinaVilla/models"
	"github.com/Eurie-R/IMS-CristinaVilla/services"
	"github.com/Eurie-R/IMS-CristinaVilla/utils"

	"github.com/gin-gonic/gin"
)

type FinanceController struct {
	Svc *services.FinanceService
}

func NewFinanceController(svc *services.FinanceService) *FinanceController {
	return &FinanceController{Svc: svc}
}

// ----------------------------------------------------
// Categories (/api/financial-categories)
// ----------------------------------------------------

func (fc *FinanceController) ListCategories(c *gin.Context) {
	list, err := fc.Svc.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (fc *FinanceController) GetCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	cat, err := fc.Svc.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (fc *FinanceController) CreateCategory(c *gin.Context) {
	var req services.FinancialCategoryFields
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	cat, err := fc.Svc.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (fc *FinanceController) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req services.FinancialCategoryFields
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	cat, err := fc.Svc.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (fc *FinanceController) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := fc.Svc.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Category deleted")
}

// ----------------------------------------------------
// Transactions (/api/transactions)
// ----------------------------------------------------

// GET /api/transactions?type=&booking=&from=&to=
func (fc *FinanceController) ListTransactions(c *gin.Context) {
	bookingID, err := queryUint(c, "booking")
	if err != nil {
		respondError(c, err)
		return
	}
	from, err := queryDate(c, "from")
	if err != nil {
		respondError(c, err)
		return
	}
	to, err := queryDate(c, "to")
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := fc.Svc.ListTransactions(c.Request.Context(), services.TransactionFilter{
		Type:      models.TransactionType(c.Query("type")),
		BookingID: bookingID,
		From:      from,
		To:        to,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (fc *FinanceController) GetTransaction(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	t, err := fc.Svc.GetTransaction(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (fc *FinanceController) CreateTransaction(c *gin.Context) {
	var req services.TransactionFields
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	t, err := fc.Svc.CreateTransaction(c.Request.Context(), req, middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (fc *FinanceController) UpdateTransaction(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req services.TransactionFields
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	t, err := fc.Svc.UpdateTransaction(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (fc *FinanceController) DeleteTransaction(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := fc.Svc.DeleteTransaction(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Transaction deleted")
}

// GET /api/transactions/summary?year=&month=
func (fc *FinanceController) Summary(c *gin.Context) {
	now := time.Now()
	year, err := queryInt(c, "year", now.Year())
	if err != nil {
		respondError(c, err)
		return
	}
	month, err := queryInt(c, "month", int(now.Month()))
	if err != nil {
		respondError(c, err)
		return
	}
	summary, err := fc.Svc.MonthlySummary(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"year":     summary.Year,
		"month":    summary.Month,
		"income":   summary.Income,
		"expenses": summary.Expenses,
		"profit":   summary.Profit,
	})
}

// GET /api/transactions/monthly_breakdown?year=
func (fc *FinanceController) MonthlyBreakdown(c *gin.Context) {
	year, err := queryInt(c, "year", time.Now().Year())
	if err != nil {
		respondError(c, err)
		return
	}
	months, err := fc.Svc.YearlyBreakdown(c.Request.Context(), year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, months)
}
