package web

import (
	"log"
	"net/http"

	"github.com/Eurie-R/IMS-CristinaVilla/middleware"
	"github.com/Eurie-R/IMS-CristinaVilla/models"
	"github.com/Eurie-R/IMS-CristinaVilla/services"

	"github.com/gin-gonic/gin"
)

func (p *Pages) financialSummary(c *gin.Context) {
	ctx := c.Request.Context()
	transactions, err := p.Finance.ListTransactions(ctx, services.TransactionFilter{})
	if err != nil {
		log.Printf("❌ financials page: %v", err)
		c.String(http.StatusInternalServerError, "failed to load transactions")
		return
	}
	totals, err := p.Finance.Totals(ctx)
	if err != nil {
		log.Printf("❌ financials page: %v", err)
		c.String(http.StatusInternalServerError, "failed to load totals")
		return
	}
	categories, err := p.Finance.ListCategories(ctx)
	if err != nil {
		log.Printf("❌ financials page: %v", err)
		c.String(http.StatusInternalServerError, "failed to load categories")
		return
	}
	p.render(c, "financials.html", gin.H{
		"Title":        "Financials",
		"Transactions": transactions,
		"Totals":       totals,
		"Categories":   categories,
		"Today":        models.DateOf(p.Now()),
	})
}

func (p *Pages) financialAdd(c *gin.Context) {
	f := services.TransactionFields{
		Description:     formString(c, "description"),
		ReferenceNumber: formString(c, "reference_number"),
		PaymentMethod:   formString(c, "payment_method"),
	}
	if v := c.PostForm("transaction_type"); v != "" {
		typ := models.TransactionType(v)
		f.TransactionType = &typ
	}
	var err error
	if f.CategoryID, err = formUint(c, "category"); err != nil {
		redirectErr(c, "/financials", err)
		return
	}
	if f.Amount, err = formDecimal(c, "amount"); err != nil {
		redirectErr(c, "/financials", err)
		return
	}
	if f.Date, err = formDate(c, "date"); err != nil {
		redirectErr(c, "/financials", err)
		return
	}
	if _, err := p.Finance.CreateTransaction(c.Request.Context(), f, middleware.CurrentUserID(c)); err != nil {
		redirectErr(c, "/financials", err)
		return
	}
	redirect(c, "/financials", "Financial transaction added successfully.")
}

func (p *Pages) financialDelete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := p.Finance.DeleteTransaction(c.Request.Context(), id); err != nil {
		redirectErr(c, "/financials", err)
		return
	}
	redirect(c, "/financials", "Transaction deleted successfully.")
}
