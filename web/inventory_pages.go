package web

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Eurie-R/IMS-CristinaVilla/services"

	"github.com/gin-gonic/gin"
)

func (p *Pages) inventoryList(c *gin.Context) {
	ctx := c.Request.Context()
	items, err := p.Inventory.ListItems(ctx, 0)
	if err != nil {
		log.Printf("❌ inventory page: %v", err)
		c.String(http.StatusInternalServerError, "failed to load inventory")
		return
	}
	categories, err := p.Inventory.ListCategories(ctx)
	if err != nil {
		log.Printf("❌ inventory page: %v", err)
		c.String(http.StatusInternalServerError, "failed to load inventory")
		return
	}
	p.render(c, "inventory.html", gin.H{"Title": "Inventory", "Items": items, "Categories": categories})
}

func (p *Pages) inventoryAdd(c *gin.Context) {
	f := services.ItemFields{
		Name:        formString(c, "name"),
		Description: formString(c, "description"),
		Unit:        formString(c, "unit"),
	}
	var err error
	if f.CategoryID, err = formUint(c, "category"); err != nil {
		redirectErr(c, "/inventory", err)
		return
	}
	if f.Quantity, err = formInt(c, "quantity"); err != nil {
		redirectErr(c, "/inventory", err)
		return
	}
	if f.RestockThreshold, err = formInt(c, "restock_threshold"); err != nil {
		redirectErr(c, "/inventory", err)
		return
	}
	if f.UnitCost, err = formDecimal(c, "unit_cost"); err != nil {
		redirectErr(c, "/inventory", err)
		return
	}
	if _, err := p.Inventory.CreateItem(c.Request.Context(), f); err != nil {
		redirectErr(c, "/inventory", err)
		return
	}
	redirect(c, "/inventory", "Inventory item added successfully.")
}

// inventoryUpdate handles the add/remove stock form.
func (p *Pages) inventoryUpdate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	amount, err := formInt(c, "amount")
	if err != nil {
		redirectErr(c, "/inventory", err)
		return
	}
	if amount == nil {
		redirectErr(c, "/inventory", &services.ValidationError{Message: "amount is required"})
		return
	}
	item, err := p.Inventory.Adjust(c.Request.Context(), id, c.PostForm("action"), *amount)
	if err != nil {
		redirectErr(c, "/inventory", err)
		return
	}
	redirect(c, "/inventory", fmt.Sprintf("%s updated: %d %s in stock.", item.Name, item.Quantity, item.Unit))
}
