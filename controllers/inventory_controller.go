package controllers

import (
	"log"
	"net/http"

	"github.com/Eurie-R/IMS-CristinaVilla/services"
	"github.com/Eurie-R/IMS-CristinaVilla/utils"

	"github.com/gin-gonic/gin"
)

type InventoryController struct {
	Svc *services.InventoryService
}

func NewInventoryController(svc *services.InventoryService) *InventoryController {
	return &InventoryController{Svc: svc}
}

// ----------------------------------------------------
// Categories (/api/inventory-categories)
// ----------------------------------------------------

func (ic *InventoryController) ListCategories(c *gin.Context) {
	list, err := ic.Svc.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ic *InventoryController) GetCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	cat, err := ic.Svc.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (ic *InventoryController) CreateCategory(c *gin.Context) {
	var req services.CategoryFields
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	cat, err := ic.Svc.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (ic *InventoryController) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req services.CategoryFields
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	cat, err := ic.Svc.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (ic *InventoryController) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := ic.Svc.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	log.Printf("✅ Inventory category %d deleted.", id)
	utils.JSONMessage(c, http.StatusOK, "Category deleted")
}

// ----------------------------------------------------
// Items (/api/inventory-items)
// ----------------------------------------------------

func (ic *InventoryController) ListItems(c *gin.Context) {
	categoryID, err := queryUint(c, "category")
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := ic.Svc.ListItems(c.Request.Context(), categoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// LowStock lists every item at or below its restock threshold.
func (ic *InventoryController) LowStock(c *gin.Context) {
	list, err := ic.Svc.LowStock(c.Request.Context(), 0)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ic *InventoryController) GetItem(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	item, err := ic.Svc.GetItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (ic *InventoryController) CreateItem(c *gin.Context) {
	var req services.ItemFields
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	item, err := ic.Svc.CreateItem(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (ic *InventoryController) UpdateItem(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req services.ItemFields
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	item, err := ic.Svc.UpdateItem(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (ic *InventoryController) DeleteItem(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := ic.Svc.DeleteItem(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	log.Printf("✅ Inventory item %d deleted.", id)
	utils.JSONMessage(c, http.StatusOK, "Item deleted")
}

type restockPayload struct {
	Quantity int `json:"quantity"`
}

func (ic *InventoryController) Restock(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req restockPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	item, err := ic.Svc.Restock(c.Request.Context(), id, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	log.Printf("📦 Restocked item %d by %d (now %d)", id, req.Quantity, item.Quantity)
	c.JSON(http.StatusOK, item)
}
