package controllers

import (
	"net/http"

	"github.com/Eurie-R/IMS-CristinaVilla/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Svc *services.DashboardService
}

func NewDashboardController(svc *services.DashboardService) *DashboardController {
	return &DashboardController{Svc: svc}
}

// GET /api/dashboard/
func (dc *DashboardController) Get(c *gin.Context) {
	d, err := dc.Svc.Build(c.Request.Context(), false)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
