package controllers

import (
	"net/http"

	"github.com/Eurie-R/IMS-CristinaVilla/middleware"
	"github.com/Eurie-R/IMS-CristinaVilla/services"
	"github.com/Eurie-R/IMS-CristinaVilla/utils"

	"github.com/gin-gonic/gin"
)

type CalendarController struct {
	Svc *services.CalendarService
}

func NewCalendarController(svc *services.CalendarService) *CalendarController {
	return &CalendarController{Svc: svc}
}

// GET /api/calendar-events?start=&end=
func (cc *CalendarController) List(c *gin.Context) {
	start, err := queryTime(c, "start")
	if err != nil {
		respondError(c, err)
		return
	}
	end, err := queryTime(c, "end")
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := cc.Svc.List(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (cc *CalendarController) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	e, err := cc.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (cc *CalendarController) Create(c *gin.Context) {
	var req services.CalendarEventFields
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	e, err := cc.Svc.Create(c.Request.Context(), req, middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (cc *CalendarController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req services.CalendarEventFields
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	e, err := cc.Svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (cc *CalendarController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := cc.Svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Event deleted")
}
