// controllers/booking_controller.go
package controllers

import (
	"net/http"

	"github.com/Eurie-R/IMS-CristinaVilla/middleware"
	"github.com/Eurie-R/IMS-CristinaVilla/models"
	"github.com/Eurie-R/IMS-CristinaVilla/services"
	"github.com/Eurie-R/IMS-CristinaVilla/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// ---------------------------
// CRUD
// ---------------------------

// GET /api/bookings?status=&room=
func (bc *BookingController) List(c *gin.Context) {
	roomID, err := queryUint(c, "room")
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := bc.BookingSvc.List(c.Request.Context(), services.BookingFilter{
		Status: models.BookingStatus(c.Query("status")),
		RoomID: roomID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (bc *BookingController) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b, err := bc.BookingSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (bc *BookingController) Create(c *gin.Context) {
	var req services.BookingFields
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	b, err := bc.BookingSvc.Create(c.Request.Context(), req, middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (bc *BookingController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req services.BookingFields
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	b, err := bc.BookingSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (bc *BookingController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := bc.BookingSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Booking deleted")
}

// ---------------------------
// Actions: POST /api/bookings/:id/{confirm,check_in,check_out,cancel}
// ---------------------------

func (bc *BookingController) action(a services.BookingAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		b, err := bc.BookingSvc.Transition(c.Request.Context(), id, a)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

func (bc *BookingController) Confirm() gin.HandlerFunc  { return bc.action(services.ActionConfirm) }
func (bc *BookingController) CheckIn() gin.HandlerFunc  { return bc.action(services.ActionCheckIn) }
func (bc *BookingController) CheckOut() gin.HandlerFunc { return bc.action(services.ActionCheckOut) }
func (bc *BookingController) Cancel() gin.HandlerFunc   { return bc.action(services.ActionCancel) }

// GET /api/bookings/calendar_view?start=&end=
func (bc *BookingController) CalendarView(c *gin.Context) {
	start, err := queryDate(c, "start")
	if err != nil {
		respondError(c, err)
		return
	}
	end, err := queryDate(c, "end")
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := bc.BookingSvc.CalendarView(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
