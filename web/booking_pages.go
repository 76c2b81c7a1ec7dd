package web

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/Eurie-R/IMS-CristinaVilla/middleware"
	"github.com/Eurie-R/IMS-CristinaVilla/models"
	"github.com/Eurie-R/IMS-CristinaVilla/services"

	"github.com/gin-gonic/gin"
)

func (p *Pages) bookingList(c *gin.Context) {
	ctx := c.Request.Context()
	bookings, err := p.Bookings.List(ctx, services.BookingFilter{})
	if err != nil {
		log.Printf("❌ bookings page: %v", err)
		c.String(http.StatusInternalServerError, "failed to load bookings")
		return
	}
	rooms, err := p.Rooms.List(ctx, "")
	if err != nil {
		log.Printf("❌ bookings page: %v", err)
		c.String(http.StatusInternalServerError, "failed to load rooms")
		return
	}

	today := models.DateOf(p.Now())
	var upcoming, past []models.Booking
	for _, b := range bookings {
		if b.CheckOutDate.Before(today) {
			past = append(past, b)
		} else {
			upcoming = append(upcoming, b)
		}
	}
	p.render(c, "bookings.html", gin.H{"Title": "Bookings", "Upcoming": upcoming, "Past": past, "Rooms": rooms})
}

func (p *Pages) bookingAdd(c *gin.Context) {
	f := services.BookingFields{
		GuestName:       formString(c, "guest_name"),
		GuestEmail:      formString(c, "guest_email"),
		GuestPhone:      formString(c, "guest_phone"),
		SpecialRequests: formString(c, "special_requests"),
		PaymentMethod:   formString(c, "payment_method"),
	}
	var err error
	if f.RoomID, err = formUint(c, "room"); err != nil {
		redirectErr(c, "/bookings", err)
		return
	}
	if f.NumberOfGuests, err = formInt(c, "number_of_guests"); err != nil {
		redirectErr(c, "/bookings", err)
		return
	}
	if f.CheckInDate, err = formDate(c, "check_in_date"); err != nil {
		redirectErr(c, "/bookings", err)
		return
	}
	if f.CheckOutDate, err = formDate(c, "check_out_date"); err != nil {
		redirectErr(c, "/bookings", err)
		return
	}
	if f.TotalAmount, err = formDecimal(c, "total_amount"); err != nil {
		redirectErr(c, "/bookings", err)
		return
	}
	if f.AmountPaid, err = formDecimal(c, "amount_paid"); err != nil {
		redirectErr(c, "/bookings", err)
		return
	}
	if extra := strings.TrimSpace(c.PostForm("additional_guests")); extra != "" {
		f.AdditionalGuests = strings.Split(extra, ",")
	}

	b, err := p.Bookings.Create(c.Request.Context(), f, middleware.CurrentUserID(c))
	if err != nil {
		redirectErr(c, "/bookings", err)
		return
	}
	redirect(c, "/bookings", fmt.Sprintf("Booking #%d added successfully.", b.ID))
}
