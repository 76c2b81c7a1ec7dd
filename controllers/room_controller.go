package controllers

import (
	"log"
	"net/http"

	"github.com/Eurie-R/IMS-CristinaVilla/models"
	"github.com/Eurie-R/IMS-CristinaVilla/services"
	"github.com/Eurie-R/IMS-CristinaVilla/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Svc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{Svc: svc}
}

// ----------------------------------------------------
// 1. List Rooms (GET /api/rooms?status=)
// ----------------------------------------------------

func (rc *RoomController) List(c *gin.Context) {
	rooms, err := rc.Svc.List(c.Request.Context(), models.RoomStatus(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (rc *RoomController) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	room, err := rc.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// ----------------------------------------------------
// 2. Create Room (POST /api/rooms)
// ----------------------------------------------------

func (rc *RoomController) Create(c *gin.Context) {
	var req services.RoomFields
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	room, err := rc.Svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	log.Printf("✅ Room %s created.", room.RoomNumber)
	c.JSON(http.StatusCreated, room)
}

// ----------------------------------------------------
// 3. Update Room (PUT/PATCH /api/rooms/:id)
// ----------------------------------------------------

func (rc *RoomController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req services.RoomFields
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	room, err := rc.Svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// ----------------------------------------------------
// 4. Delete Room (DELETE /api/rooms/:id)
// ----------------------------------------------------

func (rc *RoomController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := rc.Svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	log.Printf("✅ Room ID %d deleted.", id)
	utils.JSONMessage(c, http.StatusOK, "Room deleted")
}

// ----------------------------------------------------
// 5. Availability (GET /api/rooms/availability?check_in=&check_out=)
// ----------------------------------------------------

func (rc *RoomController) Availability(c *gin.Context) {
	checkIn, err := queryDate(c, "check_in")
	if err != nil {
		respondError(c, err)
		return
	}
	checkOut, err := queryDate(c, "check_out")
	if err != nil {
		respondError(c, err)
		return
	}
	if checkIn == nil || checkOut == nil {
		utils.JSONError(c, http.StatusBadRequest, "check_in and check_out parameters are required")
		return
	}
	rooms, err := rc.Svc.Availability(c.Request.Context(), *checkIn, *checkOut)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}
