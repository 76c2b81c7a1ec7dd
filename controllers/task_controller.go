package controllers

import (
	"net/http"

	"github.com/Eurie-R/IMS-CristinaVilla/models"
	"github.com/Eurie-R/IMS-CristinaVilla/services"
	"github.com/Eurie-R/IMS-CristinaVilla/utils"

	"github.com/gin-gonic/gin"
)

type TaskController struct {
	Svc *services.TaskService
}

func NewTaskController(svc *services.TaskService) *TaskController {
	return &TaskController{Svc: svc}
}

// GET /api/tasks?status=&date=
func (tc *TaskController) List(c *gin.Context) {
	due, err := queryDate(c, "date")
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := tc.Svc.List(c.Request.Context(), services.TaskFilter{
		Status:  models.TaskStatus(c.Query("status")),
		DueDate: due,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (tc *TaskController) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	t, err := tc.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (tc *TaskController) Create(c *gin.Context) {
	var req services.TaskFields
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	t, err := tc.Svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (tc *TaskController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req services.TaskFields
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	t, err := tc.Svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (tc *TaskController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := tc.Svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Task deleted")
}

// POST /api/tasks/:id/complete
func (tc *TaskController) Complete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	t, err := tc.Svc.Complete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}
