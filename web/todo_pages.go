package web

import (
	"log"
	"net/http"

	"github.com/Eurie-R/IMS-CristinaVilla/models"
	"github.com/Eurie-R/IMS-CristinaVilla/services"

	"github.com/gin-gonic/gin"
)

func (p *Pages) todoList(c *gin.Context) {
	tasks, err := p.Tasks.List(c.Request.Context(), services.TaskFilter{})
	if err != nil {
		log.Printf("❌ todo page: %v", err)
		c.String(http.StatusInternalServerError, "failed to load tasks")
		return
	}
	var open, done []models.Task
	for _, t := range tasks {
		if t.Status == models.TaskCompleted {
			done = append(done, t)
		} else {
			open = append(open, t)
		}
	}
	p.render(c, "todo.html", gin.H{"Title": "To-Do", "Incomplete": open, "Completed": done})
}

func (p *Pages) todoAdd(c *gin.Context) {
	f := services.TaskFields{
		Title:       formString(c, "title"),
		Description: formString(c, "description"),
	}
	if v := c.PostForm("priority"); v != "" {
		priority := models.TaskPriority(v)
		f.Priority = &priority
	}
	due, err := formDate(c, "due_date")
	if err != nil {
		redirectErr(c, "/todo", err)
		return
	}
	f.DueDate = due
	if _, err := p.Tasks.Create(c.Request.Context(), f); err != nil {
		redirectErr(c, "/todo", err)
		return
	}
	redirect(c, "/todo", "To-Do task added successfully.")
}

func (p *Pages) todoToggle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := p.Tasks.Toggle(c.Request.Context(), id)
	if err != nil {
		redirectErr(c, "/todo", err)
		return
	}
	msg := "Task reopened!"
	if t.Status == models.TaskCompleted {
		msg = "Task completed!"
	}
	redirect(c, "/todo", msg)
}

func (p *Pages) todoDelete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := p.Tasks.Delete(c.Request.Context(), id); err != nil {
		redirectErr(c, "/todo", err)
		return
	}
	redirect(c, "/todo", "Task deleted successfully.")
}
