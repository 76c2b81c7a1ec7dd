package controllers

import (
	"log"
	"net/http"

	"github.com/Eurie-R/IMS-CristinaVilla/middleware"
	"github.com/Eurie-R/IMS-CristinaVilla/services"
	"github.com/Eurie-R/IMS-CristinaVilla/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Svc *services.UserService
}

func NewUserController(svc *services.UserService) *UserController {
	return &UserController{Svc: svc}
}

// GET /api/users/me
func (uc *UserController) Me(c *gin.Context) {
	id := middleware.CurrentUserID(c)
	if id == nil {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	u, err := uc.Svc.Get(c.Request.Context(), *id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (uc *UserController) List(c *gin.Context) {
	list, err := uc.Svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (uc *UserController) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	u, err := uc.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (uc *UserController) Create(c *gin.Context) {
	var req services.UserFields
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	u, err := uc.Svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	log.Printf("✅ User %s created with role %s", u.Username, u.Role)
	c.JSON(http.StatusCreated, u)
}

func (uc *UserController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req services.UserFields
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	u, err := uc.Svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (uc *UserController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if self := middleware.CurrentUserID(c); self != nil && *self == id {
		utils.JSONError(c, http.StatusBadRequest, "you cannot delete your own account")
		return
	}
	if err := uc.Svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "User deleted")
}
