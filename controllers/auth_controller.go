package controllers

import (
	"net/http"

	"github.com/Eurie-R/IMS-CristinaVilla/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type loginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshPayload struct {
	Refresh string `json:"refresh" binding:"required"`
}

// POST /api/token/
func (ac *AuthController) Token(c *gin.Context) {
	var req loginPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	pair, err := ac.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// POST /api/token/refresh/
func (ac *AuthController) Refresh(c *gin.Context) {
	var req refreshPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	pair, err := ac.Auth.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}
