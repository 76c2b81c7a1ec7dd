package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Eurie-R/IMS-CristinaVilla/models"
	"github.com/Eurie-R/IMS-CristinaVilla/services"
	"github.com/Eurie-R/IMS-CristinaVilla/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		utils.JSONError(c, http.StatusBadRequest, ve.Message)
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found.")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, "No active account found with the given credentials")
	case errors.Is(err, services.ErrInvalidToken):
		utils.JSONError(c, http.StatusUnauthorized, "Token is invalid or expired")
	case services.IsDuplicateKey(err):
		log.Printf("❌ Duplicate key: %v", err)
		utils.JSONErrorDetails(c, http.StatusConflict, "A record with this value already exists.", err.Error())
	default:
		log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.JSONErrorDetails(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}

func badPayload(c *gin.Context, err error) {
	log.Printf("❌ JSON BINDING ERROR (400): %v", err)
	utils.JSONErrorDetails(c, http.StatusBadRequest, "Invalid request payload", err.Error())
}

// paramID reads the numeric :id path parameter, writing a 400 when it is malformed.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// queryDate parses an optional YYYY-MM-DD query parameter.
func queryDate(c *gin.Context, key string) (*models.Date, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, &services.ValidationError{Message: key + ": " + err.Error()}
	}
	return &d, nil
}

// queryUint parses an optional numeric query parameter.
func queryUint(c *gin.Context, key string) (uint, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, &services.ValidationError{Message: key + " must be a number"}
	}
	return uint(v), nil
}

// queryInt parses an optional integer query parameter, falling back to def.
func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &services.ValidationError{Message: key + " must be a number"}
	}
	return v, nil
}

// queryTime parses an optional RFC3339 or YYYY-MM-DD query parameter.
func queryTime(c *gin.Context, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, &services.ValidationError{Message: key + ": " + err.Error()}
	}
	t := d.Time()
	return &t, nil
}
