package controllers

import (
	"errors"
	"log"
	"net/http"

	"hotel-booking-api/models"
	"hotel-booking-api/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service error kind onto an HTTP status.
// Unknown errors stay generic so query text never leaks to callers.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrConflict):
		utils.JSONError(c, http.StatusConflict, err.Error())
	default:
		log.Printf("internal error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "internal server error")
	}
}
