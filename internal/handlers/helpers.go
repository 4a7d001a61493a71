package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"maintdesk/internal/models"
	"maintdesk/internal/services"
)

// getActor rebuilds the caller identity from what AuthMiddleware put into
// the context.
func getActor(c *gin.Context) models.Actor {
	var actor models.Actor
	if v, ok := c.Get("user_id"); ok {
		switch t := v.(type) {
		case int64:
			actor.ID = t
		case int:
			actor.ID = int64(t)
		case float64:
			actor.ID = int64(t)
		}
	}
	if v, ok := c.Get("role"); ok {
		if role, ok := v.(string); ok {
			actor.Role = role
		}
	}
	if v, ok := c.Get("name"); ok {
		if name, ok := v.(string); ok {
			actor.Name = name
		}
	}
	return actor
}

// statusFor maps service sentinel errors onto HTTP statuses; anything
// unrecognized is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// respondError hides internal detail on 500s and passes the service message
// through for client errors.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
