package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"maintdesk/internal/services"
)

type ReminderHandler struct {
	service services.ReminderService
}

func NewReminderHandler(service services.ReminderService) *ReminderHandler {
	return &ReminderHandler{service: service}
}

// @Summary      Run the reminder sweep
// @Description  Synchronously runs the due-tomorrow sweep; admin only
// @Tags         Reminders
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /api/reminders/run [post]
func (h *ReminderHandler) Run(c *gin.Context) {
	actor := getActor(c)
	log.Printf("[reminder][run] manual trigger by userID=%d", actor.ID)

	result, err := h.service.RunSweep(c.Request.Context())
	if err != nil {
		// manual runs surface failures, unlike the scheduled job
		log.Printf("[reminder][run][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reminder sweep failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"sent":    result.Sent,
		"failed":  result.Failed,
		"skipped": result.Skipped,
	})
}
