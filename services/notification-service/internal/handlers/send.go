package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ID-JA/bookie/services/notification-service/internal/events"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, ev events.Notification) bool
}

type NotifyHandler struct {
	disp Dispatcher
}

func NewNotifyHandler(disp Dispatcher) *NotifyHandler {
	return &NotifyHandler{disp: disp}
}

// POST /notifications/send — synchronous entry point; shares the queue
// worker's dispatch pipeline.
func (h *NotifyHandler) Send(c *gin.Context) {
	var in events.Notification
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := in.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.disp.Dispatch(c.Request.Context(), in) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send notification"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification sent successfully"})
}

// Register wires the notification-service HTTP surface.
func Register(r *gin.Engine, h *NotifyHandler) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "notification-service"})
	})
	r.POST("/notifications/send", h.Send)
}
