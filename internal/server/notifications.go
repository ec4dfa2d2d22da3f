package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Server) ListNotifications(c *gin.Context) {
	subscriberID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_subscriber_id"})
		return
	}

	unreadOnly := c.Query("unread") == "true"
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	rows, err := s.notifications.ListBySubscriber(c.Request.Context(), subscriberID, unreadOnly, limit)
	if err != nil {
		s.log.Error("list notifications failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": rows})
}

func (s *Server) MarkNotificationRead(c *gin.Context) {
	notificationID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_notification_id"})
		return
	}

	err = s.notifications.MarkRead(c.Request.Context(), []snowflake.ID{notificationID}, time.Now().UTC())
	if err != nil {
		s.log.Error("mark notification read failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parseID(raw string) (snowflake.ID, error) {
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return snowflake.ID(value), nil
}
