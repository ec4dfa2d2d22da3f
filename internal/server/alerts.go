package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RunAlertCheck triggers one on-demand alert check cycle. A cycle already
// in flight is reported as a conflict rather than queued.
func (s *Server) RunAlertCheck(c *gin.Context) {
	result := s.sched.RunManualCheck(c.Request.Context())
	if !result.Success {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": result.Message,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": result.Message,
	})
}
