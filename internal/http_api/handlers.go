package http_api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// health is a handler for the /health endpoint.
func (s *HTTPServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// jobStatus reports, per job name, whether the job is currently active.
func (s *HTTPServer) jobStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"jobs": s.jobs.Jobs()})
}

// syncChannel reconciles a single channel instance on demand and returns the
// freshly cached state.
func (s *HTTPServer) syncChannel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid channel instance id",
		})
		return
	}

	instance, err := s.syncer.SyncInstance(c.Request.Context(), id)
	if err != nil {
		s.logger.Error("Failed to sync channel instance", "id", id, "error", err)
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "channel instance not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"instance": instance,
	})
}
