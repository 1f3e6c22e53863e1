package syncer

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PullHandler serves GET /sync?last_pulled_at=<epoch-ms>.
// Pull never fails per entity, so the response is always 200.
func (s *Service) PullHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := s.Pull(c.Request.Context(), c.Query("last_pulled_at"))
		c.JSON(http.StatusOK, resp)
	}
}

// PushHandler serves POST /sync?last_pulled_at=<epoch-ms>.
func (s *Service) PushHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PushRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		if err := s.Push(c.Request.Context(), req, c.Query("last_pulled_at")); err != nil {
			switch {
			case errors.Is(err, ErrEntityNotSupported):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, ErrMigrationPending):
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
