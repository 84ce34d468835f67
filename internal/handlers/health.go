package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/jobportal/internal/services"
)

const (
	healthTimeout = 2 * time.Second
	livenessText  = "Career Code Job Portal Website Server Started"
)

func Root(c *gin.Context) {
	c.String(http.StatusOK, livenessText)
}

// HealthCheck pings the job store.
func HealthCheck(jobs *services.JobService, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()
		if err := jobs.Ping(ctx); err != nil {
			log.WithError(err).Error("Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
