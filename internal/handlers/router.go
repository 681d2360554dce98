package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/elearning-service/internal/utils"
)

const serviceName = "elearning-service"

// ReadinessChecker reports whether the service can take traffic
type ReadinessChecker interface {
	HealthCheck(ctx context.Context) error
}

type HandlerManager struct {
	readiness    ReadinessChecker
	logger       utils.Logger
	readyTimeout time.Duration
}

func NewHandlerManager(readiness ReadinessChecker, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		readiness:    readiness,
		logger:       logger,
		readyTimeout: 3 * time.Second,
	}
}

// SetupRoutes registers the operational endpoints
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.Health)
	router.GET("/ready", hm.Ready)
}

// Health reports liveness only
func (hm *HandlerManager) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   serviceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready pings the database and cache through the readiness checker
func (hm *HandlerManager) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), hm.readyTimeout)
	defer cancel()

	if err := hm.readiness.HealthCheck(ctx); err != nil {
		utils.GetLogger(c, hm.logger).Warn("Readiness check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unavailable",
			"service": serviceName,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"service": serviceName,
	})
}
