package handlers

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	uuid2 "github.com/google/uuid"

	"github.com/SAP-F-2025/elearning-service/internal/utils"
)

const requestIDHeader = "X-Request-ID"

// Only read endpoints are exposed
var corsMethods = strings.Join([]string{http.MethodGet, http.MethodHead, http.MethodOptions}, ", ")

// SetupMiddleware installs the request scoped logger first so recovery,
// CORS rejections and the access log all carry the request id.
// allowedOrigins of "*" admits any origin.
func SetupMiddleware(router *gin.Engine, logger utils.Logger, allowedOrigins []string) {
	router.Use(RequestContextMiddleware(logger))
	router.Use(RecoveryMiddleware(logger))
	router.Use(CORSMiddleware(logger, allowedOrigins))
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(SecurityMiddleware())
}

// RequestContextMiddleware reuses the caller's X-Request-ID or mints one,
// echoes it back and binds a logger tagged with it and the service name
func RequestContextMiddleware(logger utils.Logger) gin.HandlerFunc {
	base := logger.With("service", serviceName)
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid2.New().String()
		}
		c.Header(requestIDHeader, requestID)
		utils.BindLogger(c, base, requestID)
		c.Next()
	}
}

// RecoveryMiddleware turns a panic into a 500 and logs it with the request id
func RecoveryMiddleware(logger utils.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		utils.GetLogger(c, logger).Error("Handler panicked",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"service": serviceName,
		})
	})
}

// CORSMiddleware admits the configured origins. A disallowed preflight is
// refused with 403; other disallowed requests proceed without CORS headers.
func CORSMiddleware(logger utils.Logger, allowedOrigins []string) gin.HandlerFunc {
	anyOrigin := len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowed := anyOrigin || slices.Contains(allowedOrigins, origin)

		if allowed {
			if anyOrigin {
				c.Header("Access-Control-Allow-Origin", "*")
			} else {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
			}
			c.Header("Access-Control-Allow-Methods", corsMethods)
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, "+requestIDHeader)
			c.Header("Access-Control-Expose-Headers", "Content-Length, "+requestIDHeader)
			c.Header("Access-Control-Max-Age", "43200")
		}

		if c.Request.Method != http.MethodOptions {
			c.Next()
			return
		}
		if !allowed {
			utils.GetLogger(c, logger).Warn("CORS preflight refused", "origin", origin, "path", c.Request.URL.Path)
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.AbortWithStatus(http.StatusNoContent)
	}
}

// SecurityMiddleware sets headers for a JSON only API
func SecurityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
