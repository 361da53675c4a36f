package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/daycarehub/backend/pkg/logger"
	"github.com/daycarehub/backend/pkg/mailer"
	"github.com/daycarehub/backend/pkg/redis"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db          *gorm.DB
	redisClient *redis.Client
	mail        mailer.Mailer
}

type HealthCheckResponse struct {
	Status    string                 `json:"status"`
	Version   string                 `json:"version"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]HealthCheck `json:"checks"`
}

type HealthCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func NewHealthHandler(db *gorm.DB, redisClient *redis.Client, mail mailer.Mailer) *HealthHandler {
	return &HealthHandler{
		db:          db,
		redisClient: redisClient,
		mail:        mail,
	}
}

// HealthCheck reports database, cache and mail transport status. Redis
// and SMTP are optional, only the database marks the service unhealthy.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	response := HealthCheckResponse{
		Status:    "healthy",
		Version:   "1.0.0",
		Timestamp: time.Now(),
		Checks:    make(map[string]HealthCheck),
	}

	dbStatus := h.checkDatabase(ctx)
	response.Checks["database"] = dbStatus
	if dbStatus.Status != "healthy" {
		response.Status = "unhealthy"
	}

	response.Checks["redis"] = h.checkRedis(ctx)
	response.Checks["mailer"] = h.checkMailer()

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	logger.Debug("Health check performed").
		String("overall_status", response.Status).
		StatusCode(statusCode).
		Log()

	c.JSON(statusCode, response)
}

// BasicHealth is the cheap probe for load balancers.
func (h *HealthHandler) BasicHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"version":   "1.0.0",
		"timestamp": time.Now(),
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) HealthCheck {
	if h.db == nil {
		return HealthCheck{Status: "unhealthy", Message: "Database not configured"}
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		return HealthCheck{Status: "unhealthy", Message: err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return HealthCheck{Status: "unhealthy", Message: err.Error()}
	}

	return HealthCheck{Status: "healthy", Message: "Database connection OK"}
}

func (h *HealthHandler) checkRedis(ctx context.Context) HealthCheck {
	if h.redisClient == nil {
		return HealthCheck{Status: "disabled", Message: "Redis caching disabled"}
	}
	if err := h.redisClient.Ping(ctx); err != nil {
		return HealthCheck{Status: "unhealthy", Message: err.Error()}
	}
	return HealthCheck{Status: "healthy", Message: "Redis connection OK"}
}

func (h *HealthHandler) checkMailer() HealthCheck {
	smtp, ok := h.mail.(*mailer.SMTPMailer)
	if !ok {
		return HealthCheck{Status: "disabled", Message: "SMTP delivery disabled"}
	}

	stats := smtp.BreakerStats()
	if state, ok := stats["state"].(string); ok && state == "OPEN" {
		return HealthCheck{Status: "unhealthy", Message: "SMTP circuit breaker open"}
	}
	return HealthCheck{Status: "healthy", Message: "SMTP transport OK"}
}
