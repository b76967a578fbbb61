package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/agency-backend/internal/interface/http/response"
	"github.com/ignatzorin/agency-backend/internal/service"
	"github.com/ignatzorin/agency-backend/internal/session"
)

// HealthCheck проверяет одну зависимость сервиса.
type HealthCheck func(ctx context.Context) error

// HealthHandler предоставляет endpoint для проверки здоровья сервиса.
type HealthHandler struct {
	checks map[string]HealthCheck
}

func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Health обрабатывает GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status := "healthy"
	checks := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			checks[name] = "unhealthy: " + err.Error()
			status = "unhealthy"
			continue
		}
		checks[name] = "healthy"
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}
	c.JSON(statusCode, HealthResponse{Status: status, Timestamp: time.Now(), Checks: checks})
}

// SessionResponse - текущий пользователь и доступные ему разделы.
type SessionResponse struct {
	Session    session.Session   `json:"session"`
	Navigation []session.NavItem `json:"navigation"`
}

type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Navigation обрабатывает GET /navigation.
func (h *SessionHandler) Navigation(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	response.Success(c, s.Navigation())
}

// Me обрабатывает GET /session.
func (h *SessionHandler) Me(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	response.Success(c, SessionResponse{Session: s, Navigation: s.Navigation()})
}

// SeedHandler обрабатывает запросы для генерации примерных данных.
type SeedHandler struct {
	seedService *service.SeedService
}

func NewSeedHandler(seedService *service.SeedService) *SeedHandler {
	return &SeedHandler{seedService: seedService}
}

// Seed обрабатывает POST /seed?proposals=N.
func (h *SeedHandler) Seed(c *gin.Context) {
	n, err := strconv.Atoi(c.DefaultQuery("proposals", "10"))
	if err != nil || n < 0 {
		n = 10
	}
	if n > 500 {
		n = 500
	}

	result, err := h.seedService.Seed(c.Request.Context(), n)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}
