package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/domain/service"
)

// Component states reported by the chat relay health check
const (
	ComponentOK            = "ok"
	ComponentNotConfigured = "not configured"
	ComponentUnchecked     = "unchecked"
)

const healthTimeout = 5 * time.Second

// componentCheck probes one dependency. A nil probe means the dependency is
// present but offers no way to check it.
type componentCheck struct {
	name       string
	configured bool
	required   bool
	probe      func(ctx context.Context) error
}

// HealthHandler handles health check endpoints of the chat relay
type HealthHandler struct {
	checks   []componentCheck
	provider string
}

// NewHealthHandler creates a new health handler. Any dependency may be nil.
// The transcript database gates readiness; the generator is probed only
// when its backend supports a cheap check.
func NewHealthHandler(db *gorm.DB, redis *redis.Client, generator service.TextGenerator) *HealthHandler {
	h := &HealthHandler{}

	dbCheck := componentCheck{name: "database", configured: db != nil, required: true}
	if db != nil {
		dbCheck.probe = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}

	redisCheck := componentCheck{name: "redis", configured: redis != nil}
	if redis != nil {
		redisCheck.probe = func(ctx context.Context) error {
			return redis.Ping(ctx).Err()
		}
	}

	llmCheck := componentCheck{name: "llm", configured: generator != nil}
	if generator != nil {
		h.provider = generator.Name()
		if checker, ok := generator.(service.BackendChecker); ok {
			llmCheck.probe = checker.CheckBackend
		}
	}

	h.checks = []componentCheck{dbCheck, redisCheck, llmCheck}
	return h
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status      string            `json:"status"`
	LLMProvider string            `json:"llm_provider,omitempty"`
	Components  map[string]string `json:"components"`
}

// run reports a component's state and whether it is failing
func (cc componentCheck) run(ctx context.Context) (string, bool) {
	switch {
	case !cc.configured:
		return ComponentNotConfigured, false
	case cc.probe == nil:
		return ComponentUnchecked, false
	}
	if err := cc.probe(ctx); err != nil {
		return "error: " + err.Error(), true
	}
	return ComponentOK, false
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	components := make(map[string]string, len(h.checks))
	healthy := true
	for _, cc := range h.checks {
		state, failed := cc.run(ctx)
		components[cc.name] = state
		if failed {
			healthy = false
		}
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if !healthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, HealthStatus{
		Status:      status,
		LLMProvider: h.provider,
		Components:  components,
	})
}

// Ready handles GET /ready. Only required components gate readiness.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	for _, cc := range h.checks {
		if !cc.required {
			continue
		}
		if state, failed := cc.run(ctx); failed {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": cc.name + " " + state})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
