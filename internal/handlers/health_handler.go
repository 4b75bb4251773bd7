package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/schema"
)

type HealthChecker interface {
	Health(ctx context.Context) schema.Health
}

type HealthHandler struct {
	checker HealthChecker
}

func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

func (h *HealthHandler) Health(c *gin.Context) {
	res := h.checker.Health(c.Request.Context())

	status := http.StatusOK
	if res.Status != schema.StatusHealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, res)
}
