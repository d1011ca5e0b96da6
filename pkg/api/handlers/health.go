package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dumpsterly/dumpsterly-api/pkg/store"
)

// HealthHandler serves liveness and backend status probes
type HealthHandler struct {
	store *store.Store
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(st *store.Store) *HealthHandler {
	return &HealthHandler{store: st}
}

// Health handles GET /health
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// DBHealth handles GET /health/db. A missing backend is reported, not
// treated as a failure: sample-data mode is a supported configuration.
func (h *HealthHandler) DBHealth(c echo.Context) error {
	status := h.store.TestConnection(c.Request().Context())

	code := http.StatusOK
	if !status.Success && h.store.Backend() != store.BackendNone {
		code = http.StatusServiceUnavailable
	}

	return c.JSON(code, status)
}
