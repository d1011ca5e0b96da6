package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apierrors "github.com/dumpsterly/dumpsterly-api/pkg/api/errors"
	"github.com/dumpsterly/dumpsterly-api/pkg/metrics"
	"github.com/dumpsterly/dumpsterly-api/pkg/models"
	"github.com/dumpsterly/dumpsterly-api/pkg/store"
)

// LeadHandler handles quote-request HTTP requests
type LeadHandler struct {
	store   *store.Store
	metrics *metrics.Metrics
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(st *store.Store, m *metrics.Metrics) *LeadHandler {
	return &LeadHandler{store: st, metrics: m}
}

// List handles GET /api/v1/leads
func (h *LeadHandler) List(c echo.Context) error {
	var filter models.LeadFilter
	if err := c.Bind(&filter); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	if err := c.Validate(&filter); err != nil {
		return apierrors.ValidationError(c, err)
	}

	result := h.store.GetLeads(c.Request().Context(), filter)

	if h.metrics != nil && result.Degraded != "" {
		h.metrics.RecordDegradedRead("lead")
	}

	return c.JSON(http.StatusOK, result)
}

// Create handles POST /api/v1/leads. Lead capture succeeds even with no
// database configured: the lead is buffered in memory and the response says
// so, because losing a customer inquiry is worse than losing durability.
func (h *LeadHandler) Create(c echo.Context) error {
	var input models.LeadInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&input); err != nil {
		return apierrors.ValidationError(c, err)
	}

	result, err := h.store.CreateLead(c.Request().Context(), input)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}

	if h.metrics != nil {
		h.metrics.RecordLeadCaptured(string(result.Source))
	}

	return c.JSON(http.StatusCreated, result)
}

// UpdateStatusRequest is the body for a lead status change
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new viewed contacted won lost"`
}

// UpdateStatus handles PATCH /api/v1/leads/:id/status
func (h *LeadHandler) UpdateStatus(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid lead ID")
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	result, err := h.store.UpdateLeadStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, result)
}
