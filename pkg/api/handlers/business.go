package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apierrors "github.com/dumpsterly/dumpsterly-api/pkg/api/errors"
	"github.com/dumpsterly/dumpsterly-api/pkg/metrics"
	"github.com/dumpsterly/dumpsterly-api/pkg/models"
	"github.com/dumpsterly/dumpsterly-api/pkg/store"
)

// BusinessHandler handles business listing HTTP requests
type BusinessHandler struct {
	store   *store.Store
	metrics *metrics.Metrics
}

// NewBusinessHandler creates a new business handler
func NewBusinessHandler(st *store.Store, m *metrics.Metrics) *BusinessHandler {
	return &BusinessHandler{store: st, metrics: m}
}

// List handles GET /api/v1/businesses. Reads never fail: a backend outage
// degrades to sample data and the response carries the degradation reason.
func (h *BusinessHandler) List(c echo.Context) error {
	var filter models.BusinessFilter
	if err := c.Bind(&filter); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	if err := c.Validate(&filter); err != nil {
		return apierrors.ValidationError(c, err)
	}

	result := h.store.GetBusinesses(c.Request().Context(), filter)

	if h.metrics != nil {
		h.metrics.RecordBusinessSearch()
		if result.IsDegraded() {
			h.metrics.RecordDegradedRead("business")
		}
	}

	return c.JSON(http.StatusOK, result)
}

// Get handles GET /api/v1/businesses/:id
func (h *BusinessHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid business ID")
	}

	result := h.store.GetBusinessByID(c.Request().Context(), id)

	if h.metrics != nil && result.Degraded != "" {
		h.metrics.RecordDegradedRead("business")
	}

	if result.Business == nil {
		return apierrors.NotFoundError(c, "business")
	}

	return c.JSON(http.StatusOK, result)
}

// Create handles POST /api/v1/businesses
func (h *BusinessHandler) Create(c echo.Context) error {
	var input models.BusinessInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&input); err != nil {
		return apierrors.ValidationError(c, err)
	}

	business, err := h.store.CreateBusiness(c.Request().Context(), input)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}

	return c.JSON(http.StatusCreated, business)
}

// Update handles PATCH /api/v1/businesses/:id
func (h *BusinessHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid business ID")
	}

	var update models.BusinessUpdate
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&update); err != nil {
		return apierrors.ValidationError(c, err)
	}

	business, err := h.store.UpdateBusiness(c.Request().Context(), id, update)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, business)
}
