package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apierrors "github.com/dumpsterly/dumpsterly-api/pkg/api/errors"
	"github.com/dumpsterly/dumpsterly-api/pkg/metrics"
	"github.com/dumpsterly/dumpsterly-api/pkg/seo"
)

// SEOHandler serves generated page metadata to the rendering frontend
type SEOHandler struct {
	engine  *seo.Engine
	metrics *metrics.Metrics
}

// NewSEOHandler creates a new SEO handler
func NewSEOHandler(engine *seo.Engine, m *metrics.Metrics) *SEOHandler {
	return &SEOHandler{engine: engine, metrics: m}
}

// Metadata handles POST /api/v1/seo/metadata. The body is a page context;
// the response is the complete head-metadata object.
func (h *SEOHandler) Metadata(c echo.Context) error {
	var ctx seo.PageContext
	if err := c.Bind(&ctx); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&ctx); err != nil {
		return apierrors.ValidationError(c, err)
	}

	if h.metrics != nil {
		h.metrics.RecordSEOGeneration(string(ctx.PageType))
	}

	return c.JSON(http.StatusOK, h.engine.GenerateMetadata(ctx))
}

// StructuredData handles POST /api/v1/seo/structured-data for callers
// inlining JSON-LD script tags separately from head tags
func (h *SEOHandler) StructuredData(c echo.Context) error {
	var ctx seo.PageContext
	if err := c.Bind(&ctx); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&ctx); err != nil {
		return apierrors.ValidationError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"structured_data": h.engine.GenerateStructuredData(ctx),
	})
}

// InternalLinks handles POST /api/v1/seo/internal-links
func (h *SEOHandler) InternalLinks(c echo.Context) error {
	var ctx seo.PageContext
	if err := c.Bind(&ctx); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&ctx); err != nil {
		return apierrors.ValidationError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"internal_links": h.engine.GenerateInternalLinks(ctx),
		"breadcrumbs":    h.engine.Breadcrumbs(ctx),
	})
}
