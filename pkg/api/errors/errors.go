package errors

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dumpsterly/dumpsterly-api/pkg/domain"
	"github.com/dumpsterly/dumpsterly-api/pkg/models"
)

// ValidationError returns a generic validation error without exposing internal details
func ValidationError(c echo.Context, err error) error {
	log.Printf("[VALIDATION ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "validation_error",
		Message: "Invalid request data. Please check your input and try again.",
	})
}

// DatabaseError returns a generic database error without exposing internal details
func DatabaseError(c echo.Context, err error) error {
	log.Printf("[DATABASE ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "database_error",
		Message: "A database error occurred. Please try again later.",
	})
}

// InternalError returns a generic internal server error
func InternalError(c echo.Context, err error) error {
	log.Printf("[INTERNAL ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred. Please try again later.",
	})
}

// NotFoundError returns a generic not found error
func NotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error:   "not_found",
		Message: "The requested resource was not found.",
	})
}

// NotConfiguredError reports that no database backend is active. Writes
// cannot be faked against sample data, so the caller gets an explicit 503.
func NotConfiguredError(c echo.Context) error {
	return c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
		Error:   "database_not_configured",
		Message: "Database not configured",
	})
}

// FromDomain maps a domain error to its HTTP response
func FromDomain(c echo.Context, err error) error {
	var derr *domain.DomainError
	if !domain.AsDomainError(err, &derr) {
		return InternalError(c, err)
	}

	switch derr.Code {
	case domain.ErrCodeNotFound:
		return NotFoundError(c, "")
	case domain.ErrCodeValidation, domain.ErrCodeBadRequest:
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: derr.Message,
		})
	case domain.ErrCodeNotConfigured:
		return NotConfiguredError(c)
	case domain.ErrCodeConflict:
		return c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "conflict",
			Message: derr.Message,
		})
	case domain.ErrCodeBackend:
		return DatabaseError(c, err)
	default:
		return InternalError(c, err)
	}
}
