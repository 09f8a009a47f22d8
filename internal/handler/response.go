package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation = "https://centime.app/errors/validation"
	ErrorTypeNotFound   = "https://centime.app/errors/not-found"
	ErrorTypeConflict   = "https://centime.app/errors/conflict"
	ErrorTypeInternal   = "https://centime.app/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, detail string) error {
	return c.JSON(http.StatusConflict, ProblemDetails{
		Type:     ErrorTypeConflict,
		Title:    "Conflict",
		Status:   http.StatusConflict,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal server error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

var notFoundSentinels = []error{
	domain.ErrNotFound,
	domain.ErrAccountNotFound,
	domain.ErrBucketNotFound,
	domain.ErrCategoryNotFound,
	domain.ErrSubCategoryNotFound,
	domain.ErrTransactionNotFound,
	domain.ErrBudgetNotFound,
}

var validationSentinels = []error{
	domain.ErrInvalidInput,
	domain.ErrLabelRequired,
	domain.ErrNameRequired,
	domain.ErrZeroAmount,
	domain.ErrNegativeAmount,
	domain.ErrInvalidPeriod,
	domain.ErrInvalidStatus,
	domain.ErrInvalidAccountKind,
	domain.ErrNoteRequired,
	domain.ErrSameAccountTransfer,
	domain.ErrBucketAccountKind,
}

// respondError maps domain sentinels to problem responses. Anything
// unrecognized is logged and reported as a 500 with the given detail.
func respondError(c echo.Context, err error, detail string) error {
	for _, sentinel := range notFoundSentinels {
		if errors.Is(err, sentinel) {
			return NewNotFoundError(c, err.Error())
		}
	}
	for _, sentinel := range validationSentinels {
		if errors.Is(err, sentinel) {
			return NewValidationError(c, err.Error(), nil)
		}
	}
	if errors.Is(err, domain.ErrNothingToCopy) || errors.Is(err, domain.ErrNothingToCalibrate) {
		return NewConflictError(c, err.Error())
	}
	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg(detail)
	return NewInternalError(c, detail)
}

// periodFromQuery reads ?year=&month= query parameters.
func periodFromQuery(c echo.Context) (domain.Period, error) {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return domain.Period{}, domain.ErrInvalidPeriod
	}
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil {
		return domain.Period{}, domain.ErrInvalidPeriod
	}
	period := domain.Period{Year: year, Month: month}
	if !period.Valid() {
		return domain.Period{}, domain.ErrInvalidPeriod
	}
	return period, nil
}

// periodFromPath reads /:year/:month path parameters.
func periodFromPath(c echo.Context) (domain.Period, error) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return domain.Period{}, domain.ErrInvalidPeriod
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return domain.Period{}, domain.ErrInvalidPeriod
	}
	period := domain.Period{Year: year, Month: month}
	if !period.Valid() {
		return domain.Period{}, domain.ErrInvalidPeriod
	}
	return period, nil
}
