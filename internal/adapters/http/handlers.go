package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/infrastructure/logger"
	"github.com/nyaysathi/core/internal/ports"
)

// ClaimsContextKey holds the validated admin claims on the echo context
const ClaimsContextKey = "claims"

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// decodeStrict decodes a JSON body into dst, rejecting unknown fields. An
// empty body leaves dst at its zero value.
func decodeStrict(c echo.Context, dst interface{}) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", entities.ErrValidation, err)
	}
	return nil
}

func validate(c echo.Context, v interface{}) error {
	if err := c.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", entities.ErrValidation, err)
	}
	return nil
}

// bindStrict decodes then validates a request body
func bindStrict(c echo.Context, dst interface{}) error {
	if err := decodeStrict(c, dst); err != nil {
		return err
	}
	return validate(c, dst)
}

// statusFor maps a domain error onto an HTTP status and a public message
func statusFor(err error) (int, string) {
	var validationErrs validator.ValidationErrors
	switch {
	case entities.IsNotFound(err):
		return http.StatusNotFound, notFoundMessage(err)
	case errors.Is(err, entities.ErrContactExists):
		return http.StatusConflict, entities.ErrContactExists.Error()
	case errors.Is(err, entities.ErrInvalidEventWindow):
		return http.StatusBadRequest, "Invalid event window"
	case errors.Is(err, entities.ErrValidation), errors.As(err, &validationErrs):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, entities.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, entities.ErrTranslationFailed):
		return http.StatusInternalServerError, "Translation failed"
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, entities.ErrContactNotFound):
		return "Contact not found"
	case errors.Is(err, entities.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, entities.ErrEventNotFound):
		return "Event not found"
	case errors.Is(err, entities.ErrPdfNotFound):
		return "PDF not found"
	}
	return "Not found"
}

// respondError writes err as an ErrorResponse. Unmapped errors are logged and
// their details withheld from the client.
func respondError(c echo.Context, log *logger.Logger, err error) error {
	code, message := statusFor(err)
	body := ErrorResponse{Error: message}

	var pipelineErr *entities.PipelineError
	switch {
	case errors.As(err, &pipelineErr):
		body.Details = pipelineErr.Error()
		body.Suggestion = pipelineErr.Suggestion
		log.Errorw("Provider pipeline failed", "error", err, "path", c.Path())
	case code == http.StatusInternalServerError:
		log.Errorw("Request failed", "error", err, "path", c.Path(), "method", c.Request().Method)
	default:
		body.Details = err.Error()
	}
	return c.JSON(code, body)
}

// respondProviderError reports a failed provider pipeline under message and
// falls back to respondError for anything else.
func respondProviderError(c echo.Context, log *logger.Logger, err error, message string) error {
	var pipelineErr *entities.PipelineError
	if !errors.As(err, &pipelineErr) {
		return respondError(c, log, err)
	}
	log.Errorw("Provider pipeline failed", "error", err, "path", c.Path())
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:      message,
		Details:    pipelineErr.Error(),
		Suggestion: pipelineErr.Suggestion,
	})
}

// isAdmin reports whether the request carried a valid admin token
func isAdmin(c echo.Context) bool {
	claims, ok := c.Get(ClaimsContextKey).(*ports.Claims)
	return ok && claims != nil && claims.Role == "admin"
}

func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", entities.ErrValidation, name)
	}
	return n, nil
}

func queryString(c echo.Context, name string) *string {
	if v := c.QueryParam(name); v != "" {
		return &v
	}
	return nil
}
