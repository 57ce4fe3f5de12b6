package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nyaysathi/core/internal/infrastructure/logger"
	"github.com/nyaysathi/core/internal/ports"
)

// TranslationHandler handles translation and legal explanation requests
type TranslationHandler struct {
	translationService ports.TranslationService
	logger             *logger.Logger
}

// NewTranslationHandler creates a new translation handler
func NewTranslationHandler(translationService ports.TranslationService, logger *logger.Logger) *TranslationHandler {
	return &TranslationHandler{
		translationService: translationService,
		logger:             logger,
	}
}

// Translate godoc
// @Summary      Translate text
// @Tags         translation
// @Accept       json
// @Produce      json
// @Param        request  body      ports.TranslateRequest  true  "Text and language pair"
// @Success      200      {object}  ports.TranslateResult
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /translate [post]
func (h *TranslationHandler) Translate(c echo.Context) error {
	var req ports.TranslateRequest
	if err := bindStrict(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	result, err := h.translationService.Translate(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, result)
}

// Explain godoc
// @Summary      Translate and simplify legal text
// @Description  Tries the local model, then hosted inference, then glossary substitution.
// @Tags         translation
// @Accept       json
// @Produce      json
// @Param        request  body      ports.ExplainRequest  true  "Text, language pair and mode"
// @Success      200      {object}  ports.ExplainResult
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /ai-legal-explain [post]
func (h *TranslationHandler) Explain(c echo.Context) error {
	var req ports.ExplainRequest
	if err := bindStrict(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	result, err := h.translationService.Explain(c.Request().Context(), req)
	if err != nil {
		return respondProviderError(c, h.logger, err, "AI processing failed")
	}

	return c.JSON(http.StatusOK, result)
}
