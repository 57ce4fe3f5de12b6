package http

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/infrastructure/logger"
	"github.com/nyaysathi/core/internal/ports"
)

// PdfHandler handles document storage and summaries
type PdfHandler struct {
	pdfService     ports.PdfService
	summaryService ports.SummaryService
	logger         *logger.Logger
}

// NewPdfHandler creates a new pdf handler
func NewPdfHandler(pdfService ports.PdfService, summaryService ports.SummaryService, logger *logger.Logger) *PdfHandler {
	return &PdfHandler{
		pdfService:     pdfService,
		summaryService: summaryService,
		logger:         logger,
	}
}

// StorePdf godoc
// @Summary      Store a PDF
// @Tags         pdfs
// @Accept       json
// @Produce      json
// @Param        pdf  body      ports.StorePdfRequest  true  "Filename and base64 data"
// @Success      201  {object}  ports.StorePdfResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /pdfs [post]
func (h *PdfHandler) StorePdf(c echo.Context) error {
	var req ports.StorePdfRequest
	if err := bindStrict(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return respondError(c, h.logger, fmt.Errorf("%w: data is not valid base64", entities.ErrValidation))
	}

	meta, err := h.pdfService.StorePdf(c.Request().Context(), req.Filename, data)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, ports.StorePdfResponse{Message: "PDF stored", ID: meta.ID})
}

// ListPdfs godoc
// @Summary      List stored PDFs
// @Tags         pdfs
// @Produce      json
// @Success      200  {array}  entities.PdfMeta
// @Router       /pdfs [get]
func (h *PdfHandler) ListPdfs(c echo.Context) error {
	pdfs, err := h.pdfService.ListPdfs(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, pdfs)
}

// DownloadPdf godoc
// @Summary      Download a stored PDF
// @Tags         pdfs
// @Produce      application/pdf
// @Param        id   path      string  true  "PDF ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  ErrorResponse
// @Router       /pdfs/{id} [get]
func (h *PdfHandler) DownloadPdf(c echo.Context) error {
	pdf, err := h.pdfService.FetchPdf(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": pdf.Filename})
	c.Response().Header().Set(echo.HeaderContentDisposition, disposition)
	return c.Blob(http.StatusOK, pdf.ContentType, pdf.Data)
}

// Summarize godoc
// @Summary      Summarize an uploaded PDF
// @Description  Stores the upload, extracts its text and summarizes it chunk by chunk.
// @Tags         pdfs
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "PDF document"
// @Success      200   {object}  ports.SummaryResult
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /summarize [post]
func (h *PdfHandler) Summarize(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return respondError(c, h.logger, fmt.Errorf("%w: multipart field \"file\" is required", entities.ErrValidation))
	}

	file, err := header.Open()
	if err != nil {
		return respondError(c, h.logger, fmt.Errorf("failed to open upload: %w", err))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return respondError(c, h.logger, fmt.Errorf("failed to read upload: %w", err))
	}

	result, err := h.summaryService.SummarizePDF(c.Request().Context(), header.Filename, data)
	if err != nil {
		return respondProviderError(c, h.logger, err, "Summarization failed")
	}

	return c.JSON(http.StatusOK, result)
}
