package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/infrastructure/logger"
	"github.com/nyaysathi/core/internal/ports"
)

// PdfService stores and serves binary documents
type PdfService struct {
	pdfRepo ports.PdfRepository
	logger  *logger.Logger
}

// NewPdfService creates a new pdf service
func NewPdfService(pdfRepo ports.PdfRepository, logger *logger.Logger) *PdfService {
	return &PdfService{
		pdfRepo: pdfRepo,
		logger:  logger.WithComponent("pdfs"),
	}
}

// StorePdf stores the bytes unchanged under the given file name
func (s *PdfService) StorePdf(ctx context.Context, filename string, data []byte) (*entities.PdfMeta, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return nil, fmt.Errorf("%w: filename is required", entities.ErrValidation)
	}

	pdf := &entities.Pdf{
		Filename:    filename,
		Data:        data,
		ContentType: entities.DefaultPdfContentType,
	}
	if err := s.pdfRepo.Create(ctx, pdf); err != nil {
		return nil, fmt.Errorf("failed to store pdf: %w", err)
	}

	s.logger.Infow("PDF stored", "pdf_id", pdf.ID, "filename", pdf.Filename, "size", len(data))
	return &entities.PdfMeta{ID: pdf.ID, Filename: pdf.Filename, CreatedAt: pdf.CreatedAt}, nil
}

// FetchPdf loads a stored document including its bytes
func (s *PdfService) FetchPdf(ctx context.Context, id string) (*entities.Pdf, error) {
	return s.pdfRepo.GetByID(ctx, id)
}

// ListPdfs lists stored documents without their bytes
func (s *PdfService) ListPdfs(ctx context.Context) ([]*entities.PdfMeta, error) {
	return s.pdfRepo.List(ctx)
}
