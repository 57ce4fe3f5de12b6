package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/ports"
)

// PdfRepositoryImpl implements ports.PdfRepository
type PdfRepositoryImpl struct {
	db *sqlx.DB
}

// NewPdfRepository creates a new pdf repository
func NewPdfRepository(db *sqlx.DB) ports.PdfRepository {
	return &PdfRepositoryImpl{db: db}
}

// Create stores the document bytes unchanged
func (r *PdfRepositoryImpl) Create(ctx context.Context, pdf *entities.Pdf) error {
	if pdf.ID == "" {
		pdf.ID = uuid.NewString()
	}
	if pdf.ContentType == "" {
		pdf.ContentType = entities.DefaultPdfContentType
	}
	if pdf.Data == nil {
		pdf.Data = []byte{}
	}
	pdf.CreatedAt = time.Now().UTC()

	query := r.db.Rebind(`
		INSERT INTO pdfs (id, filename, data, content_type, created_at)
		VALUES (?, ?, ?, ?, ?)`)

	if _, err := r.db.ExecContext(ctx, query, pdf.ID, pdf.Filename, pdf.Data, pdf.ContentType, pdf.CreatedAt); err != nil {
		return translateWriteError("create pdf", err)
	}
	return nil
}

// GetByID loads a document including its bytes
func (r *PdfRepositoryImpl) GetByID(ctx context.Context, id string) (*entities.Pdf, error) {
	var pdf entities.Pdf
	query := r.db.Rebind(`SELECT id, filename, data, content_type, created_at FROM pdfs WHERE id = ?`)

	if err := r.db.GetContext(ctx, &pdf, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrPdfNotFound
		}
		return nil, fmt.Errorf("get pdf by id: %w", err)
	}
	return &pdf, nil
}

// List returns document metadata, newest first
func (r *PdfRepositoryImpl) List(ctx context.Context) ([]*entities.PdfMeta, error) {
	pdfs := []*entities.PdfMeta{}
	query := `SELECT id, filename, created_at FROM pdfs ORDER BY created_at DESC, id`

	if err := r.db.SelectContext(ctx, &pdfs, query); err != nil {
		return nil, fmt.Errorf("list pdfs: %w", err)
	}
	return pdfs, nil
}
