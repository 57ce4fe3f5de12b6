package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/nyaysathi/core/internal/domain/entities"
)

func TestPdfService_RoundTrip(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	data := []byte{0x25, 0x50, 0x44, 0x46, 0x00, 0xff, 0x10}
	meta, err := svc.pdfs.StorePdf(ctx, "  cases/2024/Order 12/3.pdf ", data)
	if err != nil {
		t.Fatalf("StorePdf failed: %v", err)
	}
	if meta.Filename != "cases/2024/Order 12/3.pdf" {
		t.Errorf("filename = %q, want name as given", meta.Filename)
	}

	got, err := svc.pdfs.FetchPdf(ctx, meta.ID)
	if err != nil {
		t.Fatalf("FetchPdf failed: %v", err)
	}
	if got.Filename != meta.Filename {
		t.Errorf("fetched filename = %q, stored %q", got.Filename, meta.Filename)
	}
	if got.ContentType != entities.DefaultPdfContentType {
		t.Errorf("content type = %q", got.ContentType)
	}
	if !bytes.Equal(got.Data, data) {
		t.Fatalf("bytes changed: %v", got.Data)
	}

	list, err := svc.pdfs.ListPdfs(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListPdfs = %v, %v", list, err)
	}

	if _, err := svc.pdfs.StorePdf(ctx, " ", data); !errors.Is(err, entities.ErrValidation) {
		t.Fatalf("empty filename err = %v", err)
	}
}
