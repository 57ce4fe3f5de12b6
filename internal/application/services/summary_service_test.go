package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/infrastructure/logger"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f fakeExtractor) ExtractText([]byte) (string, error) { return f.text, f.err }

type fakeSummarizer struct {
	inputs []string
	err    error
}

func (f *fakeSummarizer) Summarize(_ context.Context, text string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.inputs = append(f.inputs, text)
	return "summary of " + strings.Fields(text)[0], nil
}

func TestChunkText(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want []string
	}{
		{"single chunk", "a\nb\nc", 900, []string{"a b c"}},
		{"split on size", "aaaa\nbbbb\ncccc", 10, []string{"aaaa bbbb", "cccc"}},
		{"long line alone", strings.Repeat("x", 12) + "\ny", 10, []string{strings.Repeat("x", 12), "y"}},
		{"blank text", "\n \n", 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChunkText(tt.text, tt.max)
			if len(got) != len(tt.want) {
				t.Fatalf("ChunkText = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("chunk %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSummaryService_SummarizePDF(t *testing.T) {
	svc := newTestServices(t)
	summarizer := &fakeSummarizer{}
	text := "alpha one\n" + strings.Repeat("z", 20) + "\nbeta two"

	s := NewSummaryService(svc.pdfs, fakeExtractor{text: text}, summarizer, 15, "/api/v1/", nil, logger.NewNop())
	res, err := s.SummarizePDF(context.Background(), "order.pdf", []byte("%PDF"))
	if err != nil {
		t.Fatalf("SummarizePDF failed: %v", err)
	}
	if res.Chunks != 3 || len(summarizer.inputs) != 3 {
		t.Fatalf("chunks = %d, inputs = %d", res.Chunks, len(summarizer.inputs))
	}
	if !strings.Contains(res.Summary, "\n\n---\n\n") {
		t.Fatalf("summary not joined with separator: %q", res.Summary)
	}
	if !strings.HasPrefix(res.FileURL, "/api/v1/pdfs/") {
		t.Fatalf("fileUrl = %q", res.FileURL)
	}

	pdfs, err := svc.pdfs.ListPdfs(context.Background())
	if err != nil || len(pdfs) != 1 {
		t.Fatalf("uploaded document not stored: %v, %v", pdfs, err)
	}
}

func TestSummaryService_Failures(t *testing.T) {
	svc := newTestServices(t)

	empty := NewSummaryService(svc.pdfs, fakeExtractor{text: "  \n"}, &fakeSummarizer{}, 0, "", nil, logger.NewNop())
	if _, err := empty.SummarizePDF(context.Background(), "a.pdf", []byte("x")); !errors.Is(err, entities.ErrValidation) {
		t.Fatalf("empty text err = %v", err)
	}

	failing := NewSummaryService(svc.pdfs, fakeExtractor{text: "text"}, &fakeSummarizer{err: errors.New("503")}, 0, "", nil, logger.NewNop())
	_, err := failing.SummarizePDF(context.Background(), "a.pdf", []byte("x"))
	if !errors.Is(err, entities.ErrTranslationFailed) {
		t.Fatalf("summarizer failure err = %v", err)
	}
}
