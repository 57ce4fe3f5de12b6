package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/infrastructure/logger"
	"github.com/nyaysathi/core/internal/ports"
)

// DefaultSummaryChunkSize is the largest chunk handed to the summarizer
const DefaultSummaryChunkSize = 900

const summarySeparator = "\n\n---\n\n"

// summarizerProvider names the summarizer in attempt logs and metrics
const summarizerProvider = "summarizer"

// SummaryService stores an uploaded PDF and summarizes its text chunk by chunk
type SummaryService struct {
	pdfs       ports.PdfService
	extractor  ports.TextExtractor
	summarizer ports.Summarizer
	chunkSize  int
	basePath   string
	recorder   attemptRecorder
	logger     *logger.Logger
}

// NewSummaryService creates a new summary service. basePath prefixes the
// returned download URL.
func NewSummaryService(pdfs ports.PdfService, extractor ports.TextExtractor, summarizer ports.Summarizer, chunkSize int, basePath string, observer ports.ProviderObserver, logger *logger.Logger) *SummaryService {
	if chunkSize <= 0 {
		chunkSize = DefaultSummaryChunkSize
	}
	l := logger.WithComponent("summary")
	return &SummaryService{
		pdfs:       pdfs,
		extractor:  extractor,
		summarizer: summarizer,
		chunkSize:  chunkSize,
		basePath:   strings.TrimRight(basePath, "/"),
		recorder:   attemptRecorder{observer: observer, logger: l},
		logger:     l,
	}
}

// ChunkText splits text on line breaks into chunks shorter than maxSize
// characters. A single line longer than maxSize becomes its own chunk.
func ChunkText(text string, maxSize int) []string {
	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if chunk := strings.TrimSpace(current.String()); chunk != "" {
			chunks = append(chunks, chunk)
		}
		current.Reset()
		currentLen = 0
	}

	for _, para := range strings.Split(text, "\n") {
		paraLen := utf8.RuneCountInString(para)
		if currentLen+paraLen >= maxSize {
			flush()
		}
		current.WriteString(para)
		current.WriteByte(' ')
		currentLen += paraLen + 1
	}
	flush()
	return chunks
}

// SummarizePDF stores the document, then summarizes its text
func (s *SummaryService) SummarizePDF(ctx context.Context, filename string, data []byte) (*ports.SummaryResult, error) {
	text, err := s.extractor.ExtractText(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrValidation, err)
	}
	chunks := ChunkText(text, s.chunkSize)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: document has no extractable text", entities.ErrValidation)
	}

	meta, err := s.pdfs.StorePdf(ctx, filename, data)
	if err != nil {
		return nil, err
	}

	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		started := time.Now()
		summary, err := s.summarizer.Summarize(ctx, chunk)
		s.recorder.record(summarizerProvider, started, err)
		if err != nil {
			return nil, &entities.PipelineError{
				Attempts:   []*entities.ProviderError{{Provider: summarizerProvider, Err: fmt.Errorf("chunk %d: %w", i+1, err)}},
				Suggestion: TranslationSuggestion,
			}
		}
		summaries = append(summaries, summary)
	}

	s.logger.Infow("PDF summarized", "pdf_id", meta.ID, "chunks", len(chunks))
	return &ports.SummaryResult{
		Summary: strings.Join(summaries, summarySeparator),
		FileURL: s.basePath + "/pdfs/" + meta.ID,
		Chunks:  len(chunks),
	}, nil
}
