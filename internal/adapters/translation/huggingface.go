package translation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/ports"
)

const (
	huggingFaceProviderName = "huggingface"
	huggingFaceMethod       = "huggingface"
	huggingFaceConfidence   = 90
	defaultHuggingFaceURL   = "https://api-inference.huggingface.co/models"

	summaryMaxLength = 300
	summaryMinLength = 80
)

// HuggingFaceConfig captures the hosted inference settings
type HuggingFaceConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type huggingFaceClient struct {
	http httpSettings
	cfg  HuggingFaceConfig
}

func newHuggingFaceClient(cfg HuggingFaceConfig, opts []Option) huggingFaceClient {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultHuggingFaceURL
	}
	cfg.Model = strings.TrimSpace(cfg.Model)
	return huggingFaceClient{http: newHTTPSettings(opts), cfg: cfg}
}

func (c huggingFaceClient) available() bool {
	return c.cfg.APIKey != "" && c.cfg.Model != ""
}

type inferenceRequest struct {
	Inputs     string                 `json:"inputs"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
}

type inferenceOutput struct {
	GeneratedText string `json:"generated_text"`
	SummaryText   string `json:"summary_text"`
}

func (c huggingFaceClient) infer(ctx context.Context, payload inferenceRequest) (*inferenceOutput, error) {
	if !c.available() {
		return nil, fmt.Errorf("huggingface: api key or model not configured: %w", entities.ErrProviderUnavailable)
	}
	// model ids contain a slash that must stay a path separator
	endpoint, err := url.JoinPath(c.cfg.BaseURL, strings.Split(c.cfg.Model, "/")...)
	if err != nil {
		return nil, err
	}

	var outputs []inferenceOutput
	err = c.http.do(ctx, request{
		provider: huggingFaceProviderName,
		method:   http.MethodPost,
		url:      endpoint,
		headers:  map[string]string{"Authorization": "Bearer " + c.cfg.APIKey},
		body:     payload,
	}, &outputs)
	if err != nil {
		return nil, err
	}
	if len(outputs) == 0 {
		return nil, errors.New("huggingface: empty response")
	}
	return &outputs[0], nil
}

// HuggingFaceExplainer runs the legal prompt against a hosted model
type HuggingFaceExplainer struct {
	client huggingFaceClient
}

// NewHuggingFaceExplainer creates an explainer backed by the inference API
func NewHuggingFaceExplainer(cfg HuggingFaceConfig, opts ...Option) *HuggingFaceExplainer {
	return &HuggingFaceExplainer{client: newHuggingFaceClient(cfg, opts)}
}

func (h *HuggingFaceExplainer) Name() string { return huggingFaceProviderName }

func (h *HuggingFaceExplainer) Available() bool { return h.client.available() }

// Explain implements ports.ExplainProvider
func (h *HuggingFaceExplainer) Explain(ctx context.Context, req ports.ExplainRequest) (*ports.ExplainResult, error) {
	out, err := h.client.infer(ctx, inferenceRequest{
		Inputs: LegalPrompt(req.Text, req.SourceLang, req.TargetLang),
	})
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(out.GeneratedText)
	if text == "" {
		return nil, errors.New("huggingface: empty generated text")
	}
	return &ports.ExplainResult{
		TranslatedText: text,
		Confidence:     huggingFaceConfidence,
		Method:         huggingFaceMethod,
		Alternatives:   AIAlternatives(text, req.TargetLang),
	}, nil
}

// HuggingFaceSummarizer condenses text with a hosted summarization model
type HuggingFaceSummarizer struct {
	client huggingFaceClient
}

// NewHuggingFaceSummarizer creates a summarizer backed by the inference API
func NewHuggingFaceSummarizer(cfg HuggingFaceConfig, opts ...Option) *HuggingFaceSummarizer {
	return &HuggingFaceSummarizer{client: newHuggingFaceClient(cfg, opts)}
}

// Summarize implements ports.Summarizer
func (h *HuggingFaceSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	out, err := h.client.infer(ctx, inferenceRequest{
		Inputs: summaryPromptPrefix + text,
		Parameters: map[string]interface{}{
			"max_length": summaryMaxLength,
			"min_length": summaryMinLength,
			"do_sample":  false,
		},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out.SummaryText), nil
}
