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
	ollamaProviderName = "ollama"
	ollamaMethod       = "ollama"
	ollamaConfidence   = 95
)

// OllamaConfig captures the settings of a local Ollama server
type OllamaConfig struct {
	Enabled bool
	BaseURL string
	Model   string
}

// OllamaExplainer runs the legal prompt against a local model
type OllamaExplainer struct {
	http httpSettings
	cfg  OllamaConfig
}

// NewOllamaExplainer creates an explainer for a local Ollama server
func NewOllamaExplainer(cfg OllamaConfig, opts ...Option) *OllamaExplainer {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.Model = strings.TrimSpace(cfg.Model)
	return &OllamaExplainer{http: newHTTPSettings(opts), cfg: cfg}
}

func (o *OllamaExplainer) Name() string { return ollamaProviderName }

func (o *OllamaExplainer) Available() bool {
	return o.cfg.Enabled && o.cfg.BaseURL != "" && o.cfg.Model != ""
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// Explain implements ports.ExplainProvider
func (o *OllamaExplainer) Explain(ctx context.Context, req ports.ExplainRequest) (*ports.ExplainResult, error) {
	if !o.Available() {
		return nil, fmt.Errorf("ollama: not enabled: %w", entities.ErrProviderUnavailable)
	}
	endpoint, err := url.JoinPath(o.cfg.BaseURL, "api", "generate")
	if err != nil {
		return nil, err
	}

	var resp ollamaGenerateResponse
	err = o.http.do(ctx, request{
		provider: ollamaProviderName,
		method:   http.MethodPost,
		url:      endpoint,
		body: ollamaGenerateRequest{
			Model:  o.cfg.Model,
			Prompt: LegalPrompt(req.Text, req.SourceLang, req.TargetLang),
		},
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.New("ollama: " + resp.Error)
	}

	text := strings.TrimSpace(resp.Response)
	if text == "" {
		return nil, errors.New("ollama: empty response")
	}
	return &ports.ExplainResult{
		TranslatedText: text,
		Confidence:     ollamaConfidence,
		Method:         ollamaMethod,
		Alternatives:   AIAlternatives(text, req.TargetLang),
	}, nil
}
