package translation

import (
	"context"
	"errors"

	"github.com/nyaysathi/core/internal/ports"
)

const (
	manualProviderName = "manual"
	manualMethod       = "enhanced_manual"
	manualConfidence   = 88
)

// ManualExplainer translates through the base translator and annotates the
// result with the offline legal glossary. It is always available.
type ManualExplainer struct {
	translator ports.Translator
}

// NewManualExplainer creates the dictionary-backed explainer
func NewManualExplainer(translator ports.Translator) *ManualExplainer {
	return &ManualExplainer{translator: translator}
}

func (m *ManualExplainer) Name() string { return manualProviderName }

func (m *ManualExplainer) Available() bool { return true }

// Explain implements ports.ExplainProvider
func (m *ManualExplainer) Explain(ctx context.Context, req ports.ExplainRequest) (*ports.ExplainResult, error) {
	if m.translator == nil {
		return nil, errors.New("manual: no base translator")
	}

	base, err := m.translator.Translate(ctx, ports.TranslateRequest{
		Q:      req.Text,
		Source: req.SourceLang,
		Target: req.TargetLang,
		Format: "text",
	})
	if err != nil {
		return nil, err
	}

	translated := base.TranslatedText
	if translated == "" {
		translated = req.Text
	}
	simplified := GlossaryFor(req.TargetLang).Annotate(translated)

	return &ports.ExplainResult{
		TranslatedText: simplified,
		Confidence:     manualConfidence,
		Method:         manualMethod,
		Alternatives:   EnhancedAlternatives(simplified, req.TargetLang),
	}, nil
}
