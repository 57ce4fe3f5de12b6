package server

import (
	"github.com/nyaysathi/core/internal/adapters/translation"
	"github.com/nyaysathi/core/internal/application/services"
	"github.com/nyaysathi/core/internal/infrastructure/config"
	"github.com/nyaysathi/core/internal/infrastructure/logger"
	"github.com/nyaysathi/core/internal/ports"
)

// newTranslationService assembles the provider chains. Base translation is
// google then mymemory behind the cache; explanations try ollama, then
// huggingface, then glossary substitution over the base translation.
func newTranslationService(cfg config.TranslationConfig, cache ports.CacheRepository, observer ports.ProviderObserver, log *logger.Logger) *services.TranslationService {
	opts := []translation.Option{translation.WithTimeout(cfg.HTTPTimeout)}

	base := services.NewCachedTranslator(
		services.NewFallbackTranslator([]ports.Translator{
			translation.NewGoogleTranslator(cfg.GoogleAPIKey, cfg.GoogleURL, opts...),
			translation.NewMyMemoryTranslator(cfg.MyMemoryURL, opts...),
		}, observer, log),
		cache,
		cfg.CacheTTL,
		log,
	)

	manual := translation.NewManualExplainer(base)
	explainers := []ports.ExplainProvider{
		translation.NewOllamaExplainer(translation.OllamaConfig{
			Enabled: cfg.Ollama.Enabled,
			BaseURL: cfg.Ollama.BaseURL,
			Model:   cfg.Ollama.Model,
		}, opts...),
		translation.NewHuggingFaceExplainer(translation.HuggingFaceConfig{
			APIKey:  cfg.HuggingFace.APIKey,
			BaseURL: cfg.HuggingFace.BaseURL,
			Model:   cfg.HuggingFace.Model,
		}, opts...),
		manual,
	}

	return services.NewTranslationService(base, explainers, manual, observer, log)
}

func newSummaryService(cfg config.TranslationConfig, pdfs ports.PdfService, observer ports.ProviderObserver, log *logger.Logger) *services.SummaryService {
	summarizer := translation.NewHuggingFaceSummarizer(translation.HuggingFaceConfig{
		APIKey:  cfg.HuggingFace.APIKey,
		BaseURL: cfg.HuggingFace.BaseURL,
		Model:   cfg.HuggingFace.SummaryModel,
	}, translation.WithTimeout(cfg.HTTPTimeout))

	return services.NewSummaryService(
		pdfs,
		translation.NewPDFTextExtractor(),
		summarizer,
		cfg.SummaryChunk,
		cfg.PublicBasePath,
		observer,
		log,
	)
}
