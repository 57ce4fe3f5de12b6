package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/infrastructure/logger"
	"github.com/nyaysathi/core/internal/ports"
)

// TranslationSuggestion is returned to callers when every provider failed
const TranslationSuggestion = "Please check your internet connection and try again."

// attemptRecorder reports each provider attempt to the logger and observer
type attemptRecorder struct {
	observer ports.ProviderObserver
	logger   *logger.Logger
}

func (r attemptRecorder) record(provider string, started time.Time, err error) {
	elapsed := time.Since(started)
	r.logger.LogProviderAttempt(provider, elapsed, err)
	if r.observer != nil {
		r.observer.ObserveProviderAttempt(provider, elapsed, err)
	}
}

// FallbackTranslator tries each available translator in order and returns
// the first success.
type FallbackTranslator struct {
	translators []ports.Translator
	recorder    attemptRecorder
}

// NewFallbackTranslator creates a translator chain
func NewFallbackTranslator(translators []ports.Translator, observer ports.ProviderObserver, logger *logger.Logger) *FallbackTranslator {
	return &FallbackTranslator{
		translators: translators,
		recorder:    attemptRecorder{observer: observer, logger: logger.WithComponent("translate")},
	}
}

func (f *FallbackTranslator) Name() string { return "fallback" }

// Available reports whether any translator in the chain is available
func (f *FallbackTranslator) Available() bool {
	for _, t := range f.translators {
		if t.Available() {
			return true
		}
	}
	return false
}

// Translate implements ports.Translator
func (f *FallbackTranslator) Translate(ctx context.Context, req ports.TranslateRequest) (*ports.TranslateResult, error) {
	pipelineErr := &entities.PipelineError{Suggestion: TranslationSuggestion}
	for _, t := range f.translators {
		if !t.Available() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		started := time.Now()
		res, err := t.Translate(ctx, req)
		f.recorder.record(t.Name(), started, err)
		if err == nil {
			return res, nil
		}
		pipelineErr.Attempts = append(pipelineErr.Attempts, &entities.ProviderError{Provider: t.Name(), Err: err})
	}
	return nil, pipelineErr
}

// CachedTranslator serves repeated translations from the cache
type CachedTranslator struct {
	next   ports.Translator
	cache  ports.CacheRepository
	ttl    time.Duration
	logger *logger.Logger
}

// NewCachedTranslator wraps next with a read-through cache
func NewCachedTranslator(next ports.Translator, cache ports.CacheRepository, ttl time.Duration, logger *logger.Logger) *CachedTranslator {
	return &CachedTranslator{next: next, cache: cache, ttl: ttl, logger: logger.WithComponent("translate")}
}

func (c *CachedTranslator) Name() string { return c.next.Name() }

func (c *CachedTranslator) Available() bool { return c.next.Available() }

func translationCacheKey(req ports.TranslateRequest) string {
	sum := sha256.Sum256([]byte(req.Source + "\x00" + req.Target + "\x00" + req.Format + "\x00" + req.Q))
	return "translate:" + hex.EncodeToString(sum[:])
}

// Translate implements ports.Translator
func (c *CachedTranslator) Translate(ctx context.Context, req ports.TranslateRequest) (*ports.TranslateResult, error) {
	key := translationCacheKey(req)

	var cached ports.TranslateResult
	err := c.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, entities.ErrCacheMiss) {
		c.logger.Warnw("Translation cache read failed", "error", err)
	}

	res, err := c.next.Translate(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, res, c.ttl); err != nil {
		c.logger.Warnw("Translation cache write failed", "error", err)
	}
	return res, nil
}

// TranslationService serves plain translations and legal explanations
type TranslationService struct {
	translator ports.Translator
	explainers []ports.ExplainProvider
	basic      ports.ExplainProvider
	recorder   attemptRecorder
	logger     *logger.Logger
}

// NewTranslationService creates a translation service. explainers are tried
// in order for ai_enhanced requests; basic alone serves basic requests.
func NewTranslationService(translator ports.Translator, explainers []ports.ExplainProvider, basic ports.ExplainProvider, observer ports.ProviderObserver, logger *logger.Logger) *TranslationService {
	l := logger.WithComponent("explain")
	return &TranslationService{
		translator: translator,
		explainers: explainers,
		basic:      basic,
		recorder:   attemptRecorder{observer: observer, logger: l},
		logger:     l,
	}
}

func normalizeLanguage(field, code string) (string, error) {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return "", fmt.Errorf("%w: %s %q is not a language code", entities.ErrValidation, field, code)
	}
	base, _ := tag.Base()
	return base.String(), nil
}

// Translate produces a single base translation
func (s *TranslationService) Translate(ctx context.Context, req ports.TranslateRequest) (*ports.TranslateResult, error) {
	if strings.TrimSpace(req.Q) == "" {
		return nil, fmt.Errorf("%w: q is required", entities.ErrValidation)
	}
	var err error
	if req.Source, err = normalizeLanguage("source", req.Source); err != nil {
		return nil, err
	}
	if req.Target, err = normalizeLanguage("target", req.Target); err != nil {
		return nil, err
	}
	if req.Format == "" {
		req.Format = "text"
	}

	return s.translator.Translate(ctx, req)
}

// Explain runs the explanation providers in order and returns the first
// success. A failing provider is skipped.
func (s *TranslationService) Explain(ctx context.Context, req ports.ExplainRequest) (*ports.ExplainResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("%w: text is required", entities.ErrValidation)
	}
	var err error
	if req.SourceLang, err = normalizeLanguage("sourceLang", req.SourceLang); err != nil {
		return nil, err
	}
	if req.TargetLang, err = normalizeLanguage("targetLang", req.TargetLang); err != nil {
		return nil, err
	}

	chain := s.explainers
	switch req.Mode {
	case "", ports.ExplainModeAIEnhanced:
		req.Mode = ports.ExplainModeAIEnhanced
	case ports.ExplainModeBasic:
		chain = []ports.ExplainProvider{s.basic}
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", entities.ErrValidation, req.Mode)
	}

	pipelineErr := &entities.PipelineError{Suggestion: TranslationSuggestion}
	for _, p := range chain {
		if p == nil || !p.Available() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		started := time.Now()
		res, err := p.Explain(ctx, req)
		s.recorder.record(p.Name(), started, err)
		if err != nil {
			pipelineErr.Attempts = append(pipelineErr.Attempts, &entities.ProviderError{Provider: p.Name(), Err: err})
			continue
		}
		if res.Alternatives == nil {
			res.Alternatives = []string{}
		}
		return res, nil
	}

	s.logger.Errorw("All explanation providers failed", "mode", req.Mode, "error", pipelineErr)
	return nil, pipelineErr
}
