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
	googleProviderName = "google"
	googleConfidence   = 95
	defaultGoogleURL   = "https://translation.googleapis.com/language/translate/v2"
)

// GoogleTranslator calls the Cloud Translation v2 API. It is available only
// when an API key is configured.
type GoogleTranslator struct {
	http     httpSettings
	apiKey   string
	endpoint string
}

// NewGoogleTranslator creates a translator for the given key and endpoint
func NewGoogleTranslator(apiKey, endpoint string, opts ...Option) *GoogleTranslator {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = defaultGoogleURL
	}
	return &GoogleTranslator{
		http:     newHTTPSettings(opts),
		apiKey:   strings.TrimSpace(apiKey),
		endpoint: endpoint,
	}
}

func (g *GoogleTranslator) Name() string { return googleProviderName }

func (g *GoogleTranslator) Available() bool { return g.apiKey != "" }

type googleRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type googleResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage"`
		} `json:"translations"`
	} `json:"data"`
}

// Translate implements ports.Translator
func (g *GoogleTranslator) Translate(ctx context.Context, req ports.TranslateRequest) (*ports.TranslateResult, error) {
	if !g.Available() {
		return nil, fmt.Errorf("google: api key not configured: %w", entities.ErrProviderUnavailable)
	}

	format := req.Format
	if format == "" {
		format = "text"
	}

	endpoint := g.endpoint + "?key=" + url.QueryEscape(g.apiKey)
	var resp googleResponse
	err := g.http.do(ctx, request{
		provider: googleProviderName,
		method:   http.MethodPost,
		url:      endpoint,
		body:     googleRequest{Q: req.Q, Source: req.Source, Target: req.Target, Format: format},
	}, &resp)
	if err != nil {
		return nil, err
	}
	if len(resp.Data.Translations) == 0 {
		return nil, errors.New("google: response contained no translations")
	}

	first := resp.Data.Translations[0]
	detected := first.DetectedSourceLanguage
	if detected == "" {
		detected = req.Source
	}
	return &ports.TranslateResult{
		TranslatedText: first.TranslatedText,
		Confidence:     googleConfidence,
		DetectedLanguage: ports.DetectedLanguage{
			Confidence: googleConfidence,
			Language:   detected,
		},
	}, nil
}
