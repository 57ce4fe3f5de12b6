package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/nyaysathi/core/internal/ports"
)

const (
	myMemoryProviderName = "mymemory"
	myMemoryConfidence   = 85
	defaultMyMemoryURL   = "https://api.mymemory.translated.net/get"
)

// MyMemoryTranslator calls the free MyMemory API. It needs no credentials.
type MyMemoryTranslator struct {
	http     httpSettings
	endpoint string
}

// NewMyMemoryTranslator creates a translator for the given endpoint
func NewMyMemoryTranslator(endpoint string, opts ...Option) *MyMemoryTranslator {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = defaultMyMemoryURL
	}
	return &MyMemoryTranslator{http: newHTTPSettings(opts), endpoint: endpoint}
}

func (m *MyMemoryTranslator) Name() string { return myMemoryProviderName }

func (m *MyMemoryTranslator) Available() bool { return true }

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	// The API reports the status as a number or a quoted number.
	ResponseStatus  json.Number `json:"responseStatus"`
	ResponseDetails string      `json:"responseDetails"`
}

// Translate implements ports.Translator
func (m *MyMemoryTranslator) Translate(ctx context.Context, req ports.TranslateRequest) (*ports.TranslateResult, error) {
	query := url.Values{}
	query.Set("q", req.Q)
	query.Set("langpair", req.Source+"|"+req.Target)

	var resp myMemoryResponse
	err := m.http.do(ctx, request{
		provider: myMemoryProviderName,
		method:   http.MethodGet,
		url:      m.endpoint + "?" + query.Encode(),
	}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.ResponseStatus.String() != "200" {
		details := resp.ResponseDetails
		if details == "" {
			details = "Translation failed"
		}
		return nil, fmt.Errorf("mymemory: status %s: %s", resp.ResponseStatus, details)
	}

	return &ports.TranslateResult{
		TranslatedText: resp.ResponseData.TranslatedText,
		Confidence:     myMemoryConfidence,
		DetectedLanguage: ports.DetectedLanguage{
			Confidence: myMemoryConfidence,
			Language:   req.Source,
		},
	}, nil
}
