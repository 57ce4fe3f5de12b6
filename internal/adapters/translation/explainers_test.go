package translation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/ports"
)

type stubTranslator struct {
	text string
	err  error
}

func (s stubTranslator) Name() string    { return "stub" }
func (s stubTranslator) Available() bool { return true }
func (s stubTranslator) Translate(context.Context, ports.TranslateRequest) (*ports.TranslateResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &ports.TranslateResult{TranslatedText: s.text}, nil
}

func TestOllamaExplainer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var body ollamaGenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Stream || body.Model != "llama2:7b" {
			t.Fatalf("unexpected request %+v", body)
		}
		if !strings.Contains(body.Prompt, "Source Text: The court is closed") {
			t.Fatalf("prompt missing source text: %s", body.Prompt)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"response": "अदालत बंद है", "done": true})
	}))
	defer server.Close()

	o := NewOllamaExplainer(OllamaConfig{Enabled: true, BaseURL: server.URL, Model: "llama2:7b"})
	res, err := o.Explain(context.Background(), ports.ExplainRequest{Text: "The court is closed", SourceLang: "en", TargetLang: "hi"})
	if err != nil {
		t.Fatalf("Explain returned error: %v", err)
	}
	if res.Method != "ollama" || res.Confidence != 95 {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(res.Alternatives) != 1 || res.Alternatives[0] != "अदालत बंद हैं" {
		t.Fatalf("alternatives = %v", res.Alternatives)
	}
}

func TestOllamaExplainerDisabled(t *testing.T) {
	o := NewOllamaExplainer(OllamaConfig{BaseURL: "http://localhost:11434", Model: "m"})
	if o.Available() {
		t.Fatal("disabled explainer reported available")
	}
	_, err := o.Explain(context.Background(), ports.ExplainRequest{Text: "x", SourceLang: "en", TargetLang: "hi"})
	if !errors.Is(err, entities.ErrProviderUnavailable) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", err)
	}
}

func TestHuggingFaceSummarizerWithoutKey(t *testing.T) {
	s := NewHuggingFaceSummarizer(HuggingFaceConfig{Model: "facebook/bart-large-cnn"})
	if _, err := s.Summarize(context.Background(), "text"); !errors.Is(err, entities.ErrProviderUnavailable) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", err)
	}
}

func TestHuggingFaceExplainer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/microsoft/DialoGPT-medium" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer hf-key" {
			t.Fatalf("authorization = %q", got)
		}
		_, _ = w.Write([]byte(`[{"generated_text":"वकील सलाह देता है"}]`))
	}))
	defer server.Close()

	h := NewHuggingFaceExplainer(HuggingFaceConfig{APIKey: "hf-key", BaseURL: server.URL, Model: "microsoft/DialoGPT-medium"})
	res, err := h.Explain(context.Background(), ports.ExplainRequest{Text: "lawyer advises", SourceLang: "en", TargetLang: "hi"})
	if err != nil {
		t.Fatalf("Explain returned error: %v", err)
	}
	if res.Method != "huggingface" || res.Confidence != 90 {
		t.Fatalf("unexpected result %+v", res)
	}
	for _, alt := range res.Alternatives {
		if alt == res.TranslatedText {
			t.Fatalf("alternative equal to text: %q", alt)
		}
	}
	if len(res.Alternatives) != 2 {
		t.Fatalf("alternatives = %v", res.Alternatives)
	}
}

func TestHuggingFaceExplainerModelLoading(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Model is currently loading","estimated_time":20}`))
	}))
	defer server.Close()

	h := NewHuggingFaceExplainer(HuggingFaceConfig{APIKey: "k", BaseURL: server.URL, Model: "m"})
	_, err := h.Explain(context.Background(), ports.ExplainRequest{Text: "x", SourceLang: "en", TargetLang: "hi"})
	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 status error, got %v", err)
	}
}

func TestHuggingFaceSummarizer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body inferenceRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if !strings.HasPrefix(body.Inputs, "Summarize the following document section") {
			t.Fatalf("unexpected inputs %q", body.Inputs)
		}
		if body.Parameters["do_sample"] != false {
			t.Fatalf("parameters = %v", body.Parameters)
		}
		_, _ = w.Write([]byte(`[{"summary_text":"  ## Purpose\n- notice  "}]`))
	}))
	defer server.Close()

	s := NewHuggingFaceSummarizer(HuggingFaceConfig{APIKey: "k", BaseURL: server.URL, Model: "facebook/bart-large-cnn"})
	got, err := s.Summarize(context.Background(), "section text")
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if got != "## Purpose\n- notice" {
		t.Fatalf("summary = %q", got)
	}
}

func TestManualExplainer(t *testing.T) {
	m := NewManualExplainer(stubTranslator{text: "वकील अदालत में है"})
	res, err := m.Explain(context.Background(), ports.ExplainRequest{Text: "The lawyer is in court", SourceLang: "en", TargetLang: "hi"})
	if err != nil {
		t.Fatalf("Explain returned error: %v", err)
	}
	if res.Method != "enhanced_manual" || res.Confidence != 88 {
		t.Fatalf("unexpected result %+v", res)
	}
	if !strings.Contains(res.TranslatedText, "वकील (Lawyer") || !strings.Contains(res.TranslatedText, "अदालत (Court") {
		t.Fatalf("glossary not applied: %q", res.TranslatedText)
	}
	if len(res.Alternatives) != 3 || !strings.HasPrefix(res.Alternatives[0], "सरल भाषा में: ") {
		t.Fatalf("alternatives = %v", res.Alternatives)
	}
}

func TestManualExplainerPropagatesTranslationFailure(t *testing.T) {
	m := NewManualExplainer(stubTranslator{err: errors.New("offline")})
	if _, err := m.Explain(context.Background(), ports.ExplainRequest{Text: "x", SourceLang: "en", TargetLang: "hi"}); err == nil {
		t.Fatal("expected error when base translation fails")
	}
}
