package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveProviderAttempt(t *testing.T) {
	m := New()

	m.ObserveProviderAttempt("huggingface", 10*time.Millisecond, errors.New("503"))
	m.ObserveProviderAttempt("manual", time.Millisecond, nil)
	m.ObserveProviderAttempt("manual", time.Millisecond, nil)

	if got := testutil.ToFloat64(m.ProviderAttempts.WithLabelValues("huggingface", "failure")); got != 1 {
		t.Fatalf("huggingface failures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ProviderAttempts.WithLabelValues("manual", "success")); got != 2 {
		t.Fatalf("manual successes = %v, want 2", got)
	}
}
