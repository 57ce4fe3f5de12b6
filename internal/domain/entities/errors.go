package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	ErrContactNotFound     = errors.New("contact not found")
	ErrTaskNotFound        = errors.New("task not found")
	ErrEventNotFound       = errors.New("event not found")
	ErrPdfNotFound         = errors.New("pdf not found")
	ErrContactExists       = errors.New("Contact already exists")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidEventWindow  = errors.New("event end must not be before start")
	ErrTranslationFailed   = errors.New("translation failed")
	ErrProviderUnavailable = errors.New("provider not available")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrCacheMiss           = errors.New("cache miss")
)

// IsNotFound reports whether err is any of the record not-found errors
func IsNotFound(err error) bool {
	return errors.Is(err, ErrContactNotFound) ||
		errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, ErrPdfNotFound)
}

// ProviderError records one failed attempt against an external provider
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// PipelineError is returned when every provider in a fallback chain failed
type PipelineError struct {
	Attempts   []*ProviderError
	Suggestion string
}

func (e *PipelineError) Error() string {
	if len(e.Attempts) == 0 {
		return "no provider available"
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.Error())
	}
	return strings.Join(parts, "; ")
}

func (e *PipelineError) Unwrap() error {
	return ErrTranslationFailed
}
