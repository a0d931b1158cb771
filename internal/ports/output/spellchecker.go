package output

import (
	"context"

	"nativebridge/internal/domain"

	"github.com/google/uuid"
)

// SpellCheckerService interface - Output port
// Defines what the application needs from the platform spell-check capability.
// Results are never returned directly: they arrive later through the
// SessionListener handed to NewSession, possibly on another goroutine.
type SpellCheckerService interface {
	// NewSession opens a session for the given locale.
	// Returns domain.ErrServiceUnavailable when the capability is absent.
	NewSession(ctx context.Context, locale string, listener SessionListener) (SpellCheckerSession, error)
}

// SpellCheckerSession interface - a live handle to the platform service
type SpellCheckerSession interface {
	// GetSuggestions asks for at most maxResults suggestions for text.
	// It must not block on the answer; the listener receives it.
	GetSuggestions(text domain.TextInfo, maxResults int) error

	// Locale returns the locale fixed at session creation
	Locale() string

	// Close releases the session
	Close() error
}

// SessionListener interface - receives platform callbacks.
// Each delivery carries the RequestID of the TextInfo that produced it.
type SessionListener interface {
	// OnGetSuggestions receives single-span or sentence-level results
	OnGetSuggestions(batch domain.SuggestionBatch)

	// OnError reports that the platform failed while producing results
	OnError(requestID uuid.UUID, err error)
}
