package input

import (
	"context"

	"nativebridge/internal/domain"
)

// SuggestionService interface - Input port (use case)
// Defines what the bridge can ask of the spell-check session manager
type SuggestionService interface {
	// GetSuggestions resolves exactly once: with suggestions, with a degraded
	// unavailable result, or with an error
	GetSuggestions(ctx context.Context, request domain.SuggestionRequest) (*domain.SuggestionResult, error)

	// CheckAvailability reports whether a session is active
	CheckAvailability() domain.Availability
}
