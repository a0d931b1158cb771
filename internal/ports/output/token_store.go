package output

import (
	"context"

	"nativebridge/internal/domain"
)

// TokenStore interface - Output port
// Defines where messaging tokens are uploaded so notifications can reach a user.
type TokenStore interface {
	// SaveToken adds or refreshes the token binding (upsert)
	SaveToken(ctx context.Context, token domain.UserToken) error

	// ListTokens returns every token registered for the user
	ListTokens(ctx context.Context, userID string) ([]domain.UserToken, error)
}

// TokenSource interface - Output port for the current messaging token
type TokenSource interface {
	// GetToken returns the current token or domain.ErrTokenUnavailable
	GetToken(ctx context.Context) (string, error)

	// SetToken records a token issued by the messaging platform
	SetToken(ctx context.Context, token string) error
}

// UserResolver interface - Output port resolving the authenticated user
type UserResolver interface {
	// CurrentUserID returns the user identifier and whether one is known
	CurrentUserID(ctx context.Context) (string, bool)

	// SetCurrentUserID binds the authenticated user; an empty id clears it
	SetCurrentUserID(userID string)
}
