package input

import (
	"context"

	"nativebridge/internal/domain"
)

// PushTokenService interface - Input port (use case)
// Defines what the bridge can do with messaging tokens
type PushTokenService interface {
	SyncToken(ctx context.Context) (bool, error)
	OnNewToken(ctx context.Context, token string) error
	RegisterToken(ctx context.Context, userID, token string) error
	ListTokens(ctx context.Context, userID string) ([]domain.UserToken, error)
	SetCurrentUser(userID string)
}
