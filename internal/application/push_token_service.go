package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"nativebridge/internal/domain"
	"nativebridge/internal/ports/input"
	"nativebridge/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure PushTokenSynchronizer implements PushTokenService interface
var _ input.PushTokenService = (*PushTokenSynchronizer)(nil)

// uploadTimeout bounds a fire-and-forget upload
const uploadTimeout = 30 * time.Second

// PushTokenSynchronizer struct - Application service keeping the remote token
// store in step with the messaging token of the current user
type PushTokenSynchronizer struct {
	source   output.TokenSource
	store    output.TokenStore
	resolver output.UserResolver

	mu      sync.Mutex
	closed  bool
	uploads sync.WaitGroup
}

// NewPushTokenSynchronizer func - Creates new push token service
func NewPushTokenSynchronizer(source output.TokenSource, store output.TokenStore, resolver output.UserResolver) *PushTokenSynchronizer {
	return &PushTokenSynchronizer{
		source:   source,
		store:    store,
		resolver: resolver,
	}
}

// SyncToken func - Use case: upload the current token for the current user.
// Returns false without error when no user is resolvable.
func (s *PushTokenSynchronizer) SyncToken(ctx context.Context) (bool, error) {
	token, err := s.source.GetToken(ctx)
	if err != nil {
		logrus.Warnf("Fetching messaging token failed: %v", err)
		return false, err
	}

	userID, ok := s.resolver.CurrentUserID(ctx)
	if !ok {
		logrus.Debug("No current user, skipping token sync")
		return false, nil
	}

	if err := s.upload(ctx, userID, token); err != nil {
		return false, err
	}
	return true, nil
}

// OnNewToken func - Use case: the messaging platform issued a new token.
// The upload runs in the background and is never retried.
func (s *PushTokenSynchronizer) OnNewToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: token is required", domain.ErrInvalidArgument)
	}

	if err := s.source.SetToken(ctx, token); err != nil {
		logrus.Errorf("Failed to persist messaging token: %v", err)
	}

	userID, ok := s.resolver.CurrentUserID(ctx)
	if !ok {
		// TODO: bind token refreshes to a user once the login flow reports the
		// authenticated user to the bridge before the first refresh.
		logrus.Debug("Token refreshed with no current user, upload dropped")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		logrus.Warn("Token refreshed after shutdown, upload dropped")
		return domain.ErrPushClosed
	}

	s.uploads.Add(1)
	go func() {
		defer s.uploads.Done()
		uploadCtx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
		defer cancel()
		if err := s.upload(uploadCtx, userID, token); err != nil {
			logrus.Errorf("Error saving refreshed token: %v", err)
		}
	}()
	return nil
}

// RegisterToken func - Use case: the web layer reports user and token together
func (s *PushTokenSynchronizer) RegisterToken(ctx context.Context, userID, token string) error {
	userID = strings.TrimSpace(userID)
	token = strings.TrimSpace(token)
	if userID == "" || token == "" {
		return fmt.Errorf("%w: user_id and token are required", domain.ErrInvalidArgument)
	}

	s.resolver.SetCurrentUserID(userID)
	if err := s.source.SetToken(ctx, token); err != nil {
		logrus.Errorf("Failed to persist messaging token: %v", err)
	}
	return s.upload(ctx, userID, token)
}

// ListTokens func - Use case: tokens registered for a user
func (s *PushTokenSynchronizer) ListTokens(ctx context.Context, userID string) ([]domain.UserToken, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrInvalidArgument)
	}
	return s.store.ListTokens(ctx, userID)
}

// SetCurrentUser func - binds or clears the authenticated user
func (s *PushTokenSynchronizer) SetCurrentUser(userID string) {
	s.resolver.SetCurrentUserID(strings.TrimSpace(userID))
}

// Close stops accepting background uploads and waits for the running ones
func (s *PushTokenSynchronizer) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.uploads.Wait()
}

func (s *PushTokenSynchronizer) upload(ctx context.Context, userID, token string) error {
	err := s.store.SaveToken(ctx, domain.NewUserToken(userID, token))
	if err != nil {
		if !errors.Is(err, domain.ErrTokenStore) {
			err = fmt.Errorf("%w: %v", domain.ErrTokenStore, err)
		}
		logrus.WithField("user_id", userID).Errorf("Error saving token: %v", err)
		return err
	}
	logrus.WithField("user_id", userID).Info("Messaging token saved")
	return nil
}
