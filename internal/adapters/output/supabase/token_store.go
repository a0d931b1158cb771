package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nativebridge/configs"
	"nativebridge/internal/domain"
	"nativebridge/internal/ports/output"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// Compile-time check to ensure TokenStoreAdapter implements TokenStore interface
var _ output.TokenStore = (*TokenStoreAdapter)(nil)

const userTokensPath = "/rest/v1/user_tokens"

// TokenStoreAdapter struct - Output adapter for the REST token table
type TokenStoreAdapter struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewTokenStoreAdapter func - Creates new REST token store adapter
func NewTokenStoreAdapter(config configs.Push) (*TokenStoreAdapter, error) {
	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: push base URL is required", domain.ErrInvalidArgument)
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if config.Timeout <= 0 {
		timeout = 15 * time.Second
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:    10,
			IdleConnTimeout: 90 * time.Second,
		},
	}

	logrus.Infof("Token store adapter initialized with base URL: %s", baseURL)

	return &TokenStoreAdapter{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     config.APIKey,
	}, nil
}

// SaveToken upserts the binding with POST /rest/v1/user_tokens.
// The response code is logged; there is no retry.
func (a *TokenStoreAdapter) SaveToken(ctx context.Context, token domain.UserToken) error {
	bodyBytes, err := json.Marshal(userTokenAPI{
		UserID:    token.UserID,
		FCMToken:  token.FCMToken,
		UpdatedAt: token.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+userTokensPath+"?on_conflict=user_id,fcm_token", bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create token request: %w", err)
	}
	a.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal,resolution=merge-duplicates")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTokenStore, err)
	}
	defer resp.Body.Close()

	logrus.Infof("Token store response code: %d", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d - %s", domain.ErrTokenStore, resp.StatusCode, string(body))
	}
	return nil
}

// ListTokens selects the tokens bound to userID
func (a *TokenStoreAdapter) ListTokens(ctx context.Context, userID string) ([]domain.UserToken, error) {
	query := url.Values{}
	query.Set("select", "user_id,fcm_token,updated_at")
	query.Set("user_id", "eq."+userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+userTokensPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create token list request: %w", err)
	}
	a.setHeaders(req)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenStore, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token list response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d - %s", domain.ErrTokenStore, resp.StatusCode, string(body))
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: failed to parse token list response", domain.ErrTokenStore)
	}

	tokens := make([]domain.UserToken, 0)
	gjson.ParseBytes(body).ForEach(func(_, row gjson.Result) bool {
		token := domain.UserToken{
			UserID:   row.Get("user_id").String(),
			FCMToken: row.Get("fcm_token").String(),
		}
		if updated := row.Get("updated_at"); updated.Exists() && updated.Type != gjson.Null {
			if at, err := time.Parse(time.RFC3339Nano, updated.String()); err == nil {
				token.UpdatedAt = &at
			}
		}
		tokens = append(tokens, token)
		return true
	})
	return tokens, nil
}

func (a *TokenStoreAdapter) setHeaders(req *http.Request) {
	if a.apiKey == "" {
		return
	}
	req.Header.Set("apikey", a.apiKey)
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
}

// userTokenAPI represents the row body sent to the REST table
type userTokenAPI struct {
	UserID    string     `json:"user_id"`
	FCMToken  string     `json:"fcm_token"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
