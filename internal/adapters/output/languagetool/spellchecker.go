package languagetool

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"nativebridge/configs"
	"nativebridge/internal/domain"
	"nativebridge/internal/ports/output"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// Compile-time check to ensure SpellCheckerAdapter implements SpellCheckerService interface
var _ output.SpellCheckerService = (*SpellCheckerAdapter)(nil)

// issueTypeMisspelling marks LanguageTool matches produced by the speller
const issueTypeMisspelling = "misspelling"

// SpellCheckerAdapter struct - Output adapter for a LanguageTool-compatible
// HTTP server standing in for the platform spell-check service
type SpellCheckerAdapter struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
}

// NewSpellCheckerAdapter func - Creates new LanguageTool adapter.
// An empty base URL yields an adapter whose sessions are always unavailable.
func NewSpellCheckerAdapter(config configs.SpellCheck) *SpellCheckerAdapter {
	baseURL := strings.TrimSuffix(config.BaseURL, "/")

	timeout := time.Duration(config.RequestTimeout) * time.Second
	if config.RequestTimeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	logrus.Infof("LanguageTool adapter initialized with base URL: %q, timeout: %v", baseURL, timeout)

	return &SpellCheckerAdapter{
		httpClient: httpClient,
		baseURL:    baseURL,
		timeout:    timeout,
	}
}

// NewSession probes the server for a language matching locale and opens a session
func (a *SpellCheckerAdapter) NewSession(ctx context.Context, locale string, listener output.SessionListener) (output.SpellCheckerSession, error) {
	if a.baseURL == "" {
		return nil, fmt.Errorf("%w: no spell checker base URL configured", domain.ErrServiceUnavailable)
	}
	if listener == nil {
		return nil, fmt.Errorf("%w: listener is required", domain.ErrInvalidArgument)
	}

	languages, err := a.listLanguages(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}

	language, ok := matchLanguage(languages, locale)
	if !ok {
		return nil, fmt.Errorf("%w: locale %s not supported", domain.ErrServiceUnavailable, locale)
	}

	sessionCtx, cancel := context.WithCancel(context.Background())
	return &session{
		adapter:  a,
		language: language,
		listener: listener,
		ctx:      sessionCtx,
		cancel:   cancel,
	}, nil
}

// listLanguages queries /v2/languages and returns the long codes (e.g. pt-BR)
func (a *SpellCheckerAdapter) listLanguages(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/v2/languages", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create languages request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read languages response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("languages request failed: status %d - %s", resp.StatusCode, string(body))
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("failed to parse languages response")
	}

	languages := make([]string, 0)
	for _, code := range gjson.GetBytes(body, "#.longCode").Array() {
		languages = append(languages, code.String())
	}
	return languages, nil
}

// matchLanguage prefers an exact code, then the first language sharing the
// primary subtag
func matchLanguage(languages []string, locale string) (string, bool) {
	primary := strings.SplitN(locale, "-", 2)[0]
	var fallback string
	for _, language := range languages {
		if strings.EqualFold(language, locale) {
			return language, true
		}
		if fallback == "" && strings.EqualFold(strings.SplitN(language, "-", 2)[0], primary) {
			fallback = language
		}
	}
	return fallback, fallback != ""
}

// check posts text to /v2/check and returns the raw JSON body
func (a *SpellCheckerAdapter) check(ctx context.Context, language, text string) ([]byte, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("language", language)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v2/check", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create check request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send check request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read check response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("check request failed: status %d - %s", resp.StatusCode, string(body))
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("failed to parse check response")
	}
	return body, nil
}

// session struct - one live language binding; results are delivered to the
// listener from a goroutine per request
type session struct {
	adapter  *SpellCheckerAdapter
	language string
	listener output.SessionListener

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

// Locale returns the LanguageTool language code bound at creation
func (s *session) Locale() string {
	return s.language
}

// GetSuggestions starts the check and returns immediately
func (s *session) GetSuggestions(text domain.TextInfo, maxResults int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrSessionClosed
	}

	s.wg.Add(1)
	go s.deliver(text, maxResults)
	return nil
}

func (s *session) deliver(text domain.TextInfo, maxResults int) {
	defer s.wg.Done()

	body, err := s.adapter.check(s.ctx, s.language, text.Text)
	if err != nil {
		if s.ctx.Err() != nil {
			return
		}
		s.listener.OnError(text.RequestID, err)
		return
	}

	if strings.ContainsAny(strings.TrimSpace(text.Text), " \t\n") {
		s.listener.OnGetSuggestions(domain.NewSentenceBatch(text.RequestID, parseSentences(text, body, maxResults)))
		return
	}
	s.listener.OnGetSuggestions(domain.NewSingleBatch(text.RequestID, parseSpans(text, gjson.GetBytes(body, "matches"), maxResults)))
}

// Close cancels in-flight checks and waits for their goroutines
func (s *session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	return nil
}

// parseSpans turns misspelling matches into one SuggestionsInfo each,
// keeping LanguageTool's replacement order as rank order
func parseSpans(text domain.TextInfo, matches gjson.Result, maxResults int) []*domain.SuggestionsInfo {
	spans := make([]*domain.SuggestionsInfo, 0)
	matches.ForEach(func(_, match gjson.Result) bool {
		if issue := match.Get("rule.issueType"); issue.Exists() && issue.String() != issueTypeMisspelling {
			return true
		}
		info := &domain.SuggestionsInfo{RequestID: text.RequestID, Suggestions: make([]string, 0)}
		match.Get("replacements").ForEach(func(_, replacement gjson.Result) bool {
			if maxResults > 0 && len(info.Suggestions) >= maxResults {
				return false
			}
			if value := replacement.Get("value").String(); value != "" {
				info.Suggestions = append(info.Suggestions, value)
			}
			return true
		})
		spans = append(spans, info)
		return true
	})
	return spans
}

// parseSentences groups spans by the sentence LanguageTool reports for them,
// in order of first appearance
func parseSentences(text domain.TextInfo, body []byte, maxResults int) []*domain.SentenceSuggestionsInfo {
	sentences := make([]*domain.SentenceSuggestionsInfo, 0)
	index := make(map[string]*domain.SentenceSuggestionsInfo)

	gjson.GetBytes(body, "matches").ForEach(func(_, match gjson.Result) bool {
		key := match.Get("sentence").String()
		group, ok := index[key]
		if !ok {
			group = &domain.SentenceSuggestionsInfo{RequestID: text.RequestID}
			index[key] = group
			sentences = append(sentences, group)
		}
		group.Spans = append(group.Spans, parseSpans(text, gjson.Parse("["+match.Raw+"]"), maxResults)...)
		return true
	})
	return sentences
}
