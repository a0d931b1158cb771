package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"nativebridge/internal/domain"
	"nativebridge/internal/ports/output"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockSpellCheckerService implements output.SpellCheckerService for testing
type MockSpellCheckerService struct {
	NewSessionFunc func(ctx context.Context, locale string, listener output.SessionListener) (output.SpellCheckerSession, error)

	// Captured values for assertions
	LastLocale   string
	LastListener output.SessionListener
}

func (m *MockSpellCheckerService) NewSession(ctx context.Context, locale string, listener output.SessionListener) (output.SpellCheckerSession, error) {
	m.LastLocale = locale
	m.LastListener = listener
	if m.NewSessionFunc != nil {
		return m.NewSessionFunc(ctx, locale, listener)
	}
	return nil, domain.ErrServiceUnavailable
}

// MockSpellCheckerSession implements output.SpellCheckerSession for testing.
// Every issued request is published on Issued.
type MockSpellCheckerSession struct {
	GetSuggestionsFunc func(text domain.TextInfo, maxResults int) error

	Issued chan domain.TextInfo

	mu     sync.Mutex
	closed bool
}

func newMockSession() *MockSpellCheckerSession {
	return &MockSpellCheckerSession{Issued: make(chan domain.TextInfo, 16)}
}

func (m *MockSpellCheckerSession) GetSuggestions(text domain.TextInfo, maxResults int) error {
	m.Issued <- text
	if m.GetSuggestionsFunc != nil {
		return m.GetSuggestionsFunc(text, maxResults)
	}
	return nil
}

func (m *MockSpellCheckerSession) Locale() string {
	return "en-US"
}

func (m *MockSpellCheckerSession) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MockSpellCheckerSession) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// newTestManager opens a manager over session and returns the listener the
// manager registered
func newTestManager(t *testing.T, session *MockSpellCheckerSession, config SuggestionManagerConfig) (*SuggestionManager, output.SessionListener) {
	t.Helper()
	service := &MockSpellCheckerService{
		NewSessionFunc: func(ctx context.Context, locale string, listener output.SessionListener) (output.SpellCheckerSession, error) {
			return session, nil
		},
	}
	if config.Locale == "" {
		config.Locale = "en-US"
	}
	manager := NewSuggestionManager(service, config)
	manager.Initialize(context.Background())
	t.Cleanup(func() { manager.Close() })
	require.NotNil(t, service.LastListener)
	return manager, service.LastListener
}

type callResult struct {
	result *domain.SuggestionResult
	err    error
}

func callAsync(m *SuggestionManager, ctx context.Context, text string, maxResults int) <-chan callResult {
	out := make(chan callResult, 1)
	go func() {
		result, err := m.GetSuggestions(ctx, domain.SuggestionRequest{Text: text, MaxResults: maxResults})
		out <- callResult{result: result, err: err}
	}()
	return out
}

func waitIssued(t *testing.T, session *MockSpellCheckerSession) domain.TextInfo {
	t.Helper()
	select {
	case text := <-session.Issued:
		return text
	case <-time.After(2 * time.Second):
		t.Fatal("request was never issued to the session")
		return domain.TextInfo{}
	}
}

func waitResult(t *testing.T, out <-chan callResult) callResult {
	t.Helper()
	select {
	case r := <-out:
		return r
	case <-time.After(3 * time.Second):
		t.Fatal("caller never received an answer")
		return callResult{}
	}
}

func TestGetSuggestionsResolvesOnCallback(t *testing.T) {
	session := newMockSession()
	var listener output.SessionListener
	session.GetSuggestionsFunc = func(text domain.TextInfo, maxResults int) error {
		assert.Equal(t, domain.DefaultMaxSuggestions, maxResults)
		go listener.OnGetSuggestions(domain.NewSingleBatch(text.RequestID, []*domain.SuggestionsInfo{
			{RequestID: text.RequestID, Suggestions: []string{"hello", "help", "held"}},
		}))
		return nil
	}
	manager, l := newTestManager(t, session, SuggestionManagerConfig{Timeout: 2 * time.Second})
	listener = l

	result, err := manager.GetSuggestions(context.Background(), domain.SuggestionRequest{Text: "helo"})

	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.Equal(t, []string{"hello", "help", "held"}, result.Suggestions)
	assert.Empty(t, result.Error)
	assert.True(t, manager.CheckAvailability().Available)
}

func TestGetSuggestionsSentenceCallback(t *testing.T) {
	session := newMockSession()
	var listener output.SessionListener
	session.GetSuggestionsFunc = func(text domain.TextInfo, maxResults int) error {
		go listener.OnGetSuggestions(domain.NewSentenceBatch(text.RequestID, []*domain.SentenceSuggestionsInfo{
			{RequestID: text.RequestID, Spans: []*domain.SuggestionsInfo{
				{Suggestions: []string{"the"}},
				{Suggestions: []string{"quick", "quack"}},
			}},
		}))
		return nil
	}
	manager, l := newTestManager(t, session, SuggestionManagerConfig{Timeout: 2 * time.Second})
	listener = l

	result, err := manager.GetSuggestions(context.Background(), domain.SuggestionRequest{Text: "teh quik"})

	require.NoError(t, err)
	assert.Equal(t, []string{"the", "quick", "quack"}, result.Suggestions)
}

func TestGetSuggestionsCapsAtMaxResults(t *testing.T) {
	session := newMockSession()
	var listener output.SessionListener
	session.GetSuggestionsFunc = func(text domain.TextInfo, maxResults int) error {
		go listener.OnGetSuggestions(domain.NewSingleBatch(text.RequestID, []*domain.SuggestionsInfo{
			{Suggestions: []string{"a", "b"}},
			{Suggestions: []string{"c", "d", "e", "f"}},
		}))
		return nil
	}
	manager, l := newTestManager(t, session, SuggestionManagerConfig{Timeout: 2 * time.Second})
	listener = l

	result, err := manager.GetSuggestions(context.Background(), domain.SuggestionRequest{Text: "abc", MaxResults: 3})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, result.Suggestions)
}

func TestGetSuggestionsTimeoutResolvesEmpty(t *testing.T) {
	session := newMockSession()
	manager, _ := newTestManager(t, session, SuggestionManagerConfig{Timeout: 50 * time.Millisecond})

	start := time.Now()
	result, err := manager.GetSuggestions(context.Background(), domain.SuggestionRequest{Text: "xyzzy"})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	assert.True(t, result.Available)
	assert.NotNil(t, result.Suggestions)
	assert.Empty(t, result.Suggestions)
}

func TestGetSuggestionsEmptyCallbackResolvesEmpty(t *testing.T) {
	session := newMockSession()
	var listener output.SessionListener
	session.GetSuggestionsFunc = func(text domain.TextInfo, maxResults int) error {
		go listener.OnGetSuggestions(domain.NewSingleBatch(text.RequestID, nil))
		return nil
	}
	manager, l := newTestManager(t, session, SuggestionManagerConfig{Timeout: 5 * time.Second})
	listener = l

	start := time.Now()
	result, err := manager.GetSuggestions(context.Background(), domain.SuggestionRequest{Text: "fine"})

	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.True(t, result.Available)
	assert.Empty(t, result.Suggestions)
}

func TestGetSuggestionsWithoutSession(t *testing.T) {
	tests := []struct {
		name    string
		service output.SpellCheckerService
	}{
		{name: "no service", service: nil},
		{name: "service unavailable", service: &MockSpellCheckerService{}},
		{name: "init error", service: &MockSpellCheckerService{
			NewSessionFunc: func(ctx context.Context, locale string, listener output.SessionListener) (output.SpellCheckerSession, error) {
				return nil, errors.New("boom")
			},
		}},
		{name: "init panic", service: &MockSpellCheckerService{
			NewSessionFunc: func(ctx context.Context, locale string, listener output.SessionListener) (output.SpellCheckerSession, error) {
				panic("platform exploded")
			},
		}},
		{name: "nil session", service: &MockSpellCheckerService{
			NewSessionFunc: func(ctx context.Context, locale string, listener output.SessionListener) (output.SpellCheckerSession, error) {
				return nil, nil
			},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := NewSuggestionManager(tt.service, SuggestionManagerConfig{Locale: "en-US"})
			manager.Initialize(context.Background())
			defer manager.Close()

			assert.False(t, manager.CheckAvailability().Available)

			result, err := manager.GetSuggestions(context.Background(), domain.SuggestionRequest{Text: "helo"})
			require.NoError(t, err)
			assert.False(t, result.Available)
			assert.Empty(t, result.Suggestions)
			assert.Equal(t, domain.MessageServiceUnavailable, result.Error)
		})
	}
}

func TestGetSuggestionsEmptyTextRejected(t *testing.T) {
	withSession, _ := newTestManager(t, newMockSession(), SuggestionManagerConfig{})
	withoutSession := NewSuggestionManager(nil, SuggestionManagerConfig{Locale: "en-US"})
	withoutSession.Initialize(context.Background())

	for _, manager := range []*SuggestionManager{withSession, withoutSession} {
		result, err := manager.GetSuggestions(context.Background(), domain.SuggestionRequest{Text: ""})
		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	}
}

func TestInitializePassesLocale(t *testing.T) {
	service := &MockSpellCheckerService{}
	manager := NewSuggestionManager(service, SuggestionManagerConfig{Locale: "pt-BR"})
	manager.Initialize(context.Background())
	manager.Initialize(context.Background())
	defer manager.Close()

	assert.Equal(t, "pt-BR", service.LastLocale)
}

// TestLateCallbackIsDropped checks a callback for a timed-out request cannot
// leak into the next one
func TestLateCallbackIsDropped(t *testing.T) {
	session := newMockSession()
	manager, listener := newTestManager(t, session, SuggestionManagerConfig{Timeout: 50 * time.Millisecond})

	first := callAsync(manager, context.Background(), "first", 0)
	firstText := waitIssued(t, session)
	r := waitResult(t, first)
	require.NoError(t, r.err)
	assert.Empty(t, r.result.Suggestions)

	second := callAsync(manager, context.Background(), "second", 0)
	secondText := waitIssued(t, session)
	assert.Equal(t, "second", secondText.Text)
	assert.NotEqual(t, firstText.RequestID, secondText.RequestID)

	listener.OnGetSuggestions(domain.NewSingleBatch(firstText.RequestID, []*domain.SuggestionsInfo{
		{Suggestions: []string{"stale"}},
	}))
	listener.OnGetSuggestions(domain.NewSingleBatch(secondText.RequestID, []*domain.SuggestionsInfo{
		{Suggestions: []string{"fresh"}},
	}))
	// A duplicate delivery after resolution is a no-op.
	listener.OnGetSuggestions(domain.NewSingleBatch(secondText.RequestID, []*domain.SuggestionsInfo{
		{Suggestions: []string{"duplicate"}},
	}))

	r = waitResult(t, second)
	require.NoError(t, r.err)
	assert.Equal(t, []string{"fresh"}, r.result.Suggestions)
}

func TestConcurrentCallsAreServedInOrder(t *testing.T) {
	session := newMockSession()
	manager, listener := newTestManager(t, session, SuggestionManagerConfig{Timeout: 2 * time.Second})

	a := callAsync(manager, context.Background(), "a", 0)
	textA := waitIssued(t, session)

	b := callAsync(manager, context.Background(), "b", 0)
	require.Eventually(t, func() bool { return len(manager.queue) == 1 }, time.Second, 5*time.Millisecond)
	c := callAsync(manager, context.Background(), "c", 0)
	require.Eventually(t, func() bool { return len(manager.queue) == 2 }, time.Second, 5*time.Millisecond)

	respond := func(text domain.TextInfo) {
		listener.OnGetSuggestions(domain.NewSingleBatch(text.RequestID, []*domain.SuggestionsInfo{
			{Suggestions: []string{text.Text + "!"}},
		}))
	}

	assert.Equal(t, "a", textA.Text)
	respond(textA)
	textB := waitIssued(t, session)
	assert.Equal(t, "b", textB.Text)
	respond(textB)
	textC := waitIssued(t, session)
	assert.Equal(t, "c", textC.Text)
	respond(textC)

	for want, out := range map[string]<-chan callResult{"a!": a, "b!": b, "c!": c} {
		r := waitResult(t, out)
		require.NoError(t, r.err)
		assert.Equal(t, []string{want}, r.result.Suggestions)
	}
}

func TestIssueFailureRejectsAndFreesSlot(t *testing.T) {
	session := newMockSession()
	var listener output.SessionListener
	calls := 0
	session.GetSuggestionsFunc = func(text domain.TextInfo, maxResults int) error {
		calls++
		switch calls {
		case 1:
			return errors.New("binder died")
		case 2:
			panic("binder exploded")
		}
		go listener.OnGetSuggestions(domain.NewSingleBatch(text.RequestID, []*domain.SuggestionsInfo{
			{Suggestions: []string{"ok"}},
		}))
		return nil
	}
	manager, l := newTestManager(t, session, SuggestionManagerConfig{Timeout: 2 * time.Second})
	listener = l

	_, err := manager.GetSuggestions(context.Background(), domain.SuggestionRequest{Text: "one"})
	assert.ErrorIs(t, err, domain.ErrPlatformFailure)
	assert.Contains(t, err.Error(), "error getting suggestions")

	_, err = manager.GetSuggestions(context.Background(), domain.SuggestionRequest{Text: "two"})
	assert.ErrorIs(t, err, domain.ErrPlatformFailure)

	result, err := manager.GetSuggestions(context.Background(), domain.SuggestionRequest{Text: "three"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, result.Suggestions)
}

func TestListenerErrorRejects(t *testing.T) {
	session := newMockSession()
	var listener output.SessionListener
	session.GetSuggestionsFunc = func(text domain.TextInfo, maxResults int) error {
		go listener.OnError(text.RequestID, errors.New("connection reset"))
		return nil
	}
	manager, l := newTestManager(t, session, SuggestionManagerConfig{Timeout: 2 * time.Second})
	listener = l

	_, err := manager.GetSuggestions(context.Background(), domain.SuggestionRequest{Text: "helo"})

	assert.ErrorIs(t, err, domain.ErrPlatformFailure)
	assert.Contains(t, err.Error(), "error processing suggestions")
}

func TestListenerErrorForOtherRequestIgnored(t *testing.T) {
	session := newMockSession()
	var listener output.SessionListener
	session.GetSuggestionsFunc = func(text domain.TextInfo, maxResults int) error {
		go func() {
			listener.OnError(uuid.New(), errors.New("not yours"))
			listener.OnGetSuggestions(domain.NewSingleBatch(text.RequestID, []*domain.SuggestionsInfo{
				{Suggestions: []string{"mine"}},
			}))
		}()
		return nil
	}
	manager, l := newTestManager(t, session, SuggestionManagerConfig{Timeout: 2 * time.Second})
	listener = l

	result, err := manager.GetSuggestions(context.Background(), domain.SuggestionRequest{Text: "helo"})

	require.NoError(t, err)
	assert.Equal(t, []string{"mine"}, result.Suggestions)
}

func TestCallerCancellation(t *testing.T) {
	session := newMockSession()
	manager, listener := newTestManager(t, session, SuggestionManagerConfig{Timeout: 5 * time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	gone := callAsync(manager, ctx, "gone", 0)
	waitIssued(t, session)
	cancel()
	assert.ErrorIs(t, waitResult(t, gone).err, context.Canceled)

	// The abandoned request must not hold the slot for the full timeout.
	next := callAsync(manager, context.Background(), "next", 0)
	text := waitIssued(t, session)
	listener.OnGetSuggestions(domain.NewSingleBatch(text.RequestID, []*domain.SuggestionsInfo{
		{Suggestions: []string{"next!"}},
	}))
	r := waitResult(t, next)
	require.NoError(t, r.err)
	assert.Equal(t, []string{"next!"}, r.result.Suggestions)
}

func TestQueueFull(t *testing.T) {
	session := newMockSession()
	manager, _ := newTestManager(t, session, SuggestionManagerConfig{Timeout: 5 * time.Second, QueueSize: 1})

	callAsync(manager, context.Background(), "in flight", 0)
	waitIssued(t, session)
	callAsync(manager, context.Background(), "queued", 0)
	require.Eventually(t, func() bool { return len(manager.queue) == 1 }, time.Second, 5*time.Millisecond)

	_, err := manager.GetSuggestions(context.Background(), domain.SuggestionRequest{Text: "overflow"})
	assert.ErrorIs(t, err, domain.ErrQueueFull)
}

func TestCloseRejectsWaitingCallers(t *testing.T) {
	session := newMockSession()
	manager, _ := newTestManager(t, session, SuggestionManagerConfig{Timeout: 5 * time.Second})

	inFlight := callAsync(manager, context.Background(), "in flight", 0)
	waitIssued(t, session)
	queued := callAsync(manager, context.Background(), "queued", 0)
	require.Eventually(t, func() bool { return len(manager.queue) == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, manager.Close())

	assert.ErrorIs(t, waitResult(t, inFlight).err, domain.ErrSessionClosed)
	assert.ErrorIs(t, waitResult(t, queued).err, domain.ErrSessionClosed)
	assert.True(t, session.isClosed())
	assert.False(t, manager.CheckAvailability().Available)

	_, err := manager.GetSuggestions(context.Background(), domain.SuggestionRequest{Text: "after"})
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
	assert.NoError(t, manager.Close())
}

// TestQueuedCallersKeepTheTimeoutBound checks callers waiting behind an
// unresponsive request still answer within timeout plus a small margin
func TestQueuedCallersKeepTheTimeoutBound(t *testing.T) {
	session := newMockSession()
	timeout := 100 * time.Millisecond
	manager, _ := newTestManager(t, session, SuggestionManagerConfig{Timeout: timeout})

	start := time.Now()
	outs := make([]<-chan callResult, 0, 4)
	for i := 0; i < 4; i++ {
		outs = append(outs, callAsync(manager, context.Background(), "test", 0))
	}

	for _, out := range outs {
		r := waitResult(t, out)
		require.NoError(t, r.err)
		assert.True(t, r.result.Available)
		assert.Empty(t, r.result.Suggestions)
	}
	assert.Less(t, time.Since(start), timeout+150*time.Millisecond)
}

func TestPendingRequestResolvesOnce(t *testing.T) {
	p := newPendingRequest("text", 5, time.Now().Add(time.Second))

	assert.True(t, p.resolve(&domain.SuggestionResult{Suggestions: []string{"first"}}, nil))
	assert.False(t, p.resolve(nil, fmt.Errorf("second")))
	assert.True(t, p.settled())

	out := <-p.result
	require.NoError(t, out.err)
	assert.Equal(t, []string{"first"}, out.result.Suggestions)
}
