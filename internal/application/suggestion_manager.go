package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"nativebridge/internal/domain"
	"nativebridge/internal/ports/input"
	"nativebridge/internal/ports/output"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure SuggestionManager implements SuggestionService interface
var _ input.SuggestionService = (*SuggestionManager)(nil)

// Default session manager settings
const (
	DefaultSuggestionTimeout = 2000 * time.Millisecond
	DefaultQueueSize         = 16
)

// SuggestionManagerConfig struct - settings for the spell-check session manager
type SuggestionManagerConfig struct {
	Locale     string
	Timeout    time.Duration
	MaxResults int
	QueueSize  int
}

// SuggestionManager struct - Application service owning the single platform
// spell-check session. Requests are served one at a time in FIFO order by a
// worker goroutine; each one resolves on the first matching callback or when
// its deadline passes, whichever comes first. The deadline is fixed when the
// request is queued.
type SuggestionManager struct {
	service    output.SpellCheckerService
	locale     string
	timeout    time.Duration
	maxResults int

	mu      sync.Mutex
	session output.SpellCheckerSession
	pending *pendingRequest
	started bool
	closed  bool

	queue     chan *pendingRequest
	quit      chan struct{}
	done      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

// NewSuggestionManager func - Creates a manager; call Initialize before use
func NewSuggestionManager(service output.SpellCheckerService, config SuggestionManagerConfig) *SuggestionManager {
	if config.Locale == "" {
		config.Locale = domain.DefaultLocale()
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultSuggestionTimeout
	}
	if config.MaxResults <= 0 {
		config.MaxResults = domain.DefaultMaxSuggestions
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultQueueSize
	}

	return &SuggestionManager{
		service:    service,
		locale:     config.Locale,
		timeout:    config.Timeout,
		maxResults: config.MaxResults,
		queue:      make(chan *pendingRequest, config.QueueSize),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Initialize opens the platform session once. Failure leaves the manager in
// degraded mode for its whole lifetime.
func (m *SuggestionManager) Initialize(ctx context.Context) {
	m.startOnce.Do(func() {
		session := m.openSession(ctx)

		m.mu.Lock()
		defer m.mu.Unlock()
		if m.closed {
			if session != nil {
				_ = session.Close()
			}
			return
		}
		m.session = session
		if session != nil {
			m.started = true
			go m.run()
		}
	})
}

func (m *SuggestionManager) openSession(ctx context.Context) (session output.SpellCheckerSession) {
	if m.service == nil {
		logrus.Error("Spell checker service not available")
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("Error initializing spell checker session: %v", r)
			session = nil
		}
	}()

	s, err := m.service.NewSession(ctx, m.locale, &sessionListener{manager: m})
	if err != nil {
		if errors.Is(err, domain.ErrServiceUnavailable) {
			logrus.Warnf("Spell checker service not available: %v", err)
		} else {
			logrus.Errorf("Error initializing spell checker session: %v", err)
		}
		return nil
	}
	if s == nil {
		logrus.Error("Spell checker service returned no session")
		return nil
	}

	logrus.Infof("Spell checker session initialized for locale %s", s.Locale())
	return s
}

// CheckAvailability func - Use case: report whether a session is active
func (m *SuggestionManager) CheckAvailability() domain.Availability {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.Availability{Available: m.session != nil && !m.closed}
}

// GetSuggestions func - Use case: fetch suggestions for text.
// Timeout and missing session are successful results, not errors.
func (m *SuggestionManager) GetSuggestions(ctx context.Context, request domain.SuggestionRequest) (*domain.SuggestionResult, error) {
	if request.Text == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrInvalidArgument)
	}

	maxResults := request.MaxResults
	if maxResults <= 0 {
		maxResults = m.maxResults
	}

	p := newPendingRequest(request.Text, maxResults, time.Now().Add(m.timeout))
	log := logrus.WithField("request_id", p.id)

	if err := m.enqueue(p); err != nil {
		if errors.Is(err, domain.ErrServiceUnavailable) {
			log.Debug("No spell checker session, returning unavailable result")
			return domain.UnavailableResult(), nil
		}
		log.Warnf("Suggestion request not queued: %v", err)
		return nil, err
	}

	timer := time.NewTimer(time.Until(p.deadline))
	defer timer.Stop()

	select {
	case out := <-p.result:
		return out.result, out.err
	case <-timer.C:
		log.Warn("Timeout waiting for spell checker suggestions")
		m.resolveWithCurrentSuggestions(p)
		out := <-p.result
		return out.result, out.err
	case <-ctx.Done():
		// Settling here lets the worker skip or release the request.
		p.resolve(nil, ctx.Err())
		log.Debugf("Caller gave up waiting for suggestions: %v", ctx.Err())
		return nil, ctx.Err()
	}
}

func (m *SuggestionManager) enqueue(p *pendingRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return domain.ErrSessionClosed
	}
	if m.session == nil {
		return domain.ErrServiceUnavailable
	}

	select {
	case m.queue <- p:
		return nil
	default:
		return fmt.Errorf("%w: %d requests waiting", domain.ErrQueueFull, cap(m.queue))
	}
}

// Close stops the worker, rejects queued callers and closes the session
func (m *SuggestionManager) Close() error {
	var err error
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		session := m.session
		started := m.started
		m.mu.Unlock()

		close(m.quit)
		if started {
			<-m.done
		}

	drain:
		for {
			select {
			case p := <-m.queue:
				p.resolve(nil, domain.ErrSessionClosed)
			default:
				break drain
			}
		}

		if session != nil {
			err = session.Close()
		}
		logrus.Info("Spell checker session closed")
	})
	return err
}

func (m *SuggestionManager) run() {
	defer close(m.done)
	for {
		select {
		case <-m.quit:
			return
		case p := <-m.queue:
			m.process(p)
		}
	}
}

// process serves one request from issue to resolution. The pending slot is
// released on every path out.
func (m *SuggestionManager) process(p *pendingRequest) {
	log := logrus.WithField("request_id", p.id)

	if p.settled() {
		log.Debug("Skipping suggestion request settled while queued")
		return
	}
	if !time.Now().Before(p.deadline) {
		m.resolveWithCurrentSuggestions(p)
		return
	}

	m.mu.Lock()
	m.pending = p
	session := m.session
	m.mu.Unlock()
	defer m.release(p)

	if err := m.issue(session, p); err != nil {
		log.Errorf("Error getting suggestions: %v", err)
		p.resolve(nil, err)
		return
	}

	timer := time.NewTimer(time.Until(p.deadline))
	defer timer.Stop()

	select {
	case <-p.done:
	case <-timer.C:
		m.resolveWithCurrentSuggestions(p)
	case <-m.quit:
		p.resolve(nil, domain.ErrSessionClosed)
	}
}

func (m *SuggestionManager) issue(session output.SpellCheckerSession, p *pendingRequest) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: error getting suggestions: %v", domain.ErrPlatformFailure, r)
		}
	}()

	text := domain.TextInfo{RequestID: p.id, Text: p.text}
	if err := session.GetSuggestions(text, p.maxResults); err != nil {
		return fmt.Errorf("%w: error getting suggestions: %v", domain.ErrPlatformFailure, err)
	}
	return nil
}

func (m *SuggestionManager) release(p *pendingRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == p {
		m.pending = nil
	}
}

func (m *SuggestionManager) resolveWithCurrentSuggestions(p *pendingRequest) {
	m.mu.Lock()
	suggestions := p.snapshot()
	m.mu.Unlock()

	p.resolve(&domain.SuggestionResult{Suggestions: suggestions, Available: true}, nil)
}

// collect appends a callback delivery to the pending buffer and resolves the
// caller. Deliveries for any other request are dropped.
func (m *SuggestionManager) collect(batch domain.SuggestionBatch) {
	m.mu.Lock()
	defer m.mu.Unlock()

	log := logrus.WithFields(logrus.Fields{
		"request_id": batch.RequestID,
		"kind":       batch.Kind,
	})

	p := m.pending
	if p == nil || p.id != batch.RequestID || p.settled() {
		log.Debug("Dropping suggestions for a request that is no longer pending")
		return
	}

	for _, suggestion := range batch.Flatten() {
		if len(p.suggestions) >= p.maxResults {
			break
		}
		p.suggestions = append(p.suggestions, suggestion)
	}
	log.Debugf("Received %d suggestions", len(p.suggestions))

	p.resolve(&domain.SuggestionResult{Suggestions: p.snapshot(), Available: true}, nil)
}

// fail rejects the pending request when processing its callback blew up
func (m *SuggestionManager) fail(requestID uuid.UUID, cause interface{}) {
	m.mu.Lock()
	p := m.pending
	m.mu.Unlock()

	logrus.WithField("request_id", requestID).Errorf("Error processing suggestions: %v", cause)
	if p == nil || p.id != requestID {
		return
	}
	p.resolve(nil, fmt.Errorf("%w: error processing suggestions: %v", domain.ErrPlatformFailure, cause))
}

// sessionListener adapts platform callbacks onto the manager
type sessionListener struct {
	manager *SuggestionManager
}

// OnGetSuggestions handles both callback shapes through SuggestionBatch
func (l *sessionListener) OnGetSuggestions(batch domain.SuggestionBatch) {
	defer func() {
		if r := recover(); r != nil {
			l.manager.fail(batch.RequestID, r)
		}
	}()
	l.manager.collect(batch)
}

// OnError rejects the pending request with a platform failure
func (l *sessionListener) OnError(requestID uuid.UUID, err error) {
	l.manager.fail(requestID, err)
}

type suggestionOutcome struct {
	result *domain.SuggestionResult
	err    error
}

// pendingRequest is one in-flight or queued call. resolve is single-assignment:
// only the first writer reaches the caller.
type pendingRequest struct {
	id          uuid.UUID
	text        string
	maxResults  int
	deadline    time.Time
	suggestions []string

	once   sync.Once
	result chan suggestionOutcome
	done   chan struct{}
}

func newPendingRequest(text string, maxResults int, deadline time.Time) *pendingRequest {
	return &pendingRequest{
		id:          uuid.New(),
		text:        text,
		maxResults:  maxResults,
		deadline:    deadline,
		suggestions: make([]string, 0, maxResults),
		result:      make(chan suggestionOutcome, 1),
		done:        make(chan struct{}),
	}
}

func (p *pendingRequest) resolve(result *domain.SuggestionResult, err error) bool {
	won := false
	p.once.Do(func() {
		won = true
		p.result <- suggestionOutcome{result: result, err: err}
		close(p.done)
	})
	return won
}

func (p *pendingRequest) settled() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

func (p *pendingRequest) snapshot() []string {
	out := make([]string, len(p.suggestions))
	copy(out, p.suggestions)
	return out
}
