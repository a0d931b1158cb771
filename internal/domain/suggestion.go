package domain

import "github.com/google/uuid"

const (
	// DefaultMaxSuggestions is the suggestion cap used when a caller does not ask for one
	DefaultMaxSuggestions = 5

	// MessageServiceUnavailable is reported to the web layer when no session exists
	MessageServiceUnavailable = "Spell checker service not available"
)

// TextInfo is the span of text handed to the platform spell-check service.
// RequestID is echoed back in every callback so late data can be matched
// against the request that asked for it.
type TextInfo struct {
	RequestID uuid.UUID
	Text      string
}

// SuggestionsInfo holds the suggestions the platform found for a single span,
// in the platform's rank order
type SuggestionsInfo struct {
	RequestID   uuid.UUID
	Suggestions []string
}

// SentenceSuggestionsInfo groups per-span suggestion lists for one sentence
type SentenceSuggestionsInfo struct {
	RequestID uuid.UUID
	Spans     []*SuggestionsInfo
}

// SuggestionBatchKind tells which shape a platform callback delivered
type SuggestionBatchKind string

const (
	// SuggestionBatchSingle - one list of suggestions per span
	SuggestionBatchSingle SuggestionBatchKind = "single"
	// SuggestionBatchSentence - sentence groups with nested span lists
	SuggestionBatchSentence SuggestionBatchKind = "sentence"
)

// SuggestionBatch is one callback delivery from the platform service.
// Only the field matching Kind is populated.
type SuggestionBatch struct {
	Kind      SuggestionBatchKind
	RequestID uuid.UUID
	Single    []*SuggestionsInfo
	Sentences []*SentenceSuggestionsInfo
}

// NewSingleBatch wraps a single-span delivery
func NewSingleBatch(requestID uuid.UUID, infos []*SuggestionsInfo) SuggestionBatch {
	return SuggestionBatch{Kind: SuggestionBatchSingle, RequestID: requestID, Single: infos}
}

// NewSentenceBatch wraps a sentence-level delivery
func NewSentenceBatch(requestID uuid.UUID, infos []*SentenceSuggestionsInfo) SuggestionBatch {
	return SuggestionBatch{Kind: SuggestionBatchSentence, RequestID: requestID, Sentences: infos}
}

// Flatten normalizes either shape into one ordered suggestion sequence
func (b SuggestionBatch) Flatten() []string {
	switch b.Kind {
	case SuggestionBatchSentence:
		return FlattenSentenceSuggestions(b.Sentences)
	default:
		return FlattenSuggestions(b.Single)
	}
}

// FlattenSuggestions appends every suggestion of every span in delivery order.
// Nil spans are skipped.
func FlattenSuggestions(infos []*SuggestionsInfo) []string {
	out := make([]string, 0)
	for _, info := range infos {
		if info == nil {
			continue
		}
		out = append(out, info.Suggestions...)
	}
	return out
}

// FlattenSentenceSuggestions walks sentences, then spans, then suggestions
func FlattenSentenceSuggestions(sentences []*SentenceSuggestionsInfo) []string {
	out := make([]string, 0)
	for _, sentence := range sentences {
		if sentence == nil {
			continue
		}
		out = append(out, FlattenSuggestions(sentence.Spans)...)
	}
	return out
}

// SuggestionRequest is the getSuggestions input after it left the bridge
type SuggestionRequest struct {
	Text       string
	MaxResults int
}

// SuggestionResult is what a getSuggestions caller receives on success
type SuggestionResult struct {
	Suggestions []string `json:"suggestions"`
	Available   bool     `json:"available"`
	Error       string   `json:"error,omitempty"`
}

// UnavailableResult is the degraded answer given when no session exists
func UnavailableResult() *SuggestionResult {
	return &SuggestionResult{
		Suggestions: []string{},
		Available:   false,
		Error:       MessageServiceUnavailable,
	}
}

// Availability is the checkAvailability payload
type Availability struct {
	Available bool `json:"available"`
}
