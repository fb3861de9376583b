package chatfilter

import "github.com/heartmarshall/termtag/internal/domain"

// Message is one chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Body is the chat completion request or response passing through the filter.
type Body struct {
	Model    string    `json:"model,omitempty"`
	Messages []Message `json:"messages"`
}

// Clone returns a copy whose messages can be edited freely.
func (b Body) Clone() Body {
	out := b
	out.Messages = append([]Message(nil), b.Messages...)
	return out
}

// Options are the per-user switches of the filter.
type Options struct {
	ProfileID        int           `json:"profile_id"`
	Format           domain.Format `json:"format"`
	ExactMatchesOnly bool          `json:"exact_matches_only"`
	ShowCitation     bool          `json:"show_citation"`
	ShowTagContext   bool          `json:"show_tag_context"`
}

// Event types emitted by the inlet.
const (
	EventStatus   = "status"
	EventCitation = "citation"
)

// Event is a progress or citation notice for the chat front end.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// StatusData is the payload of a status event.
type StatusData struct {
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

// CitationData is the payload of a citation event, one per concept.
type CitationData struct {
	ID       string             `json:"id"`
	Document []string           `json:"document"`
	HTML     []string           `json:"html,omitempty"`
	Metadata []CitationMetadata `json:"metadata"`
	Source   CitationSource     `json:"source"`
}

// CitationMetadata records when and from where a citation was taken.
type CitationMetadata struct {
	DateAccessed string `json:"date_accessed"`
	Source       string `json:"source"`
}

// CitationSource links a citation to the termbase entry.
type CitationSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// InletResult is the outcome of Inlet. Context must be handed back to
// Outlet for the same conversation turn.
type InletResult struct {
	Body    Body                    `json:"body"`
	Events  []Event                 `json:"events"`
	Context string                  `json:"context"`
	Entries domain.TranslationTable `json:"entries"`
}
