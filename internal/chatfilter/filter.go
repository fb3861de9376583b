// Package chatfilter augments translation prompts of a chat pipeline with
// termbase context. It keeps no per-conversation state: the context found
// by Inlet is returned to the caller, who passes it to Outlet.
package chatfilter

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/termtag/internal/domain"
	"github.com/heartmarshall/termtag/internal/profile"
	"github.com/heartmarshall/termtag/internal/render"
	"github.com/heartmarshall/termtag/internal/service/tag"
)

const (
	tagContextMarker = "\n\n### TAG context:\n"

	statusRetrieving = "Retrieving terminology..."
	statusNoneFound  = "No terminology found."
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type translator interface {
	FindTranslation(ctx context.Context, req tag.Request) (*tag.TranslationResult, error)
	Profile(id int) (profile.Profile, error)
}

// Filter is the inlet/outlet pair of the chat pipeline.
type Filter struct {
	log        *slog.Logger
	tags       translator
	baseURL    string
	termbaseID int
	now        func() time.Time
}

// New creates a Filter. baseURL and termbaseID build the citation links.
func New(logger *slog.Logger, tags translator, baseURL string, termbaseID int) *Filter {
	return &Filter{
		log:        logger.With("service", "chatfilter"),
		tags:       tags,
		baseURL:    strings.TrimRight(baseURL, "/"),
		termbaseID: termbaseID,
		now:        time.Now,
	}
}

// Inlet looks up the terminology of the last message and prefixes it with
// a <tag> block. Earlier echoed TAG context is stripped from all messages.
func (f *Filter) Inlet(ctx context.Context, body Body, opts Options) (*InletResult, error) {
	if len(body.Messages) == 0 {
		return nil, domain.NewValidationError("messages", "at least one required")
	}

	p, err := f.tags.Profile(opts.ProfileID)
	if err != nil {
		return nil, err
	}

	out := body.Clone()
	last := &out.Messages[len(out.Messages)-1]

	dir, err := ParseDirection(last.Content, p)
	if err != nil {
		return nil, err
	}

	events := []Event{status(statusRetrieving, false)}

	res, err := f.tags.FindTranslation(ctx, tag.Request{
		Text:              dir.Text,
		ProfileID:         opts.ProfileID,
		SourceLanguageIDs: []int{dir.SourceLanguageID},
		TargetLanguageIDs: []int{dir.TargetLanguageID},
		Format:            opts.Format,
		ExactMatchesOnly:  opts.ExactMatchesOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("chatfilter: inlet: %w", err)
	}

	if res.Text != "" {
		last.Content = "<tag>\n" + res.Text + "\n</tag>\n\n" + last.Content
	}
	if n := len(res.Entries); n > 0 {
		events = append(events, status(foundConcepts(n), true))
	} else {
		events = append(events, status(statusNoneFound, true))
	}

	if opts.ShowCitation {
		for _, e := range res.Entries {
			c, err := f.citation(e, opts.Format)
			if err != nil {
				return nil, fmt.Errorf("chatfilter: citation %s: %w", e.ID, err)
			}
			events = append(events, Event{Type: EventCitation, Data: c})
		}
	}

	for i := range out.Messages {
		out.Messages[i].Content = StripTagContext(out.Messages[i].Content)
	}

	f.log.InfoContext(ctx, "inlet",
		slog.Int("profile_id", opts.ProfileID),
		slog.Int("source_language_id", dir.SourceLanguageID),
		slog.Int("target_language_id", dir.TargetLanguageID),
		slog.Int("concepts", len(res.Entries)),
	)

	return &InletResult{
		Body:    out,
		Events:  events,
		Context: res.Text,
		Entries: res.Entries,
	}, nil
}

// Outlet appends the TAG context found by Inlet to the last message when
// ShowTagContext is set.
func (f *Filter) Outlet(body Body, tagContext string, opts Options) Body {
	out := body.Clone()
	if !opts.ShowTagContext || len(out.Messages) == 0 {
		return out
	}
	last := &out.Messages[len(out.Messages)-1]
	last.Content += tagContextMarker + tagContext
	return out
}

// StripTagContext removes an echoed TAG context suffix.
func StripTagContext(content string) string {
	before, _, _ := strings.Cut(content, tagContextMarker)
	return before
}

func (f *Filter) citation(e domain.TranslationEntry, format domain.Format) (CitationData, error) {
	doc, err := render.Translation(domain.TranslationTable{e}, citationFormat(format), false)
	if err != nil {
		return CitationData{}, err
	}

	name := "#" + e.ID
	if len(e.Terms) > 0 {
		name += " (" + e.Terms[0].Source + ")"
	}

	c := CitationData{
		ID:       uuid.NewString(),
		Document: []string{doc},
		Metadata: []CitationMetadata{{
			DateAccessed: f.now().Format(time.RFC3339),
			Source:       name,
		}},
		Source: CitationSource{Name: name, URL: f.entryURL(e.ID)},
	}
	if citationFormat(format) == domain.FormatMarkdown {
		c.HTML = []string{render.HTML(doc)}
	}
	return c, nil
}

func (f *Filter) entryURL(entryID string) string {
	q := url.Values{}
	q.Set("entryId", entryID)
	q.Set("termbaseId", strconv.Itoa(f.termbaseID))
	return f.baseURL + "/terminology/search?" + q.Encode()
}

// citationFormat falls back to Markdown for formats the renderer lacks.
func citationFormat(format domain.Format) domain.Format {
	if format == domain.FormatYAML {
		return format
	}
	return domain.FormatMarkdown
}

func foundConcepts(n int) string {
	if n == 1 {
		return "Found 1 concept."
	}
	return fmt.Sprintf("Found %d concepts.", n)
}

func status(description string, done bool) Event {
	return Event{Type: EventStatus, Data: StatusData{Description: description, Done: done}}
}
