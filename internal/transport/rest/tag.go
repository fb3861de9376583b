package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/termtag/internal/config"
	"github.com/heartmarshall/termtag/internal/domain"
	"github.com/heartmarshall/termtag/internal/normalize"
	"github.com/heartmarshall/termtag/internal/render"
	"github.com/heartmarshall/termtag/internal/service/tag"
)

// tagService defines the minimal interface needed by TagHandler.
type tagService interface {
	FindTranslation(ctx context.Context, req tag.Request) (*tag.TranslationResult, error)
	CheckTerminology(ctx context.Context, req tag.Request) (*tag.RevisionResult, error)
}

// TagHandler serves the terminology lookup endpoints.
type TagHandler struct {
	svc      tagService
	defaults config.TagConfig
	log      *slog.Logger
}

// NewTagHandler creates a TagHandler. Omitted request fields fall back to defaults.
func NewTagHandler(svc tagService, defaults config.TagConfig, logger *slog.Logger) *TagHandler {
	return &TagHandler{svc: svc, defaults: defaults, log: logger.With("handler", "tag")}
}

type lookupRequest struct {
	Text              string        `json:"text"`
	ProfileID         *int          `json:"profile_id"`
	SourceLanguageIDs []int         `json:"source_language_ids"`
	TargetLanguageIDs []int         `json:"target_language_ids"`
	Format            domain.Format `json:"format"`
	ExactMatchesOnly  *bool         `json:"exact_matches_only"`
	HTML              bool          `json:"html"`
}

type droppedEntry struct {
	EntryID string `json:"entry_id,omitempty"`
	Reason  string `json:"reason"`
}

type translationResponse struct {
	Text    string                  `json:"text"`
	HTML    string                  `json:"html,omitempty"`
	Entries domain.TranslationTable `json:"entries"`
	Dropped []droppedEntry          `json:"dropped,omitempty"`
}

type revisionResponse struct {
	Text    string               `json:"text"`
	HTML    string               `json:"html,omitempty"`
	Entries domain.RevisionTable `json:"entries"`
	Dropped []droppedEntry       `json:"dropped,omitempty"`
}

// FindTranslation handles POST /v1/translations.
func (h *TagHandler) FindTranslation(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in := h.toRequest(req)

	res, err := h.svc.FindTranslation(r.Context(), in)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, translationResponse{
		Text:    res.Text,
		HTML:    previewHTML(req.HTML, in.Format, res.Text),
		Entries: nonNil(res.Entries),
		Dropped: toDropped(res.Dropped),
	})
}

// CheckTerminology handles POST /v1/revisions.
func (h *TagHandler) CheckTerminology(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in := h.toRequest(req)

	res, err := h.svc.CheckTerminology(r.Context(), in)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	entries := res.Entries
	if entries == nil {
		entries = domain.RevisionTable{}
	}
	writeJSON(w, http.StatusOK, revisionResponse{
		Text:    res.Text,
		HTML:    previewHTML(req.HTML, in.Format, res.Text),
		Entries: entries,
		Dropped: toDropped(res.Dropped),
	})
}

func (h *TagHandler) toRequest(req lookupRequest) tag.Request {
	in := tag.Request{
		Text:              req.Text,
		ProfileID:         h.defaults.DefaultProfileID,
		SourceLanguageIDs: req.SourceLanguageIDs,
		TargetLanguageIDs: req.TargetLanguageIDs,
		Format:            req.Format,
		ExactMatchesOnly:  h.defaults.ExactMatchesOnly,
	}
	if req.ProfileID != nil {
		in.ProfileID = *req.ProfileID
	}
	if req.ExactMatchesOnly != nil {
		in.ExactMatchesOnly = *req.ExactMatchesOnly
	}
	if in.Format == "" {
		in.Format = domain.Format(h.defaults.DefaultFormat)
	}
	return in
}

// previewHTML renders Markdown output for browsers when asked to.
func previewHTML(want bool, format domain.Format, text string) string {
	if !want || format != domain.FormatMarkdown {
		return ""
	}
	return render.HTML(text)
}

func nonNil(t domain.TranslationTable) domain.TranslationTable {
	if t == nil {
		return domain.TranslationTable{}
	}
	return t
}

func toDropped(drops []normalize.Drop) []droppedEntry {
	if len(drops) == 0 {
		return nil
	}
	out := make([]droppedEntry, 0, len(drops))
	for _, d := range drops {
		out = append(out, droppedEntry{EntryID: d.EntryID, Reason: string(d.Reason)})
	}
	return out
}
