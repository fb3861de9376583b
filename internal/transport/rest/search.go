package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/termtag/internal/adapter/provider/kalcium"
)

type termbaseSearcher interface {
	Search(ctx context.Context, req kalcium.SearchRequest) (json.RawMessage, error)
	AnalyzeSentence(ctx context.Context, req kalcium.AnalyzeRequest) (*kalcium.Analysis, error)
}

// SearchHandler exposes the termbase's own search and sentence analysis.
type SearchHandler struct {
	termbase termbaseSearcher
	log      *slog.Logger
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(tb termbaseSearcher, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{termbase: tb, log: logger.With("handler", "search")}
}

type searchRequest struct {
	Term              string  `json:"term"`
	TermbaseIDs       []int   `json:"termbase_ids"`
	SourceLanguageIDs []int   `json:"source_language_ids"`
	TargetLanguageIDs []int   `json:"target_language_ids"`
	Mode              string  `json:"mode"`
	SimilarityRate    float64 `json:"similarity_rate"`
	UseStemmer        bool    `json:"use_stemmer"`
	MaxCount          int     `json:"max_count"`
}

type analyzeRequest struct {
	Sentence                 string  `json:"sentence"`
	TermbaseIDs              []int   `json:"termbase_ids"`
	SourceLanguageIDs        []int   `json:"source_language_ids"`
	TargetLanguageIDs        []int   `json:"target_language_ids"`
	Mode                     string  `json:"mode"`
	SimilarityRate           float64 `json:"similarity_rate"`
	UseStemmer               bool    `json:"use_stemmer"`
	IncludeEntries           bool    `json:"include_entries"`
	ShowNotMatchingCompounds bool    `json:"show_not_matching_compounds"`
}

// Search handles POST /v1/search. The termbase answer is passed through.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.termbase.Search(r.Context(), kalcium.SearchRequest{
		Term:              req.Term,
		TermbaseIDs:       req.TermbaseIDs,
		SourceLanguageIDs: req.SourceLanguageIDs,
		TargetLanguageIDs: req.TargetLanguageIDs,
		Mode:              kalcium.SearchMode(req.Mode),
		SimilarityRate:    req.SimilarityRate,
		UseStemmer:        req.UseStemmer,
		MaxCount:          req.MaxCount,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Analyze handles POST /v1/analyze.
func (h *SearchHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	req := analyzeRequest{IncludeEntries: true}
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.termbase.AnalyzeSentence(r.Context(), kalcium.AnalyzeRequest{
		Sentence:                 req.Sentence,
		TermbaseIDs:              req.TermbaseIDs,
		SourceLanguageIDs:        req.SourceLanguageIDs,
		TargetLanguageIDs:        req.TargetLanguageIDs,
		Mode:                     kalcium.SearchMode(req.Mode),
		SimilarityRate:           req.SimilarityRate,
		UseStemmer:               req.UseStemmer,
		IncludeEntries:           req.IncludeEntries,
		ShowNotMatchingCompounds: req.ShowNotMatchingCompounds,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
