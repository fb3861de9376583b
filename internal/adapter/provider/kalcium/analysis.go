package kalcium

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/termtag/internal/domain"
)

// SearchMode selects how the termbase matches terms.
type SearchMode string

const (
	ModeExact       SearchMode = "exact"
	ModeWildcard    SearchMode = "wildcard"
	ModeFuzzy       SearchMode = "fuzzy"
	ModeFullText    SearchMode = "full-text"
	ModeSuffix      SearchMode = "suffix"
	ModePrefix      SearchMode = "prefix"
	ModeConcordance SearchMode = "concordance"
)

// searchModeCodes are the numeric modes of the terminology endpoints.
var searchModeCodes = map[SearchMode]int{
	ModeExact:       1,
	ModeWildcard:    2,
	ModeFuzzy:       3,
	ModeFullText:    4,
	ModeSuffix:      5,
	ModePrefix:      6,
	ModeConcordance: 7,
}

const (
	// maxSentenceLength is the longest text analyze-sentence accepts, in characters.
	maxSentenceLength = 1000

	defaultSimilarityRate = 0.75
	defaultSearchCount    = 100

	// recognitionSimilarity is the rate RecognizeTerms uses for fuzzy hits.
	recognitionSimilarity = 0.70
)

// AnalyzeRequest describes one analyze-sentence call. Zero values mean
// fuzzy mode, a similarity rate of 0.75 and the enabled termbases.
type AnalyzeRequest struct {
	Sentence          string
	TermbaseIDs       []int
	SourceLanguageIDs []int
	TargetLanguageIDs []int
	Mode              SearchMode
	SimilarityRate    float64
	UseStemmer        bool
	IncludeEntries    bool
	// ShowNotMatchingCompounds also reports compound parts the termbase
	// does not contain as a whole.
	ShowNotMatchingCompounds bool
}

// Analysis is the answer of analyze-sentence.
type Analysis struct {
	Hits    []domain.TermHit `json:"hits"`
	Entries []AnalyzedEntry  `json:"entries"`
}

// AnalyzedEntry is a concept returned with an analysis.
type AnalyzedEntry struct {
	ID        string             `json:"id"`
	Languages []AnalyzedLanguage `json:"languages"`
}

// AnalyzedLanguage is one language section of an AnalyzedEntry.
type AnalyzedLanguage struct {
	LanguageID int             `json:"language_id"`
	Fields     []AnalyzedField `json:"fields"`
	Terms      []AnalyzedTerm  `json:"terms"`
}

// AnalyzedTerm is a term with its term-level fields.
type AnalyzedTerm struct {
	Term   string          `json:"term"`
	Fields []AnalyzedField `json:"fields"`
}

// AnalyzedField is a raw name/value field.
type AnalyzedField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SearchRequest describes one termbase search. Zero values mean fuzzy mode,
// a similarity rate of 0.75, at most 100 results and the enabled termbases.
type SearchRequest struct {
	Term              string
	TermbaseIDs       []int
	SourceLanguageIDs []int
	TargetLanguageIDs []int
	Mode              SearchMode
	SimilarityRate    float64
	UseStemmer        bool
	MaxCount          int
}

// AnalyzeSentence asks the termbase which of its terms occur in a sentence.
func (c *Client) AnalyzeSentence(ctx context.Context, req AnalyzeRequest) (*Analysis, error) {
	mode, err := req.validate()
	if err != nil {
		return nil, err
	}
	settings, err := c.termbaseSettings(ctx, req.TermbaseIDs)
	if err != nil {
		return nil, err
	}

	payload := apiAnalyzeRequest{
		Source:                         req.Sentence,
		SourceLanguageIDs:              req.SourceLanguageIDs,
		TargetLanguageIDs:              nonNilIDs(req.TargetLanguageIDs),
		Mode:                           mode,
		SimilarityRate:                 rateOrDefault(req.SimilarityRate),
		UseStemmer:                     req.UseStemmer,
		MatchCase:                      true,
		IgnoreMatchCaseOnSentenceStart: true,
		TermbaseSettings:               settings,
		IncludeEntries:                 req.IncludeEntries,
		EnableShowNotMatchingCompounds: req.ShowNotMatchingCompounds,
		WordBreakCharacters:            []string{"/"},
	}

	var resp apiAnalysis
	if err := c.exchangeJSON(ctx, "/kalcrest/terminology/analyze-sentence", payload, &resp); err != nil {
		return nil, fmt.Errorf("kalcium: analyze sentence: %w", err)
	}

	out := mapAnalysis(resp)
	c.log.DebugContext(ctx, "kalcium analysis",
		slog.String("mode", string(req.mode())),
		slog.Int("hits", len(out.Hits)),
		slog.Int("entries", len(out.Entries)),
	)
	return out, nil
}

// RecognizeTerms returns the termbase hits of text with the settings the
// translation lookup uses: fuzzy, stemmed, similarity 0.70. Duplicate
// entry/term pairs are reported once.
func (c *Client) RecognizeTerms(ctx context.Context, text string, sourceLanguageIDs, targetLanguageIDs []int) ([]domain.TermHit, error) {
	a, err := c.AnalyzeSentence(ctx, AnalyzeRequest{
		Sentence:          text,
		SourceLanguageIDs: sourceLanguageIDs,
		TargetLanguageIDs: targetLanguageIDs,
		Mode:              ModeFuzzy,
		SimilarityRate:    recognitionSimilarity,
		UseStemmer:        true,
	})
	if err != nil {
		return nil, err
	}

	seen := make(map[domain.TermHit]bool, len(a.Hits))
	hits := make([]domain.TermHit, 0, len(a.Hits))
	for _, h := range a.Hits {
		if seen[h] {
			continue
		}
		seen[h] = true
		hits = append(hits, h)
	}
	return hits, nil
}

// Search runs a termbase search. The answer is returned as the server sent it.
func (c *Client) Search(ctx context.Context, req SearchRequest) (json.RawMessage, error) {
	mode, err := req.validate()
	if err != nil {
		return nil, err
	}
	settings, err := c.termbaseSettings(ctx, req.TermbaseIDs)
	if err != nil {
		return nil, err
	}
	for i := range settings {
		settings[i].FilterID = -1
		settings[i].TermFilterID = -1
		settings[i].StylesheetID = -1
	}

	maxCount := req.MaxCount
	if maxCount <= 0 {
		maxCount = defaultSearchCount
	}

	payload := apiSearchRequest{
		Term:                     req.Term,
		Mode:                     mode,
		SimilarityRate:           rateOrDefault(req.SimilarityRate),
		UseStemmer:               req.UseStemmer,
		MaxCount:                 maxCount,
		SourceLanguageIDs:        req.SourceLanguageIDs,
		TargetLanguageIDs:        nonNilIDs(req.TargetLanguageIDs),
		TermbaseSettings:         settings,
		TermbaseOrderingMode:     1,
		TermbaseOrder:            []int{},
		UseMandatorySearchFilter: true,
		GetAdditionalInfo:        true,
		EnableLog:                true,
	}

	var resp json.RawMessage
	if err := c.exchangeJSON(ctx, "/kalcrest/terminology/search-raw", payload, &resp); err != nil {
		return nil, fmt.Errorf("kalcium: search: %w", err)
	}
	c.log.DebugContext(ctx, "kalcium search", slog.String("mode", string(req.mode())), slog.Int("bytes", len(resp)))
	return resp, nil
}

func (r AnalyzeRequest) mode() SearchMode {
	if r.Mode == "" {
		return ModeFuzzy
	}
	return r.Mode
}

func (r AnalyzeRequest) validate() (int, error) {
	var errs []domain.FieldError
	if strings.TrimSpace(r.Sentence) == "" {
		errs = append(errs, domain.FieldError{Field: "sentence", Message: "required"})
	} else if utf8.RuneCountInString(r.Sentence) > maxSentenceLength {
		errs = append(errs, domain.FieldError{Field: "sentence", Message: fmt.Sprintf("at most %d characters", maxSentenceLength)})
	}
	errs = append(errs, validateSearch(r.mode(), r.SimilarityRate, r.SourceLanguageIDs, analyzeModes)...)
	if len(errs) > 0 {
		return 0, domain.NewValidationErrors(errs)
	}
	return searchModeCodes[r.mode()], nil
}

func (r SearchRequest) mode() SearchMode {
	if r.Mode == "" {
		return ModeFuzzy
	}
	return r.Mode
}

func (r SearchRequest) validate() (int, error) {
	var errs []domain.FieldError
	if strings.TrimSpace(r.Term) == "" {
		errs = append(errs, domain.FieldError{Field: "term", Message: "required"})
	}
	errs = append(errs, validateSearch(r.mode(), r.SimilarityRate, r.SourceLanguageIDs, searchModes)...)
	if r.MaxCount < 0 {
		errs = append(errs, domain.FieldError{Field: "max_count", Message: "must be >= 0"})
	}
	if len(errs) > 0 {
		return 0, domain.NewValidationErrors(errs)
	}
	return searchModeCodes[r.mode()], nil
}

var (
	analyzeModes = []SearchMode{ModeExact, ModeWildcard, ModeFuzzy, ModeFullText, ModeSuffix, ModePrefix, ModeConcordance}
	// search-raw knows fewer modes than analyze-sentence.
	searchModes = []SearchMode{ModeWildcard, ModeFuzzy, ModeFullText, ModeConcordance}
)

func validateSearch(mode SearchMode, rate float64, sourceLanguageIDs []int, allowed []SearchMode) []domain.FieldError {
	var errs []domain.FieldError
	if !slices.Contains(allowed, mode) {
		names := make([]string, len(allowed))
		for i, m := range allowed {
			names[i] = string(m)
		}
		errs = append(errs, domain.FieldError{Field: "mode", Message: "must be one of " + strings.Join(names, ", ")})
	}
	if rate < 0 || rate > 1 {
		errs = append(errs, domain.FieldError{Field: "similarity_rate", Message: "must be between 0 and 1"})
	}
	if len(sourceLanguageIDs) == 0 {
		errs = append(errs, domain.FieldError{Field: "source_language_ids", Message: "at least one required"})
	}
	return errs
}

// termbaseSettings selects ids, or the enabled termbases when ids is empty.
func (c *Client) termbaseSettings(ctx context.Context, ids []int) ([]apiTermbaseSetting, error) {
	if len(ids) == 0 {
		enabled, err := c.EnabledTermbases(ctx)
		if err != nil {
			return nil, err
		}
		ids = enabled
	}
	settings := make([]apiTermbaseSetting, len(ids))
	for i, id := range ids {
		settings[i] = apiTermbaseSetting{TermbaseID: id}
	}
	return settings, nil
}

func mapAnalysis(resp apiAnalysis) *Analysis {
	out := &Analysis{
		Hits:    make([]domain.TermHit, 0, len(resp.Hits)),
		Entries: make([]AnalyzedEntry, 0, len(resp.Entries)),
	}
	for _, h := range resp.Hits {
		out.Hits = append(out.Hits, domain.TermHit{EntryID: h.EntryID.ID.String(), Term: h.Term})
	}
	for _, e := range resp.Entries {
		entry := AnalyzedEntry{ID: e.ID.ID.String(), Languages: make([]AnalyzedLanguage, 0, len(e.Languages))}
		for _, l := range e.Languages {
			lang := AnalyzedLanguage{LanguageID: l.LanguageID, Fields: mapFields(l.Fields), Terms: make([]AnalyzedTerm, 0, len(l.Terms))}
			for _, t := range l.Terms {
				lang.Terms = append(lang.Terms, AnalyzedTerm{Term: t.Term, Fields: mapFields(t.Fields)})
			}
			entry.Languages = append(entry.Languages, lang)
		}
		out.Entries = append(out.Entries, entry)
	}
	return out
}

func mapFields(fields []apiField) []AnalyzedField {
	out := make([]AnalyzedField, len(fields))
	for i, f := range fields {
		out[i] = AnalyzedField(f)
	}
	return out
}

func rateOrDefault(rate float64) float64 {
	if rate == 0 {
		return defaultSimilarityRate
	}
	return rate
}

func nonNilIDs(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}
