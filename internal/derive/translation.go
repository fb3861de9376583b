package derive

import (
	"github.com/heartmarshall/termtag/internal/domain"
	"github.com/heartmarshall/termtag/internal/profile"
)

// TranslationOptions tunes Translations.
type TranslationOptions struct {
	// ExactMatchesOnly keeps only concepts whose anchor term occurs in
	// SourceText.
	ExactMatchesOnly bool
	SourceText       string
	// SourceLanguage is the language code of SourceText, e.g. "en-gb".
	SourceLanguage string
	// TermHits are concepts the termbase recognized in SourceText. They
	// pass the exact-match check even when local matching misses them.
	TermHits []domain.TermHit
}

// Translations derives the "find translations" view: concept fields pass
// through, forbidden target terms are removed, and concepts without any
// remaining target term are dropped.
func Translations(table *domain.EntryTable, p profile.Profile, opts TranslationOptions) domain.TranslationTable {
	out := make(domain.TranslationTable, 0, table.Len())
	for _, e := range table.Entries() {
		out = append(out, domain.TranslationEntry{
			ID:     e.ID,
			Fields: e.Fields.Clone(),
			Terms:  cloneGroups(e.Terms),
		})
	}
	out = FilterForbidden(out, p)

	if opts.ExactMatchesOnly {
		out = keepDetected(out, NewDetector(opts.SourceText, opts.SourceLanguage).WithTermHits(opts.TermHits))
	}
	return out
}

func keepDetected(table domain.TranslationTable, d *Detector) domain.TranslationTable {
	out := make(domain.TranslationTable, 0, len(table))
	for _, e := range table {
		if len(e.Terms) == 0 {
			continue
		}
		if d.Matches(e.ID, e.Terms[0].Source) {
			out = append(out, e)
		}
	}
	return out
}

func cloneGroups(groups []domain.TermGroup) []domain.TermGroup {
	out := make([]domain.TermGroup, 0, len(groups))
	for _, g := range groups {
		targets := make([]domain.TargetTerm, 0, len(g.Targets))
		for _, t := range g.Targets {
			targets = append(targets, domain.TargetTerm{Term: t.Term, Attributes: t.Attributes.Clone()})
		}
		out = append(out, domain.TermGroup{Source: g.Source, Targets: targets})
	}
	return out
}
