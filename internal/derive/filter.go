// Package derive builds the translation and revision views from the
// canonical entry table.
package derive

import (
	"github.com/heartmarshall/termtag/internal/domain"
	"github.com/heartmarshall/termtag/internal/profile"
)

// FilterForbidden drops target terms whose usage status is the profile's
// forbidden token, and then every concept left without a target term.
// Terms without a usage status are kept. Applying it twice is a no-op.
func FilterForbidden(table domain.TranslationTable, p profile.Profile) domain.TranslationTable {
	out := make(domain.TranslationTable, 0, len(table))
	for _, e := range table {
		filtered := domain.TranslationEntry{ID: e.ID, Fields: e.Fields}
		for _, g := range e.Terms {
			kept := make([]domain.TargetTerm, 0, len(g.Targets))
			for _, t := range g.Targets {
				status, ok := t.Attributes.Get(domain.AttrUsageStatus)
				if ok && p.IsForbidden(status) {
					continue
				}
				kept = append(kept, t)
			}
			filtered.Terms = append(filtered.Terms, domain.TermGroup{Source: g.Source, Targets: kept})
		}
		if filtered.TargetCount() == 0 {
			continue
		}
		out = append(out, filtered)
	}
	return out
}
