package derive

import (
	"github.com/heartmarshall/termtag/internal/domain"
	"github.com/heartmarshall/termtag/internal/profile"
)

// Revisions derives the monolingual "check terminology" view. Each target
// term lands in the bucket of its usage class, without its usage_status
// attribute. Terms with no or an unknown status are left out.
func Revisions(table *domain.EntryTable, p profile.Profile) domain.RevisionTable {
	out := make(domain.RevisionTable, 0, table.Len())
	for _, e := range table.Entries() {
		rev := domain.RevisionEntry{ID: e.ID, Fields: e.Fields.Clone()}
		for _, g := range e.Terms {
			var buckets domain.RevisionBuckets
			for _, t := range g.Targets {
				status, _ := t.Attributes.Get(domain.AttrUsageStatus)
				class, ok := p.Classify(status)
				if !ok {
					continue
				}
				buckets.Add(class, domain.TargetTerm{
					Term:       t.Term,
					Attributes: t.Attributes.Without(domain.AttrUsageStatus),
				})
			}
			rev.Terms = append(rev.Terms, domain.RevisionGroup{Source: g.Source, Buckets: buckets})
		}
		out = append(out, rev)
	}
	return out
}
