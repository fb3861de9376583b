// Package normalize converts raw retrieval payloads into the canonical
// entry table.
package normalize

import "github.com/heartmarshall/termtag/internal/domain"

// DropReason explains why an entry was left out of the table.
type DropReason string

const (
	DropMissingID             DropReason = "missing_id"
	DropMissingTargetLanguage DropReason = "missing_target_language"
	DropMissingSourceLanguage DropReason = "missing_source_language"
	DropMissingAnchor         DropReason = "missing_anchor_term"
)

func (r DropReason) String() string { return string(r) }

// Drop records one entry the parser skipped.
type Drop struct {
	EntryID string
	Reason  DropReason
}

// Result is a parsed table plus the entries that did not make it in.
type Result struct {
	Table   *domain.EntryTable
	Dropped []Drop
}

// Len returns the number of parsed entries; a nil Result has none.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return r.Table.Len()
}
