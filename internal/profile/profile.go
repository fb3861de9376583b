// Package profile holds the per-termbase schema dialects: which language
// ids exist, how usage status, definitions and usage notes are named.
package profile

import (
	"fmt"

	"golang.org/x/text/cases"

	"github.com/heartmarshall/termtag/internal/domain"
)

// UsageStatus names the term-level usage field and its value tokens.
// An empty token never matches.
type UsageStatus struct {
	Field     string `yaml:"field"`
	Preferred string `yaml:"preferred"`
	Allowed   string `yaml:"allowed"`
	Forbidden string `yaml:"forbidden"`
}

// Definition names the definition field and where it lives.
type Definition struct {
	Field string                 `yaml:"field"`
	Scope domain.DefinitionScope `yaml:"scope"`
}

// UsageNote names the term-level usage note field.
type UsageNote struct {
	Field string `yaml:"field"`
}

// Profile is one retrieval profile of the termbase service.
// Profiles are immutable once registered.
type Profile struct {
	ID            int            `yaml:"id"`
	LanguageNames map[string]int `yaml:"language_names"`
	Languages     map[int]string `yaml:"languages"`
	UsageStatus   UsageStatus    `yaml:"usage_status"`
	Definition    Definition     `yaml:"definition"`
	UsageNote     UsageNote      `yaml:"usage_note"`
}

// LanguageCode returns the wire prefix (e.g. "en-gb") of a language id.
func (p Profile) LanguageCode(id int) (string, bool) {
	code, ok := p.Languages[id]
	return code, ok
}

// LanguageID resolves a human language name ("German") to its id.
// Matching is case-insensitive.
func (p Profile) LanguageID(name string) (int, bool) {
	fold := cases.Fold()
	want := fold.String(name)
	for n, id := range p.LanguageNames {
		if fold.String(n) == want {
			return id, true
		}
	}
	return 0, false
}

// Classify maps a raw usage-status value to its class.
func (p Profile) Classify(status string) (domain.UsageClass, bool) {
	if status == "" {
		return "", false
	}
	switch status {
	case p.UsageStatus.Preferred:
		return domain.UsageClassPreferred, true
	case p.UsageStatus.Allowed:
		return domain.UsageClassAllowed, true
	case p.UsageStatus.Forbidden:
		return domain.UsageClassForbidden, true
	}
	return "", false
}

// IsForbidden reports whether status is this profile's forbidden token.
func (p Profile) IsForbidden(status string) bool {
	return p.UsageStatus.Forbidden != "" && status == p.UsageStatus.Forbidden
}

// Validate checks that the profile is usable by the parsers.
func (p Profile) Validate() error {
	var errs []domain.FieldError

	if p.ID < 0 {
		errs = append(errs, domain.FieldError{Field: "id", Message: "must be >= 0"})
	}
	if len(p.Languages) == 0 {
		errs = append(errs, domain.FieldError{Field: "languages", Message: "at least one required"})
	}
	for name, id := range p.LanguageNames {
		if _, ok := p.Languages[id]; !ok {
			errs = append(errs, domain.FieldError{
				Field:   "language_names",
				Message: fmt.Sprintf("%q points to unknown language %d", name, id),
			})
		}
	}
	if p.UsageStatus.Field == "" {
		errs = append(errs, domain.FieldError{Field: "usage_status.field", Message: "required"})
	}
	if p.Definition.Field == "" {
		errs = append(errs, domain.FieldError{Field: "definition.field", Message: "required"})
	}
	if !p.Definition.Scope.IsValid() {
		errs = append(errs, domain.FieldError{Field: "definition.scope", Message: "must be concept or language"})
	}
	if p.UsageNote.Field == "" {
		errs = append(errs, domain.FieldError{Field: "usage_note.field", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
