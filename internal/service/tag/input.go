package tag

import (
	"strings"

	"github.com/heartmarshall/termtag/internal/domain"
)

// Request holds the parameters of one terminology lookup.
type Request struct {
	Text              string
	ProfileID         int
	SourceLanguageIDs []int
	TargetLanguageIDs []int
	Format            domain.Format
	ExactMatchesOnly  bool

	// termHits are filled by Service when termbase detection is enabled.
	termHits []domain.TermHit
}

// format returns the requested format, defaulting to Markdown.
func (r Request) format() domain.Format {
	if r.Format == "" {
		return domain.FormatMarkdown
	}
	return r.Format
}

// Validate checks all fields and collects all errors.
func (r Request) Validate(task domain.Task) error {
	var errs []domain.FieldError

	if strings.TrimSpace(r.Text) == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	}
	if r.ProfileID < 0 {
		errs = append(errs, domain.FieldError{Field: "profile_id", Message: "must be >= 0"})
	}
	if len(r.SourceLanguageIDs) == 0 {
		errs = append(errs, domain.FieldError{Field: "source_language_ids", Message: "at least one required"})
	}
	if len(r.TargetLanguageIDs) == 0 {
		errs = append(errs, domain.FieldError{Field: "target_language_ids", Message: "at least one required"})
	}
	if !r.format().IsValid() {
		errs = append(errs, domain.FieldError{Field: "format", Message: "must be markdown, yaml or unchanged"})
	}
	if task == domain.TaskRevision && len(r.SourceLanguageIDs) > 0 && len(r.TargetLanguageIDs) > 0 &&
		r.SourceLanguageIDs[0] != r.TargetLanguageIDs[0] {
		errs = append(errs, domain.FieldError{
			Field:   "target_language_ids",
			Message: "differing source/target language for monolingual revision",
		})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
