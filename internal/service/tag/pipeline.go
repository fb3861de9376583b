package tag

import (
	"github.com/heartmarshall/termtag/internal/derive"
	"github.com/heartmarshall/termtag/internal/domain"
	"github.com/heartmarshall/termtag/internal/normalize"
	"github.com/heartmarshall/termtag/internal/profile"
	"github.com/heartmarshall/termtag/internal/provider"
	"github.com/heartmarshall/termtag/internal/render"
)

const (
	// NoInformationText is returned when a lookup yields no concept.
	NoInformationText = "```markdown\nNo information found in the termbase.\n```"
	// NoInformationRaw is the unchanged-format answer to an empty payload.
	NoInformationRaw = "No information found in the termbase."
)

// TranslationResult is the outcome of FindTranslation.
type TranslationResult struct {
	Text    string
	Entries domain.TranslationTable
	Dropped []normalize.Drop
}

// RevisionResult is the outcome of CheckTerminology.
type RevisionResult struct {
	Text    string
	Entries domain.RevisionTable
	Dropped []normalize.Drop
}

// FindTranslation normalizes a retrieval payload and renders its
// translation view. It does no I/O.
func FindTranslation(raw provider.RawPayload, req Request, p profile.Profile) (*TranslationResult, error) {
	if err := req.Validate(domain.TaskTranslation); err != nil {
		return nil, err
	}
	if req.format() == domain.FormatUnchanged {
		return &TranslationResult{Text: rawText(raw), Entries: domain.TranslationTable{}}, nil
	}

	parsed, err := parse(raw, req, p)
	if err != nil {
		return nil, err
	}
	res := &TranslationResult{Text: NoInformationText, Entries: domain.TranslationTable{}}
	if parsed != nil {
		res.Dropped = parsed.Dropped
	}
	if parsed.Len() == 0 {
		return res, nil
	}

	srcCode, _ := p.LanguageCode(req.SourceLanguageIDs[0])
	entries := derive.Translations(parsed.Table, p, derive.TranslationOptions{
		ExactMatchesOnly: req.ExactMatchesOnly,
		SourceText:       req.Text,
		SourceLanguage:   srcCode,
		TermHits:         req.termHits,
	})
	if len(entries) == 0 {
		return res, nil
	}

	text, err := render.Translation(entries, req.format(), true)
	if err != nil {
		return nil, err
	}
	res.Text = text
	res.Entries = entries
	return res, nil
}

// CheckTerminology normalizes a monolingual retrieval payload and renders
// its revision view. It does no I/O.
func CheckTerminology(raw provider.RawPayload, req Request, p profile.Profile) (*RevisionResult, error) {
	if err := req.Validate(domain.TaskRevision); err != nil {
		return nil, err
	}
	if req.format() == domain.FormatUnchanged {
		return &RevisionResult{Text: rawText(raw), Entries: domain.RevisionTable{}}, nil
	}

	parsed, err := parse(raw, req, p)
	if err != nil {
		return nil, err
	}
	res := &RevisionResult{Text: NoInformationText, Entries: domain.RevisionTable{}}
	if parsed != nil {
		res.Dropped = parsed.Dropped
	}
	if parsed.Len() == 0 {
		return res, nil
	}

	entries := derive.Revisions(parsed.Table, p)
	text, err := render.Revision(entries, req.format(), true)
	if err != nil {
		return nil, err
	}
	res.Text = text
	res.Entries = entries
	return res, nil
}

func parse(raw provider.RawPayload, req Request, p profile.Profile) (*normalize.Result, error) {
	src, tgt := req.SourceLanguageIDs[0], req.TargetLanguageIDs[0]
	if raw.Kind == provider.KindJSON {
		return normalize.ParseJSON(raw.Records, src, tgt, p)
	}
	return normalize.ParseXML(raw.XML, src, tgt, p)
}

func rawText(raw provider.RawPayload) string {
	if raw.IsEmpty() {
		return NoInformationRaw
	}
	return raw.Text()
}
