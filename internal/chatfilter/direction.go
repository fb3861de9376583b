package chatfilter

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/heartmarshall/termtag/internal/domain"
	"github.com/heartmarshall/termtag/internal/profile"
)

// usageHint is returned when a prompt names fewer than two languages.
const usageHint = "provide one source and one target language in the form: Translate from {source} to {target}: {text}"

// Direction is the language pair and payload of a translation prompt.
type Direction struct {
	SourceLanguageID int
	TargetLanguageID int
	Text             string
}

// ParseDirection reads "Translate from <Lang> to <Lang>: <text>". The first
// two distinct language names before the first colon win; the text is
// everything after it.
func ParseDirection(prompt string, p profile.Profile) (Direction, error) {
	head, text, _ := strings.Cut(prompt, ":")

	fold := cases.Fold()
	var (
		seen []string
		ids  []int
	)
	for _, word := range strings.Fields(head) {
		w := fold.String(word)
		if slices.Contains(seen, w) {
			continue
		}
		id, ok := p.LanguageID(w)
		if !ok {
			continue
		}
		seen = append(seen, w)
		ids = append(ids, id)
		if len(ids) == 2 {
			break
		}
	}

	if len(ids) < 2 {
		return Direction{}, domain.NewValidationError("messages", usageHint+"; supported languages: "+supportedLanguages(p))
	}
	return Direction{SourceLanguageID: ids[0], TargetLanguageID: ids[1], Text: text}, nil
}

func supportedLanguages(p profile.Profile) string {
	names := make([]string, 0, len(p.LanguageNames))
	title := cases.Title(language.English)
	for n := range p.LanguageNames {
		names = append(names, title.String(n))
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}
