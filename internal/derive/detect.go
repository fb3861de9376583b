package derive

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jdkato/prose/v2"
	"github.com/kljensen/snowball"

	"github.com/heartmarshall/termtag/internal/domain"
)

// snowballLanguages maps language-code prefixes to snowball stemmer names.
var snowballLanguages = map[string]string{
	"en": "english",
	"es": "spanish",
	"fr": "french",
	"ru": "russian",
	"sv": "swedish",
	"no": "norwegian",
	"nb": "norwegian",
	"hu": "hungarian",
}

// Detector finds terms in a source sentence. A term matches when it occurs
// verbatim as whole words (ignoring case and spacing) or when its stemmed
// tokens occur as a contiguous run of stemmed sentence tokens.
//
// Concepts the termbase itself recognized in the sentence can be added with
// WithTermHits; Matches accepts them regardless of the local matching.
type Detector struct {
	text     string
	language string
	stems    []string
	hits     map[string]bool
}

// NewDetector prepares text for matching. langCode is a profile language
// code such as "en-gb"; languages without a stemmer match verbatim only.
func NewDetector(text, langCode string) *Detector {
	d := &Detector{
		text:     domain.NormalizeText(text),
		language: stemmerLanguage(langCode),
	}
	d.stems = d.stemAll(tokenize(d.text))
	return d
}

// WithTermHits records the entries the termbase recognized in the sentence.
func (d *Detector) WithTermHits(hits []domain.TermHit) *Detector {
	if len(hits) == 0 {
		return d
	}
	if d.hits == nil {
		d.hits = make(map[string]bool, len(hits))
	}
	for _, h := range hits {
		d.hits[h.EntryID] = true
	}
	return d
}

// Matches reports whether the concept entryID, anchored by term, occurs in
// the sentence: as a termbase hit or through Contains.
func (d *Detector) Matches(entryID, term string) bool {
	return d.hits[entryID] || d.Contains(term)
}

// Contains reports whether term occurs in the sentence.
func (d *Detector) Contains(term string) bool {
	term = domain.NormalizeText(term)
	if term == "" {
		return false
	}
	if containsWord(d.text, term) {
		return true
	}
	if d.language == "" {
		return false
	}

	want := d.stemAll(tokenize(term))
	if len(want) == 0 || len(want) > len(d.stems) {
		return false
	}
	for i := 0; i+len(want) <= len(d.stems); i++ {
		if equalRun(d.stems[i:i+len(want)], want) {
			return true
		}
	}
	return false
}

func (d *Detector) stemAll(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, d.stem(tok))
	}
	return out
}

func (d *Detector) stem(word string) string {
	if d.language == "" {
		return word
	}
	stemmed, err := snowball.Stem(word, d.language, true)
	if err != nil {
		return word
	}
	return stemmed
}

// tokenize splits text into word tokens, dropping punctuation.
func tokenize(text string) []string {
	if text == "" {
		return nil
	}
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return strings.FieldsFunc(text, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
	}

	var out []string
	for _, tok := range doc.Tokens() {
		if strings.IndexFunc(tok.Text, func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r)
		}) < 0 {
			continue
		}
		out = append(out, tok.Text)
	}
	return out
}

// containsWord reports whether term occurs in text without a letter or
// digit glued to either end. "art" is not found in "start".
func containsWord(text, term string) bool {
	for offset := 0; ; {
		i := strings.Index(text[offset:], term)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(term)
		if wordEdge(text[:start], term, true) && wordEdge(text[end:], term, false) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
}

// wordEdge checks one side of a match. A term edge that is itself
// punctuation needs no boundary.
func wordEdge(rest, term string, before bool) bool {
	var outer, inner rune
	if before {
		outer, _ = utf8.DecodeLastRuneInString(rest)
		inner, _ = utf8.DecodeRuneInString(term)
	} else {
		outer, _ = utf8.DecodeRuneInString(rest)
		inner, _ = utf8.DecodeLastRuneInString(term)
	}
	if rest == "" || !isWordRune(inner) {
		return true
	}
	return !isWordRune(outer)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func stemmerLanguage(code string) string {
	prefix, _, _ := strings.Cut(strings.ToLower(code), "-")
	return snowballLanguages[prefix]
}

func equalRun(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
