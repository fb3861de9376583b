package normalize

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

var (
	subscriptDigits   = strings.NewReplacer("0", "₀", "1", "₁", "2", "₂", "3", "₃", "4", "₄", "5", "₅", "6", "₆", "7", "₇", "8", "₈", "9", "₉")
	superscriptDigits = strings.NewReplacer("0", "⁰", "1", "¹", "2", "²", "3", "³", "4", "⁴", "5", "⁵", "6", "⁶", "7", "⁷", "8", "⁸", "9", "⁹")
)

// richTagPattern matches the rich-text tags the termbase editor produces.
// Anything else in angle brackets is text: placeholders, formulas, names.
const richTagPattern = `(?i)</?(?:sub|sup|br|i|b|u|em|strong|span|p)(?:\s[^<>]*)?/?>`

var (
	richTag       = regexp.MustCompile(richTagPattern)
	richTagPrefix = regexp.MustCompile(`^` + richTagPattern)
)

// CleanValue turns a termbase field value into display text. Rich-text
// tags are reduced to their text, with <sub>/<sup> digits mapped to
// Unicode sub/superscripts (H<sub>2</sub>O becomes H₂O). Other text in
// angle brackets is kept as is.
func CleanValue(s string) string {
	s = strings.TrimSpace(s)
	if richTag.MatchString(s) {
		s = stripMarkup(s)
	}
	return norm.NFC.String(s)
}

func stripMarkup(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(escapeForeignTags(s)))
	if err != nil {
		return s
	}

	doc.Find("sub").Each(func(_ int, sel *goquery.Selection) {
		sel.ReplaceWithHtml(html.EscapeString(subscriptDigits.Replace(sel.Text())))
	})
	doc.Find("sup").Each(func(_ int, sel *goquery.Selection) {
		sel.ReplaceWithHtml(html.EscapeString(superscriptDigits.Replace(sel.Text())))
	})
	doc.Find("br").Each(func(_ int, sel *goquery.Selection) {
		sel.ReplaceWithHtml(" ")
	})

	return strings.TrimSpace(doc.Find("body").Text())
}

// escapeForeignTags escapes every '<' that does not open a rich-text tag,
// so the HTML parser reads it as text.
func escapeForeignTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '<' {
			b.WriteByte(s[i])
			i++
			continue
		}
		if m := richTagPrefix.FindString(s[i:]); m != "" {
			b.WriteString(m)
			i += len(m)
			continue
		}
		b.WriteString("&lt;")
		i++
	}
	return b.String()
}
