// Package render serializes derived entry tables into the text blocks
// injected into prompts: Markdown or hand-formatted YAML.
package render

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/termtag/internal/domain"
)

// EmptyText is rendered in place of an empty table.
const EmptyText = "No information found in termbase."

// Translation renders the "find translations" view.
func Translation(table domain.TranslationTable, format domain.Format, codeBlock bool) (string, error) {
	if len(table) == 0 {
		return EmptyText, nil
	}

	var b strings.Builder
	switch format {
	case domain.FormatMarkdown:
		markdownTranslation(&b, table)
	case domain.FormatYAML:
		yamlTranslation(&b, table)
	default:
		return "", unsupported(domain.TaskTranslation, format)
	}
	return finish(b.String(), format, codeBlock), nil
}

// Revision renders the monolingual "check terminology" view.
func Revision(table domain.RevisionTable, format domain.Format, codeBlock bool) (string, error) {
	if len(table) == 0 {
		return EmptyText, nil
	}

	var b strings.Builder
	switch format {
	case domain.FormatMarkdown:
		markdownRevision(&b, table)
	case domain.FormatYAML:
		yamlRevision(&b, table)
	default:
		return "", unsupported(domain.TaskRevision, format)
	}
	return finish(b.String(), format, codeBlock), nil
}

func finish(body string, format domain.Format, codeBlock bool) string {
	body = strings.TrimSpace(body)
	if !codeBlock {
		return body
	}
	return "```" + format.String() + "\n" + body + "\n```"
}

func unsupported(task domain.Task, format domain.Format) error {
	return domain.NewValidationError("format", fmt.Sprintf("%q cannot render a %s view", format, task))
}
