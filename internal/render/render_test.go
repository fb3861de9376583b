package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/termtag/internal/domain"
)

func translationTable() domain.TranslationTable {
	return domain.TranslationTable{
		{
			ID:     "10",
			Fields: domain.Fields{{Name: "definition", Value: "tool for applying torque"}},
			Terms: []domain.TermGroup{{
				Source: "torque wrench",
				Targets: []domain.TargetTerm{
					{Term: "Drehmomentschlüssel", Attributes: domain.Fields{{Name: "usage_status", Value: "preferred"}}},
					{Term: "Drehmoschlüssel", Attributes: domain.Fields{
						{Name: "usage_note", Value: "Werkstattjargon"},
						{Name: "usage_status", Value: "admitted"},
					}},
				},
			}},
		},
		{
			ID:    "11",
			Terms: []domain.TermGroup{{Source: "nut", Targets: []domain.TargetTerm{{Term: "Mutter"}}}},
		},
	}
}

func revisionTable() domain.RevisionTable {
	return domain.RevisionTable{{
		ID:     "5",
		Fields: domain.Fields{{Name: "definition", Value: "Werkzeug"}},
		Terms: []domain.RevisionGroup{{
			Source: "Drehmomentschlüssel",
			Buckets: domain.RevisionBuckets{
				Preferred: []domain.TargetTerm{{Term: "Drehmomentschlüssel", Attributes: domain.Fields{}}},
				Forbidden: []domain.TargetTerm{{Term: "Momentschlüssel", Attributes: domain.Fields{
					{Name: "usage_note", Value: "veraltet"},
				}}},
			},
		}},
	}}
}

func TestTranslation_Markdown(t *testing.T) {
	t.Parallel()

	got, err := Translation(translationTable(), domain.FormatMarkdown, true)
	require.NoError(t, err)

	want := "```markdown\n" +
		"## Concept 10\n" +
		"* definition: tool for applying torque\n" +
		"### torque wrench\n" +
		"#### Possible translations:\n" +
		"1. Drehmomentschlüssel\n" +
		"\tusage_status: preferred\n" +
		"2. Drehmoschlüssel\n" +
		"\tusage_note: Werkstattjargon\n" +
		"\tusage_status: admitted\n" +
		"\n" +
		"## Concept 11\n" +
		"### nut\n" +
		"#### Possible translations:\n" +
		"1. Mutter\n" +
		"```"
	assert.Equal(t, want, got)
}

func TestTranslation_YAML(t *testing.T) {
	t.Parallel()

	got, err := Translation(translationTable(), domain.FormatYAML, false)
	require.NoError(t, err)

	want := "concept 10:\n" +
		"  - definition: tool for applying torque\n" +
		"  - source_term: torque wrench\n" +
		"    - target_term 1: Drehmomentschlüssel\n" +
		"     - usage_status: preferred\n" +
		"    - target_term 2: Drehmoschlüssel\n" +
		"     - usage_note: Werkstattjargon\n" +
		"     - usage_status: admitted\n" +
		"\n" +
		"concept 11:\n" +
		"  - source_term: nut\n" +
		"    - target_term 1: Mutter"
	assert.Equal(t, want, got)
}

func TestRevision_Markdown(t *testing.T) {
	t.Parallel()

	got, err := Revision(revisionTable(), domain.FormatMarkdown, true)
	require.NoError(t, err)

	want := "```markdown\n" +
		"## Concept 5\n" +
		"* definition: Werkzeug\n" +
		"### preferred terms:\n" +
		"1. Drehmomentschlüssel\n" +
		"### forbidden terms:\n" +
		"1. Momentschlüssel\n" +
		" * usage_note: veraltet\n" +
		"```"
	assert.Equal(t, want, got)
}

func TestRevision_YAML(t *testing.T) {
	t.Parallel()

	got, err := Revision(revisionTable(), domain.FormatYAML, true)
	require.NoError(t, err)

	want := "```yaml\n" +
		"concept 5:\n" +
		"  - definition: Werkzeug\n" +
		"  - preferred terms:\n" +
		"    - term 1: Drehmomentschlüssel\n" +
		"  - forbidden terms:\n" +
		"    - term 1: Momentschlüssel\n" +
		"     - usage_note: veraltet\n" +
		"```"
	assert.Equal(t, want, got)
}

func TestEmptyTableIsNotWrapped(t *testing.T) {
	t.Parallel()

	got, err := Translation(nil, domain.FormatMarkdown, true)
	require.NoError(t, err)
	assert.Equal(t, EmptyText, got)

	got, err = Revision(domain.RevisionTable{}, domain.FormatYAML, true)
	require.NoError(t, err)
	assert.Equal(t, EmptyText, got)
}

func TestUnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := Translation(translationTable(), domain.FormatUnchanged, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidRequest))
}

func TestHTML(t *testing.T) {
	t.Parallel()

	got := HTML("## Concept 10\n* definition: tool\n")
	assert.True(t, strings.Contains(got, "<h2"), got)
	assert.Contains(t, got, "<li>definition: tool</li>")
}
