package normalize

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/termtag/internal/domain"
	"github.com/heartmarshall/termtag/internal/profile"
	"github.com/heartmarshall/termtag/internal/provider"
)

func decodeRecords(t *testing.T, raw string) []provider.Record {
	t.Helper()
	var recs []provider.Record
	require.NoError(t, json.Unmarshal([]byte(raw), &recs))
	return recs
}

func TestParseJSON_Bilingual(t *testing.T) {
	t.Parallel()

	recs := decodeRecords(t, `[
		{
			"en-gb_term_1": "torque wrench",
			"en-gb_term_2": "torque spanner",
			"en-gb_definition": "wrench that applies a set torque",
			"de-de_term_1": "Drehmomentschlüssel",
			"de-de_term_1_usageStatus": "preferred",
			"de-de_term_2": "Drehmoschlüssel",
			"de-de_term_2_note": "Werkstattjargon",
			"de-de_term_2_usageStatus": "deprecated"
		},
		{
			"en-gb_term_1": "nut",
			"de-de_term_1": "Mutter"
		}
	]`)

	res, err := ParseJSON(recs, profile.LangEnglishGB, profile.LangGermanDE, mustProfile(t, 17))
	require.NoError(t, err)
	require.Equal(t, 2, res.Len())

	e, ok := res.Table.Get("0")
	require.True(t, ok)
	assert.Equal(t, domain.Fields{{Name: "definition", Value: "wrench that applies a set torque"}}, e.Fields)
	require.Len(t, e.Terms, 1)
	assert.Equal(t, "torque wrench", e.Terms[0].Source)
	assert.Equal(t, []domain.TargetTerm{
		{Term: "Drehmomentschlüssel", Attributes: domain.Fields{{Name: "usage_status", Value: "preferred"}}},
		{Term: "Drehmoschlüssel", Attributes: domain.Fields{
			{Name: "usage_note", Value: "Werkstattjargon"},
			{Name: "usage_status", Value: "deprecated"},
		}},
	}, e.Terms[0].Targets)

	e, ok = res.Table.Get("1")
	require.True(t, ok)
	assert.Empty(t, e.Fields, "no definition, no fields")
	assert.Equal(t, "nut", e.FirstSource())
}

func TestParseJSON_DefinitionFallsBackToSourceLanguage(t *testing.T) {
	t.Parallel()

	recs := decodeRecords(t, `[{
		"en-gb_term_1": "washer",
		"en-gb_definition": "thin plate with a hole",
		"de-de_term_1": "Unterlegscheibe"
	}]`)

	res, err := ParseJSON(recs, profile.LangEnglishGB, profile.LangGermanDE, mustProfile(t, 17))
	require.NoError(t, err)

	e, ok := res.Table.Get("0")
	require.True(t, ok)
	def, ok := e.Fields.Get(domain.FieldDefinition)
	require.True(t, ok)
	assert.Equal(t, "thin plate with a hole", def)
}

func TestParseJSON_EmptyTargetDefinitionDoesNotFallBack(t *testing.T) {
	t.Parallel()

	recs := decodeRecords(t, `[{
		"en-gb_term_1": "washer",
		"en-gb_definition": "thin plate with a hole",
		"de-de_definition": "",
		"de-de_term_1": "Unterlegscheibe"
	}]`)

	res, err := ParseJSON(recs, profile.LangEnglishGB, profile.LangGermanDE, mustProfile(t, 17))
	require.NoError(t, err)

	e, _ := res.Table.Get("0")
	assert.False(t, e.Fields.Has(domain.FieldDefinition))
}

func TestParseJSON_ConceptScopedDefinition(t *testing.T) {
	t.Parallel()

	recs := decodeRecords(t, `[{
		"definition": "fastener with internal thread",
		"en-gb_term_1": "nut",
		"de-at_term_1": "Mutter"
	}]`)

	res, err := ParseJSON(recs, profile.LangEnglishGB, profile.LangGermanAT, mustProfile(t, 7))
	require.NoError(t, err)

	e, _ := res.Table.Get("0")
	assert.Equal(t, domain.Fields{{Name: "definition", Value: "fastener with internal thread"}}, e.Fields)
}

func TestParseJSON_SkipsForbiddenSourceTerms(t *testing.T) {
	t.Parallel()

	recs := decodeRecords(t, `[{
		"en-gb_term_1": "spanner",
		"en-gb_term_1_Usage": "Forbidden",
		"en-gb_term_2": "wrench",
		"de-at_term_1": "Schraubenschlüssel"
	}]`)

	res, err := ParseJSON(recs, profile.LangEnglishGB, profile.LangGermanAT, mustProfile(t, 7))
	require.NoError(t, err)

	e, _ := res.Table.Get("0")
	assert.Equal(t, "wrench", e.FirstSource())
}

func TestParseJSON_NoSourceTermIsMalformed(t *testing.T) {
	t.Parallel()

	recs := decodeRecords(t, `[{"de-at_term_1": "Mutter"}]`)

	_, err := ParseJSON(recs, profile.LangEnglishGB, profile.LangGermanAT, mustProfile(t, 7))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedInput))
	assert.Contains(t, err.Error(), "record 0")
}

func TestParseJSON_UnknownLanguage(t *testing.T) {
	t.Parallel()

	recs := decodeRecords(t, `[{"en-gb_term_1": "nut"}]`)

	_, err := ParseJSON(recs, profile.LangEnglishGB, 999, mustProfile(t, 17))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidRequest))
}

func TestParseJSON_Empty(t *testing.T) {
	t.Parallel()

	res, err := ParseJSON(nil, 306, 314, mustProfile(t, 17))
	require.NoError(t, err)
	assert.Nil(t, res)
}
