package normalize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/termtag/internal/domain"
	"github.com/heartmarshall/termtag/internal/profile"
)

func mustProfile(t *testing.T, id int) profile.Profile {
	t.Helper()
	p, err := profile.Default().Lookup(id)
	require.NoError(t, err)
	return p
}

const bilingualXML = `<?xml version="1.0" encoding="UTF-8"?>
<kalciumEntries>
  <e>
    <id id="1001"/>
    <f n="subject" v="tools"/>
    <f n="subject" v="ignored duplicate"/>
    <f n="definition" v="concept level"/>
    <l lid="306">
      <f n="definition" v="a hand tool"/>
      <f n="source" v="ISO 1703"/>
      <t t="wrench"/>
      <t t="spanner"/>
    </l>
    <l lid="352">
      <f n="definition" v="ein Handwerkzeug"/>
      <t t="Schraubenschlüssel">
        <f n="Usage" v="Allowed"/>
      </t>
      <t t="Schraubschlüssel">
        <f n="usage note" v="colloquial"/>
        <f n="Usage" v="Forbidden"/>
        <f n="gender" v="m"/>
      </t>
    </l>
  </e>
</kalciumEntries>`

func TestParseXML_Bilingual(t *testing.T) {
	t.Parallel()

	res, err := ParseXML(bilingualXML, profile.LangEnglishGB, profile.LangGermanAT, mustProfile(t, 7))
	require.NoError(t, err)
	require.Equal(t, 1, res.Len())
	assert.Empty(t, res.Dropped)

	e, ok := res.Table.Get("1001")
	require.True(t, ok)

	// Target-language fields overwrite entry fields; source fields only fill gaps.
	assert.Equal(t, domain.Fields{
		{Name: "subject", Value: "tools"},
		{Name: "definition", Value: "ein Handwerkzeug"},
		{Name: "source", Value: "ISO 1703"},
	}, e.Fields)

	require.Len(t, e.Terms, 1, "only the first source term anchors the entry")
	g := e.Terms[0]
	assert.Equal(t, "wrench", g.Source)
	assert.Equal(t, []domain.TargetTerm{
		{Term: "Schraubenschlüssel", Attributes: domain.Fields{{Name: "usage_status", Value: "Allowed"}}},
		{Term: "Schraubschlüssel", Attributes: domain.Fields{
			{Name: "usage_note", Value: "colloquial"},
			{Name: "usage_status", Value: "Forbidden"},
			{Name: "gender", Value: "m"},
		}},
	}, g.Targets)
}

func TestParseXML_Empty(t *testing.T) {
	t.Parallel()

	res, err := ParseXML("  \n", 306, 352, mustProfile(t, 7))
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestParseXML_EmptyRoot(t *testing.T) {
	t.Parallel()

	res, err := ParseXML("<kalciumEntries/>", 306, 352, mustProfile(t, 7))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 0, res.Len())
}

func TestParseXML_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"unclosed element", "<kalciumEntries><e>"},
		{"not xml", "no information"},
		{"bad lid", `<r><e><id id="1"/><l lid="en"><t t="x"/></l></e></r>`},
		{"term without text", `<r><e><id id="1"/><l lid="306"><t/></l></e></r>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseXML(tt.doc, 306, 352, mustProfile(t, 7))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrMalformedInput), "got %v", err)
		})
	}
}

func TestParseXML_DropsIncompleteEntries(t *testing.T) {
	t.Parallel()

	doc := `<kalciumEntries>
  <e><l lid="306"><t t="orphan"/></l><l lid="352"><t t="Waise"/></l></e>
  <e><id id="2"/><l lid="306"><t t="bolt"/></l></e>
  <e><id id="3"/><l lid="352"><t t="Mutter"/></l></e>
  <e><id id="4"/><l lid="306"><f n="note" v="x"/></l><l lid="352"><t t="Scheibe"/></l></e>
  <e><id id="5"/><l lid="306"><t t="nut"/></l><l lid="352"><t t="Mutter"/></l></e>
</kalciumEntries>`

	res, err := ParseXML(doc, 306, 352, mustProfile(t, 7))
	require.NoError(t, err)

	require.Equal(t, 1, res.Len())
	_, ok := res.Table.Get("5")
	assert.True(t, ok)

	assert.Equal(t, []Drop{
		{EntryID: "", Reason: DropMissingID},
		{EntryID: "2", Reason: DropMissingTargetLanguage},
		{EntryID: "3", Reason: DropMissingSourceLanguage},
		{EntryID: "4", Reason: DropMissingAnchor},
	}, res.Dropped)
}

func TestParseXML_DuplicateIDDropRemovesWholeEntry(t *testing.T) {
	t.Parallel()

	doc := `<r>
  <e><id id="9"/><l lid="306"><t t="nut"/></l><l lid="352"><t t="Mutter"/></l></e>
  <e><id id="9"/><l lid="306"><t t="nut"/></l></e>
</r>`

	res, err := ParseXML(doc, 306, 352, mustProfile(t, 7))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Len())
	require.Len(t, res.Dropped, 1)
	assert.Equal(t, "9", res.Dropped[0].EntryID)
}

func TestParseXML_Monolingual(t *testing.T) {
	t.Parallel()

	doc := `<kalciumEntries>
  <e>
    <id id="77"/>
    <l lid="314">
      <t t="Drehmomentschlüssel"><f n="usageStatus" v="preferred"/></t>
      <t t="Drehmoschlüssel"><f n="usageStatus" v="admitted"/><f n="note" v="Werkstattjargon"/></t>
      <t t="Momentschlüssel"><f n="usageStatus" v="deprecated"/></t>
    </l>
  </e>
</kalciumEntries>`

	res, err := ParseXML(doc, profile.LangGermanDE, profile.LangGermanDE, mustProfile(t, 17))
	require.NoError(t, err)

	e, ok := res.Table.Get("77")
	require.True(t, ok)
	require.Len(t, e.Terms, 1)
	assert.Equal(t, "Drehmomentschlüssel", e.Terms[0].Source, "head term anchors the synonym set")
	require.Len(t, e.Terms[0].Targets, 3)
	assert.Equal(t, domain.Fields{
		{Name: "usage_status", Value: "admitted"},
		{Name: "usage_note", Value: "Werkstattjargon"},
	}, e.Terms[0].Targets[1].Attributes)
}

func TestParseXML_CleansMarkup(t *testing.T) {
	t.Parallel()

	doc := `<r><e><id id="1"/>
  <l lid="306"><f n="definition" v="the compound H&lt;sub&gt;2&lt;/sub&gt;O"/><t t="water"/></l>
  <l lid="352"><t t="Wasser"/></l>
</e></r>`

	res, err := ParseXML(doc, 306, 352, mustProfile(t, 7))
	require.NoError(t, err)

	e, ok := res.Table.Get("1")
	require.True(t, ok)
	def, ok := e.Fields.Get(domain.FieldDefinition)
	require.True(t, ok)
	assert.Equal(t, "the compound H₂O", def)
}
