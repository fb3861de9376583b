package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/termtag/internal/domain"
)

func TestRevisions_Buckets(t *testing.T) {
	t.Parallel()

	tbl := domain.NewEntryTable()
	e := tbl.GetOrCreate("5")
	e.Fields.Set(domain.FieldDefinition, "Werkzeug zum Anziehen von Schrauben")
	e.SetTargets("Drehmomentschlüssel", []domain.TargetTerm{
		target("Drehmomentschlüssel", "preferred"),
		{Term: "Drehmoschlüssel", Attributes: domain.Fields{
			{Name: domain.AttrUsageStatus, Value: "admitted"},
			{Name: domain.AttrUsageNote, Value: "Werkstattjargon"},
		}},
		target("Momentschlüssel", "deprecated"),
		target("Drehschlüssel", "obsolete"),
		target("Knarre", ""),
	})

	got := Revisions(tbl, mustProfile(t, 17))

	require.Len(t, got, 1)
	assert.Equal(t, e.Fields, got[0].Fields)
	require.Len(t, got[0].Terms, 1)

	b := got[0].Terms[0].Buckets
	assert.Equal(t, []domain.TargetTerm{{Term: "Drehmomentschlüssel", Attributes: domain.Fields{}}}, b.Preferred)
	assert.Equal(t, []domain.TargetTerm{{Term: "Drehmoschlüssel", Attributes: domain.Fields{
		{Name: domain.AttrUsageNote, Value: "Werkstattjargon"},
	}}}, b.Allowed)
	assert.Equal(t, []domain.TargetTerm{{Term: "Momentschlüssel", Attributes: domain.Fields{}}}, b.Forbidden)

	for _, c := range domain.UsageClasses() {
		for _, tt := range b.Bucket(c) {
			assert.False(t, tt.Attributes.Has(domain.AttrUsageStatus), "usage_status must not survive bucketing")
		}
	}
}

func TestRevisions_ProfileWithoutPreferredToken(t *testing.T) {
	t.Parallel()

	tbl := domain.NewEntryTable()
	tbl.GetOrCreate("1").SetTargets("Mutter", []domain.TargetTerm{
		target("Mutter", "Preferred"),
		target("Schraubenmutter", "Allowed"),
	})

	got := Revisions(tbl, mustProfile(t, 8))

	b := got[0].Terms[0].Buckets
	assert.Empty(t, b.Preferred)
	assert.Len(t, b.Allowed, 1)
}
