package normalize

import "testing"

func TestCleanValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "torque wrench", "torque wrench"},
		{"trimmed", "  nut \n", "nut"},
		{"subscript", "H<sub>2</sub>O", "H₂O"},
		{"superscript", "m<sup>3</sup>", "m³"},
		{"mixed markup", "<p>CO<sub>2</sub> <b>emission</b></p>", "CO₂ emission"},
		{"entities", "<i>Schrauben&amp;Muttern</i>", "Schrauben&Muttern"},
		{"comparison is not markup", "a < b", "a < b"},
		{"placeholder", "Drehmoment <M> in Nm", "Drehmoment <M> in Nm"},
		{"named placeholder", "Platzhalter <Name> einsetzen", "Platzhalter <Name> einsetzen"},
		{"brackets across words", "x<y and z>w", "x<y and z>w"},
		{"unknown tag with rich text", "<b>Wert</b> für <Name>", "Wert für <Name>"},
		{"subscript next to placeholder", "H<sub>2</sub>O bei <T>", "H₂O bei <T>"},
		{"line break", "erste Zeile<br/>zweite Zeile", "erste Zeile zweite Zeile"},
		{"tag name prefix is not a tag", "<bold> text", "<bold> text"},
		{"decomposed umlaut", "Mu\u0308tter", "M\u00fctter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CleanValue(tt.in); got != tt.want {
				t.Errorf("CleanValue(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
