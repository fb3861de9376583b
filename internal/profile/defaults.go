package profile

import "github.com/heartmarshall/termtag/internal/domain"

// Language ids used by the built-in profiles.
const (
	LangEnglishGB = 306
	LangItalian   = 309
	LangGermanDE  = 314
	LangCzech     = 318
	LangGermanAT  = 352
)

// Default returns the registry of the built-in retrieval profiles.
func Default() *Registry {
	r, err := NewRegistry(
		legacyProfile(7, "Preferred"),
		legacyProfile(8, ""),
		legacyProfile(15, ""),
		legacyProfile(16, ""),
		Profile{
			ID: 17,
			LanguageNames: map[string]int{
				"german":  LangGermanDE,
				"english": LangEnglishGB,
			},
			Languages: map[int]string{
				LangEnglishGB: "en-gb",
				LangGermanDE:  "de-de",
			},
			UsageStatus: UsageStatus{
				Field:     "usageStatus",
				Preferred: "preferred",
				Allowed:   "admitted",
				Forbidden: "deprecated",
			},
			Definition: Definition{Field: "definition", Scope: domain.DefinitionScopeLanguage},
			UsageNote:  UsageNote{Field: "note"},
		},
	)
	if err != nil {
		panic("profile: invalid built-in profile: " + err.Error())
	}
	return r
}

// legacyProfile builds the four-language profiles that share one schema.
// Only profile 7 knows a preferred token.
func legacyProfile(id int, preferred string) Profile {
	return Profile{
		ID: id,
		LanguageNames: map[string]int{
			"german":  LangGermanAT,
			"english": LangEnglishGB,
			"czech":   LangCzech,
			"italian": LangItalian,
		},
		Languages: map[int]string{
			LangEnglishGB: "en-gb",
			LangGermanAT:  "de-at",
			LangCzech:     "cs",
			LangItalian:   "it-it",
		},
		UsageStatus: UsageStatus{
			Field:     "Usage",
			Preferred: preferred,
			Allowed:   "Allowed",
			Forbidden: "Forbidden",
		},
		Definition: Definition{Field: "definition", Scope: domain.DefinitionScopeConcept},
		UsageNote:  UsageNote{Field: "usage note"},
	}
}
