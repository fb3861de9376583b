package normalize

import (
	"fmt"
	"strconv"

	"github.com/heartmarshall/termtag/internal/domain"
	"github.com/heartmarshall/termtag/internal/profile"
	"github.com/heartmarshall/termtag/internal/provider"
)

// ParseJSON builds the canonical table from flat JSON records whose keys
// look like "<lang>_term_<n>" and "<lang>_term_<n>_<field>". Entries are
// keyed by their 0-based position. It returns nil, nil for empty input.
//
// A record without a usable source term is malformed: the whole call fails.
func ParseJSON(records []provider.Record, sourceLang, targetLang int, p profile.Profile) (*Result, error) {
	if len(records) == 0 {
		return nil, nil
	}

	srcCode, ok := p.LanguageCode(sourceLang)
	if !ok {
		return nil, domain.NewValidationError("source_language_ids",
			fmt.Sprintf("language %d is not configured for profile %d", sourceLang, p.ID))
	}
	tgtCode, ok := p.LanguageCode(targetLang)
	if !ok {
		return nil, domain.NewValidationError("target_language_ids",
			fmt.Sprintf("language %d is not configured for profile %d", targetLang, p.ID))
	}

	res := &Result{Table: domain.NewEntryTable()}

	for idx, rec := range records {
		definition := jsonDefinition(rec, srcCode, tgtCode, p)

		var (
			sources []string
			targets []domain.TargetTerm
		)
		// Slot numbers are 1-based and bounded by the record size.
		for i := 1; i <= len(rec); i++ {
			slot := "_term_" + strconv.Itoa(i)

			if src := lookupClean(rec, srcCode+slot); src != "" {
				status, _ := rec.Lookup(srcCode + slot + "_" + p.UsageStatus.Field)
				if !p.IsForbidden(status) {
					sources = append(sources, src)
				}
			}

			tgt := lookupClean(rec, tgtCode+slot)
			if tgt == "" {
				continue
			}
			var attrs domain.Fields
			if note := lookupClean(rec, tgtCode+slot+"_"+p.UsageNote.Field); note != "" {
				attrs.Set(domain.AttrUsageNote, note)
			}
			if status := lookupClean(rec, tgtCode+slot+"_"+p.UsageStatus.Field); status != "" {
				attrs.Set(domain.AttrUsageStatus, status)
			}
			targets = append(targets, domain.TargetTerm{Term: tgt, Attributes: attrs})
		}

		if len(sources) == 0 {
			return nil, domain.NewMalformedInput("json",
				fmt.Errorf("record %d: no usable %s source term", idx, srcCode))
		}

		entry := res.Table.GetOrCreate(strconv.Itoa(idx))
		entry.AppendTargets(sources[0], targets)
		if definition != "" {
			entry.Fields = domain.Fields{{Name: domain.FieldDefinition, Value: definition}}
		}
	}

	return res, nil
}

// jsonDefinition resolves the definition of a record. Language-scoped
// definitions fall back to the source language only when the target
// language key is absent.
func jsonDefinition(rec provider.Record, srcCode, tgtCode string, p profile.Profile) string {
	switch p.Definition.Scope {
	case domain.DefinitionScopeConcept:
		return lookupClean(rec, p.Definition.Field)
	case domain.DefinitionScopeLanguage:
		if v, ok := rec.Lookup(tgtCode + "_" + p.Definition.Field); ok {
			return CleanValue(v)
		}
		return lookupClean(rec, srcCode+"_"+p.Definition.Field)
	}
	return ""
}

func lookupClean(rec provider.Record, key string) string {
	v, ok := rec.Lookup(key)
	if !ok {
		return ""
	}
	return CleanValue(v)
}
