package normalize

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/heartmarshall/termtag/internal/domain"
	"github.com/heartmarshall/termtag/internal/profile"
)

// xmlEntry is one <e> element of the retrieval dialect.
type xmlEntry struct {
	ID        *xmlID        `xml:"id"`
	Fields    []xmlField    `xml:"f"`
	Languages []xmlLanguage `xml:"l"`
}

type xmlID struct {
	Value string `xml:"id,attr"`
}

type xmlField struct {
	Name  *string `xml:"n,attr"`
	Value string  `xml:"v,attr"`
}

type xmlLanguage struct {
	LID    *string    `xml:"lid,attr"`
	Fields []xmlField `xml:"f"`
	Terms  []xmlTerm  `xml:"t"`
}

type xmlTerm struct {
	Text   *string    `xml:"t,attr"`
	Fields []xmlField `xml:"f"`
}

// ParseXML builds the canonical table from the attribute-based XML dialect.
// It returns nil, nil for empty input.
//
// Entries without an id, without fields for the source or target language,
// or without an anchor term are left out and reported in Result.Dropped.
// Only the first source term of an entry anchors its target terms.
func ParseXML(doc string, sourceLang, targetLang int, p profile.Profile) (*Result, error) {
	if strings.TrimSpace(doc) == "" {
		return nil, nil
	}

	res := &Result{Table: domain.NewEntryTable()}
	names := newFieldNames(p)

	dec := xml.NewDecoder(strings.NewReader(doc))
	sawRoot := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.NewMalformedInput("xml", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawRoot = true
		if start.Name.Local != "e" {
			continue
		}

		var e xmlEntry
		if err := dec.DecodeElement(&e, &start); err != nil {
			return nil, domain.NewMalformedInput("xml", err)
		}
		drop, err := addXMLEntry(res.Table, e, sourceLang, targetLang, names)
		if err != nil {
			return nil, err
		}
		if drop != nil {
			res.Dropped = append(res.Dropped, *drop)
		}
	}

	if !sawRoot {
		return nil, domain.NewMalformedInput("xml", errors.New("no root element"))
	}
	return res, nil
}

func addXMLEntry(table *domain.EntryTable, e xmlEntry, sourceLang, targetLang int, names fieldNames) (*Drop, error) {
	if e.ID == nil || e.ID.Value == "" {
		return &Drop{Reason: DropMissingID}, nil
	}
	id := e.ID.Value
	entry := table.GetOrCreate(id)

	for _, f := range e.Fields {
		if f.Name == nil {
			continue
		}
		entry.Fields.SetIfAbsent(names.field(*f.Name), CleanValue(f.Value))
	}

	var (
		sources []string
		targets []domain.TargetTerm
	)
	langFields := make(map[int]domain.Fields)

	for _, l := range e.Languages {
		if l.LID == nil {
			return nil, domain.NewMalformedInput("xml", fmt.Errorf("entry %s: language without lid", id))
		}
		lid, err := strconv.Atoi(strings.TrimSpace(*l.LID))
		if err != nil {
			return nil, domain.NewMalformedInput("xml", fmt.Errorf("entry %s: lid %q: %w", id, *l.LID, err))
		}

		var fields domain.Fields
		for _, f := range l.Fields {
			if f.Name == nil {
				continue
			}
			fields.SetIfAbsent(names.field(*f.Name), CleanValue(f.Value))
		}
		langFields[lid] = fields

		for _, t := range l.Terms {
			if t.Text == nil {
				return nil, domain.NewMalformedInput("xml", fmt.Errorf("entry %s: term without text", id))
			}
			term := CleanValue(*t.Text)

			switch lid {
			case targetLang:
				var attrs domain.Fields
				for _, f := range t.Fields {
					if f.Name == nil {
						continue
					}
					attrs.SetIfAbsent(names.attribute(*f.Name), CleanValue(f.Value))
				}
				targets = append(targets, domain.TargetTerm{Term: term, Attributes: attrs})
			case sourceLang:
				sources = append(sources, term)
			}
		}
	}

	// In monolingual mode the head target term anchors the synonym set.
	if sourceLang == targetLang && len(targets) > 0 {
		sources = append(sources, targets[0].Term)
	}

	targetFields, ok := langFields[targetLang]
	if !ok {
		table.Remove(id)
		return &Drop{EntryID: id, Reason: DropMissingTargetLanguage}, nil
	}
	sourceFields, ok := langFields[sourceLang]
	if !ok {
		table.Remove(id)
		return &Drop{EntryID: id, Reason: DropMissingSourceLanguage}, nil
	}
	if len(sources) == 0 {
		table.Remove(id)
		return &Drop{EntryID: id, Reason: DropMissingAnchor}, nil
	}

	for _, f := range targetFields {
		entry.Fields.Set(f.Name, f.Value)
	}
	for _, f := range sourceFields {
		entry.Fields.SetIfAbsent(f.Name, f.Value)
	}
	entry.SetTargets(sources[0], targets)

	return nil, nil
}

// fieldNames maps a profile's raw field names to canonical ones.
type fieldNames struct {
	definition  string
	usageStatus string
	usageNote   string
}

func newFieldNames(p profile.Profile) fieldNames {
	return fieldNames{
		definition:  p.Definition.Field,
		usageStatus: p.UsageStatus.Field,
		usageNote:   p.UsageNote.Field,
	}
}

func (n fieldNames) field(name string) string {
	if name == n.definition {
		return domain.FieldDefinition
	}
	return name
}

func (n fieldNames) attribute(name string) string {
	switch name {
	case n.usageStatus:
		return domain.AttrUsageStatus
	case n.usageNote:
		return domain.AttrUsageNote
	}
	return name
}
