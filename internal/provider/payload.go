// Package provider defines what a termbase provider hands to the
// normalization pipeline.
package provider

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record is one flat JSON retrieval record.
type Record map[string]any

// Lookup returns the value stored under key as a string.
// Missing keys and JSON null report false.
func (r Record) Lookup(key string) (string, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}

// Kind tells which wire shape a payload carries.
type Kind int

const (
	KindXML Kind = iota
	KindJSON
)

func (k Kind) String() string {
	if k == KindJSON {
		return "json"
	}
	return "xml"
}

// RawPayload is the unparsed retrieval result: either an XML document
// or a list of flat JSON records.
type RawPayload struct {
	Kind    Kind
	XML     string
	Records []Record
}

// XMLPayload wraps an XML document.
func XMLPayload(doc string) RawPayload {
	return RawPayload{Kind: KindXML, XML: doc}
}

// JSONPayload wraps a list of flat records.
func JSONPayload(records []Record) RawPayload {
	return RawPayload{Kind: KindJSON, Records: records}
}

// IsEmpty reports whether the payload carries no data at all.
func (p RawPayload) IsEmpty() bool {
	if p.Kind == KindJSON {
		return len(p.Records) == 0
	}
	return strings.TrimSpace(p.XML) == ""
}

// Text returns the payload as text, re-encoding JSON records.
func (p RawPayload) Text() string {
	if p.Kind == KindXML {
		return p.XML
	}
	b, err := json.MarshalIndent(p.Records, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}
