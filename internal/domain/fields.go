package domain

import (
	"bytes"
	"encoding/json"
)

// Canonical attribute and field names shared by both parsers.
const (
	AttrUsageStatus = "usage_status"
	AttrUsageNote   = "usage_note"
	FieldDefinition = "definition"
)

// Field is one named scalar value.
type Field struct {
	Name  string
	Value string
}

// Fields is an insertion-ordered list of uniquely named values.
// Render order follows insertion order, so a plain map is not enough.
type Fields []Field

// Get returns the value stored under name.
func (f Fields) Get(name string) (string, bool) {
	for _, fld := range f {
		if fld.Name == name {
			return fld.Value, true
		}
	}
	return "", false
}

// Has reports whether name is present.
func (f Fields) Has(name string) bool {
	_, ok := f.Get(name)
	return ok
}

// Set overwrites the value of an existing field in place or appends a new one.
func (f *Fields) Set(name, value string) {
	for i := range *f {
		if (*f)[i].Name == name {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Name: name, Value: value})
}

// SetIfAbsent appends name only when it is not present yet.
// Returns false if the field already existed.
func (f *Fields) SetIfAbsent(name, value string) bool {
	if f.Has(name) {
		return false
	}
	*f = append(*f, Field{Name: name, Value: value})
	return true
}

// Without returns a copy of f without the named field.
func (f Fields) Without(name string) Fields {
	out := make(Fields, 0, len(f))
	for _, fld := range f {
		if fld.Name != name {
			out = append(out, fld)
		}
	}
	return out
}

// Clone returns an independent copy.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	copy(out, f)
	return out
}

// MarshalJSON encodes the fields as a JSON object preserving order.
func (f Fields) MarshalJSON() ([]byte, error) {
	obj := make(orderedObject, 0, len(f))
	for _, fld := range f {
		obj = append(obj, member{Key: fld.Name, Value: fld.Value})
	}
	return obj.MarshalJSON()
}

// member is one key of an orderedObject.
type member struct {
	Key   string
	Value any
}

// orderedObject is a JSON object whose keys keep their insertion order.
type orderedObject []member

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
