package domain

// TranslationEntry is one concept of the "find translations" view.
type TranslationEntry struct {
	ID     string
	Fields Fields
	Terms  []TermGroup
}

// TargetCount returns the number of target terms across all groups.
func (e TranslationEntry) TargetCount() int {
	n := 0
	for _, g := range e.Terms {
		n += len(g.Targets)
	}
	return n
}

// TranslationTable is the Derived Translation Entry Table in concept order.
type TranslationTable []TranslationEntry

// MarshalJSON encodes the table as {"<id>": {"terms": ..., "fields": ...}}.
func (t TranslationTable) MarshalJSON() ([]byte, error) {
	obj := make(orderedObject, 0, len(t))
	for _, e := range t {
		entry := &Entry{ID: e.ID, Fields: e.Fields, Terms: e.Terms}
		obj = append(obj, member{Key: e.ID, Value: entry})
	}
	return obj.MarshalJSON()
}

// RevisionBuckets groups a synonym set by usage class.
type RevisionBuckets struct {
	Preferred []TargetTerm
	Allowed   []TargetTerm
	Forbidden []TargetTerm
}

// Bucket returns the bucket for the given class.
func (b RevisionBuckets) Bucket(c UsageClass) []TargetTerm {
	switch c {
	case UsageClassPreferred:
		return b.Preferred
	case UsageClassAllowed:
		return b.Allowed
	case UsageClassForbidden:
		return b.Forbidden
	}
	return nil
}

// Add appends t to the bucket of class c.
func (b *RevisionBuckets) Add(c UsageClass, t TargetTerm) {
	switch c {
	case UsageClassPreferred:
		b.Preferred = append(b.Preferred, t)
	case UsageClassAllowed:
		b.Allowed = append(b.Allowed, t)
	case UsageClassForbidden:
		b.Forbidden = append(b.Forbidden, t)
	}
}

// IsEmpty reports whether no bucket holds a term.
func (b RevisionBuckets) IsEmpty() bool {
	return len(b.Preferred) == 0 && len(b.Allowed) == 0 && len(b.Forbidden) == 0
}

// MarshalJSON encodes only the non-empty buckets, keyed "<class> terms".
func (b RevisionBuckets) MarshalJSON() ([]byte, error) {
	obj := make(orderedObject, 0, 3)
	for _, c := range UsageClasses() {
		if terms := b.Bucket(c); len(terms) > 0 {
			obj = append(obj, member{Key: c.BucketName(), Value: terms})
		}
	}
	return obj.MarshalJSON()
}

// RevisionGroup binds an anchor term to its bucketed synonym set.
type RevisionGroup struct {
	Source  string
	Buckets RevisionBuckets
}

// RevisionEntry is one concept of the monolingual "check terminology" view.
type RevisionEntry struct {
	ID     string
	Fields Fields
	Terms  []RevisionGroup
}

// RevisionTable is the Derived Revision Entry Table in concept order.
type RevisionTable []RevisionEntry

// MarshalJSON encodes the table as {"<id>": {"terms": ..., "fields": ...}}.
func (t RevisionTable) MarshalJSON() ([]byte, error) {
	obj := make(orderedObject, 0, len(t))
	for _, e := range t {
		terms := make(orderedObject, 0, len(e.Terms))
		for _, g := range e.Terms {
			terms = append(terms, member{Key: g.Source, Value: g.Buckets})
		}
		fields := e.Fields
		if fields == nil {
			fields = Fields{}
		}
		obj = append(obj, member{Key: e.ID, Value: orderedObject{
			{Key: "terms", Value: terms},
			{Key: "fields", Value: fields},
		}})
	}
	return obj.MarshalJSON()
}
