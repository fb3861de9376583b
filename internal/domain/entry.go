package domain

// TargetTerm is one term record in the target language together with
// its term-level attributes (usage_note, usage_status and any other field).
type TargetTerm struct {
	Term       string
	Attributes Fields
}

// MarshalJSON encodes the record as {"<term>": {attributes}}.
func (t TargetTerm) MarshalJSON() ([]byte, error) {
	attrs := t.Attributes
	if attrs == nil {
		attrs = Fields{}
	}
	return orderedObject{{Key: t.Term, Value: attrs}}.MarshalJSON()
}

// TermGroup binds an anchor source term to its ordered target terms.
// The first target is the head term of the group.
type TermGroup struct {
	Source  string
	Targets []TargetTerm
}

// Entry is one terminological concept in canonical form.
type Entry struct {
	ID     string
	Fields Fields
	Terms  []TermGroup
}

// Group returns the term group anchored at source.
func (e *Entry) Group(source string) (*TermGroup, bool) {
	for i := range e.Terms {
		if e.Terms[i].Source == source {
			return &e.Terms[i], true
		}
	}
	return nil, false
}

// SetTargets replaces the targets anchored at source, keeping the
// group's original position if it already exists.
func (e *Entry) SetTargets(source string, targets []TargetTerm) {
	if g, ok := e.Group(source); ok {
		g.Targets = targets
		return
	}
	e.Terms = append(e.Terms, TermGroup{Source: source, Targets: targets})
}

// AppendTargets extends the targets anchored at source.
func (e *Entry) AppendTargets(source string, targets []TargetTerm) {
	if g, ok := e.Group(source); ok {
		g.Targets = append(g.Targets, targets...)
		return
	}
	e.Terms = append(e.Terms, TermGroup{Source: source, Targets: append([]TargetTerm{}, targets...)})
}

// FirstSource returns the anchor of the first term group, if any.
func (e *Entry) FirstSource() string {
	if len(e.Terms) == 0 {
		return ""
	}
	return e.Terms[0].Source
}

// MarshalJSON encodes the entry as {"terms": {...}, "fields": {...}}.
func (e *Entry) MarshalJSON() ([]byte, error) {
	terms := make(orderedObject, 0, len(e.Terms))
	for _, g := range e.Terms {
		targets := g.Targets
		if targets == nil {
			targets = []TargetTerm{}
		}
		terms = append(terms, member{Key: g.Source, Value: targets})
	}
	fields := e.Fields
	if fields == nil {
		fields = Fields{}
	}
	return orderedObject{
		{Key: "terms", Value: terms},
		{Key: "fields", Value: fields},
	}.MarshalJSON()
}

// EntryTable is the Canonical Entry Table: entries keyed by id in
// first-seen order. A nil *EntryTable means "no input".
type EntryTable struct {
	entries []*Entry
	index   map[string]int
}

// NewEntryTable creates an empty table.
func NewEntryTable() *EntryTable {
	return &EntryTable{index: make(map[string]int)}
}

// Get returns the entry with the given id.
func (t *EntryTable) Get(id string) (*Entry, bool) {
	if t == nil {
		return nil, false
	}
	i, ok := t.index[id]
	if !ok {
		return nil, false
	}
	return t.entries[i], true
}

// GetOrCreate returns the entry with the given id, creating it at the end
// of the table on first use.
func (t *EntryTable) GetOrCreate(id string) *Entry {
	if e, ok := t.Get(id); ok {
		return e
	}
	e := &Entry{ID: id}
	t.index[id] = len(t.entries)
	t.entries = append(t.entries, e)
	return e
}

// Remove deletes the entry with the given id.
func (t *EntryTable) Remove(id string) {
	i, ok := t.index[id]
	if !ok {
		return
	}
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
	delete(t.index, id)
	for j := i; j < len(t.entries); j++ {
		t.index[t.entries[j].ID] = j
	}
}

// Entries returns the entries in table order.
func (t *EntryTable) Entries() []*Entry {
	if t == nil {
		return nil
	}
	return t.entries
}

// Len returns the number of entries. A nil table has length 0.
func (t *EntryTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// MarshalJSON encodes the table as an object keyed by entry id.
func (t *EntryTable) MarshalJSON() ([]byte, error) {
	obj := make(orderedObject, 0, t.Len())
	for _, e := range t.Entries() {
		obj = append(obj, member{Key: e.ID, Value: e})
	}
	return obj.MarshalJSON()
}

// TermHit is a term the termbase recognized in a source text, with the id
// of the concept it belongs to.
type TermHit struct {
	EntryID string `json:"entry_id"`
	Term    string `json:"term"`
}
