package domain

// Task selects which derived view the pipeline builds.
type Task string

const (
	TaskTranslation Task = "translation"
	TaskRevision    Task = "revision"
)

func (t Task) String() string { return string(t) }

func (t Task) IsValid() bool {
	switch t {
	case TaskTranslation, TaskRevision:
		return true
	}
	return false
}

// Format selects the rendered text layout.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatYAML     Format = "yaml"
	// FormatUnchanged returns the raw termbase payload without normalization.
	FormatUnchanged Format = "unchanged"
)

func (f Format) String() string { return string(f) }

func (f Format) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatYAML, FormatUnchanged:
		return true
	}
	return false
}

// DefinitionScope tells where a profile stores its definition field.
type DefinitionScope string

const (
	DefinitionScopeConcept  DefinitionScope = "concept"
	DefinitionScopeLanguage DefinitionScope = "language"
)

func (s DefinitionScope) String() string { return string(s) }

func (s DefinitionScope) IsValid() bool {
	switch s {
	case DefinitionScopeConcept, DefinitionScopeLanguage:
		return true
	}
	return false
}

// UsageClass is the normalized usage status of a term.
type UsageClass string

const (
	UsageClassPreferred UsageClass = "preferred"
	UsageClassAllowed   UsageClass = "allowed"
	UsageClassForbidden UsageClass = "forbidden"
)

func (c UsageClass) String() string { return string(c) }

func (c UsageClass) IsValid() bool {
	switch c {
	case UsageClassPreferred, UsageClassAllowed, UsageClassForbidden:
		return true
	}
	return false
}

// BucketName is the key used for the class in revision output, e.g. "preferred terms".
func (c UsageClass) BucketName() string { return string(c) + " terms" }

// UsageClasses returns the classes in rendering order.
func UsageClasses() []UsageClass {
	return []UsageClass{UsageClassPreferred, UsageClassAllowed, UsageClassForbidden}
}
