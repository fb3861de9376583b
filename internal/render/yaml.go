package render

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/termtag/internal/domain"
)

// The YAML layout is display text, not an encoder output: consumers read
// it as-is, so indentation must stay byte-exact.

func yamlTranslation(b *strings.Builder, table domain.TranslationTable) {
	for _, e := range table {
		fmt.Fprintf(b, "concept %s:\n", e.ID)
		for _, f := range e.Fields {
			fmt.Fprintf(b, "  - %s: %s\n", f.Name, f.Value)
		}
		for _, g := range e.Terms {
			fmt.Fprintf(b, "  - source_term: %s\n", g.Source)
			for i, t := range g.Targets {
				fmt.Fprintf(b, "    - target_term %d: %s\n", i+1, t.Term)
				for _, a := range t.Attributes {
					fmt.Fprintf(b, "     - %s: %s\n", a.Name, a.Value)
				}
			}
		}
		b.WriteString("\n")
	}
}

func yamlRevision(b *strings.Builder, table domain.RevisionTable) {
	for _, e := range table {
		fmt.Fprintf(b, "concept %s:\n", e.ID)
		for _, f := range e.Fields {
			fmt.Fprintf(b, "  - %s: %s\n", f.Name, f.Value)
		}
		for _, g := range e.Terms {
			for _, c := range domain.UsageClasses() {
				terms := g.Buckets.Bucket(c)
				if len(terms) == 0 {
					continue
				}
				fmt.Fprintf(b, "  - %s:\n", c.BucketName())
				for i, t := range terms {
					fmt.Fprintf(b, "    - term %d: %s\n", i+1, t.Term)
					for _, a := range t.Attributes {
						fmt.Fprintf(b, "     - %s: %s\n", a.Name, a.Value)
					}
				}
			}
		}
		b.WriteString("\n")
	}
}
