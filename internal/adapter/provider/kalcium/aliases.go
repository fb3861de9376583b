package kalcium

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
)

// FieldAliases returns the field name to display alias map of a termbase.
// Answers are cached per termbase id; callers get a copy.
func (c *Client) FieldAliases(ctx context.Context, termbaseID int) (map[string]string, error) {
	if cached, ok := c.aliases.Get(termbaseID); ok {
		return maps.Clone(cached), nil
	}

	var defs []map[string]any
	if err := c.getJSON(ctx, "/kalcrest/lts/terminology/termbases/definition/v1?"+repeatParam("ids", []int{termbaseID}), &defs); err != nil {
		return nil, fmt.Errorf("kalcium: field aliases: %w", err)
	}

	aliases := make(map[string]string)
	for _, def := range defs {
		collectAliases("root", def, aliases)
	}
	c.aliases.Add(termbaseID, aliases)

	c.log.DebugContext(ctx, "kalcium field aliases",
		slog.Int("termbase_id", termbaseID),
		slog.Int("count", len(aliases)),
	)
	return maps.Clone(aliases), nil
}

// collectAliases walks a termbase definition. List items inherit their
// parent key with a "List" suffix, so an object inside "fieldDefinitions"
// is visited as "fieldDefinitionsList".
func collectAliases(parent string, node any, out map[string]string) {
	switch v := node.(type) {
	case map[string]any:
		if parent == "fieldDefinitionsList" || parent == "termFieldDefinitionsList" {
			if name, ok := v["name"].(string); ok && name != "" {
				alias, _ := v["alias"].(string)
				if alias == "" {
					alias = name
				}
				out[name] = alias
			}
		}
		for key, child := range v {
			collectAliases(key, child, out)
		}
	case []any:
		for _, item := range v {
			collectAliases(parent+"List", item, out)
		}
	}
}
