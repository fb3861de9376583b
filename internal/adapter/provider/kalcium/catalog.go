package kalcium

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Language is one system language of the termbase server.
type Language struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Termbase is a termbase with the languages it contains.
type Termbase struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Languages []Language `json:"languages"`
}

// Languages lists all system languages.
func (c *Client) Languages(ctx context.Context) ([]Language, error) {
	var resp []apiLanguage
	if err := c.getJSON(ctx, "/kalcrest/terminology/languages", &resp); err != nil {
		return nil, fmt.Errorf("kalcium: languages: %w", err)
	}

	langs := make([]Language, 0, len(resp))
	for _, l := range resp {
		langs = append(langs, Language(l))
	}
	return langs, nil
}

// Termbases lists the given termbases with their languages resolved.
// With no ids it lists the termbases enabled for the session user.
func (c *Client) Termbases(ctx context.Context, ids ...int) ([]Termbase, error) {
	if len(ids) == 0 {
		enabled, err := c.EnabledTermbases(ctx)
		if err != nil {
			return nil, err
		}
		ids = enabled
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var resp []apiTermbase
	if err := c.getJSON(ctx, "/kalcrest/terminology/termbases?"+repeatParam("termbaseIds", ids), &resp); err != nil {
		return nil, fmt.Errorf("kalcium: termbases: %w", err)
	}

	langs, err := c.Languages(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]Language, len(langs))
	for _, l := range langs {
		byID[l.ID] = l
	}

	out := make([]Termbase, 0, len(resp))
	for _, tb := range resp {
		t := Termbase{ID: tb.ID, Name: tb.Name, Languages: make([]Language, 0, len(tb.LanguageIDs))}
		for _, id := range tb.LanguageIDs {
			l, ok := byID[id]
			if !ok {
				l = Language{ID: id}
			}
			t.Languages = append(t.Languages, l)
		}
		out = append(out, t)
	}
	return out, nil
}

// repeatParam renders key=a&key=b.
func repeatParam(key string, ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = key + "=" + strconv.Itoa(id)
	}
	return strings.Join(parts, "&")
}
