package kalcium

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/heartmarshall/termtag/internal/domain"
	"github.com/heartmarshall/termtag/internal/provider"
)

// FetchEntryContent calls the retrieval endpoint for one text. Only the
// first source language is sent; every target language is.
//
// Content that decodes as a JSON array becomes a record payload, any
// other content string is treated as an XML document.
func (c *Client) FetchEntryContent(ctx context.Context, text string, profileID int, sourceLanguageIDs, targetLanguageIDs []int) (provider.RawPayload, error) {
	if strings.TrimSpace(text) == "" {
		return provider.RawPayload{}, domain.NewValidationError("text", "required")
	}
	if len(sourceLanguageIDs) == 0 {
		return provider.RawPayload{}, domain.NewValidationError("source_language_ids", "at least one required")
	}

	path := retrievalPath(text, profileID, sourceLanguageIDs[0], targetLanguageIDs)

	var resp apiContent
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return provider.RawPayload{}, err
	}

	payload := decodeContent(resp.Content)
	c.log.DebugContext(ctx, "kalcium retrieval",
		slog.Int("profile_id", profileID),
		slog.String("kind", payload.Kind.String()),
		slog.Bool("empty", payload.IsEmpty()),
	)
	return payload, nil
}

func retrievalPath(text string, profileID, sourceLang int, targetLangs []int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "/kalcrest/retrieval/content-of-entries-by-langId(%d)", profileID)
	b.WriteString("?text=")
	b.WriteString(escapeText(text))
	b.WriteString("&sourceLanguageIds=")
	b.WriteString(strconv.Itoa(sourceLang))
	for _, id := range targetLangs {
		b.WriteString("&targetLanguageIds=")
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}

// escapeText collapses whitespace runs and percent-encodes the text with
// spaces as %20, the form the retrieval endpoint expects.
func escapeText(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		words[i] = url.QueryEscape(w)
	}
	return strings.Join(words, "%20")
}

func decodeContent(content *string) provider.RawPayload {
	if content == nil {
		return provider.XMLPayload("")
	}
	var records []provider.Record
	dec := json.NewDecoder(strings.NewReader(*content))
	dec.UseNumber()
	if err := dec.Decode(&records); err == nil && !dec.More() {
		return provider.JSONPayload(records)
	}
	return provider.XMLPayload(*content)
}
