package render

import "github.com/gomarkdown/markdown"

// HTML converts rendered Markdown into an HTML preview, used for citation
// documents shown next to a chat answer.
func HTML(md string) string {
	return string(markdown.ToHTML([]byte(md), nil, nil))
}
