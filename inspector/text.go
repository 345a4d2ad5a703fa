package inspector

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// blockTags are elements that end a line of visible text, so the
// fallback extraction preserves paragraph-like breaks the way
// innerText does.
var blockTags = map[string]bool{
	"p": true, "div": true, "section": true, "article": true,
	"li": true, "br": true, "tr": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// visibleText extracts the visible text from within <body>, stripping
// all tags and <script>/<style>/<noscript> content. Used as a fallback
// when in-page innerText evaluation fails.
func visibleText(body []byte) string {
	tokenizer := html.NewTokenizer(bytes.NewReader(body))
	var buf strings.Builder
	inBody := false
	skipDepth := 0

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return strings.TrimSpace(buf.String())
		case html.StartTagToken, html.SelfClosingTagToken:
			tn, _ := tokenizer.TagName()
			tag := string(tn)
			if tag == "body" {
				inBody = true
			}
			if blockTags[tag] && buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			if tt == html.StartTagToken && (tag == "script" || tag == "style" || tag == "noscript") {
				skipDepth++
			}
		case html.EndTagToken:
			tn, _ := tokenizer.TagName()
			tag := string(tn)
			if tag == "script" || tag == "style" || tag == "noscript" {
				if skipDepth > 0 {
					skipDepth--
				}
			}
			if blockTags[tag] && buf.Len() > 0 {
				buf.WriteByte('\n')
			}
		case html.TextToken:
			if inBody && skipDepth == 0 {
				text := strings.TrimSpace(string(tokenizer.Text()))
				if text != "" {
					buf.WriteString(text)
					buf.WriteByte(' ')
				}
			}
		}
	}
}
