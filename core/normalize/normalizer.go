// Package normalize implements the BodyNormalizer interface.
// Rich-text letter bodies go through Markdown as the intermediate format,
// then have inline markers flattened away, so the composer only ever sees
// plain paragraph text.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/inkwell-mail/letterpress/core/extract"
)

// PlainTextNormalizer flattens rich-text bodies to plain paragraphs.
type PlainTextNormalizer struct{}

// New creates a PlainTextNormalizer.
func New() *PlainTextNormalizer {
	return &PlainTextNormalizer{}
}

// Normalize converts a letter body into plain paragraph text. Plain bodies
// pass through untouched; HTML fragments are cleaned, converted to
// Markdown, and stripped of inline formatting.
func (n *PlainTextNormalizer) Normalize(body string) (string, error) {
	if !extract.LooksLikeHTML(body) {
		return body, nil
	}

	cleaned, err := extract.Clean(body)
	if err != nil {
		return body, fmt.Errorf("cleaning body: %w", err)
	}

	markdown, err := htmltomarkdown.ConvertString(cleaned)
	if err != nil {
		return body, fmt.Errorf("converting body to markdown: %w", err)
	}

	return flattenMarkdown(markdown), nil
}

var multiBlank = regexp.MustCompile(`\n{3,}`)

// flattenMarkdown strips Markdown structure down to printable prose.
func flattenMarkdown(md string) string {
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		// Headings become plain lines.
		if strings.HasPrefix(trimmed, "#") {
			trimmed = strings.TrimSpace(strings.TrimLeft(trimmed, "# "))
		}
		// List markers become simple dashes.
		if strings.HasPrefix(trimmed, "* ") {
			trimmed = "- " + trimmed[2:]
		}
		lines[i] = stripInline(trimmed)
	}
	out := strings.Join(lines, "\n")
	out = multiBlank.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

var (
	italicRe = regexp.MustCompile(`(?:^|\s)\*([^*]+)\*(?:\s|$)`)
	codeRe   = regexp.MustCompile("`([^`]+)`")
	linkRe   = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
)

// stripInline removes inline Markdown formatting, keeping the text.
func stripInline(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	text = italicRe.ReplaceAllString(text, " $1 ")
	text = codeRe.ReplaceAllString(text, "$1")
	text = linkRe.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
