// Package extract strips web-editor markup from rich-text letter bodies by:
//  1. Detecting whether a body is an HTML fragment at all
//  2. Removing noise elements the editor wraps around the actual prose
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// htmlTagRe matches an opening HTML tag. Dictated plain text never
// contains these; the web editor's output always does.
var htmlTagRe = regexp.MustCompile(`<[a-zA-Z][^>]*>`)

// noiseSelectors are elements removed before extraction. Editor chrome and
// embedded media contribute nothing to the printed letter.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"img", "picture", "figure", "figcaption",
	"iframe", "video", "audio",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".toolbar", ".editor-controls", ".placeholder",
}

// LooksLikeHTML reports whether body appears to be an HTML fragment
// rather than plain dictated text.
func LooksLikeHTML(body string) bool {
	return htmlTagRe.MatchString(body)
}

// Clean takes a rich-text fragment and returns a cleaned HTML fragment
// containing only the letter prose.
func Clean(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing body HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	// goquery wraps fragments in html/body, so body is always present.
	content := doc.Find("body").First()
	if content.Length() == 0 {
		return "", fmt.Errorf("no content in body fragment")
	}

	result, err := goquery.OuterHtml(content)
	if err != nil {
		return "", fmt.Errorf("serializing cleaned body: %w", err)
	}
	return result, nil
}
