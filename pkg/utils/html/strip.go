// ABOUTME: HTML utilities for turning partner-supplied markup into plain text
// ABOUTME: Parses with goquery so entities and nested markup are handled properly

package html

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const blockElements = "p, div, br, li, tr, td, th, h1, h2, h3, h4, h5, h6, section, article"

// StripHTML returns the visible text of an HTML fragment with whitespace
// collapsed. Script and style content is dropped.
func StripHTML(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return collapseSpace(fragment)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return collapseSpace(fragment)
	}

	doc.Find("script, style, noscript, template").Remove()
	// keep words in adjacent blocks apart
	doc.Find(blockElements).AfterHtml(" ")

	return collapseSpace(doc.Text())
}

// Truncate shortens text to at most max runes, cutting at a word boundary
// when one exists in the second half.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if max <= 0 || len(runes) <= max {
		return text
	}
	cut := string(runes[:max])
	if i := strings.LastIndexByte(cut, ' '); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "..."
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
