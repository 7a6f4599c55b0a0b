// Package toc derives the table of contents and reading metadata from a
// rendered page body.
package toc

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultEmpty is the placeholder shown when a page has no headings.
const DefaultEmpty = "No contents"

// DefaultWordsPerMinute is the reading speed used for reading time estimates.
const DefaultWordsPerMinute = 200

// Entry is one heading in document order.
type Entry struct {
	Level  int    `json:"level"`
	Anchor string `json:"anchor"`
	Label  string `json:"label"`
}

// Anchor returns the stable anchor for the i-th heading of a page.
func Anchor(i int) string {
	return fmt.Sprintf("heading-%d", i)
}

// Build walks the h1-h6 elements of bodyHTML in document order, gives each
// an id from Anchor, and returns the annotated body with its entries.
func Build(bodyHTML string) (string, []Entry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(bodyHTML))
	if err != nil {
		return "", nil, fmt.Errorf("parsing body: %w", err)
	}

	var entries []Entry
	doc.Find("body *").Each(func(_ int, s *goquery.Selection) {
		level := headingLevel(goquery.NodeName(s))
		if level == 0 {
			return
		}
		anchor := Anchor(len(entries))
		s.SetAttr("id", anchor)
		entries = append(entries, Entry{
			Level:  level,
			Anchor: anchor,
			Label:  strings.TrimSpace(s.Text()),
		})
	})

	annotated, err := doc.Find("body").Html()
	if err != nil {
		return "", nil, fmt.Errorf("rendering body: %w", err)
	}
	return annotated, entries, nil
}

func headingLevel(name string) int {
	if len(name) != 2 || name[0] != 'h' || name[1] < '1' || name[1] > '6' {
		return 0
	}
	return int(name[1] - '0')
}

// Render produces the table of contents markup. Levels deeper than two are
// tagged with a class so the view can indent them.
func Render(entries []Entry, empty string) string {
	if empty == "" {
		empty = DefaultEmpty
	}
	if len(entries) == 0 {
		return "<ul><li>" + html.EscapeString(empty) + "</li></ul>"
	}

	var b strings.Builder
	b.WriteString("<ul>")
	for _, e := range entries {
		fmt.Fprintf(&b, `<li class="toc-level-%d"><a href="#%s">%s</a></li>`, e.Level, e.Anchor, html.EscapeString(e.Label))
	}
	b.WriteString("</ul>")
	return b.String()
}

// textBlocks are the elements whose text PlainText keeps apart.
const textBlocks = "h1, h2, h3, h4, h5, h6, p, li, ul, ol, dl, dt, dd, pre, blockquote, " +
	"div, section, article, table, tr, td, th, br, hr"

// PlainText returns all text content of bodyHTML, like the DOM's
// textContent, with blocks separated by a single space.
func PlainText(bodyHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(bodyHTML))
	if err != nil {
		return "", fmt.Errorf("parsing body: %w", err)
	}

	var b strings.Builder
	collectText(&b, doc.Selection)
	return strings.Join(strings.Fields(b.String()), " "), nil
}

func collectText(b *strings.Builder, s *goquery.Selection) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		switch goquery.NodeName(c) {
		case "#text":
			b.WriteString(c.Text())
			return
		case "script", "style":
			return
		}
		block := c.Is(textBlocks)
		if block {
			b.WriteByte(' ')
		}
		collectText(b, c)
		if block {
			b.WriteByte(' ')
		}
	})
}

// ReadingMinutes estimates how long text takes to read, rounded up. An empty
// text still counts as one word, so the result is never below one minute.
func ReadingMinutes(text string, wordsPerMinute int) int {
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultWordsPerMinute
	}
	words := len(strings.Fields(text))
	if words == 0 {
		words = 1
	}
	return int(math.Ceil(float64(words) / float64(wordsPerMinute)))
}
