package site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/natefinch/atomic"

	"github.com/ziadkadry99/pageshell/internal/content"
	"github.com/ziadkadry99/pageshell/internal/router"
	"github.com/ziadkadry99/pageshell/internal/toc"
)

// maxSearchContent caps the display text stored per page in the search index.
const maxSearchContent = 2000

// SearchEntry represents a single searchable page of the exported site.
// Title and Body are the record's raw title and Markdown, matched the same
// way router.Search matches them. Summary and Content are for display.
type SearchEntry struct {
	Route   string `json:"route"`
	Path    string `json:"path"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

// NewSearchEntry builds the index entry for rec from its rendered view.
// The summary is the first non-empty paragraph.
func NewSearchEntry(rec content.Record, view router.View) (SearchEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(view.Body))
	if err != nil {
		return SearchEntry{}, fmt.Errorf("parsing %s: %w", view.Route, err)
	}

	entry := SearchEntry{
		Route: rec.Route,
		Path:  pagePath(rec.Route),
		Title: rec.Title,
		Body:  rec.Body,
	}

	doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		entry.Summary = strings.TrimSpace(s.Text())
		return entry.Summary == ""
	})

	content, err := toc.PlainText(view.Body)
	if err != nil {
		return SearchEntry{}, err
	}
	if len(content) > maxSearchContent {
		n := maxSearchContent
		for n > 0 && !utf8.RuneStart(content[n]) {
			n--
		}
		content = content[:n]
	}
	entry.Content = content
	return entry, nil
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return atomic.WriteFile(outputPath, bytes.NewReader(data))
}
