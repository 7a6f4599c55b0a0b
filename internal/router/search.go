package router

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sahilm/fuzzy"

	"github.com/ziadkadry99/pageshell/internal/content"
)

// MaxSuggestions caps the titles offered when a search finds nothing.
const MaxSuggestions = 3

// Result is one search hit.
type Result struct {
	Route string `json:"route"`
	Title string `json:"title"`
}

var noticePolicy = bluemonday.StrictPolicy()

// Search returns every record whose title or body contains query, in table
// order. Matching is case-sensitive. An empty query matches nothing.
func Search(t *content.Table, query string) []Result {
	if query == "" {
		return nil
	}
	var results []Result
	for _, rec := range t.Records() {
		if strings.Contains(rec.Title, query) || strings.Contains(rec.Body, query) {
			results = append(results, Result{Route: rec.Route, Title: rec.Title})
		}
	}
	return results
}

// FirstMatch returns the route of the first record matching query.
func FirstMatch(t *content.Table, query string) (string, error) {
	results := Search(t, query)
	if len(results) == 0 {
		return "", fmt.Errorf("%w for %q", ErrNoSearchResults, query)
	}
	return results[0].Route, nil
}

// Suggest returns up to limit page titles that fuzzily match query, best
// first.
func Suggest(t *content.Table, query string, limit int) []string {
	if query == "" || limit <= 0 {
		return nil
	}
	records := t.Records()
	titles := make([]string, len(records))
	for i, rec := range records {
		titles[i] = rec.Title
	}

	var out []string
	for _, m := range fuzzy.Find(strings.ToLower(query), lowerAll(titles)) {
		out = append(out, titles[m.Index])
		if len(out) == limit {
			break
		}
	}
	return out
}

func lowerAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToLower(s)
	}
	return out
}

// NoResultsNotice builds the notice shown when query matched nothing.
func NoResultsNotice(t *content.Table, query string) Notice {
	return Notice{
		Kind:        NoticeNoResults,
		Message:     fmt.Sprintf("No results found for %q. Try another keyword.", noticePolicy.Sanitize(query)),
		Query:       query,
		Suggestions: Suggest(t, query, MaxSuggestions),
	}
}
