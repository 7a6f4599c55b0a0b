package site

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ziadkadry99/pageshell/internal/content"
	"github.com/ziadkadry99/pageshell/internal/router"
)

func testRecords() []content.Record {
	return []content.Record{
		{Route: "home", Title: "Welcome", Breadcrumb: []string{"Home"}, Body: "# Welcome\n\nStart with [the services](#services-tech) or [jump](#heading-0)."},
		{Route: "about", Title: "About", Breadcrumb: []string{"Home", "About"}, Body: "## Story\n\nFounded long ago."},
		{Route: "services-business", Title: "Business Services", Breadcrumb: []string{"Home", "Services", "Business Services"}, Body: "Consulting for firms."},
		{Route: "services-tech", Title: "Technical Services", Breadcrumb: []string{"Home", "Services", "Technical Services"}, Body: "## Stack\n\n- Go\n- SQL"},
	}
}

func testTable(t *testing.T) *content.Table {
	t.Helper()
	table, err := content.NewTable(testRecords()...)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return table
}

func TestBuildTree(t *testing.T) {
	tree := BuildTree(testRecords())

	if tree.Label != "Home" || tree.Route != "home" {
		t.Errorf("root = %q/%q, want Home/home", tree.Label, tree.Route)
	}

	// Root should have children in table order: About, Services.
	if len(tree.Children) != 2 {
		t.Fatalf("root children = %d, want 2", len(tree.Children))
	}
	if tree.Children[0].Label != "About" || tree.Children[0].Route != "about" {
		t.Errorf("first child = %+v, want About page", tree.Children[0])
	}

	services := tree.Children[1]
	if services.Label != "Services" || services.Route != "" {
		t.Errorf("second child = %+v, want Services section", services)
	}
	if len(services.Children) != 2 {
		t.Fatalf("services children = %d, want 2", len(services.Children))
	}
	if services.Children[0].Route != "services-business" || services.Children[1].Route != "services-tech" {
		t.Errorf("services children out of order: %q, %q", services.Children[0].Route, services.Children[1].Route)
	}
}

func TestBuildTreeSectionPage(t *testing.T) {
	records := append(testRecords(), content.Record{Route: "services", Title: "Services", Breadcrumb: []string{"Home", "Services"}})
	tree := BuildTree(records)

	services := tree.Children[1]
	if services.Route != "services" {
		t.Errorf("section route = %q, want services", services.Route)
	}
	if len(services.Children) != 2 {
		t.Errorf("section children = %d, want 2", len(services.Children))
	}
}

func TestBuildTreeNoBreadcrumb(t *testing.T) {
	tree := BuildTree([]content.Record{{Route: "loose", Title: "Loose Page"}})
	if len(tree.Children) != 1 || tree.Children[0].Label != "Loose Page" {
		t.Errorf("unexpected tree: %+v", tree.Children)
	}
}

func TestBuildTreeEmpty(t *testing.T) {
	tree := BuildTree(nil)
	if len(tree.Children) != 0 {
		t.Errorf("empty tree children = %d, want 0", len(tree.Children))
	}
}

func TestTreeToHTML(t *testing.T) {
	tree := BuildTree(testRecords())
	html := tree.ToHTML("services-tech")

	if !strings.Contains(html, `<a href="home.html">Home</a>`) {
		t.Error("expected home link")
	}
	if !strings.Contains(html, `<a href="services-tech.html" class="active">Technical Services</a>`) {
		t.Error("expected active class on the current page")
	}
	if !strings.Contains(html, `class="dir expanded"`) {
		t.Error("expected the Services section to be expanded")
	}

	collapsed := tree.ToHTML("about")
	if strings.Contains(collapsed, "expanded") {
		t.Error("Services should be collapsed when another page is active")
	}
}

func TestNewSearchEntry(t *testing.T) {
	rec := content.Record{Route: "about", Title: "About", Body: "## Story\n\nFounded  long ago.\n\nSecond."}
	view := router.View{
		Route: "about",
		Title: "About",
		Body:  `<h2 id="heading-0">Story</h2><p></p><p>Founded  long ago.</p><p>Second.</p>`,
	}

	entry, err := NewSearchEntry(rec, view)
	if err != nil {
		t.Fatalf("NewSearchEntry: %v", err)
	}
	if entry.Path != "about.html" {
		t.Errorf("path = %q, want about.html", entry.Path)
	}
	if entry.Summary != "Founded  long ago." {
		t.Errorf("summary = %q", entry.Summary)
	}
	if entry.Content != "Story Founded long ago. Second." {
		t.Errorf("content = %q", entry.Content)
	}
	if entry.Body != rec.Body {
		t.Errorf("body = %q, want the raw markdown", entry.Body)
	}
}

// firstIndexMatch mirrors the exported script: the first entry whose title
// or body contains query.
func firstIndexMatch(entries []SearchEntry, query string) string {
	for _, e := range entries {
		if strings.Contains(e.Title, query) || strings.Contains(e.Body, query) {
			return e.Route
		}
	}
	return ""
}

func TestSearchIndexMatchesRouterSearch(t *testing.T) {
	table, err := content.NewTable(
		content.Record{Route: "home", Title: "Welcome", Body: "see [docs](https://example.com/zeta)"},
		content.Record{Route: "long", Title: "Long Read", Body: strings.Repeat("filler words here ", 200) + "needle"},
		content.Record{Route: "marks", Title: "Marks", Body: "**bold** claim"},
	)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	outputDir := t.TempDir()
	gen := &Generator{Table: table, OutputDir: outputDir}
	if _, err := gen.Generate(); err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outputDir, "search-index.json"))
	if err != nil {
		t.Fatalf("reading search-index.json: %v", err)
	}
	var entries []SearchEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("parsing search-index.json: %v", err)
	}
	if len(entries[1].Content) > maxSearchContent {
		t.Errorf("display content not truncated: %d bytes", len(entries[1].Content))
	}

	tests := []struct {
		query string
		want  string
	}{
		{"needle", "long"},
		{"zeta", "home"},
		{"**bold**", "marks"},
		{"Long", "long"},
		{"missing", ""},
	}
	for _, tt := range tests {
		want, _ := router.FirstMatch(table, tt.query)
		if want != tt.want {
			t.Fatalf("router.FirstMatch(%q) = %q, want %q", tt.query, want, tt.want)
		}
		if got := firstIndexMatch(entries, tt.query); got != want {
			t.Errorf("index match for %q = %q, router found %q", tt.query, got, want)
		}
	}

	if !strings.Contains(jsContent, "entries[i].body.indexOf(query)") {
		t.Error("exported script should search the raw body")
	}
}

func TestGenerateMissingHome(t *testing.T) {
	table, err := content.NewTable(content.Record{Route: "start", Title: "Start", Body: "Hi."})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	outputDir := t.TempDir()
	gen := &Generator{Table: table, OutputDir: outputDir, Home: "home"}
	pages, err := gen.Generate()
	if !errors.Is(err, router.ErrRouteNotFound) {
		t.Fatalf("Generate error = %v, want ErrRouteNotFound", err)
	}
	if pages != 0 {
		t.Errorf("pages = %d, want 0", pages)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "start.html")); !os.IsNotExist(err) {
		t.Error("no page should be written when home is missing")
	}
}

func TestFullSiteGeneration(t *testing.T) {
	outputDir := t.TempDir()

	gen := &Generator{
		Table: testTable(t),
		Renderer: router.NewRenderer(router.RenderConfig{
			SiteName: "Valley",
			Now:      func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) },
		}),
		OutputDir: outputDir,
		SiteName:  "Valley",
	}
	pageCount, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if pageCount != 4 {
		t.Errorf("pageCount = %d, want 4", pageCount)
	}

	// Verify output files exist.
	expectedFiles := []string{
		"index.html",
		"home.html",
		"about.html",
		"services-business.html",
		"services-tech.html",
		"style.css",
		"script.js",
		"search-index.json",
	}

	for _, f := range expectedFiles {
		path := filepath.Join(outputDir, f)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("expected file %s does not exist", f)
		}
	}

	// Verify index.html content.
	indexContent, err := os.ReadFile(filepath.Join(outputDir, "index.html"))
	if err != nil {
		t.Fatalf("reading index.html: %v", err)
	}
	indexStr := string(indexContent)

	for _, want := range []string{
		"<title>Welcome - Valley</title>",
		`<nav class="sidebar"`,
		`href="style.css"`,
		`<a href="services-tech.html">the services</a>`,
		`<a href="#heading-0">jump</a>`,
		"Last updated 2024-05-01",
		"1 min read",
	} {
		if !strings.Contains(indexStr, want) {
			t.Errorf("index.html should contain %q", want)
		}
	}

	// Verify a nested page carries its breadcrumb and table of contents.
	techContent, err := os.ReadFile(filepath.Join(outputDir, "services-tech.html"))
	if err != nil {
		t.Fatalf("reading services-tech.html: %v", err)
	}
	techStr := string(techContent)
	for _, want := range []string{
		"<li>Services</li>",
		`<h2 id="heading-0">Stack</h2>`,
		`<a href="#heading-0">Stack</a>`,
		`class="active">Technical Services</a>`,
	} {
		if !strings.Contains(techStr, want) {
			t.Errorf("services-tech.html should contain %q", want)
		}
	}

	// Verify search index.
	searchData, err := os.ReadFile(filepath.Join(outputDir, "search-index.json"))
	if err != nil {
		t.Fatalf("reading search-index.json: %v", err)
	}
	var searchEntries []SearchEntry
	if err := json.Unmarshal(searchData, &searchEntries); err != nil {
		t.Fatalf("parsing search-index.json: %v", err)
	}
	if len(searchEntries) != 4 {
		t.Fatalf("search entries = %d, want 4", len(searchEntries))
	}
	if searchEntries[3].Route != "services-tech" || searchEntries[3].Content != "Stack Go SQL" {
		t.Errorf("unexpected search entry: %+v", searchEntries[3])
	}
}

type failingConverter struct{}

func (failingConverter) Convert(string) (string, error) { return "", os.ErrInvalid }

func TestGenerateFallbackPage(t *testing.T) {
	outputDir := t.TempDir()

	gen := &Generator{
		Table:     testTable(t),
		Renderer:  router.NewRenderer(router.RenderConfig{Converter: failingConverter{}}),
		OutputDir: outputDir,
	}
	if _, err := gen.Generate(); err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outputDir, "about.html"))
	if err != nil {
		t.Fatalf("reading about.html: %v", err)
	}
	if !strings.Contains(string(data), router.DefaultFallbackMessage) {
		t.Error("failed pages should be exported with the fallback message")
	}
}

func TestGenerateNoPages(t *testing.T) {
	table, _ := content.NewTable()
	gen := &Generator{Table: table, OutputDir: t.TempDir()}
	_, err := gen.Generate()
	if err == nil {
		t.Fatal("Generate should fail with no pages")
	}
	if !strings.Contains(err.Error(), "no pages") {
		t.Errorf("error = %q, want it to mention no pages", err.Error())
	}
}

func TestPreviewHandler(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "about.html"), []byte("<p>about</p>"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	PreviewHandler(dir, nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/about.html", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "<p>about</p>" {
		t.Errorf("body = %q", w.Body.String())
	}
}
