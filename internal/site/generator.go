// Package site exports the route table as a static HTML site.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/natefinch/atomic"
	"go.uber.org/zap"

	"github.com/ziadkadry99/pageshell/internal/content"
	"github.com/ziadkadry99/pageshell/internal/progress"
	"github.com/ziadkadry99/pageshell/internal/router"
)

// Generator converts a route table into a static HTML site.
type Generator struct {
	Table     *content.Table
	Renderer  *router.Renderer
	OutputDir string
	SiteName  string
	Home      string
	Reporter  progress.Reporter
	Logger    *zap.Logger
}

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Route         string
	Title         string
	DocumentTitle string
	SiteName      string
	Breadcrumb    []string
	Content       template.HTML
	TOC           template.HTML
	TreeHTML      template.HTML
	Metadata      router.Metadata
}

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

// Generate builds the full static site. Returns the number of pages generated.
func (g *Generator) Generate() (int, error) {
	if g.Table == nil || g.Table.Len() == 0 {
		return 0, fmt.Errorf("no pages to export")
	}
	if g.Renderer == nil {
		g.Renderer = router.NewRenderer(router.RenderConfig{SiteName: g.SiteName})
	}
	if g.Home == "" {
		g.Home = router.DefaultHome
	}
	if !g.Table.Has(g.Home) {
		return 0, fmt.Errorf("home %w: %s", router.ErrRouteNotFound, g.Home)
	}
	if g.Reporter == nil {
		g.Reporter = progress.Nop{}
	}
	if g.Logger == nil {
		g.Logger = zap.NewNop()
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, err
	}

	records := g.Table.Records()
	tree := BuildTree(records)

	g.Reporter.Start(len(records))
	defer g.Reporter.Finish()

	var searchEntries []SearchEntry
	for i, rec := range records {
		g.Reporter.Update(i+1, rec.Route)

		view, err := g.Renderer.Render(rec)
		if err != nil {
			g.Logger.Error("render failed, exporting fallback", zap.String("route", rec.Route), zap.Error(err))
			view = fallbackView(g.Renderer, rec)
		}

		view.Body, err = g.rewriteRouteLinks(view.Body)
		if err != nil {
			return 0, fmt.Errorf("rewriting links in %s: %w", rec.Route, err)
		}

		page, err := g.renderPage(view, tree)
		if err != nil {
			return 0, fmt.Errorf("rendering %s: %w", rec.Route, err)
		}
		if err := g.write(pagePath(rec.Route), page); err != nil {
			return 0, err
		}
		if rec.Route == g.Home {
			if err := g.write("index.html", page); err != nil {
				return 0, err
			}
		}

		entry, err := NewSearchEntry(rec, view)
		if err != nil {
			return 0, err
		}
		searchEntries = append(searchEntries, entry)
	}

	// Build and write search index.
	if err := WriteSearchIndex(searchEntries, filepath.Join(g.OutputDir, "search-index.json")); err != nil {
		return 0, fmt.Errorf("writing search index: %w", err)
	}

	// Write static assets.
	if err := g.write("style.css", []byte(cssContent)); err != nil {
		return 0, err
	}
	if err := g.write("script.js", []byte(jsContent)); err != nil {
		return 0, err
	}

	g.Logger.Info("site exported", zap.String("dir", g.OutputDir), zap.Int("pages", len(records)))
	return len(records), nil
}

// renderPage wraps a view in the page template.
func (g *Generator) renderPage(view router.View, tree *Tree) ([]byte, error) {
	data := pageData{
		Route:         view.Route,
		Title:         view.Title,
		DocumentTitle: view.DocumentTitle,
		SiteName:      g.SiteName,
		Breadcrumb:    view.Breadcrumb,
		Content:       template.HTML(view.Body),
		TOC:           template.HTML(view.TOCHTML),
		TreeHTML:      template.HTML(tree.ToHTML(view.Route)),
		Metadata:      view.Metadata,
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// rewriteRouteLinks points in-page "#route" links at the exported page of
// that route. Heading anchors and unknown fragments are left alone.
func (g *Generator) rewriteRouteLinks(body string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", err
	}
	doc.Find(`a[href^="#"]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if route := strings.TrimPrefix(href, "#"); g.Table.Has(route) {
			s.SetAttr("href", pagePath(route))
		}
	})
	return doc.Find("body").Html()
}

func (g *Generator) write(name string, data []byte) error {
	path := filepath.Join(g.OutputDir, name)
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// fallbackView is exported in place of a page that failed to render.
func fallbackView(r *router.Renderer, rec content.Record) router.View {
	return router.View{
		Route:         rec.Route,
		Title:         rec.Title,
		DocumentTitle: r.DocumentTitle(rec.Title),
		Breadcrumb:    rec.Breadcrumb,
		Body:          "<p>" + template.HTMLEscapeString(router.DefaultFallbackMessage) + "</p>",
	}
}
