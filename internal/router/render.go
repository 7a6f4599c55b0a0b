package router

import (
	"fmt"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ziadkadry99/pageshell/internal/content"
	"github.com/ziadkadry99/pageshell/internal/markdown"
	"github.com/ziadkadry99/pageshell/internal/toc"
)

// DefaultDateFormat renders the last-updated date.
const DefaultDateFormat = "2006-01-02"

// View is everything the view layer needs to display one page.
type View struct {
	Route         string      `json:"route"`
	Title         string      `json:"title"`
	DocumentTitle string      `json:"document_title"`
	Breadcrumb    []string    `json:"breadcrumb"`
	Body          string      `json:"body"`
	TOC           []toc.Entry `json:"toc"`
	TOCHTML       string      `json:"toc_html"`
	Metadata      Metadata    `json:"metadata"`
}

// Metadata is the page footer information.
type Metadata struct {
	LastUpdated    string `json:"last_updated"`
	ReadingMinutes int    `json:"reading_minutes"`
}

// RenderConfig configures a Renderer. Zero values select defaults.
type RenderConfig struct {
	SiteName   string
	Converter  markdown.Converter
	Now        func() time.Time
	DateFormat string
	// Sanitize filters converted HTML through a user-content policy.
	Sanitize bool
	// EmptyTOC replaces the placeholder shown for pages without headings.
	EmptyTOC string
}

// Renderer turns records into Views. It holds no mutable state and is safe
// for concurrent use.
type Renderer struct {
	siteName   string
	converter  markdown.Converter
	now        func() time.Time
	dateFormat string
	emptyTOC   string
	policy     *bluemonday.Policy
}

// NewRenderer creates a Renderer from cfg.
func NewRenderer(cfg RenderConfig) *Renderer {
	r := &Renderer{
		siteName:   cfg.SiteName,
		converter:  cfg.Converter,
		now:        cfg.Now,
		dateFormat: cfg.DateFormat,
		emptyTOC:   cfg.EmptyTOC,
	}
	if r.converter == nil {
		r.converter = markdown.Builtin{}
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.dateFormat == "" {
		r.dateFormat = DefaultDateFormat
	}
	if cfg.Sanitize {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("class").OnElements("pre", "code", "span")
		p.AllowAttrs("style").OnElements("pre", "span")
		r.policy = p
	}
	return r
}

// DocumentTitle joins a page title with the site name.
func (r *Renderer) DocumentTitle(title string) string {
	if r.siteName == "" {
		return title
	}
	return title + " - " + r.siteName
}

// Render converts rec into a View. Any converter failure, including a panic,
// is returned as a *RenderError.
func (r *Renderer) Render(rec content.Record) (View, error) {
	body, err := r.convert(rec.Body)
	if err != nil {
		return View{}, &RenderError{Route: rec.Route, Err: err}
	}
	if r.policy != nil {
		body = r.policy.Sanitize(body)
	}

	annotated, entries, err := toc.Build(body)
	if err != nil {
		return View{}, &RenderError{Route: rec.Route, Err: err}
	}
	text, err := toc.PlainText(annotated)
	if err != nil {
		return View{}, &RenderError{Route: rec.Route, Err: err}
	}

	return View{
		Route:         rec.Route,
		Title:         rec.Title,
		DocumentTitle: r.DocumentTitle(rec.Title),
		Breadcrumb:    rec.Breadcrumb,
		Body:          annotated,
		TOC:           entries,
		TOCHTML:       toc.Render(entries, r.emptyTOC),
		Metadata: Metadata{
			LastUpdated:    r.now().Format(r.dateFormat),
			ReadingMinutes: toc.ReadingMinutes(text, toc.DefaultWordsPerMinute),
		},
	}, nil
}

func (r *Renderer) convert(md string) (out string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("converter panic: %v", p)
		}
	}()
	return r.converter.Convert(md)
}
