// Package router drives navigation between the pages of a route table and
// pushes rendered views to a Sink.
package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ziadkadry99/pageshell/internal/content"
)

const (
	// DefaultHome is the route shown when no other route applies.
	DefaultHome = "home"
	// DefaultDelay is the simulated loading time of a navigation.
	DefaultDelay = 300 * time.Millisecond
	// DefaultFallbackMessage replaces a page body that failed to render.
	DefaultFallbackMessage = "Content failed to load, please try again later."
)

// Options configures a Router.
type Options struct {
	// Home must exist in the table. Defaults to DefaultHome.
	Home string
	// Delay is the wait between starting and completing a navigation.
	// Zero completes immediately.
	Delay           time.Duration
	Render          RenderConfig
	Sink            Sink
	Location        Location
	Logger          *zap.Logger
	FallbackMessage string
}

// State is a snapshot of the navigation state.
type State struct {
	CurrentRoute string `json:"current_route"`
	IsLoading    bool   `json:"is_loading"`
	Theme        Theme  `json:"theme"`
}

// Pending is a navigation that has begun but not yet completed.
type Pending struct {
	ID            string
	Route         string
	RecordHistory bool
}

// Router owns the navigation state of one view.
type Router struct {
	table    *content.Table
	renderer *Renderer
	sink     Sink
	location Location
	logger   *zap.Logger
	home     string
	delay    time.Duration
	fallback string

	mu      sync.Mutex
	state   State
	pending *Pending
}

// New creates a Router over table. The router starts on the home route
// without rendering it; call RestoreFromLocation to show the first page.
func New(table *content.Table, opts Options) (*Router, error) {
	if table == nil {
		return nil, errors.New("router: nil route table")
	}
	if opts.Home == "" {
		opts.Home = DefaultHome
	}
	if !table.Has(opts.Home) {
		return nil, fmt.Errorf("home %w: %s", ErrRouteNotFound, opts.Home)
	}
	if opts.Delay < 0 {
		opts.Delay = 0
	}
	if opts.Sink == nil {
		opts.Sink = DiscardSink{}
	}
	if opts.Location == nil {
		opts.Location = NewMemoryLocation("")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.FallbackMessage == "" {
		opts.FallbackMessage = DefaultFallbackMessage
	}

	return &Router{
		table:    table,
		renderer: NewRenderer(opts.Render),
		sink:     opts.Sink,
		location: opts.Location,
		logger:   opts.Logger.Named("router"),
		home:     opts.Home,
		delay:    opts.Delay,
		fallback: opts.FallbackMessage,
		state: State{
			CurrentRoute: opts.Home,
			Theme:        ThemeLight,
		},
	}, nil
}

// Table returns the route table the router navigates.
func (r *Router) Table() *content.Table {
	return r.table
}

// Renderer returns the renderer used for page views.
func (r *Router) Renderer() *Renderer {
	return r.renderer
}

// State returns a snapshot of the current state.
func (r *Router) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// BeginNavigation starts navigating to route. It returns (nil, nil) when
// route is already current. A request made while another navigation is
// loading is dropped with ErrNavigationBusy.
func (r *Router) BeginNavigation(route string, recordHistory bool) (*Pending, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.table.Has(route) {
		r.logger.Warn("route not found", zap.String("route", route))
		return nil, fmt.Errorf("%w: %s", ErrRouteNotFound, route)
	}
	if r.state.IsLoading {
		r.logger.Debug("navigation dropped while loading",
			zap.String("route", route),
			zap.String("pending", r.pending.Route),
		)
		return nil, ErrNavigationBusy
	}
	if route == r.state.CurrentRoute {
		return nil, nil
	}

	p := &Pending{ID: uuid.NewString(), Route: route, RecordHistory: recordHistory}
	r.pending = p
	r.state.IsLoading = true
	r.sink.SetLoading(true)
	return p, nil
}

// CompleteNavigation renders the pending route and commits it.
func (r *Router) CompleteNavigation(ctx context.Context, p *Pending) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p == nil || r.pending == nil || r.pending.ID != p.ID {
		return ErrStalePending
	}
	r.pending = nil
	r.show(ctx, p.Route, p.RecordHistory)
	r.state.IsLoading = false
	r.sink.SetLoading(false)
	return nil
}

// CancelNavigation abandons p and clears the loading state. It does nothing
// if p is not the pending navigation.
func (r *Router) CancelNavigation(p *Pending) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p == nil || r.pending == nil || r.pending.ID != p.ID {
		return
	}
	r.logger.Debug("navigation cancelled", zap.String("route", p.Route))
	r.pending = nil
	r.state.IsLoading = false
	r.sink.SetLoading(false)
}

// Navigate begins a navigation, waits the configured delay and completes
// it. Cancelling ctx during the wait abandons the navigation.
func (r *Router) Navigate(ctx context.Context, route string, recordHistory bool) error {
	p, err := r.BeginNavigation(route, recordHistory)
	if err != nil || p == nil {
		return err
	}

	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			r.CancelNavigation(p)
			return ctx.Err()
		case <-timer.C:
		}
	}
	return r.CompleteNavigation(ctx, p)
}

// RestoreFromLocation shows the route stored in the location, or home when
// it is empty or unknown. It applies immediately and records no history.
func (r *Router) RestoreFromLocation(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fragment, err := r.location.Fragment(ctx)
	if err != nil {
		r.logger.Warn("reading location failed", zap.Error(err))
		fragment = ""
	}
	fragment = strings.TrimPrefix(strings.TrimSpace(fragment), "#")

	r.mu.Lock()
	defer r.mu.Unlock()

	route := r.home
	if fragment != "" && r.table.Has(fragment) {
		route = fragment
	} else if fragment != "" {
		r.logger.Info("unknown route in location, showing home", zap.String("fragment", fragment))
	}
	r.show(ctx, route, false)
	return nil
}

// HistoryChanged handles back/forward movement to route. An empty route
// means home. It applies immediately and records no history.
func (r *Router) HistoryChanged(ctx context.Context, route string) error {
	if route == "" {
		route = r.home
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.table.Has(route) {
		r.logger.Warn("route not found", zap.String("route", route))
		return fmt.Errorf("%w: %s", ErrRouteNotFound, route)
	}
	r.show(ctx, route, false)
	return nil
}

// Search returns every page matching query in table order.
func (r *Router) Search(query string) []Result {
	return Search(r.table, query)
}

// SearchContent returns the route of the first page matching query.
func (r *Router) SearchContent(query string) (string, error) {
	return FirstMatch(r.table, query)
}

// PerformSearch navigates to the first page matching query. An empty query
// is ignored. When nothing matches, the sink is notified and
// ErrNoSearchResults is returned.
func (r *Router) PerformSearch(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	route, err := r.SearchContent(query)
	if err != nil {
		notice := NoResultsNotice(r.table, query)
		r.logger.Info("search found nothing",
			zap.String("query", query),
			zap.Strings("suggestions", notice.Suggestions),
		)
		r.mu.Lock()
		r.sink.Notify(notice)
		r.mu.Unlock()
		return err
	}
	return r.Navigate(ctx, route, true)
}

// ToggleTheme switches between the light and dark themes.
func (r *Router) ToggleTheme() Theme {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.Theme == ThemeDark {
		r.state.Theme = ThemeLight
	} else {
		r.state.Theme = ThemeDark
	}
	r.logger.Info("theme toggled", zap.String("theme", string(r.state.Theme)))
	if ts, ok := r.sink.(ThemeSink); ok {
		ts.SetTheme(r.state.Theme)
	}
	return r.state.Theme
}

// show renders route into the sink and commits it as current. Render
// failures put the fallback message in place of the page. Callers hold mu.
func (r *Router) show(ctx context.Context, route string, recordHistory bool) {
	rec, _ := r.table.Get(route)

	view, err := r.renderer.Render(rec)
	if err == nil {
		if sinkErr := r.sink.Render(view); sinkErr != nil {
			err = &RenderError{Route: route, Err: sinkErr}
		}
	}
	if err != nil {
		r.logger.Error("render failed", zap.String("route", route), zap.Error(err))
		r.sink.RenderFallback(route, r.fallback)
	}

	if recordHistory {
		if err := r.location.Push(ctx, route); err != nil {
			r.logger.Warn("recording history failed", zap.String("route", route), zap.Error(err))
		}
	}
	r.state.CurrentRoute = route
}
