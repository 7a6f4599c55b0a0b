package router

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// Sink is the view layer a Router renders into. The Router calls it with
// its lock held; implementations must not call back into the Router.
type Sink interface {
	// SetLoading shows or hides the loading indicator.
	SetLoading(loading bool)
	// Render displays a page. An error is treated as a render failure.
	Render(view View) error
	// RenderFallback replaces the page body with a static message.
	RenderFallback(route, message string)
	// Notify shows a user-facing notice such as "no results".
	Notify(notice Notice)
}

// ThemeSink is implemented by sinks that can switch color themes.
type ThemeSink interface {
	SetTheme(theme Theme)
}

// Theme is the color scheme of the view.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// NoticeKind classifies a Notice.
type NoticeKind string

const NoticeNoResults NoticeKind = "no_results"

// Notice is a user-facing message that does not change router state.
type Notice struct {
	Kind        NoticeKind `json:"kind"`
	Message     string     `json:"message"`
	Query       string     `json:"query,omitempty"`
	Suggestions []string   `json:"suggestions,omitempty"`
}

// DiscardSink drops everything. It is the default when no sink is given.
type DiscardSink struct{}

func (DiscardSink) SetLoading(bool)               {}
func (DiscardSink) Render(View) error             { return nil }
func (DiscardSink) RenderFallback(string, string) {}
func (DiscardSink) Notify(Notice)                 {}

// Location persists the current route between sessions, like the fragment
// of a page address.
type Location interface {
	// Fragment returns the stored route, or "" when nothing is stored.
	Fragment(ctx context.Context) (string, error)
	// Push records route as the newest history entry.
	Push(ctx context.Context, route string) error
}

// MemoryLocation is an in-process Location.
type MemoryLocation struct {
	mu       sync.Mutex
	fragment string
	entries  []string
}

// NewMemoryLocation returns a Location whose fragment starts as fragment.
// A leading "#" is ignored.
func NewMemoryLocation(fragment string) *MemoryLocation {
	return &MemoryLocation{fragment: strings.TrimPrefix(fragment, "#")}
}

func (l *MemoryLocation) Fragment(context.Context) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fragment, nil
}

func (l *MemoryLocation) Push(_ context.Context, route string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fragment = route
	l.entries = append(l.entries, route)
	return nil
}

// Entries returns every pushed route, oldest first.
func (l *MemoryLocation) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.entries)
}
