package router

import (
	"errors"
	"fmt"
)

var (
	// ErrRouteNotFound is returned when a navigation target is not in the
	// route table. Router state is left unchanged.
	ErrRouteNotFound = errors.New("route not found")
	// ErrNavigationBusy is returned when a navigation is requested while
	// another one is loading. The request is dropped, not queued.
	ErrNavigationBusy = errors.New("navigation already in progress")
	// ErrNoSearchResults is returned when a search query matches no page.
	ErrNoSearchResults = errors.New("no search results")
	// ErrStalePending is returned when completing a navigation token that
	// is no longer the router's pending navigation.
	ErrStalePending = errors.New("stale pending navigation")
)

// RenderError reports a failure to turn a record into a View.
type RenderError struct {
	Route string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering %s: %v", e.Route, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
