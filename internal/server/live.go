package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/pageshell/internal/router"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client frame types.
const (
	frameNavigate = "navigate"
	frameSearch   = "search"
	frameHistory  = "history"
	frameTheme    = "theme"
)

// Server frame types.
const (
	frameHello    = "hello"
	frameLoading  = "loading"
	frameRender   = "render"
	frameFallback = "fallback"
	frameNotice   = "notice"
	frameError    = "error"
)

// clientFrame is the incoming WebSocket message format.
type clientFrame struct {
	Type  string `json:"type"`
	Route string `json:"route,omitempty"`
	Query string `json:"query,omitempty"`
}

// serverFrame is the outgoing WebSocket message format.
type serverFrame struct {
	Type    string         `json:"type"`
	Session string         `json:"session,omitempty"`
	Loading *bool          `json:"loading,omitempty"`
	View    *router.View   `json:"view,omitempty"`
	Route   string         `json:"route,omitempty"`
	Message string         `json:"message,omitempty"`
	Code    int            `json:"code,omitempty"`
	Notice  *router.Notice `json:"notice,omitempty"`
	Theme   router.Theme   `json:"theme,omitempty"`
}

// wsSink renders router output as frames on one connection. Writes are
// serialized since navigations run on their own goroutines.
type wsSink struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	logger *zap.Logger
}

func (s *wsSink) send(f serverFrame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.WriteJSON(f); err != nil {
		s.logger.Debug("websocket write failed", zap.String("frame", f.Type), zap.Error(err))
		return err
	}
	return nil
}

func (s *wsSink) SetLoading(loading bool) {
	s.send(serverFrame{Type: frameLoading, Loading: &loading})
}

func (s *wsSink) Render(view router.View) error {
	return s.send(serverFrame{Type: frameRender, View: &view})
}

func (s *wsSink) RenderFallback(route, message string) {
	s.send(serverFrame{Type: frameFallback, Route: route, Message: message})
}

func (s *wsSink) Notify(n router.Notice) {
	s.send(serverFrame{Type: frameNotice, Notice: &n})
}

func (s *wsSink) SetTheme(theme router.Theme) {
	s.send(serverFrame{Type: frameTheme, Theme: theme})
}

func (s *wsSink) sendError(err error) {
	s.send(serverFrame{Type: frameError, Message: err.Error(), Code: statusFor(err)})
}

// liveSession binds a connection to its own router.
type liveSession struct {
	id     string
	router *router.Router
	sink   *wsSink
	logger *zap.Logger
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	sess, err := s.openSession(ctx, conn, r.URL.Query().Get("session"))
	if err != nil {
		s.logger.Error("opening live session failed", zap.Error(err))
		conn.WriteJSON(serverFrame{Type: frameError, Message: "session unavailable", Code: http.StatusInternalServerError})
		return
	}
	sess.logger.Info("live session started")

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				sess.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		var f clientFrame
		if err := json.Unmarshal(msg, &f); err != nil {
			sess.sink.send(serverFrame{Type: frameError, Message: "invalid message format", Code: http.StatusBadRequest})
			continue
		}

		switch f.Type {
		case frameNavigate:
			wg.Add(1)
			go func() {
				defer wg.Done()
				sess.report(sess.router.Navigate(ctx, f.Route, true))
			}()
		case frameSearch:
			wg.Add(1)
			go func() {
				defer wg.Done()
				sess.report(sess.router.PerformSearch(ctx, f.Query))
			}()
		case frameHistory:
			sess.report(sess.router.HistoryChanged(ctx, f.Route))
		case frameTheme:
			theme := sess.router.ToggleTheme()
			if s.history != nil {
				if err := s.history.SetTheme(ctx, sess.id, theme); err != nil {
					sess.logger.Warn("saving theme failed", zap.Error(err))
				}
			}
		default:
			sess.sink.send(serverFrame{Type: frameError, Message: "unknown message type: " + f.Type, Code: http.StatusBadRequest})
		}
	}
}

// openSession resumes or creates the session, greets the client and shows
// the restored page.
func (s *Server) openSession(ctx context.Context, conn *websocket.Conn, requested string) (*liveSession, error) {
	id := requested
	theme := router.ThemeLight
	var location router.Location

	if s.history != nil {
		resumed, ok, err := s.history.Resume(ctx, requested)
		if err != nil {
			return nil, err
		}
		id = resumed
		if ok {
			if theme, err = s.history.Theme(ctx, id); err != nil {
				return nil, err
			}
		}
		location = s.history.Location(id)
	} else {
		if id == "" {
			id = uuid.NewString()
		}
		location = router.NewMemoryLocation("")
	}

	logger := s.logger.With(zap.String("session", id))
	sink := &wsSink{conn: conn, logger: logger}
	rt, err := router.New(s.table, router.Options{
		Home:     s.cfg.Home,
		Delay:    s.cfg.Delay,
		Render:   s.cfg.Render,
		Sink:     sink,
		Location: location,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	if err := sink.send(serverFrame{Type: frameHello, Session: id}); err != nil {
		return nil, err
	}
	if theme == router.ThemeDark {
		rt.ToggleTheme()
	}
	if err := rt.RestoreFromLocation(ctx); err != nil {
		return nil, err
	}

	return &liveSession{id: id, router: rt, sink: sink, logger: logger}, nil
}

// report forwards errors the client should see. Dropped navigations,
// cancelled sessions and empty searches (already sent as a notice) are
// not reported.
func (l *liveSession) report(err error) {
	switch {
	case err == nil,
		errors.Is(err, router.ErrNavigationBusy),
		errors.Is(err, router.ErrNoSearchResults),
		errors.Is(err, context.Canceled):
		return
	}
	l.sink.sendError(err)
}
