package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/pageshell/internal/content"
	"github.com/ziadkadry99/pageshell/internal/db"
	"github.com/ziadkadry99/pageshell/internal/history"
	"github.com/ziadkadry99/pageshell/internal/router"
)

func testTable(t *testing.T) *content.Table {
	t.Helper()
	table, err := content.NewTable(
		content.Record{Route: "home", Title: "Welcome", Breadcrumb: []string{"Home"}, Body: "# Welcome\n\nStart here."},
		content.Record{Route: "about", Title: "About Us", Breadcrumb: []string{"Home", "About Us"}, Body: "## Story\n\nWe write software."},
		content.Record{Route: "contact", Title: "Contact", Breadcrumb: []string{"Home", "Contact"}, Body: "Mail us about software."},
	)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return table
}

func setupServer(t *testing.T, cfg Config, store *history.Store) *Server {
	t.Helper()
	cfg.SiteName = "Valley"
	srv, err := New(cfg, testTable(t), store, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv
}

func setupHistory(t *testing.T) *history.Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return history.NewStore(database)
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestNewRequiresHome(t *testing.T) {
	if _, err := New(Config{Home: "missing"}, testTable(t), nil, nil); err == nil {
		t.Fatal("expected error for missing home route")
	}
}

func TestHealthCheck(t *testing.T) {
	srv := setupServer(t, Config{}, nil)

	w := get(t, srv, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := setupServer(t, Config{AllowAll: true}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestRoutesEndpoint(t *testing.T) {
	srv := setupServer(t, Config{}, nil)

	w := get(t, srv, "/api/routes")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var routes []routeSummary
	if err := json.Unmarshal(w.Body.Bytes(), &routes); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(routes) != 3 || routes[0].Route != "home" || routes[2].Route != "contact" {
		t.Errorf("unexpected routes: %+v", routes)
	}
	if strings.Contains(w.Body.String(), "Start here") {
		t.Error("route listing should not include page bodies")
	}
}

func TestPageEndpoint(t *testing.T) {
	srv := setupServer(t, Config{}, nil)

	w := get(t, srv, "/api/pages/about")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var view router.View
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if view.DocumentTitle != "About Us - Valley" {
		t.Errorf("document title = %q", view.DocumentTitle)
	}
	if !strings.Contains(view.Body, `<h2 id="heading-0">Story</h2>`) {
		t.Errorf("body missing anchored heading: %s", view.Body)
	}
	if len(view.TOC) != 1 || view.TOC[0].Label != "Story" {
		t.Errorf("unexpected toc: %+v", view.TOC)
	}
}

func TestPageEndpointNotFound(t *testing.T) {
	srv := setupServer(t, Config{}, nil)

	w := get(t, srv, "/api/pages/nowhere")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestSearchEndpoint(t *testing.T) {
	srv := setupServer(t, Config{}, nil)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "first match", path: "/api/search?q=software", wantStatus: http.StatusOK, wantBody: `{"route":"about"}`},
		{name: "all matches", path: "/api/search?q=software&all=true", wantStatus: http.StatusOK, wantBody: `"route":"contact"`},
		{name: "no results", path: "/api/search?q=Abut", wantStatus: http.StatusNotFound, wantBody: `"suggestions":["About Us"]`},
		{name: "empty query", path: "/api/search?q=+", wantStatus: http.StatusBadRequest, wantBody: "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, srv, tt.path)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("body %s does not contain %s", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestShell(t *testing.T) {
	srv := setupServer(t, Config{}, nil)

	w := get(t, srv, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"<title>Valley</title>", `data-route="about"`, "/ws?session="} {
		if !strings.Contains(body, want) {
			t.Errorf("shell missing %q", want)
		}
	}
}

func dial(t *testing.T, ts *httptest.Server, session string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?session=" + session
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) serverFrame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var f serverFrame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read: %v", err)
	}
	return f
}

func expectFrame(t *testing.T, conn *websocket.Conn, typ string) serverFrame {
	t.Helper()
	f := readFrame(t, conn)
	if f.Type != typ {
		t.Fatalf("expected %q frame, got %+v", typ, f)
	}
	return f
}

func TestLiveSessionNavigate(t *testing.T) {
	srv := setupServer(t, Config{}, nil)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	conn := dial(t, ts, "")

	hello := expectFrame(t, conn, frameHello)
	if hello.Session == "" {
		t.Fatal("expected a session id")
	}
	if f := expectFrame(t, conn, frameRender); f.View.Route != "home" {
		t.Fatalf("expected home to be restored, got %q", f.View.Route)
	}

	if err := conn.WriteJSON(clientFrame{Type: frameNavigate, Route: "about"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if f := expectFrame(t, conn, frameLoading); f.Loading == nil || !*f.Loading {
		t.Fatalf("expected loading on, got %+v", f)
	}
	if f := expectFrame(t, conn, frameRender); f.View.Title != "About Us" {
		t.Fatalf("expected About Us, got %q", f.View.Title)
	}
	if f := expectFrame(t, conn, frameLoading); f.Loading == nil || *f.Loading {
		t.Fatalf("expected loading off, got %+v", f)
	}

	if err := conn.WriteJSON(clientFrame{Type: frameNavigate, Route: "nowhere"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if f := expectFrame(t, conn, frameError); f.Code != http.StatusNotFound {
		t.Fatalf("expected 404 error frame, got %+v", f)
	}
}

func TestLiveSessionSearchAndTheme(t *testing.T) {
	srv := setupServer(t, Config{}, nil)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	conn := dial(t, ts, "")
	expectFrame(t, conn, frameHello)
	expectFrame(t, conn, frameRender)

	conn.WriteJSON(clientFrame{Type: frameSearch, Query: "Abut"})
	if f := expectFrame(t, conn, frameNotice); f.Notice == nil || f.Notice.Kind != router.NoticeNoResults {
		t.Fatalf("expected no-results notice, got %+v", f)
	}

	conn.WriteJSON(clientFrame{Type: frameTheme})
	if f := expectFrame(t, conn, frameTheme); f.Theme != router.ThemeDark {
		t.Fatalf("expected dark theme, got %q", f.Theme)
	}

	conn.WriteJSON(clientFrame{Type: "dance"})
	if f := expectFrame(t, conn, frameError); f.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 error frame, got %+v", f)
	}
}

func TestLiveSessionResumesFromHistory(t *testing.T) {
	srv := setupServer(t, Config{}, setupHistory(t))
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	first := dial(t, ts, "")
	session := expectFrame(t, first, frameHello).Session
	expectFrame(t, first, frameRender)

	first.WriteJSON(clientFrame{Type: frameNavigate, Route: "contact"})
	expectFrame(t, first, frameLoading)
	expectFrame(t, first, frameRender)
	expectFrame(t, first, frameLoading)

	first.WriteJSON(clientFrame{Type: frameTheme})
	expectFrame(t, first, frameTheme)
	// A round trip guarantees the theme was saved before reconnecting.
	first.WriteJSON(clientFrame{Type: frameHistory, Route: "contact"})
	expectFrame(t, first, frameRender)
	first.Close()

	second := dial(t, ts, session)
	if got := expectFrame(t, second, frameHello).Session; got != session {
		t.Fatalf("expected session %q to resume, got %q", session, got)
	}
	if f := expectFrame(t, second, frameTheme); f.Theme != router.ThemeDark {
		t.Fatalf("expected stored dark theme, got %q", f.Theme)
	}
	if f := expectFrame(t, second, frameRender); f.View.Route != "contact" {
		t.Fatalf("expected contact to be restored, got %q", f.View.Route)
	}
}
