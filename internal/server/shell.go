package server

import (
	_ "embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed shell.html
var shellHTML string

var shellTemplate = template.Must(template.New("shell").Parse(shellHTML))

type shellData struct {
	SiteName string
	Routes   []routeSummary
}

// handleShell serves the single page that drives a live session.
func (s *Server) handleShell(w http.ResponseWriter, r *http.Request) {
	data := shellData{SiteName: s.cfg.SiteName}
	for _, rec := range s.table.Records() {
		data.Routes = append(data.Routes, routeSummary{Route: rec.Route, Title: rec.Title, Breadcrumb: rec.Breadcrumb})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := shellTemplate.Execute(w, data); err != nil {
		s.logger.Error("rendering shell failed", zap.Error(err))
	}
}
