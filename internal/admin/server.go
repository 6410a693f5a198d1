// HTTP status server for a running simulator session.
package admin

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"adasops/internal/session"
)

type Server struct {
	Session *session.Session
	tpl     *template.Template
}

//go:embed templates/index.html
var content embed.FS

// NewServer wraps a session for status reporting.
func NewServer(sess *session.Session) *Server {
	tpl := template.Must(template.New("index.html").ParseFS(content, "templates/index.html"))
	return &Server{Session: sess, tpl: tpl}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/telemetry", s.handleTelemetry)
	mux.HandleFunc("/actors", s.handleActors)
	mux.HandleFunc("/healthz", s.handleHealthz)
	return mux
}

// Start serves until the context is canceled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.routes()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	return srv.ListenAndServe()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		SessionID string
		MapName   string
		Actors    []session.ActorInfo
		Latest    any
	}{
		SessionID: s.Session.ID(),
		MapName:   s.Session.MapName(),
		Actors:    s.Session.Actors(),
		Latest:    s.Session.Snapshot(),
	}
	s.tpl.Execute(w, data)
}

func (s *Server) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Session.Snapshot())
}

func (s *Server) handleActors(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	actors := s.Session.Actors()
	if actors == nil {
		actors = []session.ActorInfo{}
	}
	json.NewEncoder(w).Encode(actors)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
