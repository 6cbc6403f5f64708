package healthapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Server is the disposable local target used to exercise the probe end to
// end without a real service. /health answers with a fixed marker body;
// /slow does the same after a delay, handy for timeout checks.
type Server struct {
	Logger *zap.Logger
	Body   string
}

func NewServer(l *zap.Logger, body string) *Server {
	if l == nil {
		l = zap.NewNop()
	}
	if body == "" {
		body = "OK"
	}
	return &Server{Logger: l, Body: body}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(s.Body))
	})

	r.Get("/slow", func(w http.ResponseWriter, req *http.Request) {
		delay := 2 * time.Second
		if v := req.URL.Query().Get("delay"); v != "" {
			if d, err := time.ParseDuration(v); err == nil && d >= 0 {
				delay = d
			}
		}
		select {
		case <-req.Context().Done():
			return
		case <-time.After(delay):
		}
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(s.Body))
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		s.Logger.Debug("not_found", zap.String("path", req.URL.Path))
		w.WriteHeader(http.StatusNotFound)
	})

	return r
}
