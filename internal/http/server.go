package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"expensetracker/internal/controller"
	"expensetracker/internal/log"
	"expensetracker/internal/middleware/security"
	"expensetracker/internal/middleware/trace"
	"expensetracker/internal/view"
)

// Server serves the controller of a single tracking session.
type Server struct {
	http.Server
	controller *controller.Controller
	view       *view.Table
	logger     *log.Logger
	tracer     *trace.Middleware

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, c *controller.Controller, v *view.Table, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Discard()
	}
	mux := http.NewServeMux()

	s := &Server{
		Server:     http.Server{Addr: addr},
		controller: c,
		view:       v,
		logger:     logger.WithComponent(log.ComponentHTTP),
		tracer:     trace.NewMiddleware(),
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleHealth)

	mux.HandleFunc("GET /transactions", s.handleListTransactions)
	mux.HandleFunc("POST /transactions", s.handleAddTransaction)
	mux.HandleFunc("PUT /filter", s.handleSetFilter)
	mux.HandleFunc("DELETE /filter", s.handleClearFilter)
	mux.HandleFunc("POST /filter/apply", s.handleApplyFilter)
	mux.HandleFunc("POST /undo", s.handleUndo)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	s.Handler = log.Middleware(logger)(s.tracer.Middleware(headers.Middleware(mux)))
	return s
}

// Metrics returns the request counters collected by the tracing middleware.
func (s *Server) Metrics() trace.Metrics {
	return s.tracer.GetMetrics()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.logger.InfoContext(ctx, "Shutting down HTTP server", log.FieldOperation, log.OpShutdown)
		err = s.Server.Shutdown(ctx)
	})
	return err
}

type errorResponse struct {
	Error    string   `json:"error"`
	Messages []string `json:"messages,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string, messages []string) {
	writeJSON(w, status, errorResponse{Error: msg, Messages: messages})
}
