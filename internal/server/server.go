// Package server exposes the ledger over a JSON HTTP API.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tallyup/tallyup/internal/ledger"
)

// Server routes HTTP requests to a Ledger instance. The ledger and logger are
// injected, never accessed through a global.
type Server struct {
	ledger *ledger.Ledger
	router chi.Router
	logger *slog.Logger
}

// New creates a Server for the given ledger. logger may be nil to use the
// default.
func New(l *ledger.Ledger, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	s := &Server{ledger: l, router: r, logger: logger}

	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(requestMetrics)
	r.Use(corsHeaders)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.getState)

		r.Post("/people", s.addPerson)
		r.Delete("/people/{id}", s.deletePerson)

		r.Post("/groups", s.addGroup)
		r.Delete("/groups/{id}", s.deleteGroup)

		r.Post("/expenses", s.addExpense)
		r.Delete("/expenses/{id}", s.deleteExpense)

		r.Get("/balances", s.getBalances)
		r.Get("/settlements", s.getSettlements)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}
