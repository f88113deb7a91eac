package server

import (
	"log"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/maplebrook/homeledger/internal/importer"
	"github.com/maplebrook/homeledger/internal/store"
)

type Server struct {
	store    *store.Store
	importer *importer.Service
	router   chi.Router
	addr     string
}

func New(st *store.Store, addr string) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	s := &Server{store: st, importer: importer.New(st), router: r, addr: addr}

	r.Route("/api/v1", func(r chi.Router) {
		// Accounts
		r.Get("/accounts", s.listAccounts)
		r.Post("/accounts", s.createAccount)
		r.Get("/accounts/{code}", s.getAccount)
		r.Patch("/accounts/{code}", s.updateAccount)
		r.Get("/accounts/{code}/transactions", s.accountTransactions)

		// Entries
		r.Post("/entries", s.createEntry)
		r.Get("/entries/{uuid}", s.getEntry)
		r.Put("/entries/{uuid}", s.replaceEntry)
		r.Delete("/entries/{uuid}", s.deleteEntry)

		// Attachments
		r.Get("/entries/{uuid}/attachment", s.getAttachment)
		r.Put("/entries/{uuid}/attachment", s.putAttachment)
		r.Delete("/entries/{uuid}/attachment", s.deleteAttachment)

		// Reports
		r.Get("/reports/expenses", s.expenseList)
		r.Get("/reports/balance-sheet", s.balanceSheet)
		r.Get("/reports/expense-trend", s.expenseTrend)
		r.Get("/reports/assets-trend", s.assetsTrend)

		// Import
		r.Post("/import", s.importPayload)

		// Settings
		r.Get("/settings", s.listSettings)
		r.Put("/settings/{key}", s.putSetting)
	})

	return s
}

func (s *Server) ListenAndServe() error {
	log.Printf("homeledger server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, s.router)
}

func (s *Server) Serve(ln net.Listener) error {
	log.Printf("homeledger server listening on %s", ln.Addr())
	return http.Serve(ln, s.router)
}

func (s *Server) Handler() http.Handler {
	return s.router
}
