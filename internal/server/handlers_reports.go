package server

import (
	"net/http"

	"github.com/maplebrook/homeledger/internal/store"
)

func (s *Server) expenseList(w http.ResponseWriter, r *http.Request) {
	rows, err := s.store.ExpenseList(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rows == nil {
		rows = []store.JournalRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) balanceSheet(w http.ResponseWriter, r *http.Request) {
	rows, err := s.store.BalanceSheetOverview(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rows == nil {
		rows = []store.BalanceRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func trendParams(r *http.Request) (store.TrendGranularity, string, string) {
	granularity := store.TrendDaily
	if r.URL.Query().Get("granularity") == "month" {
		granularity = store.TrendMonthly
	}
	return granularity, r.URL.Query().Get("from"), r.URL.Query().Get("to")
}

func (s *Server) expenseTrend(w http.ResponseWriter, r *http.Request) {
	granularity, from, to := trendParams(r)
	rows, err := s.store.ExpenseTrend(r.Context(), granularity, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rows == nil {
		rows = []store.ExpenseTrendRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) assetsTrend(w http.ResponseWriter, r *http.Request) {
	granularity, from, to := trendParams(r)
	points, err := s.store.AssetsTrend(r.Context(), granularity, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if points == nil {
		points = []store.AssetsTrendPoint{}
	}
	writeJSON(w, http.StatusOK, points)
}
