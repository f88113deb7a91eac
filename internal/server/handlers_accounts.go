package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/maplebrook/homeledger/internal/ledger"
	"github.com/maplebrook/homeledger/internal/store"
)

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	filter := store.AccountFilter{}

	if types := r.URL.Query().Get("type"); types != "" {
		for _, t := range strings.Split(types, ",") {
			at := ledger.AccountType(t)
			if !at.Valid() {
				writeError(w, http.StatusBadRequest, "invalid account type: "+t)
				return
			}
			filter.Types = append(filter.Types, at)
		}
	}
	if r.URL.Query().Get("active") == "true" {
		filter.ActiveOnly = true
	}
	if um := r.URL.Query().Get("user_managed"); um != "" {
		v := um == "true" || um == "1"
		filter.UserManaged = &v
	}

	accounts, err := s.store.ListAccounts(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if accounts == nil {
		accounts = []ledger.Account{}
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	acct, err := s.store.GetAccount(r.Context(), code)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

type createAccountRequest struct {
	Name   string             `json:"account_name"`
	Type   ledger.AccountType `json:"account_type"`
	Active *bool              `json:"is_active,omitempty"`
}

func (s *Server) createAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	acct, err := s.store.CreateUserManagedAccount(r.Context(), req.Name, req.Type, active)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, acct)
}

type updateAccountRequest struct {
	Name   string `json:"account_name"`
	Active bool   `json:"is_active"`
}

func (s *Server) updateAccount(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if err := s.store.UpdateUserManagedAccount(r.Context(), code, req.Name, req.Active); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	acct, err := s.store.GetAccount(r.Context(), code)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

func (s *Server) accountTransactions(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	rows, err := s.store.AccountTransactions(r.Context(), code)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rows == nil {
		rows = []store.JournalRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}
