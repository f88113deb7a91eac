package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/maplebrook/homeledger/internal/ledger"
)

type saveEntryRequest struct {
	AccountingDate string           `json:"accounting_date"`
	Type           ledger.EntryType `json:"entry_type"`
	Title          *string          `json:"entry_title"`
	Text           *string          `json:"entry_text"`
	Lines          []ledger.Line    `json:"lines"`
}

type entryResponse struct {
	Entry ledger.Entry        `json:"entry"`
	Lines []ledger.LineDetail `json:"lines"`
}

func (s *Server) createEntry(w http.ResponseWriter, r *http.Request) {
	var req saveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	entry := &ledger.Entry{
		UUID:           uuid.Must(uuid.NewV7()).String(),
		AccountingDate: req.AccountingDate,
		Type:           req.Type,
		Title:          req.Title,
		Text:           req.Text,
	}
	if err := s.store.SaveEntryFullReplace(r.Context(), entry, req.Lines, true); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	s.respondEntry(w, r, entry.UUID, http.StatusCreated)
}

func (s *Server) replaceEntry(w http.ResponseWriter, r *http.Request) {
	entryUUID := chi.URLParam(r, "uuid")

	var req saveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	entry := &ledger.Entry{
		UUID:           entryUUID,
		AccountingDate: req.AccountingDate,
		Type:           req.Type,
		Title:          req.Title,
		Text:           req.Text,
	}
	if err := s.store.SaveEntryFullReplace(r.Context(), entry, req.Lines, false); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	s.respondEntry(w, r, entryUUID, http.StatusOK)
}

func (s *Server) getEntry(w http.ResponseWriter, r *http.Request) {
	s.respondEntry(w, r, chi.URLParam(r, "uuid"), http.StatusOK)
}

func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	entryUUID := chi.URLParam(r, "uuid")
	if err := s.store.DeleteEntry(r.Context(), entryUUID); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) respondEntry(w http.ResponseWriter, r *http.Request, entryUUID string, status int) {
	header, err := s.store.GetEntryHeader(r.Context(), entryUUID)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	lines, err := s.store.GetEntryLines(r.Context(), entryUUID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if lines == nil {
		lines = []ledger.LineDetail{}
	}
	writeJSON(w, status, entryResponse{Entry: *header, Lines: lines})
}
