package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/maplebrook/homeledger/internal/ledger"
	"github.com/maplebrook/homeledger/internal/store"
)

func (s *Server) getAttachment(w http.ResponseWriter, r *http.Request) {
	entryUUID := chi.URLParam(r, "uuid")
	att, err := s.store.GetAttachment(r.Context(), entryUUID)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", att.MIMEType)
	if att.FileName != nil {
		w.Header().Set("Content-Disposition", `attachment; filename="`+*att.FileName+`"`)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(att.Blob)
}

func (s *Server) putAttachment(w http.ResponseWriter, r *http.Request) {
	entryUUID := chi.URLParam(r, "uuid")

	// The entry must exist; an attachment has no life of its own.
	if _, err := s.store.GetEntryHeader(r.Context(), entryUUID); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	blob, err := io.ReadAll(io.LimitReader(r.Body, store.AttachmentMaxBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}

	var fileName *string
	if fn := r.URL.Query().Get("filename"); fn != "" {
		fileName = &fn
	}

	err = s.store.UpsertAttachment(r.Context(), entryUUID, fileName, r.Header.Get("Content-Type"), blob)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteAttachment(w http.ResponseWriter, r *http.Request) {
	entryUUID := chi.URLParam(r, "uuid")
	if err := s.store.DeleteAttachment(r.Context(), entryUUID); err != nil {
		if errors.Is(err, ledger.ErrAttachmentNotFound) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeError(w, mapError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
