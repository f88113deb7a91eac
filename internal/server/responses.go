package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/maplebrook/homeledger/internal/importer"
	"github.com/maplebrook/homeledger/internal/ledger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func mapError(err error) int {
	var importErr *importer.Error
	if errors.As(err, &importErr) {
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, ledger.ErrAccountNotFound),
		errors.Is(err, ledger.ErrEntryNotFound),
		errors.Is(err, ledger.ErrAttachmentNotFound),
		errors.Is(err, ledger.ErrNotUserManaged):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInvalidAccountCode),
		errors.Is(err, ledger.ErrInvalidAccountType),
		errors.Is(err, ledger.ErrEmptyAccountName),
		errors.Is(err, ledger.ErrTypePLMismatch),
		errors.Is(err, ledger.ErrNoLines),
		errors.Is(err, ledger.ErrInvalidDC),
		errors.Is(err, ledger.ErrInvalidDate),
		errors.Is(err, ledger.ErrInvalidEntryType),
		errors.Is(err, ledger.ErrUnbalancedEntry),
		errors.Is(err, ledger.ErrUnknownAccount),
		errors.Is(err, ledger.ErrInactiveAccount),
		errors.Is(err, ledger.ErrInvalidCurrency),
		errors.Is(err, ledger.ErrInvalidMIMEType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
