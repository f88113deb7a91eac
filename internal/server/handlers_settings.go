package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/maplebrook/homeledger/internal/ledger"
)

func (s *Server) listSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.store.ListSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if settings == nil {
		settings = []ledger.Setting{}
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) putSetting(w http.ResponseWriter, r *http.Request) {
	key := ledger.SettingKey(chi.URLParam(r, "key"))

	var req struct {
		Value string `json:"setting_value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	// The domestic currency drives balancing of every future import;
	// reject garbage before it lands.
	if key == ledger.SettingDomesticCurrency {
		value := strings.ToUpper(strings.TrimSpace(req.Value))
		if !ledger.ValidCurrencyCode(value) {
			writeError(w, http.StatusBadRequest, ledger.ErrInvalidCurrency.Error())
			return
		}
		req.Value = value
	}

	if err := s.store.PutSetting(r.Context(), key, req.Value); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ledger.Setting{Key: key, Value: req.Value})
}
