package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/maplebrook/homeledger/internal/ledger"
	"github.com/maplebrook/homeledger/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	ts := httptest.NewServer(New(st, "").Handler())
	t.Cleanup(func() {
		ts.Close()
		st.Close()
	})
	return ts
}

func doJSON(t *testing.T, ts *httptest.Server, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, ts.URL+path, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func TestAccountsEndpoints(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, ts, http.MethodGet, "/api/v1/accounts", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var accounts []ledger.Account
	require.NoError(t, json.Unmarshal(body, &accounts))
	assert.Len(t, accounts, len(ledger.SystemAccounts))

	resp, body = doJSON(t, ts, http.MethodPost, "/api/v1/accounts", map[string]any{
		"account_name": "Checking",
		"account_type": "ASSET",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created ledger.Account
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "1000000002", created.Code)
	assert.True(t, created.IsActive)

	resp, _ = doJSON(t, ts, http.MethodPost, "/api/v1/accounts", map[string]any{
		"account_name": "Groceries",
		"account_type": "EXPENSE",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = doJSON(t, ts, http.MethodPatch, "/api/v1/accounts/"+created.Code, map[string]any{
		"account_name": "Main checking",
		"is_active":    true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated ledger.Account
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "Main checking", updated.Name)

	resp, _ = doJSON(t, ts, http.MethodPatch, "/api/v1/accounts/"+ledger.CashAccountCode, map[string]any{
		"account_name": "Wallet",
		"is_active":    true,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, ts, http.MethodGet, "/api/v1/accounts?type=EXPENSE&active=true", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &accounts))
	assert.Len(t, accounts, 11)

	resp, _ = doJSON(t, ts, http.MethodGet, "/api/v1/accounts?type=BOGUS", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEntryLifecycle(t *testing.T) {
	ts := newTestServer(t)

	save := map[string]any{
		"accounting_date": "2026-03-01",
		"entry_type":      "EXPENSE",
		"entry_title":     "Tesco",
		"lines": []map[string]any{
			{"account_code": "5000000001", "dc": "D", "amount_domestic": 24.70, "currency_original": "GBP"},
			{"account_code": ledger.CashAccountCode, "dc": "C", "amount_domestic": 24.70, "currency_original": "GBP"},
		},
	}
	resp, body := doJSON(t, ts, http.MethodPost, "/api/v1/entries", save)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var er entryResponse
	require.NoError(t, json.Unmarshal(body, &er))
	require.Len(t, er.Lines, 2)
	id := er.Entry.UUID
	require.NotEmpty(t, id)

	resp, body = doJSON(t, ts, http.MethodGet, "/api/v1/entries/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &er))
	assert.Equal(t, "2026-03-01", er.Entry.AccountingDate)

	// Full-replace with a new split.
	save["lines"] = []map[string]any{
		{"account_code": "5000000001", "dc": "D", "amount_domestic": 18.50, "currency_original": "GBP"},
		{"account_code": "5000000007", "dc": "D", "amount_domestic": 6.20, "currency_original": "GBP"},
		{"account_code": ledger.CashAccountCode, "dc": "C", "amount_domestic": 24.70, "currency_original": "GBP"},
	}
	resp, body = doJSON(t, ts, http.MethodPut, "/api/v1/entries/"+id, save)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &er))
	require.Len(t, er.Lines, 3)
	assert.Equal(t, 1, er.Lines[0].LineNo)
	assert.Equal(t, 3, er.Lines[2].LineNo)

	// Unbalanced replace is rejected and changes nothing.
	save["lines"] = []map[string]any{
		{"account_code": "5000000001", "dc": "D", "amount_domestic": 10.0, "currency_original": "GBP"},
		{"account_code": ledger.CashAccountCode, "dc": "C", "amount_domestic": 9.0, "currency_original": "GBP"},
	}
	resp, _ = doJSON(t, ts, http.MethodPut, "/api/v1/entries/"+id, save)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, body = doJSON(t, ts, http.MethodGet, "/api/v1/entries/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &er))
	assert.Len(t, er.Lines, 3)

	resp, _ = doJSON(t, ts, http.MethodDelete, "/api/v1/entries/"+id, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = doJSON(t, ts, http.MethodGet, "/api/v1/entries/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestImportEndpoint(t *testing.T) {
	ts := newTestServer(t)

	payload := `{
		"date": "2026-03-01",
		"store": "Tesco",
		"payment_account": "Cash",
		"lines": [
			{"expense_category": "Food and dining", "amount_domestic": 18.50},
			{"expense_category": "Household supplies", "amount_domestic": 6.20}
		]
	}`
	resp, err := http.Post(ts.URL+"/api/v1/import", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var res struct {
		EntryUUID           string  `json:"entry_uuid"`
		TotalAmountDomestic float64 `json:"total_amount_domestic"`
		LineCount           int     `json:"line_count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.NotEmpty(t, res.EntryUUID)
	assert.InDelta(t, 24.70, res.TotalAmountDomestic, 1e-9)
	assert.Equal(t, 2, res.LineCount)

	// Validation failures surface as 400 with the offending field named.
	resp, err = http.Post(ts.URL+"/api/v1/import", "application/json", strings.NewReader(`{"payment_account":"Cash"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	assert.Contains(t, e.Error, "lines is required")
}

func TestReportsEndpoints(t *testing.T) {
	ts := newTestServer(t)

	payload := `{"date":"2026-03-01","payment_account":"Cash","lines":[{"expense_category":"Food and dining","amount_domestic":20}]}`
	resp, err := http.Post(ts.URL+"/api/v1/import", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, ts, http.MethodGet, "/api/v1/reports/expenses", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rows []store.JournalRow
	require.NoError(t, json.Unmarshal(body, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "5000000001", rows[0].AccountCode)

	resp, body = doJSON(t, ts, http.MethodGet, "/api/v1/reports/balance-sheet", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var balances []store.BalanceRow
	require.NoError(t, json.Unmarshal(body, &balances))
	require.NotEmpty(t, balances)

	resp, body = doJSON(t, ts, http.MethodGet, "/api/v1/reports/expense-trend?granularity=month", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var trend []store.ExpenseTrendRow
	require.NoError(t, json.Unmarshal(body, &trend))
	require.Len(t, trend, 1)
	assert.Equal(t, "2026-03", trend[0].Label)

	resp, body = doJSON(t, ts, http.MethodGet, "/api/v1/reports/assets-trend", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var points []store.AssetsTrendPoint
	require.NoError(t, json.Unmarshal(body, &points))
	require.Len(t, points, 1)
	assert.InDelta(t, -20.0, points[0].AssetBalance, 1e-9)
}

func TestSettingsEndpoints(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, ts, http.MethodGet, "/api/v1/settings", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var settings []ledger.Setting
	require.NoError(t, json.Unmarshal(body, &settings))
	assert.Len(t, settings, 2)

	resp, body = doJSON(t, ts, http.MethodPut, "/api/v1/settings/CURRENCY_DOMESTIC", map[string]any{
		"setting_value": "usd",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var st ledger.Setting
	require.NoError(t, json.Unmarshal(body, &st))
	assert.Equal(t, "USD", st.Value)

	resp, _ = doJSON(t, ts, http.MethodPut, "/api/v1/settings/CURRENCY_DOMESTIC", map[string]any{
		"setting_value": "POUNDS",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAttachmentEndpoints(t *testing.T) {
	ts := newTestServer(t)

	save := map[string]any{
		"accounting_date": "2026-03-01",
		"entry_type":      "EXPENSE",
		"lines": []map[string]any{
			{"account_code": "5000000001", "dc": "D", "amount_domestic": 10.0, "currency_original": "GBP"},
			{"account_code": ledger.CashAccountCode, "dc": "C", "amount_domestic": 10.0, "currency_original": "GBP"},
		},
	}
	resp, body := doJSON(t, ts, http.MethodPost, "/api/v1/entries", save)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var er entryResponse
	require.NoError(t, json.Unmarshal(body, &er))
	id := er.Entry.UUID

	blob := []byte("%PDF-1.4 fake")
	req, err := http.NewRequest(http.MethodPut,
		ts.URL+"/api/v1/entries/"+id+"/attachment?filename=receipt.pdf",
		bytes.NewReader(blob))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/pdf")
	putResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	putResp.Body.Close()
	require.Equal(t, http.StatusNoContent, putResp.StatusCode)

	getResp, err := http.Get(ts.URL + "/api/v1/entries/" + id + "/attachment")
	require.NoError(t, err)
	defer getResp.Body.Close()
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	assert.Equal(t, "application/pdf", getResp.Header.Get("Content-Type"))
	var buf bytes.Buffer
	_, err = buf.ReadFrom(getResp.Body)
	require.NoError(t, err)
	assert.Equal(t, blob, buf.Bytes())

	resp, _ = doJSON(t, ts, http.MethodDelete, "/api/v1/entries/"+id+"/attachment", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	getResp, err = http.Get(ts.URL + "/api/v1/entries/" + id + "/attachment")
	require.NoError(t, err)
	getResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}
