// Package client is the HTTP client for the homeledger API, used by
// the CLI commands.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/maplebrook/homeledger/internal/importer"
	"github.com/maplebrook/homeledger/internal/ledger"
	"github.com/maplebrook/homeledger/internal/store"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) ListAccounts(ctx context.Context, types string, activeOnly bool, userManaged *bool) ([]ledger.Account, error) {
	params := url.Values{}
	if types != "" {
		params.Set("type", types)
	}
	if activeOnly {
		params.Set("active", "true")
	}
	if userManaged != nil {
		if *userManaged {
			params.Set("user_managed", "true")
		} else {
			params.Set("user_managed", "false")
		}
	}
	var result []ledger.Account
	if err := c.get(ctx, "/api/v1/accounts?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) GetAccount(ctx context.Context, code string) (*ledger.Account, error) {
	var result ledger.Account
	if err := c.get(ctx, "/api/v1/accounts/"+url.PathEscape(code), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CreateAccount(ctx context.Context, name string, accountType ledger.AccountType, active bool) (*ledger.Account, error) {
	body := map[string]any{
		"account_name": name,
		"account_type": accountType,
		"is_active":    active,
	}
	var result ledger.Account
	if err := c.post(ctx, "/api/v1/accounts", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) UpdateAccount(ctx context.Context, code, name string, active bool) (*ledger.Account, error) {
	body := map[string]any{
		"account_name": name,
		"is_active":    active,
	}
	var result ledger.Account
	if err := c.patch(ctx, "/api/v1/accounts/"+url.PathEscape(code), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) AccountTransactions(ctx context.Context, code string) ([]store.JournalRow, error) {
	var result []store.JournalRow
	if err := c.get(ctx, "/api/v1/accounts/"+url.PathEscape(code)+"/transactions", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// EntryResponse mirrors the server's entry payload.
type EntryResponse struct {
	Entry ledger.Entry        `json:"entry"`
	Lines []ledger.LineDetail `json:"lines"`
}

type SaveEntryRequest struct {
	AccountingDate string           `json:"accounting_date"`
	Type           ledger.EntryType `json:"entry_type"`
	Title          *string          `json:"entry_title"`
	Text           *string          `json:"entry_text"`
	Lines          []ledger.Line    `json:"lines"`
}

func (c *Client) CreateEntry(ctx context.Context, req *SaveEntryRequest) (*EntryResponse, error) {
	var result EntryResponse
	if err := c.post(ctx, "/api/v1/entries", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ReplaceEntry(ctx context.Context, entryUUID string, req *SaveEntryRequest) (*EntryResponse, error) {
	var result EntryResponse
	if err := c.put(ctx, "/api/v1/entries/"+url.PathEscape(entryUUID), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetEntry(ctx context.Context, entryUUID string) (*EntryResponse, error) {
	var result EntryResponse
	if err := c.get(ctx, "/api/v1/entries/"+url.PathEscape(entryUUID), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) DeleteEntry(ctx context.Context, entryUUID string) error {
	return c.del(ctx, "/api/v1/entries/"+url.PathEscape(entryUUID))
}

func (c *Client) ExpenseList(ctx context.Context) ([]store.JournalRow, error) {
	var result []store.JournalRow
	if err := c.get(ctx, "/api/v1/reports/expenses", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) BalanceSheet(ctx context.Context) ([]store.BalanceRow, error) {
	var result []store.BalanceRow
	if err := c.get(ctx, "/api/v1/reports/balance-sheet", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func trendQuery(granularity store.TrendGranularity, from, to string) string {
	params := url.Values{}
	params.Set("granularity", string(granularity))
	if from != "" {
		params.Set("from", from)
	}
	if to != "" {
		params.Set("to", to)
	}
	return params.Encode()
}

func (c *Client) ExpenseTrend(ctx context.Context, granularity store.TrendGranularity, from, to string) ([]store.ExpenseTrendRow, error) {
	var result []store.ExpenseTrendRow
	if err := c.get(ctx, "/api/v1/reports/expense-trend?"+trendQuery(granularity, from, to), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) AssetsTrend(ctx context.Context, granularity store.TrendGranularity, from, to string) ([]store.AssetsTrendPoint, error) {
	var result []store.AssetsTrendPoint
	if err := c.get(ctx, "/api/v1/reports/assets-trend?"+trendQuery(granularity, from, to), &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Import ships a raw JSON payload to the server's import pipeline.
func (c *Client) Import(ctx context.Context, payload []byte) (*importer.Result, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/v1/import", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var result importer.Result
	if err := c.doRequest(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListSettings(ctx context.Context) ([]ledger.Setting, error) {
	var result []ledger.Setting
	if err := c.get(ctx, "/api/v1/settings", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) PutSetting(ctx context.Context, key ledger.SettingKey, value string) (*ledger.Setting, error) {
	body := map[string]any{"setting_value": value}
	var result ledger.Setting
	if err := c.put(ctx, "/api/v1/settings/"+url.PathEscape(string(key)), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.doRequest(req, result)
}

func (c *Client) del(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, "DELETE", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.doRequest(req, nil)
}

func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	return c.send(ctx, "POST", path, body, result)
}

func (c *Client) put(ctx context.Context, path string, body any, result any) error {
	return c.send(ctx, "PUT", path, body, result)
}

func (c *Client) patch(ctx context.Context, path string, body any, result any) error {
	return c.send(ctx, "PATCH", path, body, result)
}

func (c *Client) send(ctx context.Context, method, path string, body any, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doRequest(req, result)
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) doRequest(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(bodyBytes, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	if result != nil && len(bodyBytes) > 0 {
		if err := json.Unmarshal(bodyBytes, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
