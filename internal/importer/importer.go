// Package importer turns untrusted external JSON (typically produced by
// an OCR/LLM extraction step) into one balanced EXPENSE entry. Unknown
// keys are a hard failure: silently discarding fields a producer set
// would lose information the user expects to be used.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maplebrook/homeledger/internal/ledger"
	"github.com/maplebrook/homeledger/internal/store"
)

// MaxLines bounds a single payload.
const MaxLines = 500

const (
	maxStoreLen = 200
	maxNoteLen  = 500
)

// Error is any import failure: validation, resolution, or persistence.
// The message always names the offending field or value.
type Error struct {
	msg  string
	wrap error
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.wrap }

func errf(format string, args ...any) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// Result summarizes one successful import.
type Result struct {
	EntryUUID           string  `json:"entry_uuid"`
	AccountingDate      string  `json:"accounting_date"`
	CurrencyOriginal    string  `json:"currency_original"`
	TotalAmountDomestic float64 `json:"total_amount_domestic"`
	LineCount           int     `json:"line_count"`
}

// Service validates and persists import payloads.
type Service struct {
	store *store.Store
}

func New(st *store.Store) *Service {
	return &Service{store: st}
}

// ImportFile reads a JSON payload from disk and imports it.
func (s *Service) ImportFile(ctx context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{msg: fmt.Sprintf("failed to read JSON file: %v", err), wrap: err}
	}
	return s.Import(ctx, data)
}

// Import runs the pipeline: decode, normalize-top, normalize-each-line,
// build-balanced-items, persist. Each stage fails fast with a
// field-named error; no stage partially commits.
func (s *Service) Import(ctx context.Context, data []byte) (*Result, error) {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &Error{msg: fmt.Sprintf("invalid JSON: %v", err), wrap: err}
	}
	return s.ImportPayload(ctx, payload)
}

func (s *Service) ImportPayload(ctx context.Context, payload any) (*Result, error) {
	top, err := s.normalizeTop(ctx, payload)
	if err != nil {
		return nil, err
	}

	normLines := make([]normalizedLine, 0, len(top.rawLines))
	for i, raw := range top.rawLines {
		nl, err := s.normalizeLine(ctx, i+1, raw)
		if err != nil {
			return nil, err
		}
		normLines = append(normLines, nl)
	}

	lines, totalDom, err := buildLines(top, normLines)
	if err != nil {
		return nil, err
	}

	entry := &ledger.Entry{
		UUID:           uuid.Must(uuid.NewV7()).String(),
		AccountingDate: top.accountingDate,
		Type:           ledger.EntryExpense,
		Title:          top.entryTitle,
		Text:           top.entryText,
	}
	if err := s.store.SaveEntryFullReplace(ctx, entry, lines, true); err != nil {
		// Persistence failures travel the same error channel as
		// validation failures; the caller cannot fix them differently.
		return nil, &Error{msg: err.Error(), wrap: err}
	}

	return &Result{
		EntryUUID:           entry.UUID,
		AccountingDate:      top.accountingDate,
		CurrencyOriginal:    top.currency,
		TotalAmountDomestic: totalDom,
		LineCount:           len(normLines),
	}, nil
}

type normalizedTop struct {
	accountingDate     string
	entryTitle         *string
	entryText          *string
	paymentAccountCode string
	currency           string
	rawLines           []any
}

type normalizedLine struct {
	accountCode    string
	amountDomestic float64
	amountOriginal float64
	itemText       *string
}

var topLevelKeys = map[string]bool{
	"date": true, "store": true, "note": true,
	"payment_account": true, "currency_original": true, "lines": true,
}

var lineLevelKeys = map[string]bool{
	"expense_category": true, "note": true,
	"amount_domestic": true, "amount_original": true,
}

func (s *Service) normalizeTop(ctx context.Context, payload any) (*normalizedTop, error) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, errf("top-level JSON must be an object")
	}

	if extra := extraKeys(obj, topLevelKeys); len(extra) > 0 {
		return nil, errf("unexpected fields: %s", strings.Join(extra, ", "))
	}
	if _, ok := obj["payment_account"]; !ok {
		return nil, errf("payment_account is required")
	}
	if _, ok := obj["lines"]; !ok {
		return nil, errf("lines is required")
	}

	var accountingDate string
	switch date := obj["date"].(type) {
	case nil:
		accountingDate = time.Now().Format(ledger.DateLayout)
	case string:
		if date == "" {
			accountingDate = time.Now().Format(ledger.DateLayout)
		} else if ledger.ValidDate(date) {
			accountingDate = date
		} else {
			return nil, errf("date must be YYYY-MM-DD or null")
		}
	default:
		return nil, errf("date must be YYYY-MM-DD or null")
	}

	entryTitle, err := optionalString(obj, "store", maxStoreLen)
	if err != nil {
		return nil, err
	}
	entryText, err := optionalString(obj, "note", maxNoteLen)
	if err != nil {
		return nil, err
	}

	payName, ok := obj["payment_account"].(string)
	if !ok || strings.TrimSpace(payName) == "" {
		return nil, errf("payment_account must be a non-empty string")
	}
	payAcct, err := s.store.FindAccountByName(ctx, strings.TrimSpace(payName), ledger.PaymentAccountTypes, true)
	if err != nil {
		return nil, errf("payment_account not found/active ASSET or LIAB account: %s", payName)
	}

	var currency string
	switch raw := obj["currency_original"].(type) {
	case nil:
		currency, err = s.store.DomesticCurrency(ctx)
		if err != nil {
			return nil, &Error{msg: err.Error(), wrap: err}
		}
	case string:
		if raw == "" {
			currency, err = s.store.DomesticCurrency(ctx)
			if err != nil {
				return nil, &Error{msg: err.Error(), wrap: err}
			}
			break
		}
		currency = strings.ToUpper(strings.TrimSpace(raw))
		if !ledger.ValidCurrencyCode(currency) {
			return nil, errf("currency_original must be a 3-letter code or null")
		}
	default:
		return nil, errf("currency_original must be a string or null")
	}

	rawLines, ok := obj["lines"].([]any)
	if !ok {
		return nil, errf("lines must be an array")
	}
	if len(rawLines) < 1 || len(rawLines) > MaxLines {
		return nil, errf("lines must contain between 1 and %d items", MaxLines)
	}

	return &normalizedTop{
		accountingDate:     accountingDate,
		entryTitle:         entryTitle,
		entryText:          entryText,
		paymentAccountCode: payAcct.Code,
		currency:           currency,
		rawLines:           rawLines,
	}, nil
}

func (s *Service) normalizeLine(ctx context.Context, idx int, raw any) (normalizedLine, error) {
	var nl normalizedLine

	obj, ok := raw.(map[string]any)
	if !ok {
		return nl, errf("lines[%d] must be an object", idx)
	}
	if extra := extraKeys(obj, lineLevelKeys); len(extra) > 0 {
		return nl, errf("lines[%d] unexpected fields: %s", idx, strings.Join(extra, ", "))
	}

	catName, ok := obj["expense_category"].(string)
	if !ok || strings.TrimSpace(catName) == "" {
		return nl, errf("lines[%d].expense_category must be a non-empty string", idx)
	}
	catAcct, err := s.store.FindAccountByName(ctx, strings.TrimSpace(catName), []ledger.AccountType{ledger.TypeExpense}, true)
	if err != nil {
		return nl, errf("lines[%d].expense_category not found/active EXPENSE account: %s", idx, catName)
	}

	note, err := optionalStringIdx(obj, "note", maxNoteLen, idx)
	if err != nil {
		return nl, err
	}

	amtDom, err := parseNonzeroNumber(obj["amount_domestic"], fmt.Sprintf("lines[%d].amount_domestic", idx))
	if err != nil {
		return nl, err
	}
	amtOrg := amtDom
	if raw, ok := obj["amount_original"]; ok && raw != nil {
		amtOrg, err = parseNonzeroNumber(raw, fmt.Sprintf("lines[%d].amount_original", idx))
		if err != nil {
			return nl, err
		}
	}

	nl.accountCode = catAcct.Code
	nl.amountDomestic = amtDom
	nl.amountOriginal = amtOrg
	nl.itemText = note
	return nl, nil
}

// buildLines assembles the balanced set: one debit per normalized line
// and a single synthesized credit against the payment account closing
// the entry. The final balance re-check duplicates the persistence
// layer's own check deliberately: the payload crossed a trust boundary.
func buildLines(top *normalizedTop, normLines []normalizedLine) ([]ledger.Line, float64, error) {
	lines := make([]ledger.Line, 0, len(normLines)+1)
	var totalDom, totalOrg float64

	for _, nl := range normLines {
		amtOrg := nl.amountOriginal
		lines = append(lines, ledger.Line{
			AccountCode:      nl.accountCode,
			DC:               ledger.Debit,
			AmountDomestic:   nl.amountDomestic,
			CurrencyOriginal: top.currency,
			AmountOriginal:   &amtOrg,
			ItemText:         nl.itemText,
		})
		totalDom += nl.amountDomestic
		totalOrg += nl.amountOriginal
	}

	if math.Abs(totalDom) <= 1e-9 {
		return nil, 0, errf("total amount_domestic must not be zero")
	}

	creditOrg := totalOrg
	lines = append(lines, ledger.Line{
		AccountCode:      top.paymentAccountCode,
		DC:               ledger.Credit,
		AmountDomestic:   totalDom,
		CurrencyOriginal: top.currency,
		AmountOriginal:   &creditOrg,
	})

	if diff := ledger.Balance(lines); math.Abs(diff) > ledger.BalanceTolerance {
		return nil, 0, errf("debit/credit not balanced after build: diff=%.6f", diff)
	}

	return lines, totalDom, nil
}

func extraKeys(obj map[string]any, allowed map[string]bool) []string {
	var extra []string
	for k := range obj {
		if !allowed[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return extra
}

func optionalString(obj map[string]any, key string, maxLen int) (*string, error) {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, errf("%s must be a string or null", key)
	}
	if len(s) > maxLen {
		return nil, errf("%s must be %d characters or less", key, maxLen)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	return &s, nil
}

func optionalStringIdx(obj map[string]any, key string, maxLen, idx int) (*string, error) {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, errf("lines[%d].%s must be a string or null", idx, key)
	}
	if len(s) > maxLen {
		return nil, errf("lines[%d].%s must be %d characters or less", idx, key, maxLen)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	return &s, nil
}

// parseNonzeroNumber accepts any finite, non-zero JSON number. Sign is
// permitted: negative lines represent discounts or corrections.
func parseNonzeroNumber(raw any, field string) (float64, error) {
	num, ok := raw.(float64)
	if !ok {
		return 0, errf("%s must be a non-zero number", field)
	}
	if math.IsNaN(num) || math.IsInf(num, 0) || math.Abs(num) < 1e-9 {
		return 0, errf("%s must be a non-zero number", field)
	}
	return num, nil
}
