package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/maplebrook/homeledger/internal/ledger"
)

// TrendGranularity selects the bucket label: the raw accounting date
// or its year-month prefix.
type TrendGranularity string

const (
	TrendDaily   TrendGranularity = "day"
	TrendMonthly TrendGranularity = "month"
)

func (g TrendGranularity) labelExpr() string {
	if g == TrendMonthly {
		return "substr(e.accounting_date,1,7)"
	}
	return "e.accounting_date"
}

// JournalRow is one line of a date-grouped journal list. IconKey is a
// presentation hint so the caller never needs the raw code/type pair.
type JournalRow struct {
	AccountingDate string             `json:"accounting_date"`
	EntryUUID      string             `json:"entry_uuid"`
	EntryTitle     *string            `json:"entry_title"`
	AccountCode    string             `json:"account_code"`
	AccountName    string             `json:"account_name"`
	AccountType    ledger.AccountType `json:"account_type"`
	AmountDomestic float64            `json:"amount_domestic"`
	LineNo         int                `json:"line_no"`
	IconKey        string             `json:"icon_key"`
}

// BalanceRow is one account's current balance from inception.
type BalanceRow struct {
	AccountType     ledger.AccountType `json:"account_type"`
	AccountCode     string             `json:"account_code"`
	AccountName     string             `json:"account_name"`
	BalanceDomestic float64            `json:"balance_domestic"`
}

// ExpenseTrendRow is a (label, category) bucket of signed expense.
type ExpenseTrendRow struct {
	Label          string  `json:"label"`
	AccountCode    string  `json:"account_code"`
	AccountName    string  `json:"account_name"`
	AmountDomestic float64 `json:"amount_domestic_sum"`
}

// AssetsTrendPoint is one labeled bucket of the running balance series.
type AssetsTrendPoint struct {
	Label        string  `json:"label"`
	AssetBalance float64 `json:"asset_balance"`
	LiabBalance  float64 `json:"liab_balance"`
	NetAssets    float64 `json:"net_assets"`
}

// JournalItems lists lines for entries touching a specific account or
// an account-type filter, newest accounting date first, tie-break by
// entry uuid, ascending line order within an entry.
func (s *Store) JournalItems(ctx context.Context, filter JournalFilter) ([]JournalRow, error) {
	query := `
	SELECT
	  e.accounting_date,
	  e.entry_uuid,
	  e.entry_title,
	  ei.account_code,
	  a.account_name,
	  a.account_type,
	  ei.amount_domestic,
	  ei.line_no
	FROM gl_entry_item ei
	JOIN gl_entry e   ON e.entry_uuid = ei.entry_uuid
	JOIN gl_account a ON a.account_code = ei.account_code
	WHERE a.is_active = 1`
	args := []any{}

	if filter.AccountCode != "" {
		query += ` AND ei.account_code = ?`
		args = append(args, filter.AccountCode)
	}
	if filter.AccountType != "" {
		query += ` AND a.account_type = ?`
		args = append(args, string(filter.AccountType))
	}

	query += ` ORDER BY e.accounting_date DESC, e.entry_uuid DESC, ei.line_no ASC`

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("journal items: %w", err)
	}
	defer rows.Close()

	var items []JournalRow
	for rows.Next() {
		var r JournalRow
		if err := rows.Scan(&r.AccountingDate, &r.EntryUUID, &r.EntryTitle, &r.AccountCode,
			&r.AccountName, &r.AccountType, &r.AmountDomestic, &r.LineNo); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		r.IconKey = ledger.IconKey(r.AccountCode, r.AccountType)
		items = append(items, r)
	}
	return items, rows.Err()
}

// ExpenseList lists all lines on active EXPENSE accounts.
func (s *Store) ExpenseList(ctx context.Context) ([]JournalRow, error) {
	return s.JournalItems(ctx, JournalFilter{AccountType: ledger.TypeExpense})
}

// AccountTransactions lists all lines posted to a single account.
func (s *Store) AccountTransactions(ctx context.Context, accountCode string) ([]JournalRow, error) {
	return s.JournalItems(ctx, JournalFilter{AccountCode: accountCode})
}

// BalanceSheetOverview returns the current balance of every active
// ASSET/LIAB account over all lines ever posted. The LEFT JOIN keeps
// zero-activity accounts in the result with balance 0.
func (s *Store) BalanceSheetOverview(ctx context.Context) ([]BalanceRow, error) {
	rows, err := s.reader.QueryContext(ctx, `
	SELECT
	  a.account_type,
	  a.account_code,
	  a.account_name,
	  COALESCE(SUM(CASE WHEN ei.dc='D' THEN ei.amount_domestic ELSE -ei.amount_domestic END), 0) AS balance_domestic
	FROM gl_account a
	LEFT JOIN gl_entry_item ei ON ei.account_code = a.account_code
	LEFT JOIN gl_entry e ON e.entry_uuid = ei.entry_uuid
	WHERE a.is_active = 1
	  AND a.account_type IN ('ASSET','LIAB')
	GROUP BY a.account_type, a.account_code, a.account_name
	ORDER BY
	  CASE a.account_type WHEN 'ASSET' THEN 1 WHEN 'LIAB' THEN 2 ELSE 9 END,
	  a.account_code`)
	if err != nil {
		return nil, fmt.Errorf("balance sheet: %w", err)
	}
	defer rows.Close()

	var out []BalanceRow
	for rows.Next() {
		var r BalanceRow
		if err := rows.Scan(&r.AccountType, &r.AccountCode, &r.AccountName, &r.BalanceDomestic); err != nil {
			return nil, fmt.Errorf("scan balance row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ExpenseTrend sums signed expense per (label, category), optionally
// bounded by an inclusive accounting-date range.
func (s *Store) ExpenseTrend(ctx context.Context, granularity TrendGranularity, dateFrom, dateTo string) ([]ExpenseTrendRow, error) {
	query := `
	SELECT
	  ` + granularity.labelExpr() + ` AS label,
	  ei.account_code,
	  a.account_name,
	  SUM(CASE WHEN ei.dc='D' THEN ei.amount_domestic ELSE -ei.amount_domestic END) AS amount_domestic_sum
	FROM gl_entry_item ei
	JOIN gl_entry e   ON e.entry_uuid = ei.entry_uuid
	JOIN gl_account a ON a.account_code = ei.account_code
	WHERE a.is_active = 1
	  AND a.account_type = 'EXPENSE'`
	args := []any{}
	if dateFrom != "" {
		query += ` AND e.accounting_date >= ?`
		args = append(args, dateFrom)
	}
	if dateTo != "" {
		query += ` AND e.accounting_date <= ?`
		args = append(args, dateTo)
	}
	query += ` GROUP BY label, ei.account_code, a.account_name ORDER BY label ASC, ei.account_code ASC`

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("expense trend: %w", err)
	}
	defer rows.Close()

	var out []ExpenseTrendRow
	for rows.Next() {
		var r ExpenseTrendRow
		if err := rows.Scan(&r.Label, &r.AccountCode, &r.AccountName, &r.AmountDomestic); err != nil {
			return nil, fmt.Errorf("scan expense trend row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// openingBalances computes the cumulative signed activity on active
// ASSET/LIAB accounts strictly before dateFrom. Without this a trend
// window not starting at inception would show balances as if the
// accounts started at zero.
func (s *Store) openingBalances(ctx context.Context, dateFrom string) (asset, liab float64, err error) {
	if dateFrom == "" {
		return 0, 0, nil
	}
	rows, err := s.reader.QueryContext(ctx, `
	SELECT
	  a.account_type,
	  SUM(CASE WHEN ei.dc='D' THEN ei.amount_domestic ELSE -ei.amount_domestic END) AS delta_amount
	FROM gl_entry_item ei
	JOIN gl_entry e   ON e.entry_uuid = ei.entry_uuid
	JOIN gl_account a ON a.account_code = ei.account_code
	WHERE a.is_active = 1
	  AND a.account_type IN ('ASSET','LIAB')
	  AND e.accounting_date < ?
	GROUP BY a.account_type`, dateFrom)
	if err != nil {
		return 0, 0, fmt.Errorf("opening balances: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var accountType ledger.AccountType
		var delta float64
		if err := rows.Scan(&accountType, &delta); err != nil {
			return 0, 0, fmt.Errorf("scan opening balance: %w", err)
		}
		switch accountType {
		case ledger.TypeAsset:
			asset = delta
		case ledger.TypeLiability:
			liab = delta
		}
	}
	return asset, liab, rows.Err()
}

// AssetsTrend produces a running balance series over labeled buckets:
// the opening balances seed the series, then each bucket folds its
// delta into the running asset and liability balances.
func (s *Store) AssetsTrend(ctx context.Context, granularity TrendGranularity, dateFrom, dateTo string) ([]AssetsTrendPoint, error) {
	query := `
	SELECT
	  ` + granularity.labelExpr() + ` AS label,
	  a.account_type,
	  SUM(CASE WHEN ei.dc='D' THEN ei.amount_domestic ELSE -ei.amount_domestic END) AS delta_amount
	FROM gl_entry_item ei
	JOIN gl_entry e   ON e.entry_uuid = ei.entry_uuid
	JOIN gl_account a ON a.account_code = ei.account_code
	WHERE a.is_active = 1
	  AND a.account_type IN ('ASSET','LIAB')`
	args := []any{}
	if dateFrom != "" {
		query += ` AND e.accounting_date >= ?`
		args = append(args, dateFrom)
	}
	if dateTo != "" {
		query += ` AND e.accounting_date <= ?`
		args = append(args, dateTo)
	}
	query += ` GROUP BY label, a.account_type ORDER BY label ASC, a.account_type ASC`

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("assets trend: %w", err)
	}
	defer rows.Close()

	type bucket struct{ asset, liab float64 }
	buckets := make(map[string]bucket)
	for rows.Next() {
		var label string
		var accountType ledger.AccountType
		var delta float64
		if err := rows.Scan(&label, &accountType, &delta); err != nil {
			return nil, fmt.Errorf("scan assets trend row: %w", err)
		}
		b := buckets[label]
		switch accountType {
		case ledger.TypeAsset:
			b.asset = delta
		case ledger.TypeLiability:
			b.liab = delta
		}
		buckets[label] = b
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(buckets))
	for label := range buckets {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	assetBal, liabBal, err := s.openingBalances(ctx, dateFrom)
	if err != nil {
		return nil, err
	}

	points := make([]AssetsTrendPoint, 0, len(labels))
	for _, label := range labels {
		assetBal += buckets[label].asset
		liabBal += buckets[label].liab
		points = append(points, AssetsTrendPoint{
			Label:        label,
			AssetBalance: assetBal,
			LiabBalance:  liabBal,
			NetAssets:    assetBal - liabBal,
		})
	}
	return points, nil
}
