package store

import (
	"context"
	"testing"

	"github.com/maplebrook/homeledger/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func balanceFor(rows []BalanceRow, code string) (float64, bool) {
	for _, r := range rows {
		if r.AccountCode == code {
			return r.BalanceDomestic, true
		}
	}
	return 0, false
}

func TestBalanceSheetOverviewEmpty(t *testing.T) {
	st := newTestStore(t)

	rows, err := st.BalanceSheetOverview(context.Background())
	require.NoError(t, err)

	// Zero-activity accounts still appear, at balance 0.
	require.Len(t, rows, 2) // Cash + seed card
	for _, r := range rows {
		assert.Zero(t, r.BalanceDomestic)
	}
	// ASSET section sorts ahead of LIAB.
	assert.Equal(t, ledger.TypeAsset, rows[0].AccountType)
	assert.Equal(t, ledger.TypeLiability, rows[1].AccountType)
}

func TestBalanceSheetOverview(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	saveSimpleEntry(t, st, "2026-01-10", "5000000001", 20.00)
	saveSimpleEntry(t, st, "2026-01-12", "5000000007", 5.50)

	rows, err := st.BalanceSheetOverview(ctx)
	require.NoError(t, err)

	cash, ok := balanceFor(rows, ledger.CashAccountCode)
	require.True(t, ok)
	assert.InDelta(t, -25.50, cash, 1e-9)

	// Inactive accounts drop out of the overview.
	acct, err := st.CreateUserManagedAccount(ctx, "Savings", ledger.TypeAsset, true)
	require.NoError(t, err)
	rows, err = st.BalanceSheetOverview(ctx)
	require.NoError(t, err)
	_, ok = balanceFor(rows, acct.Code)
	assert.True(t, ok)

	require.NoError(t, st.UpdateUserManagedAccount(ctx, acct.Code, "Savings", false))
	rows, err = st.BalanceSheetOverview(ctx)
	require.NoError(t, err)
	_, ok = balanceFor(rows, acct.Code)
	assert.False(t, ok)
}

func TestExpenseListOrdering(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	saveSimpleEntry(t, st, "2026-01-10", "5000000001", 20.00)
	saveSimpleEntry(t, st, "2026-01-12", "5000000007", 5.50)
	saveSimpleEntry(t, st, "2026-01-11", "5000000004", 3.00)

	rows, err := st.ExpenseList(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Newest accounting date first; only expense lines, never the
	// cash legs.
	assert.Equal(t, "2026-01-12", rows[0].AccountingDate)
	assert.Equal(t, "2026-01-11", rows[1].AccountingDate)
	assert.Equal(t, "2026-01-10", rows[2].AccountingDate)
	for _, r := range rows {
		assert.Equal(t, ledger.TypeExpense, r.AccountType)
		assert.Equal(t, "category", r.IconKey)
	}
}

func TestAccountTransactions(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	saveSimpleEntry(t, st, "2026-01-10", "5000000001", 20.00)
	saveSimpleEntry(t, st, "2026-01-12", "5000000007", 5.50)

	rows, err := st.AccountTransactions(ctx, ledger.CashAccountCode)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, ledger.CashAccountCode, r.AccountCode)
		assert.Equal(t, "cash", r.IconKey)
	}

	rows, err = st.AccountTransactions(ctx, "5000000004")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestExpenseTrend(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	saveSimpleEntry(t, st, "2026-01-10", "5000000001", 20.00)
	saveSimpleEntry(t, st, "2026-01-20", "5000000001", 10.00)
	saveSimpleEntry(t, st, "2026-02-05", "5000000007", 5.00)

	monthly, err := st.ExpenseTrend(ctx, TrendMonthly, "", "")
	require.NoError(t, err)
	require.Len(t, monthly, 2)
	assert.Equal(t, "2026-01", monthly[0].Label)
	assert.InDelta(t, 30.00, monthly[0].AmountDomestic, 1e-9)
	assert.Equal(t, "2026-02", monthly[1].Label)
	assert.InDelta(t, 5.00, monthly[1].AmountDomestic, 1e-9)

	daily, err := st.ExpenseTrend(ctx, TrendDaily, "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	require.Len(t, daily, 2)
	assert.Equal(t, "2026-01-10", daily[0].Label)
	assert.Equal(t, "2026-01-20", daily[1].Label)
}

func TestAssetsTrend(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	saveSimpleEntry(t, st, "2026-01-10", "5000000001", 20.00)
	saveSimpleEntry(t, st, "2026-02-05", "5000000007", 5.00)

	points, err := st.AssetsTrend(ctx, TrendMonthly, "", "")
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, "2026-01", points[0].Label)
	assert.InDelta(t, -20.00, points[0].AssetBalance, 1e-9)
	assert.InDelta(t, -25.00, points[1].AssetBalance, 1e-9)
	assert.InDelta(t, points[1].AssetBalance-points[1].LiabBalance, points[1].NetAssets, 1e-9)
}

func TestAssetsTrendOpeningBalance(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	saveSimpleEntry(t, st, "2026-01-10", "5000000001", 20.00)
	saveSimpleEntry(t, st, "2026-02-05", "5000000007", 5.00)

	// A window starting after the first entry must carry its effect
	// forward as the opening balance.
	points, err := st.AssetsTrend(ctx, TrendMonthly, "2026-02-01", "")
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "2026-02", points[0].Label)
	assert.InDelta(t, -25.00, points[0].AssetBalance, 1e-9)
}

func TestAssetsTrendEmpty(t *testing.T) {
	st := newTestStore(t)

	points, err := st.AssetsTrend(context.Background(), TrendDaily, "", "")
	require.NoError(t, err)
	assert.Empty(t, points)
}
