package store

import (
	"context"
	"testing"

	"github.com/maplebrook/homeledger/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextUserManagedCode(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	// The seed liability sits at 1000000001, inside the ASSET code
	// range. The prefix scan must skip past it.
	code, err := st.NextUserManagedCode(ctx, ledger.TypeAsset)
	require.NoError(t, err)
	assert.Equal(t, "1000000002", code)

	code, err = st.NextUserManagedCode(ctx, ledger.TypeLiability)
	require.NoError(t, err)
	assert.Equal(t, "2000000001", code)

	_, err = st.NextUserManagedCode(ctx, ledger.TypeExpense)
	assert.ErrorIs(t, err, ledger.ErrInvalidAccountType)
}

func TestCreateUserManagedAccount(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	a1, err := st.CreateUserManagedAccount(ctx, "Checking", ledger.TypeAsset, true)
	require.NoError(t, err)
	assert.Equal(t, "1000000002", a1.Code)
	assert.True(t, a1.IsUserManaged)
	assert.False(t, a1.IsPL)

	a2, err := st.CreateUserManagedAccount(ctx, "Savings", ledger.TypeAsset, true)
	require.NoError(t, err)
	assert.Equal(t, "1000000003", a2.Code)

	l1, err := st.CreateUserManagedAccount(ctx, "Visa", ledger.TypeLiability, false)
	require.NoError(t, err)
	assert.Equal(t, "2000000001", l1.Code)
	assert.False(t, l1.IsActive)

	_, err = st.CreateUserManagedAccount(ctx, "", ledger.TypeAsset, true)
	assert.ErrorIs(t, err, ledger.ErrEmptyAccountName)

	_, err = st.CreateUserManagedAccount(ctx, "Groceries", ledger.TypeExpense, true)
	assert.ErrorIs(t, err, ledger.ErrInvalidAccountType)

	// Names are unique across the whole chart.
	_, err = st.CreateUserManagedAccount(ctx, "Checking", ledger.TypeLiability, true)
	assert.Error(t, err)
}

func TestUpdateUserManagedAccount(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	a, err := st.CreateUserManagedAccount(ctx, "Checking", ledger.TypeAsset, true)
	require.NoError(t, err)

	require.NoError(t, st.UpdateUserManagedAccount(ctx, a.Code, "Main checking", false))

	got, err := st.GetUserManagedAccount(ctx, a.Code)
	require.NoError(t, err)
	assert.Equal(t, "Main checking", got.Name)
	assert.False(t, got.IsActive)

	// System accounts are unreachable through this path.
	err = st.UpdateUserManagedAccount(ctx, ledger.CashAccountCode, "Wallet", true)
	assert.ErrorIs(t, err, ledger.ErrNotUserManaged)
	cash, err := st.GetAccount(ctx, ledger.CashAccountCode)
	require.NoError(t, err)
	assert.Equal(t, "Cash", cash.Name)

	err = st.UpdateUserManagedAccount(ctx, "1999999999", "Ghost", true)
	assert.ErrorIs(t, err, ledger.ErrNotUserManaged)

	err = st.UpdateUserManagedAccount(ctx, a.Code, "", true)
	assert.ErrorIs(t, err, ledger.ErrEmptyAccountName)
}

func TestGetUserManagedAccount(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	// The seed liability is user-managed and editable.
	a, err := st.GetUserManagedAccount(ctx, "1000000001")
	require.NoError(t, err)
	assert.Equal(t, "Dummy Credit card", a.Name)

	_, err = st.GetUserManagedAccount(ctx, ledger.CashAccountCode)
	assert.ErrorIs(t, err, ledger.ErrNotUserManaged)
}

func TestFindAccountByName(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	a, err := st.FindAccountByName(ctx, "cash", ledger.PaymentAccountTypes, true)
	require.NoError(t, err)
	assert.Equal(t, ledger.CashAccountCode, a.Code)

	a, err = st.FindAccountByName(ctx, "FOOD AND DINING", []ledger.AccountType{ledger.TypeExpense}, true)
	require.NoError(t, err)
	assert.Equal(t, "5000000001", a.Code)

	// Type restriction: an expense name is not a payment account.
	_, err = st.FindAccountByName(ctx, "Food and dining", ledger.PaymentAccountTypes, true)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)

	_, err = st.FindAccountByName(ctx, "Nonexistent", nil, true)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)

	_, err = st.FindAccountByName(ctx, "", nil, true)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)

	// Inactive accounts resolve only when activity is not required.
	dormant, err := st.CreateUserManagedAccount(ctx, "Old card", ledger.TypeLiability, false)
	require.NoError(t, err)
	_, err = st.FindAccountByName(ctx, "Old card", ledger.PaymentAccountTypes, true)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
	got, err := st.FindAccountByName(ctx, "Old card", ledger.PaymentAccountTypes, false)
	require.NoError(t, err)
	assert.Equal(t, dormant.Code, got.Code)
}

func TestListAccountsFilters(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.CreateUserManagedAccount(ctx, "Checking", ledger.TypeAsset, true)
	require.NoError(t, err)
	_, err = st.CreateUserManagedAccount(ctx, "Old card", ledger.TypeLiability, false)
	require.NoError(t, err)

	cats, err := st.ExpenseCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 11)
	for _, a := range cats {
		assert.Equal(t, ledger.TypeExpense, a.Type)
		assert.True(t, a.IsActive)
	}

	// Payment accounts: Cash, seed card, Checking. The inactive card
	// is excluded.
	pays, err := st.PaymentAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, pays, 3)

	userManaged := true
	mine, err := st.ListAccounts(ctx, AccountFilter{UserManaged: &userManaged})
	require.NoError(t, err)
	assert.Len(t, mine, 3) // seed card + 2 created
}
