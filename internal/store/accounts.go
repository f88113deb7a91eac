package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/maplebrook/homeledger/internal/ledger"
)

const accountColumns = `account_code, account_name, account_type, is_pl, is_active, is_user_managed`

func (s *Store) ListAccounts(ctx context.Context, filter AccountFilter) ([]ledger.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM gl_account WHERE 1=1`
	args := []any{}

	if len(filter.Types) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(filter.Types)), ",")
		query += ` AND account_type IN (` + placeholders + `)`
		for _, t := range filter.Types {
			args = append(args, string(t))
		}
	}
	if filter.ActiveOnly {
		query += ` AND is_active = 1`
	}
	if filter.UserManaged != nil {
		query += ` AND is_user_managed = ?`
		args = append(args, boolToInt(*filter.UserManaged))
	}

	query += ` ORDER BY account_code`

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []ledger.Account
	for rows.Next() {
		acct, err := scanAccountRow(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *acct)
	}
	return accounts, rows.Err()
}

// ExpenseCategories lists the active EXPENSE accounts.
func (s *Store) ExpenseCategories(ctx context.Context) ([]ledger.Account, error) {
	return s.ListAccounts(ctx, AccountFilter{Types: []ledger.AccountType{ledger.TypeExpense}, ActiveOnly: true})
}

// PaymentAccounts lists the active accounts an entry can be settled
// against: ASSET (cash, bank) or LIAB (credit card).
func (s *Store) PaymentAccounts(ctx context.Context) ([]ledger.Account, error) {
	return s.ListAccounts(ctx, AccountFilter{Types: ledger.PaymentAccountTypes, ActiveOnly: true})
}

func (s *Store) GetAccount(ctx context.Context, code string) (*ledger.Account, error) {
	row := s.reader.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM gl_account WHERE account_code = ?`, code)
	return scanAccount(row)
}

// FindAccountByName resolves an account by its unique name,
// case-insensitively, restricted to the given types. It is the sole
// name-to-code resolution path used by import; ambiguous or inactive
// matches are reported as not found rather than guessed at.
func (s *Store) FindAccountByName(ctx context.Context, name string, types []ledger.AccountType, activeRequired bool) (*ledger.Account, error) {
	if name == "" {
		return nil, ledger.ErrAccountNotFound
	}

	query := `SELECT ` + accountColumns + ` FROM gl_account WHERE account_name = ? COLLATE NOCASE`
	args := []any{name}
	if len(types) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(types)), ",")
		query += ` AND account_type IN (` + placeholders + `)`
		for _, t := range types {
			args = append(args, string(t))
		}
	}

	acct, err := scanAccount(s.reader.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	if activeRequired && !acct.IsActive {
		return nil, ledger.ErrAccountNotFound
	}
	return acct, nil
}

// NextUserManagedCode allocates the next unused 10-digit code in the
// numeric range reserved for the given type. The scan matches on the
// code prefix, not the stored type, so allocation stays collision-free
// even if a legacy row's type and code prefix disagree.
func (s *Store) NextUserManagedCode(ctx context.Context, accountType ledger.AccountType) (string, error) {
	floor, err := ledger.CodeFloor(accountType)
	if err != nil {
		return "", err
	}
	glob, err := ledger.CodeGlob(accountType)
	if err != nil {
		return "", err
	}

	var next int64
	err = s.reader.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(CAST(account_code AS INTEGER)), ?) + 1
		   FROM gl_account
		  WHERE account_code GLOB ?`,
		floor, glob,
	).Scan(&next)
	if err != nil {
		return "", fmt.Errorf("next user managed code: %w", err)
	}
	return ledger.FormatCode(next), nil
}

// CreateUserManagedAccount allocates a code in the type's range and
// inserts the account. Only ASSET and LIAB accounts can be created at
// runtime; they are permanent (is_pl=0) by construction.
func (s *Store) CreateUserManagedAccount(ctx context.Context, name string, accountType ledger.AccountType, active bool) (*ledger.Account, error) {
	if name == "" {
		return nil, ledger.ErrEmptyAccountName
	}
	floor, err := ledger.CodeFloor(accountType)
	if err != nil {
		return nil, err
	}
	glob, err := ledger.CodeGlob(accountType)
	if err != nil {
		return nil, err
	}

	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Allocate inside the write transaction so two concurrent creates
	// cannot hand out the same code.
	var next int64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(CAST(account_code AS INTEGER)), ?) + 1
		   FROM gl_account
		  WHERE account_code GLOB ?`,
		floor, glob,
	).Scan(&next)
	if err != nil {
		return nil, fmt.Errorf("next user managed code: %w", err)
	}
	code := ledger.FormatCode(next)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO gl_account (account_code, account_name, account_type, is_pl, is_active, is_user_managed)
		 VALUES (?, ?, ?, 0, ?, 1)`,
		code, name, string(accountType), boolToInt(active),
	)
	if err != nil {
		return nil, fmt.Errorf("insert account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return &ledger.Account{
		Code:          code,
		Name:          name,
		Type:          accountType,
		IsActive:      active,
		IsUserManaged: true,
	}, nil
}

// UpdateUserManagedAccount renames or toggles an existing user-managed
// ASSET/LIAB account. The guarded UPDATE can never touch a system
// account; zero rows affected is reported as not found.
func (s *Store) UpdateUserManagedAccount(ctx context.Context, code, name string, active bool) error {
	if name == "" {
		return ledger.ErrEmptyAccountName
	}

	res, err := s.writer.ExecContext(ctx,
		`UPDATE gl_account
		    SET account_name = ?, is_active = ?
		  WHERE account_code = ?
		    AND is_user_managed = 1
		    AND account_type IN ('ASSET','LIAB')`,
		name, boolToInt(active), code,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ledger.ErrNotUserManaged, code)
	}
	return nil
}

// GetUserManagedAccount fetches an account only if it is user-managed
// ASSET/LIAB, for the account-edit surface.
func (s *Store) GetUserManagedAccount(ctx context.Context, code string) (*ledger.Account, error) {
	row := s.reader.QueryRowContext(ctx,
		`SELECT `+accountColumns+`
		   FROM gl_account
		  WHERE account_code = ?
		    AND is_user_managed = 1
		    AND account_type IN ('ASSET','LIAB')`,
		code)
	acct, err := scanAccount(row)
	if errors.Is(err, ledger.ErrAccountNotFound) {
		return nil, fmt.Errorf("%w: %s", ledger.ErrNotUserManaged, code)
	}
	return acct, err
}

func scanAccount(row *sql.Row) (*ledger.Account, error) {
	var acct ledger.Account
	var isPL, isActive, isUserManaged int
	err := row.Scan(&acct.Code, &acct.Name, &acct.Type, &isPL, &isActive, &isUserManaged)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan account: %w", err)
	}
	acct.IsPL = isPL == 1
	acct.IsActive = isActive == 1
	acct.IsUserManaged = isUserManaged == 1
	return &acct, nil
}

func scanAccountRow(rows *sql.Rows) (*ledger.Account, error) {
	var acct ledger.Account
	var isPL, isActive, isUserManaged int
	err := rows.Scan(&acct.Code, &acct.Name, &acct.Type, &isPL, &isActive, &isUserManaged)
	if err != nil {
		return nil, fmt.Errorf("scan account row: %w", err)
	}
	acct.IsPL = isPL == 1
	acct.IsActive = isActive == 1
	acct.IsUserManaged = isUserManaged == 1
	return &acct, nil
}
