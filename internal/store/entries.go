package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/maplebrook/homeledger/internal/ledger"
)

func (s *Store) GetEntryHeader(ctx context.Context, entryUUID string) (*ledger.Entry, error) {
	var e ledger.Entry
	err := s.reader.QueryRowContext(ctx,
		`SELECT entry_uuid, modification_date, accounting_date, entry_type, entry_title, entry_text
		   FROM gl_entry WHERE entry_uuid = ?`, entryUUID,
	).Scan(&e.UUID, &e.ModificationDate, &e.AccountingDate, &e.Type, &e.Title, &e.Text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get entry header: %w", err)
	}
	return &e, nil
}

// GetEntryLines returns the entry's lines joined with account name and
// type for display, in line order.
func (s *Store) GetEntryLines(ctx context.Context, entryUUID string) ([]ledger.LineDetail, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT ei.entry_uuid, ei.line_no, ei.account_code, ei.dc, ei.amount_domestic,
		        ei.currency_original, ei.amount_original, ei.item_text,
		        a.account_name, a.account_type, a.is_pl
		   FROM gl_entry_item ei
		   JOIN gl_account a ON a.account_code = ei.account_code
		  WHERE ei.entry_uuid = ?
		  ORDER BY ei.line_no`,
		entryUUID,
	)
	if err != nil {
		return nil, fmt.Errorf("get entry lines: %w", err)
	}
	defer rows.Close()

	var lines []ledger.LineDetail
	for rows.Next() {
		var ld ledger.LineDetail
		var isPL int
		if err := rows.Scan(&ld.EntryUUID, &ld.LineNo, &ld.AccountCode, &ld.DC, &ld.AmountDomestic,
			&ld.CurrencyOriginal, &ld.AmountOriginal, &ld.ItemText,
			&ld.AccountName, &ld.AccountType, &isPL); err != nil {
			return nil, fmt.Errorf("scan entry line: %w", err)
		}
		ld.IsPL = isPL == 1
		lines = append(lines, ld)
	}
	return lines, rows.Err()
}

// DeleteEntry removes the entry, its lines, and its attachment in one
// transaction. Irreversible; there is no soft delete.
func (s *Store) DeleteEntry(ctx context.Context, entryUUID string) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM gl_entry_attachment WHERE entry_uuid = ?`, entryUUID); err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM gl_entry_item WHERE entry_uuid = ?`, entryUUID); err != nil {
		return fmt.Errorf("delete entry items: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM gl_entry WHERE entry_uuid = ?`, entryUUID)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ledger.ErrEntryNotFound, entryUUID)
	}

	return tx.Commit()
}

// SaveEntryFullReplace is the single write path for both create and
// update. All validation runs inside the write transaction before any
// mutation, so a rejected call leaves prior state untouched. On
// success the header is upserted, every existing line is discarded,
// and the submitted lines are reinserted renumbered densely from 1 in
// submission order.
func (s *Store) SaveEntryFullReplace(ctx context.Context, entry *ledger.Entry, lines []ledger.Line, isNew bool) error {
	if !ledger.ValidDate(entry.AccountingDate) {
		return fmt.Errorf("%w: %q", ledger.ErrInvalidDate, entry.AccountingDate)
	}
	if !entry.Type.Valid() {
		return fmt.Errorf("%w: %q", ledger.ErrInvalidEntryType, entry.Type)
	}
	if len(lines) == 0 {
		return ledger.ErrNoLines
	}

	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, ln := range lines {
		var isActive int
		err := tx.QueryRowContext(ctx,
			`SELECT is_active FROM gl_account WHERE account_code = ?`, ln.AccountCode,
		).Scan(&isActive)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ledger.ErrUnknownAccount, ln.AccountCode)
		}
		if err != nil {
			return fmt.Errorf("check account %s: %w", ln.AccountCode, err)
		}
		if isActive != 1 {
			return fmt.Errorf("%w: %s", ledger.ErrInactiveAccount, ln.AccountCode)
		}
		if !ln.DC.Valid() {
			return fmt.Errorf("%w: got %q", ledger.ErrInvalidDC, ln.DC)
		}
	}

	if bal := ledger.Balance(lines); math.Abs(bal) > ledger.BalanceTolerance {
		return fmt.Errorf("%w: diff=%.6f", ledger.ErrUnbalancedEntry, bal)
	}

	modDate := ledger.NowISO()
	if isNew {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO gl_entry (entry_uuid, modification_date, accounting_date, entry_type, entry_title, entry_text)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			entry.UUID, modDate, entry.AccountingDate, string(entry.Type), entry.Title, entry.Text,
		)
		if err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
	} else {
		res, err := tx.ExecContext(ctx,
			`UPDATE gl_entry
			    SET modification_date = ?, accounting_date = ?, entry_type = ?, entry_title = ?, entry_text = ?
			  WHERE entry_uuid = ?`,
			modDate, entry.AccountingDate, string(entry.Type), entry.Title, entry.Text, entry.UUID,
		)
		if err != nil {
			return fmt.Errorf("update entry: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update entry: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: %s", ledger.ErrEntryNotFound, entry.UUID)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM gl_entry_item WHERE entry_uuid = ?`, entry.UUID); err != nil {
		return fmt.Errorf("delete old lines: %w", err)
	}

	for i, ln := range lines {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO gl_entry_item (entry_uuid, line_no, account_code, dc, amount_domestic, currency_original, amount_original, item_text)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			entry.UUID, i+1, ln.AccountCode, string(ln.DC), ln.AmountDomestic, ln.CurrencyOriginal, ln.AmountOriginal, ln.ItemText,
		)
		if err != nil {
			return fmt.Errorf("insert line %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	entry.ModificationDate = modDate
	return nil
}
