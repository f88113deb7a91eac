package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/maplebrook/homeledger/internal/ledger"
)

func (s *Store) migrate(ctx context.Context) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	var version int
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version < 1 {
		if err := migrateV1(ctx, tx); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return tx.Commit()
}

func migrateV1(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS gl_account (
			account_code    TEXT PRIMARY KEY NOT NULL,
			account_name    TEXT NOT NULL UNIQUE,
			account_type    TEXT NOT NULL,
			is_pl           INTEGER NOT NULL,
			is_active       INTEGER NOT NULL,
			is_user_managed INTEGER NOT NULL,
			CHECK (account_type IN ('ASSET','LIAB','EQUITY','INCOME','EXPENSE')),
			CHECK (is_pl IN (0,1)),
			CHECK (is_active IN (0,1)),
			CHECK (is_user_managed IN (0,1)),
			CHECK (account_code GLOB '[0-9][0-9][0-9][0-9][0-9][0-9][0-9][0-9][0-9][0-9]')
		)`,

		`CREATE TABLE IF NOT EXISTS gl_entry (
			entry_uuid        TEXT PRIMARY KEY NOT NULL,
			modification_date TEXT NOT NULL,
			accounting_date   TEXT NOT NULL,
			entry_type        TEXT NOT NULL,
			entry_title       TEXT,
			entry_text        TEXT,
			CHECK (entry_type IN ('EXPENSE','GENERAL'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entry_accounting_date ON gl_entry(accounting_date)`,

		`CREATE TABLE IF NOT EXISTS gl_entry_item (
			entry_uuid        TEXT NOT NULL,
			line_no           INTEGER NOT NULL,
			account_code      TEXT NOT NULL,
			dc                TEXT NOT NULL,
			amount_domestic   NUMERIC NOT NULL,
			currency_original TEXT NOT NULL,
			amount_original   NUMERIC,
			item_text         TEXT,
			PRIMARY KEY (entry_uuid, line_no),
			FOREIGN KEY (entry_uuid) REFERENCES gl_entry(entry_uuid) ON DELETE CASCADE,
			FOREIGN KEY (account_code) REFERENCES gl_account(account_code),
			CHECK (dc IN ('D','C'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entry_item_account ON gl_entry_item(account_code)`,

		`CREATE TABLE IF NOT EXISTS gl_entry_attachment (
			entry_uuid  TEXT PRIMARY KEY NOT NULL,
			file_name   TEXT,
			mime_type   TEXT NOT NULL,
			file_blob   BLOB NOT NULL,
			FOREIGN KEY (entry_uuid) REFERENCES gl_entry(entry_uuid) ON DELETE CASCADE,
			CHECK (mime_type IN ('image/jpeg','image/png','application/pdf'))
		)`,

		`CREATE TABLE IF NOT EXISTS user_setting (
			setting_key   TEXT PRIMARY KEY NOT NULL,
			setting_value TEXT NOT NULL
		)`,

		`INSERT INTO schema_version (version) VALUES (1)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}

	// Seed system chart of accounts and default settings, idempotently.
	for _, a := range ledger.SystemAccounts {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO gl_account (account_code, account_name, account_type, is_pl, is_active, is_user_managed)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			a.Code, a.Name, string(a.Type), boolToInt(a.IsPL), boolToInt(a.IsActive), boolToInt(a.IsUserManaged),
		)
		if err != nil {
			return fmt.Errorf("seed account %s: %w", a.Code, err)
		}
	}
	for _, st := range ledger.DefaultSettings {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO user_setting (setting_key, setting_value) VALUES (?, ?)`,
			string(st.Key), st.Value,
		)
		if err != nil {
			return fmt.Errorf("seed setting %s: %w", st.Key, err)
		}
	}

	return nil
}
