package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/maplebrook/homeledger/internal/ledger"
)

func (s *Store) ListSettings(ctx context.Context) ([]ledger.Setting, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT setting_key, setting_value FROM user_setting ORDER BY setting_key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []ledger.Setting
	for rows.Next() {
		var st ledger.Setting
		if err := rows.Scan(&st.Key, &st.Value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings = append(settings, st)
	}
	return settings, rows.Err()
}

func (s *Store) GetSetting(ctx context.Context, key ledger.SettingKey) (string, error) {
	var value string
	err := s.reader.QueryRowContext(ctx,
		`SELECT setting_value FROM user_setting WHERE setting_key = ?`, string(key),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) PutSetting(ctx context.Context, key ledger.SettingKey, value string) error {
	_, err := s.writer.ExecContext(ctx,
		`INSERT INTO user_setting (setting_key, setting_value) VALUES (?, ?)
		 ON CONFLICT(setting_key) DO UPDATE SET setting_value = excluded.setting_value`,
		string(key), value,
	)
	if err != nil {
		return fmt.Errorf("put setting %s: %w", key, err)
	}
	return nil
}

// DomesticCurrency reads the home currency, falling back to the
// default when the row is missing.
func (s *Store) DomesticCurrency(ctx context.Context) (string, error) {
	value, err := s.GetSetting(ctx, ledger.SettingDomesticCurrency)
	if err != nil {
		return "", err
	}
	if value == "" {
		return ledger.DefaultDomesticCurrency, nil
	}
	return value, nil
}
