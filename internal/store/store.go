package store

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"

	"github.com/maplebrook/homeledger/internal/ledger"
	_ "modernc.org/sqlite"
)

// AccountFilter narrows ListAccounts. Zero value means all accounts.
type AccountFilter struct {
	Types       []ledger.AccountType
	ActiveOnly  bool
	UserManaged *bool
}

// JournalFilter narrows JournalItems. Zero value means all lines on
// active accounts.
type JournalFilter struct {
	AccountCode string
	AccountType ledger.AccountType
}

// Store owns the SQLite database. The writer connection is capped at
// one open connection so every write transaction is serialized; reads
// run on a separate pool and may proceed concurrently.
type Store struct {
	writer *sql.DB
	reader *sql.DB
}

func Open(dbPath string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)", dbPath)

	writer, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open writer: %w", err)
	}
	writer.SetMaxOpenConns(1)

	reader, err := sql.Open("sqlite", dsn)
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("open reader: %w", err)
	}
	reader.SetMaxOpenConns(runtime.NumCPU())

	s := &Store{writer: writer, reader: reader}

	if err := s.migrate(context.Background()); err != nil {
		s.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	err1 := s.writer.Close()
	err2 := s.reader.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
