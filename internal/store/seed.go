package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/maplebrook/homeledger/internal/ledger"
)

func ptr[T any](v T) *T { return &v }

// SeedSampleData inserts a few demonstration entries, but only when the
// journal is completely empty.
func (s *Store) SeedSampleData(ctx context.Context) error {
	var n int
	if err := s.reader.QueryRowContext(ctx, `SELECT COUNT(*) FROM gl_entry`).Scan(&n); err != nil {
		return fmt.Errorf("count entries: %w", err)
	}
	if n > 0 {
		return nil
	}

	dom, err := s.DomesticCurrency(ctx)
	if err != nil {
		return err
	}
	today := time.Now()
	day := func(offset int) string {
		return today.AddDate(0, 0, offset).Format(ledger.DateLayout)
	}

	groceries := &ledger.Entry{
		UUID:           uuid.Must(uuid.NewV7()).String(),
		AccountingDate: day(-2),
		Type:           ledger.EntryExpense,
		Title:          ptr("Tesco"),
		Text:           ptr("Groceries"),
	}
	err = s.SaveEntryFullReplace(ctx, groceries, []ledger.Line{
		{AccountCode: "5000000001", DC: ledger.Debit, AmountDomestic: 18.50, CurrencyOriginal: dom, AmountOriginal: ptr(18.50)},
		{AccountCode: "5000000007", DC: ledger.Debit, AmountDomestic: 6.20, CurrencyOriginal: dom, AmountOriginal: ptr(6.20)},
		{AccountCode: ledger.CashAccountCode, DC: ledger.Credit, AmountDomestic: 24.70, CurrencyOriginal: dom, AmountOriginal: ptr(24.70)},
	}, true)
	if err != nil {
		return fmt.Errorf("seed groceries entry: %w", err)
	}

	foreign := &ledger.Entry{
		UUID:           uuid.Must(uuid.NewV7()).String(),
		AccountingDate: day(-1),
		Type:           ledger.EntryExpense,
		Title:          ptr("Amazon US"),
		Text:           ptr("Foreign purchase"),
	}
	err = s.SaveEntryFullReplace(ctx, foreign, []ledger.Line{
		{AccountCode: "5000000002", DC: ledger.Debit, AmountDomestic: 30.00, CurrencyOriginal: "USD", AmountOriginal: ptr(38.00)},
		{AccountCode: ledger.CashAccountCode, DC: ledger.Credit, AmountDomestic: 30.00, CurrencyOriginal: "USD", AmountOriginal: ptr(38.00)},
	}, true)
	if err != nil {
		return fmt.Errorf("seed foreign entry: %w", err)
	}

	cardPayment := &ledger.Entry{
		UUID:           uuid.Must(uuid.NewV7()).String(),
		AccountingDate: day(0),
		Type:           ledger.EntryGeneral,
		Title:          ptr("Card Payment"),
		Text:           ptr("Pay credit card"),
	}
	err = s.SaveEntryFullReplace(ctx, cardPayment, []ledger.Line{
		{AccountCode: "1000000001", DC: ledger.Debit, AmountDomestic: 50.00, CurrencyOriginal: dom, AmountOriginal: ptr(50.00), ItemText: ptr("Credit card decrease")},
		{AccountCode: ledger.CashAccountCode, DC: ledger.Credit, AmountDomestic: 50.00, CurrencyOriginal: dom, AmountOriginal: ptr(50.00), ItemText: ptr("Cash decrease")},
	}, true)
	if err != nil {
		return fmt.Errorf("seed card payment entry: %w", err)
	}

	return nil
}
