package ledger

import (
	"fmt"
	"math"
	"time"
)

type DC string

const (
	Debit  DC = "D"
	Credit DC = "C"
)

func (dc DC) Valid() bool {
	return dc == Debit || dc == Credit
}

type EntryType string

const (
	EntryExpense EntryType = "EXPENSE"
	EntryGeneral EntryType = "GENERAL"
)

func (t EntryType) Valid() bool {
	return t == EntryExpense || t == EntryGeneral
}

// DateLayout is the accounting-date format.
const DateLayout = "2006-01-02"

// BalanceTolerance is the epsilon for the debit/credit identity.
const BalanceTolerance = 1e-6

// Entry is one journal transaction header. Lines live separately and
// are always replaced as a set, never patched.
type Entry struct {
	UUID             string    `json:"entry_uuid"`
	ModificationDate string    `json:"modification_date"`
	AccountingDate   string    `json:"accounting_date"`
	Type             EntryType `json:"entry_type"`
	Title            *string   `json:"entry_title"`
	Text             *string   `json:"entry_text"`
}

// Line is one debit or credit leg of an entry. LineNo is a dense
// 1-based sequence assigned at write time; it is not a stable identity
// across edits.
type Line struct {
	EntryUUID        string   `json:"entry_uuid,omitempty"`
	LineNo           int      `json:"line_no,omitempty"`
	AccountCode      string   `json:"account_code"`
	DC               DC       `json:"dc"`
	AmountDomestic   float64  `json:"amount_domestic"`
	CurrencyOriginal string   `json:"currency_original"`
	AmountOriginal   *float64 `json:"amount_original"`
	ItemText         *string  `json:"item_text"`
}

// LineDetail is a line joined with its account, for display.
type LineDetail struct {
	Line
	AccountName string      `json:"account_name"`
	AccountType AccountType `json:"account_type"`
	IsPL        bool        `json:"is_pl"`
}

// Balance returns the signed debit-minus-credit sum of domestic amounts.
func Balance(lines []Line) float64 {
	var bal float64
	for _, ln := range lines {
		if ln.DC == Debit {
			bal += ln.AmountDomestic
		} else {
			bal -= ln.AmountDomestic
		}
	}
	return bal
}

// Balanced reports whether the lines satisfy the accounting identity
// within tolerance.
func Balanced(lines []Line) bool {
	return math.Abs(Balance(lines)) <= BalanceTolerance
}

// ValidDate reports whether s is a well-formed ISO calendar date.
func ValidDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// NowISO is the modification timestamp format: local time, second
// precision, no zone suffix.
func NowISO() string {
	return time.Now().Format("2006-01-02T15:04:05")
}

// ValidateLines checks the pure (non-referential) line invariants:
// non-empty set, valid direction on every line, balanced totals.
func ValidateLines(lines []Line) error {
	if len(lines) == 0 {
		return ErrNoLines
	}
	for i, ln := range lines {
		if !ln.DC.Valid() {
			return fmt.Errorf("%w: line %d has dc %q", ErrInvalidDC, i+1, ln.DC)
		}
	}
	if bal := Balance(lines); math.Abs(bal) > BalanceTolerance {
		return fmt.Errorf("%w: diff=%.6f", ErrUnbalancedEntry, bal)
	}
	return nil
}
