package ledger

import (
	"fmt"
	"strconv"
)

type AccountType string

const (
	TypeAsset     AccountType = "ASSET"
	TypeLiability AccountType = "LIAB"
	TypeEquity    AccountType = "EQUITY"
	TypeIncome    AccountType = "INCOME"
	TypeExpense   AccountType = "EXPENSE"
)

var AllAccountTypes = []AccountType{
	TypeAsset,
	TypeLiability,
	TypeEquity,
	TypeIncome,
	TypeExpense,
}

// PaymentAccountTypes are the types an entry can be settled against:
// ASSET (cash, bank) or LIAB (credit card).
var PaymentAccountTypes = []AccountType{TypeAsset, TypeLiability}

// IsPL reports whether balances of this type reset each period.
// INCOME and EXPENSE are profit/loss; the rest carry forward.
func (t AccountType) IsPL() bool {
	return t == TypeIncome || t == TypeExpense
}

func (t AccountType) Valid() bool {
	switch t {
	case TypeAsset, TypeLiability, TypeEquity, TypeIncome, TypeExpense:
		return true
	default:
		return false
	}
}

// CodeDigits is the fixed width of an account code.
const CodeDigits = 10

// CashAccountCode is the single system cash account.
const CashAccountCode = "0000000001"

type Account struct {
	Code          string      `json:"account_code"`
	Name          string      `json:"account_name"`
	Type          AccountType `json:"account_type"`
	IsPL          bool        `json:"is_pl"`
	IsActive      bool        `json:"is_active"`
	IsUserManaged bool        `json:"is_user_managed"`
}

// CodeFloor returns the base of the numeric code range reserved for
// user-managed accounts of the given type.
func CodeFloor(t AccountType) (int64, error) {
	switch t {
	case TypeAsset:
		return 1_000_000_000, nil
	case TypeLiability:
		return 2_000_000_000, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidAccountType, t)
	}
}

// CodeGlob returns the SQLite GLOB pattern matching all codes in the
// range for the given type. The prefix scan is deliberate: it stays
// correct even if a row's stored type and code prefix disagree.
func CodeGlob(t AccountType) (string, error) {
	switch t {
	case TypeAsset:
		return "1?????????", nil
	case TypeLiability:
		return "2?????????", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidAccountType, t)
	}
}

// FormatCode zero-pads a numeric code to the fixed 10-digit width.
func FormatCode(n int64) string {
	return fmt.Sprintf("%0*d", CodeDigits, n)
}

// ValidCode reports whether s is a well-formed 10-digit account code.
func ValidCode(s string) bool {
	if len(s) != CodeDigits {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// TypeForCode derives the account type from the leading digit of a code.
func TypeForCode(code string) (AccountType, error) {
	if !ValidCode(code) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAccountCode, code)
	}
	switch code[0] {
	case '0', '1':
		return TypeAsset, nil
	case '2':
		return TypeLiability, nil
	case '3':
		return TypeEquity, nil
	case '4':
		return TypeIncome, nil
	case '5':
		return TypeExpense, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAccountCode, code)
	}
}

// IconKey returns a stable presentation hint for an account in list views.
func IconKey(code string, t AccountType) string {
	if code == CashAccountCode {
		return "cash"
	}
	switch t {
	case TypeAsset:
		return "bank"
	case TypeLiability:
		return "card"
	case TypeExpense:
		return "category"
	default:
		return "dot"
	}
}

// Validate checks account invariants.
func (a *Account) Validate() error {
	if !ValidCode(a.Code) {
		return fmt.Errorf("%w: %q", ErrInvalidAccountCode, a.Code)
	}
	if a.Name == "" {
		return ErrEmptyAccountName
	}
	if !a.Type.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidAccountType, a.Type)
	}
	if a.IsPL != a.Type.IsPL() {
		return fmt.Errorf("%w: %s is_pl=%s", ErrTypePLMismatch, a.Type, strconv.FormatBool(a.IsPL))
	}
	return nil
}
