package ledger

import "errors"

var (
	ErrInvalidAccountCode = errors.New("invalid account code")
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrEmptyAccountName   = errors.New("account name is required")
	ErrTypePLMismatch     = errors.New("account type does not match is_pl flag")
	ErrAccountNotFound    = errors.New("account not found")
	ErrNotUserManaged     = errors.New("account not found or not user managed")
	ErrEntryNotFound      = errors.New("entry not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrNoLines            = errors.New("at least one line is required")
	ErrInvalidDC          = errors.New("dc must be D or C")
	ErrInvalidDate        = errors.New("accounting_date must be ISO date YYYY-MM-DD")
	ErrInvalidEntryType   = errors.New("invalid entry type")
	ErrUnbalancedEntry    = errors.New("debit/credit not balanced (domestic)")
	ErrUnknownAccount     = errors.New("unknown account_code")
	ErrInactiveAccount    = errors.New("inactive account_code")
	ErrInvalidCurrency    = errors.New("currency must be a 3-letter alphabetic code")
	ErrInvalidMIMEType    = errors.New("unsupported attachment mime type")
)
