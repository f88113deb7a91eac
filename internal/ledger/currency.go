package ledger

import (
	"fmt"
	"math"
)

// ValidCurrencyCode reports whether s is exactly three ASCII letters,
// upper-cased. Foreign amounts are stored as given, not converted, so
// this is the only currency validation the core performs.
func ValidCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

// FormatMoney renders a domestic amount for display: "GBP 1,234.50",
// sign in front of the currency code.
func FormatMoney(amount float64, ccy string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%s %s", sign, ccy, groupThousands(math.Abs(amount)))
}

func groupThousands(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	dot := len(s) - 3
	out := s[dot:]
	for i := dot; i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		seg := s[start:i]
		if start > 0 {
			seg = "," + seg
		}
		out = seg + out
	}
	return out
}
