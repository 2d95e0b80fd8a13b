package services

import (
	"fmt"
	"strings"
)

// FormatEUR formats an amount as a EUR string with thousands separators,
// e.g. "€12,345,678.90". The result always carries exactly 2 decimals.
func FormatEUR(amount float64) string {
	return formatMoney(amount, "€", "")
}

// FormatLEI formats an amount as a LEI string, e.g. "12,345.00 LEI".
func FormatLEI(amount float64) string {
	return formatMoney(amount, "", " LEI")
}

func formatMoney(amount float64, prefix, suffix string) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)

	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := prefix + groupThousands(intPart) + "." + decPart + suffix
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas into an integer string every 3 digits from
// the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]

	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}

	return result
}
