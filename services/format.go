package services

import (
	"fmt"
	"strings"
)

// currencySymbols maps ISO 4217 codes to display symbols. Codes not in
// the table render as the code itself followed by a space.
var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"AUD": "A$",
	"CAD": "C$",
	"SGD": "S$",
	"CHF": "CHF ",
	"AED": "AED ",
	"SAR": "SAR ",
}

// CurrencySymbol returns the display prefix for a 3-letter currency code.
func CurrencySymbol(code string) string {
	if sym, ok := currencySymbols[strings.ToUpper(code)]; ok {
		return sym
	}
	if code == "" {
		return ""
	}
	return code + " "
}

// FormatMoney formats an amount with the currency's display symbol and
// exactly 2 decimal places. INR uses the Indian numbering system where,
// after the rightmost 3 digits, digits are grouped in pairs
// (e.g. ₹1,23,45,678.90); other currencies group in thousands.
func FormatMoney(code string, amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	var formatted string
	if strings.EqualFold(code, "INR") {
		formatted = applyIndianGrouping(intPart)
	} else {
		formatted = applyThousandsGrouping(intPart)
	}

	result := CurrencySymbol(code) + formatted + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// applyIndianGrouping inserts commas into an integer string using the
// Indian numbering system: the rightmost 3 digits form the first group,
// then every 2 digits form subsequent groups.
func applyIndianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	// The last 3 digits stay together.
	result := s[n-3:]
	remaining := s[:n-3]

	// Group remaining digits in pairs from the right.
	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}

	return result
}

// applyThousandsGrouping inserts commas every 3 digits from the right.
func applyThousandsGrouping(s string) string {
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
	return remaining + "," + result
}

// FormatPercent renders a change percentage with sign and 2 decimals, or
// a dash when the change is not computable.
func FormatPercent(pct *float64) string {
	if pct == nil {
		return "—"
	}
	return fmt.Sprintf("%+.2f%%", *pct)
}
