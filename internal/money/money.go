// Package money converts between the wire representation of amounts
// (integer minor currency units) and their decimal display form.
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Parse converts a decimal string to minor units.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Digits
// past the second decimal place round half-away-from-zero. Only positive
// amounts are valid; zero, negative and malformed inputs return
// ErrInvalidAmount.
//
// Examples:
//
//	Parse("3.50")   -> 350, nil
//	Parse("12,34")  -> 1234, nil
//	Parse("12.345") -> 1235, nil (rounds up)
//	Parse("0")      -> 0, ErrInvalidAmount
func Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	s = strings.ReplaceAll(s, ",", ".")

	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}

	intPart := parts[0]
	if intPart == "" {
		intPart = "0"
	}

	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}

	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	const maxSafe = (1<<63 - 1) / 100
	if units > maxSafe {
		return 0, ErrInvalidAmount
	}

	var cents int64

	if len(fracPart) > 0 {
		cents = int64(fracPart[0]-'0') * 10

		if len(fracPart) > 1 {
			cents += int64(fracPart[1] - '0')

			// Half-away-from-zero on the third decimal digit.
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				cents++
			}
		}
	}

	minor := units*100 + cents
	if minor <= 0 {
		return 0, ErrInvalidAmount
	}

	return minor, nil
}

// Format renders minor units as a plain decimal string with two fractional
// digits. It is the exact inverse of Parse for every valid positive input
// with at most two decimal places.
func Format(minor int64) string {
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders minor units as a localized currency string for
// display. Presentation only; there is no round-trip guarantee.
func FormatCurrency(minor int64) string {
	return printer.Sprint(currency.Symbol(currency.USD.Amount(float64(minor) / 100)))
}
