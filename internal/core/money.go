// Package core provides the ledger's domain types and money handling utilities.
//
// This file contains the amount parser that turns free-text user input into
// integer bani, and the RON formatter used when showing amounts to people.
package core

import (
	"math"
	"strings"
	"unicode"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the ISO code of the only currency the ledger knows.
const Currency = money.RON

var maxBani = decimal.NewFromInt(math.MaxInt64)

// ParseAmount converts user input to bani (1/100 RON) with rounding.
//
// Whitespace anywhere in the input is ignored and a comma is read as the
// decimal separator. The comma is never a thousands separator, so input such
// as "1,234.56" is rejected. Returns ErrInvalidAmount for empty, malformed,
// non-finite, zero or negative values.
//
// Examples:
//
//	ParseAmount("12,50")  -> 1250, nil
//	ParseAmount(" 1 000") -> 100000, nil
//	ParseAmount("0.005")  -> 1, nil (rounds half away from zero)
//	ParseAmount("-5")     -> 0, ErrInvalidAmount
func ParseAmount(text string) (int64, error) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.Replace(s, ",", ".", 1)

	// decimal accepts exponents ("1e3") like a JS Number does, but not
	// "Infinity" or "NaN", which is what we want.
	v, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if !v.IsPositive() {
		return 0, ErrInvalidAmount
	}
	bani := v.Shift(2).Round(0)
	if bani.GreaterThan(maxBani) || bani.IsZero() {
		return 0, ErrInvalidAmount
	}
	return bani.IntPart(), nil
}

// FormatBani renders an amount of bani the way Romanian users read it.
// Meant for display only; computations stay in int64 bani.
func FormatBani(bani int64) string {
	return money.New(bani, Currency).Display()
}
