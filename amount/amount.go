// Package amount parses user-supplied amount strings into integer
// minor-unit values (satoshis).
//
// The wallet's configured decimal point decides the scale of plain
// decimal input: a decimal point of 8 means "1.5" is 1.5 whole coins,
// a decimal point of 0 means satoshis. A single "!" token is the
// max-spend sentinel, meaning the entire available balance.
package amount

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxSpendToken is the sentinel accepted in place of a numeric amount.
const MaxSpendToken = "!"

// Amount is a parsed minor-unit amount. When Max is set, Value is
// zero and the caller must substitute the full available balance.
type Amount struct {
	Value int64
	Max   bool
}

// IsMaxSpend reports whether text is the max-spend sentinel.
func IsMaxSpend(text string) bool {
	return strings.TrimSpace(text) == MaxSpendToken
}

// Parse converts text into an Amount. decimalPoint is the exponent of
// the wallet's display unit relative to the minor unit (8 for whole
// coins, 0 for satoshis). Fractions below the minor unit are
// truncated, never rounded.
func Parse(text string, decimalPoint int) (Amount, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Amount{}, ErrEmptyAmount
	}
	if text == MaxSpendToken {
		return Amount{Max: true}, nil
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}
	if d.IsNegative() {
		return Amount{}, fmt.Errorf("%w: %q is negative", ErrOutOfRange, text)
	}

	// Scale to minor units and truncate toward zero.
	sats := d.Shift(int32(decimalPoint)).IntPart()
	return Amount{Value: sats}, nil
}

// FormatPlain renders a satoshi value as a plain decimal string at the
// given decimal point, without grouping or a trailing unit. Used when
// composing BIP21 URIs, which always carry whole-coin amounts.
func FormatPlain(sats int64, decimalPoint int) string {
	return decimal.New(sats, 0).Shift(int32(-decimalPoint)).String()
}
