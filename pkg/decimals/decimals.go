package decimals

import (
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

// Amount is a base-unit integer amount.
type Amount interface {
	uint128.Uint128 | uint64
}

// ToDecimal shifts a base-unit amount by the given decimals, e.g. 150 with 2 decimals is 1.5.
func ToDecimal[T Amount, D constraints.Unsigned](amount T, decimals D) decimal.Decimal {
	var value *big.Int
	switch v := any(amount).(type) {
	case uint128.Uint128:
		value = v.Big()
	case uint64:
		value = new(big.Int).SetUint64(v)
	}
	return decimal.NewFromBigInt(value, -int32(uint16(decimals)))
}

const (
	// maxDigits is the number of decimal digits of the largest uint128.
	maxDigits = 39

	// maxInputLength bounds the text accepted by Parse.
	maxInputLength = 128
)

// FromDecimal is the inverse of ToDecimal. The value must be non-negative, have at most
// decimals fractional digits and fit unsigned 128 bits.
func FromDecimal(value decimal.Decimal, decimals uint16) (uint128.Uint128, error) {
	if value.IsNegative() {
		return uint128.Zero, errors.Wrapf(errInvalidAmount, "%s is negative", value)
	}
	if value.IsZero() {
		return uint128.Zero, nil
	}

	// Bound the exponent before scaling, a value like 1e20000000 must not be materialized.
	exponent := int64(value.Exponent()) + int64(decimals)
	digits := int64(value.NumDigits())
	if digits+exponent > maxDigits {
		return uint128.Zero, errOverflow
	}
	if -exponent >= digits {
		return uint128.Zero, errors.Wrapf(errInvalidAmount, "%s has more than %d decimals", value, decimals)
	}

	shifted := value.Shift(int32(decimals))
	if !shifted.Equal(shifted.Truncate(0)) {
		return uint128.Zero, errors.Wrapf(errInvalidAmount, "%s has more than %d decimals", value, decimals)
	}
	base := shifted.BigInt()
	if base.BitLen() > 128 {
		return uint128.Zero, errOverflow
	}
	return uint128.FromBig(base)
}

// Parse reads a human readable amount such as "0.015" into base units.
func Parse(s string, decimals uint16) (uint128.Uint128, error) {
	if len(s) > maxInputLength {
		return uint128.Zero, errors.Wrapf(errInvalidAmount, "longer than %d characters", maxInputLength)
	}
	value, err := decimal.NewFromString(s)
	if err != nil {
		return uint128.Zero, errors.Wrapf(errInvalidAmount, "%q: %v", s, err)
	}
	return FromDecimal(value, decimals)
}
