package sale

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common/errs"
	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectSchedule(t *testing.T) {
	conf, err := NewSaleConfig(testParams())
	require.NoError(t, err)

	assert.Equal(t, conf.ReducedPriceSchedule, SelectSchedule(conf, true))
	assert.Equal(t, conf.PriceSchedule, SelectSchedule(conf, false))
}

func TestUnitsForPayment(t *testing.T) {
	full := schedule(10, 9, 8, 7, 6)
	reduced := schedule(5, 4, 3, 2, 1)

	testcases := []struct {
		name     string
		schedule []uint128.Uint128
		already  uint64
		payment  uint64
		expected uint64
		err      error
	}{
		{"one_unit", full, 0, 10, 1, nil},
		{"two_units", full, 0, 19, 2, nil},
		{"whole_wallet", full, 0, 40, 5, nil},
		{"reduced_one_unit", reduced, 0, 5, 1, nil},
		{"reduced_between_prices", reduced, 0, 10, 0, ErrExceedsPayment},
		{"continue_from_ledger", full, 1, 9, 1, nil},
		{"continue_from_ledger_two_units", full, 2, 15, 2, nil},
		{"zero_payment", full, 0, 0, 0, ErrExceedsPayment},
		{"below_first_price", full, 0, 6, 0, ErrExceedsPayment},
		{"between_prices", full, 0, 15, 0, ErrExceedsPayment},
		{"too_much", full, 0, 150, 0, ErrPaymentTooLarge},
		{"wallet_full", full, 5, 6, 0, ErrPaymentTooLarge},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			units, err := UnitsForPayment(tc.schedule, tc.already, uint128.From64(tc.payment))
			if tc.err != nil {
				assert.True(t, errors.Is(err, tc.err), "expected %v, got %v", tc.err, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, units)
		})
	}

	t.Run("exact_hit_at_max", func(t *testing.T) {
		units, err := UnitsForPayment([]uint128.Uint128{uint128.Max, uint128.From64(1)}, 0, uint128.Max)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), units)
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := UnitsForPayment([]uint128.Uint128{uint128.Max.Sub64(1), uint128.From64(2)}, 0, uint128.Max)
		assert.True(t, errors.Is(err, ErrAmountOverflow))
		assert.True(t, errors.Is(err, errs.OverflowUint128))
	})
}

func TestValidateExactPrice(t *testing.T) {
	full := schedule(10, 9, 8, 7, 6)

	testcases := []struct {
		name      string
		already   uint64
		requested uint64
		payment   uint64
		err       error
	}{
		{"first_unit", 0, 1, 10, nil},
		{"batch_priced_at_last_unit", 0, 2, 18, nil},
		{"batch_after_ledger", 2, 3, 18, nil},
		{"whole_wallet", 0, 5, 30, nil},
		{"zero_units", 0, 0, 0, ErrInvalidQuantity},
		{"exceeds_max_per_wallet", 3, 3, 18, ErrInvalidQuantity},
		{"wallet_full", 5, 1, 6, ErrInvalidQuantity},
		{"cumulative_is_not_exact", 0, 2, 19, ErrAmountMismatch},
		{"underpay", 0, 1, 9, ErrAmountMismatch},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateExactPrice(full, tc.already, tc.requested, uint128.From64(tc.payment))
			if tc.err != nil {
				assert.True(t, errors.Is(err, tc.err), "expected %v, got %v", tc.err, err)
				return
			}
			assert.NoError(t, err)
		})
	}

	t.Run("overflow", func(t *testing.T) {
		err := ValidateExactPrice([]uint128.Uint128{uint128.Max, uint128.Max}, 0, 2, uint128.Max)
		assert.True(t, errors.Is(err, ErrAmountOverflow))
	})
}

func TestReconcile(t *testing.T) {
	conf, err := NewSaleConfig(testParams())
	require.NoError(t, err)

	t.Run("payment_strategy_ignores_requested_units", func(t *testing.T) {
		units, err := Reconcile(conf, conf.PriceSchedule, 0, uint128.From64(19), 5)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), units)
	})

	t.Run("exact_strategy", func(t *testing.T) {
		conf := conf
		conf.PricingStrategy = entity.PricingStrategyExact

		units, err := Reconcile(conf, conf.PriceSchedule, 0, uint128.From64(18), 2)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), units)

		_, err = Reconcile(conf, conf.PriceSchedule, 0, uint128.From64(19), 2)
		assert.True(t, errors.Is(err, ErrAmountMismatch))
	})
}
