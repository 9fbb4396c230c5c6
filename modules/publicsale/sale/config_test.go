package sale

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSaleConfig(t *testing.T) {
	t.Run("derives_timestamps", func(t *testing.T) {
		conf, err := NewSaleConfig(testParams())
		require.NoError(t, err)

		assert.Equal(t, uint64(80), conf.FirstWhitelistTime)
		assert.Equal(t, uint64(100), conf.SecondWhitelistTime)
		assert.Equal(t, uint64(120), conf.PublicSaleTime)
		assert.Equal(t, uint64(260), conf.ClosedTime)
		assert.Equal(t, entity.PricingStrategyPayment, conf.PricingStrategy)
		assert.LessOrEqual(t, conf.FirstWhitelistTime, conf.SecondWhitelistTime)
		assert.LessOrEqual(t, conf.SecondWhitelistTime, conf.PublicSaleTime)
		assert.LessOrEqual(t, conf.PublicSaleTime, conf.ClosedTime)
	})

	t.Run("copies_schedules", func(t *testing.T) {
		params := testParams()
		conf, err := NewSaleConfig(params)
		require.NoError(t, err)

		params.PriceSchedule[0] = params.PriceSchedule[4]
		assert.Equal(t, schedule(10, 9, 8, 7, 6), conf.PriceSchedule)
	})

	t.Run("equal_deltas", func(t *testing.T) {
		params := testParams()
		params.SecondWhitelistDelta = params.FirstWhitelistDelta
		conf, err := NewSaleConfig(params)
		require.NoError(t, err)
		assert.Equal(t, conf.FirstWhitelistTime, conf.SecondWhitelistTime)
	})

	testcases := []struct {
		name   string
		modify func(p *Params)
	}{
		{"zero_max_per_wallet", func(p *Params) { p.MaxPerWallet = 0 }},
		{"empty_price_schedule", func(p *Params) { p.PriceSchedule = nil }},
		{"empty_reduced_schedule", func(p *Params) { p.ReducedPriceSchedule = schedule() }},
		{"price_schedule_length", func(p *Params) { p.PriceSchedule = schedule(10, 9, 8, 7) }},
		{"reduced_schedule_length", func(p *Params) { p.ReducedPriceSchedule = schedule(5, 4, 3, 2, 1, 1) }},
		{"max_per_wallet_mismatch", func(p *Params) { p.MaxPerWallet = 4 }},
		{"tier_order", func(p *Params) { p.SecondWhitelistDelta = 41 }},
		{"negative_tier1_time", func(p *Params) { p.FirstWhitelistDelta = 121 }},
		{"closed_time_overflow", func(p *Params) { p.SaleDuration = math.MaxUint64 }},
		{"unknown_strategy", func(p *Params) { p.PricingStrategy = "auction" }},
		{"same_assets", func(p *Params) { p.SettlementAsset = p.SaleAsset }},
		{"missing_sale_asset", func(p *Params) { p.SaleAsset = entity.Asset{} }},
		{"missing_operator", func(p *Params) { p.Operator = "" }},
		{"operator_is_sale_account", func(p *Params) { p.SaleAccount = p.Operator }},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			params := testParams()
			tc.modify(&params)
			_, err := NewSaleConfig(params)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "expected invalid config, got %v", err)
		})
	}
}
