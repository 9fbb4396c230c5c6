package purchasevalidator

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/gaze-network/public-sale/modules/publicsale/sale"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	btc = entity.Asset{Identifier: "BTC"}
	egg = entity.Asset{Identifier: "EGG-a1b2c3", Nonce: 1}
)

func testConfig(t *testing.T) entity.SaleConfig {
	t.Helper()
	prices := func(p ...uint64) []uint128.Uint128 {
		out := make([]uint128.Uint128, len(p))
		for i := range p {
			out[i] = uint128.From64(p[i])
		}
		return out
	}
	conf, err := sale.NewSaleConfig(sale.Params{
		MaxPerWallet:         5,
		PriceSchedule:        prices(10, 9, 8, 7, 6),
		ReducedPriceSchedule: prices(5, 4, 3, 2, 1),
		PublicSaleTime:       120,
		SecondWhitelistDelta: 20,
		FirstWhitelistDelta:  40,
		SaleDuration:         140,
		SaleAsset:            egg,
		SettlementAsset:      btc,
		Operator:             "operator",
		SaleAccount:          "sale",
	})
	require.NoError(t, err)
	return conf
}

func TestPurchaseValidatorOrder(t *testing.T) {
	conf := testConfig(t)

	t.Run("wrong_asset_reported_before_closed", func(t *testing.T) {
		v := New()
		v.PaymentAsset(conf, egg)
		v.SaleOpen(conf, 300, false)
		v.InventoryAvailable(uint128.Zero)
		assert.False(t, v.Valid)
		assert.True(t, errors.Is(v.Err, sale.ErrWrongPaymentAsset))
	})

	t.Run("closed_reported_before_sold_out", func(t *testing.T) {
		v := New()
		v.PaymentAsset(conf, btc)
		v.SaleOpen(conf, 260, false)
		v.CallerAccess(conf, 260, false, true, true)
		v.InventoryAvailable(uint128.Zero)
		assert.True(t, errors.Is(v.Err, sale.ErrSaleClosed))
	})

	t.Run("operator_bypasses_time_gates", func(t *testing.T) {
		v := New()
		v.PaymentAsset(conf, btc)
		v.SaleOpen(conf, 0, true)
		v.CallerAccess(conf, 0, true, false, false)
		v.InventoryAvailable(uint128.From64(1))
		assert.True(t, v.Valid)
		assert.NoError(t, v.Err)
	})

	t.Run("not_open_for_caller", func(t *testing.T) {
		v := New()
		v.SaleOpen(conf, 90, false)
		v.CallerAccess(conf, 90, false, false, true)
		assert.True(t, errors.Is(v.Err, sale.ErrSaleNotOpenForCaller))
		assert.NotEmpty(t, v.Reason)
	})
}

func TestPurchaseValidatorUnits(t *testing.T) {
	conf := testConfig(t)

	t.Run("reduced_schedule_for_tier2", func(t *testing.T) {
		v := New()
		ok, units := v.Units(conf, true, 0, uint128.From64(5), 0)
		require.True(t, ok)
		assert.Equal(t, uint64(1), units)
	})

	t.Run("inventory_limits_release", func(t *testing.T) {
		v := New()
		_, units := v.Units(conf, false, 0, uint128.From64(19), 0)
		assert.Equal(t, uint64(2), units)
		assert.False(t, v.WithinInventory(units, uint128.From64(1)))
		assert.True(t, errors.Is(v.Err, sale.ErrSoldOut))
	})

	t.Run("skipped_after_failure", func(t *testing.T) {
		v := New()
		v.InventoryAvailable(uint128.Zero)
		ok, units := v.Units(conf, false, 0, uint128.From64(10), 0)
		assert.False(t, ok)
		assert.Zero(t, units)
		assert.True(t, errors.Is(v.Err, sale.ErrSoldOut))
	})
}
