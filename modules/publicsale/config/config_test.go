package config

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common/errs"
	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleConfigParams(t *testing.T) {
	conf := SaleConfig{
		MaxPerWallet:         2,
		PriceSchedule:        []string{"10", "340282366920938463463374607431768211455"},
		ReducedPriceSchedule: []string{"5", "4"},
		PublicSaleTime:       120,
		SecondWhitelistDelta: 20,
		FirstWhitelistDelta:  40,
		SaleDuration:         140,
		SaleAsset:            AssetConfig{Identifier: "EGG-a1b2c3", Nonce: 1},
		SettlementAsset:      AssetConfig{Identifier: "BTC"},
		PricingStrategy:      "exact",
		Operator:             "operator",
		SaleAccount:          "sale",
	}

	params, err := conf.Params()
	require.NoError(t, err)
	assert.Equal(t, []uint128.Uint128{uint128.From64(10), uint128.Max}, params.PriceSchedule)
	assert.Equal(t, []uint128.Uint128{uint128.From64(5), uint128.From64(4)}, params.ReducedPriceSchedule)
	assert.Equal(t, entity.Asset{Identifier: "EGG-a1b2c3", Nonce: 1}, params.SaleAsset)
	assert.Equal(t, entity.PricingStrategyExact, params.PricingStrategy)
	assert.Equal(t, uint64(40), params.FirstWhitelistDelta)

	t.Run("invalid_price", func(t *testing.T) {
		conf := conf
		conf.ReducedPriceSchedule = []string{"5", "-1"}
		_, err := conf.Params()
		assert.True(t, errors.Is(err, errs.InvalidArgument))
	})
}

func TestDefault(t *testing.T) {
	conf := Default()
	assert.Equal(t, DatabasePostgres, conf.Database)
	assert.Equal(t, string(entity.PricingStrategyPayment), conf.Sale.PricingStrategy)
}
