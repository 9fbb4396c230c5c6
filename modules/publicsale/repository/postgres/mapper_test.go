package postgres

import (
	"math"
	"testing"

	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/gaze-network/public-sale/modules/publicsale/repository/postgres/gen"
	"github.com/gaze-network/uint128"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint128FromNumeric(t *testing.T) {
	t.Run("normal", func(t *testing.T) {
		numeric := pgtype.Numeric{}
		require.NoError(t, numeric.ScanInt64(pgtype.Int8{Int64: 1000, Valid: true}))

		result, err := uint128FromNumeric(numeric)
		assert.NoError(t, err)
		assert.Equal(t, uint128.From64(1000), result)
	})
	t.Run("null", func(t *testing.T) {
		result, err := uint128FromNumeric(pgtype.Numeric{})
		assert.NoError(t, err)
		assert.True(t, result.IsZero())
	})
	t.Run("max", func(t *testing.T) {
		numeric, err := numericFromUint128(uint128.Max)
		require.NoError(t, err)

		result, err := uint128FromNumeric(numeric)
		assert.NoError(t, err)
		assert.Equal(t, uint128.Max, result)
	})
}

func TestSaleConfigMapping(t *testing.T) {
	conf := entity.SaleConfig{
		MaxPerWallet:         5,
		PriceSchedule:        []uint128.Uint128{uint128.From64(10), uint128.From64(9)},
		ReducedPriceSchedule: []uint128.Uint128{uint128.From64(5), uint128.From64(4)},
		FirstWhitelistTime:   80,
		SecondWhitelistTime:  100,
		PublicSaleTime:       120,
		ClosedTime:           math.MaxUint64,
		SaleAsset:            entity.Asset{Identifier: "EGG-a1b2c3", Nonce: 1},
		SettlementAsset:      entity.Asset{Identifier: "BTC"},
		PricingStrategy:      entity.PricingStrategyPayment,
		Operator:             "operator",
		SaleAccount:          "sale",
	}

	params, err := mapSaleConfigTypeToParams(conf)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), params.ClosedTime, "uint64 max is stored bit-for-bit")

	result, err := mapSaleConfigModelToType(gen.PublicsaleConfig{
		ID:                   1,
		MaxPerWallet:         params.MaxPerWallet,
		PriceSchedule:        params.PriceSchedule,
		ReducedPriceSchedule: params.ReducedPriceSchedule,
		FirstWhitelistTime:   params.FirstWhitelistTime,
		SecondWhitelistTime:  params.SecondWhitelistTime,
		PublicSaleTime:       params.PublicSaleTime,
		ClosedTime:           params.ClosedTime,
		SaleAssetID:          params.SaleAssetID,
		SaleAssetNonce:       params.SaleAssetNonce,
		SettlementAssetID:    params.SettlementAssetID,
		SettlementAssetNonce: params.SettlementAssetNonce,
		PricingStrategy:      params.PricingStrategy,
		Operator:             params.Operator,
		SaleAccount:          params.SaleAccount,
	})
	require.NoError(t, err)
	assert.Equal(t, conf, result)
}

func TestMapPurchaserRowsToTypes(t *testing.T) {
	rows := []gen.GetPurchasersRow{
		{Identity: "bob", Units: 2},
		{Identity: "alice", Units: 1},
	}
	assert.Equal(t, []entity.Purchaser{
		{Identity: "bob", Units: 2},
		{Identity: "alice", Units: 1},
	}, mapPurchaserRowsToTypes(rows))
}
