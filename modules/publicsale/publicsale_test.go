package publicsale

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	publicsaleconfig "github.com/gaze-network/public-sale/modules/publicsale/config"
	"github.com/gaze-network/public-sale/modules/publicsale/repository/inmemory"
	"github.com/gaze-network/public-sale/modules/publicsale/sale"
	"github.com/gaze-network/public-sale/modules/publicsale/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSaleConfig() publicsaleconfig.SaleConfig {
	return publicsaleconfig.SaleConfig{
		MaxPerWallet:         2,
		PriceSchedule:        []string{"10", "9"},
		ReducedPriceSchedule: []string{"5", "4"},
		PublicSaleTime:       120,
		SecondWhitelistDelta: 20,
		FirstWhitelistDelta:  40,
		SaleDuration:         140,
		SaleAsset:            publicsaleconfig.AssetConfig{Identifier: "EGG-a1b2c3", Nonce: 1},
		SettlementAsset:      publicsaleconfig.AssetConfig{Identifier: "BTC"},
		PricingStrategy:      "payment",
		Operator:             "operator",
		SaleAccount:          "sale",
	}
}

func TestEnsureInitialized(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(inmemory.NewRepository(), usecase.SystemClock{})

	require.NoError(t, ensureInitialized(ctx, uc, testSaleConfig()))
	conf, err := uc.GetSaleConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(80), conf.FirstWhitelistTime)

	changed := testSaleConfig()
	changed.PublicSaleTime = 500
	require.NoError(t, ensureInitialized(ctx, uc, changed), "a stored sale is kept")
	conf, err = uc.GetSaleConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(120), conf.PublicSaleTime)
}

func TestEnsureInitializedInvalid(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(inmemory.NewRepository(), usecase.SystemClock{})

	invalid := testSaleConfig()
	invalid.PriceSchedule = []string{"10"}
	err := ensureInitialized(ctx, uc, invalid)
	assert.True(t, errors.Is(err, sale.ErrInvalidConfig))
}

func TestNewDataGatewayUnsupported(t *testing.T) {
	_, _, err := NewDataGateway(context.Background(), publicsaleconfig.Config{Database: "mongodb"})
	assert.Error(t, err)
}
