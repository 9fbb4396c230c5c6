package sale

import (
	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/gaze-network/uint128"
)

func schedule(prices ...uint64) []uint128.Uint128 {
	result := make([]uint128.Uint128, 0, len(prices))
	for _, p := range prices {
		result = append(result, uint128.From64(p))
	}
	return result
}

func testParams() Params {
	return Params{
		MaxPerWallet:         5,
		PriceSchedule:        schedule(10, 9, 8, 7, 6),
		ReducedPriceSchedule: schedule(5, 4, 3, 2, 1),
		PublicSaleTime:       120,
		SecondWhitelistDelta: 20,
		FirstWhitelistDelta:  40,
		SaleDuration:         140,
		SaleAsset:            entity.Asset{Identifier: "EGG-a1b2c3", Nonce: 1},
		SettlementAsset:      entity.Asset{Identifier: "BTC"},
		Operator:             "operator",
		SaleAccount:          "sale",
	}
}
