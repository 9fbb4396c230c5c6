package sale

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/gaze-network/uint128"
)

// Params are the initialization inputs of a sale. Timestamps and durations are unix seconds.
type Params struct {
	MaxPerWallet         uint64
	PriceSchedule        []uint128.Uint128
	ReducedPriceSchedule []uint128.Uint128

	PublicSaleTime       uint64
	SecondWhitelistDelta uint64
	FirstWhitelistDelta  uint64
	SaleDuration         uint64

	SaleAsset       entity.Asset
	SettlementAsset entity.Asset

	// PricingStrategy defaults to entity.PricingStrategyPayment when empty.
	PricingStrategy entity.PricingStrategy

	Operator    string
	SaleAccount string
}

// NewSaleConfig validates the params and derives the tier opening times.
func NewSaleConfig(params Params) (entity.SaleConfig, error) {
	if params.MaxPerWallet == 0 {
		return entity.SaleConfig{}, errors.Wrap(ErrInvalidConfig, "max per wallet must be greater than zero")
	}
	if err := validateSchedule("price schedule", params.PriceSchedule, params.MaxPerWallet); err != nil {
		return entity.SaleConfig{}, err
	}
	if err := validateSchedule("reduced price schedule", params.ReducedPriceSchedule, params.MaxPerWallet); err != nil {
		return entity.SaleConfig{}, err
	}
	if params.SecondWhitelistDelta > params.FirstWhitelistDelta {
		return entity.SaleConfig{}, errors.Wrapf(ErrInvalidConfig, "second whitelist delta %d must not exceed first whitelist delta %d", params.SecondWhitelistDelta, params.FirstWhitelistDelta)
	}
	if params.FirstWhitelistDelta > params.PublicSaleTime {
		return entity.SaleConfig{}, errors.Wrapf(ErrInvalidConfig, "first whitelist delta %d is greater than public sale time %d", params.FirstWhitelistDelta, params.PublicSaleTime)
	}
	if params.SaleDuration > math.MaxUint64-params.PublicSaleTime {
		return entity.SaleConfig{}, errors.Wrap(ErrInvalidConfig, "sale closing time overflows")
	}

	strategy := params.PricingStrategy
	if strategy == "" {
		strategy = entity.PricingStrategyPayment
	}
	if !strategy.IsValid() {
		return entity.SaleConfig{}, errors.Wrapf(ErrInvalidConfig, "unknown pricing strategy %q", strategy)
	}

	if params.SaleAsset.IsZero() || params.SettlementAsset.IsZero() {
		return entity.SaleConfig{}, errors.Wrap(ErrInvalidConfig, "sale asset and settlement asset are required")
	}
	if params.SaleAsset == params.SettlementAsset {
		return entity.SaleConfig{}, errors.Wrap(ErrInvalidConfig, "sale asset must differ from settlement asset")
	}
	if params.Operator == "" || params.SaleAccount == "" {
		return entity.SaleConfig{}, errors.Wrap(ErrInvalidConfig, "operator and sale account are required")
	}
	if params.Operator == params.SaleAccount {
		return entity.SaleConfig{}, errors.Wrap(ErrInvalidConfig, "operator must differ from sale account")
	}

	return entity.SaleConfig{
		MaxPerWallet:         params.MaxPerWallet,
		PriceSchedule:        append([]uint128.Uint128(nil), params.PriceSchedule...),
		ReducedPriceSchedule: append([]uint128.Uint128(nil), params.ReducedPriceSchedule...),
		FirstWhitelistTime:   params.PublicSaleTime - params.FirstWhitelistDelta,
		SecondWhitelistTime:  params.PublicSaleTime - params.SecondWhitelistDelta,
		PublicSaleTime:       params.PublicSaleTime,
		ClosedTime:           params.PublicSaleTime + params.SaleDuration,
		SaleAsset:            params.SaleAsset,
		SettlementAsset:      params.SettlementAsset,
		PricingStrategy:      strategy,
		Operator:             params.Operator,
		SaleAccount:          params.SaleAccount,
	}, nil
}

func validateSchedule(name string, schedule []uint128.Uint128, maxPerWallet uint64) error {
	if len(schedule) == 0 {
		return errors.Wrapf(ErrInvalidConfig, "%s is empty", name)
	}
	if uint64(len(schedule)) != maxPerWallet {
		return errors.Wrapf(ErrInvalidConfig, "%s has %d prices, expected %d", name, len(schedule), maxPerWallet)
	}
	return nil
}
