package postgres

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/gaze-network/public-sale/modules/publicsale/repository/postgres/gen"
	"github.com/gaze-network/uint128"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/samber/lo"
)

func uint128FromNumeric(src pgtype.Numeric) (uint128.Uint128, error) {
	if !src.Valid {
		return uint128.Zero, nil
	}
	bytes, err := src.MarshalJSON()
	if err != nil {
		return uint128.Zero, errors.WithStack(err)
	}
	result, err := uint128.FromString(string(bytes))
	if err != nil {
		return uint128.Zero, errors.WithStack(err)
	}
	return result, nil
}

func numericFromUint128(src uint128.Uint128) (pgtype.Numeric, error) {
	var result pgtype.Numeric
	if err := result.UnmarshalJSON([]byte(src.String())); err != nil {
		return pgtype.Numeric{}, errors.WithStack(err)
	}
	return result, nil
}

func mapScheduleToNumerics(schedule []uint128.Uint128) ([]pgtype.Numeric, error) {
	result := make([]pgtype.Numeric, 0, len(schedule))
	for i, price := range schedule {
		numeric, err := numericFromUint128(price)
		if err != nil {
			return nil, errors.Wrapf(err, "price at index %d", i)
		}
		result = append(result, numeric)
	}
	return result, nil
}

func mapNumericsToSchedule(src []pgtype.Numeric) ([]uint128.Uint128, error) {
	result := make([]uint128.Uint128, 0, len(src))
	for i, numeric := range src {
		price, err := uint128FromNumeric(numeric)
		if err != nil {
			return nil, errors.Wrapf(err, "price at index %d", i)
		}
		result = append(result, price)
	}
	return result, nil
}

// uint64 fields are stored bit-for-bit in signed BIGINT columns.
func mapSaleConfigModelToType(src gen.PublicsaleConfig) (entity.SaleConfig, error) {
	prices, err := mapNumericsToSchedule(src.PriceSchedule)
	if err != nil {
		return entity.SaleConfig{}, errors.Wrap(err, "failed to parse price schedule")
	}
	reducedPrices, err := mapNumericsToSchedule(src.ReducedPriceSchedule)
	if err != nil {
		return entity.SaleConfig{}, errors.Wrap(err, "failed to parse reduced price schedule")
	}
	return entity.SaleConfig{
		MaxPerWallet:         uint64(src.MaxPerWallet),
		PriceSchedule:        prices,
		ReducedPriceSchedule: reducedPrices,
		FirstWhitelistTime:   uint64(src.FirstWhitelistTime),
		SecondWhitelistTime:  uint64(src.SecondWhitelistTime),
		PublicSaleTime:       uint64(src.PublicSaleTime),
		ClosedTime:           uint64(src.ClosedTime),
		SaleAsset: entity.Asset{
			Identifier: src.SaleAssetID,
			Nonce:      uint64(src.SaleAssetNonce),
		},
		SettlementAsset: entity.Asset{
			Identifier: src.SettlementAssetID,
			Nonce:      uint64(src.SettlementAssetNonce),
		},
		PricingStrategy: entity.PricingStrategy(src.PricingStrategy),
		Operator:        src.Operator,
		SaleAccount:     src.SaleAccount,
	}, nil
}

func mapSaleConfigTypeToParams(src entity.SaleConfig) (gen.CreateSaleConfigParams, error) {
	prices, err := mapScheduleToNumerics(src.PriceSchedule)
	if err != nil {
		return gen.CreateSaleConfigParams{}, errors.Wrap(err, "failed to convert price schedule")
	}
	reducedPrices, err := mapScheduleToNumerics(src.ReducedPriceSchedule)
	if err != nil {
		return gen.CreateSaleConfigParams{}, errors.Wrap(err, "failed to convert reduced price schedule")
	}
	return gen.CreateSaleConfigParams{
		MaxPerWallet:         int64(src.MaxPerWallet),
		PriceSchedule:        prices,
		ReducedPriceSchedule: reducedPrices,
		FirstWhitelistTime:   int64(src.FirstWhitelistTime),
		SecondWhitelistTime:  int64(src.SecondWhitelistTime),
		PublicSaleTime:       int64(src.PublicSaleTime),
		ClosedTime:           int64(src.ClosedTime),
		SaleAssetID:          src.SaleAsset.Identifier,
		SaleAssetNonce:       int64(src.SaleAsset.Nonce),
		SettlementAssetID:    src.SettlementAsset.Identifier,
		SettlementAssetNonce: int64(src.SettlementAsset.Nonce),
		PricingStrategy:      string(src.PricingStrategy),
		Operator:             src.Operator,
		SaleAccount:          src.SaleAccount,
	}, nil
}

func mapPurchaserRowsToTypes(rows []gen.GetPurchasersRow) []entity.Purchaser {
	return lo.Map(rows, func(item gen.GetPurchasersRow, _ int) entity.Purchaser {
		return entity.Purchaser{
			Identity: item.Identity,
			Units:    uint64(item.Units),
		}
	})
}
