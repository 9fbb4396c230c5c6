package config

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common/errs"
	"github.com/gaze-network/public-sale/internal/postgres"
	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/gaze-network/public-sale/modules/publicsale/sale"
	"github.com/gaze-network/uint128"
)

const (
	DatabasePostgres = "postgres"
	DatabaseInMemory = "memory"
)

type Config struct {
	// Database is the storage backend, "postgres" or "memory".
	Database string          `mapstructure:"database"`
	Postgres postgres.Config `mapstructure:"postgres"`
	Sale     SaleConfig      `mapstructure:"sale"`
	Export   ExportConfig    `mapstructure:"export"`
}

// SaleConfig is applied once, when the store holds no sale yet.
type SaleConfig struct {
	MaxPerWallet uint64 `mapstructure:"max_per_wallet"`

	// Prices are decimal strings in the smallest settlement unit. Index i is the price of unit i+1.
	PriceSchedule        []string `mapstructure:"price_schedule"`
	ReducedPriceSchedule []string `mapstructure:"reduced_price_schedule"`

	PublicSaleTime       uint64 `mapstructure:"public_sale_time"`
	SecondWhitelistDelta uint64 `mapstructure:"second_whitelist_delta"`
	FirstWhitelistDelta  uint64 `mapstructure:"first_whitelist_delta"`
	SaleDuration         uint64 `mapstructure:"sale_duration"`

	SaleAsset       AssetConfig `mapstructure:"sale_asset"`
	SettlementAsset AssetConfig `mapstructure:"settlement_asset"`

	// SettlementDecimals is only used to render prices for display.
	SettlementDecimals uint16 `mapstructure:"settlement_decimals"`

	PricingStrategy string `mapstructure:"pricing_strategy"`
	Operator        string `mapstructure:"operator"`
	SaleAccount     string `mapstructure:"sale_account"`
}

type AssetConfig struct {
	Identifier string `mapstructure:"identifier"`
	Nonce      uint64 `mapstructure:"nonce"`
}

type ExportConfig struct {
	S3Bucket string `mapstructure:"s3_bucket"`
	Region   string `mapstructure:"region"`
	Prefix   string `mapstructure:"prefix"`
}

func Default() Config {
	return Config{
		Database: DatabasePostgres,
		Sale: SaleConfig{
			PricingStrategy:    string(entity.PricingStrategyPayment),
			SettlementDecimals: 8,
		},
		Export: ExportConfig{
			Prefix: "purchasers",
		},
	}
}

func (a AssetConfig) Asset() entity.Asset {
	return entity.Asset{
		Identifier: a.Identifier,
		Nonce:      a.Nonce,
	}
}

// Params converts the file configuration into sale initialization params.
func (c SaleConfig) Params() (sale.Params, error) {
	prices, err := parseSchedule(c.PriceSchedule)
	if err != nil {
		return sale.Params{}, errors.Wrap(err, "invalid price schedule")
	}
	reducedPrices, err := parseSchedule(c.ReducedPriceSchedule)
	if err != nil {
		return sale.Params{}, errors.Wrap(err, "invalid reduced price schedule")
	}
	return sale.Params{
		MaxPerWallet:         c.MaxPerWallet,
		PriceSchedule:        prices,
		ReducedPriceSchedule: reducedPrices,
		PublicSaleTime:       c.PublicSaleTime,
		SecondWhitelistDelta: c.SecondWhitelistDelta,
		FirstWhitelistDelta:  c.FirstWhitelistDelta,
		SaleDuration:         c.SaleDuration,
		SaleAsset:            c.SaleAsset.Asset(),
		SettlementAsset:      c.SettlementAsset.Asset(),
		PricingStrategy:      entity.PricingStrategy(c.PricingStrategy),
		Operator:             c.Operator,
		SaleAccount:          c.SaleAccount,
	}, nil
}

func parseSchedule(values []string) ([]uint128.Uint128, error) {
	schedule := make([]uint128.Uint128, 0, len(values))
	for i, value := range values {
		price, err := uint128.FromString(value)
		if err != nil {
			return nil, errors.Wrapf(errs.InvalidArgument, "price %q at index %d: %v", value, i, err)
		}
		schedule = append(schedule, price)
	}
	return schedule, nil
}
