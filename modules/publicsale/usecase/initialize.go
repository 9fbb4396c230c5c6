package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common/errs"
	"github.com/gaze-network/public-sale/modules/publicsale/datagateway"
	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/gaze-network/public-sale/modules/publicsale/sale"
	"github.com/gaze-network/public-sale/pkg/logger"
	"github.com/gaze-network/public-sale/pkg/logger/slogx"
)

// Initialize validates params and stores the sale config. It succeeds at most once and only for
// the operator named in params.
func (u *Usecase) Initialize(ctx context.Context, caller string, params sale.Params) (*entity.SaleConfig, error) {
	conf, err := sale.NewSaleConfig(params)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if err := requireOperator(&conf, caller); err != nil {
		return nil, err
	}

	err = u.inTx(ctx, func(qtx datagateway.PublicSaleDataGatewayWithTx) error {
		if err := qtx.CreateSaleConfig(ctx, conf); err != nil {
			if errors.Is(err, errs.Conflict) {
				return errors.WithStack(sale.ErrAlreadyInitialized)
			}
			return errors.Wrap(err, "failed to create sale config")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Sale initialized",
		slogx.Uint64("max_per_wallet", conf.MaxPerWallet),
		slogx.Uint64("first_whitelist_time", conf.FirstWhitelistTime),
		slogx.Uint64("second_whitelist_time", conf.SecondWhitelistTime),
		slogx.Uint64("public_sale_time", conf.PublicSaleTime),
		slogx.Uint64("closed_time", conf.ClosedTime),
		slogx.Stringer("sale_asset", conf.SaleAsset),
		slogx.Stringer("settlement_asset", conf.SettlementAsset),
		slogx.String("pricing_strategy", string(conf.PricingStrategy)),
	)
	return &conf, nil
}

func (u *Usecase) GetSaleConfig(ctx context.Context) (*entity.SaleConfig, error) {
	return getSaleConfig(ctx, u.saleDg)
}
