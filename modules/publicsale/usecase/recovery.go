package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/modules/publicsale/datagateway"
	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/gaze-network/public-sale/modules/publicsale/sale"
	"github.com/gaze-network/public-sale/pkg/logger"
	"github.com/gaze-network/public-sale/pkg/logger/slogx"
	"github.com/gaze-network/uint128"
)

// Deposit adds sale asset units to the inventory.
func (u *Usecase) Deposit(ctx context.Context, caller string, asset entity.Asset, amount uint128.Uint128) error {
	return u.inTx(ctx, func(qtx datagateway.PublicSaleDataGatewayWithTx) error {
		conf, err := getSaleConfig(ctx, qtx)
		if err != nil {
			return err
		}
		if err := requireOperator(conf, caller); err != nil {
			return err
		}
		if asset != conf.SaleAsset {
			return errors.Wrapf(sale.ErrWrongDepositAsset, "expected %s, got %s", conf.SaleAsset, asset)
		}
		if amount.IsZero() {
			return errors.Wrap(sale.ErrInvalidQuantity, "deposit amount must be greater than zero")
		}
		if err := qtx.Credit(ctx, conf.SaleAccount, asset, amount); err != nil {
			return errors.Wrap(err, "failed to credit inventory")
		}
		logger.InfoContext(ctx, "Inventory deposited", slogx.Stringer("asset", asset), slogx.Stringer("amount", amount))
		return nil
	})
}

func (u *Usecase) WithdrawSettlementBalance(ctx context.Context, caller string) (uint128.Uint128, error) {
	return u.withdraw(ctx, caller, func(conf *entity.SaleConfig) entity.Asset { return conf.SettlementAsset })
}

func (u *Usecase) WithdrawRemainingInventory(ctx context.Context, caller string) (uint128.Uint128, error) {
	return u.withdraw(ctx, caller, func(conf *entity.SaleConfig) entity.Asset { return conf.SaleAsset })
}

// withdraw moves the sale account's whole balance of the selected asset to the operator.
func (u *Usecase) withdraw(ctx context.Context, caller string, selectAsset func(conf *entity.SaleConfig) entity.Asset) (uint128.Uint128, error) {
	var amount uint128.Uint128
	err := u.inTx(ctx, func(qtx datagateway.PublicSaleDataGatewayWithTx) error {
		conf, err := getSaleConfig(ctx, qtx)
		if err != nil {
			return err
		}
		if err := requireOperator(conf, caller); err != nil {
			return err
		}
		asset := selectAsset(conf)
		balance, err := qtx.GetBalance(ctx, conf.SaleAccount, asset)
		if err != nil {
			return errors.Wrap(err, "failed to get balance")
		}
		if balance.IsZero() {
			return errors.Wrapf(sale.ErrNothingToClaim, "no %s held by the sale account", asset)
		}
		if err := qtx.Transfer(ctx, conf.SaleAccount, conf.Operator, asset, balance); err != nil {
			return errors.Wrap(err, "failed to transfer balance")
		}
		amount = balance
		logger.InfoContext(ctx, "Withdrawn sale balance", slogx.Stringer("asset", asset), slogx.Stringer("amount", balance))
		return nil
	})
	if err != nil {
		return uint128.Zero, err
	}
	return amount, nil
}
