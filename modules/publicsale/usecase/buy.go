package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common/errs"
	"github.com/gaze-network/public-sale/modules/publicsale/datagateway"
	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	purchasevalidator "github.com/gaze-network/public-sale/modules/publicsale/internal/validator/purchase"
	"github.com/gaze-network/public-sale/pkg/logger"
	"github.com/gaze-network/public-sale/pkg/logger/slogx"
	"github.com/gaze-network/uint128"
)

type BuyRequest struct {
	Caller        string
	PaymentAsset  entity.Asset
	PaymentAmount uint128.Uint128

	// Units is the requested quantity. It is only read by the exact pricing strategy.
	Units uint64
}

type BuyResult struct {
	// Units released by this purchase.
	Units uint64
	// TotalUnits bought by the caller so far, including this purchase.
	TotalUnits uint64
}

// Buy admits or rejects a purchase. On success the payment is credited to the sale account,
// the units are released to the caller and the ledger is updated, all in one transaction.
func (u *Usecase) Buy(ctx context.Context, req BuyRequest) (BuyResult, error) {
	if req.Caller == "" {
		return BuyResult{}, errors.Wrap(errs.InvalidArgument, "caller is required")
	}

	var result BuyResult
	err := u.inTx(ctx, func(qtx datagateway.PublicSaleDataGatewayWithTx) error {
		conf, err := getSaleConfig(ctx, qtx)
		if err != nil {
			return err
		}
		now := u.clock.Now()
		isOperator := req.Caller == conf.Operator

		inTier1, inTier2, err := memberships(ctx, qtx, req.Caller)
		if err != nil {
			return err
		}
		inventory, err := qtx.GetBalance(ctx, conf.SaleAccount, conf.SaleAsset)
		if err != nil {
			return errors.Wrap(err, "failed to get inventory")
		}
		alreadyBought, err := qtx.GetPurchasedUnits(ctx, req.Caller)
		if err != nil {
			return errors.Wrap(err, "failed to get purchased units")
		}

		validator := purchasevalidator.New()
		validator.PaymentAsset(*conf, req.PaymentAsset)
		validator.SaleOpen(*conf, now, isOperator)
		validator.CallerAccess(*conf, now, isOperator, inTier1, inTier2)
		validator.InventoryAvailable(inventory)
		_, units := validator.Units(*conf, inTier2, alreadyBought, req.PaymentAmount, req.Units)
		validator.WithinInventory(units, inventory)
		if !validator.Valid {
			logger.DebugContext(ctx, "Purchase rejected",
				slogx.String("caller", req.Caller),
				slogx.Stringer("payment", req.PaymentAmount),
				slogx.String("reason", validator.Reason),
			)
			return validator.Err
		}

		if err := qtx.Credit(ctx, conf.SaleAccount, conf.SettlementAsset, req.PaymentAmount); err != nil {
			return errors.Wrap(err, "failed to credit payment")
		}
		if err := qtx.Transfer(ctx, conf.SaleAccount, req.Caller, conf.SaleAsset, uint128.From64(units)); err != nil {
			return errors.Wrap(err, "failed to release units")
		}
		total := alreadyBought + units
		if err := qtx.SetPurchasedUnits(ctx, req.Caller, total); err != nil {
			return errors.Wrap(err, "failed to update ledger")
		}

		result = BuyResult{
			Units:      units,
			TotalUnits: total,
		}
		return nil
	})
	if err != nil {
		return BuyResult{}, err
	}

	logger.InfoContext(ctx, "Purchase accepted",
		slogx.String("caller", req.Caller),
		slogx.Stringer("payment", req.PaymentAmount),
		slogx.Uint64("units", result.Units),
		slogx.Uint64("total_units", result.TotalUnits),
	)
	return result, nil
}
