package usecase

import (
	"context"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common/errs"
	"github.com/gaze-network/public-sale/modules/publicsale/datagateway"
	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/gaze-network/public-sale/modules/publicsale/sale"
	"github.com/gaze-network/uint128"
)

type SaleInfo struct {
	Config            entity.SaleConfig
	Phase             entity.Phase
	Now               uint64
	Inventory         uint128.Uint128
	SettlementBalance uint128.Uint128
}

func (u *Usecase) GetSaleInfo(ctx context.Context) (*SaleInfo, error) {
	conf, err := getSaleConfig(ctx, u.saleDg)
	if err != nil {
		return nil, err
	}
	inventory, err := u.saleDg.GetBalance(ctx, conf.SaleAccount, conf.SaleAsset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get inventory")
	}
	settlement, err := u.saleDg.GetBalance(ctx, conf.SaleAccount, conf.SettlementAsset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get settlement balance")
	}
	now := u.clock.Now()
	return &SaleInfo{
		Config:            *conf,
		Phase:             sale.PhaseAt(*conf, now),
		Now:               now,
		Inventory:         inventory,
		SettlementBalance: settlement,
	}, nil
}

// RemainingInventory returns the sale account's balance of the sale asset.
func (u *Usecase) RemainingInventory(ctx context.Context) (uint64, error) {
	conf, err := getSaleConfig(ctx, u.saleDg)
	if err != nil {
		return 0, err
	}
	inventory, err := u.saleDg.GetBalance(ctx, conf.SaleAccount, conf.SaleAsset)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get inventory")
	}
	if inventory.Hi != 0 {
		return 0, errors.Wrapf(errs.OverflowUint64, "inventory %s", inventory)
	}
	return inventory.Lo, nil
}

func (u *Usecase) PurchasedAmount(ctx context.Context, identity string) (uint64, error) {
	units, err := u.saleDg.GetPurchasedUnits(ctx, identity)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get purchased units")
	}
	return units, nil
}

// ListPurchasers pages through the ledger in insertion order.
func (u *Usecase) ListPurchasers(ctx context.Context, limit int32, offset int32) ([]entity.Purchaser, error) {
	if limit <= 0 || offset < 0 {
		return nil, errors.Wrap(errs.InvalidArgument, "limit must be positive and offset must not be negative")
	}
	purchasers, err := u.saleDg.GetPurchasers(ctx, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list purchasers")
	}
	return purchasers, nil
}

// SnapshotPurchasers pages through the ledger inside one sale transaction, so no purchase
// lands between two pages. fn receives each non-empty page with the offset of its first entry.
func (u *Usecase) SnapshotPurchasers(ctx context.Context, pageSize int32, fn func(offset int32, page []entity.Purchaser) error) error {
	if pageSize <= 0 {
		return errors.Wrap(errs.InvalidArgument, "page size must be positive")
	}
	return u.inTx(ctx, func(qtx datagateway.PublicSaleDataGatewayWithTx) error {
		for offset := int32(0); ; offset += pageSize {
			page, err := qtx.GetPurchasers(ctx, pageSize, offset)
			if err != nil {
				return errors.Wrapf(err, "failed to list purchasers at offset %d", offset)
			}
			if len(page) > 0 {
				if err := fn(offset, page); err != nil {
					return errors.WithStack(err)
				}
			}
			if int32(len(page)) < pageSize {
				return nil
			}
			if offset > math.MaxInt32-pageSize {
				return errors.Wrap(errs.Unsupported, "ledger exceeds the int32 offset range")
			}
		}
	})
}

func (u *Usecase) BalanceOf(ctx context.Context, holder string, asset entity.Asset) (uint128.Uint128, error) {
	balance, err := u.saleDg.GetBalance(ctx, holder, asset)
	if err != nil {
		return uint128.Zero, errors.Wrap(err, "failed to get balance")
	}
	return balance, nil
}
