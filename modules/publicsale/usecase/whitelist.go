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

func validateMember(tier entity.Tier, identity string) error {
	if !tier.IsValid() {
		return errors.Wrapf(sale.ErrInvalidTier, "tier %d", tier)
	}
	if identity == "" {
		return errors.Wrap(errs.InvalidArgument, "identity is required")
	}
	return nil
}

// AddToTier is idempotent.
func (u *Usecase) AddToTier(ctx context.Context, caller string, tier entity.Tier, identity string) error {
	if err := validateMember(tier, identity); err != nil {
		return err
	}
	return u.inTx(ctx, func(qtx datagateway.PublicSaleDataGatewayWithTx) error {
		conf, err := getSaleConfig(ctx, qtx)
		if err != nil {
			return err
		}
		if err := requireOperator(conf, caller); err != nil {
			return err
		}
		if err := qtx.AddWhitelistMember(ctx, tier, identity); err != nil {
			return errors.Wrap(err, "failed to add whitelist member")
		}
		logger.DebugContext(ctx, "Added whitelist member", slogx.Stringer("tier", tier), slogx.String("identity", identity))
		return nil
	})
}

// RemoveFromTier is idempotent.
func (u *Usecase) RemoveFromTier(ctx context.Context, caller string, tier entity.Tier, identity string) error {
	if err := validateMember(tier, identity); err != nil {
		return err
	}
	return u.inTx(ctx, func(qtx datagateway.PublicSaleDataGatewayWithTx) error {
		conf, err := getSaleConfig(ctx, qtx)
		if err != nil {
			return err
		}
		if err := requireOperator(conf, caller); err != nil {
			return err
		}
		if err := qtx.RemoveWhitelistMember(ctx, tier, identity); err != nil {
			return errors.Wrap(err, "failed to remove whitelist member")
		}
		logger.DebugContext(ctx, "Removed whitelist member", slogx.Stringer("tier", tier), slogx.String("identity", identity))
		return nil
	})
}

func (u *Usecase) IsMember(ctx context.Context, tier entity.Tier, identity string) (bool, error) {
	if !tier.IsValid() {
		return false, errors.Wrapf(sale.ErrInvalidTier, "tier %d", tier)
	}
	ok, err := u.saleDg.IsWhitelistMember(ctx, tier, identity)
	if err != nil {
		return false, errors.Wrap(err, "failed to check whitelist membership")
	}
	return ok, nil
}

// HasAccess reports whether identity may buy at the current time. It is false once the sale is closed.
func (u *Usecase) HasAccess(ctx context.Context, identity string) (bool, error) {
	conf, err := getSaleConfig(ctx, u.saleDg)
	if err != nil {
		return false, err
	}
	inTier1, inTier2, err := memberships(ctx, u.saleDg, identity)
	if err != nil {
		return false, err
	}
	return sale.HasAccess(*conf, u.clock.Now(), inTier1, inTier2), nil
}

func memberships(ctx context.Context, dg datagateway.WhitelistDataGateway, identity string) (inTier1 bool, inTier2 bool, err error) {
	inTier1, err = dg.IsWhitelistMember(ctx, entity.Tier1, identity)
	if err != nil {
		return false, false, errors.Wrap(err, "failed to check tier 1 membership")
	}
	inTier2, err = dg.IsWhitelistMember(ctx, entity.Tier2, identity)
	if err != nil {
		return false, false, errors.Wrap(err, "failed to check tier 2 membership")
	}
	return inTier1, inTier2, nil
}
