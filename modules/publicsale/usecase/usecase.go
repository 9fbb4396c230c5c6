package usecase

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common/errs"
	"github.com/gaze-network/public-sale/modules/publicsale/datagateway"
	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/gaze-network/public-sale/modules/publicsale/sale"
	"github.com/gaze-network/public-sale/pkg/logger"
	"github.com/gaze-network/public-sale/pkg/logger/slogx"
)

// Clock returns the current time in unix seconds. It is read on every call.
type Clock interface {
	Now() uint64
}

type SystemClock struct{}

func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

type Usecase struct {
	saleDg datagateway.PublicSaleDataGateway
	clock  Clock
}

func New(saleDg datagateway.PublicSaleDataGateway, clock Clock) *Usecase {
	return &Usecase{
		saleDg: saleDg,
		clock:  clock,
	}
}

// inTx runs fn in a sale transaction and commits when fn succeeds.
func (u *Usecase) inTx(ctx context.Context, fn func(qtx datagateway.PublicSaleDataGatewayWithTx) error) (err error) {
	qtx, err := u.saleDg.BeginPublicSaleTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if rollbackErr := qtx.Rollback(ctx); rollbackErr != nil {
			logger.ErrorContext(ctx, "Failed to rollback transaction", slogx.Error(rollbackErr))
		}
	}()

	if err := fn(qtx); err != nil {
		return err
	}
	if err := qtx.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

func getSaleConfig(ctx context.Context, dg datagateway.SaleConfigDataGateway) (*entity.SaleConfig, error) {
	conf, err := dg.GetSaleConfig(ctx)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return nil, errors.WithStack(sale.ErrNotInitialized)
		}
		return nil, errors.Wrap(err, "failed to get sale config")
	}
	return conf, nil
}

func requireOperator(conf *entity.SaleConfig, caller string) error {
	if caller != conf.Operator {
		return errors.Wrapf(sale.ErrUnauthorized, "caller %q is not the operator", caller)
	}
	return nil
}
