package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/modules/publicsale/datagateway"
	"github.com/gaze-network/public-sale/pkg/logger"
	"github.com/jackc/pgx/v5"
)

// saleLockKey is the advisory lock serializing sale transactions across processes.
const saleLockKey int64 = 0x7075626c696373

var ErrTxAlreadyExists = errors.New("Transaction already exists. Call Commit() or Rollback() first.")

func (r *Repository) begin(ctx context.Context) (*Repository, error) {
	if r.tx != nil {
		return nil, errors.WithStack(ErrTxAlreadyExists)
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	queries := r.queries.WithTx(tx)
	if err := queries.AcquireSaleLock(ctx, saleLockKey); err != nil {
		_ = tx.Rollback(ctx)
		return nil, errors.Wrap(err, "failed to acquire sale lock")
	}
	return &Repository{
		db:      r.db,
		queries: queries,
		tx:      tx,
	}, nil
}

func (r *Repository) BeginPublicSaleTx(ctx context.Context) (datagateway.PublicSaleDataGatewayWithTx, error) {
	repo, err := r.begin(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return repo, nil
}

func (r *Repository) Commit(ctx context.Context) error {
	if r.tx == nil {
		return nil
	}
	err := r.tx.Commit(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	r.tx = nil
	return nil
}

func (r *Repository) Rollback(ctx context.Context) error {
	if r.tx == nil {
		return nil
	}
	err := r.tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return errors.Wrap(err, "failed to rollback transaction")
	}
	if err == nil {
		logger.DebugContext(ctx, "rolled back transaction")
	}
	r.tx = nil
	return nil
}
