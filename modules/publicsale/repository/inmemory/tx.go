package inmemory

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/modules/publicsale/datagateway"
	"github.com/gaze-network/public-sale/pkg/logger"
)

var ErrTxAlreadyExists = errors.New("Transaction already exists. Call Commit() or Rollback() first.")

func (r *Repository) BeginPublicSaleTx(ctx context.Context) (datagateway.PublicSaleDataGatewayWithTx, error) {
	if r.tx != nil {
		return nil, errors.WithStack(ErrTxAlreadyExists)
	}
	r.store.mu.Lock()
	return &Repository{
		store: r.store,
		tx:    &transaction{state: r.store.committed.clone()},
	}, nil
}

func (r *Repository) Commit(ctx context.Context) error {
	if r.tx == nil || r.tx.closed {
		return nil
	}
	r.store.committed = r.tx.state
	r.tx.closed = true
	r.store.mu.Unlock()
	return nil
}

func (r *Repository) Rollback(ctx context.Context) error {
	if r.tx == nil || r.tx.closed {
		return nil
	}
	r.tx.closed = true
	r.store.mu.Unlock()
	logger.DebugContext(ctx, "rolled back transaction")
	return nil
}
