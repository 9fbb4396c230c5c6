package inmemory

import (
	"context"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common/errs"
	"github.com/gaze-network/public-sale/modules/publicsale/datagateway"
	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/gaze-network/uint128"
)

var _ datagateway.PublicSaleDataGateway = (*Repository)(nil)

type store struct {
	mu        sync.Mutex
	committed *state
}

// Repository keeps the sale data in process memory. A transaction holds the store lock
// from BeginPublicSaleTx until Commit or Rollback.
type Repository struct {
	store *store
	tx    *transaction
}

type transaction struct {
	state  *state
	closed bool
}

func NewRepository() *Repository {
	return &Repository{
		store: &store{committed: newState()},
	}
}

var ErrTxClosed = errors.New("transaction is already committed or rolled back")

// view runs fn against the transaction state, or against the committed state under the store lock.
func (r *Repository) view(fn func(s *state) error) error {
	if r.tx != nil {
		if r.tx.closed {
			return errors.WithStack(ErrTxClosed)
		}
		return fn(r.tx.state)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(r.store.committed)
}

func (r *Repository) GetSaleConfig(ctx context.Context) (*entity.SaleConfig, error) {
	var result *entity.SaleConfig
	err := r.view(func(s *state) error {
		if s.config == nil {
			return errors.WithStack(errs.NotFound)
		}
		conf := *s.config
		conf.PriceSchedule = slices.Clone(s.config.PriceSchedule)
		conf.ReducedPriceSchedule = slices.Clone(s.config.ReducedPriceSchedule)
		result = &conf
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Repository) CreateSaleConfig(ctx context.Context, conf entity.SaleConfig) error {
	return r.view(func(s *state) error {
		if s.config != nil {
			return errors.Wrap(errs.Conflict, "sale config already exists")
		}
		conf.PriceSchedule = slices.Clone(conf.PriceSchedule)
		conf.ReducedPriceSchedule = slices.Clone(conf.ReducedPriceSchedule)
		s.config = &conf
		return nil
	})
}

func (r *Repository) AddWhitelistMember(ctx context.Context, tier entity.Tier, identity string) error {
	return r.view(func(s *state) error {
		members, ok := s.whitelists[tier]
		if !ok {
			return errors.Wrapf(errs.InvalidArgument, "unknown tier %d", tier)
		}
		members[identity] = struct{}{}
		return nil
	})
}

func (r *Repository) RemoveWhitelistMember(ctx context.Context, tier entity.Tier, identity string) error {
	return r.view(func(s *state) error {
		delete(s.whitelists[tier], identity)
		return nil
	})
}

func (r *Repository) IsWhitelistMember(ctx context.Context, tier entity.Tier, identity string) (bool, error) {
	var found bool
	err := r.view(func(s *state) error {
		_, found = s.whitelists[tier][identity]
		return nil
	})
	return found, err
}

func (r *Repository) GetPurchasedUnits(ctx context.Context, identity string) (uint64, error) {
	var units uint64
	err := r.view(func(s *state) error {
		units = s.purchases[identity]
		return nil
	})
	return units, err
}

func (r *Repository) SetPurchasedUnits(ctx context.Context, identity string, units uint64) error {
	return r.view(func(s *state) error {
		if _, ok := s.purchases[identity]; !ok {
			s.purchaseOrder = append(s.purchaseOrder, identity)
		}
		s.purchases[identity] = units
		return nil
	})
}

func (r *Repository) GetPurchasers(ctx context.Context, limit int32, offset int32) ([]entity.Purchaser, error) {
	if limit < 0 || offset < 0 {
		return nil, errors.Wrap(errs.InvalidArgument, "limit and offset must not be negative")
	}
	var result []entity.Purchaser
	err := r.view(func(s *state) error {
		start := min(int(offset), len(s.purchaseOrder))
		end := min(start+int(limit), len(s.purchaseOrder))
		result = make([]entity.Purchaser, 0, end-start)
		for _, identity := range s.purchaseOrder[start:end] {
			result = append(result, entity.Purchaser{
				Identity: identity,
				Units:    s.purchases[identity],
			})
		}
		return nil
	})
	return result, err
}

func (r *Repository) GetBalance(ctx context.Context, holder string, asset entity.Asset) (uint128.Uint128, error) {
	var balance uint128.Uint128
	err := r.view(func(s *state) error {
		balance = s.balances[balanceKey{holder: holder, asset: asset}]
		return nil
	})
	return balance, err
}

func (r *Repository) Credit(ctx context.Context, holder string, asset entity.Asset, amount uint128.Uint128) error {
	return r.view(func(s *state) error {
		return credit(s, holder, asset, amount)
	})
}

func (r *Repository) Transfer(ctx context.Context, from string, to string, asset entity.Asset, amount uint128.Uint128) error {
	return r.view(func(s *state) error {
		if amount.IsZero() {
			return nil
		}
		fromKey := balanceKey{holder: from, asset: asset}
		balance := s.balances[fromKey]
		if balance.Cmp(amount) < 0 {
			return errors.Wrapf(errs.InvalidArgument, "insufficient balance of %s in %s", from, asset)
		}
		// credit first so an overflow leaves the sender untouched
		if err := credit(s, to, asset, amount); err != nil {
			return err
		}
		s.balances[fromKey] = s.balances[fromKey].Sub(amount)
		return nil
	})
}

func credit(s *state, holder string, asset entity.Asset, amount uint128.Uint128) error {
	if amount.IsZero() {
		return nil
	}
	key := balanceKey{holder: holder, asset: asset}
	sum, overflow := s.balances[key].AddOverflow(amount)
	if overflow {
		return errors.Wrapf(errs.OverflowUint128, "balance of %s in %s", holder, asset)
	}
	s.balances[key] = sum
	return nil
}
