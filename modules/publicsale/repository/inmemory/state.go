package inmemory

import (
	"slices"

	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/gaze-network/uint128"
)

type balanceKey struct {
	holder string
	asset  entity.Asset
}

// state is a complete copy of the sale data. Transactions work on a clone and swap it in on commit.
type state struct {
	config        *entity.SaleConfig
	whitelists    map[entity.Tier]map[string]struct{}
	purchases     map[string]uint64
	purchaseOrder []string
	balances      map[balanceKey]uint128.Uint128
}

func newState() *state {
	return &state{
		whitelists: map[entity.Tier]map[string]struct{}{
			entity.Tier1: {},
			entity.Tier2: {},
		},
		purchases: make(map[string]uint64),
		balances:  make(map[balanceKey]uint128.Uint128),
	}
}

func (s *state) clone() *state {
	cloned := &state{
		whitelists:    make(map[entity.Tier]map[string]struct{}, len(s.whitelists)),
		purchases:     make(map[string]uint64, len(s.purchases)),
		purchaseOrder: slices.Clone(s.purchaseOrder),
		balances:      make(map[balanceKey]uint128.Uint128, len(s.balances)),
	}
	if s.config != nil {
		conf := *s.config
		cloned.config = &conf
	}
	for tier, members := range s.whitelists {
		copied := make(map[string]struct{}, len(members))
		for identity := range members {
			copied[identity] = struct{}{}
		}
		cloned.whitelists[tier] = copied
	}
	for identity, units := range s.purchases {
		cloned.purchases[identity] = units
	}
	for key, amount := range s.balances {
		cloned.balances[key] = amount
	}
	return cloned
}
