package inmemory

import (
	"context"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common/errs"
	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	egg = entity.Asset{Identifier: "EGG-a1b2c3", Nonce: 1}
	btc = entity.Asset{Identifier: "BTC"}
)

func TestSaleConfig(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	_, err := repo.GetSaleConfig(ctx)
	assert.True(t, errors.Is(err, errs.NotFound))

	conf := entity.SaleConfig{
		MaxPerWallet:  5,
		PriceSchedule: []uint128.Uint128{uint128.From64(10)},
		SaleAsset:     egg,
	}
	require.NoError(t, repo.CreateSaleConfig(ctx, conf))

	err = repo.CreateSaleConfig(ctx, conf)
	assert.True(t, errors.Is(err, errs.Conflict))

	stored, err := repo.GetSaleConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, conf, *stored)

	stored.PriceSchedule[0] = uint128.From64(1)
	again, err := repo.GetSaleConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(10), again.PriceSchedule[0], "returned config must not alias stored state")
}

func TestWhitelist(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	require.NoError(t, repo.AddWhitelistMember(ctx, entity.Tier1, "alice"))
	require.NoError(t, repo.AddWhitelistMember(ctx, entity.Tier1, "alice"))

	ok, err := repo.IsWhitelistMember(ctx, entity.Tier1, "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IsWhitelistMember(ctx, entity.Tier2, "alice")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.RemoveWhitelistMember(ctx, entity.Tier1, "alice"))
	require.NoError(t, repo.RemoveWhitelistMember(ctx, entity.Tier1, "alice"))
	ok, err = repo.IsWhitelistMember(ctx, entity.Tier1, "alice")
	require.NoError(t, err)
	assert.False(t, ok)

	err = repo.AddWhitelistMember(ctx, entity.Tier(3), "alice")
	assert.True(t, errors.Is(err, errs.InvalidArgument))
}

func TestPurchasers(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	require.NoError(t, repo.SetPurchasedUnits(ctx, "bob", 1))
	require.NoError(t, repo.SetPurchasedUnits(ctx, "alice", 2))
	require.NoError(t, repo.SetPurchasedUnits(ctx, "bob", 3))

	units, err := repo.GetPurchasedUnits(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), units)

	units, err = repo.GetPurchasedUnits(ctx, "carol")
	require.NoError(t, err)
	assert.Zero(t, units)

	testCases := []struct {
		name     string
		limit    int32
		offset   int32
		expected []entity.Purchaser
	}{
		{
			name:   "all",
			limit:  10,
			offset: 0,
			expected: []entity.Purchaser{
				{Identity: "bob", Units: 3},
				{Identity: "alice", Units: 2},
			},
		},
		{
			name:     "page",
			limit:    1,
			offset:   1,
			expected: []entity.Purchaser{{Identity: "alice", Units: 2}},
		},
		{
			name:     "past_end",
			limit:    5,
			offset:   5,
			expected: []entity.Purchaser{},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			purchasers, err := repo.GetPurchasers(ctx, tc.limit, tc.offset)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, purchasers)
		})
	}
}

func TestCustody(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	require.NoError(t, repo.Credit(ctx, "sale", egg, uint128.From64(10)))

	err := repo.Transfer(ctx, "sale", "alice", egg, uint128.From64(11))
	assert.True(t, errors.Is(err, errs.InvalidArgument))

	require.NoError(t, repo.Transfer(ctx, "sale", "alice", egg, uint128.From64(4)))

	balance, err := repo.GetBalance(ctx, "sale", egg)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(6), balance)

	balance, err = repo.GetBalance(ctx, "alice", egg)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(4), balance)

	balance, err = repo.GetBalance(ctx, "alice", btc)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	require.NoError(t, repo.Credit(ctx, "bob", btc, uint128.Max))
	err = repo.Credit(ctx, "bob", btc, uint128.From64(1))
	assert.True(t, errors.Is(err, errs.OverflowUint128))
}

func TestTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commit", func(t *testing.T) {
		repo := NewRepository()
		tx, err := repo.BeginPublicSaleTx(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.SetPurchasedUnits(ctx, "alice", 1))
		require.NoError(t, tx.Commit(ctx))
		require.NoError(t, tx.Rollback(ctx))

		units, err := repo.GetPurchasedUnits(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, uint64(1), units)

		_, err = tx.GetPurchasedUnits(ctx, "alice")
		assert.ErrorIs(t, err, ErrTxClosed)
	})
	t.Run("rollback", func(t *testing.T) {
		repo := NewRepository()
		tx, err := repo.BeginPublicSaleTx(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.SetPurchasedUnits(ctx, "alice", 1))
		require.NoError(t, tx.Credit(ctx, "sale", egg, uint128.From64(1)))
		require.NoError(t, tx.Rollback(ctx))

		units, err := repo.GetPurchasedUnits(ctx, "alice")
		require.NoError(t, err)
		assert.Zero(t, units)
		purchasers, err := repo.GetPurchasers(ctx, 10, 0)
		require.NoError(t, err)
		assert.Empty(t, purchasers)
		balance, err := repo.GetBalance(ctx, "sale", egg)
		require.NoError(t, err)
		assert.True(t, balance.IsZero())
	})
	t.Run("nested", func(t *testing.T) {
		repo := NewRepository()
		tx, err := repo.BeginPublicSaleTx(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)

		_, err = tx.BeginPublicSaleTx(ctx)
		assert.ErrorIs(t, err, ErrTxAlreadyExists)
	})
	t.Run("serialized", func(t *testing.T) {
		repo := NewRepository()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				tx, err := repo.BeginPublicSaleTx(ctx)
				if !assert.NoError(t, err) {
					return
				}
				defer tx.Rollback(ctx)
				units, err := tx.GetPurchasedUnits(ctx, "alice")
				if !assert.NoError(t, err) {
					return
				}
				assert.NoError(t, tx.SetPurchasedUnits(ctx, "alice", units+1))
				assert.NoError(t, tx.Commit(ctx))
			}()
		}
		wg.Wait()

		units, err := repo.GetPurchasedUnits(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, uint64(50), units)
	})
}
