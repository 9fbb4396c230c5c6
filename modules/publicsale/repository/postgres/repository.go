package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common/errs"
	"github.com/gaze-network/public-sale/internal/postgres"
	"github.com/gaze-network/public-sale/modules/publicsale/datagateway"
	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/gaze-network/public-sale/modules/publicsale/repository/postgres/gen"
	"github.com/gaze-network/uint128"
	"github.com/jackc/pgx/v5"
)

var _ datagateway.PublicSaleDataGateway = (*Repository)(nil)

type Repository struct {
	db      postgres.DB
	queries *gen.Queries
	tx      pgx.Tx
}

func NewRepository(db postgres.DB) *Repository {
	return &Repository{
		db:      db,
		queries: gen.New(db),
	}
}

func (r *Repository) GetSaleConfig(ctx context.Context) (*entity.SaleConfig, error) {
	model, err := r.queries.GetSaleConfig(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.WithStack(errs.NotFound)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	conf, err := mapSaleConfigModelToType(model)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse sale config model")
	}
	return &conf, nil
}

func (r *Repository) CreateSaleConfig(ctx context.Context, conf entity.SaleConfig) error {
	params, err := mapSaleConfigTypeToParams(conf)
	if err != nil {
		return errors.Wrap(err, "failed to map sale config to params")
	}
	affected, err := r.queries.CreateSaleConfig(ctx, params)
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	if affected == 0 {
		return errors.Wrap(errs.Conflict, "sale config already exists")
	}
	return nil
}

func (r *Repository) AddWhitelistMember(ctx context.Context, tier entity.Tier, identity string) error {
	err := r.queries.AddWhitelistMember(ctx, gen.AddWhitelistMemberParams{
		Tier:     int16(tier),
		Identity: identity,
	})
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) RemoveWhitelistMember(ctx context.Context, tier entity.Tier, identity string) error {
	err := r.queries.RemoveWhitelistMember(ctx, gen.RemoveWhitelistMemberParams{
		Tier:     int16(tier),
		Identity: identity,
	})
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) IsWhitelistMember(ctx context.Context, tier entity.Tier, identity string) (bool, error) {
	exists, err := r.queries.IsWhitelistMember(ctx, gen.IsWhitelistMemberParams{
		Tier:     int16(tier),
		Identity: identity,
	})
	if err != nil {
		return false, errors.Wrap(err, "error during query")
	}
	return exists, nil
}

func (r *Repository) GetPurchasedUnits(ctx context.Context, identity string) (uint64, error) {
	units, err := r.queries.GetPurchasedUnits(ctx, identity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "error during query")
	}
	return uint64(units), nil
}

func (r *Repository) SetPurchasedUnits(ctx context.Context, identity string, units uint64) error {
	err := r.queries.UpsertPurchasedUnits(ctx, gen.UpsertPurchasedUnitsParams{
		Identity: identity,
		Units:    int64(units),
	})
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) GetPurchasers(ctx context.Context, limit int32, offset int32) ([]entity.Purchaser, error) {
	rows, err := r.queries.GetPurchasers(ctx, gen.GetPurchasersParams{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	return mapPurchaserRowsToTypes(rows), nil
}

func (r *Repository) GetBalance(ctx context.Context, holder string, asset entity.Asset) (uint128.Uint128, error) {
	amount, err := r.queries.GetBalance(ctx, gen.GetBalanceParams{
		Holder:     holder,
		AssetID:    asset.Identifier,
		AssetNonce: int64(asset.Nonce),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uint128.Zero, nil
		}
		return uint128.Zero, errors.Wrap(err, "error during query")
	}
	balance, err := uint128FromNumeric(amount)
	if err != nil {
		return uint128.Zero, errors.Wrap(err, "failed to parse balance")
	}
	return balance, nil
}

func (r *Repository) Credit(ctx context.Context, holder string, asset entity.Asset, amount uint128.Uint128) error {
	if amount.IsZero() {
		return nil
	}
	// balances are bounded by the uint128 range in memory, so check before the database sums it
	balance, err := r.GetBalance(ctx, holder, asset)
	if err != nil {
		return errors.WithStack(err)
	}
	if _, overflow := balance.AddOverflow(amount); overflow {
		return errors.Wrapf(errs.OverflowUint128, "balance of %s in %s", holder, asset)
	}
	numeric, err := numericFromUint128(amount)
	if err != nil {
		return errors.Wrap(err, "failed to convert amount")
	}
	err = r.queries.AddBalance(ctx, gen.AddBalanceParams{
		Holder:     holder,
		AssetID:    asset.Identifier,
		AssetNonce: int64(asset.Nonce),
		Amount:     numeric,
	})
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) Transfer(ctx context.Context, from string, to string, asset entity.Asset, amount uint128.Uint128) error {
	if amount.IsZero() {
		return nil
	}
	numeric, err := numericFromUint128(amount)
	if err != nil {
		return errors.Wrap(err, "failed to convert amount")
	}
	affected, err := r.queries.SubtractBalance(ctx, gen.SubtractBalanceParams{
		Amount:     numeric,
		Holder:     from,
		AssetID:    asset.Identifier,
		AssetNonce: int64(asset.Nonce),
	})
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	if affected == 0 {
		return errors.Wrapf(errs.InvalidArgument, "insufficient balance of %s in %s", from, asset)
	}
	if err := r.Credit(ctx, to, asset, amount); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
