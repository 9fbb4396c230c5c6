package datagateway

import (
	"context"

	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/gaze-network/uint128"
)

// PublicSaleDataGateway is the persistence boundary of the sale. Every sale transaction
// started with BeginPublicSaleTx is serialized with all other sale transactions.
type PublicSaleDataGateway interface {
	BeginPublicSaleTx(ctx context.Context) (PublicSaleDataGatewayWithTx, error)
	SaleConfigDataGateway
	WhitelistDataGateway
	PurchaseDataGateway
	CustodyDataGateway
}

type PublicSaleDataGatewayWithTx interface {
	PublicSaleDataGateway
	Tx
}

type SaleConfigDataGateway interface {
	// GetSaleConfig returns errs.NotFound if the sale is not initialized.
	GetSaleConfig(ctx context.Context) (*entity.SaleConfig, error)
	// CreateSaleConfig returns errs.Conflict if a config is already stored.
	CreateSaleConfig(ctx context.Context, conf entity.SaleConfig) error
}

type WhitelistDataGateway interface {
	AddWhitelistMember(ctx context.Context, tier entity.Tier, identity string) error
	RemoveWhitelistMember(ctx context.Context, tier entity.Tier, identity string) error
	IsWhitelistMember(ctx context.Context, tier entity.Tier, identity string) (bool, error)
}

type PurchaseDataGateway interface {
	// GetPurchasedUnits returns 0 for identities without a ledger entry.
	GetPurchasedUnits(ctx context.Context, identity string) (uint64, error)
	// SetPurchasedUnits creates or updates a ledger entry. New entries are appended to the insertion order.
	SetPurchasedUnits(ctx context.Context, identity string, units uint64) error
	// GetPurchasers lists ledger entries in insertion order.
	GetPurchasers(ctx context.Context, limit int32, offset int32) ([]entity.Purchaser, error)
}

type CustodyDataGateway interface {
	GetBalance(ctx context.Context, holder string, asset entity.Asset) (uint128.Uint128, error)
	// Credit adds amount to the holder's balance.
	Credit(ctx context.Context, holder string, asset entity.Asset, amount uint128.Uint128) error
	// Transfer moves amount between holders, failing with errs.InvalidArgument on insufficient balance.
	Transfer(ctx context.Context, from string, to string, asset entity.Asset, amount uint128.Uint128) error
}
