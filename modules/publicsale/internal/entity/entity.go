package entity

import (
	"fmt"
	"strconv"

	"github.com/gaze-network/uint128"
)

// Asset identifies a fungible or semi-fungible token. Nonce 0 is the fungible form.
type Asset struct {
	Identifier string
	Nonce      uint64
}

func (a Asset) String() string {
	if a.Nonce == 0 {
		return a.Identifier
	}
	return fmt.Sprintf("%s-%s", a.Identifier, strconv.FormatUint(a.Nonce, 16))
}

func (a Asset) IsZero() bool {
	return a.Identifier == ""
}

type PricingStrategy string

const (
	// PricingStrategyPayment infers the unit count from the payment amount.
	PricingStrategyPayment PricingStrategy = "payment"

	// PricingStrategyExact requires an explicit unit count whose price must match the payment.
	PricingStrategyExact PricingStrategy = "exact"
)

func (s PricingStrategy) IsValid() bool {
	return s == PricingStrategyPayment || s == PricingStrategyExact
}

type Tier uint8

const (
	Tier1 Tier = 1
	Tier2 Tier = 2
)

func (t Tier) IsValid() bool {
	return t == Tier1 || t == Tier2
}

func (t Tier) String() string {
	return "tier" + strconv.Itoa(int(t))
}

type Phase string

const (
	PhasePreSale    Phase = "pre_sale"
	PhaseTier1Open  Phase = "tier1_open"
	PhaseTier2Open  Phase = "tier2_open"
	PhasePublicOpen Phase = "public_open"
	PhaseClosed     Phase = "closed"
)

// SaleConfig is the immutable sale configuration persisted at initialization.
type SaleConfig struct {
	MaxPerWallet         uint64
	PriceSchedule        []uint128.Uint128
	ReducedPriceSchedule []uint128.Uint128

	FirstWhitelistTime  uint64
	SecondWhitelistTime uint64
	PublicSaleTime      uint64
	ClosedTime          uint64

	SaleAsset       Asset
	SettlementAsset Asset
	PricingStrategy PricingStrategy

	Operator    string
	SaleAccount string
}

// Purchaser is a purchase ledger entry.
type Purchaser struct {
	Identity string
	Units    uint64
}
