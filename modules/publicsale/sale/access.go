package sale

import "github.com/gaze-network/public-sale/modules/publicsale/internal/entity"

// PhaseAt returns the sale phase at the given time.
func PhaseAt(conf entity.SaleConfig, now uint64) entity.Phase {
	switch {
	case now >= conf.ClosedTime:
		return entity.PhaseClosed
	case now >= conf.PublicSaleTime:
		return entity.PhasePublicOpen
	case now >= conf.SecondWhitelistTime:
		return entity.PhaseTier2Open
	case now >= conf.FirstWhitelistTime:
		return entity.PhaseTier1Open
	default:
		return entity.PhasePreSale
	}
}

// HasAccess reports whether an identity with the given memberships may buy at the given time.
// It is false once the sale is closed.
func HasAccess(conf entity.SaleConfig, now uint64, inTier1, inTier2 bool) bool {
	switch {
	case now >= conf.ClosedTime:
		return false
	case now >= conf.PublicSaleTime:
		return true
	case now >= conf.SecondWhitelistTime && inTier2:
		return true
	case now >= conf.FirstWhitelistTime && inTier1:
		return true
	default:
		return false
	}
}
