package sale

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common/errs"
	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/gaze-network/uint128"
)

// SelectSchedule returns the reduced schedule for tier-2 members and the standard one otherwise.
func SelectSchedule(conf entity.SaleConfig, inTier2 bool) []uint128.Uint128 {
	if inTier2 {
		return conf.ReducedPriceSchedule
	}
	return conf.PriceSchedule
}

// UnitsForPayment walks the marginal prices from the wallet's next unit and returns
// the number of units whose cumulative price equals the payment exactly.
//
// schedule[n] is the price of the (n+1)-th unit a wallet buys.
func UnitsForPayment(schedule []uint128.Uint128, alreadyBought uint64, payment uint128.Uint128) (uint64, error) {
	spend := uint128.Zero
	for n := alreadyBought; n < uint64(len(schedule)); n++ {
		var overflow bool
		spend, overflow = spend.AddOverflow(schedule[n])
		if overflow {
			return 0, errors.Wrap(errors.Mark(errs.OverflowUint128, ErrAmountOverflow), "cumulative price")
		}
		switch spend.Cmp(payment) {
		case 1:
			return 0, errors.Wrapf(ErrExceedsPayment, "cumulative price %s of unit %d exceeds payment %s", spend, n+1, payment)
		case 0:
			return n + 1 - alreadyBought, nil
		}
	}
	return 0, errors.Wrapf(ErrPaymentTooLarge, "payment %s is more than the remaining allowance of %d bought units", payment, alreadyBought)
}

// ValidateExactPrice checks that buying requestedUnits on top of alreadyBought costs exactly payment.
// The batch is priced flat at the price of the last unit it reaches.
func ValidateExactPrice(schedule []uint128.Uint128, alreadyBought, requestedUnits uint64, payment uint128.Uint128) error {
	if requestedUnits == 0 {
		return errors.Wrap(ErrInvalidQuantity, "requested units must be greater than zero")
	}
	idx := alreadyBought + requestedUnits
	if idx < alreadyBought || idx > uint64(len(schedule)) {
		return errors.Wrapf(ErrInvalidQuantity, "buying %d units on top of %d exceeds max per wallet %d", requestedUnits, alreadyBought, len(schedule))
	}

	price, overflow := schedule[idx-1].MulOverflow(uint128.From64(requestedUnits))
	if overflow {
		return errors.Wrap(errors.Mark(errs.OverflowUint128, ErrAmountOverflow), "batch price")
	}
	if !price.Equals(payment) {
		return errors.Wrapf(ErrAmountMismatch, "expected payment %s for %d units, got %s", price, requestedUnits, payment)
	}
	return nil
}

// Reconcile resolves the number of units to release for a payment according to the configured pricing strategy.
// requestedUnits is ignored by the payment strategy.
func Reconcile(conf entity.SaleConfig, schedule []uint128.Uint128, alreadyBought uint64, payment uint128.Uint128, requestedUnits uint64) (uint64, error) {
	switch conf.PricingStrategy {
	case entity.PricingStrategyExact:
		if err := ValidateExactPrice(schedule, alreadyBought, requestedUnits, payment); err != nil {
			return 0, errors.WithStack(err)
		}
		return requestedUnits, nil
	case entity.PricingStrategyPayment, "":
		units, err := UnitsForPayment(schedule, alreadyBought, payment)
		if err != nil {
			return 0, errors.WithStack(err)
		}
		return units, nil
	default:
		return 0, errors.Wrapf(ErrInvalidConfig, "unknown pricing strategy %q", conf.PricingStrategy)
	}
}
