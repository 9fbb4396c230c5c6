package purchasevalidator

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/gaze-network/public-sale/modules/publicsale/internal/validator"
	"github.com/gaze-network/public-sale/modules/publicsale/sale"
	"github.com/gaze-network/uint128"
)

// PurchaseValidator runs the buy preconditions in their fixed order.
type PurchaseValidator struct {
	validator.Validator
}

func New() *PurchaseValidator {
	v := validator.New()
	return &PurchaseValidator{
		Validator: *v,
	}
}

func (v *PurchaseValidator) PaymentAsset(conf entity.SaleConfig, paymentAsset entity.Asset) bool {
	if !v.Valid {
		return false
	}
	if paymentAsset != conf.SettlementAsset {
		return v.Fail(errors.Wrapf(sale.ErrWrongPaymentAsset, "expected %s, got %s", conf.SettlementAsset, paymentAsset))
	}
	return true
}

// SaleOpen rejects non-operator callers once the sale is closed.
func (v *PurchaseValidator) SaleOpen(conf entity.SaleConfig, now uint64, isOperator bool) bool {
	if !v.Valid {
		return false
	}
	if isOperator {
		return true
	}
	if sale.PhaseAt(conf, now) == entity.PhaseClosed {
		return v.Fail(errors.Wrapf(sale.ErrSaleClosed, "sale closed at %d", conf.ClosedTime))
	}
	return true
}

func (v *PurchaseValidator) CallerAccess(conf entity.SaleConfig, now uint64, isOperator, inTier1, inTier2 bool) bool {
	if !v.Valid {
		return false
	}
	if isOperator {
		return true
	}
	if !sale.HasAccess(conf, now, inTier1, inTier2) {
		return v.Fail(errors.Wrapf(sale.ErrSaleNotOpenForCaller, "phase %s", sale.PhaseAt(conf, now)))
	}
	return true
}

func (v *PurchaseValidator) InventoryAvailable(inventory uint128.Uint128) bool {
	if !v.Valid {
		return false
	}
	if inventory.IsZero() {
		return v.Fail(errors.WithStack(sale.ErrSoldOut))
	}
	return true
}

// Units reconciles the payment against the applicable schedule and returns the units to release.
func (v *PurchaseValidator) Units(conf entity.SaleConfig, inTier2 bool, alreadyBought uint64, payment uint128.Uint128, requestedUnits uint64) (bool, uint64) {
	if !v.Valid {
		return false, 0
	}
	schedule := sale.SelectSchedule(conf, inTier2)
	units, err := sale.Reconcile(conf, schedule, alreadyBought, payment, requestedUnits)
	if err != nil {
		return v.Fail(err), 0
	}
	return true, units
}

// WithinInventory rejects a release larger than the remaining inventory.
func (v *PurchaseValidator) WithinInventory(units uint64, inventory uint128.Uint128) bool {
	if !v.Valid {
		return false
	}
	if inventory.Cmp64(units) < 0 {
		return v.Fail(errors.Wrapf(sale.ErrSoldOut, "only %s units left, %d requested", inventory, units))
	}
	return true
}
