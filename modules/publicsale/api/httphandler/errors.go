package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common/errs"
	"github.com/gaze-network/public-sale/modules/publicsale/sale"
)

const codeCallerRequired = "CALLER_REQUIRED"

var saleErrorCodes = []struct {
	kind errs.ErrorKind
	code string
}{
	{sale.ErrInvalidConfig, "INVALID_CONFIG"},
	{sale.ErrAlreadyInitialized, "ALREADY_INITIALIZED"},
	{sale.ErrNotInitialized, "NOT_INITIALIZED"},
	{sale.ErrUnauthorized, "UNAUTHORIZED"},
	{sale.ErrInvalidTier, "INVALID_TIER"},
	{sale.ErrWrongPaymentAsset, "WRONG_PAYMENT_ASSET"},
	{sale.ErrWrongDepositAsset, "WRONG_DEPOSIT_ASSET"},
	{sale.ErrSaleClosed, "SALE_CLOSED"},
	{sale.ErrSaleNotOpenForCaller, "SALE_NOT_OPEN_FOR_CALLER"},
	{sale.ErrSoldOut, "SOLD_OUT"},
	{sale.ErrInvalidQuantity, "INVALID_QUANTITY"},
	{sale.ErrAmountMismatch, "AMOUNT_MISMATCH"},
	{sale.ErrExceedsPayment, "EXCEEDS_PAYMENT"},
	{sale.ErrPaymentTooLarge, "PAYMENT_TOO_LARGE"},
	{sale.ErrAmountOverflow, "AMOUNT_OVERFLOW"},
	{sale.ErrNothingToClaim, "NOTHING_TO_CLAIM"},
	{errs.InvalidArgument, "INVALID_ARGUMENT"},
}

// toPublicError exposes sale errors to the client with a stable code. Other errors are returned as is.
func toPublicError(err error) error {
	if err == nil {
		return nil
	}
	for _, c := range saleErrorCodes {
		if errors.Is(err, c.kind) {
			return errs.WithPublicMessageCode(err, "", c.code)
		}
	}
	return err
}
