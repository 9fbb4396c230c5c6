package sale

import "github.com/gaze-network/public-sale/common/errs"

const (
	ErrInvalidConfig        = errs.ErrorKind("invalid sale config")
	ErrAlreadyInitialized   = errs.ErrorKind("sale is already initialized")
	ErrNotInitialized       = errs.ErrorKind("sale is not initialized")
	ErrInvalidTier          = errs.ErrorKind("invalid whitelist tier")
	ErrWrongPaymentAsset    = errs.ErrorKind("wrong payment asset")
	ErrWrongDepositAsset    = errs.ErrorKind("wrong deposit asset")
	ErrSaleClosed           = errs.ErrorKind("sale is closed")
	ErrSaleNotOpenForCaller = errs.ErrorKind("sale is not open for caller")
	ErrSoldOut              = errs.ErrorKind("sold out")
	ErrInvalidQuantity      = errs.ErrorKind("invalid quantity")
	ErrAmountMismatch       = errs.ErrorKind("payment does not match price")
	ErrExceedsPayment       = errs.ErrorKind("payment is between prices")
	ErrPaymentTooLarge      = errs.ErrorKind("payment is too much")
	ErrAmountOverflow       = errs.ErrorKind("amount overflow")
	ErrNothingToClaim       = errs.ErrorKind("nothing to claim")

	// ErrUnauthorized is the common unauthorized kind, so transports can map it without knowing the sale domain.
	ErrUnauthorized = errs.Unauthorized
)
