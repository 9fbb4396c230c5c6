package decimals

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common/errs"
)

var (
	errOverflow      = errors.Wrap(errs.OverflowUint128, "amount does not fit unsigned 128 bits")
	errInvalidAmount = errors.Wrap(errs.InvalidArgument, "invalid amount")
)
