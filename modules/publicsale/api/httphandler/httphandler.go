package httphandler

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common"
	"github.com/gaze-network/public-sale/common/errs"
	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/gaze-network/public-sale/modules/publicsale/usecase"
	"github.com/gaze-network/public-sale/pkg/decimals"
	"github.com/gaze-network/public-sale/pkg/middleware/requestcontext"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
)

type HttpHandler struct {
	usecase            *usecase.Usecase
	network            common.Network
	settlementDecimals uint16
}

func New(network common.Network, settlementDecimals uint16, usecase *usecase.Usecase) *HttpHandler {
	return &HttpHandler{
		usecase:            usecase,
		network:            network,
		settlementDecimals: settlementDecimals,
	}
}

func newResponse[T any](result T) common.HttpResponse[T] {
	return common.HttpResponse[T]{Result: &result}
}

type assetRequest struct {
	Identifier string `json:"identifier"`
	Nonce      uint64 `json:"nonce"`
}

func (a assetRequest) Asset() entity.Asset {
	return entity.Asset{Identifier: a.Identifier, Nonce: a.Nonce}
}

type assetResponse struct {
	Identifier string `json:"identifier"`
	Nonce      uint64 `json:"nonce"`
	Name       string `json:"name"`
}

func newAssetResponse(asset entity.Asset) assetResponse {
	return assetResponse{
		Identifier: asset.Identifier,
		Nonce:      asset.Nonce,
		Name:       asset.String(),
	}
}

type paginationRequest struct {
	Limit  int32 `query:"limit"`
	Offset int32 `query:"offset"`
}

const (
	defaultLimit = 100
	maxLimit     = 1000
)

func (r paginationRequest) Validate() error {
	var errList []error
	if r.Limit < 0 {
		errList = append(errList, errors.New("'limit' must be non-negative"))
	}
	if r.Limit > maxLimit {
		errList = append(errList, errors.Errorf("'limit' cannot exceed %d", maxLimit))
	}
	if r.Offset < 0 {
		errList = append(errList, errors.New("'offset' must be non-negative"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

func (r *paginationRequest) ParseDefault() {
	if r.Limit == 0 {
		r.Limit = defaultLimit
	}
}

// validateIdentity checks that identity is an address of the configured network.
func (h *HttpHandler) validateIdentity(field string, identity string) error {
	if identity == "" {
		return errs.NewPublicError(field + " is required")
	}
	if _, err := btcutil.DecodeAddress(identity, h.network.ChainParams()); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), field+" is not a valid address")
	}
	return nil
}

func parseAmount(field string, value string) (uint128.Uint128, error) {
	if value == "" {
		return uint128.Zero, errs.NewPublicError(field + " is required")
	}
	amount, err := decimals.Parse(value, 0)
	if err != nil {
		return uint128.Zero, errs.WithPublicMessage(errors.WithStack(err), field+" is not a valid amount")
	}
	return amount, nil
}

// requireCaller returns the caller address whose signature the request context middleware verified.
func requireCaller(ctx *fiber.Ctx) (string, error) {
	caller := requestcontext.GetCaller(ctx.UserContext())
	if caller == "" {
		return "", errs.NewPublicErrorWithCode("caller is required", codeCallerRequired)
	}
	return caller, nil
}
