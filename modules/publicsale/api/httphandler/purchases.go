package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type getPurchasedAmountRequest struct {
	Identity string `params:"identity"`
}

type purchaser struct {
	Identity string `json:"identity"`
	Units    uint64 `json:"units"`
}

func (h *HttpHandler) GetPurchasedAmount(ctx *fiber.Ctx) (err error) {
	var req getPurchasedAmountRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := h.validateIdentity("identity", req.Identity); err != nil {
		return errors.WithStack(err)
	}

	units, err := h.usecase.PurchasedAmount(ctx.UserContext(), req.Identity)
	if err != nil {
		return errors.Wrap(toPublicError(err), "error during PurchasedAmount")
	}
	return errors.WithStack(ctx.JSON(newResponse(purchaser{
		Identity: req.Identity,
		Units:    units,
	})))
}

type getPurchasersRequest struct {
	paginationRequest
}

type getPurchasersResult struct {
	List []purchaser `json:"list"`
}

func (h *HttpHandler) GetPurchasers(ctx *fiber.Ctx) (err error) {
	var req getPurchasersRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}
	req.ParseDefault()

	purchasers, err := h.usecase.ListPurchasers(ctx.UserContext(), req.Limit, req.Offset)
	if err != nil {
		return errors.Wrap(toPublicError(err), "error during ListPurchasers")
	}
	return errors.WithStack(ctx.JSON(newResponse(getPurchasersResult{
		List: lo.Map(purchasers, func(p entity.Purchaser, _ int) purchaser {
			return purchaser{
				Identity: p.Identity,
				Units:    p.Units,
			}
		}),
	})))
}
