package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common/errs"
	"github.com/gaze-network/public-sale/modules/publicsale/usecase"
	"github.com/gofiber/fiber/v2"
)

type buyRequest struct {
	PaymentAsset  assetRequest `json:"paymentAsset"`
	PaymentAmount string       `json:"paymentAmount"`
	Units         uint64       `json:"units"`
}

type buyResult struct {
	Units      uint64 `json:"units"`
	TotalUnits uint64 `json:"totalUnits"`
}

func (h *HttpHandler) Buy(ctx *fiber.Ctx) (err error) {
	var req buyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid request body")
	}
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}
	if req.PaymentAsset.Identifier == "" {
		return errs.NewPublicError("paymentAsset is required")
	}
	payment, err := parseAmount("paymentAmount", req.PaymentAmount)
	if err != nil {
		return err
	}

	result, err := h.usecase.Buy(ctx.UserContext(), usecase.BuyRequest{
		Caller:        caller,
		PaymentAsset:  req.PaymentAsset.Asset(),
		PaymentAmount: payment,
		Units:         req.Units,
	})
	if err != nil {
		return errors.Wrap(toPublicError(err), "error during Buy")
	}
	return errors.WithStack(ctx.JSON(newResponse(buyResult{
		Units:      result.Units,
		TotalUnits: result.TotalUnits,
	})))
}
