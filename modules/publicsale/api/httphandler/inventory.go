package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common/errs"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
)

type getInventoryResult struct {
	Inventory uint64 `json:"inventory"`
}

func (h *HttpHandler) GetInventory(ctx *fiber.Ctx) (err error) {
	inventory, err := h.usecase.RemainingInventory(ctx.UserContext())
	if err != nil {
		return errors.Wrap(toPublicError(err), "error during RemainingInventory")
	}
	return errors.WithStack(ctx.JSON(newResponse(getInventoryResult{
		Inventory: inventory,
	})))
}

type depositRequest struct {
	Asset  assetRequest `json:"asset"`
	Amount string       `json:"amount"`
}

type amountResult struct {
	Amount uint128.Uint128 `json:"amount"`
}

func (h *HttpHandler) Deposit(ctx *fiber.Ctx) (err error) {
	var req depositRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid request body")
	}
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		return err
	}

	if err := h.usecase.Deposit(ctx.UserContext(), caller, req.Asset.Asset(), amount); err != nil {
		return errors.Wrap(toPublicError(err), "error during Deposit")
	}
	return errors.WithStack(ctx.JSON(newResponse(amountResult{
		Amount: amount,
	})))
}

func (h *HttpHandler) WithdrawSettlement(ctx *fiber.Ctx) (err error) {
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}
	amount, err := h.usecase.WithdrawSettlementBalance(ctx.UserContext(), caller)
	if err != nil {
		return errors.Wrap(toPublicError(err), "error during WithdrawSettlementBalance")
	}
	return errors.WithStack(ctx.JSON(newResponse(amountResult{
		Amount: amount,
	})))
}

func (h *HttpHandler) WithdrawInventory(ctx *fiber.Ctx) (err error) {
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}
	amount, err := h.usecase.WithdrawRemainingInventory(ctx.UserContext(), caller)
	if err != nil {
		return errors.Wrap(toPublicError(err), "error during WithdrawRemainingInventory")
	}
	return errors.WithStack(ctx.JSON(newResponse(amountResult{
		Amount: amount,
	})))
}
