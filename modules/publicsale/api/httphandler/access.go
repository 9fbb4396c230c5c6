package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common/errs"
	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/gofiber/fiber/v2"
)

type getAccessRequest struct {
	Identity string `params:"identity"`
}

type getAccessResult struct {
	Identity  string `json:"identity"`
	HasAccess bool   `json:"hasAccess"`
}

func (h *HttpHandler) GetAccess(ctx *fiber.Ctx) (err error) {
	var req getAccessRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := h.validateIdentity("identity", req.Identity); err != nil {
		return errors.WithStack(err)
	}

	ok, err := h.usecase.HasAccess(ctx.UserContext(), req.Identity)
	if err != nil {
		return errors.Wrap(toPublicError(err), "error during HasAccess")
	}
	return errors.WithStack(ctx.JSON(newResponse(getAccessResult{
		Identity:  req.Identity,
		HasAccess: ok,
	})))
}

type whitelistMemberRequest struct {
	Tier     uint8  `params:"tier"`
	Identity string `params:"identity"`
}

type whitelistMemberResult struct {
	Tier     uint8  `json:"tier"`
	Identity string `json:"identity"`
	Member   bool   `json:"member"`
}

func (h *HttpHandler) parseWhitelistMemberRequest(ctx *fiber.Ctx) (whitelistMemberRequest, error) {
	var req whitelistMemberRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return req, errs.WithPublicMessage(errors.WithStack(err), "invalid path parameters")
	}
	if err := h.validateIdentity("identity", req.Identity); err != nil {
		return req, errors.WithStack(err)
	}
	return req, nil
}

func (h *HttpHandler) GetWhitelistMember(ctx *fiber.Ctx) (err error) {
	req, err := h.parseWhitelistMemberRequest(ctx)
	if err != nil {
		return err
	}
	member, err := h.usecase.IsMember(ctx.UserContext(), entity.Tier(req.Tier), req.Identity)
	if err != nil {
		return errors.Wrap(toPublicError(err), "error during IsMember")
	}
	return errors.WithStack(ctx.JSON(newResponse(whitelistMemberResult{
		Tier:     req.Tier,
		Identity: req.Identity,
		Member:   member,
	})))
}

func (h *HttpHandler) AddWhitelistMember(ctx *fiber.Ctx) (err error) {
	return h.updateWhitelistMember(ctx, true)
}

func (h *HttpHandler) RemoveWhitelistMember(ctx *fiber.Ctx) (err error) {
	return h.updateWhitelistMember(ctx, false)
}

func (h *HttpHandler) updateWhitelistMember(ctx *fiber.Ctx, add bool) error {
	req, err := h.parseWhitelistMemberRequest(ctx)
	if err != nil {
		return err
	}
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}

	if add {
		err = h.usecase.AddToTier(ctx.UserContext(), caller, entity.Tier(req.Tier), req.Identity)
	} else {
		err = h.usecase.RemoveFromTier(ctx.UserContext(), caller, entity.Tier(req.Tier), req.Identity)
	}
	if err != nil {
		return errors.Wrap(toPublicError(err), "error during whitelist update")
	}
	return errors.WithStack(ctx.JSON(newResponse(whitelistMemberResult{
		Tier:     req.Tier,
		Identity: req.Identity,
		Member:   add,
	})))
}
