package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1/sale")

	r.Get("/info", h.GetSaleInfo)
	r.Get("/access/:identity", h.GetAccess)
	r.Get("/whitelists/:tier/:identity", h.GetWhitelistMember)
	r.Put("/whitelists/:tier/:identity", h.AddWhitelistMember)
	r.Delete("/whitelists/:tier/:identity", h.RemoveWhitelistMember)
	r.Post("/buy", h.Buy)
	r.Get("/purchases/:identity", h.GetPurchasedAmount)
	r.Get("/purchasers", h.GetPurchasers)
	r.Get("/inventory", h.GetInventory)
	r.Post("/deposit", h.Deposit)
	r.Post("/withdraw/settlement", h.WithdrawSettlement)
	r.Post("/withdraw/inventory", h.WithdrawInventory)
	return nil
}
