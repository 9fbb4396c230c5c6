package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/modules/publicsale/internal/entity"
	"github.com/gaze-network/public-sale/pkg/decimals"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type priceResponse struct {
	Amount  uint128.Uint128 `json:"amount"`
	Display decimal.Decimal `json:"display"`
}

type getSaleInfoResult struct {
	Phase                entity.Phase    `json:"phase"`
	Now                  uint64          `json:"now"`
	MaxPerWallet         uint64          `json:"maxPerWallet"`
	PriceSchedule        []priceResponse `json:"priceSchedule"`
	ReducedPriceSchedule []priceResponse `json:"reducedPriceSchedule"`
	FirstWhitelistTime   uint64          `json:"firstWhitelistTime"`
	SecondWhitelistTime  uint64          `json:"secondWhitelistTime"`
	PublicSaleTime       uint64          `json:"publicSaleTime"`
	ClosedTime           uint64          `json:"closedTime"`
	SaleAsset            assetResponse   `json:"saleAsset"`
	SettlementAsset      assetResponse   `json:"settlementAsset"`
	SettlementDecimals   uint16          `json:"settlementDecimals"`
	PricingStrategy      string          `json:"pricingStrategy"`
	Operator             string          `json:"operator"`
	SaleAccount          string          `json:"saleAccount"`
	Inventory            uint128.Uint128 `json:"inventory"`
	SettlementBalance    uint128.Uint128 `json:"settlementBalance"`
}

func (h *HttpHandler) GetSaleInfo(ctx *fiber.Ctx) (err error) {
	info, err := h.usecase.GetSaleInfo(ctx.UserContext())
	if err != nil {
		return errors.Wrap(toPublicError(err), "error during GetSaleInfo")
	}

	toPrices := func(schedule []uint128.Uint128) []priceResponse {
		return lo.Map(schedule, func(price uint128.Uint128, _ int) priceResponse {
			return priceResponse{
				Amount:  price,
				Display: decimals.ToDecimal(price, h.settlementDecimals),
			}
		})
	}

	conf := info.Config
	return errors.WithStack(ctx.JSON(newResponse(getSaleInfoResult{
		Phase:                info.Phase,
		Now:                  info.Now,
		MaxPerWallet:         conf.MaxPerWallet,
		PriceSchedule:        toPrices(conf.PriceSchedule),
		ReducedPriceSchedule: toPrices(conf.ReducedPriceSchedule),
		FirstWhitelistTime:   conf.FirstWhitelistTime,
		SecondWhitelistTime:  conf.SecondWhitelistTime,
		PublicSaleTime:       conf.PublicSaleTime,
		ClosedTime:           conf.ClosedTime,
		SaleAsset:            newAssetResponse(conf.SaleAsset),
		SettlementAsset:      newAssetResponse(conf.SettlementAsset),
		SettlementDecimals:   h.settlementDecimals,
		PricingStrategy:      string(conf.PricingStrategy),
		Operator:             conf.Operator,
		SaleAccount:          conf.SaleAccount,
		Inventory:            info.Inventory,
		SettlementBalance:    info.SettlementBalance,
	})))
}
