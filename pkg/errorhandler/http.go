package errorhandler

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common"
	"github.com/gaze-network/public-sale/common/errs"
	"github.com/gaze-network/public-sale/pkg/logger"
	"github.com/gaze-network/public-sale/pkg/logger/slogx"
	"github.com/gofiber/fiber/v2"
)

type errorResponse struct {
	common.HttpResponse[any]
	Code string `json:"code,omitempty"`
}

func NewHTTPErrorHandler() func(ctx *fiber.Ctx, err error) error {
	return func(ctx *fiber.Ctx, err error) error {
		if e := new(errs.PublicError); errors.As(err, &e) {
			message := e.Message()
			return errors.WithStack(ctx.Status(e.HTTPStatus()).JSON(errorResponse{
				HttpResponse: common.HttpResponse[any]{Error: &message},
				Code:         e.Code(),
			}))
		}
		if e := new(fiber.Error); errors.As(err, &e) {
			message := e.Error()
			return errors.WithStack(ctx.Status(e.Code).JSON(errorResponse{
				HttpResponse: common.HttpResponse[any]{Error: &message},
			}))
		}

		logger.ErrorContext(ctx.UserContext(), "Something went wrong, unhandled api error",
			slogx.String("event", "api_unhandled_error"),
			slogx.Error(err),
		)

		message := "Internal Server Error"
		return errors.WithStack(ctx.Status(http.StatusInternalServerError).JSON(errorResponse{
			HttpResponse: common.HttpResponse[any]{Error: &message},
		}))
	}
}
