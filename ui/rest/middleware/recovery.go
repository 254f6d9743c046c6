package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	pkgError "github.com/socialcraft/content-agent/pkg/error"
	"github.com/socialcraft/content-agent/pkg/utils"
)

// Recovery turns panics raised by handlers (including PanicIfNeeded) into
// structured JSON error responses. Anything that is not a GenericError is
// reported as an internal server error.
func Recovery() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			logrus.Errorf("Panic recovered in middleware: %v", r)

			generic, ok := r.(pkgError.GenericError)
			if !ok {
				generic = pkgError.InternalServerError(fmt.Sprintf("%v", r))
			}

			_ = ctx.Status(generic.StatusCode()).JSON(utils.ResponseData{
				Status:  generic.StatusCode(),
				Code:    generic.ErrCode(),
				Message: generic.Error(),
			})
		}()

		return ctx.Next()
	}
}
