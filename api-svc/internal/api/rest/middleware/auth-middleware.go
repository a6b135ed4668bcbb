package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/quixjob/backend/api-svc/internal/helper"
	"github.com/quixjob/backend/api-svc/internal/helper/utils"
	"github.com/quixjob/backend/api-svc/internal/services"
	"github.com/quixjob/backend/pkg/logger"
)

// AuthMiddleware resolves the session token (cookie first, then the
// Authorization header) to a stored user before any handler runs.
func AuthMiddleware(authSvc services.AuthService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := strings.TrimSpace(ctx.Cookies(helper.CookieName))
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get(fiber.HeaderAuthorization))
		}

		user, err := authSvc.Authenticate(ctx.UserContext(), tokenStr)
		if err != nil {
			switch {
			case errors.Is(err, helper.ErrTokenMissing):
				return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Unauthorized - No Token Provided")
			case errors.Is(err, helper.ErrTokenExpired):
				return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Unauthorized - Token Expired")
			case errors.Is(err, helper.ErrTokenInvalid):
				return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Unauthorized - Invalid Token")
			case errors.Is(err, services.ErrUserNotFound):
				return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			return utils.HandleError(ctx, err)
		}

		ctx.Locals(helper.LocalUserID, user.ID)
		ctx.Locals(helper.LocalUser, user)
		ctx.SetUserContext(logger.WithContext(ctx.UserContext(),
			logger.FromContext(ctx.UserContext()).With(zap.String("user_id", user.ID)),
		))
		return ctx.Next()
	}
}
