package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/quixjob/backend/pkg/logger"
)

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{"data": data})
}

// HandleError writes err using the AppError status, or a generic 500.
// Causes of server errors are logged, never returned.
func HandleError(ctx *fiber.Ctx, err error) error {
	log := logger.FromContext(ctx.UserContext())

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= fiber.StatusInternalServerError {
			log.Error("request failed", zap.Error(err))
		}
		return ResponseError(ctx, appErr.Status, appErr.Message)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ResponseError(ctx, fiberErr.Code, fiberErr.Message)
	}

	log.Error("request failed", zap.Error(err))
	return ResponseError(ctx, fiber.StatusInternalServerError, "Internal server error")
}
