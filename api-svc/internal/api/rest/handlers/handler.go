package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quixjob/backend/api-svc/internal/helper"
	"github.com/quixjob/backend/api-svc/internal/helper/utils"
)

// callerID returns the authenticated user id, or a 401 AppError.
func callerID(ctx *fiber.Ctx) (string, error) {
	id, err := helper.CurrentUserID(ctx)
	if err != nil {
		return "", utils.Unauthorized("Unauthorized - No Token Provided")
	}
	return id, nil
}
