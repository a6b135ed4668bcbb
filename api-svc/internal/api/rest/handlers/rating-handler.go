package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quixjob/backend/api-svc/internal/dto"
	"github.com/quixjob/backend/api-svc/internal/helper/utils"
	"github.com/quixjob/backend/api-svc/internal/services"
)

type RatingHandler struct {
	svc services.RatingService
}

func NewRatingHandler(svc services.RatingService) *RatingHandler {
	return &RatingHandler{svc: svc}
}

func (h *RatingHandler) SetupRoutes(api fiber.Router, requireAuth fiber.Handler) {
	ratings := api.Group("/ratings", requireAuth)
	ratings.Post("/", h.RateUser)
	ratings.Get("/:userId", h.GetRatings)
}

func (h *RatingHandler) RateUser(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	var req dto.RateUserRequest
	if err := utils.ParseAndValidate(ctx, &req); err != nil {
		return utils.HandleError(ctx, err)
	}
	rating, err := h.svc.RateUser(ctx.UserContext(), userID, req)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, rating)
}

func (h *RatingHandler) GetRatings(ctx *fiber.Ctx) error {
	res, err := h.svc.GetRatings(ctx.UserContext(), ctx.Params("userId"))
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}
