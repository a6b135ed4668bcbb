package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/quixjob/backend/api-svc/internal/dto"
	"github.com/quixjob/backend/api-svc/internal/helper/utils"
	"github.com/quixjob/backend/api-svc/internal/services"
	pkgutils "github.com/quixjob/backend/api-svc/pkg/utils"
)

const maxPictureSize = 5 << 20

type UserHandler struct {
	svc services.UserService
}

func NewUserHandler(svc services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) SetupRoutes(api fiber.Router, requireAuth fiber.Handler) {
	users := api.Group("/users", requireAuth)
	users.Get("/suggestions", h.GetSuggestions)
	users.Put("/profile", h.UpdateProfile)
	users.Put("/profile/picture", h.UpdateProfilePicture)
	users.Get("/:username", h.GetProfile)
}

func (h *UserHandler) GetSuggestions(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	list, err := h.svc.GetSuggestions(ctx.UserContext(), userID)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, list)
}

func (h *UserHandler) GetProfile(ctx *fiber.Ctx) error {
	user, err := h.svc.GetProfile(ctx.UserContext(), ctx.Params("username"))
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	var req dto.UpdateProfileRequest
	if err := utils.ParseAndValidate(ctx, &req); err != nil {
		return utils.HandleError(ctx, err)
	}
	user, err := h.svc.UpdateProfile(ctx.UserContext(), userID, req)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}

func (h *UserHandler) UpdateProfilePicture(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "image is required")
	}
	f, err := file.Open()
	if err != nil {
		return utils.HandleError(ctx, utils.Internal(err))
	}
	defer f.Close()

	b, err := pkgutils.ReadAllLimit(f, maxPictureSize)
	if err != nil {
		if errors.Is(err, pkgutils.ErrTooLarge) {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "file too large (max 5MB)")
		}
		return utils.HandleError(ctx, utils.Internal(err))
	}

	user, err := h.svc.UpdateProfilePicture(ctx.UserContext(), userID, b)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}
