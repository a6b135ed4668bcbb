package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quixjob/backend/api-svc/internal/helper/utils"
	"github.com/quixjob/backend/api-svc/internal/services"
)

type NotificationHandler struct {
	svc services.NotificationService
}

func NewNotificationHandler(svc services.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) SetupRoutes(api fiber.Router, requireAuth fiber.Handler) {
	notifications := api.Group("/notifications", requireAuth)
	notifications.Get("/", h.List)
	notifications.Put("/:id/read", h.MarkRead)
	notifications.Delete("/:id", h.Delete)
}

func (h *NotificationHandler) List(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	list, err := h.svc.List(ctx.UserContext(), userID)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, list)
}

func (h *NotificationHandler) MarkRead(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	n, err := h.svc.MarkRead(ctx.UserContext(), userID, ctx.Params("id"))
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, n)
}

func (h *NotificationHandler) Delete(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	if err := h.svc.Delete(ctx.UserContext(), userID, ctx.Params("id")); err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"message": "Notification deleted successfully"})
}
