package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quixjob/backend/api-svc/internal/dto"
	"github.com/quixjob/backend/api-svc/internal/helper/utils"
	"github.com/quixjob/backend/api-svc/internal/services"
)

type MessageHandler struct {
	svc services.MessageService
}

func NewMessageHandler(svc services.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

func (h *MessageHandler) SetupRoutes(api fiber.Router, requireAuth fiber.Handler) {
	messages := api.Group("/messages", requireAuth)
	messages.Post("/save-message", h.SaveMessage)
	messages.Get("/chat-history/:userId/:friendId", h.ChatHistory)
}

func (h *MessageHandler) SaveMessage(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	var req dto.SaveMessageRequest
	if err := utils.ParseAndValidate(ctx, &req); err != nil {
		return utils.HandleError(ctx, err)
	}
	msg, err := h.svc.SaveMessage(ctx.UserContext(), userID, req)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, msg)
}

func (h *MessageHandler) ChatHistory(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	list, err := h.svc.ChatHistory(ctx.UserContext(), userID, ctx.Params("userId"), ctx.Params("friendId"))
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, list)
}
