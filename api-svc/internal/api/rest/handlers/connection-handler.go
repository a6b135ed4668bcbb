package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quixjob/backend/api-svc/internal/helper/utils"
	"github.com/quixjob/backend/api-svc/internal/services"
)

type ConnectionHandler struct {
	svc services.ConnectionService
}

func NewConnectionHandler(svc services.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{svc: svc}
}

func (h *ConnectionHandler) SetupRoutes(api fiber.Router, requireAuth fiber.Handler) {
	conns := api.Group("/connections", requireAuth)
	conns.Post("/request/:userId", h.SendRequest)
	conns.Put("/accept/:requestId", h.AcceptRequest)
	conns.Put("/reject/:requestId", h.RejectRequest)
	conns.Get("/requests", h.ListRequests)
	conns.Get("/status/:userId", h.Status)
	conns.Get("/", h.ListConnections)
	conns.Delete("/:userId", h.RemoveConnection)
}

func (h *ConnectionHandler) SendRequest(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	req, err := h.svc.SendRequest(ctx.UserContext(), userID, ctx.Params("userId"))
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, req)
}

func (h *ConnectionHandler) AcceptRequest(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	req, err := h.svc.AcceptRequest(ctx.UserContext(), userID, ctx.Params("requestId"))
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, req)
}

func (h *ConnectionHandler) RejectRequest(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	req, err := h.svc.RejectRequest(ctx.UserContext(), userID, ctx.Params("requestId"))
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, req)
}

func (h *ConnectionHandler) ListRequests(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	list, err := h.svc.ListRequests(ctx.UserContext(), userID)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, list)
}

func (h *ConnectionHandler) ListConnections(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	list, err := h.svc.ListConnections(ctx.UserContext(), userID)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, list)
}

func (h *ConnectionHandler) RemoveConnection(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	if err := h.svc.RemoveConnection(ctx.UserContext(), userID, ctx.Params("userId")); err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"message": "Connection removed successfully"})
}

func (h *ConnectionHandler) Status(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	st, err := h.svc.Status(ctx.UserContext(), userID, ctx.Params("userId"))
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, st)
}
