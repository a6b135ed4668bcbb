package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quixjob/backend/api-svc/internal/dto"
	"github.com/quixjob/backend/api-svc/internal/helper/utils"
	"github.com/quixjob/backend/api-svc/internal/services"
)

type JobStatusHandler struct {
	svc services.JobStatusService
}

func NewJobStatusHandler(svc services.JobStatusService) *JobStatusHandler {
	return &JobStatusHandler{svc: svc}
}

func (h *JobStatusHandler) SetupRoutes(api fiber.Router, requireAuth fiber.Handler) {
	js := api.Group("/jobstatus", requireAuth)
	js.Post("/job-status", h.SaveStatus)
	js.Get("/job-status/:userId", h.ListStatuses)
}

func (h *JobStatusHandler) SaveStatus(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	var req dto.SaveJobStatusRequest
	if err := utils.ParseAndValidate(ctx, &req); err != nil {
		return utils.HandleError(ctx, err)
	}
	js, created, err := h.svc.SaveStatus(ctx.UserContext(), userID, req)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return utils.ResponseSuccess(ctx, status, js)
}

func (h *JobStatusHandler) ListStatuses(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	list, err := h.svc.ListStatuses(ctx.UserContext(), userID, ctx.Params("userId"))
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, list)
}
