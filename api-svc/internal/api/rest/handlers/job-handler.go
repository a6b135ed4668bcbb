package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quixjob/backend/api-svc/internal/dto"
	"github.com/quixjob/backend/api-svc/internal/helper/utils"
	"github.com/quixjob/backend/api-svc/internal/services"
)

type JobHandler struct {
	svc services.JobService
}

func NewJobHandler(svc services.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

func (h *JobHandler) SetupRoutes(api fiber.Router, requireAuth fiber.Handler) {
	jobs := api.Group("/jobs", requireAuth)
	jobs.Post("/create", h.CreateJob)
	jobs.Get("/jobs", h.ListJobs)
	jobs.Get("/my-jobs/:employerId", h.ListEmployerJobs)
	jobs.Put("/jobs/:id", h.UpdateJob)
	jobs.Delete("/jobs/:id", h.DeleteJob)
	jobs.Post("/jobs/:id/quiz", h.SubmitQuiz)
}

func (h *JobHandler) CreateJob(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	var req dto.CreateJobRequest
	if err := utils.ParseAndValidate(ctx, &req); err != nil {
		return utils.HandleError(ctx, err)
	}
	job, err := h.svc.CreateJob(ctx.UserContext(), userID, req)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, job)
}

func (h *JobHandler) ListJobs(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	jobs, err := h.svc.ListJobs(ctx.UserContext(), userID)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, jobs)
}

func (h *JobHandler) ListEmployerJobs(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	jobs, err := h.svc.ListEmployerJobs(ctx.UserContext(), userID, ctx.Params("employerId"))
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, jobs)
}

func (h *JobHandler) UpdateJob(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	var req dto.UpdateJobRequest
	if err := utils.ParseAndValidate(ctx, &req); err != nil {
		return utils.HandleError(ctx, err)
	}
	job, err := h.svc.UpdateJob(ctx.UserContext(), userID, ctx.Params("id"), req)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, job)
}

func (h *JobHandler) DeleteJob(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	if err := h.svc.DeleteJob(ctx.UserContext(), userID, ctx.Params("id")); err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"message": "Job and all related entities deleted successfully!",
	})
}

func (h *JobHandler) SubmitQuiz(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	var req dto.QuizSubmission
	if err := utils.ParseAndValidate(ctx, &req); err != nil {
		return utils.HandleError(ctx, err)
	}
	res, err := h.svc.SubmitQuiz(ctx.UserContext(), userID, ctx.Params("id"), req)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}
