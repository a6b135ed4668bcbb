package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/quixjob/backend/api-svc/internal/dto"
	"github.com/quixjob/backend/api-svc/internal/helper/utils"
	"github.com/quixjob/backend/api-svc/internal/services"
	pkgutils "github.com/quixjob/backend/api-svc/pkg/utils"
)

type ApplicantHandler struct {
	svc services.ApplicantService
}

func NewApplicantHandler(svc services.ApplicantService) *ApplicantHandler {
	return &ApplicantHandler{svc: svc}
}

func (h *ApplicantHandler) SetupRoutes(api fiber.Router, requireAuth fiber.Handler) {
	applicants := api.Group("/applicants", requireAuth)
	applicants.Post("/add", h.AddApplicant)
	applicants.Put("/update-status", h.UpdateStatus)
	applicants.Get("/user/applications", h.MyApplications)
	applicants.Get("/user/jobs/applications", h.ApplicationsForMyJobs)
}

// AddApplicant takes a multipart form with a "resume" file.
func (h *ApplicantHandler) AddApplicant(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}

	var req dto.AddApplicantRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}
	if err := utils.Validate(req); err != nil {
		return utils.HandleError(ctx, err)
	}

	file, err := ctx.FormFile("resume")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Resume file is required")
	}
	if file.Size > services.MaxResumeSize {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Resume must be 5MB or smaller")
	}
	f, err := file.Open()
	if err != nil {
		return utils.HandleError(ctx, utils.Internal(err))
	}
	defer f.Close()

	data, err := pkgutils.ReadAllLimit(f, services.MaxResumeSize)
	if err != nil {
		if errors.Is(err, pkgutils.ErrTooLarge) {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "Resume must be 5MB or smaller")
		}
		return utils.HandleError(ctx, utils.Internal(err))
	}

	applicant, created, err := h.svc.Apply(ctx.UserContext(), userID, req, dto.ResumeFile{
		Filename: file.Filename,
		Data:     data,
	})
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return utils.ResponseSuccess(ctx, status, applicant)
}

func (h *ApplicantHandler) UpdateStatus(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	var req dto.UpdateApplicantStatusRequest
	if err := utils.ParseAndValidate(ctx, &req); err != nil {
		return utils.HandleError(ctx, err)
	}
	applicant, err := h.svc.UpdateStatus(ctx.UserContext(), userID, req)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, applicant)
}

func (h *ApplicantHandler) MyApplications(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	list, err := h.svc.MyApplications(ctx.UserContext(), userID)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, list)
}

func (h *ApplicantHandler) ApplicationsForMyJobs(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	list, err := h.svc.ApplicationsForMyJobs(ctx.UserContext(), userID)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, list)
}
