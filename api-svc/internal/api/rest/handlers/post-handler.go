package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quixjob/backend/api-svc/internal/dto"
	"github.com/quixjob/backend/api-svc/internal/helper/utils"
	"github.com/quixjob/backend/api-svc/internal/services"
)

type PostHandler struct {
	svc services.PostService
}

func NewPostHandler(svc services.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

func (h *PostHandler) SetupRoutes(api fiber.Router, requireAuth fiber.Handler) {
	posts := api.Group("/posts", requireAuth)
	posts.Get("/", h.Feed)
	posts.Post("/create", h.CreatePost)
	posts.Delete("/delete/:id", h.DeletePost)
	posts.Get("/:id", h.GetPost)
	posts.Post("/:id/comment", h.Comment)
	posts.Post("/:id/like", h.ToggleLike)
}

func (h *PostHandler) Feed(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	posts, err := h.svc.Feed(ctx.UserContext(), userID)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, posts)
}

func (h *PostHandler) CreatePost(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	var req dto.CreatePostRequest
	if err := utils.ParseAndValidate(ctx, &req); err != nil {
		return utils.HandleError(ctx, err)
	}
	post, err := h.svc.CreatePost(ctx.UserContext(), userID, req)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, post)
}

func (h *PostHandler) GetPost(ctx *fiber.Ctx) error {
	post, err := h.svc.GetPost(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, post)
}

func (h *PostHandler) DeletePost(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	if err := h.svc.DeletePost(ctx.UserContext(), userID, ctx.Params("id")); err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"message": "Post deleted successfully"})
}

func (h *PostHandler) Comment(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	var req dto.CommentRequest
	if err := utils.ParseAndValidate(ctx, &req); err != nil {
		return utils.HandleError(ctx, err)
	}
	post, err := h.svc.Comment(ctx.UserContext(), userID, ctx.Params("id"), req)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, post)
}

func (h *PostHandler) ToggleLike(ctx *fiber.Ctx) error {
	userID, err := callerID(ctx)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	post, err := h.svc.ToggleLike(ctx.UserContext(), userID, ctx.Params("id"))
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, post)
}
