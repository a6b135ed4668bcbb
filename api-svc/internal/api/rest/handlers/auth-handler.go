package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quixjob/backend/api-svc/internal/domain"
	"github.com/quixjob/backend/api-svc/internal/dto"
	"github.com/quixjob/backend/api-svc/internal/helper"
	"github.com/quixjob/backend/api-svc/internal/helper/utils"
	"github.com/quixjob/backend/api-svc/internal/services"
)

type AuthHandler struct {
	svc          services.AuthService
	auth         helper.Auth
	cookieSecure bool
}

func NewAuthHandler(svc services.AuthService, auth helper.Auth, cookieSecure bool) *AuthHandler {
	return &AuthHandler{svc: svc, auth: auth, cookieSecure: cookieSecure}
}

func (h *AuthHandler) SetupRoutes(api fiber.Router, requireAuth fiber.Handler) {
	auth := api.Group("/auth")
	auth.Post("/signup", h.Signup)
	auth.Post("/verify-otp", h.VerifyOTP)
	auth.Post("/resend-otp", h.ResendOTP)
	auth.Post("/login", h.Login)
	auth.Post("/logout", h.Logout)
	auth.Get("/me", requireAuth, h.Me)
}

func (h *AuthHandler) Signup(ctx *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := utils.ParseAndValidate(ctx, &req); err != nil {
		return utils.HandleError(ctx, err)
	}
	if _, err := h.svc.Signup(ctx.UserContext(), req); err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, fiber.Map{
		"message": "User registered successfully. Check your email for the OTP.",
	})
}

func (h *AuthHandler) VerifyOTP(ctx *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := utils.ParseAndValidate(ctx, &req); err != nil {
		return utils.HandleError(ctx, err)
	}
	user, token, err := h.svc.VerifyOTP(ctx.UserContext(), req)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	h.auth.SetSessionCookie(ctx, token, h.cookieSecure)
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}

func (h *AuthHandler) ResendOTP(ctx *fiber.Ctx) error {
	var req dto.ResendOTPRequest
	if err := utils.ParseAndValidate(ctx, &req); err != nil {
		return utils.HandleError(ctx, err)
	}
	if err := h.svc.ResendOTP(ctx.UserContext(), req); err != nil {
		return utils.HandleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"message": "OTP sent"})
}

func (h *AuthHandler) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := utils.ParseAndValidate(ctx, &req); err != nil {
		return utils.HandleError(ctx, err)
	}
	user, token, err := h.svc.Login(ctx.UserContext(), req)
	if err != nil {
		return utils.HandleError(ctx, err)
	}
	h.auth.SetSessionCookie(ctx, token, h.cookieSecure)
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}

func (h *AuthHandler) Logout(ctx *fiber.Ctx) error {
	h.auth.ClearSessionCookie(ctx)
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"message": "Logged out successfully"})
}

func (h *AuthHandler) Me(ctx *fiber.Ctx) error {
	user, ok := ctx.Locals(helper.LocalUser).(*domain.User)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Unauthorized - User not found")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}
