package handlers

import (
	"songvault/internal/app"
	authController "songvault/internal/controllers/auth"
	"songvault/internal/handlers/middleware"
	"songvault/internal/types"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	controller authController.AuthControllerInterface
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	return &AuthHandler{
		controller: app.Controllers.Auth,
		Handler:    newHandler(app, router, "auth_handler"),
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")

	auth.Post("/register", h.register)
	auth.Post("/login", h.login)
	auth.Post("/refresh", h.refresh)
	auth.Post("/verify", h.verify)

	auth.Post("/logout", h.middleware.RequireAuth(), h.logout)
	auth.Get("/profile", h.middleware.RequireAuth(), h.profile)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("register")

	var request types.RegisterRequest
	if err := decodeJSON(c, &request); err != nil {
		return respondError(c, log, err)
	}

	credentials, err := h.controller.Register(c.UserContext(), request)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(credentials)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("login")

	var request types.LoginRequest
	if err := decodeJSON(c, &request); err != nil {
		return respondError(c, log, err)
	}

	credentials, err := h.controller.Login(c.UserContext(), request)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(credentials)
}

func (h *AuthHandler) refresh(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("refresh")

	var request types.RefreshRequest
	if err := decodeJSON(c, &request); err != nil {
		return respondError(c, log, err)
	}

	credentials, err := h.controller.Refresh(c.UserContext(), request)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(credentials)
}

func (h *AuthHandler) verify(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("verify")

	var request types.VerifyRequest
	if err := decodeJSON(c, &request); err != nil {
		return respondError(c, log, err)
	}

	if err := h.controller.Verify(c.UserContext(), request); err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(fiber.Map{})
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("logout")

	user := middleware.GetUser(c)
	if err := h.controller.Logout(c.UserContext(), user, middleware.GetSessionID(c)); err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(types.MessageResponse{Message: "Logged out successfully."})
}

func (h *AuthHandler) profile(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("profile")

	user, favorites, err := h.controller.Profile(c.UserContext(), middleware.GetUser(c))
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(h.renderer.Profile(user, favorites))
}
