package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"sneakstore/internal/services"
)

// UserHandler handles registration, email verification and password resets.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes. All of them are public: they
// authenticate by challenge token, not by session.
func (h *UserHandler) RegisterRoutes(public fiber.Router) {
	public.Post("/users", h.HandleRegister)
	public.Post("/users/:id/challenge/email", h.HandleVerifyEmail)
	public.Post("/users/password-reset", h.HandleRequestPasswordReset)
	public.Put("/users/:id/password", h.HandleResetPassword)
}

// RegisterRequest is the request body for creating an account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// HandleRegister creates a new account and opens its email challenge.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	user, err := h.userService.Register(req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    user.ID,
		"email": user.Email,
	})
}

// ChallengeRequest carries the token mailed to the user.
type ChallengeRequest struct {
	Token string `json:"token" validate:"required"`
}

// HandleVerifyEmail closes the email challenge, unlocking login.
func (h *UserHandler) HandleVerifyEmail(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req ChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	if err := h.userService.VerifyEmail(id, req.Token); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"verified": true})
}

// PasswordResetRequest asks for a reset token by email.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleRequestPasswordReset mails a reset token. The response is the same
// whether or not the email belongs to an account.
func (h *UserHandler) HandleRequestPasswordReset(c *fiber.Ctx) error {
	var req PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	if err := h.userService.SendPasswordResetEmail(req.Email); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// NewPasswordRequest carries the reset token and the replacement password.
type NewPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// HandleResetPassword replaces the password using a reset token.
func (h *UserHandler) HandleResetPassword(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req NewPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	if err := h.userService.ResetPassword(id, req.Token, req.Password); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"updated": true})
}
