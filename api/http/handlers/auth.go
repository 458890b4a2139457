package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/recruitflow/api/http/presenter"
	"github.com/artem13815/recruitflow/pkg/auth"
)

type AuthHandler struct {
	useCase auth.UseCase
}

func NewAuthHandler(useCase auth.UseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Register handles user registration.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "email and password are required")
	}

	result, err := h.useCase.Register(c.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserAlreadyExists):
			return presenter.Error(c, http.StatusConflict, "user already exists")
		case errors.Is(err, auth.ErrInvalidCredentials):
			return presenter.Error(c, http.StatusBadRequest, "email is required and password must be at least 8 characters")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to register user")
		}
	}
	return presenter.JSON(c, http.StatusCreated, authResponse(result))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user login.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "email and password are required")
	}

	result, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return presenter.Error(c, http.StatusUnauthorized, "invalid credentials")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to login")
	}
	return presenter.JSON(c, http.StatusOK, authResponse(result))
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh ротирует refresh-токен и выдаёт новую пару.
// @Summary Refresh tokens
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body refreshRequest true "refresh payload"
// @Success 200 {object} map[string]any
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return presenter.Error(c, http.StatusBadRequest, "refreshToken is required")
	}
	result, err := h.useCase.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return presenter.Error(c, http.StatusUnauthorized, "invalid or expired token")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to refresh tokens")
	}
	return presenter.JSON(c, http.StatusOK, authResponse(result))
}

// Logout отзывает refresh-токен.
// @Summary Logout
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body refreshRequest true "refresh payload"
// @Success 204
// @Router  /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return presenter.Error(c, http.StatusBadRequest, "refreshToken is required")
	}
	if err := h.useCase.Logout(c.Context(), req.RefreshToken); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to logout")
	}
	return c.SendStatus(http.StatusNoContent)
}

// Me возвращает текущего пользователя.
// @Summary Current user
// @Tags    auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.useCase.Me(c.Context(), userID(c))
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "user not found")
	}
	return presenter.JSON(c, http.StatusOK, userView(user))
}

func authResponse(r auth.Result) fiber.Map {
	return fiber.Map{
		"user":         userView(r.User),
		"accessToken":  r.AccessToken,
		"refreshToken": r.RefreshToken,
	}
}

func userView(u auth.User) fiber.Map {
	return fiber.Map{
		"id":        u.ID.String(),
		"email":     u.Email,
		"name":      u.Name,
		"role":      string(u.Role),
		"createdAt": u.CreatedAt,
	}
}
