package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/config"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/services"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/utils"
)

// AuthHandler handles login and registration routes
type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

type deviceLoginRequest struct {
	Passcode string `json:"passcode"`
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Exchange username and password for a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} services.AuthResult
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "auth.login")
	}

	result, err := services.Login(h.DB, h.Cfg.JWTSecret, req.Username, req.Password)
	if err != nil {
		// A missing user and a bad password both read as 401, not 404, so
		// login does not leak which usernames exist.
		return utils.ErrorResponse(c, "invalid credentials", fiber.StatusUnauthorized, "auth.login")
	}

	return utils.SuccessResponse(c, result, fiber.StatusOK)
}

// Register handles POST /api/auth/register
// @Summary Register a user
// @Description Create a new account (admin only)
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "New account"
// @Success 201 {object} services.AuthResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "auth.register")
	}

	result, err := services.Register(h.DB, h.Cfg.JWTSecret, req.Username, req.Password, req.UserType)
	if err != nil {
		return serviceError(c, err, "auth.register")
	}

	return utils.SuccessResponse(c, result, fiber.StatusCreated)
}

// Me handles GET /api/auth/me
// @Summary Current identity
// @Description Return the identity behind the presented token
// @Tags Auth
// @Produce json
// @Success 200 {object} types.Identity
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, currentIdentity(c), fiber.StatusOK)
}

// DeviceLogin handles POST /api/auth/device
// @Summary Device login
// @Description Exchange the shared device passcode for a short-lived token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body deviceLoginRequest true "Passcode"
// @Success 200 {object} services.AuthResult
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/device [post]
func (h *AuthHandler) DeviceLogin(c *fiber.Ctx) error {
	var req deviceLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "auth.device")
	}

	result, err := services.DeviceLogin(h.Cfg.JWTSecret, h.Cfg.DevicePasscode, req.Passcode)
	if err != nil {
		return serviceError(c, err, "auth.device")
	}

	return utils.SuccessResponse(c, result, fiber.StatusOK)
}
