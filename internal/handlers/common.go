package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/middleware"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/schema"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/services"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/types"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/utils"
)

// currentIdentity returns the authenticated principal set by the auth
// middleware, or a zero Identity on unauthenticated routes.
func currentIdentity(c *fiber.Ctx) types.Identity {
	if id, ok := c.Locals(middleware.IdentityKey).(types.Identity); ok {
		return id
	}
	return types.Identity{}
}

// paramUint parses a numeric path parameter.
func paramUint(c *fiber.Ctx, name string) (uint64, error) {
	raw := c.Params(name)
	val, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, &types.CustomError{
			Code:    fiber.StatusBadRequest,
			Message: "invalid " + name + ": " + raw,
			Type:    "params",
		}
	}
	return val, nil
}

// serviceError maps service layer errors onto HTTP responses.
func serviceError(c *fiber.Ctx, err error, errorType string) error {
	var validation *services.ValidationError
	switch {
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFoundResponse(c, "not found")
	case errors.Is(err, services.ErrConflict):
		return utils.ErrorResponse(c, "already exists", fiber.StatusConflict, errorType)
	case errors.Is(err, services.ErrBadPasscode):
		return utils.ErrorResponse(c, "invalid passcode", fiber.StatusUnauthorized, errorType)
	case errors.Is(err, schema.ErrUnsupportedClientType):
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, errorType)
	case errors.As(err, &validation):
		return utils.ErrorResponse(c, validation.Error(), fiber.StatusBadRequest, errorType)
	default:
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, errorType)
	}
}
