package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/models"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/types"
)

// Claims is the JWT payload issued at login.
type Claims struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
	UserType string `json:"userType"`
	jwt.RegisteredClaims
}

// IdentityKey is the fiber.Ctx Locals key holding the authenticated identity.
const IdentityKey = "identity"

// AuthAdmin validates that the request carries an admin token
func AuthAdmin(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, secret, []string{models.UserTypeAdmin}, "auth.admin")
	}
}

// AuthUser validates that the request carries a regular or admin token
func AuthUser(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, secret, []string{models.UserTypeRegular, models.UserTypeAdmin}, "auth.user")
	}
}

// AuthAny validates any authenticated principal, including devices
func AuthAny(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, secret,
			[]string{models.UserTypeRegular, models.UserTypeAdmin, models.UserTypeDevice}, "auth.any")
	}
}

// authorize performs the authorization check
func authorize(c *fiber.Ctx, secret string, roles []string, errorType string) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return &types.CustomError{
			Code:    fiber.StatusUnauthorized,
			Message: "Authorization header not found",
			Type:    errorType,
		}
	}

	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return &types.CustomError{
			Code:    fiber.StatusUnauthorized,
			Message: "Authorization header must use the Bearer scheme",
			Type:    errorType,
		}
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return &types.CustomError{
			Code:    fiber.StatusUnauthorized,
			Message: fmt.Sprintf("Invalid token: %v", err),
			Type:    errorType,
		}
	}

	allowed := false
	for _, role := range roles {
		if claims.UserType == role {
			allowed = true
			break
		}
	}
	if !allowed {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: fmt.Sprintf("Role %q is not permitted for this resource", claims.UserType),
			Type:    errorType,
		}
	}

	c.Locals(IdentityKey, types.Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
		UserType: claims.UserType,
	})

	return c.Next()
}
