package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/services"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/utils"
)

// UserHandler handles admin user management routes
type UserHandler struct {
	DB *gorm.DB
}

// List handles GET /api/users
// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {array} models.User
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := services.ListUsers(h.DB)
	if err != nil {
		return serviceError(c, err, "users.list")
	}
	return utils.SuccessResponse(c, users, fiber.StatusOK)
}

// Search handles GET /api/users/search?term=...
// @Summary Search users
// @Tags Users
// @Produce json
// @Param term query string false "Username or user ID term"
// @Success 200 {array} models.User
// @Router /users/search [get]
func (h *UserHandler) Search(c *fiber.Ctx) error {
	users, err := services.SearchUsers(h.DB, c.Query("term"))
	if err != nil {
		return serviceError(c, err, "users.search")
	}
	return utils.SuccessResponse(c, users, fiber.StatusOK)
}

// Get handles GET /api/users/:userID
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{userID} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	user, err := services.GetUser(h.DB, c.Params("userID"))
	if err != nil {
		return serviceError(c, err, "users.get")
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// Update handles PUT /api/users/:userID
// @Summary Update a user
// @Tags Users
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param body body services.UserInput true "Changed fields"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /users/{userID} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in services.UserInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "users.update")
	}

	user, err := services.UpdateUser(h.DB, c.Params("userID"), in)
	if err != nil {
		return serviceError(c, err, "users.update")
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// Delete handles DELETE /api/users/:userID
// @Summary Delete a user
// @Tags Users
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{userID} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	identity := currentIdentity(c)
	if identity.UserID == c.Params("userID") {
		return utils.ErrorResponse(c, "cannot delete your own account", fiber.StatusBadRequest, "users.delete")
	}

	if err := services.DeleteUser(h.DB, c.Params("userID")); err != nil {
		return serviceError(c, err, "users.delete")
	}
	return utils.MutationSuccessResponse(c, "user deleted", 1)
}
