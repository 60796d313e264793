package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/services"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/utils"
)

// RequestHandler handles pickup request routes
type RequestHandler struct {
	DB *gorm.DB
}

// List handles GET /api/requests
// @Summary List pickup requests
// @Tags Requests
// @Produce json
// @Param searchTerm query string false "Client name or ID term"
// @Param startDate query string false "Earliest request date (YYYY-MM-DD)"
// @Param endDate query string false "Latest request date (YYYY-MM-DD)"
// @Param sortOrder query string false "asc (default) or desc"
// @Success 200 {array} services.RequestSummary
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /requests [get]
func (h *RequestHandler) List(c *fiber.Ctx) error {
	filter := services.RequestFilter{
		Term:     c.Query("searchTerm"),
		SortDesc: c.Query("sortOrder") == "desc",
	}
	if raw := c.Query("startDate"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return utils.ErrorResponse(c, "startDate must be YYYY-MM-DD", fiber.StatusBadRequest, "requests.list")
		}
		filter.From = from
	}
	if raw := c.Query("endDate"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return utils.ErrorResponse(c, "endDate must be YYYY-MM-DD", fiber.StatusBadRequest, "requests.list")
		}
		filter.To = to
	}

	rows, err := services.ListRequests(h.DB, filter)
	if err != nil {
		return serviceError(c, err, "requests.list")
	}
	return utils.SuccessResponse(c, rows, fiber.StatusOK)
}

// Get handles GET /api/requests/:requestID
// @Summary Get a pickup request
// @Tags Requests
// @Produce json
// @Param requestID path int true "Request ID"
// @Success 200 {object} models.Request
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /requests/{requestID} [get]
func (h *RequestHandler) Get(c *fiber.Ctx) error {
	requestID, err := paramUint(c, "requestID")
	if err != nil {
		return err
	}
	request, err := services.GetRequest(h.DB, requestID)
	if err != nil {
		return serviceError(c, err, "requests.get")
	}
	return utils.SuccessResponse(c, request, fiber.StatusOK)
}

// Create handles POST /api/requests
// @Summary Create or update a pickup request
// @Description A client keeps at most one pending future request; posting again updates it
// @Tags Requests
// @Accept json
// @Produce json
// @Param body body services.RequestInput true "Pickup request"
// @Success 201 {object} models.Request
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /requests [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var in services.RequestInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "requests.create")
	}

	request, err := services.UpsertRequest(h.DB, in, time.Now())
	if err != nil {
		return serviceError(c, err, "requests.create")
	}
	return utils.SuccessResponse(c, request, fiber.StatusCreated)
}

// Update handles PUT /api/requests/:requestID
// @Summary Update a pickup request
// @Tags Requests
// @Accept json
// @Produce json
// @Param requestID path int true "Request ID"
// @Param body body services.RequestInput true "Changed fields"
// @Success 200 {object} models.Request
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /requests/{requestID} [put]
func (h *RequestHandler) Update(c *fiber.Ctx) error {
	requestID, err := paramUint(c, "requestID")
	if err != nil {
		return err
	}
	var in services.RequestInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "requests.update")
	}

	request, svcErr := services.UpdateRequest(h.DB, requestID, in)
	if svcErr != nil {
		return serviceError(c, svcErr, "requests.update")
	}
	return utils.SuccessResponse(c, request, fiber.StatusOK)
}

// Delete handles DELETE /api/requests/:requestID
// @Summary Delete a pickup request
// @Tags Requests
// @Produce json
// @Param requestID path int true "Request ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /requests/{requestID} [delete]
func (h *RequestHandler) Delete(c *fiber.Ctx) error {
	requestID, err := paramUint(c, "requestID")
	if err != nil {
		return err
	}
	if err := services.DeleteRequest(h.DB, requestID); err != nil {
		return serviceError(c, err, "requests.delete")
	}
	return utils.MutationSuccessResponse(c, "request deleted", 1)
}

// DeleteByTerm handles DELETE /api/requests?searchTerm=...
// @Summary Delete pickup requests by client search term
// @Tags Requests
// @Produce json
// @Param searchTerm query string true "Client name or ID term"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /requests [delete]
func (h *RequestHandler) DeleteByTerm(c *fiber.Ctx) error {
	affected, err := services.DeleteRequestsByTerm(h.DB, c.Query("searchTerm"))
	if err != nil {
		return serviceError(c, err, "requests.deleteByTerm")
	}
	return utils.MutationSuccessResponse(c, "requests deleted", affected)
}
