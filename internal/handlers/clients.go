package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/schema"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/services"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/utils"
)

// ClientHandler handles client routes
type ClientHandler struct {
	DB *gorm.DB
}

// List handles GET /api/clients
// @Summary List clients
// @Tags Clients
// @Produce json
// @Success 200 {array} models.Client
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	clients, err := services.ListClients(h.DB)
	if err != nil {
		return serviceError(c, err, "clients.list")
	}
	return utils.SuccessResponse(c, clients, fiber.StatusOK)
}

// Get handles GET /api/clients/:clientID
// @Summary Get a client
// @Tags Clients
// @Produce json
// @Param clientID path string true "Client ID"
// @Success 200 {object} models.Client
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /clients/{clientID} [get]
func (h *ClientHandler) Get(c *fiber.Ctx) error {
	client, err := services.GetClient(h.DB, c.Params("clientID"))
	if err != nil {
		return serviceError(c, err, "clients.get")
	}
	return utils.SuccessResponse(c, client, fiber.StatusOK)
}

// Search handles GET /api/clients/search?term=...
// @Summary Search clients
// @Description Match the term against client name, ID, and location
// @Tags Clients
// @Produce json
// @Param term query string false "Search term"
// @Success 200 {array} models.Client
// @Router /clients/search [get]
func (h *ClientHandler) Search(c *fiber.Ctx) error {
	clients, err := services.SearchClients(h.DB, c.Query("term"))
	if err != nil {
		return serviceError(c, err, "clients.search")
	}
	return utils.SuccessResponse(c, clients, fiber.StatusOK)
}

// PickupInfo handles GET /api/clients/pickup-info
// @Summary Pickup planning projection
// @Tags Clients
// @Produce json
// @Success 200 {array} services.ClientPickupInfo
// @Router /clients/pickup-info [get]
func (h *ClientHandler) PickupInfo(c *fiber.Ctx) error {
	rows, err := services.ListPickupInfo(h.DB)
	if err != nil {
		return serviceError(c, err, "clients.pickupInfo")
	}
	return utils.SuccessResponse(c, rows, fiber.StatusOK)
}

// Create handles POST /api/clients
// @Summary Add a client
// @Description Create a client and its running totals row
// @Tags Clients
// @Accept json
// @Produce json
// @Param body body services.ClientInput true "New client"
// @Success 201 {object} models.Client
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in services.ClientInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "clients.create")
	}

	client, err := services.AddClient(h.DB, in)
	if err != nil {
		return serviceError(c, err, "clients.create")
	}
	return utils.SuccessResponse(c, client, fiber.StatusCreated)
}

// Update handles PUT /api/clients/:clientID
// @Summary Update a client
// @Tags Clients
// @Accept json
// @Produce json
// @Param clientID path string true "Client ID"
// @Param body body services.ClientInput true "Changed fields"
// @Success 200 {object} models.Client
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /clients/{clientID} [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in services.ClientInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "clients.update")
	}

	client, err := services.UpdateClient(h.DB, c.Params("clientID"), in)
	if err != nil {
		return serviceError(c, err, "clients.update")
	}
	return utils.SuccessResponse(c, client, fiber.StatusOK)
}

// Delete handles DELETE /api/clients/:clientID. Client deletion is disabled:
// receipts reference clients and the books must stay auditable.
// @Summary Delete a client (disabled)
// @Tags Clients
// @Param clientID path string true "Client ID"
// @Failure 405 {object} utils.ErrorResponseStruct
// @Router /clients/{clientID} [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	return utils.ErrorResponse(c, "client deletion is disabled", fiber.StatusMethodNotAllowed, "clients.delete")
}

// Totals handles GET /api/clients/:clientID/totals
// @Summary Per-metal running totals
// @Tags Clients
// @Produce json
// @Param clientID path string true "Client ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /clients/{clientID}/totals [get]
func (h *ClientHandler) Totals(c *fiber.Ctx) error {
	totals, err := services.ClientTotals(h.DB, c.Params("clientID"))
	if err != nil {
		return serviceError(c, err, "clients.totals")
	}
	return utils.SuccessResponse(c, totals, fiber.StatusOK)
}

// Metals handles GET /api/clients/:clientID/metals
// @Summary Metal breakdown of the latest receipt
// @Tags Clients
// @Produce json
// @Param clientID path string true "Client ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /clients/{clientID}/metals [get]
func (h *ClientHandler) Metals(c *fiber.Ctx) error {
	metals, err := services.ClientMetals(h.DB, c.Params("clientID"))
	if err != nil {
		return serviceError(c, err, "clients.metals")
	}
	return utils.SuccessResponse(c, metals, fiber.StatusOK)
}

// Requests handles GET /api/clients/:clientID/requests
// @Summary Pickup requests for a client
// @Tags Clients
// @Produce json
// @Param clientID path string true "Client ID"
// @Success 200 {array} models.Request
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /clients/{clientID}/requests [get]
func (h *ClientHandler) Requests(c *fiber.Ctx) error {
	rows, err := services.RequestsForClient(h.DB, c.Params("clientID"))
	if err != nil {
		return serviceError(c, err, "clients.requests")
	}
	return utils.SuccessResponse(c, rows, fiber.StatusOK)
}

// TopByMetal handles GET /api/clients/top/metal?clientType=auto&metal=ShredSteel&limit=10
// @Summary Top clients by one metal total
// @Tags Clients
// @Produce json
// @Param clientType query string true "Client type"
// @Param metal query string true "Metal name"
// @Param limit query int false "Row limit"
// @Success 200 {array} services.TopClient
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /clients/top/metal [get]
func (h *ClientHandler) TopByMetal(c *fiber.Ctx) error {
	clientType, err := schema.Parse(c.Query("clientType"))
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "clients.topByMetal")
	}

	rows, err := services.TopClientsByMetal(h.DB, clientType, c.Query("metal"), c.QueryInt("limit"))
	if err != nil {
		return serviceError(c, err, "clients.topByMetal")
	}
	return utils.SuccessResponse(c, rows, fiber.StatusOK)
}

// TopByVolume handles GET /api/clients/top/volume?limit=10
// @Summary Top clients by lifetime volume
// @Tags Clients
// @Produce json
// @Param limit query int false "Row limit"
// @Success 200 {array} services.TopClient
// @Router /clients/top/volume [get]
func (h *ClientHandler) TopByVolume(c *fiber.Ctx) error {
	rows, err := services.TopClientsByVolume(h.DB, c.QueryInt("limit"))
	if err != nil {
		return serviceError(c, err, "clients.topByVolume")
	}
	return utils.SuccessResponse(c, rows, fiber.StatusOK)
}

// SyncLastPickup handles POST /api/clients/:clientID/last-pickup/sync
// @Summary Recompute last pickup date from receipts
// @Tags Clients
// @Produce json
// @Param clientID path string true "Client ID"
// @Success 200 {object} models.Client
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /clients/{clientID}/last-pickup/sync [post]
func (h *ClientHandler) SyncLastPickup(c *fiber.Ctx) error {
	client, err := services.UpdateLastPickupFromReceipts(h.DB, c.Params("clientID"))
	if err != nil {
		return serviceError(c, err, "clients.syncLastPickup")
	}
	return utils.SuccessResponse(c, client, fiber.StatusOK)
}

type manualPickupRequest struct {
	PickupDate time.Time `json:"pickupDate"`
}

// SetLastPickup handles PUT /api/clients/:clientID/last-pickup
// @Summary Set last pickup date explicitly
// @Tags Clients
// @Accept json
// @Produce json
// @Param clientID path string true "Client ID"
// @Param body body manualPickupRequest true "Pickup date"
// @Success 200 {object} models.Client
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /clients/{clientID}/last-pickup [put]
func (h *ClientHandler) SetLastPickup(c *fiber.Ctx) error {
	var req manualPickupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "clients.setLastPickup")
	}
	if req.PickupDate.IsZero() {
		return utils.ErrorResponse(c, "pickupDate is required", fiber.StatusBadRequest, "clients.setLastPickup")
	}

	client, err := services.ManualUpdatePickup(h.DB, c.Params("clientID"), req.PickupDate)
	if err != nil {
		return serviceError(c, err, "clients.setLastPickup")
	}
	return utils.SuccessResponse(c, client, fiber.StatusOK)
}
