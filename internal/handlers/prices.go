package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/schema"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/services"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/utils"
)

// PriceHandler handles price sheet routes
type PriceHandler struct {
	DB *gorm.DB
}

// Get handles GET /api/prices/:clientType
// @Summary Current price sheet for a client type
// @Tags Prices
// @Produce json
// @Param clientType path string true "Client type (auto or hvac)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /prices/{clientType} [get]
func (h *PriceHandler) Get(c *fiber.Ctx) error {
	clientType, err := schema.Parse(c.Params("clientType"))
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "prices.get")
	}

	prices, err := services.GetPrices(h.DB, clientType)
	if err != nil {
		return serviceError(c, err, "prices.get")
	}
	return utils.SuccessResponse(c, prices, fiber.StatusOK)
}

// Set handles PUT /api/prices/:clientType
// @Summary Publish a new price sheet revision
// @Description Prices for every metal of the type are required; the shared shred steel price is synchronized across sheets
// @Tags Prices
// @Accept json
// @Produce json
// @Param clientType path string true "Client type (auto or hvac)"
// @Param body body map[string]string true "Metal name to price"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /prices/{clientType} [put]
func (h *PriceHandler) Set(c *fiber.Ctx) error {
	clientType, err := schema.Parse(c.Params("clientType"))
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "prices.set")
	}

	var prices map[string]decimal.Decimal
	if err := c.BodyParser(&prices); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "prices.set")
	}

	if err := services.SetPrices(h.DB, clientType, prices); err != nil {
		return serviceError(c, err, "prices.set")
	}
	return utils.MutationSuccessResponse(c, "prices updated", 1)
}
