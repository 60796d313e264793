package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/config"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/services"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/utils"
)

// ReceiptHandler handles receipt routes
type ReceiptHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// List handles GET /api/receipts
// @Summary List receipts
// @Tags Receipts
// @Produce json
// @Param date query string false "Restrict to one pickup day (YYYY-MM-DD)"
// @Success 200 {array} services.ReceiptSummary
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /receipts [get]
func (h *ReceiptHandler) List(c *fiber.Ctx) error {
	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return utils.ErrorResponse(c, "date must be YYYY-MM-DD", fiber.StatusBadRequest, "receipts.list")
		}
		date = &parsed
	}

	rows, err := services.ListReceipts(h.DB, date)
	if err != nil {
		return serviceError(c, err, "receipts.list")
	}
	return utils.SuccessResponse(c, rows, fiber.StatusOK)
}

// Get handles GET /api/receipts/:receiptID
// @Summary Get a receipt
// @Tags Receipts
// @Produce json
// @Param receiptID path int true "Receipt ID"
// @Success 200 {object} models.Receipt
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /receipts/{receiptID} [get]
func (h *ReceiptHandler) Get(c *fiber.Ctx) error {
	receiptID, err := paramUint(c, "receiptID")
	if err != nil {
		return err
	}
	receipt, err := services.GetReceipt(h.DB, receiptID)
	if err != nil {
		return serviceError(c, err, "receipts.get")
	}
	return utils.SuccessResponse(c, receipt, fiber.StatusOK)
}

// Search handles GET /api/receipts/search?term=...
// @Summary Search receipts
// @Description Match the term against client names and exact receipt IDs
// @Tags Receipts
// @Produce json
// @Param term query string false "Search term"
// @Success 200 {array} services.ReceiptSummary
// @Router /receipts/search [get]
func (h *ReceiptHandler) Search(c *fiber.Ctx) error {
	rows, err := services.SearchReceipts(h.DB, c.Query("term"))
	if err != nil {
		return serviceError(c, err, "receipts.search")
	}
	return utils.SuccessResponse(c, rows, fiber.StatusOK)
}

// Create handles POST /api/receipts
// @Summary Create a receipt
// @Description Record a pickup: receipt, metal breakdown, line items, totals increments
// @Tags Receipts
// @Accept json
// @Produce json
// @Param body body services.ReceiptInput true "Receipt"
// @Success 201 {object} models.Receipt
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /receipts [post]
func (h *ReceiptHandler) Create(c *fiber.Ctx) error {
	var in services.ReceiptInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "receipts.create")
	}

	identity := currentIdentity(c)
	receipt, err := services.CreateReceipt(h.DB, in, identity.Username)
	if err != nil {
		return serviceError(c, err, "receipts.create")
	}
	return utils.SuccessResponse(c, receipt, fiber.StatusCreated)
}

type deleteReceiptRequest struct {
	Passcode string `json:"passcode"`
}

// Delete handles DELETE /api/receipts/:receiptID
// @Summary Delete a receipt
// @Description Remove a receipt and reverse its totals; requires the delete passcode
// @Tags Receipts
// @Accept json
// @Produce json
// @Param receiptID path int true "Receipt ID"
// @Param body body deleteReceiptRequest true "Passcode"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /receipts/{receiptID} [delete]
func (h *ReceiptHandler) Delete(c *fiber.Ctx) error {
	receiptID, err := paramUint(c, "receiptID")
	if err != nil {
		return err
	}

	var req deleteReceiptRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "receipts.delete")
	}

	if err := services.DeleteReceipt(h.DB, receiptID, req.Passcode, h.Cfg.DeletePasscode); err != nil {
		return serviceError(c, err, "receipts.delete")
	}
	return utils.MutationSuccessResponse(c, "receipt deleted", 1)
}

// Metals handles GET /api/receipts/:receiptID/metals
// @Summary Metal breakdown of a receipt
// @Tags Receipts
// @Produce json
// @Param receiptID path int true "Receipt ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /receipts/{receiptID}/metals [get]
func (h *ReceiptHandler) Metals(c *fiber.Ctx) error {
	receiptID, err := paramUint(c, "receiptID")
	if err != nil {
		return err
	}
	metals, err := services.ReceiptMetals(h.DB, receiptID)
	if err != nil {
		return serviceError(c, err, "receipts.metals")
	}
	return utils.SuccessResponse(c, metals, fiber.StatusOK)
}

// CustomMetals handles GET /api/receipts/:receiptID/custom-metals
// @Summary Free-form line items of a receipt
// @Tags Receipts
// @Produce json
// @Param receiptID path int true "Receipt ID"
// @Success 200 {array} models.UserDefinedMetal
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /receipts/{receiptID}/custom-metals [get]
func (h *ReceiptHandler) CustomMetals(c *fiber.Ctx) error {
	receiptID, err := paramUint(c, "receiptID")
	if err != nil {
		return err
	}
	rows, err := services.CustomMetals(h.DB, receiptID)
	if err != nil {
		return serviceError(c, err, "receipts.customMetals")
	}
	return utils.SuccessResponse(c, rows, fiber.StatusOK)
}

// Converters handles GET /api/receipts/:receiptID/converters
// @Summary Catalytic converters of a receipt
// @Tags Receipts
// @Produce json
// @Param receiptID path int true "Receipt ID"
// @Success 200 {array} models.CatalyticConverter
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /receipts/{receiptID}/converters [get]
func (h *ReceiptHandler) Converters(c *fiber.Ctx) error {
	receiptID, err := paramUint(c, "receiptID")
	if err != nil {
		return err
	}
	rows, err := services.CatalyticConverters(h.DB, receiptID)
	if err != nil {
		return serviceError(c, err, "receipts.converters")
	}
	return utils.SuccessResponse(c, rows, fiber.StatusOK)
}

type checkNumberRequest struct {
	CheckNumber string `json:"checkNumber"`
}

// SetCheckNumber handles PUT /api/receipts/:receiptID/check-number
// @Summary Resolve a check number
// @Tags Receipts
// @Accept json
// @Produce json
// @Param receiptID path int true "Receipt ID"
// @Param body body checkNumberRequest true "Check number"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /receipts/{receiptID}/check-number [put]
func (h *ReceiptHandler) SetCheckNumber(c *fiber.Ctx) error {
	receiptID, err := paramUint(c, "receiptID")
	if err != nil {
		return err
	}

	var req checkNumberRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "receipts.checkNumber")
	}

	if err := services.SetCheckNumber(h.DB, receiptID, req.CheckNumber); err != nil {
		return serviceError(c, err, "receipts.checkNumber")
	}
	return utils.MutationSuccessResponse(c, "check number updated", 1)
}
