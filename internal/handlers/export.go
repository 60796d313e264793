package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/services"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/utils"
)

// ExportHandler handles bookkeeping export routes
type ExportHandler struct {
	DB *gorm.DB
}

// ReceiptsCSV handles GET /api/export/receipts?from=2026-01-01&to=2026-01-31
// @Summary Export receipts as CSV
// @Description Refuses to export while check-paid receipts in range have unresolved check numbers
// @Tags Export
// @Produce text/csv
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {string} string "CSV payload"
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /export/receipts [get]
func (h *ExportHandler) ReceiptsCSV(c *fiber.Ctx) error {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return utils.ErrorResponse(c, "invalid from date, expected YYYY-MM-DD", fiber.StatusBadRequest, "export.receipts")
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return utils.ErrorResponse(c, "invalid to date, expected YYYY-MM-DD", fiber.StatusBadRequest, "export.receipts")
	}
	if to.Before(from) {
		return utils.ErrorResponse(c, "to must not precede from", fiber.StatusBadRequest, "export.receipts")
	}

	payload, err := services.ExportReceiptsCSV(h.DB, from, to)
	if err != nil {
		var unresolved *services.ErrUnresolvedChecks
		if errors.As(err, &unresolved) {
			return utils.ErrorResponse(c, unresolved.Error(), fiber.StatusBadRequest, "export.receipts")
		}
		return serviceError(c, err, "export.receipts")
	}

	filename := fmt.Sprintf("receipts_%s_%s.csv", from.Format("2006-01-02"), to.Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(payload)
}
