package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/models"
)

// ErrUnresolvedChecks blocks a financial export that would contain receipts
// whose check numbers are still the placeholder.
type ErrUnresolvedChecks struct {
	ReceiptIDs []uint64
}

func (e *ErrUnresolvedChecks) Error() string {
	return fmt.Sprintf("%d receipts in range have unresolved check numbers", len(e.ReceiptIDs))
}

// exportRow is the joined projection written to the CSV.
type exportRow struct {
	ReceiptID     uint64
	ClientName    string
	ClientType    string
	PaymentMethod string
	CheckNumber   string
	TotalPayout   decimal.Decimal
	TotalVolume   decimal.Decimal
	PickupDate    time.Time
	CreatedBy     string
}

// ExportReceiptsCSV renders all receipts in the date range (inclusive) as
// CSV for bookkeeping. The export refuses to run while any check-paid
// receipt in the range still carries the placeholder check number, since the
// books would not reconcile against the bank.
func ExportReceiptsCSV(db *gorm.DB, from, to time.Time) ([]byte, error) {
	var unresolved []uint64
	err := db.Table("check_payments AS p").
		Joins("JOIN receipts r ON r.receipt_id = p.receipt_id").
		Where("p.check_number = ?", models.UnresolvedCheckNumber).
		Where("r.pickup_date BETWEEN ? AND ?", from, to).
		Pluck("p.receipt_id", &unresolved).Error
	if err != nil {
		return nil, err
	}
	if len(unresolved) > 0 {
		return nil, &ErrUnresolvedChecks{ReceiptIDs: unresolved}
	}

	var rows []exportRow
	err = db.Table("receipts AS r").
		Select("r.receipt_id, c.client_name, c.client_type, r.payment_method, COALESCE(p.check_number, '') AS check_number, r.total_payout, r.total_volume, r.pickup_date, r.created_by").
		Joins("JOIN clients c ON c.client_id = r.client_id").
		Joins("LEFT JOIN check_payments p ON p.receipt_id = r.receipt_id").
		Where("r.pickup_date BETWEEN ? AND ?", from, to).
		Order("r.pickup_date, r.receipt_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"ReceiptID", "ClientName", "ClientType", "PickupDate", "PaymentMethod", "CheckNumber", "TotalPayout", "TotalVolume", "CreatedBy"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, row := range rows {
		record := []string{
			fmt.Sprintf("%d", row.ReceiptID),
			row.ClientName,
			row.ClientType,
			row.PickupDate.Format("2006-01-02"),
			row.PaymentMethod,
			row.CheckNumber,
			row.TotalPayout.StringFixed(2),
			row.TotalVolume.StringFixed(2),
			row.CreatedBy,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
