package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/models"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/schema"
)

// ReceiptSummary is one row of a receipt listing, joined with its client.
type ReceiptSummary struct {
	ReceiptID     uint64          `json:"receiptID"`
	ClientID      string          `json:"clientID"`
	ClientName    string          `json:"clientName"`
	PaymentMethod string          `json:"paymentMethod"`
	TotalPayout   decimal.Decimal `json:"totalPayout"`
	TotalVolume   decimal.Decimal `json:"totalVolume"`
	PickupDate    time.Time       `json:"pickupDate"`
	CreatedBy     string          `json:"createdBy"`
}

// ListReceipts returns receipts newest first, optionally restricted to a
// single pickup day.
func ListReceipts(db *gorm.DB, date *time.Time) ([]ReceiptSummary, error) {
	query := db.Table("receipts AS r").
		Select("r.receipt_id, r.client_id, c.client_name, r.payment_method, r.total_payout, r.total_volume, r.pickup_date, r.created_by").
		Joins("JOIN clients c ON c.client_id = r.client_id").
		Order("r.pickup_date DESC, r.receipt_id DESC")
	if date != nil {
		day := date.Truncate(24 * time.Hour)
		query = query.Where("r.pickup_date >= ? AND r.pickup_date < ?", day, day.Add(24*time.Hour))
	}

	var rows []ReceiptSummary
	err := query.Scan(&rows).Error
	return rows, err
}

// GetReceipt returns a single receipt by ID.
func GetReceipt(db *gorm.DB, receiptID uint64) (*models.Receipt, error) {
	var receipt models.Receipt
	err := db.Where("receipt_id = ?", receiptID).First(&receipt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

// SearchReceipts matches the term against client names and exact receipt
// IDs. An empty term returns all receipts.
func SearchReceipts(db *gorm.DB, term string) ([]ReceiptSummary, error) {
	query := db.Table("receipts AS r").
		Select("r.receipt_id, r.client_id, c.client_name, r.payment_method, r.total_payout, r.total_volume, r.pickup_date, r.created_by").
		Joins("JOIN clients c ON c.client_id = r.client_id").
		Order("r.pickup_date DESC, r.receipt_id DESC")
	if term != "" {
		query = query.Where("c.client_name LIKE ? OR CAST(r.receipt_id AS CHAR(20)) = ?", "%"+term+"%", term)
	}

	var rows []ReceiptSummary
	err := query.Scan(&rows).Error
	return rows, err
}

// ReceiptMetals returns the metal breakdown of a receipt as a metal-name
// keyed map of weights and prices.
func ReceiptMetals(db *gorm.DB, receiptID uint64) (map[string]MetalLine, error) {
	receipt, err := GetReceipt(db, receiptID)
	if err != nil {
		return nil, err
	}

	client, err := GetClient(db, receipt.ClientID)
	if err != nil {
		return nil, err
	}

	desc := schema.LookupString(client.ClientType)
	result := make(map[string]MetalLine)
	if !desc.HasMetalsTable() {
		return result, nil
	}

	row := map[string]interface{}{}
	err = db.Table(desc.ReceiptMetalsTable).Where("receipt_id = ?", receiptID).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, nil
		}
		return nil, err
	}

	for _, field := range desc.Fields {
		result[field.Name] = MetalLine{
			Weight: scanDecimal(row[field.WeightColumn()]),
			Price:  scanDecimal(row[field.PriceColumn()]),
		}
	}

	return result, nil
}

// CustomMetals returns the free-form line items of a receipt.
func CustomMetals(db *gorm.DB, receiptID uint64) ([]models.UserDefinedMetal, error) {
	if _, err := GetReceipt(db, receiptID); err != nil {
		return nil, err
	}
	var rows []models.UserDefinedMetal
	err := db.Where("receipt_id = ?", receiptID).Order("id").Find(&rows).Error
	return rows, err
}

// CatalyticConverters returns the itemized converters of a receipt.
func CatalyticConverters(db *gorm.DB, receiptID uint64) ([]models.CatalyticConverter, error) {
	if _, err := GetReceipt(db, receiptID); err != nil {
		return nil, err
	}
	var rows []models.CatalyticConverter
	err := db.Where("receipt_id = ?", receiptID).Order("id").Find(&rows).Error
	return rows, err
}

// SetCheckNumber resolves the check number on a check-paid receipt.
func SetCheckNumber(db *gorm.DB, receiptID uint64, checkNumber string) error {
	if checkNumber == "" || checkNumber == models.UnresolvedCheckNumber {
		return NewValidationError("checkNumber", "must be a real check number")
	}

	res := db.Model(&models.CheckPayment{}).
		Where("receipt_id = ?", receiptID).
		Update("check_number", checkNumber)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
