package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/models"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/schema"
)

// DeleteReceipt removes a receipt and reverses its effect on the client's
// running totals. The caller must present the configured delete passcode.
// Reversal subtracts the receipt's recorded weights from the totals, flooring
// each metal at zero; a floor that actually clips means the totals had
// drifted from the receipt history and is logged for follow-up.
func DeleteReceipt(db *gorm.DB, receiptID uint64, passcode, deletePasscode string) error {
	if deletePasscode == "" || passcode != deletePasscode {
		return ErrBadPasscode
	}

	var receipt models.Receipt
	err := db.Where("receipt_id = ?", receiptID).First(&receipt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	client, err := GetClient(db, receipt.ClientID)
	if err != nil {
		return err
	}
	desc := schema.LookupString(client.ClientType)

	return db.Transaction(func(tx *gorm.DB) error {
		if desc.TotalsTable != "" {
			if err := reverseTotals(tx, desc, receipt); err != nil {
				return err
			}
		}

		if desc.HasMetalsTable() {
			if err := tx.Exec("DELETE FROM "+desc.ReceiptMetalsTable+" WHERE receipt_id = ?", receipt.ReceiptID).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("receipt_id = ?", receipt.ReceiptID).Delete(&models.UserDefinedMetal{}).Error; err != nil {
			return err
		}
		if err := tx.Where("receipt_id = ?", receipt.ReceiptID).Delete(&models.CatalyticConverter{}).Error; err != nil {
			return err
		}
		if err := tx.Where("receipt_id = ?", receipt.ReceiptID).Delete(&models.CheckPayment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Receipt{}, receipt.ReceiptID).Error; err != nil {
			return err
		}

		// Reverse the client-level aggregates, floored at zero like the
		// per-metal totals.
		newPayout := floorZero(client.TotalPayout.Sub(receipt.TotalPayout), "client total_payout", receipt.ReceiptID)
		newVolume := floorZero(client.TotalVolume.Sub(receipt.TotalVolume), "client total_volume", receipt.ReceiptID)
		return tx.Model(&models.Client{}).Where("client_id = ?", client.ClientID).
			Updates(map[string]interface{}{
				"total_payout": newPayout,
				"total_volume": newVolume,
			}).Error
	})
}

// reverseTotals subtracts the receipt's metal weights and payout from the
// client's totals row inside the caller's transaction.
func reverseTotals(tx *gorm.DB, desc schema.Descriptor, receipt models.Receipt) error {
	metals := map[string]interface{}{}
	if desc.HasMetalsTable() {
		err := tx.Table(desc.ReceiptMetalsTable).Where("receipt_id = ?", receipt.ReceiptID).Take(&metals).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	totals := map[string]interface{}{}
	err := tx.Table(desc.TotalsTable).Where("client_id = ?", receipt.ClientID).Take(&totals).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("totals row missing for client %s", receipt.ClientID)
		}
		return err
	}

	updates := map[string]interface{}{
		"total_payout": floorZero(
			scanDecimal(totals["total_payout"]).Sub(receipt.TotalPayout),
			"total_payout", receipt.ReceiptID),
	}
	for _, field := range desc.Fields {
		weight := scanDecimal(metals[field.WeightColumn()])
		if weight.IsZero() {
			continue
		}
		col := field.TotalsColumn()
		updates[col] = floorZero(scanDecimal(totals[col]).Sub(weight), col, receipt.ReceiptID)
	}

	res := tx.Table(desc.TotalsTable).Where("client_id = ?", receipt.ClientID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return fmt.Errorf("totals row missing for client %s", receipt.ClientID)
	}
	return nil
}

// floorZero clamps a reversed total at zero and logs when the clamp fires.
func floorZero(v decimal.Decimal, column string, receiptID uint64) decimal.Decimal {
	if v.IsNegative() {
		log.Printf("TotalsDriftWarning: reversing receipt %d drove %s to %s, clamping to 0", receiptID, column, v.String())
		return decimal.Zero
	}
	return v
}
