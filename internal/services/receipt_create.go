package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/models"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/schema"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/types"
)

// MetalLine is one weighed metal on an incoming receipt.
type MetalLine struct {
	Weight decimal.Decimal `json:"weight"`
	Price  decimal.Decimal `json:"price"`
}

// UserMetalInput is a free-form line item on an incoming receipt.
type UserMetalInput struct {
	MetalName string          `json:"metalName"`
	Weight    decimal.Decimal `json:"weight"`
	Price     decimal.Decimal `json:"price"`
}

// ConverterInput is an itemized catalytic converter on an incoming receipt.
type ConverterInput struct {
	PartNumber  string          `json:"partNumber"`
	Price       decimal.Decimal `json:"price"`
	PercentFull int             `json:"percentFull"`
}

// ReceiptInput is the request body for creating a receipt. Metals is keyed
// by metal field name and must match the client type's field set exactly at
// the key level; totals are caller supplied.
type ReceiptInput struct {
	ClientID            string                          `json:"clientID"`
	Metals              map[string]MetalLine            `json:"metals"`
	TotalPayout         decimal.Decimal                 `json:"totalPayout"`
	TotalVolume         decimal.Decimal                 `json:"totalVolume"`
	UserDefinedMetals   types.FlexList[UserMetalInput]  `json:"userDefinedMetals"`
	CatalyticConverters types.FlexList[ConverterInput]  `json:"catalyticConverters"`
	CheckNumber         string                          `json:"checkNumber"`
}

// CreateReceipt records a pickup for a client. In a single transaction it
// inserts the receipt row, the type-specific metal breakdown, the free-form
// line items and converters, increments the client's running totals, and
// stamps the client's last pickup date. On any failure the whole receipt is
// rolled back.
func CreateReceipt(db *gorm.DB, in ReceiptInput, createdBy string) (*models.Receipt, error) {
	client, err := GetClient(db, in.ClientID)
	if err != nil {
		return nil, err
	}

	desc := schema.LookupString(client.ClientType)

	// The submitted metals must match the type's field set exactly, in both
	// directions. An unknown key or an omitted declared field means the
	// caller and server disagree on the field set, and recording a partial
	// receipt would corrupt totals.
	for name := range in.Metals {
		if _, ok := desc.Field(name); !ok {
			return nil, NewValidationError("metals", fmt.Sprintf("unknown metal %q for client type %s", name, client.ClientType))
		}
	}
	for _, field := range desc.Fields {
		if _, ok := in.Metals[field.Name]; !ok {
			return nil, NewValidationError("metals", fmt.Sprintf("missing metal %q for client type %s", field.Name, client.ClientType))
		}
	}
	for name, line := range in.Metals {
		if line.Weight.IsNegative() {
			return nil, NewValidationError("metals", fmt.Sprintf("negative weight for %s", name))
		}
		if line.Price.IsNegative() {
			return nil, NewValidationError("metals", fmt.Sprintf("negative price for %s", name))
		}
	}
	for _, um := range in.UserDefinedMetals {
		if um.MetalName == "" {
			return nil, NewValidationError("userDefinedMetals", "metalName must not be empty")
		}
		if um.Weight.IsNegative() || um.Price.IsNegative() {
			return nil, NewValidationError("userDefinedMetals", "weight and price must not be negative")
		}
	}
	if len(in.CatalyticConverters) > 0 && desc.Type != schema.ClientTypeAuto {
		return nil, NewValidationError("catalyticConverters", "only auto clients record converters")
	}
	for _, cc := range in.CatalyticConverters {
		if cc.PartNumber == "" {
			return nil, NewValidationError("catalyticConverters", "partNumber must not be empty")
		}
		if cc.PercentFull < 0 || cc.PercentFull > 100 {
			return nil, NewValidationError("catalyticConverters", "percentFull must be between 0 and 100")
		}
	}
	if in.TotalPayout.IsNegative() || in.TotalVolume.IsNegative() {
		return nil, NewValidationError("totals", "totalPayout and totalVolume must not be negative")
	}

	now := time.Now()
	// Midnight in the server's zone, not UTC: an evening pickup west of
	// Greenwich must not land on the previous day.
	pickupDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	receipt := models.Receipt{
		ClientID:      client.ClientID,
		PaymentMethod: client.PaymentMethod,
		TotalPayout:   in.TotalPayout,
		TotalVolume:   in.TotalVolume,
		PickupDate:    pickupDay,
		PickupTime:    now,
		CreatedBy:     createdBy,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&receipt).Error; err != nil {
			return err
		}

		if desc.HasMetalsTable() {
			metalsRow := map[string]interface{}{"receipt_id": receipt.ReceiptID}
			for _, field := range desc.Fields {
				line := in.Metals[field.Name]
				metalsRow[field.WeightColumn()] = line.Weight
				metalsRow[field.PriceColumn()] = line.Price
			}
			if err := tx.Table(desc.ReceiptMetalsTable).Create(metalsRow).Error; err != nil {
				return err
			}
		}

		if desc.TotalsTable != "" {
			increments := map[string]interface{}{
				"total_payout": gorm.Expr("total_payout + ?", in.TotalPayout),
			}
			for _, field := range desc.Fields {
				line := in.Metals[field.Name]
				if line.Weight.IsZero() {
					continue
				}
				col := field.TotalsColumn()
				increments[col] = gorm.Expr(col+" + ?", line.Weight)
			}
			res := tx.Table(desc.TotalsTable).Where("client_id = ?", client.ClientID).Updates(increments)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected != 1 {
				return fmt.Errorf("totals row missing for client %s", client.ClientID)
			}
		}

		for _, um := range in.UserDefinedMetals {
			row := models.UserDefinedMetal{
				ReceiptID: receipt.ReceiptID,
				MetalName: um.MetalName,
				Weight:    um.Weight,
				Price:     um.Price,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		for _, cc := range in.CatalyticConverters {
			row := models.CatalyticConverter{
				ReceiptID:   receipt.ReceiptID,
				PartNumber:  cc.PartNumber,
				Price:       cc.Price,
				PercentFull: cc.PercentFull,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		if client.PaymentMethod == models.PaymentCheck {
			checkNumber := in.CheckNumber
			if checkNumber == "" {
				checkNumber = models.UnresolvedCheckNumber
			}
			payment := models.CheckPayment{
				ReceiptID:   receipt.ReceiptID,
				CheckNumber: checkNumber,
			}
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Client{}).Where("client_id = ?", client.ClientID).
			Updates(map[string]interface{}{
				"last_pickup_date": receipt.PickupDate,
				"needs_pickup":     false,
				"total_payout":     gorm.Expr("total_payout + ?", in.TotalPayout),
				"total_volume":     gorm.Expr("total_volume + ?", in.TotalVolume),
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return &receipt, nil
}
