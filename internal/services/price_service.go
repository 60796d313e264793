package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/schema"
)

// sharedPriceColumn is priced on both the auto and hvac sheets and is kept
// in sync across them: shred steel is the same commodity regardless of which
// kind of client it came from.
const sharedPriceColumn = "shred_steel_price"

// GetPrices returns the latest effective price sheet for a client type as a
// metal-name keyed map.
func GetPrices(db *gorm.DB, clientType schema.ClientType) (map[string]decimal.Decimal, error) {
	desc, ok := schema.Registry[clientType]
	if !ok || desc.PriceSheetTable == "" {
		return nil, schema.ErrUnsupportedClientType
	}

	row := map[string]interface{}{}
	err := db.Table(desc.PriceSheetTable).
		Order("effective_date DESC, sheet_id DESC").
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	result := make(map[string]decimal.Decimal, len(desc.Fields))
	for _, field := range desc.Fields {
		result[field.Name] = scanDecimal(row[field.SheetColumn()])
	}
	return result, nil
}

// SetPrices appends a new price sheet revision for a client type. Every
// metal of the type must be priced. When the shared shred steel price
// changes, the other type's current sheet is synchronized in the same
// transaction.
func SetPrices(db *gorm.DB, clientType schema.ClientType, prices map[string]decimal.Decimal) error {
	desc, ok := schema.Registry[clientType]
	if !ok || desc.PriceSheetTable == "" {
		return schema.ErrUnsupportedClientType
	}

	for name := range prices {
		if _, ok := desc.Field(name); !ok {
			return NewValidationError("prices", fmt.Sprintf("unknown metal %q for client type %s", name, clientType))
		}
	}
	for _, field := range desc.Fields {
		price, ok := prices[field.Name]
		if !ok {
			return NewValidationError("prices", fmt.Sprintf("missing price for %s", field.Name))
		}
		if price.IsNegative() {
			return NewValidationError("prices", fmt.Sprintf("negative price for %s", field.Name))
		}
	}

	row := map[string]interface{}{"effective_date": time.Now()}
	var sharedPrice decimal.Decimal
	sharedChanged := false
	for _, field := range desc.Fields {
		col := field.SheetColumn()
		row[col] = prices[field.Name]
		if col == sharedPriceColumn {
			sharedPrice = prices[field.Name]
			sharedChanged = true
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(desc.PriceSheetTable).Create(row).Error; err != nil {
			return err
		}

		if !sharedChanged {
			return nil
		}

		for _, other := range schema.PricedTypes() {
			if other == clientType {
				continue
			}
			otherDesc := schema.Registry[other]

			// Sync the shared price onto the other type's current sheet.
			// The other sheet may not exist yet on a fresh database.
			latest := map[string]interface{}{}
			err := tx.Table(otherDesc.PriceSheetTable).
				Order("effective_date DESC, sheet_id DESC").
				Take(&latest).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}

			err = tx.Table(otherDesc.PriceSheetTable).
				Where("sheet_id = ?", latest["sheet_id"]).
				Update(sharedPriceColumn, sharedPrice).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
