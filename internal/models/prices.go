package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AutoPriceSheet is one revision of the price list for auto clients. Price
// changes append a new row; the latest EffectiveDate wins.
type AutoPriceSheet struct {
	SheetID                  uint64          `gorm:"primaryKey;autoIncrement" json:"sheetID"`
	DrumsRotorsPrice         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:drums_rotors_price" json:"drumsRotorsPrice"`
	ShortIronPrice           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:short_iron_price" json:"shortIronPrice"`
	ShredSteelPrice          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:shred_steel_price" json:"shredSteelPrice"`
	AluminumBreakagePrice    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:aluminum_breakage_price" json:"aluminumBreakagePrice"`
	DirtyAluminumRadiatorsPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:dirty_aluminum_radiators_price" json:"dirtyAluminumRadiatorsPrice"`
	WiringHarnessPrice       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:wiring_harness_price" json:"wiringHarnessPrice"`
	ACCompressorPrice        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:ac_compressor_price" json:"acCompressorPrice"`
	AlternatorStarterPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:alternator_starter_price" json:"alternatorStarterPrice"`
	AluminumRimsPrice        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:aluminum_rims_price" json:"aluminumRimsPrice"`
	ChromeRimsPrice          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:chrome_rims_price" json:"chromeRimsPrice"`
	BrassCopperRadiatorPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:brass_copper_radiator_price" json:"brassCopperRadiatorPrice"`
	EffectiveDate            time.Time       `gorm:"not null;index" json:"effectiveDate"`
}

// TableName overrides the table name for AutoPriceSheet
func (AutoPriceSheet) TableName() string {
	return "auto_price_sheets"
}

// HVACPriceSheet is one revision of the price list for hvac clients.
type HVACPriceSheet struct {
	SheetID                     uint64          `gorm:"primaryKey;autoIncrement" json:"sheetID"`
	ShredSteelPrice             decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:shred_steel_price" json:"shredSteelPrice"`
	DirtyAlumCopperRadiatorsPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:dirty_alum_copper_radiators_price" json:"dirtyAlumCopperRadiatorsPrice"`
	CleanAluminumRadiatorsPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:clean_aluminum_radiators_price" json:"cleanAluminumRadiatorsPrice"`
	CopperTwoPrice              decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:copper_two_price" json:"copperTwoPrice"`
	CompressorsPrice            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:compressors_price" json:"compressorsPrice"`
	DirtyBrassPrice             decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:dirty_brass_price" json:"dirtyBrassPrice"`
	ElectricMotorsPrice         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:electric_motors_price" json:"electricMotorsPrice"`
	AluminumBreakagePrice       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:aluminum_breakage_price" json:"aluminumBreakagePrice"`
	EffectiveDate               time.Time       `gorm:"not null;index" json:"effectiveDate"`
}

// TableName overrides the table name for HVACPriceSheet
func (HVACPriceSheet) TableName() string {
	return "hvac_price_sheets"
}
