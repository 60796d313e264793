package models

import "github.com/shopspring/decimal"

// The ClientTypeTotals tables hold one row per client of the matching type.
// Column names are pinned so they line up with schema.MetalField.TotalsColumn;
// the transaction engine addresses them by name through the registry rather
// than through these structs, which exist for automigration and seeding.

// AutoClientTotals is the running metal totals for an auto client.
type AutoClientTotals struct {
	ClientID                    string          `gorm:"primaryKey;type:char(36);column:client_id" json:"clientID"`
	TotalDrumsRotors            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_drums_rotors" json:"totalDrumsRotors"`
	TotalShortIron              decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_short_iron" json:"totalShortIron"`
	TotalShredSteel             decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_shred_steel" json:"totalShredSteel"`
	TotalAluminumBreakage       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_aluminum_breakage" json:"totalAluminumBreakage"`
	TotalDirtyAluminumRadiators decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_dirty_aluminum_radiators" json:"totalDirtyAluminumRadiators"`
	TotalWiringHarness          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_wiring_harness" json:"totalWiringHarness"`
	TotalACCompressor           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_ac_compressor" json:"totalACCompressor"`
	TotalAlternatorStarter      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_alternator_starter" json:"totalAlternatorStarter"`
	TotalAluminumRims           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_aluminum_rims" json:"totalAluminumRims"`
	TotalChromeRims             decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_chrome_rims" json:"totalChromeRims"`
	TotalBrassCopperRadiator    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_brass_copper_radiator" json:"totalBrassCopperRadiator"`
	TotalPayout                 decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_payout" json:"totalPayout"`
}

// TableName overrides the table name for AutoClientTotals
func (AutoClientTotals) TableName() string {
	return "auto_client_totals"
}

// HVACClientTotals is the running metal totals for an hvac client.
type HVACClientTotals struct {
	ClientID                      string          `gorm:"primaryKey;type:char(36);column:client_id" json:"clientID"`
	TotalShredSteel               decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_shred_steel" json:"totalShredSteel"`
	TotalDirtyAlumCopperRadiators decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_dirty_alum_copper_radiators" json:"totalDirtyAlumCopperRadiators"`
	TotalCleanAluminumRadiators   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_clean_aluminum_radiators" json:"totalCleanAluminumRadiators"`
	TotalCopperTwo                decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_copper_two" json:"totalCopperTwo"`
	TotalCompressors              decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_compressors" json:"totalCompressors"`
	TotalDirtyBrass               decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_dirty_brass" json:"totalDirtyBrass"`
	TotalElectricMotors           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_electric_motors" json:"totalElectricMotors"`
	TotalAluminumBreakage         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_aluminum_breakage" json:"totalAluminumBreakage"`
	TotalPayout                   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_payout" json:"totalPayout"`
}

// TableName overrides the table name for HVACClientTotals
func (HVACClientTotals) TableName() string {
	return "hvac_client_totals"
}

// InsulationClientTotals is the running totals for an insulation client.
type InsulationClientTotals struct {
	ClientID          string          `gorm:"primaryKey;type:char(36);column:client_id" json:"clientID"`
	TotalShredSteel   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_shred_steel" json:"totalShredSteel"`
	TotalLoadsOfTrash decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_loads_of_trash" json:"totalLoadsOfTrash"`
	TotalPayout       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_payout" json:"totalPayout"`
}

// TableName overrides the table name for InsulationClientTotals
func (InsulationClientTotals) TableName() string {
	return "insulation_client_totals"
}
