package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnresolvedCheckNumber is the sentinel recorded when a receipt is paid by
// check but the check number is not yet known. Receipts carrying it block
// financial export until resolved.
const UnresolvedCheckNumber = "0000"

// Receipt records one pickup transaction for a client.
type Receipt struct {
	ReceiptID     uint64          `gorm:"primaryKey;autoIncrement" json:"receiptID"`
	ClientID      string          `gorm:"type:char(36);not null;index" json:"clientID"`
	PaymentMethod string          `gorm:"size:32;not null" json:"paymentMethod"`
	TotalPayout   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"totalPayout"`
	TotalVolume   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"totalVolume"`
	PickupDate    time.Time       `gorm:"not null;index" json:"pickupDate"`
	PickupTime    time.Time       `gorm:"not null" json:"pickupTime"`
	CreatedBy     string          `gorm:"size:255;not null" json:"createdBy"`
	CreatedAt     time.Time       `json:"-"`
}

// TableName overrides the table name for Receipt
func (Receipt) TableName() string {
	return "receipts"
}

// AutoReceiptMetals is the per-receipt metal breakdown for an auto client.
type AutoReceiptMetals struct {
	ReceiptID                   uint64          `gorm:"primaryKey;column:receipt_id" json:"receiptID"`
	DrumsRotorsWeight           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:drums_rotors_weight" json:"drumsRotorsWeight"`
	DrumsRotorsPrice            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:drums_rotors_price" json:"drumsRotorsPrice"`
	ShortIronWeight             decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:short_iron_weight" json:"shortIronWeight"`
	ShortIronPrice              decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:short_iron_price" json:"shortIronPrice"`
	ShredSteelWeight            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:shred_steel_weight" json:"shredSteelWeight"`
	ShredSteelPrice             decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:shred_steel_price" json:"shredSteelPrice"`
	AluminumBreakageWeight      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:aluminum_breakage_weight" json:"aluminumBreakageWeight"`
	AluminumBreakagePrice       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:aluminum_breakage_price" json:"aluminumBreakagePrice"`
	DirtyAluminumRadiatorsWeight decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:dirty_aluminum_radiators_weight" json:"dirtyAluminumRadiatorsWeight"`
	DirtyAluminumRadiatorsPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:dirty_aluminum_radiators_price" json:"dirtyAluminumRadiatorsPrice"`
	WiringHarnessWeight         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:wiring_harness_weight" json:"wiringHarnessWeight"`
	WiringHarnessPrice          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:wiring_harness_price" json:"wiringHarnessPrice"`
	ACCompressorWeight          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:ac_compressor_weight" json:"acCompressorWeight"`
	ACCompressorPrice           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:ac_compressor_price" json:"acCompressorPrice"`
	AlternatorStarterWeight     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:alternator_starter_weight" json:"alternatorStarterWeight"`
	AlternatorStarterPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:alternator_starter_price" json:"alternatorStarterPrice"`
	AluminumRimsWeight          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:aluminum_rims_weight" json:"aluminumRimsWeight"`
	AluminumRimsPrice           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:aluminum_rims_price" json:"aluminumRimsPrice"`
	ChromeRimsWeight            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:chrome_rims_weight" json:"chromeRimsWeight"`
	ChromeRimsPrice             decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:chrome_rims_price" json:"chromeRimsPrice"`
	BrassCopperRadiatorWeight   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:brass_copper_radiator_weight" json:"brassCopperRadiatorWeight"`
	BrassCopperRadiatorPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:brass_copper_radiator_price" json:"brassCopperRadiatorPrice"`
}

// TableName overrides the table name for AutoReceiptMetals
func (AutoReceiptMetals) TableName() string {
	return "auto_receipt_metals"
}

// HVACReceiptMetals is the per-receipt metal breakdown for an hvac client.
type HVACReceiptMetals struct {
	ReceiptID                     uint64          `gorm:"primaryKey;column:receipt_id" json:"receiptID"`
	ShredSteelWeight              decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:shred_steel_weight" json:"shredSteelWeight"`
	ShredSteelPrice               decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:shred_steel_price" json:"shredSteelPrice"`
	DirtyAlumCopperRadiatorsWeight decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:dirty_alum_copper_radiators_weight" json:"dirtyAlumCopperRadiatorsWeight"`
	DirtyAlumCopperRadiatorsPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:dirty_alum_copper_radiators_price" json:"dirtyAlumCopperRadiatorsPrice"`
	CleanAluminumRadiatorsWeight  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:clean_aluminum_radiators_weight" json:"cleanAluminumRadiatorsWeight"`
	CleanAluminumRadiatorsPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:clean_aluminum_radiators_price" json:"cleanAluminumRadiatorsPrice"`
	CopperTwoWeight               decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:copper_two_weight" json:"copperTwoWeight"`
	CopperTwoPrice                decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:copper_two_price" json:"copperTwoPrice"`
	CompressorsWeight             decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:compressors_weight" json:"compressorsWeight"`
	CompressorsPrice              decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:compressors_price" json:"compressorsPrice"`
	DirtyBrassWeight              decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:dirty_brass_weight" json:"dirtyBrassWeight"`
	DirtyBrassPrice               decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:dirty_brass_price" json:"dirtyBrassPrice"`
	ElectricMotorsWeight          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:electric_motors_weight" json:"electricMotorsWeight"`
	ElectricMotorsPrice           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:electric_motors_price" json:"electricMotorsPrice"`
	AluminumBreakageWeight        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:aluminum_breakage_weight" json:"aluminumBreakageWeight"`
	AluminumBreakagePrice         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:aluminum_breakage_price" json:"aluminumBreakagePrice"`
}

// TableName overrides the table name for HVACReceiptMetals
func (HVACReceiptMetals) TableName() string {
	return "hvac_receipt_metals"
}

// InsulationReceiptMetals is the per-receipt breakdown for an insulation client.
type InsulationReceiptMetals struct {
	ReceiptID         uint64          `gorm:"primaryKey;column:receipt_id" json:"receiptID"`
	ShredSteelWeight  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:shred_steel_weight" json:"shredSteelWeight"`
	ShredSteelPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:shred_steel_price" json:"shredSteelPrice"`
	LoadsOfTrashWeight decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:loads_of_trash_weight" json:"loadsOfTrashWeight"`
	LoadsOfTrashPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:loads_of_trash_price" json:"loadsOfTrashPrice"`
}

// TableName overrides the table name for InsulationReceiptMetals
func (InsulationReceiptMetals) TableName() string {
	return "insulation_receipt_metals"
}

// UserDefinedMetal is a free-form line item outside the type schema. It is
// the only line-item mechanism for clients of type "other".
type UserDefinedMetal struct {
	ID        uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ReceiptID uint64          `gorm:"not null;index" json:"receiptID"`
	MetalName string          `gorm:"size:255;not null" json:"metalName"`
	Weight    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"weight"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
}

// TableName overrides the table name for UserDefinedMetal
func (UserDefinedMetal) TableName() string {
	return "user_defined_metals"
}

// CatalyticConverter is an itemized converter on an auto receipt.
type CatalyticConverter struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ReceiptID   uint64          `gorm:"not null;index" json:"receiptID"`
	PartNumber  string          `gorm:"size:255;not null" json:"partNumber"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	PercentFull int             `gorm:"not null;default:0" json:"percentFull"`
}

// TableName overrides the table name for CatalyticConverter
func (CatalyticConverter) TableName() string {
	return "catalytic_converters"
}

// CheckPayment records the check number for a receipt paid by check.
type CheckPayment struct {
	ReceiptID   uint64 `gorm:"primaryKey;column:receipt_id" json:"receiptID"`
	CheckNumber string `gorm:"size:32;not null" json:"checkNumber"`
}

// TableName overrides the table name for CheckPayment
func (CheckPayment) TableName() string {
	return "check_payments"
}

// Unresolved reports whether the check number is still the placeholder.
func (p CheckPayment) Unresolved() bool {
	return p.CheckNumber == UnresolvedCheckNumber
}
