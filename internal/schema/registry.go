// Package schema is the single source of truth for the client-type
// polymorphism in the data model: which named metal fields a client type
// carries, and which tables hold its running totals, per-receipt weights,
// and price sheet. Both the receipt creation and reversal transactions
// consult this registry so the two stay symmetric.
package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ClientType is the closed set of supported client categories. Raw strings
// from the wire must go through Parse before reaching any service.
type ClientType string

const (
	ClientTypeAuto       ClientType = "auto"
	ClientTypeHVAC       ClientType = "hvac"
	ClientTypeInsulation ClientType = "insulation"
	ClientTypeOther      ClientType = "other"
)

// ErrUnsupportedClientType is returned for any value outside the closed set.
var ErrUnsupportedClientType = errors.New("unsupported client type")

// Parse normalizes and validates a raw client type string.
func Parse(s string) (ClientType, error) {
	switch ClientType(strings.ToLower(strings.TrimSpace(s))) {
	case ClientTypeAuto:
		return ClientTypeAuto, nil
	case ClientTypeHVAC:
		return ClientTypeHVAC, nil
	case ClientTypeInsulation:
		return ClientTypeInsulation, nil
	case ClientTypeOther:
		return ClientTypeOther, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedClientType, s)
}

// MetalField is one named metal (or fee) slot in a client type's schema.
// Name is the wire/JSON key; Column is the snake_case base used to derive
// the concrete column names in the totals, receipt-metals, and price tables.
type MetalField struct {
	Name   string
	Column string
}

// TotalsColumn is the running-total column in the ClientTypeTotals table.
func (f MetalField) TotalsColumn() string { return "total_" + f.Column }

// WeightColumn is the per-receipt weight column in the ReceiptMetals table.
func (f MetalField) WeightColumn() string { return f.Column + "_weight" }

// PriceColumn is the per-receipt price column in the ReceiptMetals table.
func (f MetalField) PriceColumn() string { return f.Column + "_price" }

// SheetColumn is the current-price column in the type's price sheet.
func (f MetalField) SheetColumn() string { return f.Column + "_price" }

// Descriptor bundles everything type-specific the transaction engine needs.
// For Other all slices/tables are empty: every line item is user-defined.
type Descriptor struct {
	Type               ClientType
	Fields             []MetalField
	TotalsTable        string
	ReceiptMetalsTable string
	PriceSheetTable    string
}

// HasMetalsTable reports whether receipts of this type carry a
// type-specific metals row.
func (d Descriptor) HasMetalsTable() bool { return d.ReceiptMetalsTable != "" }

// Field looks up a field by wire name.
func (d Descriptor) Field(name string) (MetalField, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return MetalField{}, false
}

var autoFields = []MetalField{
	{Name: "DrumsRotors", Column: "drums_rotors"},
	{Name: "ShortIron", Column: "short_iron"},
	{Name: "ShredSteel", Column: "shred_steel"},
	{Name: "AluminumBreakage", Column: "aluminum_breakage"},
	{Name: "DirtyAluminumRadiators", Column: "dirty_aluminum_radiators"},
	{Name: "WiringHarness", Column: "wiring_harness"},
	{Name: "ACCompressor", Column: "ac_compressor"},
	{Name: "AlternatorStarter", Column: "alternator_starter"},
	{Name: "AluminumRims", Column: "aluminum_rims"},
	{Name: "ChromeRims", Column: "chrome_rims"},
	{Name: "BrassCopperRadiator", Column: "brass_copper_radiator"},
}

var hvacFields = []MetalField{
	{Name: "ShredSteel", Column: "shred_steel"},
	{Name: "DirtyAlumCopperRadiators", Column: "dirty_alum_copper_radiators"},
	{Name: "CleanAluminumRadiators", Column: "clean_aluminum_radiators"},
	{Name: "CopperTwo", Column: "copper_two"},
	{Name: "Compressors", Column: "compressors"},
	{Name: "DirtyBrass", Column: "dirty_brass"},
	{Name: "ElectricMotors", Column: "electric_motors"},
	{Name: "AluminumBreakage", Column: "aluminum_breakage"},
}

var insulationFields = []MetalField{
	{Name: "ShredSteel", Column: "shred_steel"},
	{Name: "LoadsOfTrash", Column: "loads_of_trash"},
}

// Registry maps each supported client type to its Descriptor. Services may
// index it directly after the type has gone through Parse.
var Registry = map[ClientType]Descriptor{
	ClientTypeAuto: {
		Type:               ClientTypeAuto,
		Fields:             autoFields,
		TotalsTable:        "auto_client_totals",
		ReceiptMetalsTable: "auto_receipt_metals",
		PriceSheetTable:    "auto_price_sheets",
	},
	ClientTypeHVAC: {
		Type:               ClientTypeHVAC,
		Fields:             hvacFields,
		TotalsTable:        "hvac_client_totals",
		ReceiptMetalsTable: "hvac_receipt_metals",
		PriceSheetTable:    "hvac_price_sheets",
	},
	ClientTypeInsulation: {
		Type:               ClientTypeInsulation,
		Fields:             insulationFields,
		TotalsTable:        "insulation_client_totals",
		ReceiptMetalsTable: "insulation_receipt_metals",
	},
	ClientTypeOther: {
		Type: ClientTypeOther,
	},
}

// Lookup returns the Descriptor for an already-validated client type. An
// unknown type yields the zero Descriptor, which has no tables and no fields.
func Lookup(t ClientType) Descriptor {
	return Registry[t]
}

// LookupString is Lookup for type strings read back from the database,
// which only ever hold values that passed Parse on the way in.
func LookupString(s string) Descriptor {
	return Registry[ClientType(strings.ToLower(strings.TrimSpace(s)))]
}

// PricedTypes lists the client types that carry a price sheet.
func PricedTypes() []ClientType {
	return []ClientType{ClientTypeAuto, ClientTypeHVAC}
}
