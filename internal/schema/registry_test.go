package schema

import (
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in      string
		want    ClientType
		wantErr bool
	}{
		{"auto", ClientTypeAuto, false},
		{"Auto", ClientTypeAuto, false},
		{"HVAC", ClientTypeHVAC, false},
		{"insulation", ClientTypeInsulation, false},
		{"other", ClientTypeOther, false},
		{"", "", true},
		{"scrap", "", true},
	}

	for _, tc := range cases {
		got, err := Parse(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRegistryFieldCounts(t *testing.T) {
	cases := []struct {
		clientType ClientType
		fields     int
	}{
		{ClientTypeAuto, 11},
		{ClientTypeHVAC, 8},
		{ClientTypeInsulation, 2},
		{ClientTypeOther, 0},
	}

	for _, tc := range cases {
		desc := Lookup(tc.clientType)
		if len(desc.Fields) != tc.fields {
			t.Errorf("%s: expected %d fields, got %d", tc.clientType, tc.fields, len(desc.Fields))
		}
	}
}

func TestColumnDerivation(t *testing.T) {
	desc := Lookup(ClientTypeAuto)
	field, ok := desc.Field("ACCompressor")
	if !ok {
		t.Fatal("ACCompressor not found in auto field set")
	}

	if got := field.WeightColumn(); got != "ac_compressor_weight" {
		t.Errorf("WeightColumn = %q", got)
	}
	if got := field.PriceColumn(); got != "ac_compressor_price" {
		t.Errorf("PriceColumn = %q", got)
	}
	if got := field.TotalsColumn(); got != "total_ac_compressor" {
		t.Errorf("TotalsColumn = %q", got)
	}
}

func TestOtherHasNoTables(t *testing.T) {
	desc := Lookup(ClientTypeOther)
	if desc.HasMetalsTable() {
		t.Error("other clients must not have a receipt metals table")
	}
	if desc.TotalsTable != "" {
		t.Errorf("other clients must not have a totals table, got %q", desc.TotalsTable)
	}
	if desc.PriceSheetTable != "" {
		t.Errorf("other clients must not have a price sheet, got %q", desc.PriceSheetTable)
	}
}

func TestInsulationIsNotPriced(t *testing.T) {
	for _, clientType := range PricedTypes() {
		if clientType == ClientTypeInsulation || clientType == ClientTypeOther {
			t.Errorf("%s must not be priced", clientType)
		}
	}
	if Lookup(ClientTypeInsulation).PriceSheetTable != "" {
		t.Error("insulation clients have no price sheet")
	}
}

func TestSharedShredSteelColumns(t *testing.T) {
	// Shred steel is priced on both sheets under the same column name so
	// the cross-sheet sync can address it uniformly.
	for _, clientType := range PricedTypes() {
		desc := Lookup(clientType)
		field, ok := desc.Field("ShredSteel")
		if !ok {
			t.Fatalf("%s: ShredSteel missing", clientType)
		}
		if got := field.SheetColumn(); got != "shred_steel_price" {
			t.Errorf("%s: SheetColumn = %q", clientType, got)
		}
	}
}
