package services_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/models"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/schema"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/services"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/testutil"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/types"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// metalsFor gives every declared metal of the client type a zero line, then
// applies the overrides. Receipts must submit the full field set.
func metalsFor(clientType schema.ClientType, overrides map[string]services.MetalLine) map[string]services.MetalLine {
	metals := map[string]services.MetalLine{}
	for _, field := range schema.Lookup(clientType).Fields {
		metals[field.Name] = services.MetalLine{}
	}
	for name, line := range overrides {
		metals[name] = line
	}
	return metals
}

func TestCreateReceiptAutoClient(t *testing.T) {
	db := testutil.OpenDB(t)
	client := testutil.SeedClient(t, db, schema.ClientTypeAuto, models.PaymentCash)

	in := services.ReceiptInput{
		ClientID: client.ClientID,
		Metals: metalsFor(schema.ClientTypeAuto, map[string]services.MetalLine{
			"ShredSteel":  {Weight: dec("1200.50"), Price: dec("0.08")},
			"DrumsRotors": {Weight: dec("300"), Price: dec("0.10")},
		}),
		TotalPayout: dec("126.04"),
		TotalVolume: dec("1500.50"),
	}

	receipt, err := services.CreateReceipt(db, in, "tester")
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}
	if receipt.ReceiptID == 0 {
		t.Fatal("expected a generated receipt ID")
	}
	if receipt.PaymentMethod != models.PaymentCash {
		t.Errorf("payment method %q, want %q", receipt.PaymentMethod, models.PaymentCash)
	}

	// Running totals picked up the weights.
	totals, err := services.ClientTotals(db, client.ClientID)
	if err != nil {
		t.Fatalf("ClientTotals failed: %v", err)
	}
	if !totals["ShredSteel"].Equal(dec("1200.50")) {
		t.Errorf("ShredSteel total = %s, want 1200.50", totals["ShredSteel"])
	}
	if !totals["DrumsRotors"].Equal(dec("300")) {
		t.Errorf("DrumsRotors total = %s, want 300", totals["DrumsRotors"])
	}
	if !totals["TotalPayout"].Equal(dec("126.04")) {
		t.Errorf("TotalPayout = %s, want 126.04", totals["TotalPayout"])
	}

	// Client row was stamped.
	updated, err := services.GetClient(db, client.ClientID)
	if err != nil {
		t.Fatalf("GetClient failed: %v", err)
	}
	if updated.LastPickupDate == nil {
		t.Error("expected LastPickupDate to be set")
	}
	if updated.NeedsPickup {
		t.Error("expected NeedsPickup to be cleared")
	}
	if !updated.TotalPayout.Equal(dec("126.04")) {
		t.Errorf("client TotalPayout = %s, want 126.04", updated.TotalPayout)
	}
	if !updated.TotalVolume.Equal(dec("1500.50")) {
		t.Errorf("client TotalVolume = %s, want 1500.50", updated.TotalVolume)
	}

	// The metals breakdown is readable back.
	metals, err := services.ReceiptMetals(db, receipt.ReceiptID)
	if err != nil {
		t.Fatalf("ReceiptMetals failed: %v", err)
	}
	if !metals["ShredSteel"].Weight.Equal(dec("1200.50")) {
		t.Errorf("ShredSteel weight = %s", metals["ShredSteel"].Weight)
	}
	if !metals["DrumsRotors"].Price.Equal(dec("0.10")) {
		t.Errorf("DrumsRotors price = %s", metals["DrumsRotors"].Price)
	}
}

func TestCreateReceiptRejectsUnknownMetal(t *testing.T) {
	db := testutil.OpenDB(t)
	client := testutil.SeedClient(t, db, schema.ClientTypeHVAC, models.PaymentCash)

	metals := metalsFor(schema.ClientTypeHVAC, nil)
	metals["DrumsRotors"] = services.MetalLine{Weight: dec("10"), Price: dec("0.10")} // auto-only metal
	in := services.ReceiptInput{
		ClientID: client.ClientID,
		Metals:   metals,
	}

	_, err := services.CreateReceipt(db, in, "tester")
	var validation *services.ValidationError
	if err == nil {
		t.Fatal("expected validation error for unknown metal")
	}
	if !strings.Contains(err.Error(), "DrumsRotors") {
		t.Errorf("error should name the offending metal: %v", err)
	}
	if !errors.As(err, &validation) {
		t.Errorf("expected ValidationError, got %T", err)
	}

	// Nothing was written.
	var count int64
	db.Model(&models.Receipt{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no receipts, found %d", count)
	}
}

func TestCreateReceiptRequiresFullFieldSet(t *testing.T) {
	db := testutil.OpenDB(t)
	client := testutil.SeedClient(t, db, schema.ClientTypeAuto, models.PaymentCash)

	// Every declared metal must appear, weighed or not. One entry out of
	// eleven is a field-set disagreement, not a light load.
	in := services.ReceiptInput{
		ClientID: client.ClientID,
		Metals: map[string]services.MetalLine{
			"ShredSteel": {Weight: dec("100"), Price: dec("0.08")},
		},
		TotalPayout: dec("8.00"),
		TotalVolume: dec("100"),
	}

	_, err := services.CreateReceipt(db, in, "tester")
	if err == nil {
		t.Fatal("expected validation error for omitted declared metals")
	}
	var validation *services.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "missing metal") {
		t.Errorf("error should report the omitted metal: %v", err)
	}

	var count int64
	db.Model(&models.Receipt{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no receipts, found %d", count)
	}
}

func TestCreateReceiptUnknownClient(t *testing.T) {
	db := testutil.OpenDB(t)

	_, err := services.CreateReceipt(db, services.ReceiptInput{ClientID: "nope"}, "tester")
	if err != services.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateReceiptOtherClientUsesCustomMetals(t *testing.T) {
	db := testutil.OpenDB(t)
	client := testutil.SeedClient(t, db, schema.ClientTypeOther, models.PaymentCheck)

	in := services.ReceiptInput{
		ClientID: client.ClientID,
		UserDefinedMetals: types.FlexList[services.UserMetalInput]{
			{MetalName: "Lead Scrap", Weight: dec("55"), Price: dec("0.45")},
		},
		TotalPayout: dec("24.75"),
		TotalVolume: dec("55"),
	}

	receipt, err := services.CreateReceipt(db, in, "tester")
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}

	custom, err := services.CustomMetals(db, receipt.ReceiptID)
	if err != nil {
		t.Fatalf("CustomMetals failed: %v", err)
	}
	if len(custom) != 1 || custom[0].MetalName != "Lead Scrap" {
		t.Fatalf("unexpected custom metals: %+v", custom)
	}

	// Check-paid receipt with no number gets the placeholder.
	var payment models.CheckPayment
	if err := db.Where("receipt_id = ?", receipt.ReceiptID).First(&payment).Error; err != nil {
		t.Fatalf("check payment not recorded: %v", err)
	}
	if !payment.Unresolved() {
		t.Errorf("check number = %q, want placeholder", payment.CheckNumber)
	}
}

func TestCreateReceiptConvertersOnlyForAuto(t *testing.T) {
	db := testutil.OpenDB(t)
	client := testutil.SeedClient(t, db, schema.ClientTypeInsulation, models.PaymentCash)

	in := services.ReceiptInput{
		ClientID: client.ClientID,
		CatalyticConverters: types.FlexList[services.ConverterInput]{
			{PartNumber: "CAT-100", Price: dec("80"), PercentFull: 90},
		},
	}

	if _, err := services.CreateReceipt(db, in, "tester"); err == nil {
		t.Fatal("expected rejection of converters on a non-auto client")
	}
}

func TestReceiptPickupDateIsLocalMidnight(t *testing.T) {
	db := testutil.OpenDB(t)
	client := testutil.SeedClient(t, db, schema.ClientTypeAuto, models.PaymentCash)

	receipt, err := services.CreateReceipt(db, services.ReceiptInput{
		ClientID:    client.ClientID,
		Metals:      metalsFor(schema.ClientTypeAuto, nil),
		TotalPayout: dec("1.00"),
	}, "tester")
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}

	// Midnight of the server's day, not UTC's: an evening pickup west of
	// Greenwich belongs to the local calendar day.
	now := time.Now()
	want := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !receipt.PickupDate.Equal(want) {
		t.Errorf("PickupDate = %v, want local midnight %v", receipt.PickupDate, want)
	}
}

func TestCreateReceiptRollsBackOnTotalsFailure(t *testing.T) {
	db := testutil.OpenDB(t)
	client := testutil.SeedClient(t, db, schema.ClientTypeAuto, models.PaymentCheck)

	// Losing the totals row makes the increment step inside the transaction
	// fail after the receipt and metals rows were written.
	if err := db.Exec("DELETE FROM auto_client_totals WHERE client_id = ?", client.ClientID).Error; err != nil {
		t.Fatalf("failed to drop totals row: %v", err)
	}

	_, err := services.CreateReceipt(db, services.ReceiptInput{
		ClientID: client.ClientID,
		Metals: metalsFor(schema.ClientTypeAuto, map[string]services.MetalLine{
			"ShredSteel": {Weight: dec("100"), Price: dec("0.08")},
		}),
		UserDefinedMetals: types.FlexList[services.UserMetalInput]{
			{MetalName: "Lead Scrap", Weight: dec("5"), Price: dec("0.45")},
		},
		CatalyticConverters: types.FlexList[services.ConverterInput]{
			{PartNumber: "CAT-100", Price: dec("80"), PercentFull: 90},
		},
		TotalPayout: dec("90.25"),
		TotalVolume: dec("105"),
	}, "tester")
	if err == nil {
		t.Fatal("expected the creation transaction to fail")
	}

	// The rollback left nothing behind in any table the transaction touches.
	for _, table := range []string{
		"receipts",
		"auto_receipt_metals",
		"user_defined_metals",
		"catalytic_converters",
		"check_payments",
	} {
		var count int64
		db.Table(table).Count(&count)
		if count != 0 {
			t.Errorf("%s: expected 0 rows after rollback, found %d", table, count)
		}
	}

	updated, err := services.GetClient(db, client.ClientID)
	if err != nil {
		t.Fatalf("GetClient failed: %v", err)
	}
	if !updated.TotalPayout.Equal(decimal.Zero) || !updated.TotalVolume.Equal(decimal.Zero) {
		t.Errorf("client aggregates changed: payout=%s volume=%s", updated.TotalPayout, updated.TotalVolume)
	}
	if updated.LastPickupDate != nil {
		t.Error("LastPickupDate must stay unset after rollback")
	}
}

func TestDeleteReceiptReversesTotals(t *testing.T) {
	db := testutil.OpenDB(t)
	client := testutil.SeedClient(t, db, schema.ClientTypeAuto, models.PaymentCash)

	const passcode = "shred-it"

	first, err := services.CreateReceipt(db, services.ReceiptInput{
		ClientID: client.ClientID,
		Metals: metalsFor(schema.ClientTypeAuto, map[string]services.MetalLine{
			"ShredSteel": {Weight: dec("100"), Price: dec("0.08")},
		}),
		TotalPayout: dec("8.00"),
		TotalVolume: dec("100"),
	}, "tester")
	if err != nil {
		t.Fatalf("first receipt: %v", err)
	}

	_, err = services.CreateReceipt(db, services.ReceiptInput{
		ClientID: client.ClientID,
		Metals: metalsFor(schema.ClientTypeAuto, map[string]services.MetalLine{
			"ShredSteel": {Weight: dec("50"), Price: dec("0.08")},
		}),
		TotalPayout: dec("4.00"),
		TotalVolume: dec("50"),
	}, "tester")
	if err != nil {
		t.Fatalf("second receipt: %v", err)
	}

	if err := services.DeleteReceipt(db, first.ReceiptID, passcode, passcode); err != nil {
		t.Fatalf("DeleteReceipt failed: %v", err)
	}

	totals, err := services.ClientTotals(db, client.ClientID)
	if err != nil {
		t.Fatalf("ClientTotals failed: %v", err)
	}
	if !totals["ShredSteel"].Equal(dec("50")) {
		t.Errorf("ShredSteel total after reversal = %s, want 50", totals["ShredSteel"])
	}
	if !totals["TotalPayout"].Equal(dec("4.00")) {
		t.Errorf("TotalPayout after reversal = %s, want 4.00", totals["TotalPayout"])
	}

	updated, _ := services.GetClient(db, client.ClientID)
	if !updated.TotalPayout.Equal(dec("4.00")) {
		t.Errorf("client TotalPayout = %s, want 4.00", updated.TotalPayout)
	}

	// The receipt and its children are gone.
	if _, err := services.GetReceipt(db, first.ReceiptID); err != services.ErrNotFound {
		t.Errorf("expected receipt to be deleted, got %v", err)
	}
	var metalCount int64
	db.Table("auto_receipt_metals").Where("receipt_id = ?", first.ReceiptID).Count(&metalCount)
	if metalCount != 0 {
		t.Error("metal breakdown row survived the delete")
	}
}

func TestDeleteReceiptRequiresPasscode(t *testing.T) {
	db := testutil.OpenDB(t)
	client := testutil.SeedClient(t, db, schema.ClientTypeAuto, models.PaymentCash)

	receipt, err := services.CreateReceipt(db, services.ReceiptInput{
		ClientID:    client.ClientID,
		Metals:      metalsFor(schema.ClientTypeAuto, nil),
		TotalPayout: dec("1.00"),
	}, "tester")
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}

	if err := services.DeleteReceipt(db, receipt.ReceiptID, "wrong", "right"); err != services.ErrBadPasscode {
		t.Errorf("expected ErrBadPasscode, got %v", err)
	}
	if _, err := services.GetReceipt(db, receipt.ReceiptID); err != nil {
		t.Errorf("receipt should survive a bad passcode: %v", err)
	}
}

func TestDeleteReceiptFloorsAtZero(t *testing.T) {
	db := testutil.OpenDB(t)
	client := testutil.SeedClient(t, db, schema.ClientTypeAuto, models.PaymentCash)

	const passcode = "shred-it"

	receipt, err := services.CreateReceipt(db, services.ReceiptInput{
		ClientID: client.ClientID,
		Metals: metalsFor(schema.ClientTypeAuto, map[string]services.MetalLine{
			"ShredSteel": {Weight: dec("100"), Price: dec("0.08")},
		}),
		TotalPayout: dec("8.00"),
		TotalVolume: dec("100"),
	}, "tester")
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}

	// Simulate drift: the totals row was edited below what the receipt holds.
	err = db.Table("auto_client_totals").
		Where("client_id = ?", client.ClientID).
		Update("total_shred_steel", dec("60")).Error
	if err != nil {
		t.Fatalf("failed to inject drift: %v", err)
	}

	if err := services.DeleteReceipt(db, receipt.ReceiptID, passcode, passcode); err != nil {
		t.Fatalf("DeleteReceipt failed: %v", err)
	}

	totals, err := services.ClientTotals(db, client.ClientID)
	if err != nil {
		t.Fatalf("ClientTotals failed: %v", err)
	}
	if !totals["ShredSteel"].Equal(decimal.Zero) {
		t.Errorf("ShredSteel total = %s, want 0 after clamped reversal", totals["ShredSteel"])
	}
}

func TestSetCheckNumber(t *testing.T) {
	db := testutil.OpenDB(t)
	client := testutil.SeedClient(t, db, schema.ClientTypeOther, models.PaymentCheck)

	receipt, err := services.CreateReceipt(db, services.ReceiptInput{
		ClientID:    client.ClientID,
		TotalPayout: dec("10"),
	}, "tester")
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}

	if err := services.SetCheckNumber(db, receipt.ReceiptID, "0000"); err == nil {
		t.Error("placeholder must not be accepted as a check number")
	}
	if err := services.SetCheckNumber(db, receipt.ReceiptID, "1042"); err != nil {
		t.Fatalf("SetCheckNumber failed: %v", err)
	}

	var payment models.CheckPayment
	if err := db.Where("receipt_id = ?", receipt.ReceiptID).First(&payment).Error; err != nil {
		t.Fatalf("check payment missing: %v", err)
	}
	if payment.CheckNumber != "1042" {
		t.Errorf("check number = %q, want 1042", payment.CheckNumber)
	}
}

func TestListReceiptsDateFilter(t *testing.T) {
	db := testutil.OpenDB(t)
	client := testutil.SeedClient(t, db, schema.ClientTypeAuto, models.PaymentCash)

	for i := 0; i < 2; i++ {
		if _, err := services.CreateReceipt(db, services.ReceiptInput{
			ClientID:    client.ClientID,
			Metals:      metalsFor(schema.ClientTypeAuto, map[string]services.MetalLine{"ShredSteel": {Weight: dec("100"), Price: dec("0.08")}}),
			TotalPayout: dec("8"),
			TotalVolume: dec("100"),
		}, "tester"); err != nil {
			t.Fatalf("CreateReceipt failed: %v", err)
		}
	}

	// Push one receipt back a week so the filter can split them.
	lastWeek := time.Now().Truncate(24 * time.Hour).AddDate(0, 0, -7)
	if err := db.Model(&models.Receipt{}).Where("receipt_id = ?", 1).Update("pickup_date", lastWeek).Error; err != nil {
		t.Fatalf("failed to backdate receipt: %v", err)
	}

	rows, err := services.ListReceipts(db, &lastWeek)
	if err != nil {
		t.Fatalf("ListReceipts failed: %v", err)
	}
	if len(rows) != 1 || rows[0].ReceiptID != 1 {
		t.Errorf("date filter returned %+v", rows)
	}

	all, err := services.ListReceipts(db, nil)
	if err != nil {
		t.Fatalf("ListReceipts failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 receipts, got %d", len(all))
	}
}
