package main_test

import (
	"fmt"
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/database"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/models"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/schema"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/services"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TestPostgresRoundTrip exercises the receipt pipeline against a real
// Postgres, where DECIMAL semantics and concurrent UPDATE behavior differ
// from the in-memory unit database. Opt in with INTEGRATION=1; requires a
// local Docker daemon.
func TestPostgresRoundTrip(t *testing.T) {
	if os.Getenv("INTEGRATION") != "1" {
		t.Skip("set INTEGRATION=1 to run container-backed tests")
	}

	pg, err := testutil.StartPostgres(t)
	if err != nil {
		t.Fatalf("Failed to start Postgres: %v", err)
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		pg.Host, pg.User, pg.Password, pg.Database, pg.Port)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	client := models.Client{
		ClientID:              uuid.NewString(),
		ClientName:            "Integration Salvage",
		ClientType:            string(schema.ClientTypeAuto),
		AvgTimeBetweenPickups: 30,
		PaymentMethod:         models.PaymentCash,
	}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	desc := schema.Lookup(schema.ClientTypeAuto)
	if err := db.Table(desc.TotalsTable).Create(map[string]interface{}{"client_id": client.ClientID}).Error; err != nil {
		t.Fatalf("Failed to create totals row: %v", err)
	}

	weight := decimal.RequireFromString("1234.56")
	metals := map[string]services.MetalLine{}
	for _, field := range desc.Fields {
		metals[field.Name] = services.MetalLine{}
	}
	metals["ShredSteel"] = services.MetalLine{Weight: weight, Price: decimal.RequireFromString("0.08")}
	receipt, err := services.CreateReceipt(db, services.ReceiptInput{
		ClientID:    client.ClientID,
		Metals:      metals,
		TotalPayout: decimal.RequireFromString("98.76"),
		TotalVolume: weight,
	}, "integration")
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}

	totals, err := services.ClientTotals(db, client.ClientID)
	if err != nil {
		t.Fatalf("ClientTotals failed: %v", err)
	}
	if !totals["ShredSteel"].Equal(weight) {
		t.Errorf("ShredSteel total = %s, want %s", totals["ShredSteel"], weight)
	}

	const passcode = "integration-passcode"
	if err := services.DeleteReceipt(db, receipt.ReceiptID, passcode, passcode); err != nil {
		t.Fatalf("DeleteReceipt failed: %v", err)
	}

	totals, err = services.ClientTotals(db, client.ClientID)
	if err != nil {
		t.Fatalf("ClientTotals failed: %v", err)
	}
	if !totals["ShredSteel"].IsZero() {
		t.Errorf("ShredSteel total after reversal = %s, want 0", totals["ShredSteel"])
	}
}
