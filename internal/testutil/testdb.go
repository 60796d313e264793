package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/database"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/models"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/schema"
)

// OpenDB creates an in-memory SQLite database with the full schema migrated.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// SeedClient creates a client of the given type with its totals row.
func SeedClient(t *testing.T, db *gorm.DB, clientType schema.ClientType, paymentMethod string) *models.Client {
	t.Helper()

	client := models.Client{
		ClientID:              uuid.NewString(),
		ClientName:            "Test " + string(clientType) + " Client",
		ClientLocation:        "100 Yard Rd",
		ClientType:            string(clientType),
		AvgTimeBetweenPickups: 30,
		PaymentMethod:         paymentMethod,
	}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("Failed to seed client: %v", err)
	}

	desc := schema.Lookup(clientType)
	if desc.TotalsTable != "" {
		row := map[string]interface{}{"client_id": client.ClientID}
		if err := db.Table(desc.TotalsTable).Create(row).Error; err != nil {
			t.Fatalf("Failed to seed totals row: %v", err)
		}
	}

	return &client
}

// SeedPriceSheet inserts a sheet pricing every metal of the type at the
// given price.
func SeedPriceSheet(t *testing.T, db *gorm.DB, clientType schema.ClientType, price decimal.Decimal) {
	t.Helper()

	desc := schema.Lookup(clientType)
	if desc.PriceSheetTable == "" {
		t.Fatalf("client type %s has no price sheet", clientType)
	}

	row := map[string]interface{}{"effective_date": time.Now()}
	for _, field := range desc.Fields {
		row[field.SheetColumn()] = price
	}
	if err := db.Table(desc.PriceSheetTable).Create(row).Error; err != nil {
		t.Fatalf("Failed to seed price sheet: %v", err)
	}
}
