package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/models"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/schema"
)

// ClientInput is the request body for creating or updating a client.
type ClientInput struct {
	ClientName            string `json:"clientName"`
	ClientLocation        string `json:"clientLocation"`
	ClientType            string `json:"clientType"`
	AvgTimeBetweenPickups int    `json:"avgTimeBetweenPickups"`
	LocationNotes         string `json:"locationNotes"`
	LocationContact       string `json:"locationContact"`
	PaymentMethod         string `json:"paymentMethod"`
}

// ClientPickupInfo is the trimmed projection used by pickup planning views.
type ClientPickupInfo struct {
	ClientID              string     `json:"clientID"`
	ClientName            string     `json:"clientName"`
	ClientLocation        string     `json:"clientLocation"`
	LocationNotes         string     `json:"locationNotes"`
	LocationContact       string     `json:"locationContact"`
	LastPickupDate        *time.Time `json:"lastPickupDate"`
	NeedsPickup           bool       `json:"needsPickup"`
	AvgTimeBetweenPickups int        `json:"avgTimeBetweenPickups"`
}

// TopClient is one row of the payout leaderboard.
type TopClient struct {
	ClientID   string          `json:"clientID"`
	ClientName string          `json:"clientName"`
	Amount     decimal.Decimal `json:"amount"`
}

// ListClients returns all clients ordered by name.
func ListClients(db *gorm.DB) ([]models.Client, error) {
	var clients []models.Client
	err := db.Order("client_name").Find(&clients).Error
	return clients, err
}

// GetClient returns a single client by ID.
func GetClient(db *gorm.DB, clientID string) (*models.Client, error) {
	var client models.Client
	err := db.Where("client_id = ?", clientID).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// SearchClients matches the term against client name, ID, and location.
// An empty term returns every client.
func SearchClients(db *gorm.DB, term string) ([]models.Client, error) {
	var clients []models.Client
	query := db.Order("client_name")
	if term != "" {
		pattern := "%" + term + "%"
		query = query.Where(
			"client_name LIKE ? OR client_id LIKE ? OR client_location LIKE ?",
			pattern, pattern, pattern,
		)
	}
	err := query.Find(&clients).Error
	return clients, err
}

// ListPickupInfo returns the pickup planning projection for all clients.
func ListPickupInfo(db *gorm.DB) ([]ClientPickupInfo, error) {
	var rows []ClientPickupInfo
	err := db.Model(&models.Client{}).
		Select("client_id, client_name, client_location, location_notes, location_contact, last_pickup_date, needs_pickup, avg_time_between_pickups").
		Order("client_name").
		Scan(&rows).Error
	return rows, err
}

// AddClient creates a client and, for typed clients, its totals row in the
// same transaction.
func AddClient(db *gorm.DB, in ClientInput) (*models.Client, error) {
	clientType, err := schema.Parse(in.ClientType)
	if err != nil {
		return nil, NewValidationError("clientType", err.Error())
	}
	if in.ClientName == "" {
		return nil, NewValidationError("clientName", "must not be empty")
	}
	if in.PaymentMethod != "" && !models.ValidPaymentMethod(in.PaymentMethod) {
		return nil, NewValidationError("paymentMethod", "unrecognized payment method")
	}

	client := models.Client{
		ClientID:              uuid.NewString(),
		ClientName:            in.ClientName,
		ClientLocation:        in.ClientLocation,
		ClientType:            string(clientType),
		AvgTimeBetweenPickups: in.AvgTimeBetweenPickups,
		LocationNotes:         in.LocationNotes,
		LocationContact:       in.LocationContact,
		RegistrationDate:      time.Now(),
		PaymentMethod:         in.PaymentMethod,
	}
	if client.AvgTimeBetweenPickups <= 0 {
		client.AvgTimeBetweenPickups = 30
	}
	if client.PaymentMethod == "" {
		client.PaymentMethod = models.PaymentCash
	}

	desc := schema.Lookup(clientType)

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&client).Error; err != nil {
			return err
		}
		if desc.TotalsTable != "" {
			row := map[string]interface{}{"client_id": client.ClientID}
			if err := tx.Table(desc.TotalsTable).Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &client, nil
}

// UpdateClient applies the editable fields of a client. The client type is
// immutable after creation because the totals schema depends on it.
func UpdateClient(db *gorm.DB, clientID string, in ClientInput) (*models.Client, error) {
	client, err := GetClient(db, clientID)
	if err != nil {
		return nil, err
	}

	if in.ClientType != "" && in.ClientType != client.ClientType {
		return nil, NewValidationError("clientType", "client type cannot be changed")
	}
	if in.PaymentMethod != "" && !models.ValidPaymentMethod(in.PaymentMethod) {
		return nil, NewValidationError("paymentMethod", "unrecognized payment method")
	}

	updates := map[string]interface{}{}
	if in.ClientName != "" {
		updates["client_name"] = in.ClientName
	}
	if in.ClientLocation != "" {
		updates["client_location"] = in.ClientLocation
	}
	if in.AvgTimeBetweenPickups > 0 {
		updates["avg_time_between_pickups"] = in.AvgTimeBetweenPickups
	}
	if in.LocationNotes != "" {
		updates["location_notes"] = in.LocationNotes
	}
	if in.LocationContact != "" {
		updates["location_contact"] = in.LocationContact
	}
	if in.PaymentMethod != "" {
		updates["payment_method"] = in.PaymentMethod
	}

	if len(updates) > 0 {
		if err := db.Model(&models.Client{}).Where("client_id = ?", clientID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return GetClient(db, clientID)
}

// ClientTotals returns the running per-metal totals for a typed client as a
// metal-name keyed map. Clients of type "other" have no totals table and get
// an empty map.
func ClientTotals(db *gorm.DB, clientID string) (map[string]decimal.Decimal, error) {
	client, err := GetClient(db, clientID)
	if err != nil {
		return nil, err
	}

	desc := schema.LookupString(client.ClientType)
	result := make(map[string]decimal.Decimal)
	if desc.TotalsTable == "" {
		return result, nil
	}

	row := map[string]interface{}{}
	err = db.Table(desc.TotalsTable).Where("client_id = ?", clientID).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	for _, field := range desc.Fields {
		result[field.Name] = scanDecimal(row[field.TotalsColumn()])
	}
	result["TotalPayout"] = scanDecimal(row["total_payout"])

	return result, nil
}

// ClientMetals returns the metal breakdown of the client's most recent
// receipt as a metal-name keyed weight map.
func ClientMetals(db *gorm.DB, clientID string) (map[string]decimal.Decimal, error) {
	client, err := GetClient(db, clientID)
	if err != nil {
		return nil, err
	}

	var receipt models.Receipt
	err = db.Where("client_id = ?", clientID).
		Order("pickup_date DESC, receipt_id DESC").
		First(&receipt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	desc := schema.LookupString(client.ClientType)
	result := make(map[string]decimal.Decimal)
	if !desc.HasMetalsTable() {
		return result, nil
	}

	row := map[string]interface{}{}
	err = db.Table(desc.ReceiptMetalsTable).Where("receipt_id = ?", receipt.ReceiptID).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, nil
		}
		return nil, err
	}

	for _, field := range desc.Fields {
		result[field.Name] = scanDecimal(row[field.WeightColumn()])
	}

	return result, nil
}

// TopClientsByMetal returns the highest accumulated totals for one metal of
// one client type.
func TopClientsByMetal(db *gorm.DB, clientType schema.ClientType, metalName string, limit int) ([]TopClient, error) {
	desc, ok := schema.Registry[clientType]
	if !ok || desc.TotalsTable == "" {
		return nil, schema.ErrUnsupportedClientType
	}
	field, ok := desc.Field(metalName)
	if !ok {
		return nil, NewValidationError("metal", fmt.Sprintf("unknown metal %q for client type %s", metalName, clientType))
	}
	if limit <= 0 {
		limit = 10
	}

	var rows []TopClient
	err := db.Table(desc.TotalsTable+" AS t").
		Select("t.client_id, c.client_name, t."+field.TotalsColumn()+" AS amount").
		Joins("JOIN clients c ON c.client_id = t.client_id").
		Order("amount DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// TopClientsByVolume returns the clients with the highest lifetime volume.
func TopClientsByVolume(db *gorm.DB, limit int) ([]TopClient, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []TopClient
	err := db.Model(&models.Client{}).
		Select("client_id, client_name, total_volume AS amount").
		Order("amount DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// UpdateLastPickupFromReceipts recomputes a client's LastPickupDate from its
// newest receipt. Used to repair the denormalized date after manual edits.
func UpdateLastPickupFromReceipts(db *gorm.DB, clientID string) (*models.Client, error) {
	if _, err := GetClient(db, clientID); err != nil {
		return nil, err
	}

	var receipt models.Receipt
	err := db.Where("client_id = ?", clientID).
		Order("pickup_date DESC, receipt_id DESC").
		First(&receipt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	err = db.Model(&models.Client{}).Where("client_id = ?", clientID).
		Updates(map[string]interface{}{
			"last_pickup_date": receipt.PickupDate,
			"needs_pickup":     false,
		}).Error
	if err != nil {
		return nil, err
	}

	return GetClient(db, clientID)
}

// ManualUpdatePickup sets a client's LastPickupDate to an explicit date.
func ManualUpdatePickup(db *gorm.DB, clientID string, pickupDate time.Time) (*models.Client, error) {
	if _, err := GetClient(db, clientID); err != nil {
		return nil, err
	}

	err := db.Model(&models.Client{}).Where("client_id = ?", clientID).
		Updates(map[string]interface{}{
			"last_pickup_date": pickupDate,
			"needs_pickup":     false,
		}).Error
	if err != nil {
		return nil, err
	}

	return GetClient(db, clientID)
}

// RefreshNeedsPickup recalculates the NeedsPickup flag for every client: a
// client is due when it has never been picked up or its last pickup is older
// than its average pickup interval. Returns the number of clients now due.
func RefreshNeedsPickup(db *gorm.DB, now time.Time) (int64, error) {
	var clients []models.Client
	if err := db.Find(&clients).Error; err != nil {
		return 0, err
	}

	var due int64
	for _, client := range clients {
		needs := false
		if client.LastPickupDate == nil {
			needs = true
		} else {
			interval := client.AvgTimeBetweenPickups
			if interval <= 0 {
				interval = 30
			}
			needs = now.Sub(*client.LastPickupDate) > time.Duration(interval)*24*time.Hour
		}
		if needs {
			due++
		}
		if needs != client.NeedsPickup {
			err := db.Model(&models.Client{}).
				Where("client_id = ?", client.ClientID).
				Update("needs_pickup", needs).Error
			if err != nil {
				return due, err
			}
		}
	}

	log.Printf("Pickup refresh complete: %d of %d clients due", due, len(clients))
	return due, nil
}

// scanDecimal normalizes a raw database value into a decimal. Dialects hand
// back different Go types for DECIMAL columns.
func scanDecimal(v interface{}) decimal.Decimal {
	switch val := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return val
	case string:
		d, err := decimal.NewFromString(val)
		if err != nil {
			return decimal.Zero
		}
		return d
	case []byte:
		d, err := decimal.NewFromString(string(val))
		if err != nil {
			return decimal.Zero
		}
		return d
	case float64:
		return decimal.NewFromFloat(val)
	case int64:
		return decimal.NewFromInt(val)
	default:
		return decimal.Zero
	}
}
