package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods accepted on receipts and client profiles.
const (
	PaymentCash          = "Cash"
	PaymentCheck         = "Check"
	PaymentDirectDeposit = "Direct Deposit"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	return m == PaymentCash || m == PaymentCheck || m == PaymentDirectDeposit
}

// Client is a recycling-service customer. TotalPayout/TotalVolume are
// running aggregates over the client's receipts; they are only mutated by
// the receipt creation and reversal transactions and must stay consistent
// with the type-specific totals row.
type Client struct {
	ClientID              string          `gorm:"primaryKey;type:char(36)" json:"clientID"`
	ClientName            string          `gorm:"size:255;not null" json:"clientName"`
	ClientLocation        string          `gorm:"size:255" json:"clientLocation"`
	ClientType            string          `gorm:"size:32;not null;index" json:"clientType"`
	AvgTimeBetweenPickups int             `gorm:"not null;default:30" json:"avgTimeBetweenPickups"`
	LocationNotes         string          `gorm:"size:1024" json:"locationNotes"`
	LocationContact       string          `gorm:"size:255" json:"locationContact"`
	RegistrationDate      time.Time       `json:"registrationDate"`
	LastPickupDate        *time.Time      `json:"lastPickupDate"`
	NeedsPickup           bool            `gorm:"not null;default:false" json:"needsPickup"`
	TotalPayout           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"totalPayout"`
	TotalVolume           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"totalVolume"`
	PaymentMethod         string          `gorm:"size:32;not null" json:"paymentMethod"`
	CreatedAt             time.Time       `json:"-"`
	UpdatedAt             time.Time       `json:"-"`
}

// TableName overrides the table name for Client
func (Client) TableName() string {
	return "clients"
}
