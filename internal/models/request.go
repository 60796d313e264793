package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request is a scheduled or ad-hoc pickup request for a client.
type Request struct {
	RequestID      uint64          `gorm:"primaryKey;autoIncrement" json:"requestID"`
	ClientID       string          `gorm:"type:char(36);not null;index" json:"clientID"`
	RequestDate    time.Time       `gorm:"not null;index" json:"requestDate"`
	RequestTime    string          `gorm:"size:16" json:"requestTime"`
	NumFullBarrels int             `gorm:"not null;default:0" json:"numFullBarrels"`
	LargeObjects   JSON            `json:"largeObjects"`
	Notes          string          `gorm:"type:text" json:"notes"`
	TotalVolume    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"totalVolume"`
	CreatedAt      time.Time       `json:"-"`
	UpdatedAt      time.Time       `json:"-"`
}

// TableName overrides the table name for Request
func (Request) TableName() string {
	return "requests"
}
