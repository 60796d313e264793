package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/models"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/types"
)

// RequestInput is the request body for creating or updating a pickup
// request. NumFullBarrels arrives as a string from some tablet clients.
type RequestInput struct {
	ClientID       string           `json:"clientID"`
	RequestDate    time.Time        `json:"requestDate"`
	RequestTime    string           `json:"requestTime"`
	NumFullBarrels types.FlexUint64 `json:"numFullBarrels"`
	LargeObjects   models.JSON      `json:"largeObjects"`
	Notes          string           `json:"notes"`
	TotalVolume    decimal.Decimal  `json:"totalVolume"`
}

// RequestSummary is one row of a request listing, joined with its client.
type RequestSummary struct {
	RequestID      uint64          `json:"requestID"`
	ClientID       string          `json:"clientID"`
	ClientName     string          `json:"clientName"`
	ClientLocation string          `json:"clientLocation"`
	RequestDate    time.Time       `json:"requestDate"`
	RequestTime    string          `json:"requestTime"`
	NumFullBarrels int             `json:"numFullBarrels"`
	Notes          string          `json:"notes"`
	TotalVolume    decimal.Decimal `json:"totalVolume"`
}

// RequestFilter narrows a request listing. Zero values leave the
// corresponding dimension unfiltered.
type RequestFilter struct {
	Term     string
	From     time.Time
	To       time.Time
	SortDesc bool
}

// ListRequests returns pickup requests matching the filter, soonest first
// unless SortDesc is set.
func ListRequests(db *gorm.DB, filter RequestFilter) ([]RequestSummary, error) {
	query := db.Table("requests AS r").
		Select("r.request_id, r.client_id, c.client_name, c.client_location, r.request_date, r.request_time, r.num_full_barrels, r.notes, r.total_volume").
		Joins("JOIN clients c ON c.client_id = r.client_id")
	if filter.Term != "" {
		pattern := "%" + filter.Term + "%"
		query = query.Where("c.client_name LIKE ? OR r.client_id LIKE ?", pattern, pattern)
	}
	if !filter.From.IsZero() {
		query = query.Where("r.request_date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("r.request_date <= ?", filter.To)
	}
	order := "r.request_date, r.request_id"
	if filter.SortDesc {
		order = "r.request_date DESC, r.request_id DESC"
	}

	var rows []RequestSummary
	err := query.Order(order).Scan(&rows).Error
	return rows, err
}

// GetRequest returns a single pickup request by ID.
func GetRequest(db *gorm.DB, requestID uint64) (*models.Request, error) {
	var request models.Request
	err := db.Where("request_id = ?", requestID).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// RequestsForClient returns a client's pickup requests, soonest first.
func RequestsForClient(db *gorm.DB, clientID string) ([]models.Request, error) {
	if _, err := GetClient(db, clientID); err != nil {
		return nil, err
	}
	var rows []models.Request
	err := db.Where("client_id = ?", clientID).Order("request_date, request_id").Find(&rows).Error
	return rows, err
}

// UpsertRequest creates a pickup request for a client, or updates the
// client's existing future request if one is already on the books. A client
// holds at most one pending future request.
func UpsertRequest(db *gorm.DB, in RequestInput, now time.Time) (*models.Request, error) {
	if _, err := GetClient(db, in.ClientID); err != nil {
		return nil, err
	}
	if in.RequestDate.IsZero() {
		return nil, NewValidationError("requestDate", "must not be empty")
	}

	var request models.Request
	err := db.Where("client_id = ? AND request_date >= ?", in.ClientID, now.Truncate(24*time.Hour)).
		Order("request_date").
		First(&request).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"request_date":     in.RequestDate,
			"request_time":     in.RequestTime,
			"num_full_barrels": int(in.NumFullBarrels),
			"large_objects":    in.LargeObjects,
			"notes":            in.Notes,
			"total_volume":     in.TotalVolume,
		}
		if err := db.Model(&request).Updates(updates).Error; err != nil {
			return nil, err
		}
		return GetRequest(db, request.RequestID)

	case errors.Is(err, gorm.ErrRecordNotFound):
		request = models.Request{
			ClientID:       in.ClientID,
			RequestDate:    in.RequestDate,
			RequestTime:    in.RequestTime,
			NumFullBarrels: int(in.NumFullBarrels),
			LargeObjects:   in.LargeObjects,
			Notes:          in.Notes,
			TotalVolume:    in.TotalVolume,
		}
		if err := db.Create(&request).Error; err != nil {
			return nil, err
		}
		return &request, nil

	default:
		return nil, err
	}
}

// UpdateRequest rewrites an existing pickup request in place. The owning
// client cannot be changed.
func UpdateRequest(db *gorm.DB, requestID uint64, in RequestInput) (*models.Request, error) {
	request, err := GetRequest(db, requestID)
	if err != nil {
		return nil, err
	}
	if in.ClientID != "" && in.ClientID != request.ClientID {
		return nil, NewValidationError("clientID", "a request cannot move to another client")
	}
	if in.RequestDate.IsZero() {
		return nil, NewValidationError("requestDate", "must not be empty")
	}

	updates := map[string]interface{}{
		"request_date":     in.RequestDate,
		"request_time":     in.RequestTime,
		"num_full_barrels": int(in.NumFullBarrels),
		"large_objects":    in.LargeObjects,
		"notes":            in.Notes,
		"total_volume":     in.TotalVolume,
	}
	if err := db.Model(request).Updates(updates).Error; err != nil {
		return nil, err
	}
	return GetRequest(db, requestID)
}

// DeleteRequest removes a pickup request by ID.
func DeleteRequest(db *gorm.DB, requestID uint64) error {
	res := db.Delete(&models.Request{}, requestID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRequestsByTerm removes the pending requests of every client whose
// name or ID matches the search term. Returns the number of requests removed.
func DeleteRequestsByTerm(db *gorm.DB, term string) (int64, error) {
	if term == "" {
		return 0, NewValidationError("searchTerm", "must not be empty")
	}

	var clientIDs []string
	pattern := "%" + term + "%"
	err := db.Model(&models.Client{}).
		Where("client_name LIKE ? OR client_id LIKE ?", pattern, pattern).
		Pluck("client_id", &clientIDs).Error
	if err != nil {
		return 0, err
	}
	if len(clientIDs) == 0 {
		return 0, nil
	}

	res := db.Where("client_id IN ?", clientIDs).Delete(&models.Request{})
	return res.RowsAffected, res.Error
}
