package services_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/models"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/schema"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/services"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/testutil"
)

func TestUpsertRequestCreatesThenUpdates(t *testing.T) {
	db := testutil.OpenDB(t)
	client := testutil.SeedClient(t, db, schema.ClientTypeAuto, models.PaymentCash)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	first, err := services.UpsertRequest(db, services.RequestInput{
		ClientID:       client.ClientID,
		RequestDate:    now.AddDate(0, 0, 7),
		NumFullBarrels: 2,
		Notes:          "gate code 4411",
	}, now)
	if err != nil {
		t.Fatalf("UpsertRequest failed: %v", err)
	}

	// A second post for the same client updates the pending request instead
	// of stacking a new one.
	second, err := services.UpsertRequest(db, services.RequestInput{
		ClientID:       client.ClientID,
		RequestDate:    now.AddDate(0, 0, 10),
		NumFullBarrels: 5,
	}, now)
	if err != nil {
		t.Fatalf("UpsertRequest (update) failed: %v", err)
	}
	if second.RequestID != first.RequestID {
		t.Errorf("expected update of request %d, got new request %d", first.RequestID, second.RequestID)
	}
	if second.NumFullBarrels != 5 {
		t.Errorf("NumFullBarrels = %d, want 5", second.NumFullBarrels)
	}

	var count int64
	db.Model(&models.Request{}).Where("client_id = ?", client.ClientID).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 request for client, found %d", count)
	}
}

func TestUpsertRequestPastRequestDoesNotBlock(t *testing.T) {
	db := testutil.OpenDB(t)
	client := testutil.SeedClient(t, db, schema.ClientTypeAuto, models.PaymentCash)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	past, err := services.UpsertRequest(db, services.RequestInput{
		ClientID:    client.ClientID,
		RequestDate: now.AddDate(0, 0, -14),
	}, now.AddDate(0, 0, -20))
	if err != nil {
		t.Fatalf("UpsertRequest failed: %v", err)
	}

	fresh, err := services.UpsertRequest(db, services.RequestInput{
		ClientID:    client.ClientID,
		RequestDate: now.AddDate(0, 0, 3),
	}, now)
	if err != nil {
		t.Fatalf("UpsertRequest failed: %v", err)
	}
	if fresh.RequestID == past.RequestID {
		t.Error("a fulfilled past request must not absorb a new one")
	}
}

func TestUpsertRequestValidation(t *testing.T) {
	db := testutil.OpenDB(t)
	client := testutil.SeedClient(t, db, schema.ClientTypeAuto, models.PaymentCash)
	now := time.Now()

	if _, err := services.UpsertRequest(db, services.RequestInput{ClientID: "ghost", RequestDate: now}, now); err != services.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := services.UpsertRequest(db, services.RequestInput{ClientID: client.ClientID}, now); err == nil {
		t.Error("missing request date must be rejected")
	}
}

func TestRequestBarrelCountFlexDecoding(t *testing.T) {
	// Tablet clients send numFullBarrels as a quoted string.
	var in services.RequestInput
	if err := json.Unmarshal([]byte(`{"clientID":"x","numFullBarrels":"4"}`), &in); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if in.NumFullBarrels.Uint64() != 4 {
		t.Errorf("NumFullBarrels = %d, want 4", in.NumFullBarrels.Uint64())
	}

	if err := json.Unmarshal([]byte(`{"numFullBarrels":7}`), &in); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if in.NumFullBarrels.Uint64() != 7 {
		t.Errorf("NumFullBarrels = %d, want 7", in.NumFullBarrels.Uint64())
	}
}

func TestDeleteRequest(t *testing.T) {
	db := testutil.OpenDB(t)
	client := testutil.SeedClient(t, db, schema.ClientTypeAuto, models.PaymentCash)
	now := time.Now()

	request, err := services.UpsertRequest(db, services.RequestInput{
		ClientID:    client.ClientID,
		RequestDate: now.AddDate(0, 0, 1),
	}, now)
	if err != nil {
		t.Fatalf("UpsertRequest failed: %v", err)
	}

	if err := services.DeleteRequest(db, request.RequestID); err != nil {
		t.Fatalf("DeleteRequest failed: %v", err)
	}
	if err := services.DeleteRequest(db, request.RequestID); err != services.ErrNotFound {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestDeleteRequestsByTerm(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Now()

	alpha := testutil.SeedClient(t, db, schema.ClientTypeAuto, models.PaymentCash)
	db.Model(&models.Client{}).Where("client_id = ?", alpha.ClientID).Update("client_name", "Alpha Salvage")
	beta := testutil.SeedClient(t, db, schema.ClientTypeHVAC, models.PaymentCash)
	db.Model(&models.Client{}).Where("client_id = ?", beta.ClientID).Update("client_name", "Beta Cooling")

	for _, clientID := range []string{alpha.ClientID, beta.ClientID} {
		if _, err := services.UpsertRequest(db, services.RequestInput{
			ClientID:    clientID,
			RequestDate: now.AddDate(0, 0, 2),
		}, now); err != nil {
			t.Fatalf("UpsertRequest failed: %v", err)
		}
	}

	affected, err := services.DeleteRequestsByTerm(db, "Alpha")
	if err != nil {
		t.Fatalf("DeleteRequestsByTerm failed: %v", err)
	}
	if affected != 1 {
		t.Errorf("affected = %d, want 1", affected)
	}

	remaining, err := services.ListRequests(db, services.RequestFilter{})
	if err != nil {
		t.Fatalf("ListRequests failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ClientID != beta.ClientID {
		t.Errorf("unexpected remaining requests: %+v", remaining)
	}

	if _, err := services.DeleteRequestsByTerm(db, ""); err == nil {
		t.Error("empty term must be rejected, it would wipe every request")
	}
}

func TestUpdateRequest(t *testing.T) {
	db := testutil.OpenDB(t)
	client := testutil.SeedClient(t, db, schema.ClientTypeAuto, models.PaymentCash)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	request, err := services.UpsertRequest(db, services.RequestInput{
		ClientID:       client.ClientID,
		RequestDate:    now.AddDate(0, 0, 3),
		NumFullBarrels: 1,
	}, now)
	if err != nil {
		t.Fatalf("UpsertRequest failed: %v", err)
	}

	updated, err := services.UpdateRequest(db, request.RequestID, services.RequestInput{
		RequestDate:    now.AddDate(0, 0, 5),
		RequestTime:    "09:30",
		NumFullBarrels: 4,
		Notes:          "bring the forklift",
	})
	if err != nil {
		t.Fatalf("UpdateRequest failed: %v", err)
	}
	if updated.RequestID != request.RequestID {
		t.Errorf("RequestID = %d, want %d", updated.RequestID, request.RequestID)
	}
	if updated.NumFullBarrels != 4 || updated.RequestTime != "09:30" {
		t.Errorf("unexpected updated request: %+v", updated)
	}

	other := testutil.SeedClient(t, db, schema.ClientTypeHVAC, models.PaymentCash)
	if _, err := services.UpdateRequest(db, request.RequestID, services.RequestInput{
		ClientID:    other.ClientID,
		RequestDate: now.AddDate(0, 0, 5),
	}); err == nil {
		t.Error("moving a request to another client must be rejected")
	}

	if _, err := services.UpdateRequest(db, 999999, services.RequestInput{
		RequestDate: now.AddDate(0, 0, 5),
	}); err != services.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListRequestsFilter(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	early := testutil.SeedClient(t, db, schema.ClientTypeAuto, models.PaymentCash)
	db.Model(&models.Client{}).Where("client_id = ?", early.ClientID).Update("client_name", "Early Iron")
	late := testutil.SeedClient(t, db, schema.ClientTypeHVAC, models.PaymentCash)
	db.Model(&models.Client{}).Where("client_id = ?", late.ClientID).Update("client_name", "Late Cooling")

	if _, err := services.UpsertRequest(db, services.RequestInput{
		ClientID:    early.ClientID,
		RequestDate: now.AddDate(0, 0, 2),
	}, now); err != nil {
		t.Fatalf("UpsertRequest failed: %v", err)
	}
	if _, err := services.UpsertRequest(db, services.RequestInput{
		ClientID:    late.ClientID,
		RequestDate: now.AddDate(0, 0, 20),
	}, now); err != nil {
		t.Fatalf("UpsertRequest failed: %v", err)
	}

	rows, err := services.ListRequests(db, services.RequestFilter{Term: "Early"})
	if err != nil {
		t.Fatalf("ListRequests failed: %v", err)
	}
	if len(rows) != 1 || rows[0].ClientID != early.ClientID {
		t.Errorf("term filter returned %+v", rows)
	}

	rows, err = services.ListRequests(db, services.RequestFilter{To: now.AddDate(0, 0, 10)})
	if err != nil {
		t.Fatalf("ListRequests failed: %v", err)
	}
	if len(rows) != 1 || rows[0].ClientID != early.ClientID {
		t.Errorf("date filter returned %+v", rows)
	}

	rows, err = services.ListRequests(db, services.RequestFilter{SortDesc: true})
	if err != nil {
		t.Fatalf("ListRequests failed: %v", err)
	}
	if len(rows) != 2 || rows[0].ClientID != late.ClientID {
		t.Errorf("descending sort returned %+v", rows)
	}
}
