package services_test

import (
	"testing"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/models"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/services"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/testutil"
)

func TestUpdateUser(t *testing.T) {
	db := testutil.OpenDB(t)

	registered, err := services.Register(db, testSecret, "clerk", "sixchars", "")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	updated, err := services.UpdateUser(db, registered.UserID, services.UserInput{
		UserType: models.UserTypeAdmin,
		Password: "newsecret",
	})
	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if updated.UserType != models.UserTypeAdmin {
		t.Errorf("user type = %q, want admin", updated.UserType)
	}

	// The new password works for login, the old one does not.
	if _, err := services.Login(db, testSecret, "clerk", "newsecret"); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
	if _, err := services.Login(db, testSecret, "clerk", "sixchars"); err == nil {
		t.Error("old password still accepted")
	}
}

func TestUpdateUserUsernameConflict(t *testing.T) {
	db := testutil.OpenDB(t)

	if _, err := services.Register(db, testSecret, "alice", "sixchars", ""); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	bob, err := services.Register(db, testSecret, "bob", "sixchars", "")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := services.UpdateUser(db, bob.UserID, services.UserInput{Username: "alice"}); err != services.ErrConflict {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	db := testutil.OpenDB(t)

	registered, err := services.Register(db, testSecret, "temp", "sixchars", "")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := services.DeleteUser(db, registered.UserID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}
	if err := services.DeleteUser(db, registered.UserID); err != services.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	users, err := services.ListUsers(db)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("expected no users, found %d", len(users))
	}
}

func TestSearchUsers(t *testing.T) {
	db := testutil.OpenDB(t)

	for _, name := range []string{"yard-clerk", "yard-admin", "frontdesk"} {
		if _, err := services.Register(db, testSecret, name, "sixchars", ""); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}

	users, err := services.SearchUsers(db, "yard")
	if err != nil {
		t.Fatalf("SearchUsers failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(users))
	}
	if users[0].Username != "yard-admin" || users[1].Username != "yard-clerk" {
		t.Errorf("unexpected order: %s, %s", users[0].Username, users[1].Username)
	}

	all, err := services.SearchUsers(db, "")
	if err != nil {
		t.Fatalf("SearchUsers failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("empty term should return all users, got %d", len(all))
	}
}
