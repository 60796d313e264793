package services_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/middleware"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/models"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/services"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/testutil"
)

const testSecret = "unit-test-secret"

func TestRegisterAndLogin(t *testing.T) {
	db := testutil.OpenDB(t)

	registered, err := services.Register(db, testSecret, "driver1", "sixchars", "")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if registered.UserType != models.UserTypeRegular {
		t.Errorf("default user type = %q, want regular", registered.UserType)
	}
	if registered.Token == "" {
		t.Fatal("expected a token")
	}

	// Stored password is hashed, never the plaintext.
	var user models.User
	if err := db.Where("username = ?", "driver1").First(&user).Error; err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if user.Password == "sixchars" {
		t.Error("password stored in plaintext")
	}

	result, err := services.Login(db, testSecret, "driver1", "sixchars")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	claims := &middleware.Claims{}
	token, err := jwt.ParseWithClaims(result.Token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.Username != "driver1" || claims.UserType != models.UserTypeRegular {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt == nil {
		t.Error("token must expire")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	db := testutil.OpenDB(t)

	if _, err := services.Register(db, testSecret, "driver1", "sixchars", ""); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := services.Login(db, testSecret, "driver1", "wrongpw"); err == nil {
		t.Error("expected failure for a wrong password")
	}
	if _, err := services.Login(db, testSecret, "ghost", "sixchars"); err == nil {
		t.Error("expected failure for an unknown user")
	}
}

func TestRegisterValidation(t *testing.T) {
	db := testutil.OpenDB(t)

	if _, err := services.Register(db, testSecret, "", "sixchars", ""); err == nil {
		t.Error("empty username must be rejected")
	}
	if _, err := services.Register(db, testSecret, "u", "short", ""); err == nil {
		t.Error("short password must be rejected")
	}
	if _, err := services.Register(db, testSecret, "u", "sixchars", "device"); err == nil {
		t.Error("device is not a storable user type")
	}

	if _, err := services.Register(db, testSecret, "dupe", "sixchars", ""); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := services.Register(db, testSecret, "dupe", "sixchars", ""); err != services.ErrConflict {
		t.Errorf("expected ErrConflict for duplicate username, got %v", err)
	}
}

func TestDeviceLogin(t *testing.T) {
	result, err := services.DeviceLogin(testSecret, "gate-code", "gate-code")
	if err != nil {
		t.Fatalf("DeviceLogin failed: %v", err)
	}
	if result.UserType != models.UserTypeDevice {
		t.Errorf("user type = %q, want device", result.UserType)
	}

	if _, err := services.DeviceLogin(testSecret, "gate-code", "wrong"); err != services.ErrBadPasscode {
		t.Errorf("expected ErrBadPasscode, got %v", err)
	}
	// An unset passcode disables device login entirely.
	if _, err := services.DeviceLogin(testSecret, "", ""); err != services.ErrBadPasscode {
		t.Errorf("expected ErrBadPasscode with no configured passcode, got %v", err)
	}
}
