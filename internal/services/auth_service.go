package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/middleware"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/models"
)

// Token lifetimes. Device tokens are short-lived because the passcode is
// shared across truck tablets.
const (
	userTokenTTL   = 24 * time.Hour
	deviceTokenTTL = 12 * time.Hour
)

// AuthResult is the payload returned after a successful login or register.
type AuthResult struct {
	Token    string `json:"token"`
	UserID   string `json:"userID"`
	Username string `json:"username"`
	UserType string `json:"userType"`
}

// Login verifies the credentials and issues a signed token.
func Login(db *gorm.DB, secret, username, password string) (*AuthResult, error) {
	var user models.User
	err := db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrNotFound
	}

	token, err := issueToken(secret, user.UserID, user.Username, user.UserType, userTokenTTL)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Token:    token,
		UserID:   user.UserID,
		Username: user.Username,
		UserType: user.UserType,
	}, nil
}

// Register creates a new account and issues a token for it.
func Register(db *gorm.DB, secret, username, password, userType string) (*AuthResult, error) {
	if username == "" {
		return nil, NewValidationError("username", "must not be empty")
	}
	if len(password) < 6 {
		return nil, NewValidationError("password", "must be at least 6 characters")
	}
	if userType == "" {
		userType = models.UserTypeRegular
	}
	if !models.ValidUserType(userType) {
		return nil, NewValidationError("userType", "must be regular or admin")
	}

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		UserID:   uuid.NewString(),
		Username: username,
		UserType: userType,
		Password: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}

	token, err := issueToken(secret, user.UserID, user.Username, user.UserType, userTokenTTL)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Token:    token,
		UserID:   user.UserID,
		Username: user.Username,
		UserType: user.UserType,
	}, nil
}

// DeviceLogin exchanges the shared device passcode for a short-lived token.
func DeviceLogin(secret, devicePasscode, passcode string) (*AuthResult, error) {
	if devicePasscode == "" || passcode != devicePasscode {
		return nil, ErrBadPasscode
	}

	deviceID := uuid.NewString()
	token, err := issueToken(secret, deviceID, "device", models.UserTypeDevice, deviceTokenTTL)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Token:    token,
		UserID:   deviceID,
		Username: "device",
		UserType: models.UserTypeDevice,
	}, nil
}

// issueToken signs an HS256 token for the principal.
func issueToken(secret, userID, username, userType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := middleware.Claims{
		UserID:   userID,
		Username: username,
		UserType: userType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
