package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/models"
)

// UserInput is the request body for admin user updates.
type UserInput struct {
	Username string `json:"username"`
	UserType string `json:"userType"`
	Password string `json:"password"`
}

// ListUsers returns all accounts ordered by username.
func ListUsers(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	err := db.Order("username").Find(&users).Error
	return users, err
}

// SearchUsers matches the term against usernames and user IDs. An empty
// term returns all accounts.
func SearchUsers(db *gorm.DB, term string) ([]models.User, error) {
	query := db.Order("username")
	if term != "" {
		pattern := "%" + term + "%"
		query = query.Where("username LIKE ? OR user_id LIKE ?", pattern, pattern)
	}
	var users []models.User
	err := query.Find(&users).Error
	return users, err
}

// GetUser returns a single account by ID.
func GetUser(db *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	err := db.Where("user_id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies admin edits to an account. A new password is re-hashed;
// empty fields are left unchanged.
func UpdateUser(db *gorm.DB, userID string, in UserInput) (*models.User, error) {
	user, err := GetUser(db, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Username != "" && in.Username != user.Username {
		var count int64
		if err := db.Model(&models.User{}).Where("username = ? AND user_id <> ?", in.Username, userID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrConflict
		}
		updates["username"] = in.Username
	}
	if in.UserType != "" {
		if !models.ValidUserType(in.UserType) {
			return nil, NewValidationError("userType", "must be regular or admin")
		}
		updates["user_type"] = in.UserType
	}
	if in.Password != "" {
		if len(in.Password) < 6 {
			return nil, NewValidationError("password", "must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hash)
	}

	if len(updates) > 0 {
		if err := db.Model(&models.User{}).Where("user_id = ?", userID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return GetUser(db, userID)
}

// DeleteUser removes an account by ID.
func DeleteUser(db *gorm.DB, userID string) error {
	res := db.Where("user_id = ?", userID).Delete(&models.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
