package models

import "time"

// User roles. Devices authenticate with a shared passcode instead of a
// password and receive the "device" role on their tokens; device is not a
// stored user type.
const (
	UserTypeRegular = "regular"
	UserTypeAdmin   = "admin"
	UserTypeDevice  = "device"
)

// ValidUserType reports whether t is a storable user role.
func ValidUserType(t string) bool {
	return t == UserTypeRegular || t == UserTypeAdmin
}

// User is a back-office account.
type User struct {
	UserID    string    `gorm:"type:char(36);primaryKey" json:"userID"`
	Username  string    `gorm:"size:255;uniqueIndex;not null" json:"username"`
	UserType  string    `gorm:"size:16;not null;default:regular" json:"userType"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin
}
