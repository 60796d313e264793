package types

// Identity is the authenticated principal extracted from a bearer token.
type Identity struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
	UserType string `json:"userType"`
}
