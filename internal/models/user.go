package models

type Role int

// UserRole constants
const (
	RoleUser      Role = 1
	RoleModerator Role = 2
)

// User represents a user in the system
//
// Email is the identity key; there is no separate username.
type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never serialize password hash
	Phone        string `json:"phone,omitempty"`
	City         string `json:"city,omitempty"`
	Avatar       string `json:"avatar,omitempty"`
	Role         Role   `json:"role"` // 1=User, 2=Moderator, default=1
}

// IsModerator reports whether the user belongs to the moderator group
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}

// RegisterRequest represents a request to create a user account
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	City     string `json:"city,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
