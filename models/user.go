package models

import "time"

// Role is the account role. There are exactly two.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// AuthProvider identifies how the account authenticates.
const (
	ProviderLocal    = "LOCAL"
	ProviderGoogle   = "GOOGLE"
	ProviderFacebook = "FACEBOOK"
)

// User represents a platform account.
type User struct {
	ID           string    `bson:"id" json:"id"`
	FullName     string    `bson:"full_name" json:"fullName"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash,omitempty" json:"-"`
	Role         Role      `bson:"role" json:"role"`
	AuthProvider string    `bson:"auth_provider" json:"authProvider"`
	Status       string    `bson:"status" json:"status"` // "active" or "banned"
	FCMToken     string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

const (
	UserStatusActive = "active"
	UserStatusBanned = "banned"
)

// Identity is the projection of a user returned by auth endpoints and the
// identity probe. It is the only shape the storefront ever sees.
type Identity struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
}

// IdentityOf builds the auth projection for a user.
func IdentityOf(u *User) Identity {
	return Identity{UserID: u.ID, Email: u.Email, FullName: u.FullName, Role: u.Role}
}
