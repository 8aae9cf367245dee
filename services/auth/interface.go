package auth

import (
	"time"

	userRepo "rentvehicle/database/repository/user"
	"rentvehicle/models"
)

// AuthService handles account authentication and cookie session lifecycle.
type AuthService interface {
	// Registration and login
	Register(fullName, email, password string) (*AuthResult, error)
	Login(email, password string) (*AuthResult, error)
	SocialLogin(provider, token string) (*AuthResult, error)

	// Admin two-step login
	InitiateAdminLogin(username, password string) (*AdminChallenge, error)
	VerifyAdminLogin(username, code string) (*AuthResult, error)

	// Password recovery and change, both OTP-verified over email
	RequestPasswordReset(email string) (*PasswordChallenge, error)
	ResetPassword(email, code, newPassword, confirmPassword string) error
	RequestPasswordChange(userID string) (*PasswordChallenge, error)
	ChangePassword(userID, code, oldPassword, newPassword, confirmPassword string) error

	// Session management
	Me(userID string) (*models.Identity, error)
	UpdateProfile(userID, fullName string) (*models.Identity, error)
	Logout(sessionID string) error
	LogoutAll(userID string) error

	// Push registration
	RegisterFCMToken(userID, token string) error
}

// DefaultAuthService is the production implementation. The optional fields
// override the Redis and SMTP backed defaults.
type DefaultAuthService struct {
	Repo userRepo.UserRepository

	// OTPs stores pending verification codes. Nil uses the Redis OTP store.
	OTPs OTPStore
	// Mail delivers account emails. Nil uses the SMTP sender.
	Mail MailSender
	// RevokeAll clears every session of a user. Nil uses the Redis
	// session store.
	RevokeAll func(userID string) error
}

// OTPStore holds pending verification codes keyed by flow and account.
type OTPStore interface {
	Save(key, code string, ttl time.Duration) error
	// Get returns an empty code with a nil error when none is pending.
	Get(key string) (string, error)
	Delete(key string) error
}

// MailSender delivers the account lifecycle emails.
type MailSender interface {
	AdminLoginOTP(to, fullName, code string, expiresIn time.Duration) error
	PasswordResetOTP(to, fullName, code string, expiresIn time.Duration) error
	PasswordChangeOTP(to, fullName, code string, expiresIn time.Duration) error
	PasswordChanged(to, fullName string) error
}

// AuthResult carries the issued token and session alongside the identity
// projection returned to the storefront.
type AuthResult struct {
	Identity  models.Identity
	Token     string
	SessionID string
}

// AdminChallenge is the outcome of the admin password step. The login is not
// complete until the emailed code is verified.
type AdminChallenge struct {
	Username  string `json:"username"`
	ExpiresIn int    `json:"expiresIn"`
}

// PasswordChallenge is the outcome of a password reset or change request.
// The flow continues with the emailed code.
type PasswordChallenge struct {
	Email     string `json:"email"`
	ExpiresIn int    `json:"expiresIn"`
}
