package auth

import (
	"time"

	"rentvehicle/config"
	"rentvehicle/models"
	"rentvehicle/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const adminOTPLength = 6

// InitiateAdminLogin verifies the admin password and emails a one-time code.
// The back office username is the admin's email address.
func (s *DefaultAuthService) InitiateAdminLogin(username, password string) (*AdminChallenge, error) {
	username = normalizeEmail(username)

	user, err := s.Repo.GetByEmail(username)
	if err != nil {
		utils.GetLogger().Error("InitiateAdminLogin: failed to fetch admin", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if user == nil || user.Role != models.RoleAdmin {
		return nil, utils.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	code, err := utils.GenerateNumericOTP(adminOTPLength)
	if err != nil {
		utils.GetLogger().Error("InitiateAdminLogin: failed to generate code", zap.Error(err))
		return nil, utils.ErrUncategorized
	}

	ttl := time.Duration(config.AppConfig.AdminOTPDuration) * time.Second
	if err := s.otps().Save(adminOTPPrefix+username, code, ttl); err != nil {
		return nil, utils.ErrUncategorized
	}
	if err := s.mail().AdminLoginOTP(user.Email, user.FullName, code, ttl); err != nil {
		utils.GetLogger().Error("InitiateAdminLogin: failed to send code", zap.Error(err))
		return nil, utils.ErrUncategorized
	}

	return &AdminChallenge{
		Username:  username,
		ExpiresIn: config.AppConfig.AdminOTPDuration,
	}, nil
}

// VerifyAdminLogin consumes the emailed code and completes the admin login.
// An expired or missing code requires restarting from the password step.
func (s *DefaultAuthService) VerifyAdminLogin(username, code string) (*AuthResult, error) {
	username = normalizeEmail(username)

	stored, err := s.otps().Get(adminOTPPrefix + username)
	if err != nil {
		utils.GetLogger().Error("VerifyAdminLogin: failed to fetch code", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if stored == "" {
		return nil, utils.ErrOTPExpired
	}
	if !otpMatches(stored, code) {
		return nil, utils.ErrInvalidOTP
	}
	if err := s.otps().Delete(adminOTPPrefix + username); err != nil {
		utils.GetLogger().Error("VerifyAdminLogin: failed to consume code", zap.Error(err))
	}

	user, err := s.Repo.GetByEmail(username)
	if err != nil || user == nil || user.Role != models.RoleAdmin {
		return nil, utils.ErrInvalidCredentials
	}

	return s.issueSession(user)
}
