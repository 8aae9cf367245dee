package auth

import (
	"strings"
	"time"

	"rentvehicle/config"
	"rentvehicle/models"
	"rentvehicle/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const passwordOTPLength = 6
const minPasswordLength = 6

// validateNewPassword checks the password pair submitted with a reset or
// change confirmation.
func validateNewPassword(newPassword, confirmPassword string) error {
	if newPassword == "" || confirmPassword == "" {
		return utils.ErrInvalidReq
	}
	if newPassword != confirmPassword {
		return utils.ErrPasswordMismatch
	}
	if len(strings.TrimSpace(newPassword)) < minPasswordLength {
		return utils.ErrInvalidReq
	}
	return nil
}

// localAccountByEmail fetches the account and rejects social sign-ins, which
// have no password to recover.
func (s *DefaultAuthService) localAccountByEmail(email string) (*models.User, error) {
	user, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("failed to fetch user for password flow", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	if user.AuthProvider != models.ProviderLocal {
		return nil, utils.ErrPasswordNotAllowed
	}
	return user, nil
}

// RequestPasswordReset starts the forgot-password flow by emailing a
// one-time code to the account address.
func (s *DefaultAuthService) RequestPasswordReset(email string) (*PasswordChallenge, error) {
	email = normalizeEmail(email)

	user, err := s.localAccountByEmail(email)
	if err != nil {
		return nil, err
	}

	code, err := utils.GenerateNumericOTP(passwordOTPLength)
	if err != nil {
		utils.GetLogger().Error("RequestPasswordReset: failed to generate code", zap.Error(err))
		return nil, utils.ErrUncategorized
	}

	ttl := time.Duration(config.AppConfig.PasswordOTPDuration) * time.Second
	if err := s.otps().Save(resetOTPPrefix+email, code, ttl); err != nil {
		return nil, utils.ErrUncategorized
	}
	if err := s.mail().PasswordResetOTP(user.Email, user.FullName, code, ttl); err != nil {
		utils.GetLogger().Error("RequestPasswordReset: failed to send code", zap.Error(err))
		// The code is unusable if it never reached the inbox.
		if delErr := s.otps().Delete(resetOTPPrefix + email); delErr != nil {
			utils.GetLogger().Error("RequestPasswordReset: failed to roll back code", zap.Error(delErr))
		}
		return nil, utils.ErrUncategorized
	}

	return &PasswordChallenge{
		Email:     email,
		ExpiresIn: config.AppConfig.PasswordOTPDuration,
	}, nil
}

// ResetPassword completes the forgot-password flow. Every session of the
// account is revoked so a stolen cookie dies with the old password.
func (s *DefaultAuthService) ResetPassword(email, code, newPassword, confirmPassword string) error {
	email = normalizeEmail(email)

	if err := validateNewPassword(newPassword, confirmPassword); err != nil {
		return err
	}

	user, err := s.localAccountByEmail(email)
	if err != nil {
		return err
	}

	stored, err := s.otps().Get(resetOTPPrefix + email)
	if err != nil {
		utils.GetLogger().Error("ResetPassword: failed to fetch code", zap.Error(err))
		return utils.ErrUncategorized
	}
	if stored == "" {
		return utils.ErrOTPExpired
	}
	if !otpMatches(stored, code) {
		return utils.ErrInvalidOTP
	}

	if err := s.applyNewPassword(user, newPassword); err != nil {
		return err
	}
	if err := s.otps().Delete(resetOTPPrefix + email); err != nil {
		utils.GetLogger().Error("ResetPassword: failed to consume code", zap.Error(err))
	}
	return nil
}

// RequestPasswordChange starts the authenticated change-password flow by
// emailing a one-time code to the account address.
func (s *DefaultAuthService) RequestPasswordChange(userID string) (*PasswordChallenge, error) {
	user, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, utils.ErrUnauthenticated
	}
	if user.AuthProvider != models.ProviderLocal {
		return nil, utils.ErrPasswordNotAllowed
	}

	code, err := utils.GenerateNumericOTP(passwordOTPLength)
	if err != nil {
		utils.GetLogger().Error("RequestPasswordChange: failed to generate code", zap.Error(err))
		return nil, utils.ErrUncategorized
	}

	ttl := time.Duration(config.AppConfig.PasswordOTPDuration) * time.Second
	if err := s.otps().Save(pwChangeOTPPrefix+user.Email, code, ttl); err != nil {
		return nil, utils.ErrUncategorized
	}
	if err := s.mail().PasswordChangeOTP(user.Email, user.FullName, code, ttl); err != nil {
		utils.GetLogger().Error("RequestPasswordChange: failed to send code", zap.Error(err))
		if delErr := s.otps().Delete(pwChangeOTPPrefix + user.Email); delErr != nil {
			utils.GetLogger().Error("RequestPasswordChange: failed to roll back code", zap.Error(delErr))
		}
		return nil, utils.ErrUncategorized
	}

	return &PasswordChallenge{
		Email:     user.Email,
		ExpiresIn: config.AppConfig.PasswordOTPDuration,
	}, nil
}

// ChangePassword completes the authenticated change-password flow. The old
// password and the emailed code must both check out.
func (s *DefaultAuthService) ChangePassword(userID, code, oldPassword, newPassword, confirmPassword string) error {
	if err := validateNewPassword(newPassword, confirmPassword); err != nil {
		return err
	}

	user, err := s.Repo.GetByID(userID)
	if err != nil {
		return utils.ErrUnauthenticated
	}
	if user.AuthProvider != models.ProviderLocal {
		return utils.ErrPasswordNotAllowed
	}
	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return utils.ErrInvalidOldPassword
	}

	stored, err := s.otps().Get(pwChangeOTPPrefix + user.Email)
	if err != nil {
		utils.GetLogger().Error("ChangePassword: failed to fetch code", zap.Error(err))
		return utils.ErrUncategorized
	}
	if stored == "" {
		return utils.ErrOTPExpired
	}
	if !otpMatches(stored, code) {
		return utils.ErrInvalidOTP
	}

	if err := s.applyNewPassword(user, newPassword); err != nil {
		return err
	}
	if err := s.otps().Delete(pwChangeOTPPrefix + user.Email); err != nil {
		utils.GetLogger().Error("ChangePassword: failed to consume code", zap.Error(err))
	}
	return nil
}

// applyNewPassword rehashes, persists and revokes every open session, then
// sends the confirmation mail best-effort.
func (s *DefaultAuthService) applyNewPassword(user *models.User, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("failed to hash new password", zap.Error(err))
		return utils.ErrUncategorized
	}

	user.PasswordHash = string(hash)
	if err := s.Repo.Update(user); err != nil {
		utils.GetLogger().Error("failed to store new password", zap.Error(err))
		return utils.ErrUncategorized
	}

	if err := s.revokeSessions(user.ID); err != nil {
		utils.GetLogger().Error("failed to revoke sessions after password change",
			zap.String("userId", user.ID), zap.Error(err))
	}
	if err := s.mail().PasswordChanged(user.Email, user.FullName); err != nil {
		utils.GetLogger().Warn("failed to send password change confirmation", zap.Error(err))
	}
	return nil
}
