package auth

import (
	"crypto/subtle"
	"strings"
	"time"

	"rentvehicle/utils"
)

// OTP key prefixes. Each flow keeps its own namespace so a reset code can
// never complete an admin login.
const (
	adminOTPPrefix    = "adminOtp:"
	resetOTPPrefix    = "resetOtp:"
	pwChangeOTPPrefix = "pwChangeOtp:"
)

// otpMatches compares a submitted code against the stored one in constant
// time.
func otpMatches(stored, code string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(strings.TrimSpace(code))) == 1
}

// redisOTPStore backs OTPStore with the dedicated Redis OTP database.
type redisOTPStore struct{}

func (redisOTPStore) Save(key, code string, ttl time.Duration) error {
	return utils.SaveOTP(utils.GetOTPCacheClient(), key, code, ttl)
}

func (redisOTPStore) Get(key string) (string, error) {
	return utils.GetOTP(utils.GetOTPCacheClient(), key)
}

func (redisOTPStore) Delete(key string) error {
	return utils.DeleteOTP(utils.GetOTPCacheClient(), key)
}

// smtpMailSender backs MailSender with the configured SMTP relay.
type smtpMailSender struct{}

func (smtpMailSender) AdminLoginOTP(to, fullName, code string, expiresIn time.Duration) error {
	return utils.SendAdminLoginOTPEmail(to, fullName, code, expiresIn)
}

func (smtpMailSender) PasswordResetOTP(to, fullName, code string, expiresIn time.Duration) error {
	return utils.SendPasswordResetOTPEmail(to, fullName, code, expiresIn)
}

func (smtpMailSender) PasswordChangeOTP(to, fullName, code string, expiresIn time.Duration) error {
	return utils.SendPasswordChangeOTPEmail(to, fullName, code, expiresIn)
}

func (smtpMailSender) PasswordChanged(to, fullName string) error {
	return utils.SendPasswordChangedEmail(to, fullName)
}

func (s *DefaultAuthService) otps() OTPStore {
	if s.OTPs != nil {
		return s.OTPs
	}
	return redisOTPStore{}
}

func (s *DefaultAuthService) mail() MailSender {
	if s.Mail != nil {
		return s.Mail
	}
	return smtpMailSender{}
}

func (s *DefaultAuthService) revokeSessions(userID string) error {
	if s.RevokeAll != nil {
		return s.RevokeAll(userID)
	}
	return utils.DeleteAllUserSessions(utils.GetAuthCacheClient(), userID)
}
