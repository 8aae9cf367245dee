package auth

import (
	"fmt"
	"strings"
	"time"

	"rentvehicle/config"
	"rentvehicle/models"
	"rentvehicle/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// normalizeEmail canonicalizes an address before any lookup or storage.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// issueSession creates a session record in Redis and a JWT bound to it.
func (s *DefaultAuthService) issueSession(user *models.User) (*AuthResult, error) {
	sessionID := uuid.NewString()
	accessTTL := time.Duration(config.AppConfig.AccessTokenDuration) * time.Second
	sessionTTL := time.Duration(config.AppConfig.SessionDuration) * time.Second

	token, err := utils.GenerateToken(user.ID, user.Email, string(user.Role), sessionID, accessTTL)
	if err != nil {
		utils.GetLogger().Error("issueSession: failed to generate token", zap.Error(err))
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	record := utils.SessionRecord{
		SessionID: sessionID,
		UserID:    user.ID,
		TokenHash: utils.HashToken(token),
		CreatedAt: time.Now(),
	}
	if err := utils.SaveSessionRecord(utils.GetAuthCacheClient(), record, sessionTTL); err != nil {
		utils.GetLogger().Error("issueSession: failed to save session record", zap.Error(err))
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResult{
		Identity:  models.IdentityOf(user),
		Token:     token,
		SessionID: sessionID,
	}, nil
}

// Register creates a local account and signs it in.
func (s *DefaultAuthService) Register(fullName, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to check existing email", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if existing != nil {
		return nil, utils.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		FullName:     strings.TrimSpace(fullName),
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		AuthProvider: models.ProviderLocal,
		Status:       models.UserStatusActive,
	}
	if err := s.Repo.Create(user); err != nil {
		utils.GetLogger().Error("Register: failed to create user", zap.Error(err))
		return nil, utils.ErrUncategorized
	}

	return s.issueSession(user)
}

// Login authenticates a local account by email and password.
func (s *DefaultAuthService) Login(email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)

	user, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Login: failed to fetch user", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if user == nil || user.AuthProvider != models.ProviderLocal {
		return nil, utils.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, utils.ErrInvalidCredentials
	}
	if user.Status == models.UserStatusBanned {
		return nil, utils.ErrUserBanned
	}

	return s.issueSession(user)
}

// Me returns the identity projection for the authenticated account.
func (s *DefaultAuthService) Me(userID string) (*models.Identity, error) {
	user, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, utils.ErrUnauthenticated
	}
	identity := models.IdentityOf(user)
	return &identity, nil
}

// UpdateProfile changes the display name and returns the fresh identity
// projection. The storefront refreshes its cached identity from it.
func (s *DefaultAuthService) UpdateProfile(userID, fullName string) (*models.Identity, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, utils.ErrInvalidReq
	}

	user, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, utils.ErrUnauthenticated
	}

	user.FullName = fullName
	if err := s.Repo.Update(user); err != nil {
		utils.GetLogger().Error("UpdateProfile: failed to store profile", zap.Error(err))
		return nil, utils.ErrUncategorized
	}

	identity := models.IdentityOf(user)
	return &identity, nil
}

// Logout destroys one session record. The access token bound to it stops
// being accepted immediately.
func (s *DefaultAuthService) Logout(sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := utils.DeleteSessionRecord(utils.GetAuthCacheClient(), sessionID); err != nil {
		utils.GetLogger().Error("Logout: failed to delete session record", zap.Error(err))
		return utils.ErrUncategorized
	}
	return nil
}

// LogoutAll destroys every session record belonging to the user.
func (s *DefaultAuthService) LogoutAll(userID string) error {
	if err := utils.DeleteAllUserSessions(utils.GetAuthCacheClient(), userID); err != nil {
		utils.GetLogger().Error("LogoutAll: failed to delete user sessions", zap.Error(err))
		return utils.ErrUncategorized
	}
	return nil
}

// RegisterFCMToken stores the browser push token on the account.
func (s *DefaultAuthService) RegisterFCMToken(userID, token string) error {
	if err := s.Repo.UpdateFCMToken(userID, token); err != nil {
		utils.GetLogger().Error("RegisterFCMToken: failed to store token", zap.Error(err))
		return utils.ErrUncategorized
	}
	return nil
}
