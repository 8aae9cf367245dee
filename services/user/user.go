package user

import (
	"strings"

	userRepo "rentvehicle/database/repository/user"
	"rentvehicle/models"
	"rentvehicle/utils"

	"go.uber.org/zap"
)

// UserService handles the back office account table: listing, searching and
// banning customers.
type UserService interface {
	List(keyword string) ([]models.User, error)
	Ban(userID string) (*models.User, error)
	Unban(userID string) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository

	// RevokeAll clears every session of a user. Nil uses the Redis
	// session store.
	RevokeAll func(userID string) error
}

// List returns accounts for the back office table, filtered by a keyword
// against names and emails when one is given.
func (s *DefaultUserService) List(keyword string) ([]models.User, error) {
	keyword = strings.TrimSpace(keyword)

	var (
		users []models.User
		err   error
	)
	if keyword == "" {
		users, err = s.Repo.GetAll()
	} else {
		users, err = s.Repo.Search(keyword)
	}
	if err != nil {
		utils.GetLogger().Error("ListUsers: failed to list accounts", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	return users, nil
}

func (s *DefaultUserService) setStatus(userID, status string) (*models.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, utils.ErrUserNotFound
	}
	if u.Role == models.RoleAdmin {
		return nil, utils.ErrAccessDenied
	}

	if err := s.Repo.UpdateStatus(userID, status); err != nil {
		utils.GetLogger().Error("failed to update account status",
			zap.String("userId", userID), zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	u.Status = status
	return u, nil
}

// Ban blocks the account and revokes its open sessions so the ban takes
// effect immediately, not at the next login.
func (s *DefaultUserService) Ban(userID string) (*models.User, error) {
	u, err := s.setStatus(userID, models.UserStatusBanned)
	if err != nil {
		return nil, err
	}
	if err := s.revokeSessions(userID); err != nil {
		utils.GetLogger().Error("Ban: failed to revoke sessions",
			zap.String("userId", userID), zap.Error(err))
	}
	return u, nil
}

// Unban restores a banned account.
func (s *DefaultUserService) Unban(userID string) (*models.User, error) {
	return s.setStatus(userID, models.UserStatusActive)
}

func (s *DefaultUserService) revokeSessions(userID string) error {
	if s.RevokeAll != nil {
		return s.RevokeAll(userID)
	}
	return utils.DeleteAllUserSessions(utils.GetAuthCacheClient(), userID)
}
