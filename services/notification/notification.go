package notification

import (
	"context"
	"fmt"
	"time"

	userRepo "rentvehicle/database/repository/user"
	"rentvehicle/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService sends FCM pushes to a user's registered browser.
type NotificationService interface {
	PushToUser(userID, title, body string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Users userRepo.UserRepository
}

func NewDefaultNotificationService(users userRepo.UserRepository) (*DefaultNotificationService, error) {
	if users == nil {
		return nil, fmt.Errorf("notification service initialization error: user repository is nil")
	}
	return &DefaultNotificationService{Users: users}, nil
}

// PushToUser looks up the user's FCM token and sends a push. Users without
// a registered token are skipped silently.
func (s *DefaultNotificationService) PushToUser(userID, title, body string) error {
	if utils.FCMClient == nil {
		return nil
	}

	u, err := s.Users.GetByID(userID)
	if err != nil {
		return fmt.Errorf("PushToUser: could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		return nil
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title: title,
				Body:  body,
			},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	response, err := utils.FCMClient.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("PushToUser: failed to send FCM message: %w", err)
	}
	utils.GetLogger().Info("Push notification sent",
		zap.String("userId", userID), zap.String("messageId", response))
	return nil
}
