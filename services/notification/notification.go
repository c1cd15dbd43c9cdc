package notification

import (
	"context"
	"fmt"
	"time"

	userRepo "stayease/database/repository/user"
	"stayease/models"
	"stayease/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Users userRepo.UserRepository
}

// NotifyUser appends an in-app notification to the user document and sends a
// best-effort FCM push. The embedded record is the source of truth; a push
// failure is logged, not returned.
func (s *DefaultNotificationService) NotifyUser(ctx context.Context, userID, notifType, title, body string, data map[string]string) error {
	logger := utils.GetLogger()

	u, err := s.Users.GetByID(userID)
	if err != nil {
		return fmt.Errorf("NotifyUser: could not find user %s: %w", userID, err)
	}

	payload := make(map[string]interface{}, len(data))
	for k, v := range data {
		payload[k] = v
	}
	n := models.Notification{
		ID:        uuid.New().String(),
		Type:      notifType,
		Message:   body,
		Data:      payload,
		Read:      false,
		CreatedAt: time.Now(),
	}
	if err := s.Users.PushNotification(userID, n); err != nil {
		return fmt.Errorf("NotifyUser: failed to record notification: %w", err)
	}

	if u.FCMToken == "" || utils.FCMClient == nil {
		return nil
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		logger.Warn("NotifyUser: FCM push failed",
			zap.String("userID", userID),
			zap.Error(err))
	}
	return nil
}
