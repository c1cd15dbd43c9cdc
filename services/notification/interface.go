package notification

import "context"

// NotificationService records an in-app notification on the user document
// and delivers an FCM push when the user has a registered device token.
type NotificationService interface {
	NotifyUser(ctx context.Context, userID, notifType, title, body string, data map[string]string) error
}
