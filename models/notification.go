package models

import "time"

// Notification is an in-app notification embedded on the user document.
type Notification struct {
	ID        string                 `bson:"id" json:"id"`
	Type      string                 `bson:"type" json:"type"` // e.g. "payment_confirmation", "request_update"
	Message   string                 `bson:"message" json:"message"`
	Data      map[string]interface{} `bson:"data,omitempty" json:"data,omitempty"`
	Read      bool                   `bson:"read" json:"read"`
	CreatedAt time.Time              `bson:"created_at" json:"createdAt"`
}
