package models

import "time"

// Service request statuses.
const (
	RequestOpen       = "open"
	RequestInProgress = "in_progress"
	RequestResolved   = "resolved"
	RequestClosed     = "closed"
)

// Service request categories.
const (
	CategoryPlumbing    = "plumbing"
	CategoryElectrical  = "electrical"
	CategoryAircon      = "aircon"
	CategoryCleaning    = "cleaning"
	CategorySecurity    = "security"
	CategoryOtherIssues = "other"
)

// RequestMessage is one chat entry embedded on the service request document.
type RequestMessage struct {
	ID        string    `bson:"id" json:"id"`
	SenderID  string    `bson:"sender_id" json:"senderId"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// ServiceRequest is a resident-submitted maintenance ticket with a status and
// assignment workflow. The chat thread lives as an embedded message array.
type ServiceRequest struct {
	ID          string           `bson:"id" json:"id"`
	UserID      string           `bson:"user_id" json:"userId"`
	ApartmentID string           `bson:"apartment_id" json:"apartmentId"`
	Title       string           `bson:"title" json:"title"`
	Description string           `bson:"description" json:"description"`
	Category    string           `bson:"category" json:"category"`
	Status      string           `bson:"status" json:"status"`
	AssigneeID  string           `bson:"assignee_id,omitempty" json:"assigneeId,omitempty"`
	PhotoURLs   []string         `bson:"photo_urls,omitempty" json:"photoUrls,omitempty"`
	Messages    []RequestMessage `bson:"messages,omitempty" json:"messages,omitempty"`
	CreatedAt   time.Time        `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time        `bson:"updated_at" json:"updatedAt"`
}
