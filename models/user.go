package models

import "time"

// Roles recognized by the authorization middleware.
const (
	RoleResident = "resident"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

// User represents a resident, staff member, or administrator.
type User struct {
	ID            string         `bson:"id" json:"id"`
	FullName      string         `bson:"full_name" json:"fullName"`
	Email         string         `bson:"email" json:"email"`
	PhoneNumber   string         `bson:"phone_number" json:"phoneNumber,omitempty"`
	PasswordHash  string         `bson:"password_hash" json:"-"`
	Role          string         `bson:"role" json:"role"` // resident | staff | admin
	ApartmentID   string         `bson:"apartment_id,omitempty" json:"apartmentId,omitempty"`
	AvatarURL     string         `bson:"avatar_url,omitempty" json:"avatarUrl,omitempty"`
	FCMToken      string         `bson:"fcm_token,omitempty" json:"-"`
	TokenHash     string         `bson:"token_hash,omitempty" json:"-"`
	Notifications []Notification `bson:"notifications,omitempty" json:"notifications,omitempty"`
	CreatedAt     time.Time      `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time      `bson:"updated_at" json:"updatedAt"`
}

// Principal is the authenticated identity carried through a request,
// resolved once by the auth middleware and passed down explicitly.
type Principal struct {
	UserID      string `json:"userId"`
	Role        string `json:"role"`
	ApartmentID string `json:"apartmentId,omitempty"`
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// IsStaff reports whether the principal holds the staff or admin role.
func (p Principal) IsStaff() bool { return p.Role == RoleStaff || p.Role == RoleAdmin }
