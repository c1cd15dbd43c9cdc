package user

import "stayease/models"

// RegisterInput is the payload for creating an account.
type RegisterInput struct {
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password" binding:"required,min=8"`
	ApartmentID string `json:"apartmentId"`
}

// AuthResult carries the signed token alongside the authenticated user.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// UserService defines account management operations.
type UserService interface {
	// Register creates a resident account with a hashed password.
	Register(in RegisterInput) (*AuthResult, error)
	// Authenticate verifies credentials and issues a JWT.
	Authenticate(email, password string) (*AuthResult, error)
	// GetUserByID retrieves a user, excluding sensitive fields.
	GetUserByID(userID string) (*models.User, error)
	// UpdateUser applies a partial update of profile fields.
	UpdateUser(user models.User) (*models.User, error)
	// UpdateFCMToken stores the device push token.
	UpdateFCMToken(userID, token string) error
	// MarkNotificationsRead clears the unread flag on all notifications.
	MarkNotificationsRead(userID string) error
	// DeleteUser removes a user by ID.
	DeleteUser(userID string) error
	// RevokeAuthToken invalidates the user's current session.
	RevokeAuthToken(userID string) error
	// ListUsers retrieves all users (admin surface).
	ListUsers() ([]models.User, error)
	// SetRole changes a user's role (admin surface).
	SetRole(userID, role string) error
}
