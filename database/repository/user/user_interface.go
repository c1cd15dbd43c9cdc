package userRepo

import (
	"stayease/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address; nil if not found.
	GetByEmail(email string) (*models.User, error)
	// GetByRole retrieves all users holding the given role.
	GetByRole(role string) ([]models.User, error)
	// GetAll retrieves all users.
	GetAll() ([]models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// UpdateSetDocument applies a partial $set update to a user record.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// PushNotification appends a notification to the user's embedded array.
	PushNotification(id string, n models.Notification) error
	// Delete removes a user record by its ID.
	Delete(id string) error
	// GetByIDWithProjection retrieves a user by its unique ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
}
