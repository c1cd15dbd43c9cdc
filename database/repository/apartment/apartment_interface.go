package apartmentRepo

import (
	"stayease/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ApartmentRepository defines methods for apartment inventory access.
type ApartmentRepository interface {
	GetByID(id string) (*models.Apartment, error)
	// GetByCode retrieves an apartment by its unit code; nil if not found.
	GetByCode(code string) (*models.Apartment, error)
	// List retrieves apartments matching the filter with skip/limit paging.
	List(filter bson.M, skip, limit int64) ([]models.Apartment, error)
	Create(apartment *models.Apartment) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	// AddResident adds a user to the apartment's resident set.
	AddResident(id, userID string) error
	// RemoveResident removes a user from the apartment's resident set.
	RemoveResident(id, userID string) error
	Delete(id string) error
}
