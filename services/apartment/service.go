package apartment

import (
	"fmt"

	apartmentRepo "stayease/database/repository/apartment"
	userRepo "stayease/database/repository/user"
	"stayease/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// ApartmentService manages the unit inventory and resident assignment.
type ApartmentService interface {
	GetByID(id string) (*models.Apartment, error)
	// List returns apartments, optionally filtered by status and building.
	List(status, building string, skip, limit int64) ([]models.Apartment, error)
	Create(apt models.Apartment) (*models.Apartment, error)
	Update(id string, fields bson.M) (*models.Apartment, error)
	// AssignResident links a user to an apartment on both documents.
	AssignResident(apartmentID, userID string) error
	// UnassignResident removes the link on both documents.
	UnassignResident(apartmentID, userID string) error
	Delete(id string) error
}

// DefaultApartmentService is the production implementation.
type DefaultApartmentService struct {
	Repo  apartmentRepo.ApartmentRepository
	Users userRepo.UserRepository
}

func (s *DefaultApartmentService) GetByID(id string) (*models.Apartment, error) {
	apt, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get apartment: %w", err)
	}
	return apt, nil
}

func (s *DefaultApartmentService) List(status, building string, skip, limit int64) ([]models.Apartment, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if building != "" {
		filter["building"] = building
	}
	return s.Repo.List(filter, skip, limit)
}

func (s *DefaultApartmentService) Create(apt models.Apartment) (*models.Apartment, error) {
	if apt.Code == "" {
		return nil, fmt.Errorf("apartment code is required")
	}
	existing, err := s.Repo.GetByCode(apt.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to check apartment code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("apartment with code %s already exists", apt.Code)
	}

	apt.ID = uuid.New().String()
	if apt.Status == "" {
		apt.Status = models.ApartmentAvailable
	}
	if err := s.Repo.Create(&apt); err != nil {
		return nil, err
	}
	return &apt, nil
}

func (s *DefaultApartmentService) Update(id string, fields bson.M) (*models.Apartment, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no updatable fields provided")
	}
	if err := s.Repo.UpdateSetDocument(id, fields); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(id)
}

// AssignResident links a user to an apartment on both documents. The two
// writes are independent; the apartment's resident set is authoritative.
func (s *DefaultApartmentService) AssignResident(apartmentID, userID string) error {
	if _, err := s.Users.GetByID(userID); err != nil {
		return fmt.Errorf("resident not found: %w", err)
	}
	if err := s.Repo.AddResident(apartmentID, userID); err != nil {
		return err
	}
	if err := s.Users.UpdateSetDocument(userID, bson.M{"apartment_id": apartmentID}); err != nil {
		return fmt.Errorf("failed to link resident to apartment: %w", err)
	}
	return nil
}

func (s *DefaultApartmentService) UnassignResident(apartmentID, userID string) error {
	if err := s.Repo.RemoveResident(apartmentID, userID); err != nil {
		return err
	}
	if err := s.Users.UpdateSetDocument(userID, bson.M{"apartment_id": ""}); err != nil {
		return fmt.Errorf("failed to unlink resident from apartment: %w", err)
	}
	return nil
}

func (s *DefaultApartmentService) Delete(id string) error {
	apt, err := s.Repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("apartment not found: %w", err)
	}
	if len(apt.ResidentIDs) > 0 {
		return fmt.Errorf("apartment %s still has residents assigned", apt.Code)
	}
	return s.Repo.Delete(id)
}
