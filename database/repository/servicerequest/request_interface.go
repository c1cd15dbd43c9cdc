package requestRepo

import (
	"stayease/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ServiceRequestRepository defines methods for maintenance ticket access.
type ServiceRequestRepository interface {
	GetByID(id string) (*models.ServiceRequest, error)
	// List retrieves requests matching the filter, newest first, with
	// skip/limit paging.
	List(filter bson.M, skip, limit int64) ([]models.ServiceRequest, error)
	Create(request *models.ServiceRequest) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	// PushMessage appends a chat message to the request's embedded thread.
	PushMessage(id string, msg models.RequestMessage) error
	Delete(id string) error
	// CountByStatus returns request counts grouped by status.
	CountByStatus() (map[string]int64, error)
}
