package servicerequest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"stayease/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*models.ServiceRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*models.ServiceRequest)}
}

func (r *fakeRequestRepo) GetByID(id string) (*models.ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, fmt.Errorf("service request %s not found", id)
	}
	cp := *req
	return &cp, nil
}

func (r *fakeRequestRepo) List(filter bson.M, skip, limit int64) ([]models.ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ServiceRequest
	for _, req := range r.requests {
		if userID, ok := filter["user_id"].(string); ok && req.UserID != userID {
			continue
		}
		if status, ok := filter["status"].(string); ok && req.Status != status {
			continue
		}
		out = append(out, *req)
	}
	return out, nil
}

func (r *fakeRequestRepo) Create(req *models.ServiceRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return fmt.Errorf("service request %s not found", id)
	}
	if status, ok := updateDoc["status"].(string); ok {
		req.Status = status
	}
	if assignee, ok := updateDoc["assignee_id"].(string); ok {
		req.AssigneeID = assignee
	}
	return nil
}

func (r *fakeRequestRepo) PushMessage(id string, msg models.RequestMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return fmt.Errorf("service request %s not found", id)
	}
	req.Messages = append(req.Messages, msg)
	return nil
}

func (r *fakeRequestRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.requests, id)
	return nil
}

func (r *fakeRequestRepo) CountByStatus() (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, req := range r.requests {
		counts[req.Status]++
	}
	return counts, nil
}

func residentPrincipal() models.Principal {
	return models.Principal{UserID: "user-1", Role: models.RoleResident, ApartmentID: "apt-1"}
}

func TestCreateValidRequest(t *testing.T) {
	svc := NewDefaultServiceRequestService(newFakeRequestRepo(), nil)

	req, err := svc.Create(residentPrincipal(), CreateInput{
		Title:       "Leaking faucet",
		Description: "The kitchen faucet drips constantly.",
		Category:    models.CategoryPlumbing,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, req.ID)
	assert.Equal(t, "user-1", req.UserID)
	assert.Equal(t, "apt-1", req.ApartmentID)
	assert.Equal(t, models.RequestOpen, req.Status)
}

func TestCreateListsEveryMissingField(t *testing.T) {
	svc := NewDefaultServiceRequestService(newFakeRequestRepo(), nil)

	_, err := svc.Create(residentPrincipal(), CreateInput{})
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"title", "description", "category"}, ve.Fields)
	assert.Equal(t, "missing required fields: title, description, category", ve.Error())
}

func TestCreatePartiallyMissingFields(t *testing.T) {
	svc := NewDefaultServiceRequestService(newFakeRequestRepo(), nil)

	_, err := svc.Create(residentPrincipal(), CreateInput{Title: "Broken light"})
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"description", "category"}, ve.Fields)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	repo := newFakeRequestRepo()
	svc := NewDefaultServiceRequestService(repo, nil)

	req, err := svc.Create(residentPrincipal(), CreateInput{
		Title:       "Broken light",
		Description: "Hallway light is out.",
		Category:    models.CategoryElectrical,
	})
	require.NoError(t, err)

	_, err = svc.SetStatus(context.Background(), req.ID, "sideways")
	assert.Error(t, err)

	updated, err := svc.SetStatus(context.Background(), req.ID, models.RequestResolved)
	require.NoError(t, err)
	assert.Equal(t, models.RequestResolved, updated.Status)
}

func TestAssignMovesOpenToInProgress(t *testing.T) {
	repo := newFakeRequestRepo()
	svc := NewDefaultServiceRequestService(repo, nil)

	req, err := svc.Create(residentPrincipal(), CreateInput{
		Title:       "Broken light",
		Description: "Hallway light is out.",
		Category:    models.CategoryElectrical,
	})
	require.NoError(t, err)

	updated, err := svc.Assign(context.Background(), req.ID, "staff-1")
	require.NoError(t, err)
	assert.Equal(t, "staff-1", updated.AssigneeID)
	assert.Equal(t, models.RequestInProgress, updated.Status)
}

func TestAddMessageAuthorization(t *testing.T) {
	repo := newFakeRequestRepo()
	svc := NewDefaultServiceRequestService(repo, nil)

	req, err := svc.Create(residentPrincipal(), CreateInput{
		Title:       "Broken light",
		Description: "Hallway light is out.",
		Category:    models.CategoryElectrical,
	})
	require.NoError(t, err)

	// The ticket owner may post.
	msg, err := svc.AddMessage(residentPrincipal(), req.ID, "Any update?")
	require.NoError(t, err)
	assert.Equal(t, "user-1", msg.SenderID)

	// Staff may post.
	staff := models.Principal{UserID: "staff-1", Role: models.RoleStaff}
	_, err = svc.AddMessage(staff, req.ID, "On our way.")
	assert.NoError(t, err)

	// An unrelated resident may not.
	other := models.Principal{UserID: "user-2", Role: models.RoleResident}
	_, err = svc.AddMessage(other, req.ID, "Me too!")
	assert.Error(t, err)

	// Blank messages are rejected.
	_, err = svc.AddMessage(residentPrincipal(), req.ID, "   ")
	assert.Error(t, err)

	stored, err := repo.GetByID(req.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Messages, 2)
}
