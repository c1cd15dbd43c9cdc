package servicerequest

import (
	"context"
	"fmt"
	"strings"
	"time"

	requestRepo "stayease/database/repository/servicerequest"
	"stayease/models"
	"stayease/services/notification"
	"stayease/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// CreateInput is the resident payload for opening a maintenance ticket.
type CreateInput struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	PhotoURLs   []string `json:"photoUrls"`
}

// ValidationError lists exactly which required fields were absent.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// ServiceRequestService manages maintenance tickets and their chat threads.
type ServiceRequestService interface {
	GetByID(id string) (*models.ServiceRequest, error)
	// ListForUser returns a resident's own tickets.
	ListForUser(userID string, skip, limit int64) ([]models.ServiceRequest, error)
	// ListAll returns tickets across residents, optionally by status or
	// assignee (staff surface).
	ListAll(status, assigneeID string, skip, limit int64) ([]models.ServiceRequest, error)
	Create(principal models.Principal, in CreateInput) (*models.ServiceRequest, error)
	// SetStatus moves the ticket through its workflow and notifies the owner.
	SetStatus(ctx context.Context, id, status string) (*models.ServiceRequest, error)
	// Assign hands the ticket to a staff member.
	Assign(ctx context.Context, id, assigneeID string) (*models.ServiceRequest, error)
	// AddMessage appends a chat message to the ticket's embedded thread.
	AddMessage(principal models.Principal, id, content string) (*models.RequestMessage, error)
}

// DefaultServiceRequestService is the production implementation.
type DefaultServiceRequestService struct {
	Repo     requestRepo.ServiceRequestRepository
	Notifier notification.NotificationService

	validate *validator.Validate
}

// NewDefaultServiceRequestService wires the validator instance.
func NewDefaultServiceRequestService(repo requestRepo.ServiceRequestRepository, notifier notification.NotificationService) *DefaultServiceRequestService {
	return &DefaultServiceRequestService{
		Repo:     repo,
		Notifier: notifier,
		validate: validator.New(),
	}
}

func (s *DefaultServiceRequestService) GetByID(id string) (*models.ServiceRequest, error) {
	req, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get service request: %w", err)
	}
	return req, nil
}

func (s *DefaultServiceRequestService) ListForUser(userID string, skip, limit int64) ([]models.ServiceRequest, error) {
	return s.Repo.List(bson.M{"user_id": userID}, skip, limit)
}

func (s *DefaultServiceRequestService) ListAll(status, assigneeID string, skip, limit int64) ([]models.ServiceRequest, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if assigneeID != "" {
		filter["assignee_id"] = assigneeID
	}
	return s.Repo.List(filter, skip, limit)
}

// Create validates the payload and opens the ticket. Validation failures
// name every absent field so the client can surface them directly.
func (s *DefaultServiceRequestService) Create(principal models.Principal, in CreateInput) (*models.ServiceRequest, error) {
	if err := s.validate.Struct(in); err != nil {
		var missing []string
		for _, fe := range err.(validator.ValidationErrors) {
			missing = append(missing, strings.ToLower(fe.Field()[:1])+fe.Field()[1:])
		}
		return nil, &ValidationError{Fields: missing}
	}

	req := &models.ServiceRequest{
		ID:          uuid.New().String(),
		UserID:      principal.UserID,
		ApartmentID: principal.ApartmentID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Status:      models.RequestOpen,
		PhotoURLs:   in.PhotoURLs,
	}
	if err := s.Repo.Create(req); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("service request opened",
		zap.String("requestID", req.ID),
		zap.String("category", req.Category))
	return req, nil
}

// SetStatus moves the ticket through its workflow and notifies the owner.
func (s *DefaultServiceRequestService) SetStatus(ctx context.Context, id, status string) (*models.ServiceRequest, error) {
	switch status {
	case models.RequestOpen, models.RequestInProgress, models.RequestResolved, models.RequestClosed:
	default:
		return nil, fmt.Errorf("unknown status %q", status)
	}

	req, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("service request not found: %w", err)
	}
	if err := s.Repo.UpdateSetDocument(id, bson.M{"status": status}); err != nil {
		return nil, err
	}
	req.Status = status

	s.notify(ctx, req.UserID, "request_update",
		fmt.Sprintf("Your request %q is now %s.", req.Title, status),
		map[string]string{"requestId": req.ID, "status": status})
	return req, nil
}

// Assign hands the ticket to a staff member.
func (s *DefaultServiceRequestService) Assign(ctx context.Context, id, assigneeID string) (*models.ServiceRequest, error) {
	req, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("service request not found: %w", err)
	}

	update := bson.M{"assignee_id": assigneeID}
	if req.Status == models.RequestOpen {
		update["status"] = models.RequestInProgress
	}
	if err := s.Repo.UpdateSetDocument(id, update); err != nil {
		return nil, err
	}
	req.AssigneeID = assigneeID
	if req.Status == models.RequestOpen {
		req.Status = models.RequestInProgress
	}

	s.notify(ctx, req.UserID, "request_update",
		fmt.Sprintf("Your request %q has been assigned to a technician.", req.Title),
		map[string]string{"requestId": req.ID})
	return req, nil
}

// AddMessage appends a chat message to the ticket's embedded thread. Only
// the ticket owner, the assignee, or staff may post.
func (s *DefaultServiceRequestService) AddMessage(principal models.Principal, id, content string) (*models.RequestMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("message content is required")
	}

	req, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("service request not found: %w", err)
	}
	if req.UserID != principal.UserID && req.AssigneeID != principal.UserID && !principal.IsStaff() {
		return nil, fmt.Errorf("not allowed to post on this request")
	}

	msg := models.RequestMessage{
		ID:        uuid.New().String(),
		SenderID:  principal.UserID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.PushMessage(id, msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *DefaultServiceRequestService) notify(ctx context.Context, userID, notifType, body string, data map[string]string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.NotifyUser(ctx, userID, notifType, "StayEase", body, data); err != nil {
		utils.GetLogger().Warn("request notification failed", zap.Error(err))
	}
}
