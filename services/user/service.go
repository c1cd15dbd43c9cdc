package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	userRepo "stayease/database/repository/user"
	"stayease/models"
	"stayease/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL bounds how long an issued session token stays valid.
const tokenTTL = 24 * time.Hour

// DefaultUserService is the production implementation of UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// Register creates a resident account with a hashed password.
func (s *DefaultUserService) Register(in RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		ID:           uuid.New().String(),
		FullName:     in.FullName,
		Email:        email,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: string(hash),
		Role:         models.RoleResident,
		ApartmentID:  in.ApartmentID,
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueSession(u)
}

// Authenticate verifies credentials and issues a JWT.
func (s *DefaultUserService) Authenticate(email, password string) (*AuthResult, error) {
	logger := utils.GetLogger()

	u, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		logger.Warn("failed login attempt", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(u)
}

// issueSession signs a token, stores its hash on the user record, and caches
// the hash→user mapping in redis so the auth middleware skips a DB hit.
func (s *DefaultUserService) issueSession(u *models.User) (*AuthResult, error) {
	token, err := utils.GenerateToken(u.ID, u.Role, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	tokenHash := utils.HashToken(token)

	if err := s.Repo.UpdateSetDocument(u.ID, bson.M{"token_hash": tokenHash}); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	u.TokenHash = tokenHash

	authCache := utils.GetAuthCacheClient()
	cacheKey := utils.AuthCachePrefix + tokenHash
	if err := authCache.Set(context.Background(), cacheKey, u.ID, utils.AuthCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache session", zap.Error(err))
	}

	sanitized := *u
	sanitized.PasswordHash = ""
	sanitized.TokenHash = ""
	return &AuthResult{Token: token, User: &sanitized}, nil
}

// GetUserByID retrieves a user, excluding sensitive fields.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	projection := bson.M{"password_hash": 0, "token_hash": 0}
	u, err := s.Repo.GetByIDWithProjection(userID, projection)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// UpdateUser applies a partial update of profile fields.
func (s *DefaultUserService) UpdateUser(user models.User) (*models.User, error) {
	if user.ID == "" {
		return nil, fmt.Errorf("user ID is required for update")
	}

	updateFields := bson.M{}
	if user.FullName != "" {
		updateFields["full_name"] = user.FullName
	}
	if user.PhoneNumber != "" {
		updateFields["phone_number"] = user.PhoneNumber
	}
	if user.AvatarURL != "" {
		updateFields["avatar_url"] = user.AvatarURL
	}
	if user.ApartmentID != "" {
		updateFields["apartment_id"] = user.ApartmentID
	}
	if len(updateFields) == 0 {
		return nil, fmt.Errorf("no updatable fields provided")
	}

	if err := s.Repo.UpdateSetDocument(user.ID, updateFields); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return s.GetUserByID(user.ID)
}

// UpdateFCMToken stores the device push token.
func (s *DefaultUserService) UpdateFCMToken(userID, token string) error {
	if err := s.Repo.UpdateSetDocument(userID, bson.M{"fcm_token": token}); err != nil {
		return fmt.Errorf("failed to update FCM token: %w", err)
	}
	return nil
}

// MarkNotificationsRead clears the unread flag on all notifications.
func (s *DefaultUserService) MarkNotificationsRead(userID string) error {
	if err := s.Repo.UpdateSetDocument(userID, bson.M{"notifications.$[].read": true}); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// DeleteUser removes a user by ID.
func (s *DefaultUserService) DeleteUser(userID string) error {
	if err := s.Repo.Delete(userID); err != nil {
		return fmt.Errorf("failed to delete user with id %s: %w", userID, err)
	}
	return nil
}

// RevokeAuthToken invalidates the user's current session.
func (s *DefaultUserService) RevokeAuthToken(userID string) error {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to logout, please try again")
	}

	if err := s.Repo.UpdateSetDocument(userID, bson.M{"token_hash": ""}); err != nil {
		return fmt.Errorf("failed to logout, please try again")
	}

	if u.TokenHash != "" {
		authCache := utils.GetAuthCacheClient()
		cacheKey := utils.AuthCachePrefix + u.TokenHash
		if err := authCache.Del(context.Background(), cacheKey).Err(); err != nil {
			utils.GetLogger().Warn("failed to clear auth cache on logout", zap.Error(err))
		}
	}
	return nil
}

// ListUsers retrieves all users (admin surface).
func (s *DefaultUserService) ListUsers() ([]models.User, error) {
	users, err := s.Repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].PasswordHash = ""
		users[i].TokenHash = ""
	}
	return users, nil
}

// SetRole changes a user's role (admin surface).
func (s *DefaultUserService) SetRole(userID, role string) error {
	switch role {
	case models.RoleResident, models.RoleStaff, models.RoleAdmin:
	default:
		return fmt.Errorf("unknown role %q", role)
	}
	if err := s.Repo.UpdateSetDocument(userID, bson.M{"role": role}); err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}
	return nil
}
