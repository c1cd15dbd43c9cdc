package feed

import (
	"fmt"
	"strings"
	"time"

	postRepo "stayease/database/repository/post"
	"stayease/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// FeedService manages the community feed: posts with embedded comments and
// likes.
type FeedService interface {
	GetPost(id string) (*models.Post, error)
	// ListPosts returns the feed newest-first with skip/limit paging.
	ListPosts(skip, limit int64) ([]models.Post, error)
	// ListPostsByUser returns one author's posts newest-first.
	ListPostsByUser(userID string, skip, limit int64) ([]models.Post, error)
	CreatePost(principal models.Principal, content string, imageURLs []string) (*models.Post, error)
	// DeletePost removes a post; only the author or staff may delete.
	DeletePost(principal models.Principal, id string) error
	AddComment(principal models.Principal, postID, content string) (*models.Comment, error)
	// DeleteComment removes a comment; only its author or staff may delete.
	DeleteComment(principal models.Principal, postID, commentID string) error
	// Like records the principal's like; liking twice is a no-op.
	Like(principal models.Principal, postID string) (bool, error)
	Unlike(principal models.Principal, postID string) error
}

// DefaultFeedService is the production implementation.
type DefaultFeedService struct {
	Repo postRepo.PostRepository
}

func (s *DefaultFeedService) GetPost(id string) (*models.Post, error) {
	post, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

func (s *DefaultFeedService) ListPosts(skip, limit int64) ([]models.Post, error) {
	return s.Repo.List(bson.M{}, skip, limit)
}

func (s *DefaultFeedService) ListPostsByUser(userID string, skip, limit int64) ([]models.Post, error) {
	return s.Repo.List(bson.M{"user_id": userID}, skip, limit)
}

func (s *DefaultFeedService) CreatePost(principal models.Principal, content string, imageURLs []string) (*models.Post, error) {
	if strings.TrimSpace(content) == "" && len(imageURLs) == 0 {
		return nil, fmt.Errorf("post content or an image is required")
	}

	post := &models.Post{
		ID:        uuid.New().String(),
		UserID:    principal.UserID,
		Content:   content,
		ImageURLs: imageURLs,
	}
	if err := s.Repo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post; only the author or staff may delete.
func (s *DefaultFeedService) DeletePost(principal models.Principal, id string) error {
	post, err := s.Repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("post not found: %w", err)
	}
	if post.UserID != principal.UserID && !principal.IsStaff() {
		return fmt.Errorf("not allowed to delete this post")
	}
	return s.Repo.Delete(id)
}

func (s *DefaultFeedService) AddComment(principal models.Principal, postID, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("comment content is required")
	}
	if _, err := s.Repo.GetByID(postID); err != nil {
		return nil, fmt.Errorf("post not found: %w", err)
	}

	comment := models.Comment{
		ID:        uuid.New().String(),
		UserID:    principal.UserID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.PushComment(postID, comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment; only its author or staff may delete.
func (s *DefaultFeedService) DeleteComment(principal models.Principal, postID, commentID string) error {
	post, err := s.Repo.GetByID(postID)
	if err != nil {
		return fmt.Errorf("post not found: %w", err)
	}
	for _, c := range post.Comments {
		if c.ID == commentID {
			if c.UserID != principal.UserID && !principal.IsStaff() {
				return fmt.Errorf("not allowed to delete this comment")
			}
			return s.Repo.PullComment(postID, commentID)
		}
	}
	return fmt.Errorf("comment %s not found on post %s", commentID, postID)
}

// Like records the principal's like; liking twice is a no-op. The boolean
// reports whether the like was newly added.
func (s *DefaultFeedService) Like(principal models.Principal, postID string) (bool, error) {
	return s.Repo.AddLike(postID, principal.UserID)
}

func (s *DefaultFeedService) Unlike(principal models.Principal, postID string) error {
	return s.Repo.RemoveLike(postID, principal.UserID)
}
