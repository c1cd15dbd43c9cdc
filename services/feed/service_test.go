package feed

import (
	"fmt"
	"sync"
	"testing"

	"stayease/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[string]*models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*models.Post)}
}

func (r *fakePostRepo) GetByID(id string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %s not found", id)
	}
	cp := *post
	cp.Comments = append([]models.Comment(nil), post.Comments...)
	cp.Likes = append([]string(nil), post.Likes...)
	return &cp, nil
}

func (r *fakePostRepo) List(filter bson.M, skip, limit int64) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Post
	for _, post := range r.posts {
		if userID, ok := filter["user_id"].(string); ok && post.UserID != userID {
			continue
		}
		out = append(out, *post)
	}
	return out, nil
}

func (r *fakePostRepo) Create(post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *post
	r.posts[post.ID] = &cp
	return nil
}

func (r *fakePostRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return fmt.Errorf("post %s not found", id)
	}
	if content, ok := updateDoc["content"].(string); ok {
		post.Content = content
	}
	return nil
}

func (r *fakePostRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return fmt.Errorf("post %s not found", id)
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) PushComment(postID string, comment models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[postID]
	if !ok {
		return fmt.Errorf("post %s not found", postID)
	}
	post.Comments = append(post.Comments, comment)
	return nil
}

func (r *fakePostRepo) PullComment(postID, commentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[postID]
	if !ok {
		return fmt.Errorf("post %s not found", postID)
	}
	kept := post.Comments[:0]
	for _, c := range post.Comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	post.Comments = kept
	return nil
}

func (r *fakePostRepo) AddLike(postID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[postID]
	if !ok {
		return false, fmt.Errorf("post %s not found", postID)
	}
	for _, id := range post.Likes {
		if id == userID {
			return false, nil
		}
	}
	post.Likes = append(post.Likes, userID)
	return true, nil
}

func (r *fakePostRepo) RemoveLike(postID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[postID]
	if !ok {
		return fmt.Errorf("post %s not found", postID)
	}
	kept := post.Likes[:0]
	for _, id := range post.Likes {
		if id != userID {
			kept = append(kept, id)
		}
	}
	post.Likes = kept
	return nil
}

func author() models.Principal {
	return models.Principal{UserID: "user-1", Role: models.RoleResident}
}

func TestCreatePostRequiresContentOrImage(t *testing.T) {
	svc := &DefaultFeedService{Repo: newFakePostRepo()}

	_, err := svc.CreatePost(author(), "   ", nil)
	assert.Error(t, err)

	post, err := svc.CreatePost(author(), "", []string{"https://cdn.example.com/p.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "user-1", post.UserID)
}

func TestLikeIsIdempotent(t *testing.T) {
	repo := newFakePostRepo()
	svc := &DefaultFeedService{Repo: repo}

	post, err := svc.CreatePost(author(), "Pool is open again!", nil)
	require.NoError(t, err)

	added, err := svc.Like(author(), post.ID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = svc.Like(author(), post.ID)
	require.NoError(t, err)
	assert.False(t, added)

	stored, err := repo.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"user-1"}, stored.Likes)
}

func TestUnlike(t *testing.T) {
	repo := newFakePostRepo()
	svc := &DefaultFeedService{Repo: repo}

	post, err := svc.CreatePost(author(), "Pool is open again!", nil)
	require.NoError(t, err)

	_, err = svc.Like(author(), post.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Unlike(author(), post.ID))

	stored, err := repo.GetByID(post.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Likes)
}

func TestDeletePostAuthorization(t *testing.T) {
	repo := newFakePostRepo()
	svc := &DefaultFeedService{Repo: repo}

	post, err := svc.CreatePost(author(), "Selling a bike.", nil)
	require.NoError(t, err)

	other := models.Principal{UserID: "user-2", Role: models.RoleResident}
	assert.Error(t, svc.DeletePost(other, post.ID))

	staff := models.Principal{UserID: "staff-1", Role: models.RoleStaff}
	assert.NoError(t, svc.DeletePost(staff, post.ID))
}

func TestCommentLifecycle(t *testing.T) {
	repo := newFakePostRepo()
	svc := &DefaultFeedService{Repo: repo}

	post, err := svc.CreatePost(author(), "Anyone up for badminton?", nil)
	require.NoError(t, err)

	commenter := models.Principal{UserID: "user-2", Role: models.RoleResident}
	comment, err := svc.AddComment(commenter, post.ID, "Count me in.")
	require.NoError(t, err)

	// A third resident cannot delete someone else's comment.
	stranger := models.Principal{UserID: "user-3", Role: models.RoleResident}
	assert.Error(t, svc.DeleteComment(stranger, post.ID, comment.ID))

	// The comment author can.
	require.NoError(t, svc.DeleteComment(commenter, post.ID, comment.ID))

	stored, err := repo.GetByID(post.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Comments)
}

func TestDeleteCommentMissing(t *testing.T) {
	repo := newFakePostRepo()
	svc := &DefaultFeedService{Repo: repo}

	post, err := svc.CreatePost(author(), "Lost keys near block B.", nil)
	require.NoError(t, err)

	err = svc.DeleteComment(author(), post.ID, "nope")
	assert.Error(t, err)
}
