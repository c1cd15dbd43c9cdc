package postRepo

import (
	"stayease/models"

	"go.mongodb.org/mongo-driver/bson"
)

// PostRepository defines methods for community feed access. Comments and
// likes are embedded arrays mutated with array-update operators so edits
// never rewrite the whole document.
type PostRepository interface {
	GetByID(id string) (*models.Post, error)
	// List retrieves posts matching the filter, newest first, with
	// skip/limit paging.
	List(filter bson.M, skip, limit int64) ([]models.Post, error)
	Create(post *models.Post) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	// PushComment appends a comment to the post.
	PushComment(id string, comment models.Comment) error
	// PullComment removes a comment by its ID.
	PullComment(id, commentID string) error
	// AddLike adds the user to the post's like set. Returns true when the
	// like was new, false when the user had already liked the post.
	AddLike(id, userID string) (bool, error)
	// RemoveLike removes the user from the post's like set.
	RemoveLike(id, userID string) error
	Delete(id string) error
}
