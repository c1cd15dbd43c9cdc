package models

import "time"

// Comment is embedded on the post document.
type Comment struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Post is a community feed entry. Comments are an embedded array mutated
// with $push/$pull; likes are a set of user IDs mutated with
// $addToSet/$pull so a user can like a post at most once without a
// whole-document rewrite.
type Post struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	Content   string    `bson:"content" json:"content"`
	ImageURLs []string  `bson:"image_urls,omitempty" json:"imageUrls,omitempty"`
	Comments  []Comment `bson:"comments,omitempty" json:"comments,omitempty"`
	Likes     []string  `bson:"likes,omitempty" json:"likes,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
