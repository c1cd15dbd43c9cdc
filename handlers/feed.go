package handlers

import (
	"net/http"

	"stayease/middleware"
	"stayease/services/feed"

	"github.com/gin-gonic/gin"
)

// FeedHandler serves the community feed.
type FeedHandler struct {
	Service feed.FeedService
}

func NewFeedHandler(svc feed.FeedService) *FeedHandler {
	return &FeedHandler{Service: svc}
}

// ListHandler handles GET /api/posts. Passing ?userId= narrows the feed to
// one author.
func (h *FeedHandler) ListHandler(c *gin.Context) {
	skip, limit := pageParams(c)

	var err error
	var posts interface{}
	if userID := c.Query("userId"); userID != "" {
		posts, err = h.Service.ListPostsByUser(userID, skip, limit)
	} else {
		posts, err = h.Service.ListPosts(skip, limit)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetHandler handles GET /api/posts/:id.
func (h *FeedHandler) GetHandler(c *gin.Context) {
	post, err := h.Service.GetPost(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreateHandler handles POST /api/posts.
func (h *FeedHandler) CreateHandler(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	var req struct {
		Content   string   `json:"content"`
		ImageURLs []string `json:"imageUrls"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.Service.CreatePost(p, req.Content, req.ImageURLs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, post)
}

// DeleteHandler handles DELETE /api/posts/:id.
func (h *FeedHandler) DeleteHandler(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)
	if err := h.Service.DeletePost(p, c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// AddCommentHandler handles POST /api/posts/:id/comments.
func (h *FeedHandler) AddCommentHandler(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.Service.AddComment(p, c.Param("id"), req.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// DeleteCommentHandler handles DELETE /api/posts/:id/comments/:commentId.
func (h *FeedHandler) DeleteCommentHandler(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)
	if err := h.Service.DeleteComment(p, c.Param("id"), c.Param("commentId")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

// LikeHandler handles PUT /api/posts/:id/like. Liking an already-liked post
// is a no-op.
func (h *FeedHandler) LikeHandler(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	added, err := h.Service.Like(p, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": true, "added": added})
}

// UnlikeHandler handles DELETE /api/posts/:id/like.
func (h *FeedHandler) UnlikeHandler(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)
	if err := h.Service.Unlike(p, c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": false})
}
