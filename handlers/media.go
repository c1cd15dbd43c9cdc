package handlers

import (
	"net/http"

	"stayease/services/storage"
	"stayease/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// allowed upload folders keep user content partitioned by feature.
var uploadFolders = map[string]bool{
	"posts":    true,
	"requests": true,
	"avatars":  true,
}

// MediaHandler serves media uploads backing posts, tickets, and avatars.
type MediaHandler struct {
	Storage storage.StorageService
}

func NewMediaHandler(svc storage.StorageService) *MediaHandler {
	return &MediaHandler{Storage: svc}
}

// UploadHandler handles POST /api/media/upload. The multipart form carries
// the file under "file" and the target feature under "folder".
func (h *MediaHandler) UploadHandler(c *gin.Context) {
	if h.Storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Media storage is not configured"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file is required"})
		return
	}

	folder := c.PostForm("folder")
	if !uploadFolders[folder] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown upload folder"})
		return
	}

	publicID, err := h.Storage.UploadFile(c.Request.Context(), file, folder)
	if err != nil {
		utils.GetLogger().Error("Media upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	url, err := h.Storage.GetDownloadURL(c.Request.Context(), "image", publicID)
	if err != nil {
		utils.GetLogger().Error("Media URL build failed", zap.String("publicID", publicID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"publicId": publicID, "url": url})
}
