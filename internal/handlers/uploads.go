package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eusluer/bosphorus-fellas-api/internal/service"
)

type uploadResponse struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	FilePath string `json:"filePath"`
	Size     int64  `json:"size"`
}

func (h HandlerSet) Upload(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	folder := c.PostForm("folder")
	if folder == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "folder is required"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.cfg.Upload.MaxFileSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}

	result, err := h.uploads.Upload(c.Request.Context(), data, folder)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileTooLarge):
			c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the size limit"})
		case errors.Is(err, service.ErrInvalidFolder):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown upload folder"})
		case errors.Is(err, service.ErrNotAnImage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "file must be an image"})
		case errors.Is(err, service.ErrEmptyFile):
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is empty"})
		default:
			h.log.Error().Err(err).Msg("upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusCreated, uploadResponse{
		URL:      result.URL,
		FileName: result.FileName,
		FilePath: result.FilePath,
		Size:     result.Size,
	})
}

type deleteUploadRequest struct {
	FilePath string `json:"filePath" binding:"required"`
}

func (h HandlerSet) DeleteUpload(c *gin.Context) {
	var req deleteUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.uploads.Delete(c.Request.Context(), req.FilePath); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidFolder), errors.Is(err, service.ErrInvalidPath):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file path"})
		default:
			h.log.Error().Err(err).Msg("upload delete failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
