package http

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"tripflux/internal/domain"
	"tripflux/internal/repository"
	"tripflux/internal/service"
	"tripflux/internal/storage"
)

// MediaHandler mantiene dependencias para endpoints de media.
type MediaHandler struct {
	logger *zap.Logger
	media  repository.MediaRepository
	photos storage.PhotoStore
}

func NewMediaHandler(logger *zap.Logger, media repository.MediaRepository, photos storage.PhotoStore) *MediaHandler {
	return &MediaHandler{logger: logger, media: media, photos: photos}
}

// Upload maneja POST /api/media. Espera multipart con el campo "photo".
func (h *MediaHandler) Upload(c *gin.Context) {
	userID, _ := AuthUserID(c)

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Photo file is missing"})
		return
	}

	imageURL, err := h.storePhoto(c, fileHeader)
	if err != nil {
		if errors.Is(err, errUnsupportedPhoto) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Only jpg, jpeg and png files are allowed"})
			return
		}
		h.logger.Error("store photo failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error saving media"})
		return
	}

	now := time.Now().UTC()
	item := domain.Media{
		ID:        uuid.NewString(),
		UserID:    userID,
		ImageURL:  imageURL,
		Caption:   c.PostForm("caption"),
		Location:  c.PostForm("location"),
		IsPublic:  c.PostForm("isPublic") == "true",
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.media.Create(c.Request.Context(), item); err != nil {
		h.logger.Error("create media failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error saving media"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// List maneja GET /api/media.
func (h *MediaHandler) List(c *gin.Context) {
	userID, _ := AuthUserID(c)
	items, err := h.media.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("list media failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get maneja GET /api/media/:id. Lectura pública solo si isPublic.
func (h *MediaHandler) Get(c *gin.Context) {
	userID, _ := AuthUserID(c)
	item, ok := h.fetch(c)
	if !ok {
		return
	}
	if !service.CanView(userID, item.UserID, item.IsPublic) {
		c.JSON(http.StatusForbidden, gin.H{"msg": "Not allowed"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// Update maneja PUT /api/media/:id. La foto es opcional.
func (h *MediaHandler) Update(c *gin.Context) {
	userID, _ := AuthUserID(c)
	item, ok := h.fetch(c)
	if !ok {
		return
	}
	if !service.CanModify(userID, item.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"msg": "Not allowed"})
		return
	}

	if caption := c.PostForm("caption"); caption != "" {
		item.Caption = caption
	}
	if location := c.PostForm("location"); location != "" {
		item.Location = location
	}
	item.IsPublic = c.PostForm("isPublic") == "true"

	if fileHeader, err := c.FormFile("photo"); err == nil {
		imageURL, err := h.storePhoto(c, fileHeader)
		if err != nil {
			if errors.Is(err, errUnsupportedPhoto) {
				c.JSON(http.StatusBadRequest, gin.H{"msg": "Only jpg, jpeg and png files are allowed"})
				return
			}
			h.logger.Error("store photo failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error saving media"})
			return
		}
		item.ImageURL = imageURL
	}
	item.UpdatedAt = time.Now().UTC()

	if err := h.media.Update(c.Request.Context(), item); err != nil {
		h.logger.Error("update media failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete maneja DELETE /api/media/:id.
func (h *MediaHandler) Delete(c *gin.Context) {
	userID, _ := AuthUserID(c)
	item, ok := h.fetch(c)
	if !ok {
		return
	}
	if !service.CanModify(userID, item.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"msg": "Not allowed"})
		return
	}
	if err := h.media.Delete(c.Request.Context(), item.ID); err != nil {
		h.logger.Error("delete media failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Media deleted successfully"})
}

func (h *MediaHandler) fetch(c *gin.Context) (domain.Media, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Media not found"})
		return domain.Media{}, false
	}
	item, err := h.media.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Media not found"})
			return domain.Media{}, false
		}
		h.logger.Error("fetch media failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return domain.Media{}, false
	}
	return item, true
}

var errUnsupportedPhoto = errors.New("unsupported photo format")

// storePhoto sube el archivo al object store y devuelve su URL pública.
// Solo se aceptan jpg, jpeg y png.
func (h *MediaHandler) storePhoto(c *gin.Context, fileHeader *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		return "", errUnsupportedPhoto
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectName := uuid.NewString() + ext
	return h.photos.Save(c.Request.Context(), objectName, file, fileHeader.Size, contentType)
}
