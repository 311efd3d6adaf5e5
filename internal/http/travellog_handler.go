package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"tripflux/internal/domain"
	"tripflux/internal/repository"
	"tripflux/internal/service"
)

// TravelLogHandler mantiene dependencias para endpoints de travel logs.
type TravelLogHandler struct {
	logger *zap.Logger
	logs   repository.TravelLogRepository
}

func NewTravelLogHandler(logger *zap.Logger, logs repository.TravelLogRepository) *TravelLogHandler {
	return &TravelLogHandler{logger: logger, logs: logs}
}

// ListPublic maneja GET /api/travelLogs/public. No requiere autenticación.
func (h *TravelLogHandler) ListPublic(c *gin.Context) {
	logs, err := h.logs.ListPublic(c.Request.Context())
	if err != nil {
		h.logger.Error("list public logs failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// List maneja GET /api/travelLogs.
func (h *TravelLogHandler) List(c *gin.Context) {
	userID, _ := AuthUserID(c)
	logs, err := h.logs.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("list logs failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// Get maneja GET /api/travelLogs/:id. Lectura para dueño, miembros o
// cualquiera si el log es público.
func (h *TravelLogHandler) Get(c *gin.Context) {
	userID, _ := AuthUserID(c)
	log, ok := h.fetch(c)
	if !ok {
		return
	}

	if !service.CanView(userID, log.UserID, log.IsPublic) && !log.HasMember(userID) {
		c.JSON(http.StatusForbidden, gin.H{"msg": "Not allowed"})
		return
	}
	c.JSON(http.StatusOK, log)
}

// Create maneja POST /api/travelLogs.
func (h *TravelLogHandler) Create(c *gin.Context) {
	userID, _ := AuthUserID(c)

	var req struct {
		Title       string     `json:"title"`
		Destination string     `json:"destination"`
		Description string     `json:"description"`
		Status      string     `json:"status"`
		Latitude    *float64   `json:"latitude"`
		Longitude   *float64   `json:"longitude"`
		IsPublic    bool       `json:"isPublic"`
		Date        *time.Time `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request"})
		return
	}
	if req.Title == "" || req.Destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Title and destination are required"})
		return
	}
	status := req.Status
	if status == "" {
		status = domain.StatusVisited
	}
	if !domain.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid status"})
		return
	}

	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = *req.Date
	}
	log := domain.TravelLog{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       req.Title,
		Destination: req.Destination,
		Description: req.Description,
		Status:      status,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		IsPublic:    req.IsPublic,
		Date:        date,
		Members:     []string{},
		Likes:       []string{},
		Bookmarks:   []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.logs.Create(c.Request.Context(), log); err != nil {
		h.logger.Error("create log failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, log)
}

// Update maneja PUT /api/travelLogs/:id.
func (h *TravelLogHandler) Update(c *gin.Context) {
	userID, _ := AuthUserID(c)
	log, ok := h.fetch(c)
	if !ok {
		return
	}
	if !service.CanModify(userID, log.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"msg": "Not allowed"})
		return
	}

	var req struct {
		Title       *string    `json:"title"`
		Destination *string    `json:"destination"`
		Description *string    `json:"description"`
		Status      *string    `json:"status"`
		Latitude    *float64   `json:"latitude"`
		Longitude   *float64   `json:"longitude"`
		IsPublic    *bool      `json:"isPublic"`
		Date        *time.Time `json:"date"`
		Members     []string   `json:"members"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request"})
		return
	}

	if req.Title != nil {
		log.Title = *req.Title
	}
	if req.Destination != nil {
		log.Destination = *req.Destination
	}
	if req.Description != nil {
		log.Description = *req.Description
	}
	if req.Status != nil {
		if !domain.ValidStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid status"})
			return
		}
		log.Status = *req.Status
	}
	if req.Latitude != nil {
		log.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		log.Longitude = req.Longitude
	}
	if req.IsPublic != nil {
		log.IsPublic = *req.IsPublic
	}
	if req.Date != nil {
		log.Date = *req.Date
	}
	if req.Members != nil {
		log.Members = req.Members
	}
	log.UpdatedAt = time.Now().UTC()

	if err := h.logs.Update(c.Request.Context(), log); err != nil {
		h.logger.Error("update log failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, log)
}

// Delete maneja DELETE /api/travelLogs/:id.
func (h *TravelLogHandler) Delete(c *gin.Context) {
	userID, _ := AuthUserID(c)
	log, ok := h.fetch(c)
	if !ok {
		return
	}
	if !service.CanModify(userID, log.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"msg": "Not allowed"})
		return
	}
	if err := h.logs.Delete(c.Request.Context(), log.ID); err != nil {
		h.logger.Error("delete log failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Travel log removed"})
}

// Like maneja PUT /api/travelLogs/like/:id.
func (h *TravelLogHandler) Like(c *gin.Context) {
	userID, _ := AuthUserID(c)
	log, ok := h.fetch(c)
	if !ok {
		return
	}
	if contains(log.Likes, userID) {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Already liked"})
		return
	}
	likes := append([]string{userID}, log.Likes...)
	if err := h.logs.SetLikes(c.Request.Context(), log.ID, likes); err != nil {
		h.logger.Error("like log failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, likes)
}

// Unlike maneja PUT /api/travelLogs/unlike/:id.
func (h *TravelLogHandler) Unlike(c *gin.Context) {
	userID, _ := AuthUserID(c)
	log, ok := h.fetch(c)
	if !ok {
		return
	}
	likes := remove(log.Likes, userID)
	if err := h.logs.SetLikes(c.Request.Context(), log.ID, likes); err != nil {
		h.logger.Error("unlike log failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, likes)
}

// Bookmark maneja PUT /api/travelLogs/bookmark/:id.
func (h *TravelLogHandler) Bookmark(c *gin.Context) {
	userID, _ := AuthUserID(c)
	log, ok := h.fetch(c)
	if !ok {
		return
	}
	if contains(log.Bookmarks, userID) {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Already bookmarked"})
		return
	}
	bookmarks := append([]string{userID}, log.Bookmarks...)
	if err := h.logs.SetBookmarks(c.Request.Context(), log.ID, bookmarks); err != nil {
		h.logger.Error("bookmark log failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, bookmarks)
}

// Unbookmark maneja PUT /api/travelLogs/unbookmark/:id.
func (h *TravelLogHandler) Unbookmark(c *gin.Context) {
	userID, _ := AuthUserID(c)
	log, ok := h.fetch(c)
	if !ok {
		return
	}
	bookmarks := remove(log.Bookmarks, userID)
	if err := h.logs.SetBookmarks(c.Request.Context(), log.ID, bookmarks); err != nil {
		h.logger.Error("unbookmark log failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, bookmarks)
}

// fetch resuelve el log del path param; responde 404 si no existe.
// Un id que no es UUID también cuenta como inexistente.
func (h *TravelLogHandler) fetch(c *gin.Context) (domain.TravelLog, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Log not found"})
		return domain.TravelLog{}, false
	}
	log, err := h.logs.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Log not found"})
			return domain.TravelLog{}, false
		}
		h.logger.Error("fetch log failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return domain.TravelLog{}, false
	}
	return log, true
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
