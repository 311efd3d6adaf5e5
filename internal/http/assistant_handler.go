package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripflux/internal/service"
)

// AssistantHandler mantiene dependencias para el asistente de viajes.
type AssistantHandler struct {
	logger    *zap.Logger
	assistant *service.AssistantService
}

func NewAssistantHandler(logger *zap.Logger, assistant *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{logger: logger, assistant: assistant}
}

// Suggest maneja POST /api/ai-assistant.
func (h *AssistantHandler) Suggest(c *gin.Context) {
	var req service.AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request"})
		return
	}

	text, err := h.assistant.Suggest(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUnknownRequestType) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Unknown request type"})
			return
		}
		h.logger.Error("assistant request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Something went wrong generating response"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": text})
}
