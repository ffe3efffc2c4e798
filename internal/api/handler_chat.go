package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gym-backend/internal/model"
	"gym-backend/internal/mw"
)

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// Chat forwards a member question to the AI assistant and records the
// exchange. The history is stored even when the assistant fails so members
// can see their unanswered questions.
func (h *Handler) Chat(c *gin.Context) {
	claims := mw.ClaimsFrom(c)
	if claims.MemberID <= 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "chat is only available to members"})
		return
	}

	if h.ai == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat assistant is not available"})
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	answer, chatErr := h.ai.Chat(ctx, req.Message)

	record := model.ChatMessage{
		MemberID: claims.MemberID,
		Message:  req.Message,
		Response: answer,
	}
	if err := h.store.DB().WithContext(ctx).Create(&record).Error; err != nil {
		h.logger.Warn("failed to persist chat message", zap.Error(err))
	}

	if chatErr != nil {
		h.logger.Warn("chat assistant call failed", zap.Error(chatErr))
		c.JSON(http.StatusBadGateway, gin.H{"error": "assistant is unavailable, try again later"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetChatHistory returns the calling member's chat history, newest first.
func (h *Handler) GetChatHistory(c *gin.Context) {
	claims := mw.ClaimsFrom(c)
	if claims.MemberID <= 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "chat is only available to members"})
		return
	}

	var messages []model.ChatMessage
	err := h.store.DB().WithContext(c.Request.Context()).
		Where("member_id = ?", claims.MemberID).
		Order("created_at DESC").
		Limit(100).
		Find(&messages).Error
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}
