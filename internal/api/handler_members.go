package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gym-backend/internal/model"
	"gym-backend/internal/mw"
)

// ListMembers returns all members. Admin only.
func (h *Handler) ListMembers(c *gin.Context) {
	var members []model.Member
	err := h.store.DB().WithContext(c.Request.Context()).
		Order("last_name, first_name").
		Find(&members).Error
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// GetMember returns one member by id. Admin only.
func (h *Handler) GetMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var member model.Member
	err := h.store.DB().WithContext(c.Request.Context()).First(&member, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// GetOwnMember returns the calling member's profile.
func (h *Handler) GetOwnMember(c *gin.Context) {
	claims := mw.ClaimsFrom(c)
	if claims.MemberID <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no member profile"})
		return
	}

	var member model.Member
	err := h.store.DB().WithContext(c.Request.Context()).First(&member, claims.MemberID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

type updateMemberRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
}

// UpdateOwnMember updates the calling member's profile. Email and
// credentials are not editable here.
func (h *Handler) UpdateOwnMember(c *gin.Context) {
	claims := mw.ClaimsFrom(c)
	if claims.MemberID <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no member profile"})
		return
	}

	var req updateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	var member model.Member
	if err := h.store.DB().WithContext(ctx).First(&member, claims.MemberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		h.respondError(c, err)
		return
	}

	member.FirstName = req.FirstName
	member.LastName = req.LastName
	member.Phone = req.Phone
	if err := h.store.DB().WithContext(ctx).Save(&member).Error; err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}
