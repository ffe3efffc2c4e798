package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gym-backend/internal/model"
	"gym-backend/internal/mw"
)

type putSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	P256DH   string `json:"p256dh" binding:"required"`
	Auth     string `json:"auth" binding:"required"`
}

// PutSubscription registers or refreshes a push subscription for the
// calling member. The endpoint is the natural key; re-registering the same
// endpoint just updates the crypto material.
func (h *Handler) PutSubscription(c *gin.Context) {
	claims := mw.ClaimsFrom(c)
	if claims.MemberID <= 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "push subscriptions require a member profile"})
		return
	}

	var req putSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subscription := model.PushSubscription{
		Endpoint: req.Endpoint,
		P256DH:   req.P256DH,
		Auth:     req.Auth,
		MemberID: claims.MemberID,
	}

	err := h.store.DB().WithContext(c.Request.Context()).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth", "member_id"}),
	}).Create(&subscription).Error
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

// GetSubscription reports whether the given endpoint is registered to the
// calling member.
func (h *Handler) GetSubscription(c *gin.Context) {
	claims := mw.ClaimsFrom(c)
	endpoint := c.Query("endpoint")
	if endpoint == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endpoint is required"})
		return
	}

	var subscription model.PushSubscription
	err := h.store.DB().WithContext(c.Request.Context()).
		Where("endpoint = ? AND member_id = ?", endpoint, claims.MemberID).
		First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "subscription not found"})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"endpoint": subscription.Endpoint})
}

type deleteSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

// DeleteSubscription removes a push subscription. Members can only delete
// their own endpoints.
func (h *Handler) DeleteSubscription(c *gin.Context) {
	claims := mw.ClaimsFrom(c)

	var req deleteSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.store.DB().WithContext(c.Request.Context()).
		Where("endpoint = ? AND member_id = ?", req.Endpoint, claims.MemberID).
		Delete(&model.PushSubscription{}).Error
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetVAPIDPublicKey exposes the server's VAPID public key so the frontend
// can subscribe to push notifications.
func (h *Handler) GetVAPIDPublicKey(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"public_key": h.cfg.Push.PublicKey})
}
