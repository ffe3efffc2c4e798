package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gym-backend/internal/auth"
	"gym-backend/internal/model"
)

type registerRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
}

// Register creates a member account. The user row carries the credentials,
// the member row the profile; both are written in one transaction.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	user := model.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RoleMember,
	}
	member := model.Member{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		PasswordHash:     hash,
		RegistrationDate: time.Now(),
	}

	err = h.store.DB().WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		member.UserID = &user.ID
		return tx.Create(&member).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		h.respondError(c, err)
		return
	}

	h.logger.Info("member registered",
		zap.Int64("user_id", user.ID),
		zap.Int64("member_id", member.ID),
	)

	token, err := auth.IssueToken(h.cfg.Auth.JWTSecret, h.cfg.Auth.TokenTTL(), user.ID, member.ID, user.Role)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":  token,
		"member": member,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and returns a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	var user model.User
	err := h.store.DB().WithContext(ctx).Where("email = ?", req.Email).First(&user).Error
	if err != nil || !auth.VerifyPassword(user.PasswordHash, req.Password) {
		// Same response for unknown email and bad password.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	var memberID int64
	if user.Role == model.RoleMember {
		var member model.Member
		if err := h.store.DB().WithContext(ctx).Where("user_id = ?", user.ID).First(&member).Error; err == nil {
			memberID = member.ID
		}
	}

	token, err := auth.IssueToken(h.cfg.Auth.JWTSecret, h.cfg.Auth.TokenTTL(), user.ID, memberID, user.Role)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"role":  user.Role,
	})
}
