package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gym-backend/internal/model"
	"gym-backend/internal/mw"
)

// ListGymCenters returns gym centers. Unauthenticated and member callers
// only see active centers; admins see everything.
func (h *Handler) ListGymCenters(c *gin.Context) {
	q := h.store.DB().WithContext(c.Request.Context()).Order("name")

	claims := mw.ClaimsFrom(c)
	if claims == nil || claims.Role != model.RoleAdmin {
		q = q.Where("is_active = ?", true)
	}

	var centers []model.GymCenter
	if err := q.Find(&centers).Error; err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, centers)
}

// GetGymCenter returns one gym center with its photo gallery and decoded
// opening hours.
func (h *Handler) GetGymCenter(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var center model.GymCenter
	err := h.store.DB().WithContext(ctx).First(&center, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "gym center not found"})
			return
		}
		h.respondError(c, err)
		return
	}

	var photos []model.GymCenterPhoto
	if err := h.store.DB().WithContext(ctx).Where("gym_center_id = ?", id).Find(&photos).Error; err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"gym_center":    center,
		"photos":        photos,
		"opening_hours": model.ParseWorkingHours(center.WorkingHoursJSON),
	})
}

type gymCenterRequest struct {
	Name          string                 `json:"name" binding:"required"`
	Description   string                 `json:"description"`
	Address       string                 `json:"address" binding:"required"`
	Phone         string                 `json:"phone" binding:"required"`
	Email         string                 `json:"email" binding:"required,email"`
	WorkingHours  string                 `json:"working_hours"`
	Advertisement string                 `json:"advertisement"`
	ImageURL      string                 `json:"image_url"`
	IsActive      bool                   `json:"is_active"`
	Photos        []model.GymCenterPhoto `json:"photos"`
}

// CreateGymCenter adds a gym center. Admin only. New centers stay inactive
// until explicitly activated.
func (h *Handler) CreateGymCenter(c *gin.Context) {
	var req gymCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	center := model.GymCenter{
		Name:             req.Name,
		Description:      req.Description,
		Address:          req.Address,
		Phone:            req.Phone,
		Email:            req.Email,
		WorkingHoursJSON: model.NormalizeWorkingHours(req.WorkingHours),
		Advertisement:    req.Advertisement,
		ImageURL:         req.ImageURL,
		IsActive:         req.IsActive,
	}

	err := h.store.DB().WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&center).Error; err != nil {
			return err
		}
		for i := range req.Photos {
			req.Photos[i].ID = 0
			req.Photos[i].GymCenterID = center.ID
		}
		if len(req.Photos) > 0 {
			return tx.Create(&req.Photos).Error
		}
		return nil
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, center)
}

// UpdateGymCenter replaces a gym center and its photo gallery. Admin only.
func (h *Handler) UpdateGymCenter(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req gymCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.store.DB().WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var center model.GymCenter
		if err := tx.First(&center, id).Error; err != nil {
			return err
		}

		center.Name = req.Name
		center.Description = req.Description
		center.Address = req.Address
		center.Phone = req.Phone
		center.Email = req.Email
		center.WorkingHoursJSON = model.NormalizeWorkingHours(req.WorkingHours)
		center.Advertisement = req.Advertisement
		center.ImageURL = req.ImageURL
		center.IsActive = req.IsActive

		if err := tx.Save(&center).Error; err != nil {
			return err
		}

		if err := tx.Where("gym_center_id = ?", id).Delete(&model.GymCenterPhoto{}).Error; err != nil {
			return err
		}
		for i := range req.Photos {
			req.Photos[i].ID = 0
			req.Photos[i].GymCenterID = id
		}
		if len(req.Photos) > 0 {
			return tx.Create(&req.Photos).Error
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "gym center not found"})
			return
		}
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteGymCenter removes a gym center and its photos. Admin only.
func (h *Handler) DeleteGymCenter(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := h.store.DB().WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gym_center_id = ?", id).Delete(&model.GymCenterPhoto{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.GymCenter{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "gym center not found"})
			return
		}
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
