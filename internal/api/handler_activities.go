package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gym-backend/internal/model"
)

// ListActivities returns the activity catalog, optionally filtered by gym
// center and type.
func (h *Handler) ListActivities(c *gin.Context) {
	q := h.store.DB().WithContext(c.Request.Context()).Order("name")
	if v := c.Query("gym_center_id"); v != "" {
		q = q.Where("gym_center_id = ?", v)
	}
	if v := c.Query("type"); v != "" {
		q = q.Where("type = ?", v)
	}

	var activities []model.Activity
	if err := q.Find(&activities).Error; err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}

// GetActivity returns one activity by id.
func (h *Handler) GetActivity(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var activity model.Activity
	err := h.store.DB().WithContext(c.Request.Context()).First(&activity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activity)
}

type activityRequest struct {
	GymCenterID int64              `json:"gym_center_id" binding:"required"`
	Name        string             `json:"name" binding:"required"`
	Description string             `json:"description"`
	Type        model.ActivityType `json:"type" binding:"required"`
	Duration    int                `json:"duration" binding:"required,min=1"`
	Price       float64            `json:"price" binding:"min=0"`
	ImageURL    string             `json:"image_url"`
}

// CreateActivity adds an activity to the catalog. Admin only.
func (h *Handler) CreateActivity(c *gin.Context) {
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activity := model.Activity{
		GymCenterID: req.GymCenterID,
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Duration:    req.Duration,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	}
	if err := h.store.DB().WithContext(c.Request.Context()).Create(&activity).Error; err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, activity)
}

// UpdateActivity replaces an activity. Admin only.
func (h *Handler) UpdateActivity(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	var activity model.Activity
	if err := h.store.DB().WithContext(ctx).First(&activity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
			return
		}
		h.respondError(c, err)
		return
	}

	activity.GymCenterID = req.GymCenterID
	activity.Name = req.Name
	activity.Description = req.Description
	activity.Type = req.Type
	activity.Duration = req.Duration
	activity.Price = req.Price
	activity.ImageURL = req.ImageURL

	if err := h.store.DB().WithContext(ctx).Save(&activity).Error; err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activity)
}

// DeleteActivity removes an activity from the catalog. Admin only.
func (h *Handler) DeleteActivity(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res := h.store.DB().WithContext(c.Request.Context()).Delete(&model.Activity{}, id)
	if res.Error != nil {
		h.respondError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
