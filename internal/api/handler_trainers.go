package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gym-backend/internal/model"
)

// ListTrainers returns all trainers, optionally filtered by gym center.
func (h *Handler) ListTrainers(c *gin.Context) {
	q := h.store.DB().WithContext(c.Request.Context()).Order("last_name, first_name")
	if v := c.Query("gym_center_id"); v != "" {
		q = q.Where("gym_center_id = ?", v)
	}

	var trainers []model.Trainer
	if err := q.Find(&trainers).Error; err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trainers)
}

// GetTrainer returns one trainer together with a decoded schedule.
func (h *Handler) GetTrainer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var trainer model.Trainer
	err := h.store.DB().WithContext(c.Request.Context()).First(&trainer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "trainer not found"})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trainer":  trainer,
		"schedule": model.ParseWorkingHours(trainer.WorkingHoursJSON),
	})
}

type trainerRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"required"`
	GymCenterID    int64  `json:"gym_center_id" binding:"required"`
	Specialization string `json:"specialization" binding:"required"`
	WorkingHours   string `json:"working_hours"`
}

// CreateTrainer adds a trainer. Admin only.
func (h *Handler) CreateTrainer(c *gin.Context) {
	var req trainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trainer := model.Trainer{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		GymCenterID:      req.GymCenterID,
		Specialization:   req.Specialization,
		WorkingHoursJSON: model.NormalizeWorkingHours(req.WorkingHours),
	}
	if err := h.store.DB().WithContext(c.Request.Context()).Create(&trainer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "trainer email already in use"})
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trainer)
}

// UpdateTrainer replaces a trainer's profile. Admin only.
func (h *Handler) UpdateTrainer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req trainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	var trainer model.Trainer
	if err := h.store.DB().WithContext(ctx).First(&trainer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "trainer not found"})
			return
		}
		h.respondError(c, err)
		return
	}

	trainer.FirstName = req.FirstName
	trainer.LastName = req.LastName
	trainer.Email = req.Email
	trainer.Phone = req.Phone
	trainer.GymCenterID = req.GymCenterID
	trainer.Specialization = req.Specialization
	trainer.WorkingHoursJSON = model.NormalizeWorkingHours(req.WorkingHours)

	if err := h.store.DB().WithContext(ctx).Save(&trainer).Error; err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trainer)
}

// DeleteTrainer removes a trainer and their activity links. Admin only.
func (h *Handler) DeleteTrainer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := h.store.DB().WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trainer_id = ?", id).Delete(&model.TrainerActivity{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Trainer{}, id)
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
			c.JSON(http.StatusNotFound, gin.H{"error": "trainer not found"})
			return
		}
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTrainerActivities returns the activities a trainer can run.
func (h *Handler) ListTrainerActivities(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var activities []model.Activity
	err := h.store.DB().WithContext(c.Request.Context()).
		Joins("JOIN trainer_activities ta ON ta.activity_id = activities.id").
		Where("ta.trainer_id = ?", id).
		Order("activities.name").
		Find(&activities).Error
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}

type setTrainerActivitiesRequest struct {
	ActivityIDs []int64 `json:"activity_ids"`
}

// SetTrainerActivities replaces a trainer's activity links. Admin only.
func (h *Handler) SetTrainerActivities(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req setTrainerActivitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.store.DB().WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var trainer model.Trainer
		if err := tx.First(&trainer, id).Error; err != nil {
			return err
		}
		if err := tx.Where("trainer_id = ?", id).Delete(&model.TrainerActivity{}).Error; err != nil {
			return err
		}
		for _, activityID := range req.ActivityIDs {
			link := model.TrainerActivity{TrainerID: id, ActivityID: activityID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "trainer not found"})
			return
		}
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
