package model

import "time"

// Trainer represents a trainer employed by a gym center.
//
// WorkingHoursJSON stores the weekly schedule as a JSON array of
// WorkingHoursEntry values; see workinghours.go.
type Trainer struct {
	ID               int64     `gorm:"primaryKey" json:"id"`
	FirstName        string    `gorm:"size:128;not null" json:"first_name"`
	LastName         string    `gorm:"size:128;not null" json:"last_name"`
	Email            string    `gorm:"uniqueIndex;size:256;not null" json:"email"`
	Phone            string    `gorm:"size:32;not null" json:"phone"`
	GymCenterID      int64     `gorm:"index;not null" json:"gym_center_id"`
	Specialization   string    `gorm:"size:256;not null" json:"specialization"`
	WorkingHoursJSON string    `gorm:"column:working_hours_json;not null;default:'[]'" json:"working_hours"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}

// TrainerActivity links a trainer to an activity they can run.
type TrainerActivity struct {
	ID         int64 `gorm:"primaryKey" json:"id"`
	TrainerID  int64 `gorm:"index:idx_trainer_activity,unique;not null" json:"trainer_id"`
	ActivityID int64 `gorm:"index:idx_trainer_activity,unique;not null" json:"activity_id"`
}
