package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// AppointmentStatus enumerates the lifecycle states of an appointment.
// The numeric values are stored in the database and referenced by the
// partial unique indexes, so they must not be reordered.
type AppointmentStatus int

const (
	StatusPending   AppointmentStatus = 1
	StatusApproved  AppointmentStatus = 2
	StatusRejected  AppointmentStatus = 3
	StatusCompleted AppointmentStatus = 4
)

var statusNames = map[AppointmentStatus]string{
	StatusPending:   "pending",
	StatusApproved:  "approved",
	StatusRejected:  "rejected",
	StatusCompleted: "completed",
}

// Valid reports whether s is one of the known appointment statuses.
func (s AppointmentStatus) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

func (s AppointmentStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// ParseStatus converts a status name ("pending", "approved", ...) into its
// enum value.
func ParseStatus(name string) (AppointmentStatus, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown appointment status %q", name)
}

// MarshalJSON renders the status by name so API clients never see raw enum
// numbers.
func (s AppointmentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts either a status name or its numeric value.
func (s *AppointmentStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, err := ParseStatus(name)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("appointment status must be a string or number")
	}
	*s = AppointmentStatus(n)
	return nil
}

// Appointment is a booking of a member with a trainer for one slot.
// Related entities are referenced by id only; callers resolve details
// through separate lookups.
//
// Date holds the calendar day ("2006-01-02") and Time the minute-granular
// slot ("15:04"). Both are canonicalized by the timeslot package before
// they reach the store, so equality comparisons are exact-slot comparisons.
type Appointment struct {
	ID          int64             `gorm:"primaryKey" json:"id"`
	MemberID    int64             `gorm:"index;not null" json:"member_id"`
	TrainerID   int64             `gorm:"index;not null" json:"trainer_id"`
	ActivityID  int64             `gorm:"not null" json:"activity_id"`
	GymCenterID int64             `gorm:"not null" json:"gym_center_id"`
	Date        string            `gorm:"column:appointment_date;size:10;not null;index" json:"date"`
	Time        string            `gorm:"column:appointment_time;size:5;not null" json:"time"`
	Price       float64           `gorm:"not null" json:"price"`
	Status      AppointmentStatus `gorm:"not null;default:1;index" json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
