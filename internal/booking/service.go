// Package booking owns the appointment lifecycle: creation, status
// transitions and the approved-slot conflict rules. All appointment
// mutation in the application goes through this service.
package booking

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gym-backend/internal/model"
	"gym-backend/internal/store"
	"gym-backend/internal/timeslot"
)

// ValidationError reports a rejected request field before any storage work
// happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CreateRequest carries a booking request. Status is ignored: a new
// appointment always starts out pending, no matter what the caller sends.
type CreateRequest struct {
	MemberID    int64                   `json:"member_id"`
	TrainerID   int64                   `json:"trainer_id"`
	ActivityID  int64                   `json:"activity_id"`
	GymCenterID int64                   `json:"gym_center_id"`
	Date        string                  `json:"date"`
	Time        string                  `json:"time"`
	Price       float64                 `json:"price"`
	Status      model.AppointmentStatus `json:"status,omitempty"`
}

// Service is the appointment lifecycle manager.
type Service struct {
	store  store.Store
	logger *zap.Logger
}

// NewService creates a booking service on top of the given store.
func NewService(st store.Store, logger *zap.Logger) *Service {
	return &Service{store: st, logger: logger}
}

func (s *Service) validate(req *CreateRequest) error {
	switch {
	case req.MemberID <= 0:
		return &ValidationError{Field: "member_id", Reason: "required"}
	case req.TrainerID <= 0:
		return &ValidationError{Field: "trainer_id", Reason: "required"}
	case req.ActivityID <= 0:
		return &ValidationError{Field: "activity_id", Reason: "required"}
	case req.GymCenterID <= 0:
		return &ValidationError{Field: "gym_center_id", Reason: "required"}
	case req.Price < 0:
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}

	date, err := timeslot.CanonicalDate(req.Date)
	if err != nil {
		return &ValidationError{Field: "date", Reason: err.Error()}
	}
	slot, err := timeslot.CanonicalTime(req.Time)
	if err != nil {
		return &ValidationError{Field: "time", Reason: err.Error()}
	}
	req.Date, req.Time = date, slot
	return nil
}

// Create books a new appointment. The candidate slot is checked against
// approved appointments on the trainer side and then on the member side
// before the store's transactional guard performs the authoritative
// re-check and insert.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*model.Appointment, error) {
	if err := s.validate(&req); err != nil {
		return nil, err
	}

	taken, err := s.store.ApprovedSlotTakenForTrainer(ctx, req.TrainerID, req.Date, req.Time)
	if err != nil {
		return nil, fmt.Errorf("trainer availability check: %w", err)
	}
	if taken {
		return nil, store.ErrTrainerSlotConflict
	}

	taken, err = s.store.ApprovedSlotTakenForMember(ctx, req.MemberID, req.Date, req.Time)
	if err != nil {
		return nil, fmt.Errorf("member availability check: %w", err)
	}
	if taken {
		return nil, store.ErrMemberSlotConflict
	}

	appt := &model.Appointment{
		MemberID:    req.MemberID,
		TrainerID:   req.TrainerID,
		ActivityID:  req.ActivityID,
		GymCenterID: req.GymCenterID,
		Date:        req.Date,
		Time:        req.Time,
		Price:       req.Price,
		Status:      model.StatusPending,
	}
	if err := s.store.CreateAppointment(ctx, appt); err != nil {
		return nil, err
	}

	s.logger.Info("appointment created",
		zap.Int64("appointment_id", appt.ID),
		zap.Int64("member_id", appt.MemberID),
		zap.Int64("trainer_id", appt.TrainerID),
		zap.String("date", appt.Date),
		zap.String("time", appt.Time),
	)
	return appt, nil
}

// UpdateStatus moves an appointment to a new status. Approval is guarded
// against slot conflicts by the store; every other status is applied as-is.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) (*model.Appointment, error) {
	if !status.Valid() {
		return nil, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %d", int(status))}
	}

	appt, err := s.store.UpdateAppointmentStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info("appointment status updated",
		zap.Int64("appointment_id", appt.ID),
		zap.String("status", appt.Status.String()),
	)
	return appt, nil
}

// Get returns one appointment by id.
func (s *Service) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	return s.store.GetAppointment(ctx, id)
}

// Delete removes an appointment. Nothing else is touched: once an approved
// row is gone its slot is free again.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteAppointment(ctx, id); err != nil {
		return err
	}
	s.logger.Info("appointment deleted", zap.Int64("appointment_id", id))
	return nil
}

// ListForMember returns a member's appointments, newest first.
func (s *Service) ListForMember(ctx context.Context, memberID int64) ([]model.Appointment, error) {
	return s.store.ListAppointments(ctx, store.AppointmentFilter{MemberID: memberID})
}

// ListForTrainer returns a trainer's appointments, newest first.
func (s *Service) ListForTrainer(ctx context.Context, trainerID int64) ([]model.Appointment, error) {
	return s.store.ListAppointments(ctx, store.AppointmentFilter{TrainerID: trainerID})
}

// ListAll returns appointments matching the filter.
func (s *Service) ListAll(ctx context.Context, f store.AppointmentFilter) ([]model.Appointment, error) {
	return s.store.ListAppointments(ctx, f)
}

// IsTrainerSlotTaken reports whether the trainer holds an approved
// appointment at the given slot. Read-only; used to pre-filter selectable
// times before submission.
func (s *Service) IsTrainerSlotTaken(ctx context.Context, trainerID int64, date, timeOfDay string) (bool, error) {
	d, err := timeslot.CanonicalDate(date)
	if err != nil {
		return false, &ValidationError{Field: "date", Reason: err.Error()}
	}
	slot, err := timeslot.CanonicalTime(timeOfDay)
	if err != nil {
		return false, &ValidationError{Field: "time", Reason: err.Error()}
	}
	return s.store.ApprovedSlotTakenForTrainer(ctx, trainerID, d, slot)
}

// IsMemberSlotTaken is the member-side counterpart of IsTrainerSlotTaken.
func (s *Service) IsMemberSlotTaken(ctx context.Context, memberID int64, date, timeOfDay string) (bool, error) {
	d, err := timeslot.CanonicalDate(date)
	if err != nil {
		return false, &ValidationError{Field: "date", Reason: err.Error()}
	}
	slot, err := timeslot.CanonicalTime(timeOfDay)
	if err != nil {
		return false, &ValidationError{Field: "time", Reason: err.Error()}
	}
	return s.store.ApprovedSlotTakenForMember(ctx, memberID, d, slot)
}

// BookedTimes returns the approved slot times on date that the booking form
// should not offer for the given trainer and member.
func (s *Service) BookedTimes(ctx context.Context, trainerID, memberID int64, date string) ([]string, error) {
	d, err := timeslot.CanonicalDate(date)
	if err != nil {
		return nil, &ValidationError{Field: "date", Reason: err.Error()}
	}
	return s.store.BookedSlots(ctx, trainerID, memberID, d)
}
