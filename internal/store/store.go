package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gym-backend/internal/model"
)

// Booking conflicts and lookup failures surfaced by the appointment engine.
// Conflict checks only ever consider rows with status approved; pending,
// rejected and completed rows never block a slot.
var (
	// ErrTrainerSlotConflict: the trainer already holds an approved
	// appointment at the requested slot.
	ErrTrainerSlotConflict = errors.New("trainer already has an approved appointment at this slot")
	// ErrMemberSlotConflict: the member already holds an approved
	// appointment at the requested slot.
	ErrMemberSlotConflict = errors.New("member already has an approved appointment at this slot")
	// ErrApprovalConflict: approving this appointment would collide with an
	// approved appointment occupying the same slot.
	ErrApprovalConflict = errors.New("another approved appointment already occupies this slot")
	// ErrAppointmentNotFound: the referenced appointment id does not exist.
	ErrAppointmentNotFound = errors.New("appointment not found")
)

// AppointmentFilter narrows ListAppointments. Zero values mean "any".
type AppointmentFilter struct {
	MemberID  int64
	TrainerID int64
	Status    model.AppointmentStatus
	Date      string
}

// Store defines the database operations of the appointment engine. Plain
// registry CRUD goes through DB() directly.
type Store interface {
	DB() *gorm.DB

	ApprovedSlotTakenForTrainer(ctx context.Context, trainerID int64, date, slot string) (bool, error)
	ApprovedSlotTakenForMember(ctx context.Context, memberID int64, date, slot string) (bool, error)

	CreateAppointment(ctx context.Context, appt *model.Appointment) error
	UpdateAppointmentStatus(ctx context.Context, id int64, status model.AppointmentStatus) (*model.Appointment, error)
	GetAppointment(ctx context.Context, id int64) (*model.Appointment, error)
	DeleteAppointment(ctx context.Context, id int64) error
	ListAppointments(ctx context.Context, f AppointmentFilter) ([]model.Appointment, error)
	BookedSlots(ctx context.Context, trainerID, memberID int64, date string) ([]string, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// approvedSlotTaken reports whether an approved appointment with the given
// subject id already occupies (date, slot). The column parameter selects the
// subject side and is always one of two fixed names, never caller input.
func approvedSlotTaken(tx *gorm.DB, column string, id int64, date, slot string) (bool, error) {
	var n int64
	err := tx.Model(&model.Appointment{}).
		Where(column+" = ? AND appointment_date = ? AND appointment_time = ? AND status = ?",
			id, date, slot, model.StatusApproved).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *gormStore) ApprovedSlotTakenForTrainer(ctx context.Context, trainerID int64, date, slot string) (bool, error) {
	taken, err := approvedSlotTaken(s.db.WithContext(ctx), "trainer_id", trainerID, date, slot)
	if err != nil {
		return false, fmt.Errorf("trainer slot check: %w", err)
	}
	return taken, nil
}

func (s *gormStore) ApprovedSlotTakenForMember(ctx context.Context, memberID int64, date, slot string) (bool, error) {
	taken, err := approvedSlotTaken(s.db.WithContext(ctx), "member_id", memberID, date, slot)
	if err != nil {
		return false, fmt.Errorf("member slot check: %w", err)
	}
	return taken, nil
}

// CreateAppointment inserts appt inside a single transaction, re-checking
// both the trainer-side and member-side approved-slot invariant against the
// transaction's view of the data immediately before the write. The re-check
// is authoritative; the caller's earlier checks only exist to fail fast
// before a transaction is opened.
func (s *gormStore) CreateAppointment(ctx context.Context, appt *model.Appointment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := approvedSlotTaken(tx, "trainer_id", appt.TrainerID, appt.Date, appt.Time)
		if err != nil {
			return fmt.Errorf("trainer conflict re-check: %w", err)
		}
		if taken {
			return ErrTrainerSlotConflict
		}

		taken, err = approvedSlotTaken(tx, "member_id", appt.MemberID, appt.Date, appt.Time)
		if err != nil {
			return fmt.Errorf("member conflict re-check: %w", err)
		}
		if taken {
			return ErrMemberSlotConflict
		}

		if err := tx.Create(appt).Error; err != nil {
			return fmt.Errorf("insert appointment: %w", err)
		}
		return nil
	})
}

// UpdateAppointmentStatus applies a status change inside a transaction.
// Approving an already-approved appointment is an idempotent no-op, not a
// self-reported conflict. Approval re-checks the trainer side only;
// member-side conflicts are enforced at creation time. Every other target
// status is applied unconditionally.
func (s *gormStore) UpdateAppointmentStatus(ctx context.Context, id int64, status model.AppointmentStatus) (*model.Appointment, error) {
	var appt model.Appointment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&appt, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("load appointment %d: %w", id, err)
		}

		if status == model.StatusApproved {
			if appt.Status == model.StatusApproved {
				return nil
			}
			taken, err := approvedSlotTaken(tx, "trainer_id", appt.TrainerID, appt.Date, appt.Time)
			if err != nil {
				return fmt.Errorf("approval conflict re-check: %w", err)
			}
			if taken {
				return ErrApprovalConflict
			}
		}

		appt.Status = status
		if err := tx.Save(&appt).Error; err != nil {
			// The partial unique slot indexes are the storage-level backstop
			// for racing approvals.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrApprovalConflict
			}
			return fmt.Errorf("update appointment %d status: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (s *gormStore) GetAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	var appt model.Appointment
	if err := s.db.WithContext(ctx).First(&appt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("load appointment %d: %w", id, err)
	}
	return &appt, nil
}

func (s *gormStore) DeleteAppointment(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Appointment{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete appointment %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func (s *gormStore) ListAppointments(ctx context.Context, f AppointmentFilter) ([]model.Appointment, error) {
	q := s.db.WithContext(ctx).Model(&model.Appointment{})
	if f.MemberID > 0 {
		q = q.Where("member_id = ?", f.MemberID)
	}
	if f.TrainerID > 0 {
		q = q.Where("trainer_id = ?", f.TrainerID)
	}
	if f.Status != 0 {
		q = q.Where("status = ?", f.Status)
	}
	if f.Date != "" {
		q = q.Where("appointment_date = ?", f.Date)
	}

	var appts []model.Appointment
	if err := q.Order("appointment_date DESC, appointment_time DESC").Find(&appts).Error; err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

// BookedSlots returns the distinct approved slot times on the given date
// that a booking form should grey out: slots held by the trainer plus slots
// the member already holds themselves.
func (s *gormStore) BookedSlots(ctx context.Context, trainerID, memberID int64, date string) ([]string, error) {
	var slots []string
	err := s.db.WithContext(ctx).Model(&model.Appointment{}).
		Distinct().
		Where("appointment_date = ? AND status = ? AND (trainer_id = ? OR member_id = ?)",
			date, model.StatusApproved, trainerID, memberID).
		Order("appointment_time").
		Pluck("appointment_time", &slots).Error
	if err != nil {
		return nil, fmt.Errorf("booked slots: %w", err)
	}
	return slots, nil
}
