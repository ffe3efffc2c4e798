package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"gym-backend/internal/model"
)

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func appointmentColumns() []string {
	return []string{
		"id", "member_id", "trainer_id", "activity_id", "gym_center_id",
		"appointment_date", "appointment_time", "price", "status",
		"created_at", "updated_at",
	}
}

var (
	countQuery  = regexp.QuoteMeta(`SELECT count(*) FROM "appointments"`)
	insertQuery = regexp.QuoteMeta(`INSERT INTO "appointments"`)
	selectQuery = regexp.QuoteMeta(`SELECT * FROM "appointments"`)
	updateQuery = regexp.QuoteMeta(`UPDATE "appointments"`)
)

func TestGormStore_CreateAppointment(t *testing.T) {
	candidate := func() *model.Appointment {
		return &model.Appointment{
			MemberID:    1,
			TrainerID:   5,
			ActivityID:  2,
			GymCenterID: 3,
			Date:        "2024-06-10",
			Time:        "14:00",
			Price:       150,
			Status:      model.StatusPending,
		}
	}

	testCases := []struct {
		name             string
		mockExpectations func(mock sqlmock.Sqlmock)
		expectedErr      error
	}{
		{
			name: "both re-checks clear, row is inserted and committed",
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(countQuery).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				mock.ExpectQuery(countQuery).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				mock.ExpectQuery(insertQuery).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
				mock.ExpectCommit()
			},
			expectedErr: nil,
		},
		{
			name: "trainer-side re-check hits, transaction rolls back",
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(countQuery).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
				mock.ExpectRollback()
			},
			expectedErr: ErrTrainerSlotConflict,
		},
		{
			name: "member-side re-check hits, transaction rolls back",
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(countQuery).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				mock.ExpectQuery(countQuery).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
				mock.ExpectRollback()
			},
			expectedErr: ErrMemberSlotConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gormDB, mock := newTestDB(t)
			s := NewGormStore(gormDB)

			tc.mockExpectations(mock)

			appt := candidate()
			err := s.CreateAppointment(context.Background(), appt)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(42), appt.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGormStore_UpdateAppointmentStatus(t *testing.T) {
	now := time.Now()

	pendingRow := func() *sqlmock.Rows {
		return sqlmock.NewRows(appointmentColumns()).
			AddRow(7, 1, 5, 2, 3, "2024-06-10", "14:00", 150.0, int(model.StatusPending), now, now)
	}
	approvedRow := func() *sqlmock.Rows {
		return sqlmock.NewRows(appointmentColumns()).
			AddRow(7, 1, 5, 2, 3, "2024-06-10", "14:00", 150.0, int(model.StatusApproved), now, now)
	}

	t.Run("approval re-checks the trainer side inside the transaction", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		s := NewGormStore(gormDB)

		mock.ExpectBegin()
		mock.ExpectQuery(selectQuery).WillReturnRows(pendingRow())
		mock.ExpectQuery(countQuery).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectRollback()

		_, err := s.UpdateAppointmentStatus(context.Background(), 7, model.StatusApproved)
		assert.ErrorIs(t, err, ErrApprovalConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("approving an already approved appointment writes nothing", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		s := NewGormStore(gormDB)

		mock.ExpectBegin()
		mock.ExpectQuery(selectQuery).WillReturnRows(approvedRow())
		mock.ExpectCommit()

		appt, err := s.UpdateAppointmentStatus(context.Background(), 7, model.StatusApproved)
		assert.NoError(t, err)
		assert.Equal(t, model.StatusApproved, appt.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejection is applied without any conflict query", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		s := NewGormStore(gormDB)

		mock.ExpectBegin()
		mock.ExpectQuery(selectQuery).WillReturnRows(pendingRow())
		mock.ExpectExec(updateQuery).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		appt, err := s.UpdateAppointmentStatus(context.Background(), 7, model.StatusRejected)
		assert.NoError(t, err)
		assert.Equal(t, model.StatusRejected, appt.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing appointment reports not found", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		s := NewGormStore(gormDB)

		mock.ExpectBegin()
		mock.ExpectQuery(selectQuery).WillReturnRows(sqlmock.NewRows(appointmentColumns()))
		mock.ExpectRollback()

		_, err := s.UpdateAppointmentStatus(context.Background(), 999, model.StatusApproved)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
