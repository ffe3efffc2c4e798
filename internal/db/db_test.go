package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gym-backend/internal/model"
)

func TestSlotIndexesBackstopApprovedDuplicates(t *testing.T) {
	testDB, err := gorm.Open(sqlite.Open("file:slotindexes?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := testDB.DB()
		sqlDB.Close()
	})

	require.NoError(t, Migrate(testDB))
	require.NoError(t, ApplySlotIndexes(testDB))

	appt := func(memberID, trainerID int64, status model.AppointmentStatus) *model.Appointment {
		return &model.Appointment{
			MemberID:    memberID,
			TrainerID:   trainerID,
			ActivityID:  1,
			GymCenterID: 1,
			Date:        "2024-06-10",
			Time:        "14:00",
			Price:       100,
			Status:      status,
		}
	}

	require.NoError(t, testDB.Create(appt(1, 5, model.StatusApproved)).Error)

	// A second approved row for the same trainer and slot is rejected by the
	// partial unique index even when written directly, bypassing the store.
	err = testDB.Create(appt(2, 5, model.StatusApproved)).Error
	assert.Error(t, err)

	// A second approved row for the same member and slot is rejected too.
	err = testDB.Create(appt(1, 9, model.StatusApproved)).Error
	assert.Error(t, err)

	// Pending rows never enter the index, so duplicates are fine.
	assert.NoError(t, testDB.Create(appt(3, 5, model.StatusPending)).Error)
	assert.NoError(t, testDB.Create(appt(4, 5, model.StatusPending)).Error)
}
