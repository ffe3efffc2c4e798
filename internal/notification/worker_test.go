package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockSender is a mock implementation of the Sender interface.
type mockSender struct {
	SendFunc func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return m.SendFunc(payload, sub, options)
}

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func appointmentRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "member_id", "trainer_id", "activity_id", "gym_center_id",
		"appointment_date", "appointment_time", "price", "status", "created_at", "updated_at",
	}).AddRow(101, 7, 5, 2, 3, "2024-06-10", "14:00", 150.0, 2, time.Now(), time.Now())
}

func subscriptionRows(endpoints ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"endpoint", "p256dh", "auth", "member_id"})
	for _, e := range endpoints {
		rows.AddRow(e, "test_p256dh", "test_auth", 7)
	}
	return rows
}

func TestWorkerPool_Dispatch(t *testing.T) {
	db, _ := newTestDB(t)
	wp := NewWorkerPool(1, db, &webpush.Options{}, zap.NewNop())

	wp.Dispatch(123)

	select {
	case job := <-wp.jobs:
		assert.Equal(t, int64(123), job)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPool_SendsStatusPayload(t *testing.T) {
	gormDB, mock := newTestDB(t)
	wp := NewWorkerPool(1, gormDB, &webpush.Options{}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			defer wg.Done()
			assert.Equal(t, "https://example.com/push", sub.Endpoint)

			var got statusPayload
			require.NoError(t, json.Unmarshal(payload, &got))
			assert.Equal(t, int64(101), got.AppointmentID)
			assert.Equal(t, "approved", got.Status)
			assert.Equal(t, "2024-06-10", got.Date)
			assert.Equal(t, "14:00", got.Time)

			return &http.Response{
				StatusCode: http.StatusCreated,
				Body:       io.NopCloser(bytes.NewBufferString("")),
			}, nil
		},
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "appointments"`)).
		WillReturnRows(appointmentRow())
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "push_subscriptions"`)).
		WillReturnRows(subscriptionRows("https://example.com/push"))

	wp.Dispatch(101)
	wg.Wait()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkerPool_DeletesExpiredSubscription(t *testing.T) {
	gormDB, mock := newTestDB(t)
	wp := NewWorkerPool(1, gormDB, &webpush.Options{}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusGone,
				Body:       io.NopCloser(bytes.NewBufferString("")),
			}, nil
		},
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "appointments"`)).
		WillReturnRows(appointmentRow())
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "push_subscriptions"`)).
		WillReturnRows(subscriptionRows("https://example.com/expired"))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "push_subscriptions"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	wp.Dispatch(101)

	// Allow the worker to finish the delete.
	time.Sleep(100 * time.Millisecond)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkerPool_NoSubscriptionsNoSend(t *testing.T) {
	gormDB, mock := newTestDB(t)
	wp := NewWorkerPool(1, gormDB, &webpush.Options{}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	sent := false
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			sent = true
			return nil, nil
		},
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "appointments"`)).
		WillReturnRows(appointmentRow())
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "push_subscriptions"`)).
		WillReturnRows(subscriptionRows())

	wp.Dispatch(101)

	time.Sleep(100 * time.Millisecond)
	assert.False(t, sent)
	assert.NoError(t, mock.ExpectationsWereMet())
}
