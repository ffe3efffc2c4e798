// Package notification delivers web push updates when an appointment
// changes status. Delivery happens off the request path through a small
// worker pool so a slow push endpoint never blocks an API response.
package notification

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gym-backend/internal/model"
)

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the real Sender backed by the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// statusPayload is what the service worker on the client receives.
type statusPayload struct {
	AppointmentID int64  `json:"appointment_id"`
	Status        string `json:"status"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}

// WorkerPool manages a pool of workers for sending notifications.
type WorkerPool struct {
	size    int
	jobs    chan int64
	db      *gorm.DB
	webpush *webpush.Options
	sender  Sender
	logger  *zap.Logger
}

// NewWorkerPool creates a new worker pool. Jobs are appointment IDs.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options, logger *zap.Logger) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan int64, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
		logger:  logger,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	wp.logger.Debug("notification worker started", zap.Int("worker", id))
	for {
		select {
		case appointmentID := <-wp.jobs:
			wp.notifyForAppointment(ctx, appointmentID)
		case <-ctx.Done():
			wp.logger.Debug("notification worker shutting down", zap.Int("worker", id))
			return
		}
	}
}

// Dispatch queues a status-change notification for an appointment.
func (wp *WorkerPool) Dispatch(appointmentID int64) {
	wp.jobs <- appointmentID
}

// notifyForAppointment loads the appointment and pushes its new status to
// every subscription the member registered.
func (wp *WorkerPool) notifyForAppointment(ctx context.Context, appointmentID int64) {
	var appt model.Appointment
	if err := wp.db.WithContext(ctx).First(&appt, appointmentID).Error; err != nil {
		wp.logger.Warn("failed to load appointment for notification",
			zap.Int64("appointment_id", appointmentID), zap.Error(err))
		return
	}

	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Where("member_id = ?", appt.MemberID).
		Find(&subscriptions).Error
	if err != nil {
		wp.logger.Warn("failed to load push subscriptions",
			zap.Int64("member_id", appt.MemberID), zap.Error(err))
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	payload, err := json.Marshal(statusPayload{
		AppointmentID: appt.ID,
		Status:        appt.Status.String(),
		Date:          appt.Date,
		Time:          appt.Time,
	})
	if err != nil {
		wp.logger.Error("failed to encode notification payload", zap.Error(err))
		return
	}

	wp.logger.Info("sending status notifications",
		zap.Int64("appointment_id", appt.ID),
		zap.String("status", appt.Status.String()),
		zap.Int("subscriptions", len(subscriptions)))

	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, payload)
	}
}

func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		wp.logger.Warn("failed to send push notification",
			zap.String("endpoint", sub.Endpoint), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	// The push service reports 410 when the browser dropped the
	// subscription; keeping the row would only produce repeat failures.
	if resp.StatusCode == http.StatusGone {
		wp.logger.Info("removing expired push subscription", zap.String("endpoint", sub.Endpoint))
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			wp.logger.Warn("failed to delete expired subscription",
				zap.String("endpoint", sub.Endpoint), zap.Error(err))
		}
	}
}
