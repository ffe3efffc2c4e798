package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gym-backend/config"
	"gym-backend/internal/ai"
	"gym-backend/internal/booking"
	"gym-backend/internal/notification"
	"gym-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	booking *booking.Service
	ai      ai.Client
	pool    *notification.WorkerPool
	cfg     *config.Config
	logger  *zap.Logger
}

// NewHandler creates a new API handler. The ai client and worker pool may
// be nil when the corresponding feature is disabled.
func NewHandler(s store.Store, bookingSvc *booking.Service, aiClient ai.Client, pool *notification.WorkerPool, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		store:   s,
		booking: bookingSvc,
		ai:      aiClient,
		pool:    pool,
		cfg:     cfg,
		logger:  logger,
	}
}

// respondError translates domain errors into HTTP status codes.
func (h *Handler) respondError(c *gin.Context, err error) {
	var vErr *booking.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.Is(err, store.ErrTrainerSlotConflict),
		errors.Is(err, store.ErrMemberSlotConflict),
		errors.Is(err, store.ErrApprovalConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrAppointmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
