package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gym-backend/internal/booking"
	"gym-backend/internal/model"
	"gym-backend/internal/mw"
	"gym-backend/internal/store"
)

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// CreateAppointment books a new appointment. Members book for themselves;
// the member_id in the body is overridden by the token identity unless the
// caller is an admin. The requested status is always ignored.
func (h *Handler) CreateAppointment(c *gin.Context) {
	var req booking.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims := mw.ClaimsFrom(c)
	if claims.Role != model.RoleAdmin {
		req.MemberID = claims.MemberID
	}

	appt, err := h.booking.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appt)
}

// ListAppointments returns appointments. Admins may filter by member,
// trainer, status and date; members always get their own list.
func (h *Handler) ListAppointments(c *gin.Context) {
	claims := mw.ClaimsFrom(c)
	ctx := c.Request.Context()

	if claims.Role != model.RoleAdmin {
		appts, err := h.booking.ListForMember(ctx, claims.MemberID)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, appts)
		return
	}

	var filter store.AppointmentFilter
	if v := c.Query("member_id"); v != "" {
		filter.MemberID, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := c.Query("trainer_id"); v != "" {
		filter.TrainerID, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := c.Query("status"); v != "" {
		status, err := model.ParseStatus(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.Status = status
	}
	filter.Date = c.Query("date")

	appts, err := h.booking.ListAll(ctx, filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// GetAppointment returns one appointment. Members may only read their own.
func (h *Handler) GetAppointment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	appt, err := h.booking.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	claims := mw.ClaimsFrom(c)
	if claims.Role != model.RoleAdmin && appt.MemberID != claims.MemberID {
		c.JSON(http.StatusNotFound, gin.H{"error": store.ErrAppointmentNotFound.Error()})
		return
	}

	c.JSON(http.StatusOK, appt)
}

type updateStatusRequest struct {
	Status model.AppointmentStatus `json:"status" binding:"required"`
}

// UpdateAppointmentStatus moves an appointment to a new status. A successful
// change queues a push notification to the member.
func (h *Handler) UpdateAppointmentStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appt, err := h.booking.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if h.pool != nil {
		h.pool.Dispatch(appt.ID)
	}

	c.JSON(http.StatusOK, appt)
}

// DeleteAppointment removes an appointment entirely. Deleting an approved
// appointment frees its slot.
func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.booking.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetAvailability reports whether a slot is taken on the trainer side and
// the member side. Advisory only; creation re-checks inside a transaction.
func (h *Handler) GetAvailability(c *gin.Context) {
	trainerID, _ := strconv.ParseInt(c.Query("trainer_id"), 10, 64)
	date := c.Query("date")
	timeOfDay := c.Query("time")
	if trainerID <= 0 || date == "" || timeOfDay == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "trainer_id, date and time are required"})
		return
	}

	claims := mw.ClaimsFrom(c)
	memberID := claims.MemberID
	if claims.Role == model.RoleAdmin {
		memberID, _ = strconv.ParseInt(c.Query("member_id"), 10, 64)
	}

	ctx := c.Request.Context()
	trainerTaken, err := h.booking.IsTrainerSlotTaken(ctx, trainerID, date, timeOfDay)
	if err != nil {
		h.respondError(c, err)
		return
	}

	memberTaken := false
	if memberID > 0 {
		memberTaken, err = h.booking.IsMemberSlotTaken(ctx, memberID, date, timeOfDay)
		if err != nil {
			h.respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"trainer_taken": trainerTaken,
		"member_taken":  memberTaken,
		"available":     !trainerTaken && !memberTaken,
	})
}

// GetBookedTimes returns the approved times on a date that the booking form
// should grey out for the given trainer and the calling member.
func (h *Handler) GetBookedTimes(c *gin.Context) {
	trainerID, _ := strconv.ParseInt(c.Query("trainer_id"), 10, 64)
	date := c.Query("date")
	if trainerID <= 0 || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "trainer_id and date are required"})
		return
	}

	claims := mw.ClaimsFrom(c)
	memberID := claims.MemberID
	if claims.Role == model.RoleAdmin {
		memberID, _ = strconv.ParseInt(c.Query("member_id"), 10, 64)
	}

	times, err := h.booking.BookedTimes(c.Request.Context(), trainerID, memberID, date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if times == nil {
		times = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"booked_times": times})
}
