package handlers

import (
	"errors"
	"net/http"

	"sitekit/models"
	"sitekit/services/reservation"
	"sitekit/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the public widget endpoints.
type BookingHandler struct {
	Service reservation.Service
	Logger  *zap.Logger
}

func NewBookingHandler(svc reservation.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// ListSlotsHandler returns the slot grid for one civil day, with the
// authoritative booking config riding along for the widget to reconcile.
func (h *BookingHandler) ListSlotsHandler(c *gin.Context) {
	siteID := c.Param("site")
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing date", "the 'date' query parameter is required (YYYY-MM-DD)")
		return
	}

	resp, err := h.Service.ListDay(c.Request.Context(), siteID, date)
	if err != nil {
		h.Logger.Error("slot listing failed",
			zap.String("siteId", siteID), zap.String("date", date), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list slots", "please try again later")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateReservationHandler attempts a reservation. Booking-level failures
// (slot taken, closed day) come back as the failure outcome of the contract,
// not as transport errors, so the widget can surface them inline.
func (h *BookingHandler) CreateReservationHandler(c *gin.Context) {
	siteID := c.Param("site")
	var req models.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Service.Create(c.Request.Context(), siteID, req)
	if err != nil {
		var bookingErr *reservation.BookingError
		if errors.As(err, &bookingErr) {
			c.JSON(http.StatusOK, models.CreateReservationResponse{Error: bookingErr.Message})
			return
		}
		h.Logger.Error("reservation creation failed",
			zap.String("siteId", siteID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to create reservation", "please try again later")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CancelPaymentHandler releases a pending payment hold. Best-effort from the
// widget's perspective: it acknowledges even when the release partially
// failed, the failure is logged server-side.
func (h *BookingHandler) CancelPaymentHandler(c *gin.Context) {
	siteID := c.Param("site")
	var pending models.PendingPayment
	if err := c.ShouldBindJSON(&pending); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Service.CancelPendingPayment(c.Request.Context(), siteID, pending); err != nil {
		h.Logger.Warn("pending payment cancellation failed",
			zap.String("siteId", siteID), zap.String("eventId", pending.EventID), zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
