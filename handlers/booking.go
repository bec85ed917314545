package handlers

import (
	"net/http"

	"festa/services/auth"
	"festa/services/booking"
	"festa/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking state machine.
type BookingHandler struct {
	Svc booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Svc: svc}
}

// RequestBookingHandler handles POST /api/bookings.
func (h *BookingHandler) RequestBookingHandler(c *gin.Context) {
	sess, ok := clientSession(c)
	if !ok {
		return
	}

	var input booking.RequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.GetLogger().Warn("Invalid booking request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.Svc.Request(c.Request.Context(), sess, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

type transitionRequest struct {
	Version int `json:"version" binding:"required"`
}

// AcceptBookingHandler handles POST /api/bookings/:id/accept.
func (h *BookingHandler) AcceptBookingHandler(c *gin.Context) {
	sess, ok := providerSession(c)
	if !ok {
		return
	}
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.Svc.Accept(c.Request.Context(), sess, c.Param("id"), req.Version)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// RejectBookingHandler handles POST /api/bookings/:id/reject.
func (h *BookingHandler) RejectBookingHandler(c *gin.Context) {
	sess, ok := providerSession(c)
	if !ok {
		return
	}
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.Svc.Reject(c.Request.Context(), sess, c.Param("id"), req.Version)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBookingHandler handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	sess, ok := clientSession(c)
	if !ok {
		return
	}
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.Svc.Cancel(c.Request.Context(), sess, c.Param("id"), req.Version)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetBookingHandler handles GET /api/bookings/:id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	sess, ok := currentSessionOrAbort(c)
	if !ok {
		return
	}

	b, err := h.Svc.GetBooking(sess, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListBookingsHandler handles GET /api/bookings, scoped to the caller's
// side of the marketplace.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	sess, ok := currentSessionOrAbort(c)
	if !ok {
		return
	}

	switch v := sess.(type) {
	case auth.ClientSession:
		bookings, err := h.Svc.ListForClient(v)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": bookings})
	case auth.ProviderSession:
		bookings, err := h.Svc.ListForProvider(v)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": bookings})
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "Unknown session role"})
	}
}
