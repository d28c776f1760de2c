// README: Booking chat and normalization handlers.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"skybook/internal/http/middleware"
	"skybook/internal/modules/booking"
	"skybook/internal/modules/followup"
	"skybook/internal/service"
)

// Assistant is implemented by service.Assistant.
type Assistant interface {
	Handle(ctx context.Context, turn service.Turn) (service.Reply, error)
}

type BookingHandler struct {
	assistant  Assistant
	normalizer *booking.Normalizer
	timeout    time.Duration
}

func NewBookingHandler(assistant Assistant, normalizer *booking.Normalizer, timeout time.Duration) *BookingHandler {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &BookingHandler{assistant: assistant, normalizer: normalizer, timeout: timeout}
}

type chatReq struct {
	SessionID string           `json:"session_id"`
	Message   string           `json:"message"`
	History   followup.History `json:"history"`
}

// Chat handles POST /api/bookings/chat.
func (h *BookingHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.Message == "" {
		writeError(c, http.StatusBadRequest, "missing message")
		return
	}
	if !isValidSessionID(req.SessionID) {
		writeError(c, http.StatusBadRequest, "invalid session_id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	reply, err := h.assistant.Handle(ctx, service.Turn{
		Session: req.SessionID,
		UID:     middleware.CallerUID(c),
		Message: req.Message,
		History: req.History,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, reply)
}

// Normalize handles POST /api/bookings/normalize. The body is a raw extraction.
func (h *BookingHandler) Normalize(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		writeError(c, http.StatusBadRequest, "unreadable body")
		return
	}

	raw, err := booking.DecodeExtraction(body)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	outcome, err := h.normalizer.Normalize(raw)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, outcome)
}

// ResolveDate handles GET /api/dates/resolve?q=.
func (h *BookingHandler) ResolveDate(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		writeError(c, http.StatusBadRequest, "missing q")
		return
	}
	date, err := h.normalizer.Dates().ResolveISO(q)
	if err != nil {
		writeError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"query": q, "date": date})
}
