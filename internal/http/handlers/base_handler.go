// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"skybook/internal/modules/aiusage"
	"skybook/internal/modules/booking"
	"skybook/internal/service"
)

// ReenterMessage is shown when the request could not be understood at all.
const ReenterMessage = "Couldn't understand your request. Please try again."

type errorResponse struct {
	Error string `json:"error"`
}

// isValidSessionID allows up to 64 letters, digits, '-' and '_'.
func isValidSessionID(v string) bool {
	if len(v) > 64 {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-' || c == '_' {
			continue
		}
		return false
	}
	return true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyMessage):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, aiusage.ErrInsufficientTokens):
		writeError(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, booking.ErrOracleParse):
		writeError(c, http.StatusUnprocessableEntity, ReenterMessage)
	case errors.Is(err, booking.ErrUnknownTripType):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(c, http.StatusGatewayTimeout, "upstream timeout")
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
