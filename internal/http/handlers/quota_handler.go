// README: Monthly extraction quota of the calling user.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skybook/internal/http/middleware"
	"skybook/internal/modules/aiusage"
)

// QuotaReader is implemented by aiusage.Service.
type QuotaReader interface {
	Remaining(ctx context.Context, uid string) (int, error)
}

type QuotaHandler struct {
	quota QuotaReader
}

func NewQuotaHandler(quota QuotaReader) *QuotaHandler {
	return &QuotaHandler{quota: quota}
}

// Get handles GET /api/quota.
func (h *QuotaHandler) Get(c *gin.Context) {
	uid := middleware.CallerUID(c)
	if uid == "" {
		writeError(c, http.StatusUnauthorized, "quota requires a signed-in caller")
		return
	}
	remaining, err := h.quota.Remaining(c.Request.Context(), uid)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Header("X-Quota-Remaining", strconv.Itoa(remaining))
	writeJSON(c, http.StatusOK, gin.H{"uid": uid, "remaining": remaining, "monthly": aiusage.DefaultTokens})
}
