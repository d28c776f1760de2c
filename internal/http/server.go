// README: API gateway; wires middleware and delegates to the booking services.
package http

import (
	"time"

	"skybook/internal/http/handlers"
	"skybook/internal/infra"
	"skybook/internal/logger"
	"skybook/internal/modules/booking"
)

type ServerDeps struct {
	Assistant  handlers.Assistant
	Normalizer *booking.Normalizer
	Verifier   infra.TokenVerifier  // nil serves anonymous callers
	Quota      handlers.QuotaReader // nil disables GET /api/quota
	Logger     *logger.Logger
	Timeout    time.Duration
}

type Server struct {
	assistant  handlers.Assistant
	normalizer *booking.Normalizer
	verifier   infra.TokenVerifier
	quota      handlers.QuotaReader
	log        *logger.Logger
	timeout    time.Duration
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		assistant:  deps.Assistant,
		normalizer: deps.Normalizer,
		verifier:   deps.Verifier,
		quota:      deps.Quota,
		log:        deps.Logger,
		timeout:    deps.Timeout,
	}
}
