// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"skybook/internal/http/handlers"
	"skybook/internal/http/middleware"
)

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(s.log), middleware.Recovery(s.log))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	bookingHandler := handlers.NewBookingHandler(s.assistant, s.normalizer, s.timeout)

	api := r.Group("/api")
	if s.verifier != nil {
		api.Use(middleware.Auth(s.verifier))
	}
	api.POST("/bookings/chat", bookingHandler.Chat)
	api.POST("/bookings/normalize", bookingHandler.Normalize)
	api.GET("/dates/resolve", bookingHandler.ResolveDate)
	if s.quota != nil {
		api.GET("/quota", handlers.NewQuotaHandler(s.quota).Get)
	}

	return r
}
