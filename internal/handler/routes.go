package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"meeting-scheduler-api/internal/middleware"
)

// Routes registers every endpoint. Writes go through rl; rl may be nil.
func (h *Handler) Routes(rl *middleware.RateLimiter) *httprouter.Router {
	router := httprouter.New()

	router.POST("/meetings", middleware.RateLimit(rl, h.CreateMeeting))
	router.GET("/meetings", h.ListMeetings)
	router.PUT("/meetings/:meetingId", middleware.RateLimit(rl, h.UpdateMeeting))
	router.DELETE("/meetings/:meetingId", middleware.RateLimit(rl, h.CancelMeeting))
	router.GET("/users/:userId/available-slots", h.AvailableSlots)

	router.GET("/calendar.ics", h.Calendar)
	router.GET("/health", h.Health)

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method not allowed"))
	})
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v any) {
		h.log.Error("panic", zap.Any("recovered", v), zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.RequestID(r.Context())))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}

	return router
}

// Server wraps Routes with request logging and CORS for every origin.
func (h *Handler) Server(rl *middleware.RateLimiter) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	})
	return middleware.Logging(h.log, c.Handler(h.Routes(rl)))
}
