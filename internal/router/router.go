package router

import (
	"net/http"
	"time"

	"Mansoor88-6/time-tracking-api/internal/auth"
	"Mansoor88-6/time-tracking-api/internal/handler"

	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
)

const apiPrefix = "/api/v1"

func New(timeEntryHandler *handler.TimeEntryHandler, analyticsHandler *handler.AnalyticsHandler, userHeader string, logger *zap.Logger) http.Handler {
	api := http.NewServeMux()

	// Time entry endpoints
	api.HandleFunc("POST "+apiPrefix+"/time-entries", timeEntryHandler.CreateTimeEntry)
	api.HandleFunc("GET "+apiPrefix+"/time-entries", timeEntryHandler.ListTimeEntries)
	api.HandleFunc("PUT "+apiPrefix+"/time-entries/{id}", timeEntryHandler.UpdateTimeEntry)
	api.HandleFunc("DELETE "+apiPrefix+"/time-entries/{id}", timeEntryHandler.DeleteTimeEntry)
	api.HandleFunc("GET "+apiPrefix+"/time-entries/active", timeEntryHandler.GetActiveTimer)
	api.HandleFunc("PUT "+apiPrefix+"/time-entries/{id}/stop", timeEntryHandler.StopTimer)
	api.HandleFunc("POST "+apiPrefix+"/time-entries/tasks/{taskId}/start", timeEntryHandler.StartTimer)
	api.HandleFunc("GET "+apiPrefix+"/time-entries/tasks/{taskId}/stats", timeEntryHandler.GetTaskTimeStats)

	// Analytics endpoints
	api.HandleFunc("GET "+apiPrefix+"/analytics/dashboard", analyticsHandler.Dashboard)
	api.HandleFunc("GET "+apiPrefix+"/analytics/time-chart", analyticsHandler.TimeChart)
	api.HandleFunc("GET "+apiPrefix+"/analytics/projects", analyticsHandler.Projects)
	api.HandleFunc("GET "+apiPrefix+"/analytics/export/{format}", analyticsHandler.Export)

	errWriter := handler.NewErrorWriter(logger)
	identity := auth.Middleware(userHeader, errWriter.Write, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.Handle(apiPrefix+"/", identity(api))

	// Responses are gzip-compressed when the client accepts it and the
	// body is large enough to benefit.
	return logRequests(gzhttp.GzipHandler(mux), userHeader, logger)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler, userHeader string, logger *zap.Logger) http.Handler {
	if userHeader == "" {
		userHeader = auth.DefaultUserHeader
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.Info("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("user_id", r.Header.Get(userHeader)),
			zap.String("remote_addr", r.RemoteAddr),
		)
	})
}
