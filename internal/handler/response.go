package handler

import (
	"encoding/json"
	"net/http"

	"Mansoor88-6/time-tracking-api/internal/apperr"
	"Mansoor88-6/time-tracking-api/internal/models"

	"go.uber.org/zap"
)

// Response is the envelope around every JSON body.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

// PageResponse is the envelope for paginated listings.
type PageResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int         `json:"total"`
	TotalPages int         `json:"totalPages"`
}

// ErrorResponse is the envelope for failures.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, Response{Success: true, Data: data})
}

func writePage[T any](w http.ResponseWriter, page models.Page[T]) {
	writeJSON(w, http.StatusOK, PageResponse{
		Success:    true,
		Data:       page.Items,
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	})
}

// ErrorWriter maps application errors onto status codes and logs
// server-side failures.
type ErrorWriter struct {
	logger *zap.Logger
}

func NewErrorWriter(logger *zap.Logger) *ErrorWriter {
	return &ErrorWriter{logger: logger}
}

func (e *ErrorWriter) Write(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	}
	if appErr, ok := apperr.AsAppError(err); ok && len(appErr.Context) > 0 {
		fields = append(fields, zap.Any("error_context", appErr.Context))
	}
	if apperr.ShouldLogError(err) {
		e.logger.Error("Request failed", fields...)
	} else {
		e.logger.Debug("Request rejected", fields...)
	}

	writeJSON(w, status, ErrorResponse{
		Success: false,
		Message: apperr.GetUserMessage(err),
		Code:    apperr.GetErrorCode(err),
	})
}
