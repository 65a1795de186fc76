package handler

import (
	"net/http"
	"time"

	"Mansoor88-6/time-tracking-api/internal/auth"
	"Mansoor88-6/time-tracking-api/internal/models"
	"Mansoor88-6/time-tracking-api/internal/service"

	"go.uber.org/zap"
)

type TimeEntryHandler struct {
	timers  *service.TimerService
	entries *service.TimeEntryService
	loc     *time.Location
	errors  *ErrorWriter
	logger  *zap.Logger
}

func NewTimeEntryHandler(timers *service.TimerService, entries *service.TimeEntryService, loc *time.Location, logger *zap.Logger) *TimeEntryHandler {
	return &TimeEntryHandler{
		timers:  timers,
		entries: entries,
		loc:     loc,
		errors:  NewErrorWriter(logger),
		logger:  logger,
	}
}

func (h *TimeEntryHandler) CreateTimeEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	var req models.CreateTimeEntryRequest
	if err := decodeJSON(r, &req, false); err != nil {
		h.errors.Write(w, r, err)
		return
	}

	entry, err := h.entries.CreateTimeEntry(r.Context(), userID, &req)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, entry)
}

func (h *TimeEntryHandler) UpdateTimeEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	var req models.UpdateTimeEntryRequest
	if err := decodeJSON(r, &req, false); err != nil {
		h.errors.Write(w, r, err)
		return
	}

	entry, err := h.entries.UpdateTimeEntry(r.Context(), userID, r.PathValue("id"), &req)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, entry)
}

func (h *TimeEntryHandler) DeleteTimeEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	if err := h.entries.DeleteTimeEntry(r.Context(), userID, r.PathValue("id")); err != nil {
		h.errors.Write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Time entry deleted"})
}

func (h *TimeEntryHandler) ListTimeEntries(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	q := r.URL.Query()
	filter := models.TimeEntryFilter{
		UserID:    userID,
		TaskID:    queryString(q, "taskId"),
		ProjectID: queryString(q, "projectId"),
	}
	if filter.DateFrom, err = queryDate(q, "dateFrom", h.loc, false); err != nil {
		h.errors.Write(w, r, err)
		return
	}
	if filter.DateTo, err = queryDate(q, "dateTo", h.loc, true); err != nil {
		h.errors.Write(w, r, err)
		return
	}
	if filter.Page, err = queryInt(q, "page"); err != nil {
		h.errors.Write(w, r, err)
		return
	}
	if filter.Limit, err = queryInt(q, "limit"); err != nil {
		h.errors.Write(w, r, err)
		return
	}

	page, err := h.entries.ListTimeEntries(r.Context(), filter)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	writePage(w, page)
}

func (h *TimeEntryHandler) StartTimer(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	var req models.StartTimerRequest
	if err := decodeJSON(r, &req, true); err != nil {
		h.errors.Write(w, r, err)
		return
	}

	entry, err := h.timers.StartTimer(r.Context(), userID, r.PathValue("taskId"), req.Description)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, entry)
}

func (h *TimeEntryHandler) StopTimer(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	entry, err := h.timers.StopTimer(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, entry)
}

// GetActiveTimer responds with data null when no timer is running.
func (h *TimeEntryHandler) GetActiveTimer(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	entry, err := h.timers.GetActiveTimer(r.Context(), userID)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	if entry == nil {
		writeData(w, http.StatusOK, nil)
		return
	}
	writeData(w, http.StatusOK, entry)
}

func (h *TimeEntryHandler) GetTaskTimeStats(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	stats, err := h.entries.GetTaskTimeStats(r.Context(), userID, r.PathValue("taskId"))
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, stats)
}
