package handler

import (
	"fmt"
	"net/http"
	"time"

	"Mansoor88-6/time-tracking-api/internal/apperr"
	"Mansoor88-6/time-tracking-api/internal/auth"
	"Mansoor88-6/time-tracking-api/internal/export"
	"Mansoor88-6/time-tracking-api/internal/models"
	"Mansoor88-6/time-tracking-api/internal/report"
	"Mansoor88-6/time-tracking-api/internal/service"

	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	projector *report.Projector
	renderers *export.Registry
	loc       *time.Location
	errors    *ErrorWriter
	logger    *zap.Logger
}

func NewAnalyticsHandler(analytics *service.AnalyticsService, projector *report.Projector, renderers *export.Registry, loc *time.Location, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: analytics,
		projector: projector,
		renderers: renderers,
		loc:       loc,
		errors:    NewErrorWriter(logger),
		logger:    logger,
	}
}

func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	days, err := queryInt(r.URL.Query(), "period")
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	summary, err := h.analytics.DashboardSummary(r.Context(), userID, days)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, summary)
}

// TimeChart serves time grouped by day (2024-01-08), week (2024-W02),
// month (2024-01) or project name.
func (h *AnalyticsHandler) TimeChart(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	q := r.URL.Query()
	query := service.TimeSeriesQuery{
		UserID:    userID,
		ProjectID: queryString(q, "projectId"),
		GroupBy:   models.GroupBy(q.Get("groupBy")),
	}
	if query.From, query.To, err = h.window(r); err != nil {
		h.errors.Write(w, r, err)
		return
	}

	series, err := h.analytics.TimeSeries(r.Context(), query)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, series)
}

func (h *AnalyticsHandler) Projects(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	from, to, err := h.window(r)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	projectReport, err := h.analytics.ProjectReport(r.Context(), userID, from, to)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, projectReport)
}

const (
	exportViewTasks     = "tasks"
	exportViewTimeChart = "time-chart"
	exportViewProjects  = "projects"
)

// Export streams a report in the format named by the path. The view
// query parameter picks the table: tasks (default), time-chart or
// projects.
func (h *AnalyticsHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	renderer, err := h.renderers.Get(r.PathValue("format"))
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	table, name, err := h.exportTable(r, userID)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	body, err := renderer.Render(table)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	filename := fmt.Sprintf("%s.%s", name, renderer.Format())
	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.Warn("Failed to write export", zap.String("user_id", userID), zap.Error(err))
		return
	}

	h.logger.Info("Report exported",
		zap.String("user_id", userID),
		zap.String("format", renderer.Format()),
		zap.String("file", filename),
		zap.Int("rows", len(table.Rows)))
}

// exportTable builds the table for the requested view and the file name
// stem it is downloaded under.
func (h *AnalyticsHandler) exportTable(r *http.Request, userID string) (report.Table, string, error) {
	q := r.URL.Query()
	from, to, err := h.window(r)
	if err != nil {
		return report.Table{}, "", err
	}

	switch view := q.Get("view"); view {
	case "", exportViewTasks:
		totals, window, err := h.analytics.ExportTasks(r.Context(), userID, from, to, queryString(q, "projectId"))
		if err != nil {
			return report.Table{}, "", err
		}
		fromKey := window.From.Format(models.DateLayout)
		toKey := window.To.Format(models.DateLayout)
		table := h.projector.TaskRows(fmt.Sprintf("Task Report (%s to %s)", fromKey, toKey), totals)
		return table, fmt.Sprintf("%s-%s-%s", exportViewTasks, fromKey, toKey), nil

	case exportViewTimeChart:
		series, err := h.analytics.TimeSeries(r.Context(), service.TimeSeriesQuery{
			UserID:    userID,
			From:      from,
			To:        to,
			ProjectID: queryString(q, "projectId"),
			GroupBy:   models.GroupBy(q.Get("groupBy")),
		})
		if err != nil {
			return report.Table{}, "", err
		}
		name := fmt.Sprintf("%s-%s-%s", exportViewTimeChart, series.Summary.From, series.Summary.To)
		return h.projector.TimeSeriesRows(series), name, nil

	case exportViewProjects:
		projectReport, err := h.analytics.ProjectReport(r.Context(), userID, from, to)
		if err != nil {
			return report.Table{}, "", err
		}
		name := fmt.Sprintf("%s-%s-%s", exportViewProjects, projectReport.Summary.From, projectReport.Summary.To)
		return h.projector.ProjectRows(projectReport), name, nil

	default:
		return report.Table{}, "", apperr.NewInvalidFieldError("view", view, "must be one of tasks, time-chart, projects")
	}
}

func (h *AnalyticsHandler) window(r *http.Request) (*time.Time, *time.Time, error) {
	q := r.URL.Query()
	from, err := queryDate(q, "from", h.loc, false)
	if err != nil {
		return nil, nil, err
	}
	to, err := queryDate(q, "to", h.loc, false)
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
