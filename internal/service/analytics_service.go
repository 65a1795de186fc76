package service

import (
	"context"
	"sort"
	"time"

	"Mansoor88-6/time-tracking-api/internal/apperr"
	"Mansoor88-6/time-tracking-api/internal/clock"
	"Mansoor88-6/time-tracking-api/internal/models"
	"Mansoor88-6/time-tracking-api/internal/store"

	"go.uber.org/zap"
)

const (
	maxDashboardDays = 365
	maxDailyPoints   = 30
	topProjectsLimit = 10
)

// TimeSeriesQuery selects the entries bucketed by TimeSeries. Nil bounds
// fall back to the default window.
type TimeSeriesQuery struct {
	UserID    string
	From      *time.Time
	To        *time.Time
	ProjectID *string
	GroupBy   models.GroupBy
}

// AnalyticsService derives read-only rollups from the entry ledger.
// Only finalized entries contribute tracked time; the dashboard adds
// the live time of a running timer separately.
type AnalyticsService struct {
	entries     store.TimeEntryStore
	tasks       store.TaskLookup
	clock       clock.Clock
	loc         *time.Location
	defaultDays int
	logger      *zap.Logger
}

func NewAnalyticsService(entries store.TimeEntryStore, tasks store.TaskLookup, clk clock.Clock, loc *time.Location, defaultDays int, logger *zap.Logger) *AnalyticsService {
	if loc == nil {
		loc = time.UTC
	}
	return &AnalyticsService{
		entries:     entries,
		tasks:       tasks,
		clock:       clk,
		loc:         loc,
		defaultDays: defaultDays,
		logger:      logger,
	}
}

// DashboardSummary covers the trailing window of days ending now.
func (s *AnalyticsService) DashboardSummary(ctx context.Context, userID string, days int) (*models.DashboardSummary, error) {
	if userID == "" {
		return nil, apperr.NewUnauthorizedError("missing user identity")
	}
	if days == 0 {
		days = s.defaultDays
	}
	if days < 0 || days > maxDashboardDays {
		return nil, apperr.NewInvalidFieldError("period", days, "must be between 1 and 365 days")
	}

	now := truncate(s.clock.Now())
	window := models.Window{From: now.Add(-time.Duration(days) * 24 * time.Hour), To: now}

	entries, err := s.entries.ListInWindow(ctx, userID, window, nil)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListTasks(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	projects, err := s.tasks.ListProjects(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	running, err := s.entries.GetRunning(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &models.DashboardSummary{
		Summary:         taskTotals(tasks, now),
		DailyStats:      s.dailyStats(entries, window),
		TasksByPriority: countByPriority(tasks),
		TasksByStatus:   countByStatus(tasks),
		TopProjects:     topProjects(projects, tasks, entries),
		WeekdayStats:    s.weekdayStats(entries),
		Period: models.DashboardPeriod{
			Days: days,
			From: window.From.In(s.loc).Format(models.DateLayout),
			To:   window.To.In(s.loc).Format(models.DateLayout),
		},
	}

	for _, entry := range entries {
		if finalized(entry) {
			summary.Summary.TrackedTime += *entry.Duration
		}
	}
	if running != nil {
		start := running.StartTime
		if start.Before(window.From) {
			start = window.From
		}
		summary.Summary.LiveTime = LiveDuration(start, now)
	}
	summary.Summary.TotalTimeSpent = summary.Summary.TrackedTime + summary.Summary.LiveTime
	summary.Summary.ActiveProjects = len(projects)

	return summary, nil
}

// TimeSeries buckets finalized entries in the window by groupBy.
func (s *AnalyticsService) TimeSeries(ctx context.Context, query TimeSeriesQuery) (*models.TimeSeries, error) {
	if query.UserID == "" {
		return nil, apperr.NewUnauthorizedError("missing user identity")
	}
	if query.GroupBy == "" {
		query.GroupBy = models.GroupByDay
	}
	if !query.GroupBy.Valid() {
		return nil, apperr.NewInvalidFieldError("groupBy", string(query.GroupBy), "must be one of day, week, month, project")
	}

	window, err := models.ResolveWindow(query.From, query.To, s.defaultDays, s.clock.Now(), s.loc)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.ListInWindow(ctx, query.UserID, window, query.ProjectID)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		totalTime int64
		entries   int
		tasks     map[string]struct{}
	}
	buckets := make(map[string]*bucket)
	allTasks := make(map[string]struct{})
	var total int64

	for _, entry := range entries {
		if !finalized(entry) {
			continue
		}
		key := bucketKey(entry, query.GroupBy, s.loc)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{tasks: make(map[string]struct{})}
			buckets[key] = b
		}
		b.totalTime += *entry.Duration
		b.entries++
		b.tasks[entry.TaskID] = struct{}{}
		allTasks[entry.TaskID] = struct{}{}
		total += *entry.Duration
	}

	series := make([]models.TimeSeriesBucket, 0, len(buckets))
	for key, b := range buckets {
		series = append(series, models.TimeSeriesBucket{
			Period:       key,
			TotalTime:    b.totalTime,
			TasksCount:   len(b.tasks),
			EntriesCount: b.entries,
		})
	}

	if query.GroupBy == models.GroupByProject {
		sort.Slice(series, func(i, j int) bool {
			if series[i].TotalTime != series[j].TotalTime {
				return series[i].TotalTime > series[j].TotalTime
			}
			return series[i].Period < series[j].Period
		})
	} else {
		sort.Slice(series, func(i, j int) bool { return series[i].Period < series[j].Period })
	}

	return &models.TimeSeries{
		Buckets: series,
		Summary: models.TimeSeriesSummary{
			TotalTime:  total,
			TotalTasks: len(allTasks),
			From:       window.From.Format(models.DateLayout),
			To:         window.To.Format(models.DateLayout),
			GroupBy:    query.GroupBy,
		},
	}, nil
}

// ProjectReport rolls up task counts and tracked time per active project.
// Task counts cover all of a project's tasks; time covers only entries
// started inside the window.
func (s *AnalyticsService) ProjectReport(ctx context.Context, userID string, from, to *time.Time) (*models.ProjectReport, error) {
	if userID == "" {
		return nil, apperr.NewUnauthorizedError("missing user identity")
	}

	now := s.clock.Now()
	window, err := models.ResolveWindow(from, to, s.defaultDays, now, s.loc)
	if err != nil {
		return nil, err
	}

	projects, err := s.tasks.ListProjects(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListTasks(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	entries, err := s.entries.ListInWindow(ctx, userID, window, nil)
	if err != nil {
		return nil, err
	}

	rows := make([]models.ProjectReportRow, 0, len(projects))
	index := make(map[string]int, len(projects))
	for _, p := range projects {
		index[p.ID] = len(rows)
		rows = append(rows, models.ProjectReportRow{ProjectID: p.ID, Name: p.Name, Color: p.Color})
	}

	for _, task := range tasks {
		if task.ProjectID == nil {
			continue
		}
		i, ok := index[*task.ProjectID]
		if !ok {
			continue
		}
		rows[i].TotalTasks++
		switch task.Status {
		case models.TaskStatusCompleted:
			rows[i].CompletedTasks++
		case models.TaskStatusInProgress:
			rows[i].InProgressTasks++
		}
		if task.IsOverdue(now) {
			rows[i].OverdueTasks++
		}
	}

	for _, entry := range entries {
		if !finalized(entry) {
			continue
		}
		i, ok := index[projectIDOf(entry)]
		if !ok {
			continue
		}
		rows[i].TotalTime += *entry.Duration
		rows[i].EntriesCount++
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalTime != rows[j].TotalTime {
			return rows[i].TotalTime > rows[j].TotalTime
		}
		return rows[i].Name < rows[j].Name
	})

	report := &models.ProjectReport{
		Projects: rows,
		Summary: models.ProjectReportSummary{
			ProjectCount: len(rows),
			From:         window.From.Format(models.DateLayout),
			To:           window.To.Format(models.DateLayout),
		},
	}
	for _, row := range rows {
		report.Summary.TotalTime += row.TotalTime
		report.Summary.TotalTasks += row.TotalTasks
		report.Summary.CompletedTasks += row.CompletedTasks
	}
	return report, nil
}

// ExportTasks pairs every task, optionally limited to one project, with
// the finalized time tracked against it inside the window.
func (s *AnalyticsService) ExportTasks(ctx context.Context, userID string, from, to *time.Time, projectID *string) ([]models.TaskTotal, models.Window, error) {
	if userID == "" {
		return nil, models.Window{}, apperr.NewUnauthorizedError("missing user identity")
	}

	window, err := models.ResolveWindow(from, to, s.defaultDays, s.clock.Now(), s.loc)
	if err != nil {
		return nil, models.Window{}, err
	}

	tasks, err := s.tasks.ListTasks(ctx, userID, projectID)
	if err != nil {
		return nil, models.Window{}, err
	}
	projects, err := s.tasks.ListProjects(ctx, userID, true)
	if err != nil {
		return nil, models.Window{}, err
	}
	entries, err := s.entries.ListInWindow(ctx, userID, window, projectID)
	if err != nil {
		return nil, models.Window{}, err
	}

	projectNames := make(map[string]string, len(projects))
	for _, p := range projects {
		projectNames[p.ID] = p.Name
	}

	type taskTime struct {
		total   int64
		entries int
	}
	times := make(map[string]*taskTime)
	for _, entry := range entries {
		if !finalized(entry) {
			continue
		}
		tt, ok := times[entry.TaskID]
		if !ok {
			tt = &taskTime{}
			times[entry.TaskID] = tt
		}
		tt.total += *entry.Duration
		tt.entries++
	}

	totals := make([]models.TaskTotal, 0, len(tasks))
	for _, task := range tasks {
		row := models.TaskTotal{Task: *task}
		if task.ProjectID != nil {
			if name, ok := projectNames[*task.ProjectID]; ok {
				row.ProjectName = &name
			}
		}
		if tt, ok := times[task.ID]; ok {
			row.TotalTime = tt.total
			row.EntriesCount = tt.entries
		}
		totals = append(totals, row)
	}

	s.logger.Debug("Prepared task export",
		zap.String("user_id", userID),
		zap.Int("tasks", len(totals)))

	return totals, window, nil
}

func taskTotals(tasks []*models.Task, now time.Time) models.SummaryTotals {
	totals := models.SummaryTotals{TotalTasks: len(tasks)}
	for _, task := range tasks {
		switch task.Status {
		case models.TaskStatusCompleted:
			totals.CompletedTasks++
		case models.TaskStatusInProgress:
			totals.InProgressTasks++
		}
		if task.IsOverdue(now) {
			totals.OverdueTasks++
		}
	}
	if totals.TotalTasks > 0 {
		totals.CompletionRate = float64(totals.CompletedTasks) / float64(totals.TotalTasks)
	}
	return totals
}

func countByPriority(tasks []*models.Task) []models.CountByKey {
	counts := make(map[models.TaskPriority]int)
	for _, task := range tasks {
		counts[task.Priority]++
	}
	result := make([]models.CountByKey, 0, len(models.TaskPriorities))
	for _, p := range models.TaskPriorities {
		result = append(result, models.CountByKey{Key: string(p), Count: counts[p]})
	}
	return result
}

func countByStatus(tasks []*models.Task) []models.CountByKey {
	counts := make(map[models.TaskStatus]int)
	for _, task := range tasks {
		counts[task.Status]++
	}
	result := make([]models.CountByKey, 0, len(models.TaskStatuses))
	for _, st := range models.TaskStatuses {
		result = append(result, models.CountByKey{Key: string(st), Count: counts[st]})
	}
	return result
}

// dailyStats emits one row per calendar day of the window, keeping the
// most recent days when the window is longer than the chart allows.
func (s *AnalyticsService) dailyStats(entries []*models.TimeEntry, window models.Window) []models.DailyStat {
	keys := dayKeys(window.From, window.To, s.loc)
	if len(keys) > maxDailyPoints {
		keys = keys[len(keys)-maxDailyPoints:]
	}

	created := make(map[string]int)
	completed := make(map[string]int)
	for _, entry := range entries {
		created[entry.StartTime.In(s.loc).Format(models.DateLayout)]++
		if finalized(entry) && entry.EndTime != nil {
			completed[entry.EndTime.In(s.loc).Format(models.DateLayout)]++
		}
	}

	stats := make([]models.DailyStat, 0, len(keys))
	for _, key := range keys {
		stats = append(stats, models.DailyStat{
			Date:             key,
			EntriesCreated:   created[key],
			EntriesCompleted: completed[key],
		})
	}
	return stats
}

// weekdayStats always returns seven rows, Sunday first.
func (s *AnalyticsService) weekdayStats(entries []*models.TimeEntry) []models.WeekdayStat {
	stats := make([]models.WeekdayStat, 7)
	for i := range stats {
		stats[i] = models.WeekdayStat{Weekday: i, Label: time.Weekday(i).String()}
	}
	for _, entry := range entries {
		if !finalized(entry) {
			continue
		}
		day := entry.StartTime.In(s.loc).Weekday()
		stats[day].EntriesCount++
		stats[day].TotalTime += *entry.Duration
	}
	for i := range stats {
		if stats[i].EntriesCount > 0 {
			stats[i].AverageTime = stats[i].TotalTime / int64(stats[i].EntriesCount)
		}
	}
	return stats
}

// topProjects ranks active projects by finalized time in the window.
func topProjects(projects []*models.Project, tasks []*models.Task, entries []*models.TimeEntry) []models.ProjectTime {
	rows := make([]models.ProjectTime, 0, len(projects))
	index := make(map[string]int, len(projects))
	for _, p := range projects {
		index[p.ID] = len(rows)
		rows = append(rows, models.ProjectTime{ProjectID: p.ID, Name: p.Name, Color: p.Color})
	}
	for _, task := range tasks {
		if task.ProjectID == nil {
			continue
		}
		if i, ok := index[*task.ProjectID]; ok {
			rows[i].TasksCount++
		}
	}
	for _, entry := range entries {
		if !finalized(entry) {
			continue
		}
		if i, ok := index[projectIDOf(entry)]; ok {
			rows[i].TotalTime += *entry.Duration
			rows[i].EntriesCount++
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalTime != rows[j].TotalTime {
			return rows[i].TotalTime > rows[j].TotalTime
		}
		return rows[i].Name < rows[j].Name
	})
	if len(rows) > topProjectsLimit {
		rows = rows[:topProjectsLimit]
	}
	return rows
}
