// Package report flattens task totals and analytics results into
// ordered tables for export. It performs no I/O.
package report

import (
	"fmt"
	"strconv"
	"time"

	"Mansoor88-6/time-tracking-api/internal/models"
)

// Table is a titled grid with exactly one header row. Every row has
// len(Header) cells.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

var (
	taskHeader       = []string{"Task", "Project", "Status", "Priority", "Due Date", "Created", "Entries", "Total Time"}
	timeSeriesHeader = []string{"Period", "Total Time", "Tasks", "Entries"}
	projectHeader    = []string{"Project", "Tasks", "Completed", "In Progress", "Overdue", "Entries", "Total Time"}
)

var statusLabels = map[models.TaskStatus]string{
	models.TaskStatusTodo:       "To Do",
	models.TaskStatusInProgress: "In Progress",
	models.TaskStatusCompleted:  "Completed",
	models.TaskStatusCancelled:  "Cancelled",
}

var priorityLabels = map[models.TaskPriority]string{
	models.TaskPriorityLow:    "Low",
	models.TaskPriorityMedium: "Medium",
	models.TaskPriorityHigh:   "High",
	models.TaskPriorityUrgent: "Urgent",
}

// Projector renders dates in one timezone and layout.
type Projector struct {
	loc        *time.Location
	dateLayout string
}

func NewProjector(loc *time.Location, dateLayout string) *Projector {
	if loc == nil {
		loc = time.UTC
	}
	if dateLayout == "" {
		dateLayout = models.DateLayout
	}
	return &Projector{loc: loc, dateLayout: dateLayout}
}

// TaskRows emits one row per task in input order.
func (p *Projector) TaskRows(title string, totals []models.TaskTotal) Table {
	rows := make([][]string, 0, len(totals))
	for _, t := range totals {
		project := ""
		if t.ProjectName != nil {
			project = *t.ProjectName
		}
		rows = append(rows, []string{
			t.Task.Title,
			project,
			StatusLabel(t.Task.Status),
			PriorityLabel(t.Task.Priority),
			p.formatDatePtr(t.Task.DueDate),
			p.formatDate(t.Task.CreatedAt),
			strconv.Itoa(t.EntriesCount),
			FormatDuration(t.TotalTime),
		})
	}
	return Table{Title: title, Header: clone(taskHeader), Rows: rows}
}

// TimeSeriesRows emits one row per bucket followed by a total row.
func (p *Projector) TimeSeriesRows(series *models.TimeSeries) Table {
	rows := make([][]string, 0, len(series.Buckets)+1)
	entries := 0
	for _, b := range series.Buckets {
		rows = append(rows, []string{
			b.Period,
			FormatDuration(b.TotalTime),
			strconv.Itoa(b.TasksCount),
			strconv.Itoa(b.EntriesCount),
		})
		entries += b.EntriesCount
	}
	rows = append(rows, []string{
		"Total",
		FormatDuration(series.Summary.TotalTime),
		strconv.Itoa(series.Summary.TotalTasks),
		strconv.Itoa(entries),
	})

	title := fmt.Sprintf("Time by %s (%s to %s)", series.Summary.GroupBy, series.Summary.From, series.Summary.To)
	return Table{Title: title, Header: clone(timeSeriesHeader), Rows: rows}
}

// ProjectRows emits one row per project in report order.
func (p *Projector) ProjectRows(report *models.ProjectReport) Table {
	rows := make([][]string, 0, len(report.Projects))
	for _, r := range report.Projects {
		rows = append(rows, []string{
			r.Name,
			strconv.Itoa(r.TotalTasks),
			strconv.Itoa(r.CompletedTasks),
			strconv.Itoa(r.InProgressTasks),
			strconv.Itoa(r.OverdueTasks),
			strconv.Itoa(r.EntriesCount),
			FormatDuration(r.TotalTime),
		})
	}
	title := fmt.Sprintf("Projects (%s to %s)", report.Summary.From, report.Summary.To)
	return Table{Title: title, Header: clone(projectHeader), Rows: rows}
}

func (p *Projector) formatDate(t time.Time) string {
	return t.In(p.loc).Format(p.dateLayout)
}

func (p *Projector) formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return p.formatDate(*t)
}

// StatusLabel returns the display label for a task status.
func StatusLabel(s models.TaskStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// PriorityLabel returns the display label for a task priority.
func PriorityLabel(p models.TaskPriority) string {
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return string(p)
}

// FormatDuration renders seconds as HH:MM:SS. Hours are not capped.
func FormatDuration(secs int64) string {
	sign := ""
	if secs < 0 {
		sign = "-"
		secs = -secs
	}
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, h, m, s)
}

func clone(header []string) []string {
	out := make([]string, len(header))
	copy(out, header)
	return out
}
