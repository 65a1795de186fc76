package report

import (
	"testing"
	"time"

	"Mansoor88-6/time-tracking-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatDuration(0))
	assert.Equal(t, "01:30:00", FormatDuration(5400))
	assert.Equal(t, "27:46:40", FormatDuration(100000))
	assert.Equal(t, "-00:10:00", FormatDuration(-600))
}

func TestTaskRows(t *testing.T) {
	ny := time.FixedZone("EST", -5*60*60)
	p := NewProjector(ny, "Jan 02, 2006")

	due := time.Date(2024, 2, 1, 3, 0, 0, 0, time.UTC)
	project := "Website"
	totals := []models.TaskTotal{
		{
			Task: models.Task{
				Title: "Design", Status: models.TaskStatusInProgress, Priority: models.TaskPriorityUrgent,
				DueDate: &due, CreatedAt: time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC),
			},
			ProjectName: &project, TotalTime: 5400, EntriesCount: 3,
		},
		{
			Task: models.Task{Title: "Misc", Status: models.TaskStatusTodo, Priority: models.TaskPriorityLow,
				CreatedAt: time.Date(2024, 1, 6, 12, 0, 0, 0, time.UTC)},
		},
	}

	table := p.TaskRows("Tasks", totals)
	assert.Equal(t, "Tasks", table.Title)
	assert.Equal(t, []string{"Task", "Project", "Status", "Priority", "Due Date", "Created", "Entries", "Total Time"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Design", "Website", "In Progress", "Urgent", "Jan 31, 2024", "Jan 05, 2024", "3", "01:30:00"}, table.Rows[0])
	assert.Equal(t, []string{"Misc", "", "To Do", "Low", "", "Jan 06, 2024", "0", "00:00:00"}, table.Rows[1])

	for _, row := range table.Rows {
		assert.Len(t, row, len(table.Header))
	}
}

func TestTimeSeriesRows(t *testing.T) {
	p := NewProjector(time.UTC, "")
	series := &models.TimeSeries{
		Buckets: []models.TimeSeriesBucket{
			{Period: "2024-01", TotalTime: 600, TasksCount: 3, EntriesCount: 3},
			{Period: "2024-02", TotalTime: 50, TasksCount: 1, EntriesCount: 1},
		},
		Summary: models.TimeSeriesSummary{TotalTime: 650, TotalTasks: 3, From: "2024-01-01", To: "2024-02-29", GroupBy: models.GroupByMonth},
	}

	table := p.TimeSeriesRows(series)
	assert.Equal(t, "Time by month (2024-01-01 to 2024-02-29)", table.Title)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, []string{"2024-01", "00:10:00", "3", "3"}, table.Rows[0])
	assert.Equal(t, []string{"Total", "00:10:50", "3", "4"}, table.Rows[2])
}

func TestProjectRows(t *testing.T) {
	p := NewProjector(time.UTC, "")
	report := &models.ProjectReport{
		Projects: []models.ProjectReportRow{
			{Name: "Beta", TotalTasks: 2, CompletedTasks: 1, InProgressTasks: 1, TotalTime: 500, EntriesCount: 1},
			{Name: "Alpha", TotalTasks: 1, OverdueTasks: 1, TotalTime: 100, EntriesCount: 2},
		},
		Summary: models.ProjectReportSummary{From: "2024-01-01", To: "2024-01-31"},
	}

	table := p.ProjectRows(report)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Beta", "2", "1", "1", "0", "1", "00:08:20"}, table.Rows[0])
	assert.Equal(t, []string{"Alpha", "1", "0", "0", "1", "2", "00:01:40"}, table.Rows[1])
}

func TestLabels_UnknownValuesPassThrough(t *testing.T) {
	assert.Equal(t, "Cancelled", StatusLabel(models.TaskStatusCancelled))
	assert.Equal(t, "archived", StatusLabel("archived"))
	assert.Equal(t, "Medium", PriorityLabel(models.TaskPriorityMedium))
	assert.Equal(t, "critical", PriorityLabel("critical"))
}
