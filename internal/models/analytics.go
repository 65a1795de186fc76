package models

// GroupBy selects the bucketing rule for a time series.
type GroupBy string

const (
	GroupByDay     GroupBy = "day"
	GroupByWeek    GroupBy = "week"
	GroupByMonth   GroupBy = "month"
	GroupByProject GroupBy = "project"
)

// Valid reports whether g is a known grouping.
func (g GroupBy) Valid() bool {
	switch g {
	case GroupByDay, GroupByWeek, GroupByMonth, GroupByProject:
		return true
	}
	return false
}

type DashboardSummary struct {
	Summary         SummaryTotals   `json:"summary"`
	DailyStats      []DailyStat     `json:"dailyStats"`
	TasksByPriority []CountByKey    `json:"tasksByPriority"`
	TasksByStatus   []CountByKey    `json:"tasksByStatus"`
	TopProjects     []ProjectTime   `json:"topProjects"`
	WeekdayStats    []WeekdayStat   `json:"weekdayStats"`
	Period          DashboardPeriod `json:"period"`
}

type DashboardPeriod struct {
	Days int    `json:"days"`
	From string `json:"from"`
	To   string `json:"to"`
}

type SummaryTotals struct {
	TotalTasks      int     `json:"totalTasks"`
	CompletedTasks  int     `json:"completedTasks"`
	InProgressTasks int     `json:"inProgressTasks"`
	OverdueTasks    int     `json:"overdueTasks"`
	TotalTimeSpent  int64   `json:"totalTimeSpent"`
	TrackedTime     int64   `json:"trackedTime"`
	LiveTime        int64   `json:"liveTime"`
	ActiveProjects  int     `json:"activeProjects"`
	CompletionRate  float64 `json:"completionRate"`
}

type DailyStat struct {
	Date             string `json:"date"`
	EntriesCreated   int    `json:"entriesCreated"`
	EntriesCompleted int    `json:"entriesCompleted"`
}

type CountByKey struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type ProjectTime struct {
	ProjectID    string `json:"projectId"`
	Name         string `json:"name"`
	Color        string `json:"color"`
	TotalTime    int64  `json:"totalTime"`
	EntriesCount int    `json:"entriesCount"`
	TasksCount   int    `json:"tasksCount"`
}

type WeekdayStat struct {
	Weekday      int    `json:"weekday"`
	Label        string `json:"label"`
	EntriesCount int    `json:"entriesCount"`
	TotalTime    int64  `json:"totalTime"`
	AverageTime  int64  `json:"averageTime"`
}

type TimeSeriesBucket struct {
	Period       string `json:"period"`
	TotalTime    int64  `json:"total_time"`
	TasksCount   int    `json:"tasks_count"`
	EntriesCount int    `json:"entries_count"`
}

type TimeSeriesSummary struct {
	TotalTime  int64   `json:"totalTime"`
	TotalTasks int     `json:"totalTasks"`
	From       string  `json:"from"`
	To         string  `json:"to"`
	GroupBy    GroupBy `json:"groupBy"`
}

type TimeSeries struct {
	Buckets []TimeSeriesBucket `json:"data"`
	Summary TimeSeriesSummary  `json:"summary"`
}

type ProjectReportRow struct {
	ProjectID       string `json:"projectId"`
	Name            string `json:"name"`
	Color           string `json:"color"`
	TotalTasks      int    `json:"totalTasks"`
	CompletedTasks  int    `json:"completedTasks"`
	InProgressTasks int    `json:"inProgressTasks"`
	OverdueTasks    int    `json:"overdueTasks"`
	TotalTime       int64  `json:"totalTime"`
	EntriesCount    int    `json:"entriesCount"`
}

type ProjectReportSummary struct {
	ProjectCount   int    `json:"projectCount"`
	TotalTime      int64  `json:"totalTime"`
	TotalTasks     int    `json:"totalTasks"`
	CompletedTasks int    `json:"completedTasks"`
	From           string `json:"from"`
	To             string `json:"to"`
}

type ProjectReport struct {
	Projects []ProjectReportRow   `json:"projects"`
	Summary  ProjectReportSummary `json:"summary"`
}
