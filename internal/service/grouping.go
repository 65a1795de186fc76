package service

import (
	"fmt"
	"time"

	"Mansoor88-6/time-tracking-api/internal/models"
)

const noProjectLabel = "No Project"

// weekKey numbers weeks by ceil(dayOfYear/7) so week 1 always starts
// on January 1st. The number is zero padded so keys sort in time order.
func weekKey(t time.Time) string {
	week := (t.YearDay() + 6) / 7
	return fmt.Sprintf("%d-W%02d", t.Year(), week)
}

// bucketKey returns the grouping key of an entry under groupBy. The
// entry's start time is interpreted in loc.
func bucketKey(entry *models.TimeEntry, groupBy models.GroupBy, loc *time.Location) string {
	start := entry.StartTime.In(loc)
	switch groupBy {
	case models.GroupByWeek:
		return weekKey(start)
	case models.GroupByMonth:
		return start.Format("2006-01")
	case models.GroupByProject:
		return projectLabel(entry)
	default:
		return start.Format(models.DateLayout)
	}
}

func projectLabel(entry *models.TimeEntry) string {
	if entry.Task != nil && entry.Task.ProjectName != nil {
		return *entry.Task.ProjectName
	}
	return noProjectLabel
}

func projectIDOf(entry *models.TimeEntry) string {
	if entry.Task != nil && entry.Task.ProjectID != nil {
		return *entry.Task.ProjectID
	}
	return ""
}

// finalized reports whether the entry is closed with a duration and can
// contribute tracked time to aggregates.
func finalized(entry *models.TimeEntry) bool {
	return !entry.IsRunning && entry.Duration != nil
}

// dayKeys lists every calendar day from from to to inclusive in loc.
func dayKeys(from, to time.Time, loc *time.Location) []string {
	var keys []string
	day := models.StartOfDay(from, loc)
	last := models.StartOfDay(to, loc)
	for !day.After(last) {
		keys = append(keys, day.Format(models.DateLayout))
		day = day.AddDate(0, 0, 1)
	}
	return keys
}
