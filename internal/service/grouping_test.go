package service

import (
	"testing"
	"time"

	"Mansoor88-6/time-tracking-api/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestWeekKey(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "2024-W01"},
		{time.Date(2024, 1, 7, 23, 0, 0, 0, time.UTC), "2024-W01"},
		{time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), "2024-W02"},
		{time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "2024-W09"},
		{time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC), "2024-W52"},
		{time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), "2024-W53"},
		{time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), "2024-W53"},
		{time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), "2023-W53"},
	}
	for _, tt := range tests {
		t.Run(tt.date.Format(models.DateLayout), func(t *testing.T) {
			assert.Equal(t, tt.want, weekKey(tt.date))
		})
	}
}

func TestBucketKey(t *testing.T) {
	name := "Website"
	entry := &models.TimeEntry{
		StartTime: time.Date(2024, 2, 29, 23, 30, 0, 0, time.UTC),
		Task:      &models.TaskContext{ProjectName: &name},
	}

	assert.Equal(t, "2024-02-29", bucketKey(entry, models.GroupByDay, time.UTC))
	assert.Equal(t, "2024-02", bucketKey(entry, models.GroupByMonth, time.UTC))
	assert.Equal(t, "2024-W09", bucketKey(entry, models.GroupByWeek, time.UTC))
	assert.Equal(t, "Website", bucketKey(entry, models.GroupByProject, time.UTC))

	tokyo := time.FixedZone("JST", 9*60*60)
	assert.Equal(t, "2024-03-01", bucketKey(entry, models.GroupByDay, tokyo))
	assert.Equal(t, "2024-03", bucketKey(entry, models.GroupByMonth, tokyo))

	entry.Task = &models.TaskContext{}
	assert.Equal(t, noProjectLabel, bucketKey(entry, models.GroupByProject, time.UTC))
}

func TestDayKeys(t *testing.T) {
	from := time.Date(2024, 2, 27, 15, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01"}, dayKeys(from, to, time.UTC))
}
