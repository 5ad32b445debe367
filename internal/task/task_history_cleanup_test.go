package task

import (
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSchedule(t *testing.T, expr string) cron.Schedule {
	t.Helper()
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(expr)
	require.NoError(t, err)
	return schedule
}

func TestHistoryCleanupDue(t *testing.T) {
	schedule := mustSchedule(t, "13 3 * * *")

	base := time.Date(2025, 6, 1, 3, 0, 0, 0, time.Local)
	task := &HistoryCleanupTask{
		schedule: schedule,
		next:     schedule.Next(base),
	}

	// 未到计划点
	assert.False(t, task.due(base.Add(5*time.Minute)))

	// 到点触发,且下次执行推进到明天
	fire := time.Date(2025, 6, 1, 3, 13, 30, 0, time.Local)
	assert.True(t, task.due(fire))
	assert.Equal(t, time.Date(2025, 6, 2, 3, 13, 0, 0, time.Local), task.next)

	// 同一计划点只触发一次
	assert.False(t, task.due(fire.Add(time.Second)))
}

func TestHistoryCleanupDueAfterDowntime(t *testing.T) {
	schedule := mustSchedule(t, "13 3 * * *")

	// next 停留在过去,恢复后的第一次检查应当补跑
	task := &HistoryCleanupTask{
		schedule: schedule,
		next:     time.Date(2025, 6, 1, 3, 13, 0, 0, time.Local),
	}

	resume := time.Date(2025, 6, 3, 9, 0, 0, 0, time.Local)
	assert.True(t, task.due(resume))
	assert.Equal(t, time.Date(2025, 6, 4, 3, 13, 0, 0, time.Local), task.next)
}

func TestCleanupCronRejectsSixFields(t *testing.T) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	_, err := parser.Parse("0 13 3 * * *")
	assert.Error(t, err)
}
