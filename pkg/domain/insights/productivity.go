package insights

import (
	"lodestar/pkg/domain/tracker"
)

// DayProductivity reports completion volume for one weekday.
type DayProductivity struct {
	Day       tracker.Weekday `json:"day"`
	TaskCount int             `json:"task_count"`
	AvgHours  float64         `json:"avg_hours"`
}

// ComputeProductivityByDay groups completed tasks by the weekday they were
// finished. The result always holds all seven weekdays in canonical
// Monday-first order, zero counts included, regardless of the order tasks
// arrive in. AvgHours averages only tasks with a recorded actual time.
// Requires MinProductivityTasks completed tasks with a completion timestamp.
func ComputeProductivityByDay(tasks []tracker.Task) ([]DayProductivity, bool) {
	counts := make(map[tracker.Weekday]int)
	hours := make(map[tracker.Weekday][]float64)

	completed := 0
	for _, t := range tasks {
		if !t.IsCompleted() || t.CompletedAt == nil {
			continue
		}
		completed++

		day := tracker.WeekdayOf(*t.CompletedAt)
		counts[day]++
		if t.ActualTime != nil {
			hours[day] = append(hours[day], *t.ActualTime)
		}
	}

	if completed < MinProductivityTasks {
		return nil, false
	}

	days := tracker.WeekdaysMondayFirst()
	result := make([]DayProductivity, 0, len(days))
	for _, day := range days {
		result = append(result, DayProductivity{
			Day:       day,
			TaskCount: counts[day],
			AvgHours:  mean(hours[day]),
		})
	}
	return result, true
}
