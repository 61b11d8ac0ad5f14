package insights

import (
	"sort"

	"lodestar/pkg/domain/tracker"
)

// TypeEfficiency reports throughput for one project type.
type TypeEfficiency struct {
	ProjectType    string  `json:"project_type"`
	TaskCount      int     `json:"task_count"`
	CompletedCount int     `json:"completed_count"`
	CompletionRate float64 `json:"completion_rate"` // percent
	AvgTimeRatio   float64 `json:"avg_time_ratio"`
}

// ComputeTypeEfficiency rates each project type by its completion rate and
// average actual/estimated ratio. Requires MinEfficiencyTasks tasks overall;
// types holding fewer than MinEfficiencyPerType tasks are suppressed.
// Results are sorted by descending completion rate, ties by type name.
func ComputeTypeEfficiency(tasks []tracker.Task, projects map[string]tracker.Project) ([]TypeEfficiency, bool) {
	if len(tasks) < MinEfficiencyTasks {
		return nil, false
	}

	type bucket struct {
		total     int
		completed int
		ratios    []float64
	}

	buckets := make(map[string]*bucket)
	for _, t := range tasks {
		label := typeLabelFor(t, projects)
		b, ok := buckets[label]
		if !ok {
			b = &bucket{}
			buckets[label] = b
		}
		b.total++
		if t.IsCompleted() {
			b.completed++
		}
		if ratio, ok := t.TimeRatio(); ok {
			b.ratios = append(b.ratios, ratio)
		}
	}

	results := make([]TypeEfficiency, 0, len(buckets))
	for label, b := range buckets {
		if b.total < MinEfficiencyPerType {
			continue
		}
		results = append(results, TypeEfficiency{
			ProjectType:    label,
			TaskCount:      b.total,
			CompletedCount: b.completed,
			CompletionRate: float64(b.completed) / float64(b.total) * 100,
			AvgTimeRatio:   mean(b.ratios),
		})
	}
	if len(results) == 0 {
		return nil, false
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].CompletionRate != results[j].CompletionRate {
			return results[i].CompletionRate > results[j].CompletionRate
		}
		return results[i].ProjectType < results[j].ProjectType
	})
	return results, true
}
