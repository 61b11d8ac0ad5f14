package insights

import (
	"lodestar/pkg/domain/tracker"
)

// AccuracyGroup reports estimation accuracy for one project type.
type AccuracyGroup struct {
	ProjectType  string  `json:"project_type"`
	TaskCount    int     `json:"task_count"`
	AvgEstimated float64 `json:"avg_estimated"`
	AvgActual    float64 `json:"avg_actual"`
	Accuracy     float64 `json:"accuracy"`
}

// ComputeTimeEstimateAccuracy groups completed time-tracked tasks by project
// type and rates how well estimates matched reality per group. Requires
// MinAccuracyTasks tracked tasks overall; groups smaller than
// MinAccuracyPerType are suppressed. Groups are sorted by descending task
// count, ties by type name.
func ComputeTimeEstimateAccuracy(tasks []tracker.Task, projects map[string]tracker.Project) ([]AccuracyGroup, bool) {
	type bucket struct {
		estimated  []float64
		actual     []float64
		accuracies []float64
	}

	buckets := make(map[string]*bucket)
	tracked := 0
	for _, t := range tasks {
		ratio, ok := t.TimeRatio()
		if !ok {
			continue
		}
		tracked++

		label := typeLabelFor(t, projects)
		b, ok := buckets[label]
		if !ok {
			b = &bucket{}
			buckets[label] = b
		}
		b.estimated = append(b.estimated, t.EstimatedTime)
		b.actual = append(b.actual, *t.ActualTime)
		b.accuracies = append(b.accuracies, taskAccuracy(ratio))
	}

	if tracked < MinAccuracyTasks {
		return nil, false
	}

	var labels []string
	counts := make(map[string]int)
	for label, b := range buckets {
		if len(b.accuracies) < MinAccuracyPerType {
			continue
		}
		labels = append(labels, label)
		counts[label] = len(b.accuracies)
	}
	if len(labels) == 0 {
		return nil, false
	}
	sortGroupsByCount(labels, counts)

	groups := make([]AccuracyGroup, 0, len(labels))
	for _, label := range labels {
		b := buckets[label]
		groups = append(groups, AccuracyGroup{
			ProjectType:  label,
			TaskCount:    len(b.accuracies),
			AvgEstimated: mean(b.estimated),
			AvgActual:    mean(b.actual),
			Accuracy:     mean(b.accuracies),
		})
	}
	return groups, true
}
