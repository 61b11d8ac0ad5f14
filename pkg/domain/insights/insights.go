// Package insights computes productivity statistics over task snapshots.
// Every function is pure: it takes read-only record collections, joins tasks
// to projects by project_id, and returns either a result or an explicit
// insufficient-data signal via the comma-ok boolean. Low-sample statistics
// are suppressed rather than shown, so the thresholds below are part of the
// contract, not tuning knobs.
package insights

import (
	"math"
	"sort"
	"time"

	"lodestar/pkg/domain/tracker"
)

// Minimum sample sizes. Below these the functions report no result at all
// rather than a statistically meaningless one.
const (
	MinInsightTasks      = 5
	MinAccuracyTasks     = 3
	MinAccuracyPerType   = 2
	MinEfficiencyTasks   = 5
	MinEfficiencyPerType = 3
	MinProductivityTasks = 5
	MinEfficientTypeSize = 3
)

// UnknownTypeLabel groups tasks whose project reference is missing or whose
// project carries no type.
const UnknownTypeLabel = "unknown"

// UserInsights is the top-level productivity summary.
type UserInsights struct {
	TaskCount          int             `json:"task_count"`
	CompletedCount     int             `json:"completed_count"`
	CompletionRate     float64         `json:"completion_rate"` // percent
	TrackedCount       int             `json:"tracked_count"`
	EstimationRatio    float64         `json:"estimation_ratio"`
	EstimationAccuracy float64         `json:"estimation_accuracy"`
	MostProductiveDay  tracker.Weekday `json:"most_productive_day,omitempty"`
	MostEfficientType  string          `json:"most_efficient_type,omitempty"`
	ProjectBalance     float64         `json:"project_balance"`
	ActiveProjects     int             `json:"active_projects"`
}

// ComputeUserInsights aggregates the snapshot into a UserInsights summary.
// The boolean is false when fewer than MinInsightTasks tasks exist; a partial
// summary is never returned.
func ComputeUserInsights(tasks []tracker.Task, projects map[string]tracker.Project) (UserInsights, bool) {
	if len(tasks) < MinInsightTasks {
		return UserInsights{}, false
	}

	result := UserInsights{TaskCount: len(tasks)}

	var ratios []float64
	for _, t := range tasks {
		if t.IsCompleted() {
			result.CompletedCount++
		}
		if ratio, ok := t.TimeRatio(); ok {
			ratios = append(ratios, ratio)
		}
	}
	result.CompletionRate = float64(result.CompletedCount) / float64(result.TaskCount) * 100

	result.TrackedCount = len(ratios)
	if len(ratios) > 0 {
		result.EstimationRatio = mean(ratios)
		accuracies := make([]float64, len(ratios))
		for i, r := range ratios {
			accuracies[i] = taskAccuracy(r)
		}
		result.EstimationAccuracy = mean(accuracies)
	}

	result.MostProductiveDay = mostProductiveDay(tasks)
	result.MostEfficientType = mostEfficientType(tasks, projects)
	result.ProjectBalance, result.ActiveProjects = projectBalance(tasks)

	return result, true
}

// taskAccuracy converts an actual/estimated ratio into a 0-100 accuracy.
// 100 at a perfect 1:1 ratio, degrading linearly by 50 points per unit of
// ratio error, floored at zero.
func taskAccuracy(ratio float64) float64 {
	accuracy := 100 - 50*math.Abs(ratio-1)
	if accuracy < 0 {
		return 0
	}
	return accuracy
}

// mostProductiveDay finds the weekday with the most completions. Ties break
// toward the earliest weekday in Sunday-first enumeration order so the
// result is deterministic.
func mostProductiveDay(tasks []tracker.Task) tracker.Weekday {
	var counts [7]int
	total := 0
	for _, t := range tasks {
		if !t.IsCompleted() || t.CompletedAt == nil {
			continue
		}
		counts[int(t.CompletedAt.Weekday())]++
		total++
	}
	if total == 0 {
		return ""
	}

	best := 0
	for i := 1; i < 7; i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return tracker.WeekdayFromTime(time.Weekday(best))
}

// mostEfficientType finds the project type with the highest completion rate
// among types holding at least MinEfficientTypeSize tasks. Ties break toward
// the lexicographically smaller type name. Empty when no type qualifies.
func mostEfficientType(tasks []tracker.Task, projects map[string]tracker.Project) string {
	type tally struct {
		total     int
		completed int
	}
	tallies := make(map[string]*tally)
	for _, t := range tasks {
		label := typeLabelFor(t, projects)
		entry, ok := tallies[label]
		if !ok {
			entry = &tally{}
			tallies[label] = entry
		}
		entry.total++
		if t.IsCompleted() {
			entry.completed++
		}
	}

	best := ""
	bestRate := -1.0
	for label, entry := range tallies {
		if entry.total < MinEfficientTypeSize {
			continue
		}
		rate := float64(entry.completed) / float64(entry.total)
		if rate > bestRate || (rate == bestRate && label < best) {
			best = label
			bestRate = rate
		}
	}
	return best
}

// projectBalance rates how evenly tasks spread across active projects.
// 100 means a perfectly even split; the score drops toward zero as one
// project absorbs everything. With zero or one active project there is no
// imbalance to measure and the score is 100 by definition.
func projectBalance(tasks []tracker.Task) (float64, int) {
	counts := make(map[string]int)
	assigned := 0
	for _, t := range tasks {
		if t.ProjectID == "" {
			continue
		}
		counts[t.ProjectID]++
		assigned++
	}

	n := len(counts)
	if n <= 1 {
		return 100, n
	}

	evenShare := 1.0 / float64(n)
	totalDeviation := 0.0
	for _, count := range counts {
		share := float64(count) / float64(assigned)
		totalDeviation += math.Abs(share - evenShare)
	}
	// Total deviation peaks at 2(n-1)/n when one project holds everything.
	maxDeviation := 2 * float64(n-1) / float64(n)

	return 100 * (1 - totalDeviation/maxDeviation), n
}

// typeLabelFor resolves a task's project-type group. Tasks whose project is
// missing from the snapshot, or whose project has no type, group under the
// unknown label.
func typeLabelFor(t tracker.Task, projects map[string]tracker.Project) string {
	if p, ok := projects[t.ProjectID]; ok && p.Type != "" {
		return string(p.Type)
	}
	return UnknownTypeLabel
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sortGroupsByCount orders labels by descending count, breaking ties by
// ascending label so output is stable across runs.
func sortGroupsByCount(labels []string, counts map[string]int) {
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})
}
