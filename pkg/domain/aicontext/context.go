// Package aicontext condenses a user's snapshot into a deterministic,
// bounded-size profile suitable for embedding into a text-generation prompt.
// The caller owns the prompt and the provider; this package only derives the
// qualitative facts from the records it is handed.
package aicontext

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"lodestar/pkg/domain/tracker"
)

// NotEnoughData marks a classification suppressed for lack of samples.
const NotEnoughData = "not enough data"

// Estimation style classifications.
const (
	StyleOverestimator  = "overestimator"
	StyleUnderestimator = "underestimator"
	StyleBalanced       = "balanced"
)

// Note detail classifications.
const (
	DetailHighLevel = "high-level"
	DetailBalanced  = "balanced"
	DetailDetailed  = "detailed"
)

// Minimum sample sizes for the qualitative classifications.
const (
	MinStyleTasks  = 5
	MinDetailNotes = 3
)

// Estimation style boundaries on the mean actual/estimated ratio.
const (
	overestimateBelow  = 0.8
	underestimateAbove = 1.2
)

// discourseMarkers signal elaborated reasoning in note content. Each
// occurrence adds one point to the note's detail score.
var discourseMarkers = []string{"because", "therefore", "however", "additionally", "specifically"}

var (
	numericToken = regexp.MustCompile(`\d`)
	listLine     = regexp.MustCompile(`(?m)^\s*(?:[-*•]|\d+[.)])\s`)
)

// SkillSummary is a skill with its qualitative proficiency label.
type SkillSummary struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// TypeCount is one slot of the project-type distribution.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// PriorityRange summarizes scores across projects holding a positive score.
type PriorityRange struct {
	Min int     `json:"min"`
	Max int     `json:"max"`
	Avg float64 `json:"avg"`
}

// Context is the assembled profile. Fields with no data stay empty and are
// skipped when rendering.
type Context struct {
	Skills          []SkillSummary `json:"skills,omitempty"`
	WorkDays        []string       `json:"work_days,omitempty"`
	MaxDailyHours   float64        `json:"max_daily_hours,omitempty"`
	TypeCounts      []TypeCount    `json:"type_counts,omitempty"`
	PriorityRange   *PriorityRange `json:"priority_range,omitempty"`
	EstimationStyle string         `json:"estimation_style"`
	NearestDeadline string         `json:"nearest_deadline,omitempty"`
	NoteDetail      string         `json:"note_detail"`
}

// Build derives the profile from a snapshot. Deterministic: the same
// snapshot and as-of time always produce the same Context.
func Build(settings *tracker.UserSettings, projects []tracker.Project, tasks []tracker.Task, notes []tracker.Note, asOf time.Time) Context {
	ctx := Context{
		TypeCounts:      typeDistribution(projects),
		PriorityRange:   priorityRange(projects),
		EstimationStyle: estimationStyle(tasks),
		NearestDeadline: nearestDeadline(tasks, asOf),
		NoteDetail:      noteDetailLevel(notes),
	}

	if settings != nil {
		for _, skill := range settings.Skills {
			ctx.Skills = append(ctx.Skills, SkillSummary{Name: skill.Name, Level: skill.ProficiencyLabel()})
		}
		ctx.WorkDays = formatWorkDays(settings.Workflow.WorkDays)
		ctx.MaxDailyHours = settings.Workflow.EffectiveMaxDailyHours()
	}

	return ctx
}

// Render flattens the context into prompt-friendly key/value lines.
// Empty sections are omitted so the prompt never carries blank facts.
func (c Context) Render() string {
	var b strings.Builder

	if len(c.Skills) > 0 {
		parts := make([]string, len(c.Skills))
		for i, s := range c.Skills {
			parts[i] = fmt.Sprintf("%s (%s)", s.Name, s.Level)
		}
		b.WriteString("skills: ")
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString("\n")
	}

	if len(c.WorkDays) > 0 {
		b.WriteString("work_days: ")
		b.WriteString(strings.Join(c.WorkDays, ", "))
		b.WriteString("\n")
	}

	if c.MaxDailyHours > 0 {
		b.WriteString(fmt.Sprintf("max_daily_hours: %g\n", c.MaxDailyHours))
	}

	if len(c.TypeCounts) > 0 {
		parts := make([]string, len(c.TypeCounts))
		for i, tc := range c.TypeCounts {
			parts[i] = fmt.Sprintf("%s x%d", tc.Type, tc.Count)
		}
		b.WriteString("project_types: ")
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString("\n")
	}

	if c.PriorityRange != nil {
		b.WriteString(fmt.Sprintf("priority_range: min %d, max %d, avg %.1f\n",
			c.PriorityRange.Min, c.PriorityRange.Max, c.PriorityRange.Avg))
	}

	if c.EstimationStyle != "" {
		b.WriteString("estimation_style: ")
		b.WriteString(c.EstimationStyle)
		b.WriteString("\n")
	}

	if c.NearestDeadline != "" {
		b.WriteString("nearest_deadline: ")
		b.WriteString(c.NearestDeadline)
		b.WriteString("\n")
	}

	if c.NoteDetail != "" {
		b.WriteString("note_detail: ")
		b.WriteString(c.NoteDetail)
		b.WriteString("\n")
	}

	return b.String()
}

// formatWorkDays renders configured work days as display names in canonical
// Monday-first order, whatever order settings listed them in.
func formatWorkDays(days []tracker.Weekday) []string {
	ordered := make([]tracker.Weekday, len(days))
	copy(ordered, days)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Order() < ordered[j].Order()
	})

	names := make([]string, 0, len(ordered))
	for _, d := range ordered {
		names = append(names, d.DisplayName())
	}
	return names
}

// typeDistribution counts projects per type, largest first, ties by name.
// Projects without a type count under the unspecified label.
func typeDistribution(projects []tracker.Project) []TypeCount {
	if len(projects) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, p := range projects {
		label := string(p.Type)
		if label == "" {
			label = "unspecified"
		}
		counts[label]++
	}

	result := make([]TypeCount, 0, len(counts))
	for label, count := range counts {
		result = append(result, TypeCount{Type: label, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Type < result[j].Type
	})
	return result
}

// priorityRange summarizes the scores of projects that have been scored.
// Nil when no project carries a positive score yet.
func priorityRange(projects []tracker.Project) *PriorityRange {
	var scores []int
	for _, p := range projects {
		if p.PriorityScore > 0 {
			scores = append(scores, p.PriorityScore)
		}
	}
	if len(scores) == 0 {
		return nil
	}

	r := PriorityRange{Min: scores[0], Max: scores[0]}
	sum := 0
	for _, s := range scores {
		if s < r.Min {
			r.Min = s
		}
		if s > r.Max {
			r.Max = s
		}
		sum += s
	}
	r.Avg = float64(sum) / float64(len(scores))
	return &r
}

// estimationStyle classifies how the user's estimates compare to reality.
func estimationStyle(tasks []tracker.Task) string {
	var ratios []float64
	for _, t := range tasks {
		if ratio, ok := t.TimeRatio(); ok {
			ratios = append(ratios, ratio)
		}
	}
	if len(ratios) < MinStyleTasks {
		return NotEnoughData
	}

	sum := 0.0
	for _, r := range ratios {
		sum += r
	}
	mean := sum / float64(len(ratios))

	switch {
	case mean < overestimateBelow:
		return StyleOverestimator
	case mean > underestimateAbove:
		return StyleUnderestimator
	default:
		return StyleBalanced
	}
}

// nearestDeadline phrases the closest upcoming due date among pending tasks.
// Empty when nothing is due. Distances are calendar days, so a deadline later
// today reads "Today" and one tomorrow morning reads "In 1 day".
func nearestDeadline(tasks []tracker.Task, asOf time.Time) string {
	nearest := -1
	for _, t := range tasks {
		if !t.IsPending() || t.DueDate == nil {
			continue
		}
		days := calendarDaysBetween(asOf, *t.DueDate)
		if days < 0 {
			continue
		}
		if nearest < 0 || days < nearest {
			nearest = days
		}
	}

	switch {
	case nearest < 0:
		return ""
	case nearest == 0:
		return "Today"
	case nearest == 1:
		return "In 1 day"
	default:
		return fmt.Sprintf("In %d days", nearest)
	}
}

// calendarDaysBetween counts whole calendar days from asOf's date to
// target's date. Negative for past dates.
func calendarDaysBetween(asOf, target time.Time) int {
	from := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// noteDetailLevel classifies how elaborated the user's notes are via a
// weighted content heuristic: one point per discourse marker occurrence,
// one for any numeric token, two for a bulleted or numbered list line.
func noteDetailLevel(notes []tracker.Note) string {
	if len(notes) < MinDetailNotes {
		return NotEnoughData
	}

	total := 0.0
	for _, n := range notes {
		total += noteDetailScore(n.Content)
	}
	avg := total / float64(len(notes))

	switch {
	case avg < 0.5:
		return DetailHighLevel
	case avg < 1.5:
		return DetailBalanced
	default:
		return DetailDetailed
	}
}

func noteDetailScore(content string) float64 {
	lowered := strings.ToLower(content)

	score := 0.0
	for _, marker := range discourseMarkers {
		score += float64(strings.Count(lowered, marker))
	}
	if numericToken.MatchString(content) {
		score++
	}
	if listLine.MatchString(content) {
		score += 2
	}
	return score
}
