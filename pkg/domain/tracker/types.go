package tracker

import (
	"time"
)

// Project is a snapshot record describing one unit of ongoing work.
// Records are immutable per call: the engine reads them and never writes back.
type Project struct {
	ID            string      `json:"id" yaml:"id" validate:"required"`
	Name          string      `json:"name" yaml:"name" validate:"required"`
	Budget        *float64    `json:"budget,omitempty" yaml:"budget,omitempty" validate:"omitempty,gte=0"`
	Currency      string      `json:"currency,omitempty" yaml:"currency,omitempty" validate:"omitempty,len=3"`
	StartDate     *time.Time  `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate       *time.Time  `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	IsRecurring   bool        `json:"is_recurring" yaml:"is_recurring"`
	UserPriority  *int        `json:"user_priority,omitempty" yaml:"user_priority,omitempty" validate:"omitempty,min=1,max=5"`
	Type          ProjectType `json:"project_type,omitempty" yaml:"project_type,omitempty"`
	TypeQualifier string      `json:"type_qualifier,omitempty" yaml:"type_qualifier,omitempty"`
	Complexity    Complexity  `json:"complexity,omitempty" yaml:"complexity,omitempty"`
	PriorityScore int         `json:"priority_score" yaml:"priority_score" validate:"min=0,max=100"`
}

// HasDeadline returns true if the project has an end date.
func (p Project) HasDeadline() bool {
	return p.EndDate != nil
}

// EffectiveComplexity returns the project's complexity, falling back to the
// default when unset.
func (p Project) EffectiveComplexity() Complexity {
	if p.Complexity == "" {
		return DefaultComplexity()
	}
	return p.Complexity
}

// Task is a snapshot record for a single unit of work inside a project.
// ProjectID is a reference, not ownership: a task may outlive its project
// reference and aggregations must tolerate a dangling ID.
type Task struct {
	ID            string     `json:"id" yaml:"id" validate:"required"`
	ProjectID     string     `json:"project_id,omitempty" yaml:"project_id,omitempty"`
	Description   string     `json:"description" yaml:"description" validate:"required"`
	EstimatedTime float64    `json:"estimated_time" yaml:"estimated_time" validate:"gt=0"`
	ActualTime    *float64   `json:"actual_time,omitempty" yaml:"actual_time,omitempty" validate:"omitempty,gte=0"`
	PriorityScore *int       `json:"priority_score,omitempty" yaml:"priority_score,omitempty" validate:"omitempty,min=1,max=10"`
	DueDate       *time.Time `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	Stage         string     `json:"stage,omitempty" yaml:"stage,omitempty"`
	Status        TaskStatus `json:"status" yaml:"status"`
	CompletedAt   *time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
}

// IsCompleted returns true if the task reached its terminal status.
func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// IsPending returns true if the task has not been completed.
func (t Task) IsPending() bool {
	return t.Status == StatusPending
}

// HasTimeTracking returns true if the task is completed with both a positive
// estimate and a recorded actual time. Only such tasks may enter ratio-based
// aggregates; the positive-estimate check is the divide-by-zero guard.
func (t Task) HasTimeTracking() bool {
	return t.IsCompleted() && t.EstimatedTime > 0 && t.ActualTime != nil
}

// TimeRatio returns actual/estimated hours. The boolean is false when the
// task is not time-tracked.
func (t Task) TimeRatio() (float64, bool) {
	if !t.HasTimeTracking() {
		return 0, false
	}
	return *t.ActualTime / t.EstimatedTime, true
}

// Note is a free-text record optionally attached to a project.
type Note struct {
	ID        string    `json:"id" yaml:"id" validate:"required"`
	ProjectID string    `json:"project_id,omitempty" yaml:"project_id,omitempty"`
	Title     string    `json:"title,omitempty" yaml:"title,omitempty"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// ProjectIndex builds a project_id lookup map from a project slice.
// Aggregations join tasks to projects through this index.
func ProjectIndex(projects []Project) map[string]Project {
	index := make(map[string]Project, len(projects))
	for _, p := range projects {
		index[p.ID] = p
	}
	return index
}
