package tracker

import (
	"testing"
	"time"
)

func floatPtr(v float64) *float64    { return &v }
func timePtr(t time.Time) *time.Time { return &t }

func TestTask_TimeRatio(t *testing.T) {
	completed := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		task      Task
		wantRatio float64
		wantOK    bool
	}{
		{
			"completed with both times",
			Task{ID: "t1", Description: "d", EstimatedTime: 4, ActualTime: floatPtr(6), Status: StatusCompleted, CompletedAt: timePtr(completed)},
			1.5, true,
		},
		{
			"pending task",
			Task{ID: "t2", Description: "d", EstimatedTime: 4, ActualTime: floatPtr(6), Status: StatusPending},
			0, false,
		},
		{
			"no actual time",
			Task{ID: "t3", Description: "d", EstimatedTime: 4, Status: StatusCompleted, CompletedAt: timePtr(completed)},
			0, false,
		},
		{
			"zero estimate never divides",
			Task{ID: "t4", Description: "d", EstimatedTime: 0, ActualTime: floatPtr(6), Status: StatusCompleted, CompletedAt: timePtr(completed)},
			0, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ratio, ok := tt.task.TimeRatio()
			if ok != tt.wantOK {
				t.Fatalf("TimeRatio() ok = %v, want %v", ok, tt.wantOK)
			}
			if ratio != tt.wantRatio {
				t.Errorf("TimeRatio() = %v, want %v", ratio, tt.wantRatio)
			}
			if got := tt.task.HasTimeTracking(); got != tt.wantOK {
				t.Errorf("HasTimeTracking() = %v, want %v", got, tt.wantOK)
			}
		})
	}
}

func TestProject_EffectiveComplexity(t *testing.T) {
	if got := (Project{}).EffectiveComplexity(); got != ComplexityMedium {
		t.Errorf("EffectiveComplexity() unset = %v, want medium", got)
	}
	if got := (Project{Complexity: ComplexityHard}).EffectiveComplexity(); got != ComplexityHard {
		t.Errorf("EffectiveComplexity() = %v, want hard", got)
	}
}

func TestProject_HasDeadline(t *testing.T) {
	end := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	if (Project{}).HasDeadline() {
		t.Error("HasDeadline() without end date = true, want false")
	}
	if !(Project{EndDate: timePtr(end)}).HasDeadline() {
		t.Error("HasDeadline() with end date = false, want true")
	}
}

func TestProjectIndex(t *testing.T) {
	projects := []Project{
		{ID: "p1", Name: "first"},
		{ID: "p2", Name: "second"},
	}

	index := ProjectIndex(projects)

	if len(index) != 2 {
		t.Fatalf("len(index) = %d, want 2", len(index))
	}
	if index["p2"].Name != "second" {
		t.Errorf("index[p2].Name = %q, want second", index["p2"].Name)
	}
	if _, ok := index["p3"]; ok {
		t.Error("index contains p3, want absent")
	}
}

func TestValidateProjects(t *testing.T) {
	tests := []struct {
		name    string
		project Project
		wantErr bool
	}{
		{"minimal valid", Project{ID: "p1", Name: "a"}, false},
		{"full valid", Project{
			ID: "p1", Name: "a", Budget: floatPtr(1200), Currency: "EUR",
			UserPriority: intPtr(3), Type: TypeClient, Complexity: ComplexityHard, PriorityScore: 55,
		}, false},
		{"missing id", Project{Name: "a"}, true},
		{"missing name", Project{ID: "p1"}, true},
		{"negative budget", Project{ID: "p1", Name: "a", Budget: floatPtr(-1)}, true},
		{"bad currency length", Project{ID: "p1", Name: "a", Currency: "EURO"}, true},
		{"priority out of range", Project{ID: "p1", Name: "a", UserPriority: intPtr(6)}, true},
		{"score out of range", Project{ID: "p1", Name: "a", PriorityScore: 101}, true},
		{"unknown type", Project{ID: "p1", Name: "a", Type: "venture"}, true},
		{"unknown complexity", Project{ID: "p1", Name: "a", Complexity: "brutal"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProjects([]Project{tt.project})
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProjects() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateTasks(t *testing.T) {
	tests := []struct {
		name    string
		task    Task
		wantErr bool
	}{
		{"valid pending", Task{ID: "t1", Description: "d", EstimatedTime: 2, Status: StatusPending}, false},
		{"missing description", Task{ID: "t1", EstimatedTime: 2, Status: StatusPending}, true},
		{"zero estimate", Task{ID: "t1", Description: "d", Status: StatusPending}, true},
		{"negative actual", Task{ID: "t1", Description: "d", EstimatedTime: 2, ActualTime: floatPtr(-1), Status: StatusCompleted}, true},
		{"task priority out of range", Task{ID: "t1", Description: "d", EstimatedTime: 2, PriorityScore: intPtr(11), Status: StatusPending}, true},
		{"unknown status", Task{ID: "t1", Description: "d", EstimatedTime: 2, Status: "paused"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTasks([]Task{tt.task})
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTasks() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func intPtr(v int) *int { return &v }
