package workflow_test

import (
	"testing"

	"lodestar/pkg/domain/tracker"
	"lodestar/pkg/domain/workflow"
)

func threeStages() []tracker.Stage {
	return []tracker.Stage{
		{Name: "Backlog", Description: "Not started"},
		{Name: "In Progress"},
		{Name: "Review"},
	}
}

func TestNewStageList(t *testing.T) {
	tests := []struct {
		name    string
		stages  []tracker.Stage
		wantErr bool
	}{
		{"valid stages", threeStages(), false},
		{"single stage", []tracker.Stage{{Name: "Doing"}}, false},
		{"empty list", nil, true},
		{"empty name", []tracker.Stage{{Name: "  "}}, true},
		{"duplicate after normalization", []tracker.Stage{{Name: "Review"}, {Name: " review "}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := workflow.NewStageList(tt.stages)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewStageList() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStageList_Lookups(t *testing.T) {
	list, err := workflow.NewStageList(threeStages())
	if err != nil {
		t.Fatalf("NewStageList failed: %v", err)
	}

	if got := list.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
	if got := list.First().Name; got != "Backlog" {
		t.Errorf("First() = %q, want Backlog", got)
	}

	// Matching is case-insensitive and trims whitespace.
	idx, ok := list.Index(" in progress ")
	if !ok || idx != 1 {
		t.Errorf("Index(\" in progress \") = %d, %v; want 1, true", idx, ok)
	}

	stage, ok := list.Lookup("REVIEW")
	if !ok || stage.Name != "Review" {
		t.Errorf("Lookup(REVIEW) = %q, %v; want Review, true", stage.Name, ok)
	}

	if list.Contains("shipping") {
		t.Error("Contains(shipping) = true, want false")
	}
	if !list.IsFinal("review") {
		t.Error("IsFinal(review) = false, want true")
	}
	if list.IsFinal("Backlog") {
		t.Error("IsFinal(Backlog) = true, want false")
	}

	names := list.Names()
	want := []string{"Backlog", "In Progress", "Review"}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], name)
		}
	}
}
