package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"lodestar/pkg/application"
	"lodestar/pkg/domain/tracker"
)

func completedTask(id, projectID string, estimated, actual float64, completedAt time.Time) tracker.Task {
	return tracker.Task{
		ID:            id,
		ProjectID:     projectID,
		Description:   "task " + id,
		EstimatedTime: estimated,
		ActualTime:    floatPtr(actual),
		Status:        tracker.StatusCompleted,
		CompletedAt:   timePtr(completedAt),
	}
}

func newInsightsService(repo *MockRepo) *application.InsightsService {
	return application.NewInsightsService(repo, application.NewActivityService(repo))
}

func TestInsightsService_UserInsights(t *testing.T) {
	monday := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	repo := &MockRepo{
		Projects: []tracker.Project{{ID: "proj-1", Name: "One", Type: tracker.TypeClient}},
		Tasks: []tracker.Task{
			completedTask("t1", "proj-1", 4, 4, monday),
			completedTask("t2", "proj-1", 4, 5, monday),
			completedTask("t3", "proj-1", 2, 2, monday.AddDate(0, 0, 1)),
			completedTask("t4", "proj-1", 3, 3, monday.AddDate(0, 0, 1)),
			{ID: "t5", ProjectID: "proj-1", Description: "open", EstimatedTime: 2, Status: tracker.StatusPending},
		},
	}
	service := newInsightsService(repo)

	result, ok, err := service.UserInsights(context.Background())
	if err != nil {
		t.Fatalf("UserInsights: %v", err)
	}
	if !ok {
		t.Fatal("ok = false, want true with five tasks")
	}
	if result.TaskCount != 5 || result.CompletedCount != 4 {
		t.Errorf("counts = %d/%d, want 5/4", result.TaskCount, result.CompletedCount)
	}
	if result.CompletionRate != 80 {
		t.Errorf("CompletionRate = %v, want 80", result.CompletionRate)
	}

	if len(repo.Events) != 1 || repo.Events[0].Action != "insights.compute" {
		t.Errorf("events = %v, want one insights.compute", repo.Events)
	}
}

func TestInsightsService_UserInsights_InsufficientData(t *testing.T) {
	repo := &MockRepo{
		Tasks: []tracker.Task{
			{ID: "t1", Description: "only one", EstimatedTime: 1, Status: tracker.StatusPending},
		},
	}
	service := newInsightsService(repo)

	_, ok, err := service.UserInsights(context.Background())
	if err != nil {
		t.Fatalf("UserInsights: %v", err)
	}
	if ok {
		t.Error("ok = true with a single task")
	}
}

func TestInsightsService_LoadError(t *testing.T) {
	repo := &MockRepo{LoadError: errors.New("corrupt snapshot")}
	service := newInsightsService(repo)

	if _, _, err := service.UserInsights(context.Background()); err == nil {
		t.Error("UserInsights swallowed the load error")
	}
	if _, _, err := service.TimeEstimateAccuracy(context.Background()); err == nil {
		t.Error("TimeEstimateAccuracy swallowed the load error")
	}
	if _, _, err := service.TypeEfficiency(context.Background()); err == nil {
		t.Error("TypeEfficiency swallowed the load error")
	}
	if _, _, err := service.ProductivityByDay(context.Background()); err == nil {
		t.Error("ProductivityByDay swallowed the load error")
	}
	if _, err := service.AIContext(context.Background(), time.Now()); err == nil {
		t.Error("AIContext swallowed the load error")
	}
}

func TestInsightsService_ProductivityByDay(t *testing.T) {
	monday := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	repo := &MockRepo{
		Tasks: []tracker.Task{
			completedTask("t1", "", 1, 1, monday),
			completedTask("t2", "", 1, 1, monday),
			completedTask("t3", "", 1, 1, monday.AddDate(0, 0, 2)),
			completedTask("t4", "", 1, 1, monday.AddDate(0, 0, 2)),
			completedTask("t5", "", 1, 1, monday.AddDate(0, 0, 4)),
		},
	}
	service := newInsightsService(repo)

	days, ok, err := service.ProductivityByDay(context.Background())
	if err != nil {
		t.Fatalf("ProductivityByDay: %v", err)
	}
	if !ok {
		t.Fatal("ok = false, want true")
	}
	if len(days) != 7 {
		t.Fatalf("len(days) = %d, want all seven weekdays", len(days))
	}
	if days[0].Day != tracker.Monday || days[0].TaskCount != 2 {
		t.Errorf("days[0] = %+v, want Monday with 2", days[0])
	}
}

func TestInsightsService_AIContext(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	repo := &MockRepo{
		Settings: &tracker.UserSettings{
			Skills:   []tracker.Skill{{Name: "Go", Proficiency: 5}},
			Workflow: tracker.Workflow{MaxDailyHours: 8},
		},
		Projects: []tracker.Project{{ID: "proj-1", Name: "One", Type: tracker.TypeClient}},
		Tasks: []tracker.Task{
			{ID: "t1", Description: "due soon", EstimatedTime: 2, Status: tracker.StatusPending, DueDate: timePtr(now.AddDate(0, 0, 2))},
		},
	}
	service := newInsightsService(repo)

	profile, err := service.AIContext(context.Background(), now)
	if err != nil {
		t.Fatalf("AIContext: %v", err)
	}
	if len(profile.Skills) != 1 || profile.Skills[0].Level != "Expert" {
		t.Errorf("Skills = %+v", profile.Skills)
	}
	if profile.NearestDeadline != "In 2 days" {
		t.Errorf("NearestDeadline = %q, want In 2 days", profile.NearestDeadline)
	}

	if len(repo.Events) != 1 || repo.Events[0].Action != "context.build" {
		t.Errorf("events = %v, want one context.build", repo.Events)
	}
}
