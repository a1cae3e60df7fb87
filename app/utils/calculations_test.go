package utils

import (
	"testing"
	"time"

	"projecthub/app/models"
)

func fl(v float64) *float64 { return &v }

func TestCalculateTaskMetrics(t *testing.T) {
	tests := []struct {
		name  string
		task  models.Task
		ratio float64
		want  TaskMetrics
	}{
		{
			name:  "load from ratio",
			task:  models.Task{StoryPoints: 5, TimeSpent: 2, TimeRemaining: fl(3)},
			ratio: 0.5,
			want:  TaskMetrics{TechnicalLoad: 10, TimeSpent: 2, Updated: 5, Delta: 5, Progress: 40},
		},
		{
			name:  "zero ratio gives zero load",
			task:  models.Task{StoryPoints: 8, TimeSpent: 1, TimeRemaining: fl(1)},
			ratio: 0,
			want:  TaskMetrics{TechnicalLoad: 0, TimeSpent: 1, Updated: 2, Delta: -2, Progress: 50},
		},
		{
			name:  "nil remaining counts as zero",
			task:  models.Task{StoryPoints: 4, TimeSpent: 2},
			ratio: 1,
			want:  TaskMetrics{TechnicalLoad: 4, TimeSpent: 2, Updated: 2, Delta: 2, Progress: 100},
		},
		{
			name:  "nothing spent means zero progress",
			task:  models.Task{StoryPoints: 3, TimeRemaining: fl(3)},
			ratio: 1,
			want:  TaskMetrics{TechnicalLoad: 3, Updated: 3, Delta: 0, Progress: 0},
		},
		{
			name:  "values rounded to one decimal",
			task:  models.Task{StoryPoints: 1, TimeSpent: 0.33, TimeRemaining: fl(0.33)},
			ratio: 3,
			want:  TaskMetrics{TechnicalLoad: 0.3, TimeSpent: 0.3, Updated: 0.7, Delta: -0.3, Progress: 50},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTaskMetrics(tt.task, tt.ratio)
			if got != tt.want {
				t.Errorf("CalculateTaskMetrics() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekdays(t *testing.T) {
	tests := []struct {
		name       string
		start, due time.Time
		want       int
	}{
		{"full business week", date(2024, time.January, 1), date(2024, time.January, 5), 5},
		{"single weekday", date(2024, time.January, 3), date(2024, time.January, 3), 1},
		{"weekend only", date(2024, time.January, 6), date(2024, time.January, 7), 0},
		{"two weeks spanning weekends", date(2024, time.January, 1), date(2024, time.January, 14), 10},
		{"reversed arguments", date(2024, time.January, 5), date(2024, time.January, 1), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Weekdays(tt.start, tt.due); got != tt.want {
				t.Errorf("Weekdays(%v, %v) = %d, want %d", tt.start, tt.due, got, tt.want)
			}
		})
	}
}

func TestCalculateSprintMetricsEmpty(t *testing.T) {
	sprint := models.Sprint{
		StartDate: date(2024, time.March, 4),
		DueDate:   date(2024, time.March, 8),
	}
	got := CalculateSprintMetrics(sprint, nil, nil)
	want := SprintMetrics{Duration: 5}
	if got != want {
		t.Errorf("CalculateSprintMetrics() = %+v, want %+v", got, want)
	}
}

func TestCalculateSprintMetricsInProgress(t *testing.T) {
	sprint := models.Sprint{
		SprintName: "Sprint 1",
		Status:     models.SprintStatusInProgress,
		StartDate:  date(2024, time.March, 4),
		DueDate:    date(2024, time.March, 8),
	}
	tasks := []models.Task{
		{StoryPoints: 5, Status: models.TaskStatusDone, Progress: fl(100), TimeSpent: 4},
		{StoryPoints: 3, Status: models.TaskStatusInProgress, Progress: fl(50), TimeSpent: 2},
		{StoryPoints: 2, Status: models.TaskStatusCancelled, Progress: fl(10), TimeSpent: 1},
	}
	activities := []models.SprintTransversalActivity{
		{Activity: "Ceremonies", TimeSpent: 2},
	}

	got := CalculateSprintMetrics(sprint, activities, tasks)

	if got.Scoped != 8 {
		t.Errorf("Scoped = %v, want 8 (cancelled excluded)", got.Scoped)
	}
	if got.Velocity != 5 {
		t.Errorf("Velocity = %v, want 5", got.Velocity)
	}
	// (5*100 + 3*50) / 8 = 81.25, rounded.
	if got.Progress != 81 {
		t.Errorf("Progress = %v, want 81", got.Progress)
	}
	if got.ProgressSP != 6.5 {
		t.Errorf("ProgressSP = %v, want 6.5", got.ProgressSP)
	}
	// Task time (including cancelled) plus transversal time.
	if got.TimeSpent != 9 {
		t.Errorf("TimeSpent = %v, want 9", got.TimeSpent)
	}
	if got.TransversalTime != 2 {
		t.Errorf("TransversalTime = %v, want 2", got.TransversalTime)
	}
	if got.Predictability != 0 || got.RFT != 0 {
		t.Errorf("Predictability/RFT = %v/%v, want 0/0 before the sprint is done", got.Predictability, got.RFT)
	}
}

func TestCalculateSprintMetricsDone(t *testing.T) {
	sprint := models.Sprint{
		SprintName: "Sprint 2",
		Status:     models.SprintStatusDone,
		StartDate:  date(2024, time.April, 1),
		DueDate:    date(2024, time.April, 5),
	}
	tasks := []models.Task{
		{StoryPoints: 5, Status: models.TaskStatusDone, Progress: fl(100), DeliverySprint: "Sprint 2", RFT: models.RFTOK},
		{StoryPoints: 3, Status: models.TaskStatusDone, Progress: fl(100), DeliverySprint: "Sprint 2", RFT: models.RFTKO},
		{StoryPoints: 2, Status: models.TaskStatusInProgress, Progress: fl(0)},
	}

	got := CalculateSprintMetrics(sprint, nil, tasks)

	// velocity 8 / scoped 10 = 80%.
	if got.Predictability != 80 {
		t.Errorf("Predictability = %v, want 80", got.Predictability)
	}
	if got.OTD != got.Predictability {
		t.Errorf("OTD = %v, want alias of Predictability %v", got.OTD, got.Predictability)
	}
	// 1 of 2 delivered tasks right first time.
	if got.RFT != 50 {
		t.Errorf("RFT = %v, want 50", got.RFT)
	}
	if got.OQD != got.RFT {
		t.Errorf("OQD = %v, want alias of RFT %v", got.OQD, got.RFT)
	}
}

func TestCalculateSprintMetricsNoStoryPoints(t *testing.T) {
	sprint := models.Sprint{
		Status:    models.SprintStatusInProgress,
		StartDate: date(2024, time.May, 6),
		DueDate:   date(2024, time.May, 10),
	}
	tasks := []models.Task{
		{StoryPoints: 0, Status: models.TaskStatusInProgress, Progress: fl(30)},
	}
	got := CalculateSprintMetrics(sprint, nil, tasks)
	if got.Progress != 100 {
		t.Errorf("Progress = %v, want the default 100 when no story points carry weight", got.Progress)
	}
}

func TestPages(t *testing.T) {
	tests := []struct {
		total int64
		size  int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := Pages(tt.total, tt.size); got != tt.want {
			t.Errorf("Pages(%d, %d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}

func TestRound1(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{1.04, 1},
		{1.05, 1.1},
		{-1.25, -1.3},
		{2, 2},
	}
	for _, tt := range tests {
		if got := Round1(tt.in); got != tt.want {
			t.Errorf("Round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
