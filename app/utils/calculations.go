// Package utils holds the metric calculations and CSV import helpers shared
// by the service layer.
package utils

import (
	"math"
	"time"

	"projecthub/app/models"
)

// TaskMetrics are the derived workload figures of a single task.
type TaskMetrics struct {
	TechnicalLoad float64
	TimeSpent     float64
	Updated       float64
	Delta         float64
	Progress      float64
}

// CalculateTaskMetrics derives the workload figures of a task from its story
// points and the project's transversal-vs-technical workload ratio.
//
// Technical load is storyPoints/ratio (zero when the ratio is not positive).
// Updated effort is time spent plus time remaining, delta is the gap between
// technical load and updated effort, and progress is the spent share of the
// updated effort in percent.
func CalculateTaskMetrics(task models.Task, ratio float64) TaskMetrics {
	var load float64
	if ratio > 0 {
		load = task.StoryPoints / ratio
	}

	spent := task.TimeSpent
	var remaining float64
	if task.TimeRemaining != nil {
		remaining = *task.TimeRemaining
	}
	updated := spent + remaining

	var progress float64
	if updated > 0 {
		progress = spent / updated * 100
	}

	return TaskMetrics{
		TechnicalLoad: Round1(load),
		TimeSpent:     Round1(spent),
		Updated:       Round1(updated),
		Delta:         Round1(load - updated),
		Progress:      math.Round(progress),
	}
}

// SprintMetrics are the aggregate figures of one sprint.
type SprintMetrics struct {
	Duration        float64
	Scoped          float64
	Velocity        float64
	Progress        float64
	ProgressSP      float64
	TimeSpent       float64
	TransversalTime float64
	// Predictability and RFT are only computed once the sprint is Done.
	// OTD and OQD are their legacy aliases kept for the frontend.
	Predictability float64
	RFT            float64
	OTD            float64
	OQD            float64
}

// CalculateSprintMetrics aggregates task and transversal activity figures for
// a sprint. Cancelled tasks count neither toward scope nor progress.
func CalculateSprintMetrics(sprint models.Sprint, activities []models.SprintTransversalActivity, tasks []models.Task) SprintMetrics {
	duration := float64(Weekdays(sprint.StartDate, sprint.DueDate))
	if len(tasks) == 0 {
		return SprintMetrics{Duration: Round1(duration)}
	}

	var transversal float64
	for _, act := range activities {
		transversal += act.TimeSpent
	}

	var scoped, velocity, progressSP, spent float64
	var weightedProgress, weight float64
	for _, task := range tasks {
		spent += task.TimeSpent
		if task.Status == models.TaskStatusCancelled {
			continue
		}
		scoped += task.StoryPoints
		var p float64
		if task.Progress != nil {
			p = *task.Progress
		}
		weightedProgress += task.StoryPoints * p
		weight += task.StoryPoints
		progressSP += task.StoryPoints * p / 100
		if task.Status == models.TaskStatusDone {
			velocity += task.StoryPoints
		}
	}

	avgProgress := 100.0
	if weight > 0 {
		avgProgress = weightedProgress / weight
	}

	var predictability, rft float64
	if sprint.Status == models.SprintStatusDone {
		if scoped > 0 {
			predictability = velocity / scoped * 100
		}
		rft = rftPercentage(sprint.SprintName, tasks)
	}

	return SprintMetrics{
		Duration:        Round1(duration),
		Scoped:          Round1(scoped),
		Velocity:        Round1(velocity),
		Progress:        math.Round(avgProgress),
		ProgressSP:      Round1(progressSP),
		TimeSpent:       Round1(spent + transversal),
		TransversalTime: Round1(transversal),
		Predictability:  math.Round(predictability),
		RFT:             math.Round(rft),
		OTD:             math.Round(predictability),
		OQD:             math.Round(rft),
	}
}

// rftPercentage is the right-first-time share of tasks done and delivered in
// this sprint.
func rftPercentage(sprintName string, tasks []models.Task) float64 {
	var delivered, ok float64
	for _, task := range tasks {
		if task.Status == models.TaskStatusDone && task.DeliverySprint == sprintName {
			delivered++
			if task.RFT == models.RFTOK {
				ok++
			}
		}
	}
	if delivered == 0 {
		return 0
	}
	return ok / delivered * 100
}

// Weekdays counts Monday-to-Friday days between the two dates, both ends
// inclusive. The order of the arguments does not matter.
func Weekdays(start, due time.Time) int {
	start = start.UTC()
	due = due.UTC()
	if start.After(due) {
		start, due = due, start
	}

	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)

	count := 0
	for !day.After(end) {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
		day = day.AddDate(0, 0, 1)
	}
	return count
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
