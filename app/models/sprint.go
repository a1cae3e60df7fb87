package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collections holding sprints and their transversal activities.
const (
	SprintCollection                    = "sprint"
	SprintTransversalActivityCollection = "sprint_transversal_activity"
)

// SprintStatus is the lifecycle status of a sprint.
type SprintStatus string

const (
	SprintStatusTodo       SprintStatus = "To do"
	SprintStatusInProgress SprintStatus = "In progress"
	SprintStatusDone       SprintStatus = "Done"
	SprintStatusClosed     SprintStatus = "Closed"
)

// Valid reports whether s is a known sprint status.
func (s SprintStatus) Valid() bool {
	switch s {
	case SprintStatusTodo, SprintStatusInProgress, SprintStatusDone, SprintStatusClosed:
		return true
	}
	return false
}

// Sprint is a time-boxed iteration of a project. Capacity is expressed in
// man-days.
type Sprint struct {
	ID                    primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	ProjectID             primitive.ObjectID   `bson:"projectId" json:"projectId"`
	SprintName            string               `bson:"sprintName" json:"sprintName"`
	Status                SprintStatus         `bson:"status" json:"status"`
	StartDate             time.Time            `bson:"startDate" json:"startDate"`
	DueDate               time.Time            `bson:"dueDate" json:"dueDate"`
	Capacity              float64              `bson:"capacity" json:"capacity"`
	TransversalActivities []primitive.ObjectID `bson:"sprint_transversal_activities" json:"transversalActivities"`
	Tasks                 []primitive.ObjectID `bson:"task" json:"tasks"`
	TaskStatuses          []string             `bson:"task_statuses" json:"taskStatuses"`
	TaskTypes             []string             `bson:"task_types" json:"taskTypes"`
	CreatedAt             time.Time            `bson:"created_at" json:"createdAt"`
	IsDeleted             bool                 `bson:"is_deleted" json:"isDeleted"`
	IsCascadeDeleted      bool                 `bson:"is_cascade_deleted" json:"isCascadeDeleted"`
}

// SprintTransversalActivity tracks time spent on a non-technical activity
// during one sprint.
type SprintTransversalActivity struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SprintID  primitive.ObjectID `bson:"sprintId" json:"sprintId"`
	Activity  string             `bson:"activity" json:"activity"`
	Meaning   string             `bson:"meaning" json:"meaning"`
	TimeSpent float64            `bson:"time_spent" json:"timeSpent"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	IsDeleted bool               `bson:"is_deleted" json:"isDeleted"`
}
