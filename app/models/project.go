package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collections holding projects and their transversal activities.
const (
	ProjectCollection                    = "project"
	ProjectTransversalActivityCollection = "project_transversal_activity"
)

// ProjectStatus is the lifecycle status of a project.
type ProjectStatus string

const (
	ProjectStatusBid        ProjectStatus = "BID"
	ProjectStatusInProgress ProjectStatus = "In progress"
	ProjectStatusDone       ProjectStatus = "Done"
	ProjectStatusCancelled  ProjectStatus = "Cancelled"
	ProjectStatusClosed     ProjectStatus = "Closed"
)

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusBid, ProjectStatusInProgress, ProjectStatusDone,
		ProjectStatusCancelled, ProjectStatusClosed:
		return true
	}
	return false
}

// Project groups sprints and users under a service center. The workload ratio
// divides story points into technical load for every task of the project.
type Project struct {
	ID                    primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	ProjectName           string               `bson:"projectName" json:"projectName"`
	Status                ProjectStatus        `bson:"status" json:"status"`
	Sprints               []primitive.ObjectID `bson:"sprints" json:"sprints"`
	CenterID              *primitive.ObjectID  `bson:"centerId,omitempty" json:"centerId,omitempty"`
	Users                 []primitive.ObjectID `bson:"users" json:"users"`
	WorkloadRatio         float64              `bson:"transversal_vs_technical_workload_ratio" json:"technicalLoadRatio"`
	TransversalActivities []primitive.ObjectID `bson:"project_transversal_activities" json:"transversalActivities"`
	TaskStatuses          []string             `bson:"task_statuses" json:"taskStatuses"`
	TaskTypes             []string             `bson:"task_types" json:"taskTypes"`
	CreatedAt             time.Time            `bson:"created_at" json:"createdAt"`
	IsDeleted             bool                 `bson:"is_deleted" json:"isDeleted"`
	IsCascadeDeleted      bool                 `bson:"is_cascade_deleted" json:"isCascadeDeleted"`
}

// ProjectTransversalActivity is a recurring non-technical activity available
// to every sprint created in the project.
type ProjectTransversalActivity struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID primitive.ObjectID `bson:"project_id" json:"projectId"`
	Activity  string             `bson:"activity" json:"activity"`
	Meaning   string             `bson:"meaning" json:"meaning"`
	Default   bool               `bson:"default" json:"default"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	IsDeleted bool               `bson:"is_deleted" json:"isDeleted"`
}

// DefaultTransversalActivities is the catalog seeded into every new project.
var DefaultTransversalActivities = []ProjectTransversalActivity{
	{Activity: "Ceremonies", Meaning: "SCRUM Meetings"},
	{Activity: "Project meetings", Meaning: "Other Meetings"},
	{Activity: "Estimations", Meaning: "Analysis, Questions/answers, Cost of production"},
	{Activity: "Deliveries", Meaning: "Preparation and test before sprint delivery and/or deployment"},
	{Activity: "Maintenance", Meaning: "Environment maintenance, configuration management"},
	{Activity: "Team management", Meaning: "Team organisation and project management / TL"},
	{Activity: "Capitalisation", Meaning: "Global project capitalisation"},
	{Activity: "Internal trainings", Meaning: "Team skills ramp-up"},
	{Activity: "Agency meetings", Meaning: "Meeting with HR, Business, medical appointment"},
	{Activity: "Lost Time", Meaning: "Example: dysfunctional accesses"},
}
