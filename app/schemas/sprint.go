package schemas

import (
	"time"

	"projecthub/app/models"
)

// SprintCreate is the payload for creating a sprint.
type SprintCreate struct {
	ProjectID  string    `json:"projectId"`
	SprintName string    `json:"sprintName"`
	Status     string    `json:"status"`
	StartDate  time.Time `json:"startDate"`
	DueDate    time.Time `json:"dueDate"`
	Capacity   float64   `json:"capacity"`
}

// Validate applies defaults and checks the payload.
func (c *SprintCreate) Validate() error {
	if c.ProjectID == "" {
		return validationErrorf("projectId is required")
	}
	if c.SprintName == "" {
		return validationErrorf("sprintName is required")
	}
	if c.StartDate.IsZero() || c.DueDate.IsZero() {
		return validationErrorf("startDate and dueDate are required")
	}
	if c.Capacity < 0 {
		return validationErrorf("capacity must not be negative")
	}
	if c.Status == "" {
		c.Status = string(models.SprintStatusTodo)
	}
	if !models.SprintStatus(c.Status).Valid() {
		return validationErrorf("invalid sprint status %q", c.Status)
	}
	return nil
}

// SprintActivityUpdate is one transversal activity entry in a sprint update.
// An entry with an id updates the stored activity; without one it creates a
// new activity. Stored activities missing from the list are soft deleted.
type SprintActivityUpdate struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	TimeSpent   float64 `json:"timeSpent"`
}

// SprintUpdate is the payload for updating a sprint. Nil fields are left
// untouched.
type SprintUpdate struct {
	ID                    string                 `json:"id"`
	ProjectID             *string                `json:"projectId"`
	SprintName            *string                `json:"sprintName"`
	Status                *string                `json:"status"`
	StartDate             *time.Time             `json:"startDate"`
	DueDate               *time.Time             `json:"dueDate"`
	Capacity              *float64               `json:"capacity"`
	TaskStatuses          []string               `json:"taskStatuses"`
	TaskTypes             []string               `json:"taskTypes"`
	TransversalActivities []SprintActivityUpdate `json:"transversalActivities"`
}

// Validate checks the payload.
func (u *SprintUpdate) Validate() error {
	if u.ID == "" {
		return validationErrorf("id is required")
	}
	if u.SprintName != nil && *u.SprintName == "" {
		return validationErrorf("sprintName must not be empty")
	}
	if u.Status != nil && !models.SprintStatus(*u.Status).Valid() {
		return validationErrorf("invalid sprint status %q", *u.Status)
	}
	if u.Capacity != nil && *u.Capacity < 0 {
		return validationErrorf("capacity must not be negative")
	}
	return nil
}

// SprintActivityResponse is the serialized form of a sprint transversal
// activity.
type SprintActivityResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	TimeSpent   float64 `json:"timeSpent"`
}

// NewSprintActivityResponse maps an activity model to its response form.
func NewSprintActivityResponse(act models.SprintTransversalActivity) SprintActivityResponse {
	return SprintActivityResponse{
		ID:          act.ID.Hex(),
		Name:        act.Activity,
		Description: act.Meaning,
		TimeSpent:   act.TimeSpent,
	}
}

// SprintTarget is a sprint a task can still be delivered in.
type SprintTarget struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SprintResponse is the full serialized form of a sprint, with metrics and
// related entities embedded.
type SprintResponse struct {
	ID                    string                   `json:"id"`
	ProjectID             string                   `json:"projectId"`
	ProjectName           string                   `json:"projectName,omitempty"`
	SprintName            string                   `json:"sprintName"`
	Status                string                   `json:"status"`
	StartDate             time.Time                `json:"startDate"`
	DueDate               time.Time                `json:"dueDate"`
	Capacity              float64                  `json:"capacity"`
	Duration              float64                  `json:"duration"`
	Scoped                float64                  `json:"scoped"`
	Velocity              float64                  `json:"velocity"`
	Progress              float64                  `json:"progress"`
	TimeSpent             float64                  `json:"timeSpent"`
	OTD                   float64                  `json:"otd"`
	OQD                   float64                  `json:"oqd"`
	Tasks                 []TaskResponse           `json:"tasks"`
	Users                 []UserInfo               `json:"users"`
	SprintTargets         []SprintTarget           `json:"sprintTargets"`
	TransversalActivities []SprintActivityResponse `json:"transversalActivities"`
	TaskStatuses          []string                 `json:"taskStatuses,omitempty"`
	TaskTypes             []string                 `json:"taskTypes,omitempty"`
}

// SprintLightResponse is the compact sprint form nested in project listings.
type SprintLightResponse struct {
	ID         string     `json:"id"`
	ProjectID  string     `json:"projectId"`
	SprintName string     `json:"sprintName"`
	Status     string     `json:"status"`
	StartDate  time.Time  `json:"startDate"`
	DueDate    time.Time  `json:"dueDate"`
	Scoped     float64    `json:"scoped"`
	Capacity   float64    `json:"capacity"`
	Velocity   float64    `json:"velocity"`
	Progress   float64    `json:"progress"`
	TimeSpent  float64    `json:"timeSpent"`
	OTD        float64    `json:"otd"`
	OQD        float64    `json:"oqd"`
	Users      []UserInfo `json:"users,omitempty"`
}

// SprintListResponse is the paginated sprint listing.
type SprintListResponse struct {
	Sprints []SprintResponse `json:"sprints"`
	PageInfo
}

// SprintListLightResponse is the light sprint listing nested under projects.
type SprintListLightResponse struct {
	Sprints []SprintLightResponse `json:"sprints"`
}
