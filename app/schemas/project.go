package schemas

import (
	"projecthub/app/models"
)

// ProjectCreate is the payload for creating a project.
type ProjectCreate struct {
	CenterID    string `json:"centerId"`
	ProjectName string `json:"projectName"`
	Status      string `json:"status"`
}

// Validate checks the payload.
func (c *ProjectCreate) Validate() error {
	if c.ProjectName == "" {
		return validationErrorf("projectName is required")
	}
	if c.Status == "" {
		c.Status = string(models.ProjectStatusBid)
	}
	if !models.ProjectStatus(c.Status).Valid() {
		return validationErrorf("invalid project status %q", c.Status)
	}
	return nil
}

// ProjectActivityUpdate is one transversal activity entry in a project
// update. The same id-based reconciliation as sprint activities applies.
type ProjectActivityUpdate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProjectUpdate is the payload for updating a project. Nil fields are left
// untouched. Changing the workload ratio triggers a recalculation of every
// task of the project.
type ProjectUpdate struct {
	ID                    string                  `json:"id"`
	ProjectName           *string                 `json:"projectName"`
	Status                *string                 `json:"status"`
	CenterID              *string                 `json:"centerId"`
	TechnicalLoadRatio    *float64                `json:"technicalLoadRatio"`
	TaskStatuses          []string                `json:"taskStatuses"`
	TaskTypes             []string                `json:"taskTypes"`
	TransversalActivities []ProjectActivityUpdate `json:"transversalActivities"`
}

// Validate checks the payload.
func (u *ProjectUpdate) Validate() error {
	if u.ID == "" {
		return validationErrorf("id is required")
	}
	if u.ProjectName != nil && *u.ProjectName == "" {
		return validationErrorf("projectName must not be empty")
	}
	if u.Status != nil && !models.ProjectStatus(*u.Status).Valid() {
		return validationErrorf("invalid project status %q", *u.Status)
	}
	if u.TechnicalLoadRatio != nil && *u.TechnicalLoadRatio <= 0 {
		return validationErrorf("technicalLoadRatio must be positive")
	}
	return nil
}

// ProjectActivityResponse is the serialized form of a project transversal
// activity.
type ProjectActivityResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewProjectActivityResponse maps an activity model to its response form.
func NewProjectActivityResponse(act models.ProjectTransversalActivity) ProjectActivityResponse {
	return ProjectActivityResponse{
		ID:          act.ID.Hex(),
		Name:        act.Activity,
		Description: act.Meaning,
	}
}

// ProjectResponse is the full serialized form of a project.
type ProjectResponse struct {
	ID                    string                    `json:"id"`
	ProjectName           string                    `json:"projectName"`
	Status                string                    `json:"status"`
	CenterID              string                    `json:"centerId,omitempty"`
	Sprints               []SprintLightResponse     `json:"sprints"`
	Users                 []UserInfo                `json:"users"`
	TechnicalLoadRatio    float64                   `json:"technicalLoadRatio"`
	TransversalActivities []ProjectActivityResponse `json:"transversalActivities"`
	TaskStatuses          []string                  `json:"taskStatuses"`
	TaskTypes             []string                  `json:"taskTypes"`
}

// ProjectLightResponse is the compact project form used in listings.
type ProjectLightResponse struct {
	ID          string                `json:"id"`
	CenterID    string                `json:"centerId,omitempty"`
	ProjectName string                `json:"projectName"`
	Status      string                `json:"status"`
	Sprints     []SprintLightResponse `json:"sprints"`
}

// ProjectListLightResponse is the paginated light project listing.
type ProjectListLightResponse struct {
	Projects []ProjectLightResponse `json:"projects"`
	PageInfo
}
