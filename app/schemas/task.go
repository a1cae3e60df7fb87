package schemas

import (
	"projecthub/app/models"
)

// TaskCreate is the payload for creating a task.
type TaskCreate struct {
	SprintID    string   `json:"sprintId"`
	ProjectID   string   `json:"projectId"`
	Type        string   `json:"type"`
	Key         string   `json:"key"`
	Summary     string   `json:"summary"`
	StoryPoints float64  `json:"storyPoints"`
	Status      string   `json:"status"`
	Assignee    []string `json:"assignee"`
}

// Validate applies defaults and checks the payload. Enum ids are checked by
// the task service, which knows the valid values.
func (c *TaskCreate) Validate() error {
	if c.SprintID == "" {
		return validationErrorf("sprintId is required")
	}
	if c.ProjectID == "" {
		return validationErrorf("projectId is required")
	}
	if c.Key == "" {
		return validationErrorf("key is required")
	}
	if c.Summary == "" {
		return validationErrorf("summary is required")
	}
	if c.StoryPoints < 0 {
		return validationErrorf("storyPoints must not be negative")
	}
	if c.Type == "" {
		c.Type = string(models.TaskTypeTask)
	}
	if c.Status == "" {
		c.Status = string(models.TaskStatusTodo)
	}
	return nil
}

// TaskUpdate is the payload for updating a task. Nil fields are left
// untouched.
type TaskUpdate struct {
	ID              string    `json:"id"`
	SprintID        *string   `json:"sprintId"`
	ProjectID       *string   `json:"projectId"`
	Key             *string   `json:"key"`
	Summary         *string   `json:"summary"`
	StoryPoints     *float64  `json:"storyPoints"`
	WU              *string   `json:"wu"`
	Comment         *string   `json:"comment"`
	DeliverySprint  *string   `json:"deliverySprint"`
	DeliveryStatus  *string   `json:"deliveryStatus"`
	DeliveryVersion *string   `json:"deliveryVersion"`
	Type            *string   `json:"type"`
	Status          *string   `json:"status"`
	RFT             *string   `json:"rft"`
	TechnicalLoad   *float64  `json:"technicalLoad"`
	TimeSpent       *float64  `json:"timeSpent"`
	TimeRemaining   *float64  `json:"timeRemaining"`
	Progress        *float64  `json:"progress"`
	Assignee        *[]string `json:"assignee"`
	Delta           *float64  `json:"delta"`
}

// Validate checks the payload.
func (u *TaskUpdate) Validate() error {
	if u.ID == "" {
		return validationErrorf("id is required")
	}
	if u.Key != nil && *u.Key == "" {
		return validationErrorf("key must not be empty")
	}
	if u.Summary != nil && *u.Summary == "" {
		return validationErrorf("summary must not be empty")
	}
	if u.StoryPoints != nil && *u.StoryPoints < 0 {
		return validationErrorf("storyPoints must not be negative")
	}
	if u.TimeSpent != nil && *u.TimeSpent < 0 {
		return validationErrorf("timeSpent must not be negative")
	}
	if u.TimeRemaining != nil && *u.TimeRemaining < 0 {
		return validationErrorf("timeRemaining must not be negative")
	}
	if u.Progress != nil && (*u.Progress < 0 || *u.Progress > 100) {
		return validationErrorf("progress must be between 0 and 100")
	}
	if u.DeliveryStatus != nil && !models.DeliveryStatus(*u.DeliveryStatus).Valid() {
		return validationErrorf("deliveryStatus must be empty, OK or KO")
	}
	return nil
}

// TaskResponse is the serialized form of a task.
type TaskResponse struct {
	ID              string   `json:"id"`
	SprintID        string   `json:"sprintId"`
	ProjectID       string   `json:"projectId"`
	Type            string   `json:"type"`
	Key             string   `json:"key"`
	Summary         string   `json:"summary"`
	StoryPoints     float64  `json:"storyPoints"`
	WU              string   `json:"wu"`
	Status          string   `json:"status"`
	Progress        *float64 `json:"progress"`
	Comment         string   `json:"comment"`
	DeliverySprint  string   `json:"deliverySprint"`
	DeliveryStatus  string   `json:"deliveryStatus"`
	DeliveryVersion string   `json:"deliveryVersion"`
	RFT             string   `json:"rft"`
	Assignee        []string `json:"assignee"`
	TechnicalLoad   float64  `json:"technicalLoad"`
	TimeSpent       float64  `json:"timeSpent"`
	TimeRemaining   *float64 `json:"timeRemaining"`
	Delta           *float64 `json:"delta"`
}

// NewTaskResponse maps a task model to its response form.
func NewTaskResponse(task models.Task) TaskResponse {
	assignees := make([]string, 0, len(task.Assignee))
	for _, id := range task.Assignee {
		assignees = append(assignees, id.Hex())
	}
	return TaskResponse{
		ID:              task.ID.Hex(),
		SprintID:        task.SprintID.Hex(),
		ProjectID:       task.ProjectID.Hex(),
		Type:            string(task.Type),
		Key:             task.Key,
		Summary:         task.Summary,
		StoryPoints:     task.StoryPoints,
		WU:              task.WU,
		Status:          string(task.Status),
		Progress:        task.Progress,
		Comment:         task.Comment,
		DeliverySprint:  task.DeliverySprint,
		DeliveryStatus:  string(task.DeliveryStatus),
		DeliveryVersion: task.DeliveryVersion,
		RFT:             string(task.RFT),
		Assignee:        assignees,
		TechnicalLoad:   task.TechnicalLoad,
		TimeSpent:       task.TimeSpent,
		TimeRemaining:   task.TimeRemaining,
		Delta:           task.Delta,
	}
}

// SprintTaskList groups the tasks of one sprint in a list response.
type SprintTaskList struct {
	SprintID string         `json:"sprintId"`
	TaskList []TaskResponse `json:"taskList"`
}

// TaskListResponse is the paginated, sprint-grouped task listing.
type TaskListResponse struct {
	ResponseList []SprintTaskList `json:"responseList"`
	PageInfo
}

// TaskSpecific pairs an enum id with its human-readable label.
type TaskSpecific struct {
	Key      string `json:"key"`
	Specific string `json:"specific"`
}

// TaskSpecificsResponse lists task types or statuses.
type TaskSpecificsResponse struct {
	Specifics []TaskSpecific `json:"specifics"`
}

// ImportCSVResponse summarizes a CSV task import.
type ImportCSVResponse struct {
	Status bool   `json:"status"`
	Msg    string `json:"msg"`
}
