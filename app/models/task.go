package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskCollection is the MongoDB collection holding tasks.
const TaskCollection = "task"

// TaskStatus is the stored status identifier of a task.
type TaskStatus string

const (
	TaskStatusOpen          TaskStatus = "OPEN"
	TaskStatusTodo          TaskStatus = "TODO"
	TaskStatusInvestigation TaskStatus = "INVEST"
	TaskStatusInProgress    TaskStatus = "PROG"
	TaskStatusInReview      TaskStatus = "REV"
	TaskStatusWaiting       TaskStatus = "CUST"
	TaskStatusStandby       TaskStatus = "STANDBY"
	TaskStatusDone          TaskStatus = "DONE"
	TaskStatusCancelled     TaskStatus = "CANCEL"
	TaskStatusPostponed     TaskStatus = "POST"
)

// TaskStatuses lists every status in display order, paired with its
// human-readable label.
var TaskStatuses = []struct {
	Key   TaskStatus
	Label string
}{
	{TaskStatusOpen, "Open"},
	{TaskStatusTodo, "To do"},
	{TaskStatusInvestigation, "Under investigation"},
	{TaskStatusInProgress, "In progress"},
	{TaskStatusInReview, "In review"},
	{TaskStatusWaiting, "Waiting for customer"},
	{TaskStatusStandby, "Standby"},
	{TaskStatusDone, "Done"},
	{TaskStatusCancelled, "Cancelled"},
	{TaskStatusPostponed, "Postponed"},
}

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	for _, st := range TaskStatuses {
		if st.Key == s {
			return true
		}
	}
	return false
}

// TaskType is the stored type identifier of a task.
type TaskType string

const (
	TaskTypeBug         TaskType = "BUG"
	TaskTypeTask        TaskType = "TASK"
	TaskTypeStory       TaskType = "STORY"
	TaskTypeEpic        TaskType = "EPIC"
	TaskTypeDoc         TaskType = "DOC"
	TaskTypeTest        TaskType = "TEST"
	TaskTypeDeliverable TaskType = "DELIVERABLE"
)

// TaskTypes lists every type in display order, paired with its label.
var TaskTypes = []struct {
	Key   TaskType
	Label string
}{
	{TaskTypeBug, "Bug"},
	{TaskTypeTask, "Task"},
	{TaskTypeStory, "Story"},
	{TaskTypeEpic, "Epic"},
	{TaskTypeDoc, "Doc"},
	{TaskTypeTest, "Test"},
	{TaskTypeDeliverable, "Deliverable"},
}

// Valid reports whether t is a known task type.
func (t TaskType) Valid() bool {
	for _, tt := range TaskTypes {
		if tt.Key == t {
			return true
		}
	}
	return false
}

// RFT marks whether a task was right first time once delivered.
type RFT string

const (
	RFTNone RFT = ""
	RFTOK   RFT = "OK"
	RFTKO   RFT = "KO"
)

// Valid reports whether r is a known RFT value.
func (r RFT) Valid() bool {
	return r == RFTNone || r == RFTOK || r == RFTKO
}

// DeliveryStatus marks whether a task delivery went through.
type DeliveryStatus string

const (
	DeliveryNone DeliveryStatus = ""
	DeliveryOK   DeliveryStatus = "OK"
	DeliveryKO   DeliveryStatus = "KO"
)

// Valid reports whether d is a known delivery status.
func (d DeliveryStatus) Valid() bool {
	return d == DeliveryNone || d == DeliveryOK || d == DeliveryKO
}

// Task is a unit of work inside a sprint. Workload figures (technical load,
// delta, progress) derive from story points and the owning project's workload
// ratio; the task service recomputes them on every write.
type Task struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	SprintID         primitive.ObjectID   `bson:"sprintId" json:"sprintId"`
	ProjectID        primitive.ObjectID   `bson:"projectId" json:"projectId"`
	Key              string               `bson:"key" json:"key"`
	Summary          string               `bson:"summary" json:"summary"`
	StoryPoints      float64              `bson:"storyPoints" json:"storyPoints"`
	WU               string               `bson:"wu" json:"wu"`
	Comment          string               `bson:"comment" json:"comment"`
	DeliverySprint   string               `bson:"deliverySprint" json:"deliverySprint"`
	DeliveryStatus   DeliveryStatus       `bson:"deliveryStatus" json:"deliveryStatus"`
	DeliveryVersion  string               `bson:"deliveryVersion" json:"deliveryVersion"`
	Type             TaskType             `bson:"type" json:"type"`
	Status           TaskStatus           `bson:"status" json:"status"`
	RFT              RFT                  `bson:"rft" json:"rft"`
	TechnicalLoad    float64              `bson:"technicalLoad" json:"technicalLoad"`
	TimeSpent        float64              `bson:"timeSpent" json:"timeSpent"`
	TimeRemaining    *float64             `bson:"timeRemaining" json:"timeRemaining"`
	Progress         *float64             `bson:"progress" json:"progress"`
	Assignee         []primitive.ObjectID `bson:"assignee" json:"assignee"`
	Delta            *float64             `bson:"delta" json:"delta"`
	TicketLink       string               `bson:"ticketLink,omitempty" json:"ticketLink,omitempty"`
	Description      string               `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt        time.Time            `bson:"created_at" json:"createdAt"`
	IsDeleted        bool                 `bson:"is_deleted" json:"isDeleted"`
	IsCascadeDeleted bool                 `bson:"is_cascade_deleted" json:"isCascadeDeleted"`
}
