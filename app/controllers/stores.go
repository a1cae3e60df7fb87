package controllers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"projecthub/app/models"
	"projecthub/app/schemas"
)

// The store interfaces are what the controllers need from the service layer.
// They are satisfied by the services package and stubbed in tests.

type CenterStore interface {
	Create(ctx context.Context, in schemas.ServiceCenterCreate) (models.ServiceCenter, error)
	GetByID(ctx context.Context, id string, deleted bool) (models.ServiceCenter, error)
	List(ctx context.Context, skip, limit int, status string, deleted bool) ([]models.ServiceCenter, int64, error)
	Update(ctx context.Context, in schemas.ServiceCenterUpdate) (models.ServiceCenter, error)
	AttachProject(ctx context.Context, centerID, projectID primitive.ObjectID) error
}

type ProjectStore interface {
	Create(ctx context.Context, in schemas.ProjectCreate, taskStatuses, taskTypes []string) (models.Project, error)
	GetByID(ctx context.Context, id string, deleted bool) (models.Project, error)
	GetByIDs(ctx context.Context, ids []string, deleted bool) ([]models.Project, []string, error)
	List(ctx context.Context, skip, limit int, centerID, status string, deleted bool) ([]models.Project, int64, error)
	Update(ctx context.Context, in schemas.ProjectUpdate) (models.Project, error)
	ActivitiesByProject(ctx context.Context, projectID string, deleted bool) ([]models.ProjectTransversalActivity, error)
	AttachSprint(ctx context.Context, projectID, sprintID primitive.ObjectID) error
}

type SprintStore interface {
	Create(ctx context.Context, in schemas.SprintCreate, projectActivities []models.ProjectTransversalActivity) (models.Sprint, error)
	GetByID(ctx context.Context, id string, deleted bool) (models.Sprint, error)
	List(ctx context.Context, skip, limit int, sprintIDs []string, projectID, status string, deleted bool) ([]models.Sprint, int64, error)
	Update(ctx context.Context, in schemas.SprintUpdate) (models.Sprint, error)
	RelevantByProject(ctx context.Context, projectID string) ([]schemas.SprintTarget, error)
	ActivitiesBySprint(ctx context.Context, sprintID string, deleted bool) ([]models.SprintTransversalActivity, error)
}

type TaskStore interface {
	Create(ctx context.Context, in schemas.TaskCreate) (models.Task, error)
	Update(ctx context.Context, in schemas.TaskUpdate) (models.Task, error)
	BySprint(ctx context.Context, sprintID string, deleted bool) ([]models.Task, error)
	TypeList() []schemas.TaskSpecific
	StatusList() []schemas.TaskSpecific
	ImportCSV(ctx context.Context, projectID, sprintID, filename string, content []byte) (schemas.ImportCSVResponse, error)
}

type UserStore interface {
	Create(ctx context.Context, in schemas.UserCreate) (models.User, error)
	GetByIDs(ctx context.Context, ids []string, deleted bool) ([]models.User, []string, error)
	List(ctx context.Context, skip, limit int, name string, deleted bool) ([]models.User, int64, error)
	Update(ctx context.Context, id string, in schemas.UserUpdate) (models.User, error)
	Delete(ctx context.Context, id string) error
	DirectorAccessesByUser(ctx context.Context, userID primitive.ObjectID) ([]models.DirectorAccess, error)
	ProjectAccessesByUser(ctx context.Context, userID primitive.ObjectID) ([]models.ProjectAccess, error)
	ProjectAccessesByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.ProjectAccess, error)
}

type CascadeDeleter interface {
	DeleteTask(ctx context.Context, id string, cascade bool) error
	DeleteSprint(ctx context.Context, id string, cascade bool) error
	DeleteProject(ctx context.Context, id string, cascade bool) error
	DeleteServiceCenter(ctx context.Context, id string) error
	CascadeDeletedElements(ctx context.Context, kind, id string) (map[string][]string, error)
}
