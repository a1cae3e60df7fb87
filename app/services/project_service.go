package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"projecthub/app/models"
	"projecthub/app/schemas"
	"projecthub/app/utils"
)

// ProjectService manages projects and their transversal activity catalog.
type ProjectService struct {
	db *mongo.Database
}

func NewProjectService(db *mongo.Database) *ProjectService {
	return &ProjectService{db: db}
}

func (s *ProjectService) collection() *mongo.Collection {
	return s.db.Collection(models.ProjectCollection)
}

func (s *ProjectService) activities() *mongo.Collection {
	return s.db.Collection(models.ProjectTransversalActivityCollection)
}

// Create inserts a project seeded with the given task status/type catalogs
// and the default transversal activities.
func (s *ProjectService) Create(ctx context.Context, in schemas.ProjectCreate, taskStatuses, taskTypes []string) (models.Project, error) {
	project := models.Project{
		ProjectName:           in.ProjectName,
		Status:                models.ProjectStatus(in.Status),
		Sprints:               []primitive.ObjectID{},
		Users:                 []primitive.ObjectID{},
		WorkloadRatio:         1,
		TransversalActivities: []primitive.ObjectID{},
		TaskStatuses:          taskStatuses,
		TaskTypes:             taskTypes,
		CreatedAt:             time.Now().UTC(),
	}
	if in.CenterID != "" {
		oid, err := ParseID("Service center", in.CenterID)
		if err != nil {
			return models.Project{}, err
		}
		project.CenterID = &oid
	}

	res, err := s.collection().InsertOne(ctx, project)
	if err != nil {
		return models.Project{}, fmt.Errorf("insert project: %w", err)
	}
	project.ID = res.InsertedID.(primitive.ObjectID)

	ids, err := s.CreateDefaultActivities(ctx, project.ID)
	if err != nil {
		return models.Project{}, err
	}
	project.TransversalActivities = ids
	if err := replaceByID(ctx, s.collection(), project.ID, project); err != nil {
		return models.Project{}, err
	}
	return project, nil
}

// CreateDefaultActivities seeds the standard activity catalog for a project
// and returns the inserted ids.
func (s *ProjectService) CreateDefaultActivities(ctx context.Context, projectID primitive.ObjectID) ([]primitive.ObjectID, error) {
	now := time.Now().UTC()
	docs := make([]any, 0, len(models.DefaultTransversalActivities))
	for _, act := range models.DefaultTransversalActivities {
		act.ProjectID = projectID
		act.Default = true
		act.CreatedAt = now
		docs = append(docs, act)
	}
	res, err := s.activities().InsertMany(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("insert default activities: %w", err)
	}
	ids := make([]primitive.ObjectID, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		ids = append(ids, id.(primitive.ObjectID))
	}
	return ids, nil
}

func (s *ProjectService) GetByID(ctx context.Context, id string, deleted bool) (models.Project, error) {
	oid, err := ParseID("Project", id)
	if err != nil {
		return models.Project{}, err
	}
	var project models.Project
	err = s.collection().FindOne(ctx, bson.M{"_id": oid, "is_deleted": deleted}).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return models.Project{}, notFound("Project", id)
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("find project: %w", err)
	}
	return project, nil
}

// GetByIDs resolves a batch of ids; any id that does not match a live project
// is reported in missing rather than failing the call.
func (s *ProjectService) GetByIDs(ctx context.Context, ids []string, deleted bool) (projects []models.Project, missing []string, err error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := ParseID("Project", id)
		if err != nil {
			return nil, nil, err
		}
		oids = append(oids, oid)
	}
	cur, err := s.collection().Find(ctx, bson.M{"_id": bson.M{"$in": oids}, "is_deleted": deleted})
	if err != nil {
		return nil, nil, fmt.Errorf("find projects: %w", err)
	}
	projects = []models.Project{}
	if err := cur.All(ctx, &projects); err != nil {
		return nil, nil, fmt.Errorf("decode projects: %w", err)
	}
	found := make(map[primitive.ObjectID]bool, len(projects))
	for _, p := range projects {
		found[p.ID] = true
	}
	for i, oid := range oids {
		if !found[oid] {
			missing = append(missing, ids[i])
		}
	}
	return projects, missing, nil
}

// List returns one page of projects plus the unpaged total, optionally
// scoped to a service center or a status.
func (s *ProjectService) List(ctx context.Context, skip, limit int, centerID, status string, deleted bool) ([]models.Project, int64, error) {
	filter := bson.M{"is_deleted": deleted}
	if centerID != "" {
		oid, err := ParseID("Service center", centerID)
		if err != nil {
			return nil, 0, err
		}
		filter["centerId"] = oid
	}
	if status != "" {
		filter["status"] = status
	}
	total, err := s.collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}
	opts := options.Find().SetSkip(int64(skip)).SetLimit(int64(limit))
	cur, err := s.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	projects := []models.Project{}
	if err := cur.All(ctx, &projects); err != nil {
		return nil, 0, fmt.Errorf("decode projects: %w", err)
	}
	return projects, total, nil
}

// Update applies the non-nil fields. When the workload ratio changes, every
// live task of the project is recalculated against the new ratio.
func (s *ProjectService) Update(ctx context.Context, in schemas.ProjectUpdate) (models.Project, error) {
	project, err := s.GetByID(ctx, in.ID, false)
	if err != nil {
		return models.Project{}, err
	}

	ratioChanged := false
	if in.ProjectName != nil {
		project.ProjectName = *in.ProjectName
	}
	if in.Status != nil {
		project.Status = models.ProjectStatus(*in.Status)
	}
	if in.CenterID != nil {
		oid, err := ParseID("Service center", *in.CenterID)
		if err != nil {
			return models.Project{}, err
		}
		project.CenterID = &oid
	}
	if in.TechnicalLoadRatio != nil && *in.TechnicalLoadRatio != project.WorkloadRatio {
		project.WorkloadRatio = *in.TechnicalLoadRatio
		ratioChanged = true
	}
	if in.TaskStatuses != nil {
		project.TaskStatuses = in.TaskStatuses
	}
	if in.TaskTypes != nil {
		project.TaskTypes = in.TaskTypes
	}
	if in.TransversalActivities != nil {
		ids, err := s.ReconcileActivities(ctx, project.ID, in.TransversalActivities)
		if err != nil {
			return models.Project{}, err
		}
		project.TransversalActivities = ids
	}

	if err := replaceByID(ctx, s.collection(), project.ID, project); err != nil {
		return models.Project{}, err
	}
	if ratioChanged {
		if err := s.recalculateTasks(ctx, project); err != nil {
			return models.Project{}, err
		}
	}
	return project, nil
}

// recalculateTasks recomputes the workload figures of every live task after a
// ratio change. A task whose remaining time still equals the previous
// technical load is treated as untouched and gets the new load as remaining.
func (s *ProjectService) recalculateTasks(ctx context.Context, project models.Project) error {
	tasks := s.db.Collection(models.TaskCollection)
	cur, err := tasks.Find(ctx, bson.M{"projectId": project.ID, "is_deleted": false})
	if err != nil {
		return fmt.Errorf("find project tasks: %w", err)
	}
	var list []models.Task
	if err := cur.All(ctx, &list); err != nil {
		return fmt.Errorf("decode project tasks: %w", err)
	}
	for _, task := range list {
		oldLoad := task.TechnicalLoad
		if task.TimeRemaining != nil && *task.TimeRemaining == oldLoad {
			task.TimeRemaining = nil
		}
		m := utils.CalculateTaskMetrics(task, project.WorkloadRatio)
		task.TechnicalLoad = m.TechnicalLoad
		if task.TimeRemaining == nil {
			remaining := m.TechnicalLoad
			task.TimeRemaining = &remaining
			m = utils.CalculateTaskMetrics(task, project.WorkloadRatio)
		}
		delta := m.Delta
		progress := m.Progress
		task.Delta = &delta
		task.Progress = &progress
		if err := replaceByID(ctx, tasks, task.ID, task); err != nil {
			return err
		}
	}
	return nil
}

// AttachSprint records a sprint id on its parent project.
func (s *ProjectService) AttachSprint(ctx context.Context, projectID, sprintID primitive.ObjectID) error {
	_, err := s.collection().UpdateOne(ctx,
		bson.M{"_id": projectID},
		bson.M{"$addToSet": bson.M{"sprints": sprintID}})
	if err != nil {
		return fmt.Errorf("attach sprint to project: %w", err)
	}
	return nil
}

// ActivitiesByProject returns the live transversal activities of a project.
func (s *ProjectService) ActivitiesByProject(ctx context.Context, projectID string, deleted bool) ([]models.ProjectTransversalActivity, error) {
	oid, err := ParseID("Project", projectID)
	if err != nil {
		return nil, err
	}
	cur, err := s.activities().Find(ctx, bson.M{"project_id": oid, "is_deleted": deleted})
	if err != nil {
		return nil, fmt.Errorf("find project activities: %w", err)
	}
	acts := []models.ProjectTransversalActivity{}
	if err := cur.All(ctx, &acts); err != nil {
		return nil, fmt.Errorf("decode project activities: %w", err)
	}
	return acts, nil
}

// ReconcileActivities applies an id-based diff of the activity catalog:
// entries carrying a known id update the stored activity, entries without one
// create a new activity, and stored activities absent from the list are soft
// deleted. It returns the ids of the resulting live catalog.
func (s *ProjectService) ReconcileActivities(ctx context.Context, projectID primitive.ObjectID, updates []schemas.ProjectActivityUpdate) ([]primitive.ObjectID, error) {
	existing, err := s.ActivitiesByProject(ctx, projectID.Hex(), false)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.ProjectTransversalActivity, len(existing))
	for _, act := range existing {
		byID[act.ID.Hex()] = act
	}

	ids := make([]primitive.ObjectID, 0, len(updates))
	seen := make(map[string]bool, len(updates))
	for _, upd := range updates {
		if act, ok := byID[upd.ID]; ok {
			seen[upd.ID] = true
			act.Activity = upd.Name
			act.Meaning = upd.Description
			if err := replaceByID(ctx, s.activities(), act.ID, act); err != nil {
				return nil, err
			}
			ids = append(ids, act.ID)
			continue
		}
		act := models.ProjectTransversalActivity{
			ProjectID: projectID,
			Activity:  upd.Name,
			Meaning:   upd.Description,
			CreatedAt: time.Now().UTC(),
		}
		res, err := s.activities().InsertOne(ctx, act)
		if err != nil {
			return nil, fmt.Errorf("insert project activity: %w", err)
		}
		ids = append(ids, res.InsertedID.(primitive.ObjectID))
	}

	for _, act := range existing {
		if seen[act.ID.Hex()] {
			continue
		}
		act.IsDeleted = true
		if err := replaceByID(ctx, s.activities(), act.ID, act); err != nil {
			return nil, err
		}
	}
	return ids, nil
}
