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
)

// SprintService manages sprints and their transversal activities.
type SprintService struct {
	db *mongo.Database
}

func NewSprintService(db *mongo.Database) *SprintService {
	return &SprintService{db: db}
}

func (s *SprintService) collection() *mongo.Collection {
	return s.db.Collection(models.SprintCollection)
}

func (s *SprintService) activities() *mongo.Collection {
	return s.db.Collection(models.SprintTransversalActivityCollection)
}

// Create inserts a sprint under its project, copying the project's
// transversal activity catalog into fresh sprint activities.
func (s *SprintService) Create(ctx context.Context, in schemas.SprintCreate, projectActivities []models.ProjectTransversalActivity) (models.Sprint, error) {
	projectID, err := ParseID("Project", in.ProjectID)
	if err != nil {
		return models.Sprint{}, err
	}
	now := time.Now().UTC()
	sprint := models.Sprint{
		ProjectID:             projectID,
		SprintName:            in.SprintName,
		Status:                models.SprintStatus(in.Status),
		StartDate:             in.StartDate.UTC(),
		DueDate:               in.DueDate.UTC(),
		Capacity:              in.Capacity,
		TransversalActivities: []primitive.ObjectID{},
		Tasks:                 []primitive.ObjectID{},
		TaskStatuses:          []string{},
		TaskTypes:             []string{},
		CreatedAt:             now,
	}
	res, err := s.collection().InsertOne(ctx, sprint)
	if err != nil {
		return models.Sprint{}, fmt.Errorf("insert sprint: %w", err)
	}
	sprint.ID = res.InsertedID.(primitive.ObjectID)

	for _, pa := range projectActivities {
		act := models.SprintTransversalActivity{
			SprintID:  sprint.ID,
			Activity:  pa.Activity,
			Meaning:   pa.Meaning,
			CreatedAt: now,
		}
		ins, err := s.activities().InsertOne(ctx, act)
		if err != nil {
			return models.Sprint{}, fmt.Errorf("insert sprint activity: %w", err)
		}
		sprint.TransversalActivities = append(sprint.TransversalActivities, ins.InsertedID.(primitive.ObjectID))
	}
	if len(projectActivities) > 0 {
		if err := replaceByID(ctx, s.collection(), sprint.ID, sprint); err != nil {
			return models.Sprint{}, err
		}
	}
	return sprint, nil
}

func (s *SprintService) GetByID(ctx context.Context, id string, deleted bool) (models.Sprint, error) {
	oid, err := ParseID("Sprint", id)
	if err != nil {
		return models.Sprint{}, err
	}
	var sprint models.Sprint
	err = s.collection().FindOne(ctx, bson.M{"_id": oid, "is_deleted": deleted}).Decode(&sprint)
	if err == mongo.ErrNoDocuments {
		return models.Sprint{}, notFound("Sprint", id)
	}
	if err != nil {
		return models.Sprint{}, fmt.Errorf("find sprint: %w", err)
	}
	return sprint, nil
}

// List returns one page of sprints plus the unpaged total. Explicit sprint
// ids take precedence over the project filter.
func (s *SprintService) List(ctx context.Context, skip, limit int, sprintIDs []string, projectID, status string, deleted bool) ([]models.Sprint, int64, error) {
	filter := bson.M{"is_deleted": deleted}
	if len(sprintIDs) > 0 {
		oids := make([]primitive.ObjectID, 0, len(sprintIDs))
		for _, id := range sprintIDs {
			oid, err := ParseID("Sprint", id)
			if err != nil {
				return nil, 0, err
			}
			oids = append(oids, oid)
		}
		filter["_id"] = bson.M{"$in": oids}
	} else if projectID != "" {
		oid, err := ParseID("Project", projectID)
		if err != nil {
			return nil, 0, err
		}
		filter["projectId"] = oid
	}
	if status != "" {
		filter["status"] = status
	}

	total, err := s.collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count sprints: %w", err)
	}
	opts := options.Find().SetSkip(int64(skip)).SetLimit(int64(limit))
	cur, err := s.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list sprints: %w", err)
	}
	sprints := []models.Sprint{}
	if err := cur.All(ctx, &sprints); err != nil {
		return nil, 0, fmt.Errorf("decode sprints: %w", err)
	}
	return sprints, total, nil
}

// Update applies the non-nil fields, reconciling the activity list when one
// is supplied.
func (s *SprintService) Update(ctx context.Context, in schemas.SprintUpdate) (models.Sprint, error) {
	sprint, err := s.GetByID(ctx, in.ID, false)
	if err != nil {
		return models.Sprint{}, err
	}
	if in.ProjectID != nil {
		oid, err := ParseID("Project", *in.ProjectID)
		if err != nil {
			return models.Sprint{}, err
		}
		sprint.ProjectID = oid
	}
	if in.SprintName != nil {
		sprint.SprintName = *in.SprintName
	}
	if in.Status != nil {
		sprint.Status = models.SprintStatus(*in.Status)
	}
	if in.StartDate != nil {
		sprint.StartDate = in.StartDate.UTC()
	}
	if in.DueDate != nil {
		sprint.DueDate = in.DueDate.UTC()
	}
	if in.Capacity != nil {
		sprint.Capacity = *in.Capacity
	}
	if in.TaskStatuses != nil {
		sprint.TaskStatuses = in.TaskStatuses
	}
	if in.TaskTypes != nil {
		sprint.TaskTypes = in.TaskTypes
	}
	if in.TransversalActivities != nil {
		ids, err := s.ReconcileActivities(ctx, sprint.ID, in.TransversalActivities)
		if err != nil {
			return models.Sprint{}, err
		}
		sprint.TransversalActivities = ids
	}
	if err := replaceByID(ctx, s.collection(), sprint.ID, sprint); err != nil {
		return models.Sprint{}, err
	}
	return sprint, nil
}

// RelevantByProject lists the sprints of a project a task can still target
// for delivery: not closed and not past due.
func (s *SprintService) RelevantByProject(ctx context.Context, projectID string) ([]schemas.SprintTarget, error) {
	oid, err := ParseID("Project", projectID)
	if err != nil {
		return nil, err
	}
	filter := bson.M{
		"projectId":  oid,
		"is_deleted": false,
		"status":     bson.M{"$ne": models.SprintStatusClosed},
		"dueDate":    bson.M{"$gt": time.Now().UTC()},
	}
	cur, err := s.collection().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find relevant sprints: %w", err)
	}
	var sprints []models.Sprint
	if err := cur.All(ctx, &sprints); err != nil {
		return nil, fmt.Errorf("decode relevant sprints: %w", err)
	}
	targets := make([]schemas.SprintTarget, 0, len(sprints))
	for _, sp := range sprints {
		targets = append(targets, schemas.SprintTarget{ID: sp.ID.Hex(), Name: sp.SprintName})
	}
	return targets, nil
}

// AppendTasks records task ids on a sprint, used by task creation and the
// CSV import.
func (s *SprintService) AppendTasks(ctx context.Context, sprintID primitive.ObjectID, taskIDs []primitive.ObjectID) error {
	_, err := s.collection().UpdateOne(ctx,
		bson.M{"_id": sprintID},
		bson.M{"$addToSet": bson.M{"task": bson.M{"$each": taskIDs}}})
	if err != nil {
		return fmt.Errorf("append tasks to sprint: %w", err)
	}
	return nil
}

// ActivitiesBySprint returns the live transversal activities of a sprint.
func (s *SprintService) ActivitiesBySprint(ctx context.Context, sprintID string, deleted bool) ([]models.SprintTransversalActivity, error) {
	oid, err := ParseID("Sprint", sprintID)
	if err != nil {
		return nil, err
	}
	cur, err := s.activities().Find(ctx, bson.M{"sprintId": oid, "is_deleted": deleted})
	if err != nil {
		return nil, fmt.Errorf("find sprint activities: %w", err)
	}
	acts := []models.SprintTransversalActivity{}
	if err := cur.All(ctx, &acts); err != nil {
		return nil, fmt.Errorf("decode sprint activities: %w", err)
	}
	return acts, nil
}

// ReconcileActivities applies the same id-based diff as the project catalog,
// additionally carrying the time spent per activity.
func (s *SprintService) ReconcileActivities(ctx context.Context, sprintID primitive.ObjectID, updates []schemas.SprintActivityUpdate) ([]primitive.ObjectID, error) {
	existing, err := s.ActivitiesBySprint(ctx, sprintID.Hex(), false)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.SprintTransversalActivity, len(existing))
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
			act.TimeSpent = upd.TimeSpent
			if err := replaceByID(ctx, s.activities(), act.ID, act); err != nil {
				return nil, err
			}
			ids = append(ids, act.ID)
			continue
		}
		act := models.SprintTransversalActivity{
			SprintID:  sprintID,
			Activity:  upd.Name,
			Meaning:   upd.Description,
			TimeSpent: upd.TimeSpent,
			CreatedAt: time.Now().UTC(),
		}
		res, err := s.activities().InsertOne(ctx, act)
		if err != nil {
			return nil, fmt.Errorf("insert sprint activity: %w", err)
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
