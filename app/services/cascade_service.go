package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"projecthub/app/models"
)

// CascadeService soft deletes entities together with everything nested under
// them. Children removed as part of a parent deletion are additionally marked
// cascade deleted so the parent can be restored with its subtree intact.
type CascadeService struct {
	db *mongo.Database
}

func NewCascadeService(db *mongo.Database) *CascadeService {
	return &CascadeService{db: db}
}

// DeleteTask soft deletes one task. cascade marks the task as removed by a
// parent deletion rather than directly.
func (s *CascadeService) DeleteTask(ctx context.Context, id string, cascade bool) error {
	oid, err := ParseID("Task", id)
	if err != nil {
		return err
	}
	coll := s.db.Collection(models.TaskCollection)
	res, err := coll.UpdateOne(ctx,
		bson.M{"_id": oid, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true, "is_cascade_deleted": cascade}})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.MatchedCount == 0 {
		return notFound("Task", id)
	}
	return nil
}

// DeleteSprint soft deletes a sprint with its tasks and transversal
// activities.
func (s *CascadeService) DeleteSprint(ctx context.Context, id string, cascade bool) error {
	oid, err := ParseID("Sprint", id)
	if err != nil {
		return err
	}
	sprints := s.db.Collection(models.SprintCollection)
	var sprint models.Sprint
	err = sprints.FindOne(ctx, bson.M{"_id": oid, "is_deleted": false}).Decode(&sprint)
	if err == mongo.ErrNoDocuments {
		return notFound("Sprint", id)
	}
	if err != nil {
		return fmt.Errorf("find sprint: %w", err)
	}

	_, err = s.db.Collection(models.TaskCollection).UpdateMany(ctx,
		bson.M{"sprintId": sprint.ID, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true, "is_cascade_deleted": true}})
	if err != nil {
		return fmt.Errorf("delete sprint tasks: %w", err)
	}
	_, err = s.db.Collection(models.SprintTransversalActivityCollection).UpdateMany(ctx,
		bson.M{"sprintId": sprint.ID, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true}})
	if err != nil {
		return fmt.Errorf("delete sprint activities: %w", err)
	}

	sprint.IsDeleted = true
	sprint.IsCascadeDeleted = cascade
	return replaceByID(ctx, sprints, sprint.ID, sprint)
}

// DeleteProject soft deletes a project with its sprints, their contents and
// the project's activity catalog.
func (s *CascadeService) DeleteProject(ctx context.Context, id string, cascade bool) error {
	oid, err := ParseID("Project", id)
	if err != nil {
		return err
	}
	projects := s.db.Collection(models.ProjectCollection)
	var project models.Project
	err = projects.FindOne(ctx, bson.M{"_id": oid, "is_deleted": false}).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return notFound("Project", id)
	}
	if err != nil {
		return fmt.Errorf("find project: %w", err)
	}

	sprintIDs, err := s.liveChildIDs(ctx, models.SprintCollection, bson.M{"projectId": project.ID})
	if err != nil {
		return err
	}
	for _, sprintID := range sprintIDs {
		if err := s.DeleteSprint(ctx, sprintID.Hex(), true); err != nil {
			return err
		}
	}
	_, err = s.db.Collection(models.ProjectTransversalActivityCollection).UpdateMany(ctx,
		bson.M{"project_id": project.ID, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true}})
	if err != nil {
		return fmt.Errorf("delete project activities: %w", err)
	}

	project.IsDeleted = true
	project.IsCascadeDeleted = cascade
	return replaceByID(ctx, projects, project.ID, project)
}

// DeleteServiceCenter soft deletes a service center with every project under
// it.
func (s *CascadeService) DeleteServiceCenter(ctx context.Context, id string) error {
	oid, err := ParseID("Service center", id)
	if err != nil {
		return err
	}
	centers := s.db.Collection(models.ServiceCenterCollection)
	var center models.ServiceCenter
	err = centers.FindOne(ctx, bson.M{"_id": oid, "is_deleted": false}).Decode(&center)
	if err == mongo.ErrNoDocuments {
		return notFound("Service center", id)
	}
	if err != nil {
		return fmt.Errorf("find service center: %w", err)
	}

	projectIDs, err := s.liveChildIDs(ctx, models.ProjectCollection, bson.M{"centerId": center.ID})
	if err != nil {
		return err
	}
	for _, projectID := range projectIDs {
		if err := s.DeleteProject(ctx, projectID.Hex(), true); err != nil {
			return err
		}
	}

	center.IsDeleted = true
	return replaceByID(ctx, centers, center.ID, center)
}

// CascadeDeletedElements lists the ids removed alongside a parent: the
// sprints and tasks for a project, plus the projects for a service center.
// kind is "project" or "service_center".
func (s *CascadeService) CascadeDeletedElements(ctx context.Context, kind, id string) (map[string][]string, error) {
	switch kind {
	case "project":
		oid, err := ParseID("Project", id)
		if err != nil {
			return nil, err
		}
		sprints, err := s.cascadeDeletedIDs(ctx, models.SprintCollection, bson.M{"projectId": oid})
		if err != nil {
			return nil, err
		}
		tasks, err := s.tasksOfSprints(ctx, sprints)
		if err != nil {
			return nil, err
		}
		return map[string][]string{"sprints": hexIDs(sprints), "tasks": hexIDs(tasks)}, nil

	case "service_center":
		oid, err := ParseID("Service center", id)
		if err != nil {
			return nil, err
		}
		projects, err := s.cascadeDeletedIDs(ctx, models.ProjectCollection, bson.M{"centerId": oid})
		if err != nil {
			return nil, err
		}
		sprints, err := s.cascadeDeletedIDs(ctx, models.SprintCollection, bson.M{"projectId": bson.M{"$in": projects}})
		if err != nil {
			return nil, err
		}
		tasks, err := s.tasksOfSprints(ctx, sprints)
		if err != nil {
			return nil, err
		}
		return map[string][]string{
			"projects": hexIDs(projects),
			"sprints":  hexIDs(sprints),
			"tasks":    hexIDs(tasks),
		}, nil
	}
	return nil, fmt.Errorf("unknown element type %q: %w", kind, ErrInvalidID)
}

func (s *CascadeService) tasksOfSprints(ctx context.Context, sprintIDs []primitive.ObjectID) ([]primitive.ObjectID, error) {
	if len(sprintIDs) == 0 {
		return nil, nil
	}
	return s.cascadeDeletedIDs(ctx, models.TaskCollection, bson.M{"sprintId": bson.M{"$in": sprintIDs}})
}

func (s *CascadeService) liveChildIDs(ctx context.Context, collection string, filter bson.M) ([]primitive.ObjectID, error) {
	filter["is_deleted"] = false
	return s.childIDs(ctx, collection, filter)
}

func (s *CascadeService) cascadeDeletedIDs(ctx context.Context, collection string, filter bson.M) ([]primitive.ObjectID, error) {
	filter["is_cascade_deleted"] = true
	return s.childIDs(ctx, collection, filter)
}

func (s *CascadeService) childIDs(ctx context.Context, collection string, filter bson.M) ([]primitive.ObjectID, error) {
	cur, err := s.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s ids: %w", collection, err)
	}
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}
