package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"projecthub/app/models"
	"projecthub/app/schemas"
	"projecthub/app/utils"
)

// TaskService manages tasks. Workload figures are recomputed on every write
// from the story points and the owning project's workload ratio.
type TaskService struct {
	db *mongo.Database
}

func NewTaskService(db *mongo.Database) *TaskService {
	return &TaskService{db: db}
}

func (s *TaskService) collection() *mongo.Collection {
	return s.db.Collection(models.TaskCollection)
}

func (s *TaskService) sprints() *mongo.Collection {
	return s.db.Collection(models.SprintCollection)
}

func validStatusKeys() []string {
	keys := make([]string, 0, len(models.TaskStatuses))
	for _, st := range models.TaskStatuses {
		keys = append(keys, string(st.Key))
	}
	return keys
}

func validTypeKeys() []string {
	keys := make([]string, 0, len(models.TaskTypes))
	for _, tt := range models.TaskTypes {
		keys = append(keys, string(tt.Key))
	}
	return keys
}

func invalidEnum(kind, value string, valid []string) error {
	return &schemas.ValidationError{
		Detail: fmt.Sprintf("Invalid task %s (%s). Valid values: %s", kind, value, strings.Join(valid, ", ")),
	}
}

func (s *TaskService) projectRatio(ctx context.Context, projectID primitive.ObjectID) (float64, error) {
	var project models.Project
	err := s.db.Collection(models.ProjectCollection).
		FindOne(ctx, bson.M{"_id": projectID, "is_deleted": false}).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return 0, notFound("Project", projectID.Hex())
	}
	if err != nil {
		return 0, fmt.Errorf("find project: %w", err)
	}
	return project.WorkloadRatio, nil
}

func (s *TaskService) sprintByID(ctx context.Context, id primitive.ObjectID) (models.Sprint, error) {
	var sprint models.Sprint
	err := s.sprints().FindOne(ctx, bson.M{"_id": id, "is_deleted": false}).Decode(&sprint)
	if err == mongo.ErrNoDocuments {
		return models.Sprint{}, notFound("Sprint", id.Hex())
	}
	if err != nil {
		return models.Sprint{}, fmt.Errorf("find sprint: %w", err)
	}
	return sprint, nil
}

// recalculate refreshes the derived figures of a task. A nil remaining time
// is initialized to the technical load before the figures are computed.
func recalculate(task *models.Task, ratio float64) {
	m := utils.CalculateTaskMetrics(*task, ratio)
	task.TechnicalLoad = m.TechnicalLoad
	if task.TimeRemaining == nil {
		remaining := m.TechnicalLoad
		task.TimeRemaining = &remaining
		m = utils.CalculateTaskMetrics(*task, ratio)
	}
	delta := m.Delta
	progress := m.Progress
	task.Delta = &delta
	task.Progress = &progress
}

// Create inserts a task into its sprint and records it on the sprint's task
// list. A task created in DONE is stamped with the sprint as its delivery
// sprint.
func (s *TaskService) Create(ctx context.Context, in schemas.TaskCreate) (models.Task, error) {
	if !models.TaskType(in.Type).Valid() {
		return models.Task{}, invalidEnum("type", in.Type, validTypeKeys())
	}
	if !models.TaskStatus(in.Status).Valid() {
		return models.Task{}, invalidEnum("status", in.Status, validStatusKeys())
	}

	sprintID, err := ParseID("Sprint", in.SprintID)
	if err != nil {
		return models.Task{}, err
	}
	projectID, err := ParseID("Project", in.ProjectID)
	if err != nil {
		return models.Task{}, err
	}
	sprint, err := s.sprintByID(ctx, sprintID)
	if err != nil {
		return models.Task{}, err
	}
	ratio, err := s.projectRatio(ctx, projectID)
	if err != nil {
		return models.Task{}, err
	}

	assignees := make([]primitive.ObjectID, 0, len(in.Assignee))
	for _, id := range in.Assignee {
		oid, err := ParseID("User", id)
		if err != nil {
			return models.Task{}, err
		}
		assignees = append(assignees, oid)
	}

	task := models.Task{
		SprintID:    sprintID,
		ProjectID:   projectID,
		Key:         in.Key,
		Summary:     in.Summary,
		StoryPoints: in.StoryPoints,
		Type:        models.TaskType(in.Type),
		Status:      models.TaskStatus(in.Status),
		Assignee:    assignees,
		CreatedAt:   time.Now().UTC(),
	}
	recalculate(&task, ratio)
	if task.Status == models.TaskStatusDone {
		task.DeliverySprint = sprint.SprintName
	}

	res, err := s.collection().InsertOne(ctx, task)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	task.ID = res.InsertedID.(primitive.ObjectID)

	_, err = s.sprints().UpdateOne(ctx,
		bson.M{"_id": sprintID},
		bson.M{"$addToSet": bson.M{"task": task.ID}})
	if err != nil {
		return models.Task{}, fmt.Errorf("append task to sprint: %w", err)
	}
	return task, nil
}

func (s *TaskService) GetByID(ctx context.Context, id string, deleted bool) (models.Task, error) {
	oid, err := ParseID("Task", id)
	if err != nil {
		return models.Task{}, err
	}
	var task models.Task
	err = s.collection().FindOne(ctx, bson.M{"_id": oid, "is_deleted": deleted}).Decode(&task)
	if err == mongo.ErrNoDocuments {
		return models.Task{}, notFound("Task", id)
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

// Update applies the non-nil fields and recomputes the derived figures.
// Changing the story points of a task whose remaining time was never edited
// reinitializes the remaining time to the new technical load. A transition to
// DONE stamps the sprint as the delivery sprint when none is set; moving a
// task between sprints keeps both sprint task lists in step.
func (s *TaskService) Update(ctx context.Context, in schemas.TaskUpdate) (models.Task, error) {
	task, err := s.GetByID(ctx, in.ID, false)
	if err != nil {
		return models.Task{}, err
	}

	if in.Type != nil && !models.TaskType(*in.Type).Valid() {
		return models.Task{}, invalidEnum("type", *in.Type, validTypeKeys())
	}
	if in.Status != nil && !models.TaskStatus(*in.Status).Valid() {
		return models.Task{}, invalidEnum("status", *in.Status, validStatusKeys())
	}
	if in.RFT != nil && !models.RFT(*in.RFT).Valid() {
		return models.Task{}, invalidEnum("rft", *in.RFT, []string{string(models.RFTOK), string(models.RFTKO)})
	}

	oldSprintID := task.SprintID
	oldLoad := task.TechnicalLoad
	remainingUntouched := task.TimeRemaining != nil && *task.TimeRemaining == oldLoad

	if in.SprintID != nil {
		oid, err := ParseID("Sprint", *in.SprintID)
		if err != nil {
			return models.Task{}, err
		}
		task.SprintID = oid
	}
	if in.ProjectID != nil {
		oid, err := ParseID("Project", *in.ProjectID)
		if err != nil {
			return models.Task{}, err
		}
		task.ProjectID = oid
	}
	if in.Key != nil {
		task.Key = *in.Key
	}
	if in.Summary != nil {
		task.Summary = *in.Summary
	}
	storyPointsChanged := false
	if in.StoryPoints != nil && *in.StoryPoints != task.StoryPoints {
		task.StoryPoints = *in.StoryPoints
		storyPointsChanged = true
	}
	if in.WU != nil {
		task.WU = *in.WU
	}
	if in.Comment != nil {
		task.Comment = *in.Comment
	}
	if in.DeliverySprint != nil {
		task.DeliverySprint = *in.DeliverySprint
	}
	if in.DeliveryStatus != nil {
		task.DeliveryStatus = models.DeliveryStatus(*in.DeliveryStatus)
	}
	if in.DeliveryVersion != nil {
		task.DeliveryVersion = *in.DeliveryVersion
	}
	if in.Type != nil {
		task.Type = models.TaskType(*in.Type)
	}
	if in.Status != nil {
		task.Status = models.TaskStatus(*in.Status)
	}
	if in.RFT != nil {
		task.RFT = models.RFT(*in.RFT)
	}
	if in.TimeSpent != nil {
		task.TimeSpent = *in.TimeSpent
	}
	if in.TimeRemaining != nil {
		task.TimeRemaining = in.TimeRemaining
	} else if storyPointsChanged && remainingUntouched {
		task.TimeRemaining = nil
	}
	if in.Assignee != nil {
		assignees := make([]primitive.ObjectID, 0, len(*in.Assignee))
		for _, id := range *in.Assignee {
			oid, err := ParseID("User", id)
			if err != nil {
				return models.Task{}, err
			}
			assignees = append(assignees, oid)
		}
		task.Assignee = assignees
	}

	ratio, err := s.projectRatio(ctx, task.ProjectID)
	if err != nil {
		return models.Task{}, err
	}
	recalculate(&task, ratio)

	if task.Status == models.TaskStatusDone && task.DeliverySprint == "" {
		sprint, err := s.sprintByID(ctx, task.SprintID)
		if err != nil {
			return models.Task{}, err
		}
		task.DeliverySprint = sprint.SprintName
	}

	if err := replaceByID(ctx, s.collection(), task.ID, task); err != nil {
		return models.Task{}, err
	}

	if task.SprintID != oldSprintID {
		if _, err := s.sprints().UpdateOne(ctx,
			bson.M{"_id": oldSprintID},
			bson.M{"$pull": bson.M{"task": task.ID}}); err != nil {
			return models.Task{}, fmt.Errorf("detach task from sprint: %w", err)
		}
		if _, err := s.sprints().UpdateOne(ctx,
			bson.M{"_id": task.SprintID},
			bson.M{"$addToSet": bson.M{"task": task.ID}}); err != nil {
			return models.Task{}, fmt.Errorf("attach task to sprint: %w", err)
		}
	}
	return task, nil
}

// BySprint returns the tasks of one sprint.
func (s *TaskService) BySprint(ctx context.Context, sprintID string, deleted bool) ([]models.Task, error) {
	oid, err := ParseID("Sprint", sprintID)
	if err != nil {
		return nil, err
	}
	cur, err := s.collection().Find(ctx, bson.M{"sprintId": oid, "is_deleted": deleted})
	if err != nil {
		return nil, fmt.Errorf("find sprint tasks: %w", err)
	}
	tasks := []models.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("decode sprint tasks: %w", err)
	}
	return tasks, nil
}

// TypeList returns the task type catalog with display labels.
func (s *TaskService) TypeList() []schemas.TaskSpecific {
	list := make([]schemas.TaskSpecific, 0, len(models.TaskTypes))
	for _, tt := range models.TaskTypes {
		list = append(list, schemas.TaskSpecific{Key: string(tt.Key), Specific: tt.Label})
	}
	return list
}

// StatusList returns the task status catalog with display labels.
func (s *TaskService) StatusList() []schemas.TaskSpecific {
	list := make([]schemas.TaskSpecific, 0, len(models.TaskStatuses))
	for _, st := range models.TaskStatuses {
		list = append(list, schemas.TaskSpecific{Key: string(st.Key), Specific: st.Label})
	}
	return list
}

// ImportCSV parses a Jira or GitLab export and creates the contained tasks in
// a sprint. Rows whose key already exists in the sprint are skipped.
func (s *TaskService) ImportCSV(ctx context.Context, projectID, sprintID, filename string, content []byte) (schemas.ImportCSVResponse, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return schemas.ImportCSVResponse{}, &schemas.ValidationError{
			Detail: fmt.Sprintf("Invalid file format (%s). Only CSV files are supported", filename),
		}
	}

	spID, err := ParseID("Sprint", sprintID)
	if err != nil {
		return schemas.ImportCSVResponse{}, err
	}
	pjID, err := ParseID("Project", projectID)
	if err != nil {
		return schemas.ImportCSVResponse{}, err
	}
	sprint, err := s.sprintByID(ctx, spID)
	if err != nil {
		return schemas.ImportCSVResponse{}, err
	}
	ratio, err := s.projectRatio(ctx, pjID)
	if err != nil {
		return schemas.ImportCSVResponse{}, err
	}

	parse, err := utils.ParseTaskCSV(content)
	if err != nil {
		return schemas.ImportCSVResponse{}, &schemas.ValidationError{Detail: err.Error()}
	}

	existing, err := s.BySprint(ctx, sprintID, false)
	if err != nil {
		return schemas.ImportCSVResponse{}, err
	}
	knownKeys := make(map[string]bool, len(existing))
	for _, t := range existing {
		knownKeys[t.Key] = true
	}

	now := time.Now().UTC()
	var docs []any
	duplicates := 0
	for _, row := range parse.Rows {
		if knownKeys[row.Key] {
			duplicates++
			continue
		}
		knownKeys[row.Key] = true

		task := models.Task{
			SprintID:    spID,
			ProjectID:   pjID,
			Key:         row.Key,
			Summary:     row.Summary,
			StoryPoints: row.StoryPoints,
			Type:        row.Type,
			Status:      row.Status,
			Assignee:    []primitive.ObjectID{},
			CreatedAt:   now,
		}
		recalculate(&task, ratio)
		if task.Status == models.TaskStatusDone {
			task.DeliverySprint = sprint.SprintName
		}
		docs = append(docs, task)
	}

	if len(docs) > 0 {
		res, err := s.collection().InsertMany(ctx, docs)
		if err != nil {
			return schemas.ImportCSVResponse{}, fmt.Errorf("insert imported tasks: %w", err)
		}
		ids := make([]primitive.ObjectID, 0, len(res.InsertedIDs))
		for _, id := range res.InsertedIDs {
			ids = append(ids, id.(primitive.ObjectID))
		}
		if _, err := s.sprints().UpdateOne(ctx,
			bson.M{"_id": spID},
			bson.M{"$addToSet": bson.M{"task": bson.M{"$each": ids}}}); err != nil {
			return schemas.ImportCSVResponse{}, fmt.Errorf("append imported tasks to sprint: %w", err)
		}
	}

	msg := fmt.Sprintf("Imported %d tasks from %s export", len(docs), parse.Source)
	if duplicates > 0 {
		msg += fmt.Sprintf(", skipped %d duplicate keys", duplicates)
	}
	if len(parse.SkippedRows) > 0 {
		lines := make([]string, 0, len(parse.SkippedRows))
		for _, n := range parse.SkippedRows {
			lines = append(lines, fmt.Sprint(n))
		}
		msg += fmt.Sprintf(", skipped lines %s (missing key or summary)", strings.Join(lines, ", "))
	}
	return schemas.ImportCSVResponse{Status: true, Msg: msg}, nil
}
