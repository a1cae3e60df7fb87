package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"projecthub/app/models"
	"projecthub/app/schemas"
	"projecthub/app/services"
)

// Stub stores with overridable behavior per test. Unset functions return
// zero values.

type stubCenters struct {
	create func(schemas.ServiceCenterCreate) (models.ServiceCenter, error)
	get    func(string, bool) (models.ServiceCenter, error)
}

func (s *stubCenters) Create(_ context.Context, in schemas.ServiceCenterCreate) (models.ServiceCenter, error) {
	if s.create != nil {
		return s.create(in)
	}
	return models.ServiceCenter{}, nil
}
func (s *stubCenters) GetByID(_ context.Context, id string, deleted bool) (models.ServiceCenter, error) {
	if s.get != nil {
		return s.get(id, deleted)
	}
	return models.ServiceCenter{}, nil
}
func (s *stubCenters) List(context.Context, int, int, string, bool) ([]models.ServiceCenter, int64, error) {
	return nil, 0, nil
}
func (s *stubCenters) Update(context.Context, schemas.ServiceCenterUpdate) (models.ServiceCenter, error) {
	return models.ServiceCenter{}, nil
}
func (s *stubCenters) AttachProject(context.Context, primitive.ObjectID, primitive.ObjectID) error {
	return nil
}

type stubProjects struct {
	get        func(string, bool) (models.Project, error)
	byIDs      func([]string, bool) ([]models.Project, []string, error)
	activities func(string, bool) ([]models.ProjectTransversalActivity, error)
	attached   []primitive.ObjectID
}

func (s *stubProjects) Create(context.Context, schemas.ProjectCreate, []string, []string) (models.Project, error) {
	return models.Project{}, nil
}
func (s *stubProjects) GetByID(_ context.Context, id string, deleted bool) (models.Project, error) {
	if s.get != nil {
		return s.get(id, deleted)
	}
	return models.Project{}, nil
}
func (s *stubProjects) GetByIDs(_ context.Context, ids []string, deleted bool) ([]models.Project, []string, error) {
	if s.byIDs != nil {
		return s.byIDs(ids, deleted)
	}
	return nil, nil, nil
}
func (s *stubProjects) List(context.Context, int, int, string, string, bool) ([]models.Project, int64, error) {
	return nil, 0, nil
}
func (s *stubProjects) Update(context.Context, schemas.ProjectUpdate) (models.Project, error) {
	return models.Project{}, nil
}
func (s *stubProjects) ActivitiesByProject(_ context.Context, projectID string, deleted bool) ([]models.ProjectTransversalActivity, error) {
	if s.activities != nil {
		return s.activities(projectID, deleted)
	}
	return nil, nil
}
func (s *stubProjects) AttachSprint(_ context.Context, _ primitive.ObjectID, sprintID primitive.ObjectID) error {
	s.attached = append(s.attached, sprintID)
	return nil
}

type stubSprints struct {
	create func(schemas.SprintCreate, []models.ProjectTransversalActivity) (models.Sprint, error)
	list   func([]string, string) ([]models.Sprint, int64, error)
}

func (s *stubSprints) Create(_ context.Context, in schemas.SprintCreate, acts []models.ProjectTransversalActivity) (models.Sprint, error) {
	if s.create != nil {
		return s.create(in, acts)
	}
	return models.Sprint{}, nil
}
func (s *stubSprints) GetByID(context.Context, string, bool) (models.Sprint, error) {
	return models.Sprint{}, nil
}
func (s *stubSprints) List(_ context.Context, _, _ int, sprintIDs []string, projectID, _ string, _ bool) ([]models.Sprint, int64, error) {
	if s.list != nil {
		return s.list(sprintIDs, projectID)
	}
	return nil, 0, nil
}
func (s *stubSprints) Update(context.Context, schemas.SprintUpdate) (models.Sprint, error) {
	return models.Sprint{}, nil
}
func (s *stubSprints) RelevantByProject(context.Context, string) ([]schemas.SprintTarget, error) {
	return nil, nil
}
func (s *stubSprints) ActivitiesBySprint(context.Context, string, bool) ([]models.SprintTransversalActivity, error) {
	return nil, nil
}

type stubTasks struct {
	create   func(schemas.TaskCreate) (models.Task, error)
	bySprint func(string, bool) ([]models.Task, error)
	imported func(projectID, sprintID, filename string, content []byte) (schemas.ImportCSVResponse, error)
}

func (s *stubTasks) Create(_ context.Context, in schemas.TaskCreate) (models.Task, error) {
	if s.create != nil {
		return s.create(in)
	}
	return models.Task{}, nil
}
func (s *stubTasks) Update(context.Context, schemas.TaskUpdate) (models.Task, error) {
	return models.Task{}, nil
}
func (s *stubTasks) BySprint(_ context.Context, sprintID string, deleted bool) ([]models.Task, error) {
	if s.bySprint != nil {
		return s.bySprint(sprintID, deleted)
	}
	return nil, nil
}
func (s *stubTasks) TypeList() []schemas.TaskSpecific {
	return []schemas.TaskSpecific{{Key: "BUG", Specific: "Bug"}}
}
func (s *stubTasks) StatusList() []schemas.TaskSpecific {
	return []schemas.TaskSpecific{{Key: "TODO", Specific: "To do"}}
}
func (s *stubTasks) ImportCSV(_ context.Context, projectID, sprintID, filename string, content []byte) (schemas.ImportCSVResponse, error) {
	if s.imported != nil {
		return s.imported(projectID, sprintID, filename, content)
	}
	return schemas.ImportCSVResponse{}, nil
}

type stubUsers struct {
	byIDs func([]string, bool) ([]models.User, []string, error)
}

func (s *stubUsers) Create(context.Context, schemas.UserCreate) (models.User, error) {
	return models.User{}, nil
}
func (s *stubUsers) GetByIDs(_ context.Context, ids []string, deleted bool) ([]models.User, []string, error) {
	if s.byIDs != nil {
		return s.byIDs(ids, deleted)
	}
	return nil, nil, nil
}
func (s *stubUsers) List(context.Context, int, int, string, bool) ([]models.User, int64, error) {
	return nil, 0, nil
}
func (s *stubUsers) Update(context.Context, string, schemas.UserUpdate) (models.User, error) {
	return models.User{}, nil
}
func (s *stubUsers) Delete(context.Context, string) error { return nil }
func (s *stubUsers) DirectorAccessesByUser(context.Context, primitive.ObjectID) ([]models.DirectorAccess, error) {
	return nil, nil
}
func (s *stubUsers) ProjectAccessesByUser(context.Context, primitive.ObjectID) ([]models.ProjectAccess, error) {
	return nil, nil
}
func (s *stubUsers) ProjectAccessesByProject(context.Context, primitive.ObjectID) ([]models.ProjectAccess, error) {
	return nil, nil
}

type stubCascade struct {
	deleteTask func(string, bool) error
	elements   func(kind, id string) (map[string][]string, error)
}

func (s *stubCascade) DeleteTask(_ context.Context, id string, cascade bool) error {
	if s.deleteTask != nil {
		return s.deleteTask(id, cascade)
	}
	return nil
}
func (s *stubCascade) DeleteSprint(context.Context, string, bool) error  { return nil }
func (s *stubCascade) DeleteProject(context.Context, string, bool) error { return nil }
func (s *stubCascade) DeleteServiceCenter(context.Context, string) error { return nil }
func (s *stubCascade) CascadeDeletedElements(_ context.Context, kind, id string) (map[string][]string, error) {
	if s.elements != nil {
		return s.elements(kind, id)
	}
	return nil, nil
}

func TestTaskControllerCreate(t *testing.T) {
	taskID := primitive.NewObjectID()
	tasks := &stubTasks{
		create: func(in schemas.TaskCreate) (models.Task, error) {
			return models.Task{
				ID:          taskID,
				SprintID:    primitive.NewObjectID(),
				ProjectID:   primitive.NewObjectID(),
				Key:         in.Key,
				Summary:     in.Summary,
				StoryPoints: in.StoryPoints,
				Type:        models.TaskType(in.Type),
				Status:      models.TaskStatus(in.Status),
			}, nil
		},
	}
	c := NewTaskController(tasks, &stubCascade{})

	body := `{"sprintId":"65f000000000000000000001","projectId":"65f000000000000000000002","key":"PRJ-1","summary":"Build it","storyPoints":3}`
	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(body))
	rec := httptest.NewRecorder()
	c.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body)
	}
	var resp schemas.TaskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != taskID.Hex() || resp.Key != "PRJ-1" {
		t.Errorf("response = %+v", resp)
	}
}

func TestTaskControllerCreateRejectsBadPayload(t *testing.T) {
	c := NewTaskController(&stubTasks{}, &stubCascade{})

	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{"key":"PRJ-1"}`))
	rec := httptest.NewRecorder()
	c.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "detail") {
		t.Errorf("body = %s, want a detail field", rec.Body)
	}
}

func TestTaskControllerListRequiresSprintIDs(t *testing.T) {
	c := NewTaskController(&stubTasks{}, &stubCascade{})
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	rec := httptest.NewRecorder()
	c.List(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestTaskControllerListGroupsBySprint(t *testing.T) {
	sprintA := primitive.NewObjectID()
	sprintB := primitive.NewObjectID()
	tasks := &stubTasks{
		bySprint: func(sprintID string, _ bool) ([]models.Task, error) {
			switch sprintID {
			case sprintA.Hex():
				return []models.Task{{ID: primitive.NewObjectID(), SprintID: sprintA, Key: "A-1"}}, nil
			case sprintB.Hex():
				return []models.Task{
					{ID: primitive.NewObjectID(), SprintID: sprintB, Key: "B-1"},
					{ID: primitive.NewObjectID(), SprintID: sprintB, Key: "B-2"},
				}, nil
			}
			return nil, nil
		},
	}
	c := NewTaskController(tasks, &stubCascade{})

	url := fmt.Sprintf("/tasks?sprintIds=%s,%s", sprintA.Hex(), sprintB.Hex())
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	c.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body)
	}
	var resp schemas.TaskListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.ResponseList) != 2 {
		t.Fatalf("groups = %d, want 2", len(resp.ResponseList))
	}
	if resp.Total != 3 {
		t.Errorf("Total = %d, want 3", resp.Total)
	}
	if len(resp.ResponseList[1].TaskList) != 2 {
		t.Errorf("second sprint tasks = %d, want 2", len(resp.ResponseList[1].TaskList))
	}
}

func TestTaskControllerDeleteNotFound(t *testing.T) {
	cascade := &stubCascade{
		deleteTask: func(id string, _ bool) error {
			return fmt.Errorf("Task %s %w", id, services.ErrNotFound)
		},
	}
	c := NewTaskController(&stubTasks{}, cascade)

	router := mux.NewRouter()
	router.HandleFunc("/tasks/{taskID}", c.Delete).Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, "/tasks/65f000000000000000000009", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not found") {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestTaskControllerDeleteInvalidID(t *testing.T) {
	cascade := &stubCascade{
		deleteTask: func(id string, _ bool) error {
			return fmt.Errorf("%w (%s) for object Task", services.ErrInvalidID, id)
		},
	}
	c := NewTaskController(&stubTasks{}, cascade)

	router := mux.NewRouter()
	router.HandleFunc("/tasks/{taskID}", c.Delete).Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, "/tasks/nonsense", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid id (nonsense) for object Task") {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestTaskControllerTypes(t *testing.T) {
	c := NewTaskController(&stubTasks{}, &stubCascade{})
	rec := httptest.NewRecorder()
	c.Types(rec, httptest.NewRequest(http.MethodGet, "/tasks/types", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp schemas.TaskSpecificsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Specifics) != 1 || resp.Specifics[0].Key != "BUG" {
		t.Errorf("specifics = %+v", resp.Specifics)
	}
}

func TestTaskControllerImportCSV(t *testing.T) {
	var gotFilename string
	tasks := &stubTasks{
		imported: func(projectID, sprintID, filename string, content []byte) (schemas.ImportCSVResponse, error) {
			gotFilename = filename
			return schemas.ImportCSVResponse{Status: true, Msg: "Imported 2 tasks from jira export"}, nil
		},
	}
	c := NewTaskController(tasks, &stubCascade{})

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	_ = form.WriteField("projectId", "65f000000000000000000002")
	_ = form.WriteField("sprintId", "65f000000000000000000001")
	part, _ := form.CreateFormFile("file", "export.csv")
	_, _ = part.Write([]byte("Issue key,Issue Type,Summary,Custom field (Story Points)\nPRJ-1,Bug,Fix,3\n"))
	_ = form.Close()

	req := httptest.NewRequest(http.MethodPost, "/tasks/import-csv", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec := httptest.NewRecorder()
	c.ImportCSV(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body)
	}
	if gotFilename != "export.csv" {
		t.Errorf("filename = %q, want export.csv", gotFilename)
	}
}

func TestTaskControllerImportCSVMissingFields(t *testing.T) {
	c := NewTaskController(&stubTasks{}, &stubCascade{})

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	_ = form.Close()

	req := httptest.NewRequest(http.MethodPost, "/tasks/import-csv", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec := httptest.NewRecorder()
	c.ImportCSV(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUserControllerGetByIDsMissing(t *testing.T) {
	users := &stubUsers{
		byIDs: func(ids []string, _ bool) ([]models.User, []string, error) {
			return nil, []string{ids[0]}, nil
		},
	}
	c := NewUserController(users, &stubProjects{}, &stubSprints{}, &stubTasks{})

	req := httptest.NewRequest(http.MethodGet, "/users/byIds?ids=65f000000000000000000003", nil)
	rec := httptest.NewRecorder()
	c.GetByIDs(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "65f000000000000000000003") {
		t.Errorf("body = %s, want the missing id named", rec.Body)
	}
}

func TestProjectControllerCascadeDeleted(t *testing.T) {
	cascade := &stubCascade{
		elements: func(kind, id string) (map[string][]string, error) {
			if kind != "project" {
				t.Errorf("kind = %q, want project", kind)
			}
			return map[string][]string{"sprints": {"a"}, "tasks": {"b", "c"}}, nil
		},
	}
	c := NewProjectController(&stubProjects{}, &stubCenters{}, cascade, &stubSprints{}, &stubTasks{}, &stubUsers{})

	router := mux.NewRouter()
	router.HandleFunc("/projects/{projectID}/cascade-deleted", c.CascadeDeleted).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/projects/65f000000000000000000004/cascade-deleted", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string][]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp["tasks"]) != 2 {
		t.Errorf("tasks = %v, want two ids", resp["tasks"])
	}
}

func TestSprintControllerListSprintIDsParam(t *testing.T) {
	wantID := primitive.NewObjectID().Hex()
	var gotIDs []string
	sprints := &stubSprints{
		list: func(sprintIDs []string, _ string) ([]models.Sprint, int64, error) {
			gotIDs = sprintIDs
			return nil, 0, nil
		},
	}
	c := NewSprintController(sprints, &stubProjects{}, &stubCascade{}, &stubTasks{}, &stubUsers{})

	req := httptest.NewRequest(http.MethodGet, "/sprints?sprintIds="+wantID, nil)
	rec := httptest.NewRecorder()
	c.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body)
	}
	if len(gotIDs) != 1 || gotIDs[0] != wantID {
		t.Errorf("sprint ids passed to store = %v, want [%s]", gotIDs, wantID)
	}
}

func TestProjectControllerGetByIDsProjectIDsParam(t *testing.T) {
	wantID := primitive.NewObjectID().Hex()
	var gotIDs []string
	projects := &stubProjects{
		byIDs: func(ids []string, _ bool) ([]models.Project, []string, error) {
			gotIDs = ids
			return nil, nil, nil
		},
	}
	c := NewProjectController(projects, &stubCenters{}, &stubCascade{}, &stubSprints{}, &stubTasks{}, &stubUsers{})

	req := httptest.NewRequest(http.MethodGet, "/projects/byIds?projectIds="+wantID, nil)
	rec := httptest.NewRecorder()
	c.GetByIDs(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body)
	}
	if len(gotIDs) != 1 || gotIDs[0] != wantID {
		t.Errorf("project ids passed to store = %v, want [%s]", gotIDs, wantID)
	}
}

func TestUserControllerGetByIDsUserIDsParam(t *testing.T) {
	wantID := primitive.NewObjectID().Hex()
	var gotIDs []string
	users := &stubUsers{
		byIDs: func(ids []string, _ bool) ([]models.User, []string, error) {
			gotIDs = ids
			return nil, nil, nil
		},
	}
	c := NewUserController(users, &stubProjects{}, &stubSprints{}, &stubTasks{})

	req := httptest.NewRequest(http.MethodGet, "/users/byIds?userIds="+wantID, nil)
	rec := httptest.NewRecorder()
	c.GetByIDs(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body)
	}
	if len(gotIDs) != 1 || gotIDs[0] != wantID {
		t.Errorf("user ids passed to store = %v, want [%s]", gotIDs, wantID)
	}
}

func TestRootControllerWelcome(t *testing.T) {
	c := NewRootController("/api", nil)
	rec := httptest.NewRecorder()
	c.Welcome(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["message"] == "" || resp["version"] != Version || resp["docs"] != "/api/docs" {
		t.Errorf("welcome payload = %v", resp)
	}
}

func TestSprintControllerCreateCopiesProjectActivities(t *testing.T) {
	projectID := primitive.NewObjectID()
	sprintID := primitive.NewObjectID()
	activity := models.ProjectTransversalActivity{
		ID:        primitive.NewObjectID(),
		ProjectID: projectID,
		Activity:  "Ceremonies",
		Meaning:   "SCRUM Meetings",
	}

	projects := &stubProjects{
		get: func(id string, _ bool) (models.Project, error) {
			return models.Project{ID: projectID, ProjectName: "Apollo"}, nil
		},
		activities: func(string, bool) ([]models.ProjectTransversalActivity, error) {
			return []models.ProjectTransversalActivity{activity}, nil
		},
	}
	var gotActivities []models.ProjectTransversalActivity
	sprints := &stubSprints{
		create: func(in schemas.SprintCreate, acts []models.ProjectTransversalActivity) (models.Sprint, error) {
			gotActivities = acts
			return models.Sprint{
				ID:         sprintID,
				ProjectID:  projectID,
				SprintName: in.SprintName,
				Status:     models.SprintStatus(in.Status),
				StartDate:  in.StartDate,
				DueDate:    in.DueDate,
			}, nil
		},
	}
	c := NewSprintController(sprints, projects, &stubCascade{}, &stubTasks{}, &stubUsers{})

	start := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	payload := schemas.SprintCreate{
		ProjectID:  projectID.Hex(),
		SprintName: "Sprint 1",
		StartDate:  start,
		DueDate:    start.AddDate(0, 0, 11),
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/sprints", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	c.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body)
	}
	if len(gotActivities) != 1 || gotActivities[0].Activity != "Ceremonies" {
		t.Errorf("activities passed to create = %+v", gotActivities)
	}
	if len(projects.attached) != 1 || projects.attached[0] != sprintID {
		t.Errorf("attached sprints = %v, want [%s]", projects.attached, sprintID.Hex())
	}
	var resp schemas.SprintResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SprintName != "Sprint 1" || resp.ProjectName != "Apollo" {
		t.Errorf("response = %+v", resp)
	}
	// Mon..Fri of two calendar weeks.
	if resp.Duration != 10 {
		t.Errorf("Duration = %v, want 10", resp.Duration)
	}
}
