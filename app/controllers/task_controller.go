package controllers

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"projecthub/app/schemas"
)

// maxImportSize caps the in-memory part of a CSV upload.
const maxImportSize = 10 << 20

// TaskController handles the /tasks endpoints.
type TaskController struct {
	tasks   TaskStore
	cascade CascadeDeleter
}

func NewTaskController(tasks TaskStore, cascade CascadeDeleter) *TaskController {
	return &TaskController{tasks: tasks, cascade: cascade}
}

func (c *TaskController) Create(w http.ResponseWriter, r *http.Request) {
	var in schemas.TaskCreate
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	task, err := c.tasks.Create(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, schemas.NewTaskResponse(task))
}

// List returns tasks grouped by sprint. The sprintIds parameter names the
// sprints to load; pagination applies to the flattened task list.
func (c *TaskController) List(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)
	deleted := boolParam(r, "isDeleted")

	var sprintIDs []string
	for _, raw := range r.URL.Query()["sprintIds"] {
		sprintIDs = append(sprintIDs, splitIDList(raw)...)
	}
	if len(sprintIDs) == 0 {
		respondError(w, &schemas.ValidationError{Detail: "At least one sprint id is required"})
		return
	}

	var total int64
	groups := make([]schemas.SprintTaskList, 0, len(sprintIDs))
	skip := (page - 1) * size
	remaining := size
	for _, sprintID := range sprintIDs {
		tasks, err := c.tasks.BySprint(r.Context(), sprintID, deleted)
		if err != nil {
			respondError(w, err)
			return
		}
		total += int64(len(tasks))

		group := schemas.SprintTaskList{SprintID: sprintID, TaskList: []schemas.TaskResponse{}}
		for _, task := range tasks {
			if skip > 0 {
				skip--
				continue
			}
			if remaining == 0 {
				continue
			}
			group.TaskList = append(group.TaskList, schemas.NewTaskResponse(task))
			remaining--
		}
		groups = append(groups, group)
	}

	respondJSON(w, http.StatusOK, schemas.TaskListResponse{
		ResponseList: groups,
		PageInfo:     pageInfo(total, page, size),
	})
}

func (c *TaskController) Update(w http.ResponseWriter, r *http.Request) {
	var in schemas.TaskUpdate
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	task, err := c.tasks.Update(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, schemas.NewTaskResponse(task))
}

func (c *TaskController) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["taskID"]
	if err := c.cascade.DeleteTask(r.Context(), id, false); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, schemas.DeleteStatusResponse{
		Status: true,
		Msg:    "Task deleted successfully",
	})
}

// Types lists the task type catalog with display labels.
func (c *TaskController) Types(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, schemas.TaskSpecificsResponse{Specifics: c.tasks.TypeList()})
}

// Statuses lists the task status catalog with display labels.
func (c *TaskController) Statuses(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, schemas.TaskSpecificsResponse{Specifics: c.tasks.StatusList()})
}

// ImportCSV accepts a multipart upload of a Jira or GitLab export and creates
// the contained tasks in a sprint.
func (c *TaskController) ImportCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		respondError(w, &schemas.ValidationError{Detail: "Invalid multipart form: " + err.Error()})
		return
	}
	projectID := r.FormValue("projectId")
	sprintID := r.FormValue("sprintId")
	if projectID == "" || sprintID == "" {
		respondError(w, &schemas.ValidationError{Detail: "projectId and sprintId are required"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, &schemas.ValidationError{Detail: "Missing file upload"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxImportSize))
	if err != nil {
		respondError(w, err)
		return
	}

	resp, err := c.tasks.ImportCSV(r.Context(), projectID, sprintID, header.Filename, content)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
