package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"projecthub/app/schemas"
)

// SprintController handles the /sprints endpoints.
type SprintController struct {
	sprints  SprintStore
	projects ProjectStore
	cascade  CascadeDeleter
	builder  *builder
}

func NewSprintController(sprints SprintStore, projects ProjectStore, cascade CascadeDeleter, tasks TaskStore, users UserStore) *SprintController {
	return &SprintController{
		sprints:  sprints,
		projects: projects,
		cascade:  cascade,
		builder:  &builder{projects: projects, sprints: sprints, tasks: tasks, users: users},
	}
}

// Create inserts a sprint under its project, copying the project's
// transversal activity catalog into the new sprint.
func (c *SprintController) Create(w http.ResponseWriter, r *http.Request) {
	var in schemas.SprintCreate
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	project, err := c.projects.GetByID(r.Context(), in.ProjectID, false)
	if err != nil {
		respondError(w, err)
		return
	}
	activities, err := c.projects.ActivitiesByProject(r.Context(), in.ProjectID, false)
	if err != nil {
		respondError(w, err)
		return
	}
	sprint, err := c.sprints.Create(r.Context(), in, activities)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := c.projects.AttachSprint(r.Context(), project.ID, sprint.ID); err != nil {
		respondError(w, err)
		return
	}
	resp, err := c.builder.sprintFull(r.Context(), sprint)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

// List returns full sprint responses. Explicit ids take precedence over the
// project filter.
func (c *SprintController) List(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)
	ids := idsParam(r, "sprintIds")
	projectID := r.URL.Query().Get("projectId")
	status := r.URL.Query().Get("status")
	deleted := boolParam(r, "isDeleted")

	sprints, total, err := c.sprints.List(r.Context(), (page-1)*size, size, ids, projectID, status, deleted)
	if err != nil {
		respondError(w, err)
		return
	}
	list := make([]schemas.SprintResponse, 0, len(sprints))
	for _, sprint := range sprints {
		resp, err := c.builder.sprintFull(r.Context(), sprint)
		if err != nil {
			respondError(w, err)
			return
		}
		list = append(list, resp)
	}
	respondJSON(w, http.StatusOK, schemas.SprintListResponse{
		Sprints:  list,
		PageInfo: pageInfo(total, page, size),
	})
}

func (c *SprintController) Update(w http.ResponseWriter, r *http.Request) {
	var in schemas.SprintUpdate
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	sprint, err := c.sprints.Update(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	resp, err := c.builder.sprintFull(r.Context(), sprint)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Delete soft deletes the sprint with its tasks and activities.
func (c *SprintController) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sprintID"]
	if err := c.cascade.DeleteSprint(r.Context(), id, false); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, schemas.DeleteStatusResponse{
		Status: true,
		Msg:    "Sprint and all related elements deleted successfully",
	})
}
