package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"projecthub/app/models"
	"projecthub/app/schemas"
)

// ProjectController handles the /projects endpoints.
type ProjectController struct {
	projects ProjectStore
	centers  CenterStore
	cascade  CascadeDeleter
	builder  *builder
}

func NewProjectController(projects ProjectStore, centers CenterStore, cascade CascadeDeleter, sprints SprintStore, tasks TaskStore, users UserStore) *ProjectController {
	return &ProjectController{
		projects: projects,
		centers:  centers,
		cascade:  cascade,
		builder:  &builder{projects: projects, sprints: sprints, tasks: tasks, users: users},
	}
}

// Create inserts a project. The task status and type catalogs are taken from
// the owning service center when one is given, otherwise the full catalogs
// apply.
func (c *ProjectController) Create(w http.ResponseWriter, r *http.Request) {
	var in schemas.ProjectCreate
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	statuses, types := fullTaskCatalogs()
	if in.CenterID != "" {
		center, err := c.centers.GetByID(r.Context(), in.CenterID, false)
		if err != nil {
			respondError(w, err)
			return
		}
		statuses, types = centerTaskCatalogs(center)
	}

	project, err := c.projects.Create(r.Context(), in, statuses, types)
	if err != nil {
		respondError(w, err)
		return
	}
	if project.CenterID != nil {
		if err := c.centers.AttachProject(r.Context(), *project.CenterID, project.ID); err != nil {
			respondError(w, err)
			return
		}
	}
	resp, err := c.builder.projectFull(r.Context(), project)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

// ListLight returns the paginated compact project listing, optionally scoped
// to a service center or a status.
func (c *ProjectController) ListLight(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)
	centerID := r.URL.Query().Get("centerId")
	status := r.URL.Query().Get("status")
	deleted := boolParam(r, "isDeleted")

	projects, total, err := c.projects.List(r.Context(), (page-1)*size, size, centerID, status, deleted)
	if err != nil {
		respondError(w, err)
		return
	}
	list := make([]schemas.ProjectLightResponse, 0, len(projects))
	for _, project := range projects {
		light, err := c.builder.projectLight(r.Context(), project)
		if err != nil {
			respondError(w, err)
			return
		}
		list = append(list, light)
	}
	respondJSON(w, http.StatusOK, schemas.ProjectListLightResponse{
		Projects: list,
		PageInfo: pageInfo(total, page, size),
	})
}

// GetByIDs resolves a batch of project ids into full responses. Unknown ids
// make the whole request a 404 naming them.
func (c *ProjectController) GetByIDs(w http.ResponseWriter, r *http.Request) {
	ids := idsParam(r, "projectIds")
	if len(ids) == 0 {
		respondError(w, &schemas.ValidationError{Detail: "At least one project id is required"})
		return
	}
	deleted := boolParam(r, "isDeleted")

	projects, missing, err := c.projects.GetByIDs(r.Context(), ids, deleted)
	if err != nil {
		respondError(w, err)
		return
	}
	if len(missing) > 0 {
		respondJSON(w, http.StatusNotFound, map[string]string{
			"detail": fmt.Sprintf("Projects not found: %s", strings.Join(missing, ", ")),
		})
		return
	}
	list := make([]schemas.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		resp, err := c.builder.projectFull(r.Context(), project)
		if err != nil {
			respondError(w, err)
			return
		}
		list = append(list, resp)
	}
	respondJSON(w, http.StatusOK, list)
}

func (c *ProjectController) Update(w http.ResponseWriter, r *http.Request) {
	var in schemas.ProjectUpdate
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	project, err := c.projects.Update(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	resp, err := c.builder.projectFull(r.Context(), project)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Delete soft deletes the project and everything nested under it.
func (c *ProjectController) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["projectID"]
	if err := c.cascade.DeleteProject(r.Context(), id, false); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, schemas.DeleteStatusResponse{
		Status: true,
		Msg:    "Project and all related elements deleted successfully",
	})
}

// CascadeDeleted lists the ids of the elements removed alongside the project.
func (c *ProjectController) CascadeDeleted(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["projectID"]
	elements, err := c.cascade.CascadeDeletedElements(r.Context(), "project", id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, elements)
}

// idsParam reads an id-list query parameter, accepting both repeated values
// and comma-separated lists. The first of the given names with a value wins;
// "ids" is always accepted as a fallback.
func idsParam(r *http.Request, names ...string) []string {
	for _, name := range append(names, "ids") {
		var ids []string
		for _, raw := range r.URL.Query()[name] {
			ids = append(ids, splitIDList(raw)...)
		}
		if len(ids) > 0 {
			return ids
		}
	}
	return nil
}

func splitIDList(raw string) []string {
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// fullTaskCatalogs returns every known task status and type key in display
// order.
func fullTaskCatalogs() (statuses, types []string) {
	for _, st := range models.TaskStatuses {
		statuses = append(statuses, string(st.Key))
	}
	for _, tt := range models.TaskTypes {
		types = append(types, string(tt.Key))
	}
	return statuses, types
}

// centerTaskCatalogs filters the full catalogs down to what the service
// center allows, preserving display order.
func centerTaskCatalogs(center models.ServiceCenter) (statuses, types []string) {
	statuses, types = fullTaskCatalogs()
	if len(center.PossibleTaskStatuses) > 0 {
		filtered := statuses[:0]
		for _, key := range statuses {
			if center.PossibleTaskStatuses[key] {
				filtered = append(filtered, key)
			}
		}
		statuses = filtered
	}
	if len(center.PossibleTaskTypes) > 0 {
		filtered := types[:0]
		for _, key := range types {
			if center.PossibleTaskTypes[key] {
				filtered = append(filtered, key)
			}
		}
		types = filtered
	}
	return statuses, types
}
