package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"projecthub/app/schemas"
)

// ServiceCenterController handles the /service-centers endpoints.
type ServiceCenterController struct {
	centers CenterStore
	cascade CascadeDeleter
	builder *builder
}

func NewServiceCenterController(centers CenterStore, cascade CascadeDeleter, projects ProjectStore, sprints SprintStore, tasks TaskStore, users UserStore) *ServiceCenterController {
	return &ServiceCenterController{
		centers: centers,
		cascade: cascade,
		builder: &builder{projects: projects, sprints: sprints, tasks: tasks, users: users},
	}
}

func (c *ServiceCenterController) Create(w http.ResponseWriter, r *http.Request) {
	var in schemas.ServiceCenterCreate
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	center, err := c.centers.Create(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	resp, err := c.builder.centerFull(r.Context(), center)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

// ListLight returns the paginated id-and-name listing used by pickers.
func (c *ServiceCenterController) ListLight(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)
	status := r.URL.Query().Get("status")
	deleted := boolParam(r, "isDeleted")

	centers, total, err := c.centers.List(r.Context(), (page-1)*size, size, status, deleted)
	if err != nil {
		respondError(w, err)
		return
	}
	list := make([]schemas.ServiceCenterLightResponse, 0, len(centers))
	for _, center := range centers {
		list = append(list, schemas.ServiceCenterLightResponse{
			ID:         center.ID.Hex(),
			CenterName: center.CenterName,
		})
	}
	respondJSON(w, http.StatusOK, schemas.ServiceCenterListLightResponse{
		ServiceCenters: list,
		PageInfo:       pageInfo(total, page, size),
	})
}

func (c *ServiceCenterController) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["serviceCenterID"]
	deleted := boolParam(r, "isDeleted")

	center, err := c.centers.GetByID(r.Context(), id, deleted)
	if err != nil {
		respondError(w, err)
		return
	}
	resp, err := c.builder.centerFull(r.Context(), center)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (c *ServiceCenterController) Update(w http.ResponseWriter, r *http.Request) {
	var in schemas.ServiceCenterUpdate
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	center, err := c.centers.Update(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	resp, err := c.builder.centerFull(r.Context(), center)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Delete soft deletes the center and everything nested under it.
func (c *ServiceCenterController) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["serviceCenterID"]
	if err := c.cascade.DeleteServiceCenter(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, schemas.DeleteStatusResponse{
		Status: true,
		Msg:    "Service center and all related elements deleted successfully",
	})
}

// CascadeDeleted lists the projects, sprints and tasks that were cascade
// deleted under the center.
func (c *ServiceCenterController) CascadeDeleted(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["serviceCenterID"]
	elements, err := c.cascade.CascadeDeletedElements(r.Context(), "service_center", id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, elements)
}
