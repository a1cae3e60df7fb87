package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"projecthub/app/schemas"
)

// UserController handles the /users endpoints.
type UserController struct {
	users   UserStore
	builder *builder
}

func NewUserController(users UserStore, projects ProjectStore, sprints SprintStore, tasks TaskStore) *UserController {
	return &UserController{
		users:   users,
		builder: &builder{projects: projects, sprints: sprints, tasks: tasks, users: users},
	}
}

func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var in schemas.UserCreate
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	user, err := c.users.Create(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	resp, err := c.builder.userFull(r.Context(), user)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

// List returns the paginated user listing, optionally filtered by a
// case-insensitive name substring.
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)
	name := r.URL.Query().Get("nameSubstring")
	deleted := boolParam(r, "isDeleted")

	users, total, err := c.users.List(r.Context(), (page-1)*size, size, name, deleted)
	if err != nil {
		respondError(w, err)
		return
	}
	list := make([]schemas.UserResponse, 0, len(users))
	for _, user := range users {
		resp, err := c.builder.userFull(r.Context(), user)
		if err != nil {
			respondError(w, err)
			return
		}
		list = append(list, resp)
	}
	respondJSON(w, http.StatusOK, schemas.UserListResponse{
		Users:    list,
		PageInfo: pageInfo(total, page, size),
	})
}

// GetByIDs resolves a batch of user ids into full responses. Unknown ids make
// the whole request a 404 naming them.
func (c *UserController) GetByIDs(w http.ResponseWriter, r *http.Request) {
	ids := idsParam(r, "userIds")
	if len(ids) == 0 {
		respondError(w, &schemas.ValidationError{Detail: "At least one user id is required"})
		return
	}
	deleted := boolParam(r, "isDeleted")

	users, missing, err := c.users.GetByIDs(r.Context(), ids, deleted)
	if err != nil {
		respondError(w, err)
		return
	}
	if len(missing) > 0 {
		respondJSON(w, http.StatusNotFound, map[string]string{
			"detail": fmt.Sprintf("Users not found: %s", strings.Join(missing, ", ")),
		})
		return
	}
	list := make([]schemas.UserResponse, 0, len(users))
	for _, user := range users {
		resp, err := c.builder.userFull(r.Context(), user)
		if err != nil {
			respondError(w, err)
			return
		}
		list = append(list, resp)
	}
	respondJSON(w, http.StatusOK, list)
}

// Update applies profile changes and access grant changes in one call.
func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["userID"]
	var in schemas.UserUpdate
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	user, err := c.users.Update(r.Context(), id, in)
	if err != nil {
		respondError(w, err)
		return
	}
	resp, err := c.builder.userFull(r.Context(), user)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["userID"]
	if err := c.users.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, schemas.DeleteStatusResponse{
		Status: true,
		Msg:    "User deleted successfully",
	})
}
