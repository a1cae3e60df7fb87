package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"projecthub/app/controllers"
)

// Controllers bundles the handlers wired into the router.
type Controllers struct {
	Root           *controllers.RootController
	ServiceCenters *controllers.ServiceCenterController
	Projects       *controllers.ProjectController
	Sprints        *controllers.SprintController
	Tasks          *controllers.TaskController
	Users          *controllers.UserController
}

// RegisterRoutes sets up all routes for the application under the given API
// prefix. The welcome and health endpoints stay at the root.
func RegisterRoutes(router *mux.Router, prefix string, c Controllers) {
	// Accept both /tasks/types and /tasks/types/ the way the API was
	// originally published.
	router.StrictSlash(true)

	router.HandleFunc("/", c.Root.Welcome).Methods(http.MethodGet)
	router.HandleFunc("/healthz", c.Root.Health).Methods(http.MethodGet)

	api := router
	if prefix != "" {
		api = router.PathPrefix(prefix).Subrouter()
	}

	api.HandleFunc("/service-centers", c.ServiceCenters.Create).Methods(http.MethodPost)
	api.HandleFunc("/service-centers/light", c.ServiceCenters.ListLight).Methods(http.MethodGet)
	api.HandleFunc("/service-centers/update", c.ServiceCenters.Update).Methods(http.MethodPut)
	api.HandleFunc("/service-centers/{serviceCenterID}/cascade-deleted", c.ServiceCenters.CascadeDeleted).Methods(http.MethodGet)
	api.HandleFunc("/service-centers/{serviceCenterID}", c.ServiceCenters.Get).Methods(http.MethodGet)
	api.HandleFunc("/service-centers/{serviceCenterID}", c.ServiceCenters.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/projects", c.Projects.Create).Methods(http.MethodPost)
	api.HandleFunc("/projects/light", c.Projects.ListLight).Methods(http.MethodGet)
	api.HandleFunc("/projects/byIds", c.Projects.GetByIDs).Methods(http.MethodGet)
	api.HandleFunc("/projects/update", c.Projects.Update).Methods(http.MethodPut)
	api.HandleFunc("/projects/{projectID}/cascade-deleted", c.Projects.CascadeDeleted).Methods(http.MethodGet)
	api.HandleFunc("/projects/{projectID}", c.Projects.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/sprints", c.Sprints.Create).Methods(http.MethodPost)
	api.HandleFunc("/sprints", c.Sprints.List).Methods(http.MethodGet)
	api.HandleFunc("/sprints/update", c.Sprints.Update).Methods(http.MethodPut)
	api.HandleFunc("/sprints/{sprintID}", c.Sprints.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/tasks", c.Tasks.Create).Methods(http.MethodPost)
	api.HandleFunc("/tasks", c.Tasks.List).Methods(http.MethodGet)
	api.HandleFunc("/tasks/update", c.Tasks.Update).Methods(http.MethodPut)
	api.HandleFunc("/tasks/types", c.Tasks.Types).Methods(http.MethodGet)
	api.HandleFunc("/tasks/statuses", c.Tasks.Statuses).Methods(http.MethodGet)
	api.HandleFunc("/tasks/import-csv", c.Tasks.ImportCSV).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{taskID}", c.Tasks.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/users", c.Users.Create).Methods(http.MethodPost)
	api.HandleFunc("/users", c.Users.List).Methods(http.MethodGet)
	api.HandleFunc("/users/byIds", c.Users.GetByIDs).Methods(http.MethodGet)
	api.HandleFunc("/users/{userID}", c.Users.Update).Methods(http.MethodPut)
	api.HandleFunc("/users/{userID}", c.Users.Delete).Methods(http.MethodDelete)
}
