package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"projecthub/app/controllers"
)

func testRouter(prefix string) *mux.Router {
	router := mux.NewRouter()
	RegisterRoutes(router, prefix, Controllers{
		Root:           controllers.NewRootController(prefix, nil),
		ServiceCenters: controllers.NewServiceCenterController(nil, nil, nil, nil, nil, nil),
		Projects:       controllers.NewProjectController(nil, nil, nil, nil, nil, nil),
		Sprints:        controllers.NewSprintController(nil, nil, nil, nil, nil),
		Tasks:          controllers.NewTaskController(nil, nil),
		Users:          controllers.NewUserController(nil, nil, nil, nil),
	})
	return router
}

func TestRoutesMatchWithAndWithoutTrailingSlash(t *testing.T) {
	router := testRouter("")

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/service-centers"},
		{http.MethodGet, "/service-centers/light"},
		{http.MethodPost, "/projects"},
		{http.MethodGet, "/projects/byIds"},
		{http.MethodGet, "/sprints"},
		{http.MethodGet, "/tasks/types"},
		{http.MethodGet, "/tasks/statuses"},
		{http.MethodPost, "/tasks/import-csv"},
		{http.MethodGet, "/users/byIds"},
	}
	for _, tt := range tests {
		for _, path := range []string{tt.path, tt.path + "/"} {
			req := httptest.NewRequest(tt.method, path, nil)
			var match mux.RouteMatch
			if !router.Match(req, &match) {
				t.Errorf("%s %s did not match any route", tt.method, path)
			}
		}
	}
}

func TestTrailingSlashRedirects(t *testing.T) {
	router := testRouter("")

	req := httptest.NewRequest(http.MethodGet, "/tasks/types/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want 301", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/tasks/types" {
		t.Errorf("Location = %q, want /tasks/types", loc)
	}
}

func TestRoutesUnderPrefix(t *testing.T) {
	router := testRouter("/api")

	for _, path := range []string{"/api/tasks/types", "/api/tasks/types/"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		var match mux.RouteMatch
		if !router.Match(req, &match) {
			t.Errorf("GET %s did not match any route", path)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	var match mux.RouteMatch
	if !router.Match(req, &match) {
		t.Error("GET /healthz did not match outside the prefix")
	}
}
