package controllers

import (
	"context"
	"net/http"
)

// Version is reported by the welcome endpoint.
const Version = "0.5.0"

// RootController serves the welcome and health endpoints.
type RootController struct {
	docsPath string
	ping     func(context.Context) error
}

func NewRootController(apiPrefix string, ping func(context.Context) error) *RootController {
	return &RootController{docsPath: apiPrefix + "/docs", ping: ping}
}

func (c *RootController) Welcome(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the ProjectHub API",
		"version": Version,
		"docs":    c.docsPath,
	})
}

// Health reports whether the database answers a ping.
func (c *RootController) Health(w http.ResponseWriter, r *http.Request) {
	if c.ping != nil {
		if err := c.ping(r.Context()); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "detail": err.Error()})
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
