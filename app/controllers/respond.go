// Package controllers implements the HTTP handlers. Controllers decode and
// validate request payloads, call the service layer through small store
// interfaces, and build the frontend-facing responses.
package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"projecthub/app/schemas"
	"projecthub/app/services"
	"projecthub/app/utils"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type validator interface {
	Validate() error
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Error("encode response", "error", err)
		}
	}
}

// respondError maps service errors onto the error body the frontend expects:
// {"detail": "..."} with 400 for bad input, 404 for unknown ids and 500 for
// everything else.
func respondError(w http.ResponseWriter, err error) {
	var vErr *schemas.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondJSON(w, http.StatusBadRequest, map[string]string{"detail": vErr.Detail})
	case errors.Is(err, services.ErrInvalidID):
		respondJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"detail": err.Error()})
	default:
		slog.Error("request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"detail": "Internal server error"})
	}
}

// decodeBody parses a JSON request body and runs the payload validation.
func decodeBody(r *http.Request, v validator) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &schemas.ValidationError{Detail: "Invalid JSON body: " + err.Error()}
	}
	return v.Validate()
}

// pageParams reads page and size query parameters with the list defaults.
func pageParams(r *http.Request) (page, size int) {
	page, size = 1, defaultPageSize
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			size = n
		}
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

func boolParam(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}

func pageInfo(total int64, page, size int) schemas.PageInfo {
	return schemas.PageInfo{
		Total: total,
		Page:  page,
		Size:  size,
		Pages: utils.Pages(total, size),
	}
}
