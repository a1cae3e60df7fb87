// Package schemas defines the frontend-facing request and response types.
// They are deliberately separate from the database models: requests carry
// string ids and get validated before anything reaches the service layer.
package schemas

import "fmt"

// ValidationError reports a request payload that failed schema validation.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return e.Detail }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Detail: fmt.Sprintf(format, args...)}
}

// PageInfo carries pagination metadata on list responses.
type PageInfo struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Pages int   `json:"pages"`
}

// DeleteStatusResponse reports the outcome of a delete operation.
type DeleteStatusResponse struct {
	Status bool   `json:"status"`
	Msg    string `json:"msg"`
}
