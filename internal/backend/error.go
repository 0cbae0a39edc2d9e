package backend

import "fmt"

// APIError is a failed backend response. Detail and Message carry the
// server's structured explanation when it provided one.
type APIError struct {
	Status  int    `json:"-"`
	Detail  string `json:"detail"`
	Message string `json:"message"`
	Reason  string `json:"error"`
}

// Error returns the most specific message the server provided,
// preferring detail over message over the bare error field.
func (e *APIError) Error() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.Message != "":
		return e.Message
	case e.Reason != "":
		return e.Reason
	default:
		return fmt.Sprintf("backend request failed with status %d", e.Status)
	}
}

// NotFound reports whether the response was a 404.
func (e *APIError) NotFound() bool {
	return e.Status == 404
}
