package dto

// ErrorResponse is the uniform error body for all endpoints.
type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
