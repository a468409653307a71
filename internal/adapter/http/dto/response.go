package dto

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// IDResponse carries the id of a created or updated resource.
type IDResponse struct {
	ID string `json:"id"`
}
