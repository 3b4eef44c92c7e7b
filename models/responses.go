package models

// SuccessResponse is the uniform envelope returned by mutating endpoints.
type SuccessResponse struct {
	Message string `json:"message"`
	Payload any    `json:"payload,omitempty"`
}

// ErrorResponse is the uniform error body rendered by the HTTP boundary.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
