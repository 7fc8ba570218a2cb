package models

// Machine-readable error codes returned alongside HTTP statuses.
const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeValidation   = "validation_error"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeTokenInvalid = "token_invalid"
	ErrCodeTokenExpired = "token_expired"
	ErrCodeInternal     = "internal_error"
)

// ErrorResponse is the standard JSON error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GenerationResult is the soft-failure envelope returned by the AI image
// generation flow. Upstream failures are reported here with Success=false
// instead of propagating as errors.
type GenerationResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	ImageURL string `json:"image_url,omitempty"`
}

// TransformResult is returned by the image transformation operation.
type TransformResult struct {
	Success             bool   `json:"success"`
	TransformedImageURL string `json:"transformed_image_url,omitempty"`
	Message             string `json:"message"`
}

// PrintResult is returned by the print-URL stubs for stories and scrapbooks.
type PrintResult struct {
	PrintURL string `json:"print_url"`
	Message  string `json:"message"`
}
