package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeUnknownCategory  = "unknown_category"

	// Resource errors
	ErrCodeNotFound = "not_found"

	// Business logic errors
	ErrCodeGenerationFailed = "generation_failed"
	ErrCodeSaveFailed       = "save_failed"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
)
