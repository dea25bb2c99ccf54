package errors

import (
	"encoding/json"
)

// ErrorResponse is the flat, serializable representation of an error.
// The wrapped error chain is excluded; Code, Message and Context carry
// everything a caller needs to rebuild the diagnostic.
type ErrorResponse struct {
	// Code is the error code identifying the type of error.
	Code string `json:"code"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// Category is the propagation category.
	Category string `json:"category"`

	// Context contains optional metadata about the error.
	// Omitted from JSON if empty.
	Context map[string]interface{} `json:"context,omitempty"`
}

// ToJSON converts any error to an ErrorResponse suitable for JSON serialization.
// Returns nil if err is nil.
//
// For PlatformError instances, extracts code, message, category, and context.
// For standard errors, uses CodeUnknown, CategoryInternal, and the error message.
func ToJSON(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	message := err.Error()
	var context map[string]interface{}

	var platformErr PlatformError
	if As(err, &platformErr) {
		message = platformErr.Message()
		context = platformErr.Context()
	}

	return &ErrorResponse{
		Code:     string(GetCode(err)),
		Message:  message,
		Category: string(GetCategory(err)),
		Context:  context,
	}
}

// MarshalJSON implements json.Marshaler for platformError.
func (e *platformError) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(&ErrorResponse{
		Code:     string(e.code),
		Message:  e.message,
		Category: string(e.category),
		Context:  e.context,
	})
	if err != nil {
		return nil, &platformError{
			code:     CodeInternal,
			category: CategoryInternal,
			message:  "failed to marshal error response",
			cause:    err,
		}
	}
	return data, nil
}
