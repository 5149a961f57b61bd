package errors

import (
	"encoding/json"
	"errors"
)

// ErrorCode represents a specific error code.
type ErrorCode string

const GenericErrorCode ErrorCode = "0"

// ErrorResponse represents an error response structure.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface for ErrorResponse.
func (e *ErrorResponse) Error() string {
	errorJSON, _ := json.Marshal(e)
	return string(errorJSON)
}

// CreateErrorResponseFromError creates an ErrorResponse from a generic error.
// A wrapped ErrorResponse keeps its code and gets the full message as details.
func CreateErrorResponseFromError(err error) error {
	if err == nil {
		return nil
	}
	if errResp, ok := err.(*ErrorResponse); ok {
		return errResp
	}
	var wrapped *ErrorResponse
	if errors.As(err, &wrapped) {
		return &ErrorResponse{
			Code:    wrapped.Code,
			Details: err.Error(),
		}
	}
	return &ErrorResponse{
		Code:    GenericErrorCode,
		Details: err.Error(),
	}
}

// IsErrorResponse reports whether err is, or wraps, an ErrorResponse with the given code.
func IsErrorResponse(err error, code ErrorCode) bool {
	var errResp *ErrorResponse
	return errors.As(err, &errResp) && errResp.Code == code
}
