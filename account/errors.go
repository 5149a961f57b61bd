package account

import (
	"github.com/status-im/ethfacade/errors"
)

// Abbreviation `ACC` for the error code stands for Account
var (
	ErrSignAccountRequired    = &errors.ErrorResponse{Code: errors.ErrorCode("ACC-001"), Details: "an account is required in order to sign messages"}
	ErrSendAccountRequired    = &errors.ErrorResponse{Code: errors.ErrorCode("ACC-002"), Details: "an account is required in order to send transactions"}
	ErrCapabilityNotSupported = &errors.ErrorResponse{Code: errors.ErrorCode("ACC-003"), Details: "capability not supported by account"}
	ErrNoRemoteAccounts       = &errors.ErrorResponse{Code: errors.ErrorCode("ACC-004"), Details: "remote node does not manage any account"}
)

// IsAccountRequired reports whether err was caused by an empty registry.
func IsAccountRequired(err error) bool {
	return errors.IsErrorResponse(err, ErrSignAccountRequired.Code) ||
		errors.IsErrorResponse(err, ErrSendAccountRequired.Code)
}
