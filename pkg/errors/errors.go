package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrCanceled      ErrorCode = "CANCELED"

	// Configuration errors. ErrConfigInvalid is fatal to a whole deploy and
	// is always raised before the filesystem is touched.
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigSave    ErrorCode = "CONFIG_SAVE"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Manifest errors
	ErrManifestRead    ErrorCode = "MANIFEST_READ"
	ErrManifestInvalid ErrorCode = "MANIFEST_INVALID"

	// Mod resolution errors. These are per-mod: the mod is excluded from the
	// deployment and reported, the remaining mods still deploy.
	ErrModNotFound         ErrorCode = "MOD_NOT_FOUND"
	ErrManifestUnsupported ErrorCode = "MANIFEST_UNSUPPORTED"
	ErrOptionInvalid       ErrorCode = "OPTION_INVALID"
	ErrScanFailed          ErrorCode = "SCAN_FAILED"
	ErrModsExcluded        ErrorCode = "MODS_EXCLUDED"

	// Deployment I/O errors
	ErrIO                    ErrorCode = "IO"
	ErrDestinationUnwritable ErrorCode = "DESTINATION_UNWRITABLE"
	ErrDestinationConflict   ErrorCode = "DESTINATION_CONFLICT"
	ErrRecordCorrupt         ErrorCode = "RECORD_CORRUPT"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// ManagerError represents a structured error with code and details
type ManagerError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ManagerError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ManagerError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ManagerError) Is(target error) bool {
	var targetErr *ManagerError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ManagerError with the given code and message
func New(code ErrorCode, message string) *ManagerError {
	return &ManagerError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ManagerError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ManagerError {
	return &ManagerError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ManagerError
func Wrap(err error, code ErrorCode, message string) *ManagerError {
	if err == nil {
		return nil
	}
	return &ManagerError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ManagerError {
	if err == nil {
		return nil
	}
	return &ManagerError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ManagerError) WithDetail(key string, value interface{}) *ManagerError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *ManagerError) WithDetails(details map[string]interface{}) *ManagerError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var managerErr *ManagerError
	if errors.As(err, &managerErr) {
		return managerErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ManagerError
func GetErrorCode(err error) ErrorCode {
	var managerErr *ManagerError
	if errors.As(err, &managerErr) {
		return managerErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ManagerError
func GetErrorDetails(err error) map[string]interface{} {
	var managerErr *ManagerError
	if errors.As(err, &managerErr) {
		return managerErr.Details
	}
	return nil
}

// IsModResolution reports whether err is one of the per-mod resolution
// failures that exclude a single mod without aborting the deployment.
func IsModResolution(err error) bool {
	switch GetErrorCode(err) {
	case ErrModNotFound, ErrManifestUnsupported, ErrOptionInvalid, ErrScanFailed:
		return true
	}
	return false
}
