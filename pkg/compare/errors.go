// Copyright 2026 The Treeverify Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compare

import (
	"fmt"
)

// ErrorType represents the category of verification error.
type ErrorType int

const (
	// ErrTypeUnknown indicates an unclassified error.
	ErrTypeUnknown ErrorType = iota

	// ErrTypeRootNotFound indicates a verification root does not exist or is
	// not a directory. Fatal: the whole session aborts.
	ErrTypeRootNotFound

	// ErrTypeFileUnreadable indicates a per-file I/O failure during
	// checksumming. Recorded as a failing entry; never aborts the walk.
	ErrTypeFileUnreadable

	// ErrTypeDeletionFailed indicates cleanup of a destination subtree
	// failed. Recorded per path; remaining deletions continue.
	ErrTypeDeletionFailed

	// ErrTypeCancelled indicates the caller aborted the pass.
	ErrTypeCancelled

	// ErrTypeConfiguration indicates a configuration error (bad algorithm,
	// bad option combination).
	ErrTypeConfiguration

	// ErrTypeIO indicates any other I/O error.
	ErrTypeIO
)

// String returns a human-readable name for the error type.
func (e ErrorType) String() string {
	switch e {
	case ErrTypeRootNotFound:
		return "RootNotFound"
	case ErrTypeFileUnreadable:
		return "FileUnreadable"
	case ErrTypeDeletionFailed:
		return "DeletionFailed"
	case ErrTypeCancelled:
		return "Cancelled"
	case ErrTypeConfiguration:
		return "ConfigurationError"
	case ErrTypeIO:
		return "IOError"
	default:
		return "UnknownError"
	}
}

// VerificationError is the structured error type for verification failures.
//
// It records the category (for programmatic handling), the path involved
// when there is one, a human-readable message, and the wrapped cause.
type VerificationError struct {
	// Type categorizes the error for programmatic handling.
	Type ErrorType

	// Path is the file path related to the error (optional).
	Path string

	// Message is a human-readable description of what went wrong.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *VerificationError) Error() string {
	if e.Path != "" && e.Cause != nil {
		return fmt.Sprintf("%s: %s (path: %s): %v", e.Type, e.Message, e.Path, e.Cause)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (path: %s)", e.Type, e.Message, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for error chain unwrapping.
func (e *VerificationError) Unwrap() error {
	return e.Cause
}

// NewError creates a new verification error.
func NewError(errType ErrorType, message string, cause error) *VerificationError {
	return &VerificationError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewErrorWithPath creates a new verification error tied to a path.
func NewErrorWithPath(errType ErrorType, path, message string, cause error) *VerificationError {
	return &VerificationError{
		Type:    errType,
		Path:    path,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if an error is a VerificationError of a specific type.
func IsType(err error, errType ErrorType) bool {
	var verifyErr *VerificationError
	if As(err, &verifyErr) {
		return verifyErr.Type == errType
	}
	return false
}

// As is a helper that unwraps err into a *VerificationError.
func As(err error, target **VerificationError) bool {
	if err == nil {
		return false
	}

	if ve, ok := err.(*VerificationError); ok {
		*target = ve
		return true
	}

	return false
}
