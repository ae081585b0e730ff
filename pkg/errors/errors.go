// Package errors provides the error types shared by the catalog, the store
// and the preview dispatcher. Callers check them with errors.Is / errors.As
// or the IsX helpers.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrNotFound indicates that a referenced record does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorage indicates a failure of the persistence engine
	ErrStorage = errors.New("storage failure")

	// ErrIO indicates a file that could not be read or decoded
	ErrIO = errors.New("i/o failure")

	// ErrLaunch indicates that the external viewer could not be started
	ErrLaunch = errors.New("launch failure")
)

// NotFoundError represents an error when a record is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// StorageError wraps a failure reported by the database engine.
type StorageError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// NewStorageError creates a new StorageError
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// IOError reports a file that could not be opened, read or decoded.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// NewIOError creates a new IOError
func NewIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: err}
}

// LaunchError reports a failed hand-off to the platform's default viewer.
type LaunchError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *LaunchError) Error() string {
	return fmt.Sprintf("open %s externally: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *LaunchError) Is(target error) bool {
	return target == ErrLaunch
}

// NewLaunchError creates a new LaunchError
func NewLaunchError(path string, err error) *LaunchError {
	return &LaunchError{Path: path, Err: err}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsStorage checks if an error came from the database engine
func IsStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}

// IsIO checks if an error is a file read or decode failure
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

// IsLaunch checks if an error is an external viewer failure
func IsLaunch(err error) bool {
	return errors.Is(err, ErrLaunch)
}
