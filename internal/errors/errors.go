package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrSolverNotFound is returned when a solver is not found
	ErrSolverNotFound = errors.New("solver not found")

	// ErrSolverAlreadyExists is returned when trying to create a solver that already exists
	ErrSolverAlreadyExists = errors.New("solver already exists")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidQuery is returned when a letter query cannot be solved
	ErrInvalidQuery = errors.New("invalid query")

	// ErrDictionaryLoad is returned when a dictionary source cannot be read
	ErrDictionaryLoad = errors.New("dictionary load failure")

	// ErrOutputWrite is returned when the answer file cannot be written
	ErrOutputWrite = errors.New("output write failure")

	// ErrSameName is returned when trying to rename to the same name
	ErrSameName = errors.New("same name provided")
)

// SolverNotFoundError represents a solver not found error with context
type SolverNotFoundError struct {
	SolverName string
}

func (e *SolverNotFoundError) Error() string {
	return fmt.Sprintf("solver named '%s' not found", e.SolverName)
}

func (e *SolverNotFoundError) Is(target error) bool {
	return target == ErrSolverNotFound
}

// NewSolverNotFoundError creates a new SolverNotFoundError
func NewSolverNotFoundError(solverName string) *SolverNotFoundError {
	return &SolverNotFoundError{SolverName: solverName}
}

// SolverAlreadyExistsError represents a solver already exists error with context
type SolverAlreadyExistsError struct {
	SolverName string
}

func (e *SolverAlreadyExistsError) Error() string {
	return fmt.Sprintf("solver named '%s' already exists", e.SolverName)
}

func (e *SolverAlreadyExistsError) Is(target error) bool {
	return target == ErrSolverAlreadyExists
}

// NewSolverAlreadyExistsError creates a new SolverAlreadyExistsError
func NewSolverAlreadyExistsError(solverName string) *SolverAlreadyExistsError {
	return &SolverAlreadyExistsError{SolverName: solverName}
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InvalidQueryError is returned by Solve for letter queries that are too short
// or contain characters outside A-Z. No rule is built and nothing is written.
type InvalidQueryError struct {
	Letters string
	Reason  string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid query '%s': %s", e.Letters, e.Reason)
}

func (e *InvalidQueryError) Is(target error) bool {
	return target == ErrInvalidQuery || target == ErrInvalidInput
}

// NewInvalidQueryError creates a new InvalidQueryError
func NewInvalidQueryError(letters, reason string) *InvalidQueryError {
	return &InvalidQueryError{Letters: letters, Reason: reason}
}

// DictionaryLoadError reports a dictionary source that could not be read.
type DictionaryLoadError struct {
	Path string
	Err  error
}

func (e *DictionaryLoadError) Error() string {
	return fmt.Sprintf("failed to load dictionary '%s': %v", e.Path, e.Err)
}

func (e *DictionaryLoadError) Is(target error) bool {
	return target == ErrDictionaryLoad
}

func (e *DictionaryLoadError) Unwrap() error {
	return e.Err
}

// NewDictionaryLoadError creates a new DictionaryLoadError
func NewDictionaryLoadError(path string, err error) *DictionaryLoadError {
	return &DictionaryLoadError{Path: path, Err: err}
}

// OutputWriteError reports an answer file that could not be created or written.
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("failed to write answers to '%s': %v", e.Path, e.Err)
}

func (e *OutputWriteError) Is(target error) bool {
	return target == ErrOutputWrite
}

func (e *OutputWriteError) Unwrap() error {
	return e.Err
}

// NewOutputWriteError creates a new OutputWriteError
func NewOutputWriteError(path string, err error) *OutputWriteError {
	return &OutputWriteError{Path: path, Err: err}
}

// SameNameError represents an error when trying to rename to the same name
type SameNameError struct {
	Name string
}

func (e *SameNameError) Error() string {
	return fmt.Sprintf("new name '%s' is the same as the current name", e.Name)
}

func (e *SameNameError) Is(target error) bool {
	return target == ErrSameName
}

// NewSameNameError creates a new SameNameError
func NewSameNameError(name string) *SameNameError {
	return &SameNameError{Name: name}
}
