package generator

import (
	"errors"
	"fmt"
)

// Stage names a pipeline step.
type Stage string

// Stage constants, in execution order.
const (
	StageValidate       Stage = "validate"
	StageDetect         Stage = "detect workspace"
	StageAdapter        Stage = "build adapter"
	StageMetadata       Stage = "compute metadata"
	StageCheckRoot      Stage = "check project root"
	StageInfrastructure Stage = "generate infrastructure"
	StageLibrary        Stage = "generate library"
	StageRegister       Stage = "register project"
)

// ErrProjectExists is the cause when the project root is already present.
var ErrProjectExists = errors.New("project already exists")

// ExecutionError is the single error shape the pipeline returns.
type ExecutionError struct {
	Stage   Stage
	Message string
	Cause   error
	// FilesWritten lists what reached the filesystem before the failure.
	FilesWritten []string
}

func (e *ExecutionError) Error() string { return e.Message }

func (e *ExecutionError) Unwrap() error { return e.Cause }

func newExecutionError(stage Stage, label string, cause error, written []string) *ExecutionError {
	return &ExecutionError{
		Stage:        stage,
		Message:      fmt.Sprintf("%s: %v", label, cause),
		Cause:        cause,
		FilesWritten: written,
	}
}
