package identity

import (
	"errors"
	"fmt"
)

// Errors detected proactively by the registration workflow.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailExists     = errors.New("user already exist")
	ErrIncompleteInput = errors.New("fields can't be empty")
)

// FailureStage identifies which dependency failed during registration.
type FailureStage string

const (
	StageHash   FailureStage = "hash"
	StageStore  FailureStage = "store"
	StageToken  FailureStage = "token"
	StageRender FailureStage = "render"
	StageMail   FailureStage = "mail"
)

// StageError wraps a dependency failure with the stage it occurred in, so
// operators can tell a mail-transport failure from a storage failure. Callers
// still present a single opaque message externally.
type StageError struct {
	Stage FailureStage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage FailureStage, err error) error {
	return &StageError{Stage: stage, Err: err}
}
