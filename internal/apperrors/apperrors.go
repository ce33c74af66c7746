package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")

	ErrInvalidTable  = errors.New("table is not allowed")
	ErrInvalidColumn = errors.New("column is not allowed")
	ErrInvalidInput  = errors.New("invalid input")

	ErrInvalidRequest = errors.New("invalid request body")
	ErrValidation     = errors.New("validation failed")

	ErrTransactionFailed  = errors.New("transaction failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AlreadyRatedError struct {
	Username  string
	ProjectID int64
}

func (e *AlreadyRatedError) Error() string {
	return fmt.Sprintf("user '%s' has already rated project %d", e.Username, e.ProjectID)
}

func (e *AlreadyRatedError) Is(target error) bool { return target == ErrAlreadyExists }

type AlreadyAppliedError struct {
	UserID int64
	JobID  int64
}

func (e *AlreadyAppliedError) Error() string {
	return fmt.Sprintf("user %d has already applied to job %d", e.UserID, e.JobID)
}

func (e *AlreadyAppliedError) Is(target error) bool { return target == ErrAlreadyExists }

type UsernameTakenError struct{ Username string }

func (e *UsernameTakenError) Error() string {
	return fmt.Sprintf("username '%s' is already taken", e.Username)
}

func (e *UsernameTakenError) Is(target error) bool { return target == ErrAlreadyExists }

type GitNameTakenError struct{ GitName string }

func (e *GitNameTakenError) Error() string {
	return fmt.Sprintf("git name '%s' is already taken", e.GitName)
}

func (e *GitNameTakenError) Is(target error) bool { return target == ErrAlreadyExists }
