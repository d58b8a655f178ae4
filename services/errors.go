package services

import "errors"

var (
	ErrNotFound           = errors.New("requested resource not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTaskNotFound       = errors.New("task not found in tournament")

	ErrValidationFailed = errors.New("validation failed")
	ErrTaskIDRequired   = errors.New("task id is required")
	ErrDuplicateTaskID  = errors.New("task id must be unique")

	ErrStorageDisabled = errors.New("export storage is not configured")
	ErrExportFailed    = errors.New("failed to export tournament")
)
