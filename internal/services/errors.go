package services

import "errors"

var (
	// ErrAccessDenied covers both "project does not exist" and "user is not
	// assigned to it", so callers cannot enumerate projects by probing.
	ErrAccessDenied = errors.New("project not found or not assigned")

	// ErrNotFound means the entity or link being mutated is absent.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a uniqueness constraint would be violated.
	ErrConflict = errors.New("already exists")

	// ErrLinkFailed means the prompt-to-project link could not be written
	// and the prompt insert was rolled back.
	ErrLinkFailed = errors.New("failed to link prompt to project")
)
