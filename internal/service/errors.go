package service

import "errors"

var (
	// ErrInvalidCredentials indicates the platform rejected the login.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrForbidden indicates the session role may not perform the action.
	ErrForbidden = errors.New("action not permitted for role")
	// ErrAssignmentNotFound indicates the assignment does not exist upstream.
	ErrAssignmentNotFound = errors.New("assignment not found")
	// ErrSubmissionNotFound indicates the submission does not exist upstream.
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrTeamNotFound indicates the class does not exist or is not visible to the caller.
	ErrTeamNotFound = errors.New("team not found")
	// ErrEmptyMessage indicates a chat message had no content left after sanitization.
	ErrEmptyMessage = errors.New("message content empty after sanitization")
)
