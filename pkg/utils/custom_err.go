package utils

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrValidation         = errors.New("step validation failed")
	ErrSessionNotFound    = errors.New("wizard session not found")
	ErrSubmissionPending  = errors.New("a submission is already in flight for this session")
	ErrSubmissionFailed   = errors.New("trip plan generation failed")
	ErrIncompleteAnswers  = errors.New("answer record is incomplete")
	ErrTripNotFound       = errors.New("trip not found")
	ErrOutOfRange         = errors.New("day or activity index out of range")
	ErrMutationPending    = errors.New("a suggestion is already in flight for this activity")
	ErrMutationFailed     = errors.New("activity replacement failed")
	ErrLookupMiss         = errors.New("place details not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDatabaseError      = errors.New("database error")
	ErrUnexpectedAI       = errors.New("unexpected response from planning assistant")
)
