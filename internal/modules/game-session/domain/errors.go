package domain

import "errors"

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidScore      = errors.New("invalid score")
	ErrAlreadyVoted      = errors.New("already voted")
	ErrNotAuthorized     = errors.New("not authorized")
	ErrSessionLocked     = errors.New("session locked")

	ErrPlayerNotFound    = errors.New("player not found in roster")
	ErrInvalidRating     = errors.New("invalid rating")
	ErrInvalidReport     = errors.New("invalid report")
	ErrInvalidRosterSize = errors.New("invalid roster size")
)
