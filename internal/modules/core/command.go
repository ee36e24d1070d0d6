package core

import (
	"errors"
	"fmt"
)

type Unit struct{}

type CommandError struct {
	Payload    interface{}
	StatusCode int
	Reason     *string
}

type CommandErrorOption func(*CommandError)

func WithReason(reason string) CommandErrorOption {
	return func(e *CommandError) {
		e.Reason = &reason
	}
}

func NewCommandError(statusCode int, payload interface{}, opts ...CommandErrorOption) CommandError {
	e := CommandError{
		StatusCode: statusCode,
		Payload:    payload,
	}

	for _, opt := range opts {
		opt(&e)
	}

	return e
}

func (r CommandError) Error() string {
	var values struct {
		Payload    interface{}
		StatusCode int
		Reason     string
	}

	values.Payload = r.Payload
	values.StatusCode = r.StatusCode

	if r.Reason != nil {
		values.Reason = *r.Reason
	}

	return fmt.Sprintf("%+v", values)
}

// ErrorStatus pairs a sentinel error with the status code it is reported as.
type ErrorStatus struct {
	Target     error
	StatusCode int
}

// MapError converts err into a CommandError using the first matching status.
// Errors that are already CommandErrors pass through and unmatched errors become 500s.
func MapError(err error, statuses ...ErrorStatus) error {
	if err == nil {
		return nil
	}

	var commandErr CommandError
	if errors.As(err, &commandErr) {
		return commandErr
	}

	for _, s := range statuses {
		if errors.Is(err, s.Target) {
			return NewCommandError(s.StatusCode, err.Error(), WithReason(s.Target.Error()))
		}
	}

	return NewCommandError(500, err.Error())
}
