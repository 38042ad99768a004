package domain

import (
	"errors"
	"fmt"
)

// Fixed boundary messages. Tests assert on these exact strings.
const (
	MsgInvalidInput   = "Invalid input."
	MsgNoToken        = "No token provided"
	MsgBadToken       = "Token is not valid"
	MsgForbidden      = "You are not authorized to perform this action"
	MsgDuplicateEntry = "Duplicate entry on unique field."
)

// ValidationError collects one entry per offending field, in the
// fields' declaration order. The message is always MsgInvalidInput.
type ValidationError struct {
	Errors []string
}

func (e ValidationError) Error() string { return MsgInvalidInput }

// NotAuthorizedError covers a missing token and every way a presented
// token can fail: parse, expiry, or the liveness re-check.
type NotAuthorizedError struct {
	Msg string
}

func (e NotAuthorizedError) Error() string {
	if e.Msg == "" {
		return MsgBadToken
	}
	return e.Msg
}

// ForbiddenError means the identity was verified but its role is not on
// the route's allow-list. The message never reveals which roles would
// have been accepted.
type ForbiddenError struct{}

func (e ForbiddenError) Error() string { return MsgForbidden }

type NotFoundError struct {
	Entity string
	Key    any
}

func (e NotFoundError) Error() string {
	if e.Entity == "" {
		return "not found"
	}
	if e.Key == nil {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s with id %v not found", e.Entity, e.Key)
}

type AlreadyExistsError struct {
	Err error
}

func (e AlreadyExistsError) Error() string { return MsgDuplicateEntry }

func (e AlreadyExistsError) Unwrap() error { return e.Err }

type InternalError struct {
	Err error
}

func (e InternalError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsNotAuthorized(err error) bool {
	var target NotAuthorizedError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target ForbiddenError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsAlreadyExists(err error) bool {
	var target AlreadyExistsError
	return errors.As(err, &target)
}
