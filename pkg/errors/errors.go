package errors

import (
	"errors"
	"fmt"
)

type NoConnectionError struct{}

func NewNoConnectionError() *NoConnectionError {
	return &NoConnectionError{}
}

func (e *NoConnectionError) Error() string {
	return "no connection: database is not open"
}

func IsNoConnectionError(err error) bool {
	var e *NoConnectionError
	return errors.As(err, &e)
}

type ConnectionAlreadyOpenError struct {
	Path string
}

func NewConnectionAlreadyOpenError(path string) *ConnectionAlreadyOpenError {
	return &ConnectionAlreadyOpenError{Path: path}
}

func (e *ConnectionAlreadyOpenError) Error() string {
	return fmt.Sprintf("connection to %q is already open: close it first", e.Path)
}

func IsConnectionAlreadyOpenError(err error) bool {
	var e *ConnectionAlreadyOpenError
	return errors.As(err, &e)
}

// IntegrityError is returned when a mutation references a name that does not
// exist in its reference table.
type IntegrityError struct {
	Table string
	Name  string
}

func NewIntegrityError(table, name string) *IntegrityError {
	return &IntegrityError{Table: table, Name: name}
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity error: %q not found in %s", e.Name, e.Table)
}

func IsIntegrityError(err error) bool {
	var e *IntegrityError
	return errors.As(err, &e)
}

type InvalidFilterError struct {
	Column string
	Op     string
	Reason string
}

func NewInvalidColumnError(column string) *InvalidFilterError {
	return &InvalidFilterError{Column: column, Reason: "unknown column"}
}

func NewInvalidOperatorError(column, op string) *InvalidFilterError {
	return &InvalidFilterError{Column: column, Op: op, Reason: "unsupported operator"}
}

func NewInvalidValueError(column, op string) *InvalidFilterError {
	return &InvalidFilterError{Column: column, Op: op, Reason: "operator requires a list value"}
}

func (e *InvalidFilterError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("invalid filter on %q: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("invalid filter %q on %q: %s", e.Op, e.Column, e.Reason)
}

func IsInvalidFilterError(err error) bool {
	var e *InvalidFilterError
	return errors.As(err, &e)
}

// UnauthorizedError is returned when an authenticated session lacks the
// privilege required by an operation.
type UnauthorizedError struct {
	Role      string
	Operation string
}

func NewUnauthorizedError(role, operation string) *UnauthorizedError {
	return &UnauthorizedError{Role: role, Operation: operation}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("unauthorized: role %q may not %s", e.Role, e.Operation)
}

func IsUnauthorizedError(err error) bool {
	var e *UnauthorizedError
	return errors.As(err, &e)
}

// NoUserError is returned when an operation is attempted without any
// authenticated session.
type NoUserError struct {
	Operation string
}

func NewNoUserError(operation string) *NoUserError {
	return &NoUserError{Operation: operation}
}

func (e *NoUserError) Error() string {
	return fmt.Sprintf("no user: login required to %s", e.Operation)
}

func IsNoUserError(err error) bool {
	var e *NoUserError
	return errors.As(err, &e)
}

type UnsupportedRestoreError struct {
	Kind string
}

func NewUnsupportedRestoreError(kind string) *UnsupportedRestoreError {
	return &UnsupportedRestoreError{Kind: kind}
}

func (e *UnsupportedRestoreError) Error() string {
	return fmt.Sprintf("restore of %q action is not supported", e.Kind)
}

func IsUnsupportedRestoreError(err error) bool {
	var e *UnsupportedRestoreError
	return errors.As(err, &e)
}

type ObserverNotAttachedError struct{}

func NewObserverNotAttachedError() *ObserverNotAttachedError {
	return &ObserverNotAttachedError{}
}

func (e *ObserverNotAttachedError) Error() string {
	return "observer is not attached"
}

func IsObserverNotAttachedError(err error) bool {
	var e *ObserverNotAttachedError
	return errors.As(err, &e)
}
